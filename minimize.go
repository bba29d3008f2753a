package pwq

import "math"

// Minimize returns (x*, f(x*)) minimizing f over its whole domain: the best
// of each piece's own Minimize, ties broken in favor of the earlier piece.
// If f has no pieces, returns (NaN, +Inf).
func (f PiecewiseQuadratic) Minimize() (xStar, vStar float64) {
	xStar, vStar = math.NaN(), math.Inf(1)
	for _, piece := range f {
		x, v := piece.Minimize()
		if v < vStar {
			xStar, vStar = x, v
		}
	}
	return xStar, vStar
}
