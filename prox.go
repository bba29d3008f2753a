package pwq

// Prox evaluates the proximal operator of f at u with penalty weight rho > 0:
//
//	prox(f, u, rho) = argmin_x  f(x) + (rho/2)(x - u)^2
//
// f is swept piece by piece in domain order. Each piece's stationarity
// condition, f'(x) + rho*(x-u) = 0, rearranges to a band of feasible target
// values rho*u that land inside that piece's interior; rho*u values that
// fall in the gap between two pieces' bands land on the piece boundary
// between them instead. f is assumed convex (its bands are visited in
// non-decreasing order); callers typically pass Envelope(f).
func Prox(f PiecewiseQuadratic, u, rho float64) float64 {
	if len(f) == 0 {
		return u
	}
	target := rho * u
	var lastUb float64
	for _, piece := range f {
		pAdj := 2*piece.P + rho
		bandLo := pAdj*piece.Lb + piece.Q
		bandHi := pAdj*piece.Ub + piece.Q
		if bandLo > bandHi {
			bandLo, bandHi = bandHi, bandLo
		}
		if target < bandLo {
			return piece.Lb
		}
		if target <= bandHi {
			return (target - piece.Q) / pAdj
		}
		lastUb = piece.Ub
	}
	return lastUb
}
