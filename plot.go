package pwq

import "math"

// Sample returns n evenly spaced x values covering f's finite extent, and
// f's value at each. Infinite domain ends are clamped to the outermost
// finite breakpoint on that side (extended by one unit of slack so an
// unbounded first/last piece still gets a visible sample), and n is clamped
// to at least 2 so the range always has a start and an end. If f has no
// finite breakpoint at all, the range is [-10, 10]. Returns (nil, nil) for an
// empty f.
func Sample(f PiecewiseQuadratic, n int) (xs, ys []float64) {
	if len(f) == 0 {
		return nil, nil
	}
	if n < 2 {
		n = 2
	}

	lo, hi := f[0].Lb, f[len(f)-1].Ub
	if math.IsInf(lo, -1) {
		lo = f[0].Ub - 1
	}
	if math.IsInf(hi, 1) {
		hi = f[len(f)-1].Lb + 1
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		// No finite breakpoint at all (a single whole-line piece).
		lo, hi = -10, 10
	}

	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + step*float64(i)
		xs[i] = x
		ys[i] = f.Eval(x)
	}
	return xs, ys
}
