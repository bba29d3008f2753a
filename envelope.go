package pwq

import (
	"fmt"
	"math"
)

// shrinkTo returns piece with a new domain, without the emptiness panic
// RestrictDom carries: every caller here has already computed lb ≤ ub from
// the geometry of a specific bridge case, so there is nothing left to check.
func shrinkTo(piece BoundedQuadratic, lb, ub float64) BoundedQuadratic {
	return BoundedQuadratic{Lb: lb, Ub: ub, P: piece.P, Q: piece.Q, R: piece.R}
}

// liesBelowOn reports whether line (must be affine) is ≲ piece over the
// overlap of their domains. Used to accept or reject a candidate bridge:
// a bridge that climbs back above the piece it's replacing is not a valid
// lower envelope segment.
func liesBelowOn(line, piece BoundedQuadratic) bool {
	dom := line.Domain().Intersect(piece.Domain())
	if dom.IsEmpty() {
		return true
	}
	return line.ApproxLessEq(shrinkTo(piece, dom.Lb, dom.Ub))
}

// tangentThroughPoint finds x in curved's domain such that the tangent to
// curved at x passes through (x0, y0). curved.P must be > 0. Returns the
// first accepted root within [curved.Lb, curved.Ub], trying SolveQuadratic's
// first root before its second.
func tangentThroughPoint(curved BoundedQuadratic, x0, y0 float64) (x float64, ok bool) {
	a := curved.P
	b := -2 * curved.P * x0
	c := y0 - curved.Q*x0 - curved.R
	r1, r2, rootsOK := SolveQuadratic(a, b, c)
	if !rootsOK {
		return 0, false
	}
	for _, r := range [2]float64{r1, r2} {
		if math.IsNaN(r) {
			continue
		}
		if Lesseq(curved.Lb, r) && Lesseq(r, curved.Ub) {
			return ClipTo(r, curved.Lb, curved.Ub), true
		}
	}
	return 0, false
}

// bridgeMidMid is bridge case 1: both f and g have an interior tangent point
// (f.P > 0 and g.P > 0). Solves for the pair of tangent points (xf on f, xg
// on g) sharing a common tangent line: the case 1 system. Its result pieces
// are written into out, not returned, so this never allocates.
func bridgeMidMid(f, g BoundedQuadratic, out *bqBuffer) (interLeft, interRight, ok bool) {
	if f.P <= 0 || g.P <= 0 {
		return false, false, false
	}
	a := f.P*f.P/g.P - f.P
	b := (f.P / g.P) * (f.Q - g.Q)
	c := f.R - g.R + (f.Q-g.Q)*(f.Q-g.Q)/(4*g.P)
	r1, r2, rootsOK := SolveQuadratic(a, b, c)
	if !rootsOK {
		return false, false, false
	}
	for _, xf := range [2]float64{r1, r2} {
		if math.IsNaN(xf) {
			continue
		}
		xg := (f.P/g.P)*xf + (f.Q-g.Q)/(2*g.P)
		if !Lesseq(f.Lb, xf) || !Lesseq(xf, f.Ub) || !Lesseq(g.Lb, xg) || !Lesseq(xg, g.Ub) {
			continue
		}
		xf = ClipTo(xf, f.Lb, f.Ub)
		xg = ClipTo(xg, g.Lb, g.Ub)
		if xf > xg {
			continue
		}
		line := LineThrough(xf, f.Eval(xf), xg, g.Eval(xg))
		out.Reset()
		out.Push(shrinkTo(f, f.Lb, xf))
		out.Push(shrinkTo(line, xf, xg))
		out.Push(shrinkTo(g, xg, g.Ub))
		return Approx(xf, f.Lb), Approx(xg, g.Ub), true
	}
	return false, false, false
}

// bridgeCurvedEndpoint is bridge cases 2/3/4 and their case-5 mirror: one of
// f, g (selected by curvedIsF) has P > 0 and supplies the interior tangent
// point; the other supplies a fixed contact point at one of its own
// endpoints, or, if it is an unbounded affine ray, a slope-matched contact
// at infinity.
func bridgeCurvedEndpoint(f, g BoundedQuadratic, curvedIsF bool, out *bqBuffer) (interLeft, interRight, ok bool) {
	curved, other := f, g
	if !curvedIsF {
		curved, other = g, f
	}
	if curved.P <= 0 {
		return false, false, false
	}

	// Case 4 (curvedIsF): other is a bare affine ray running to +∞. Its
	// mirror (curvedIsF false): other is a bare affine ray running to -∞.
	// Either way the tangent point is fixed by matching slopes, not by a
	// specific point.
	isRay := other.P == 0 && (curvedIsF && math.IsInf(other.Ub, 1) || !curvedIsF && math.IsInf(other.Lb, -1))
	if isRay {
		xc := (other.Q - curved.Q) / (2 * curved.P)
		if Lesseq(curved.Lb, xc) && Gtreq(curved.Ub, xc) {
			xc = ClipTo(xc, curved.Lb, curved.Ub)
			ray := curved.Tangent(xc)
			out.Reset()
			if curvedIsF {
				out.Push(shrinkTo(curved, curved.Lb, xc))
				out.Push(shrinkTo(ray, xc, math.Inf(1)))
				return Approx(xc, curved.Lb), false, true
			}
			out.Push(shrinkTo(ray, math.Inf(-1), xc))
			out.Push(shrinkTo(curved, xc, curved.Ub))
			return false, Approx(xc, curved.Ub), true
		}
	}

	type endpointCandidate struct {
		x, y    float64
		isUpper bool
	}
	var cands [2]endpointCandidate
	nCands := 0
	if !math.IsInf(other.Lb, 0) {
		cands[nCands] = endpointCandidate{other.Lb, other.Eval(other.Lb), false}
		nCands++
	}
	if !math.IsInf(other.Ub, 0) {
		cands[nCands] = endpointCandidate{other.Ub, other.Eval(other.Ub), true}
		nCands++
	}

	for _, c := range cands[:nCands] {
		xc, okc := tangentThroughPoint(curved, c.x, c.y)
		if !okc {
			continue
		}
		line := LineThrough(xc, curved.Eval(xc), c.x, c.y)

		if curvedIsF {
			if xc > c.x {
				continue
			}
			bridge := shrinkTo(line, xc, c.x)
			restrictedCurved := shrinkTo(curved, curved.Lb, xc)
			left := Approx(xc, curved.Lb)
			out.Reset()
			if c.isUpper {
				// Tangent touches other at its own upper endpoint: other is
				// consumed entirely by the bridge.
				out.Push(restrictedCurved)
				out.Push(bridge)
				return left, Approx(xc, curved.Ub), true
			}
			out.Push(restrictedCurved)
			out.Push(bridge)
			out.Push(other)
			return left, false, true
		}

		if xc < c.x {
			continue
		}
		bridge := shrinkTo(line, c.x, xc)
		restrictedCurved := shrinkTo(curved, xc, curved.Ub)
		right := Approx(xc, curved.Ub)
		out.Reset()
		if !c.isUpper {
			// Tangent touches other (which sits to the left of curved) at
			// its own lower endpoint: other collapses to a point and the
			// caller must keep unwinding further back.
			point := BoundedQuadratic{Lb: other.Lb, Ub: other.Lb, P: 0, Q: 0, R: other.Eval(other.Lb)}
			out.Push(point)
			out.Push(bridge)
			out.Push(restrictedCurved)
			return true, right, true
		}
		out.Push(other)
		out.Push(bridge)
		out.Push(restrictedCurved)
		return false, right, true
	}
	return false, false, false
}

// bridgeEndpointEndpoint is bridge case 6: neither f nor g has an interior
// tangent point available to use, so the bridge is either "both pieces
// already join convexly, keep them" (6a), a terminating affine ray through
// one of f's endpoints when g is an affine ray out to +∞ (6e/6f), a ray of
// f's slope through g's upper endpoint when f is an affine ray from -∞, or a
// chord from f's upper to g's lower endpoint (6b) or from f's lower to g's
// upper endpoint (6c). A chord from f's upper to g's upper endpoint (6d) is
// not tried, nor is a ray through g's lower endpoint.
func bridgeEndpointEndpoint(f, g BoundedQuadratic, out *bqBuffer) (interLeft, interRight, ok bool) {
	if Approx(f.Ub, g.Lb) && Approx(f.Eval(f.Ub), g.Eval(g.Lb)) {
		leftDeriv := f.Derivative().Eval(f.Ub)
		rightDeriv := g.Derivative().Eval(g.Lb)
		if Lesseq(leftDeriv, rightDeriv) {
			out.Reset()
			switch {
			case f.IsPoint():
				out.Push(g)
			case g.IsPoint():
				out.Push(f)
			default:
				out.Push(f)
				out.Push(g)
			}
			return false, false, true
		}
		// Touching but concave at the join: fall through to the ray/chord
		// cases below instead of returning here.
	}

	if g.P == 0 && math.IsInf(g.Ub, 1) {
		for _, useLower := range [2]bool{true, false} {
			x0, y0 := f.Ub, f.Eval(f.Ub)
			if useLower {
				x0, y0 = f.Lb, f.Eval(f.Lb)
			}
			if math.IsInf(x0, 0) {
				continue
			}
			ray := shrinkTo(NewUnboundedQuadratic(0, g.Q, y0-g.Q*x0), x0, math.Inf(1))
			if liesBelowOn(ray, f) {
				out.Reset()
				out.Push(ray)
				return useLower, false, true
			}
		}
	}

	// Mirror of the ray case: f is a bare affine ray from -∞, so try f's
	// slope through g's upper endpoint, replacing both pieces.
	if f.P == 0 && math.IsInf(f.Lb, -1) && !math.IsInf(g.Ub, 0) {
		ray := shrinkTo(NewUnboundedQuadratic(0, f.Q, g.Eval(g.Ub)-f.Q*g.Ub), math.Inf(-1), g.Ub)
		if liesBelowOn(ray, f) && liesBelowOn(ray, g) {
			out.Reset()
			out.Push(ray)
			return false, false, true
		}
	}

	type endpointPair struct{ x1, y1, x2, y2 float64 }
	var candidates [2]endpointPair
	nCandidates := 0
	candidates[nCandidates] = endpointPair{f.Ub, f.Eval(f.Ub), g.Lb, g.Eval(g.Lb)}
	nCandidates++
	if !math.IsInf(f.Lb, 0) && !math.IsInf(g.Ub, 0) {
		candidates[nCandidates] = endpointPair{f.Lb, f.Eval(f.Lb), g.Ub, g.Eval(g.Ub)}
		nCandidates++
	}
	for _, c := range candidates[:nCandidates] {
		if Approx(c.x1, c.x2) {
			continue
		}
		lo, hi := c.x1, c.x2
		if lo > hi {
			lo, hi = hi, lo
		}
		chord := shrinkTo(LineThrough(c.x1, c.y1, c.x2, c.y2), lo, hi)
		if liesBelowOn(chord, f) && liesBelowOn(chord, g) {
			out.Reset()
			out.Push(chord)
			return false, false, true
		}
	}

	return false, false, false
}

// bridge dispatches to whichever bridge case applies to the pair (f, g),
// tried in geometric order (mid-mid, curved-endpoint and its mirror, then
// endpoint-endpoint), writing the result pieces into out. Panics if none
// applies, a condition the driver in Envelope treats as a logic error, not
// user input.
func bridge(f, g BoundedQuadratic, out *bqBuffer) (interLeft, interRight bool) {
	if interLeft, interRight, ok := bridgeMidMid(f, g, out); ok {
		return interLeft, interRight
	}
	if interLeft, interRight, ok := bridgeCurvedEndpoint(f, g, true, out); ok {
		return interLeft, interRight
	}
	if interLeft, interRight, ok := bridgeCurvedEndpoint(f, g, false, out); ok {
		return interLeft, interRight
	}
	if interLeft, interRight, ok := bridgeEndpointEndpoint(f, g, out); ok {
		return interLeft, interRight
	}
	panic(fmt.Sprintf("pwq: envelope, no bridge case applies between %v and %v", f, g))
}

// appendPiece merges g into h, h's topmost piece first, back-popping h and
// re-resolving whenever a bridge signals its contact point sits at the
// merged piece's own left edge (interLeft): the piece it just consumed
// contributed nothing of its own, so the envelope must keep looking further
// back into h for the real supporting line. Any bridge pieces produced
// beyond the leftmost one are already settled and are saved off the shared
// scratch buffer before any recursive re-resolution, then pushed back once
// it returns.
//
// scratch is the 3-slot bridge-case output buffer, reused across every
// appendPiece call in a single Envelope run so the back-pop loop allocates
// nothing; tail holds onto scratch's non-leading pieces across a recursive
// call, since the recursion reuses scratch itself.
func appendPiece(h *bqBuffer, g BoundedQuadratic, scratch *bqBuffer) {
	if h.Len() == 0 {
		h.Push(g)
		return
	}
	top, _ := h.Pop()
	interLeft, _ := bridge(top, g, scratch)
	if scratch.Len() == 0 {
		panic("pwq: envelope, bridge case produced no pieces")
	}
	first := scratch.Get(0)
	var tail [2]BoundedQuadratic
	nTail := 0
	for i := 1; i < scratch.Len(); i++ {
		tail[nTail] = scratch.Get(i)
		nTail++
	}
	if interLeft && h.Len() > 0 {
		appendPiece(h, first, scratch)
		for _, p := range tail[:nTail] {
			h.Push(p)
		}
		return
	}
	h.Push(first)
	for _, p := range tail[:nTail] {
		h.Push(p)
	}
}

// Envelope returns the greatest convex piecewise quadratic that is ≤ f
// everywhere: the largest g with g convex and g(x) ≤ f(x) for every x. f's
// pieces need not individually be convex or already in envelope form.
func Envelope(f PiecewiseQuadratic) PiecewiseQuadratic {
	if len(f) == 0 {
		return nil
	}
	h := newBQBuffer(4*len(f) + 8)
	scratch := newBQBuffer(3)
	for _, piece := range f {
		if piece.IsEmpty() {
			continue
		}
		appendPiece(&h, piece, &scratch)
	}
	return h.ToSlice()
}
