package pwq

import (
	"math"
	"strings"
)

// PiecewiseQuadratic is an ordered, finite sequence of BoundedQuadratic
// pieces. Evaluation uses "first match wins": f(x) is the value of the
// first piece (in order) whose domain contains x. Pieces need not be
// disjoint, contiguous, or sorted; callers that need "take the minimum
// where pieces overlap" must construct the overlap in min-first order.
// Simplify only resolves point pieces at a shared boundary and fuses
// identical neighbors; it does not reorder or split other overlapping
// pieces, so on such an overlap the earlier piece still wins.
type PiecewiseQuadratic []BoundedQuadratic

// NewPiecewiseQuadratic builds a PiecewiseQuadratic from pieces. If
// runSimplify is true, the result is passed through Simplify before being
// returned.
func NewPiecewiseQuadratic(pieces []BoundedQuadratic, runSimplify bool) PiecewiseQuadratic {
	f := PiecewiseQuadratic(append([]BoundedQuadratic(nil), pieces...))
	if runSimplify {
		return f.Simplify()
	}
	return f
}

// Indicator returns the PiecewiseQuadratic with a single piece (lb, ub, 0,
// 0, 0): zero on [lb, ub], +∞ elsewhere.
func Indicator(lb, ub float64) PiecewiseQuadratic {
	return PiecewiseQuadratic{{Lb: lb, Ub: ub, P: 0, Q: 0, R: 0}}
}

// Zero returns the indicator of the whole real line: identically 0
// everywhere.
func Zero() PiecewiseQuadratic {
	return Indicator(math.Inf(-1), math.Inf(1))
}

// IsEmpty reports whether f has no pieces, or every piece it has is empty.
func (f PiecewiseQuadratic) IsEmpty() bool {
	for _, piece := range f {
		if !piece.IsEmpty() {
			return false
		}
	}
	return true
}

// Domain returns the smallest interval containing every piece's domain.
// Because pieces may have gaps between them, this is the convex hull of
// the domain, not necessarily the domain itself.
func (f PiecewiseQuadratic) Domain() Interval {
	dom := Interval{Lb: math.Inf(1), Ub: math.Inf(-1)}
	for _, piece := range f {
		if piece.IsEmpty() {
			continue
		}
		dom.Lb = min(dom.Lb, piece.Lb)
		dom.Ub = max(dom.Ub, piece.Ub)
	}
	return dom
}

// Eval returns f(x): the value of the first piece whose domain contains x,
// or +∞ if no piece does.
func (f PiecewiseQuadratic) Eval(x float64) float64 {
	for _, piece := range f {
		if piece.Domain().Contains(x) {
			return piece.Eval(x)
		}
	}
	return math.Inf(1)
}

// Push appends piece to f. With simplifyResult, Simplify is run on
// the tail affected by the new piece (in practice, the whole sequence,
// since Simplify's rules can cascade back past more than one prior piece).
func (f *PiecewiseQuadratic) Push(piece BoundedQuadratic, simplifyResult bool) {
	*f = append(*f, piece)
	if simplifyResult {
		*f = f.Simplify()
	}
}

// Pop removes and returns the last piece, reporting whether there was one.
func (f *PiecewiseQuadratic) Pop() (BoundedQuadratic, bool) {
	if len(*f) == 0 {
		return BoundedQuadratic{}, false
	}
	last := (*f)[len(*f)-1]
	*f = (*f)[:len(*f)-1]
	return last, true
}

// Truncate shortens f to its first n pieces.
func (f *PiecewiseQuadratic) Truncate(n int) {
	*f = (*f)[:n]
}

func mapPieces(f PiecewiseQuadratic, op func(BoundedQuadratic) BoundedQuadratic) PiecewiseQuadratic {
	out := make(PiecewiseQuadratic, len(f))
	for i, piece := range f {
		out[i] = op(piece)
	}
	return out
}

// AddScalar returns f + a, applied piece-wise.
func (f PiecewiseQuadratic) AddScalar(a float64) PiecewiseQuadratic {
	return mapPieces(f, func(p BoundedQuadratic) BoundedQuadratic { return p.AddScalar(a) })
}

// Mul returns alpha * f, applied piece-wise.
func (f PiecewiseQuadratic) Mul(alpha float64) PiecewiseQuadratic {
	return mapPieces(f, func(p BoundedQuadratic) BoundedQuadratic { return p.Mul(alpha) })
}

// Neg returns -f, applied piece-wise. Panics unless every piece is affine.
func (f PiecewiseQuadratic) Neg() PiecewiseQuadratic {
	return mapPieces(f, BoundedQuadratic.Neg)
}

// Shift returns g(x) = f(x - delta), applied piece-wise.
func (f PiecewiseQuadratic) Shift(delta float64) PiecewiseQuadratic {
	return mapPieces(f, func(p BoundedQuadratic) BoundedQuadratic { return p.Shift(delta) })
}

// Tilt returns g(x) = f(x) + alpha*x, applied piece-wise.
func (f PiecewiseQuadratic) Tilt(alpha float64) PiecewiseQuadratic {
	return mapPieces(f, func(p BoundedQuadratic) BoundedQuadratic { return p.Tilt(alpha) })
}

// ScaleDomain returns g(x) = f(alpha*x), applied piece-wise.
func (f PiecewiseQuadratic) ScaleDomain(alpha float64) PiecewiseQuadratic {
	return mapPieces(f, func(p BoundedQuadratic) BoundedQuadratic { return p.ScaleDomain(alpha) })
}

// Perspective returns g(x) = alpha * f(x/alpha), applied piece-wise.
func (f PiecewiseQuadratic) Perspective(alpha float64) PiecewiseQuadratic {
	return mapPieces(f, func(p BoundedQuadratic) BoundedQuadratic { return p.Perspective(alpha) })
}

// Reverse returns g(x) = f(-x): every piece is reversed, and the piece
// order itself is reversed so the sequence stays left-to-right. Where two
// pieces share a breakpoint, first-match evaluation of g there picks the
// piece that came later in f, so g(x) = f(-x) does not hold at such a point
// if the two pieces disagree there.
func (f PiecewiseQuadratic) Reverse() PiecewiseQuadratic {
	out := make(PiecewiseQuadratic, len(f))
	for i, piece := range f {
		out[len(f)-1-i] = piece.Reverse()
	}
	return out
}

// RestrictDom intersects every piece's domain with dom, dropping pieces
// whose restricted domain becomes empty (unlike BoundedQuadratic.RestrictDom,
// an empty result here is a represented, non-fatal value).
func (f PiecewiseQuadratic) RestrictDom(dom Interval) PiecewiseQuadratic {
	var out PiecewiseQuadratic
	for _, piece := range f {
		newDom := piece.Domain().Intersect(dom)
		if newDom.IsEmpty() {
			continue
		}
		out = append(out, BoundedQuadratic{Lb: newDom.Lb, Ub: newDom.Ub, P: piece.P, Q: piece.Q, R: piece.R})
	}
	return out
}

// ExtendDom extends every piece's domain to the whole real line.
func (f PiecewiseQuadratic) ExtendDom() PiecewiseQuadratic {
	return mapPieces(f, BoundedQuadratic.ExtendDom)
}

// IsConvex reports whether f is convex: every piece is convex, every
// adjacent pair is continuous and overlapping, and the left-derivative
// never exceeds the right-derivative at a join. An empty sequence is
// vacuously convex.
func (f PiecewiseQuadratic) IsConvex() bool {
	if len(f) == 0 {
		return true
	}
	for i, piece := range f {
		if !piece.IsConvex() {
			return false
		}
		if i == 0 {
			continue
		}
		prev := f[i-1]
		if !ContinuousAndOverlapping(prev, piece) {
			return false
		}
		leftDeriv := prev.Derivative().Eval(prev.Ub)
		rightDeriv := piece.Derivative().Eval(piece.Lb)
		if !Lesseq(leftDeriv, rightDeriv) {
			return false
		}
	}
	return true
}

func (f PiecewiseQuadratic) String() string {
	lines := make([]string, len(f))
	for i, piece := range f {
		lines[i] = piece.String()
	}
	return strings.Join(lines, "\n")
}

// coefficientIdentical reports whether f and g are the same function once
// their domains are both extended to the whole real line.
func coefficientIdentical(f, g BoundedQuadratic) bool {
	return f.ExtendDom().Approx(g.ExtendDom())
}

// Simplify canonicalizes f by dropping empty pieces, collapsing redundant
// point pieces, and fusing coefficient-identical adjacent pieces, applying
// the six structural reduction rules below in order.
func (f PiecewiseQuadratic) Simplify() PiecewiseQuadratic {
	var out PiecewiseQuadratic
	for _, cur := range f {
		if cur.IsEmpty() {
			continue
		}
		if len(out) == 0 {
			out = append(out, cur)
			continue
		}
		prev := out[len(out)-1]
		prevIsPoint, curIsPoint := prev.IsPoint(), cur.IsPoint()

		switch {
		case prevIsPoint && curIsPoint && Approx(prev.Lb, cur.Lb):
			// Rule 2: two points at the same x, keep the smaller value.
			if cur.Eval(cur.Lb) < prev.Eval(prev.Lb) {
				out[len(out)-1] = cur
			}
			continue

		case (prevIsPoint != curIsPoint) && ContinuousAndOverlapping(prev, cur):
			// Rule 3: a point glued onto a continuing piece, drop the
			// point, keep the other restricted to the joint domain.
			nonPoint := prev
			if prevIsPoint {
				nonPoint = cur
			}
			out[len(out)-1] = BoundedQuadratic{
				Lb: prev.Lb, Ub: cur.Ub,
				P: nonPoint.P, Q: nonPoint.Q, R: nonPoint.R,
			}
			continue

		case !prevIsPoint && !curIsPoint && Approx(prev.Ub, cur.Lb) && coefficientIdentical(prev, cur):
			// Rule 4: coefficient-identical adjacent pieces, fuse them.
			out[len(out)-1] = BoundedQuadratic{
				Lb: prev.Lb, Ub: cur.Ub,
				P: cur.P, Q: cur.Q, R: cur.R,
			}
			continue

		case (prevIsPoint != curIsPoint) && Approx(prev.Ub, cur.Lb):
			// Rule 5: boundaries coincide and exactly one side is a single
			// point sitting on the other's edge. The point is dropped
			// whatever value it holds: it adds no domain the interval piece
			// doesn't already cover at that boundary. When the point came
			// first, it was the piece first-match evaluation picked at that
			// x, so the value there becomes the interval's.
			if prevIsPoint {
				out[len(out)-1] = cur
			}
			// else: prev is already the surviving interval piece; drop cur.
			continue

		default:
			// Rule 6: no special case applies, append unchanged.
			out = append(out, cur)
		}
	}
	return out
}

// Sum returns the piece-wise sum of fs on every maximal subinterval where
// all inputs are defined; see sum.go for the sweep that implements this.
func Sum(fs ...PiecewiseQuadratic) PiecewiseQuadratic {
	return mergeSum(fs)
}
