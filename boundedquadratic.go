package pwq

import (
	"fmt"
	"math"
)

// BoundedQuadratic is a single quadratic piece p·x² + q·x + r defined on the
// closed interval [Lb, Ub]. P, Q, R must always be finite; Lb and Ub may be
// ±∞ but never NaN.
type BoundedQuadratic struct {
	Lb, Ub  float64
	P, Q, R float64
}

func requireFinite(p, q, r float64) {
	if math.IsInf(p, 0) || math.IsNaN(p) ||
		math.IsInf(q, 0) || math.IsNaN(q) ||
		math.IsInf(r, 0) || math.IsNaN(r) {
		panic(fmt.Sprintf("pwq: non-finite coefficients (p=%g, q=%g, r=%g)", p, q, r))
	}
}

// NewBoundedQuadratic constructs a piece on [lb, ub]. Panics if p, q, or r
// is not finite, or if lb/ub is NaN.
func NewBoundedQuadratic(lb, ub, p, q, r float64) BoundedQuadratic {
	if math.IsNaN(lb) || math.IsNaN(ub) {
		panic(fmt.Sprintf("pwq: NaN domain bound (%g, %g)", lb, ub))
	}
	requireFinite(p, q, r)
	return BoundedQuadratic{Lb: lb, Ub: ub, P: p, Q: q, R: r}
}

// NewUnboundedQuadratic constructs p·x² + q·x + r over the whole real line.
func NewUnboundedQuadratic(p, q, r float64) BoundedQuadratic {
	requireFinite(p, q, r)
	return BoundedQuadratic{Lb: math.Inf(-1), Ub: math.Inf(1), P: p, Q: q, R: r}
}

// NewBoundedQuadraticOn constructs p·x² + q·x + r on dom.
func NewBoundedQuadraticOn(dom Interval, p, q, r float64) BoundedQuadratic {
	return NewBoundedQuadratic(dom.Lb, dom.Ub, p, q, r)
}

// Domain returns the piece's domain as an Interval.
func (f BoundedQuadratic) Domain() Interval {
	return Interval{Lb: f.Lb, Ub: f.Ub}
}

// IsEmpty reports whether f's domain is empty.
func (f BoundedQuadratic) IsEmpty() bool {
	return f.Domain().IsEmpty()
}

// IsPoint reports whether f's domain is a singleton, Lb == Ub exactly.
func (f BoundedQuadratic) IsPoint() bool {
	return f.Lb == f.Ub
}

// IsAlmostPoint reports whether f's domain has width at most Epsilon.
func (f BoundedQuadratic) IsAlmostPoint() bool {
	return math.Abs(f.Lb-f.Ub) <= Epsilon
}

// IsConvex reports whether f, taken alone, is convex (p >= 0).
func (f BoundedQuadratic) IsConvex() bool {
	return f.P >= 0
}

// Eval returns f(x): p·x² + q·x + r if x is in [Lb, Ub], +∞ otherwise.
func (f BoundedQuadratic) Eval(x float64) float64 {
	if !f.Domain().Contains(x) {
		return math.Inf(1)
	}
	return f.P*x*x + f.Q*x + f.R
}

// Approx reports whether f and g agree, field by field, to within Epsilon
// (or bitwise, which also covers infinite domain bounds).
func (f BoundedQuadratic) Approx(g BoundedQuadratic) bool {
	return Approx(f.Lb, g.Lb) && Approx(f.Ub, g.Ub) &&
		Approx(f.P, g.P) && Approx(f.Q, g.Q) && Approx(f.R, g.R)
}

// Neg returns -f. Panics unless f is affine (P == 0); negating a quadratic
// term would flip convexity in a way the rest of the engine does not expect.
func (f BoundedQuadratic) Neg() BoundedQuadratic {
	if f.P != 0 {
		panic(fmt.Sprintf("pwq: Neg requires an affine piece, got p=%g", f.P))
	}
	return BoundedQuadratic{Lb: f.Lb, Ub: f.Ub, P: -f.P, Q: -f.Q, R: -f.R}
}

// AddScalar returns f + a.
func (f BoundedQuadratic) AddScalar(a float64) BoundedQuadratic {
	return BoundedQuadratic{Lb: f.Lb, Ub: f.Ub, P: f.P, Q: f.Q, R: f.R + a}
}

// Add returns f + g on the intersection of their domains, and whether that
// intersection is non-empty. When ok is false the returned value is not
// meaningful.
func (f BoundedQuadratic) Add(g BoundedQuadratic) (sum BoundedQuadratic, ok bool) {
	dom := f.Domain().Intersect(g.Domain())
	if dom.IsEmpty() {
		return BoundedQuadratic{}, false
	}
	return BoundedQuadratic{Lb: dom.Lb, Ub: dom.Ub, P: f.P + g.P, Q: f.Q + g.Q, R: f.R + g.R}, true
}

// Mul returns alpha * f.
func (f BoundedQuadratic) Mul(alpha float64) BoundedQuadratic {
	return BoundedQuadratic{Lb: f.Lb, Ub: f.Ub, P: alpha * f.P, Q: alpha * f.Q, R: alpha * f.R}
}

// ScaleDomain returns g(x) = f(alpha*x), i.e. the domain is scaled by 1/alpha
// and the coefficients adjusted to compensate. Panics if alpha == 0.
func (f BoundedQuadratic) ScaleDomain(alpha float64) BoundedQuadratic {
	if alpha == 0 {
		panic("pwq: ScaleDomain requires a non-zero factor")
	}
	lb, ub := f.Lb/alpha, f.Ub/alpha
	if lb > ub {
		lb, ub = ub, lb
	}
	return BoundedQuadratic{Lb: lb, Ub: ub, P: alpha * alpha * f.P, Q: alpha * f.Q, R: f.R}
}

// Perspective returns g(x) = alpha * f(x/alpha). Panics if alpha == 0.
func (f BoundedQuadratic) Perspective(alpha float64) BoundedQuadratic {
	if alpha == 0 {
		panic("pwq: Perspective requires a non-zero factor")
	}
	lb, ub := alpha*f.Lb, alpha*f.Ub
	if lb > ub {
		lb, ub = ub, lb
	}
	return BoundedQuadratic{Lb: lb, Ub: ub, P: f.P / alpha, Q: f.Q, R: alpha * f.R}
}

// Shift returns g(x) = f(x - delta).
func (f BoundedQuadratic) Shift(delta float64) BoundedQuadratic {
	return BoundedQuadratic{
		Lb: f.Lb + delta,
		Ub: f.Ub + delta,
		P:  f.P,
		Q:  f.Q - 2*f.P*delta,
		R:  f.P*delta*delta - f.Q*delta + f.R,
	}
}

// Tilt returns g(x) = f(x) + alpha*x.
func (f BoundedQuadratic) Tilt(alpha float64) BoundedQuadratic {
	return BoundedQuadratic{Lb: f.Lb, Ub: f.Ub, P: f.P, Q: f.Q + alpha, R: f.R}
}

// RestrictDom returns f restricted to dom ∩ f.Domain(). Panics if the result
// is empty: callers are expected to check feasibility before restricting.
func (f BoundedQuadratic) RestrictDom(dom Interval) BoundedQuadratic {
	newDom := f.Domain().Intersect(dom)
	if newDom.IsEmpty() {
		panic(fmt.Sprintf("pwq: RestrictDom(%v) on %v would be empty", dom, f))
	}
	return BoundedQuadratic{Lb: newDom.Lb, Ub: newDom.Ub, P: f.P, Q: f.Q, R: f.R}
}

// ExtendDom returns f with its domain extended to the whole real line.
func (f BoundedQuadratic) ExtendDom() BoundedQuadratic {
	return BoundedQuadratic{Lb: math.Inf(-1), Ub: math.Inf(1), P: f.P, Q: f.Q, R: f.R}
}

// Reverse returns g(x) = f(-x).
func (f BoundedQuadratic) Reverse() BoundedQuadratic {
	return BoundedQuadratic{Lb: -f.Ub, Ub: -f.Lb, P: f.P, Q: -f.Q, R: f.R}
}

// Derivative returns f'.
func (f BoundedQuadratic) Derivative() BoundedQuadratic {
	return BoundedQuadratic{Lb: f.Lb, Ub: f.Ub, P: 0, Q: 2 * f.P, R: f.Q}
}

// Tangent returns the (unbounded) affine piece tangent to f at x.
func (f BoundedQuadratic) Tangent(x float64) BoundedQuadratic {
	q := 2*f.P*x + f.Q
	r := f.R - f.P*x*x
	return NewUnboundedQuadratic(0, q, r)
}

// LineThrough returns the affine piece through (x1, y1) and (x2, y2). Panics
// if x1 == x2.
func LineThrough(x1, y1, x2, y2 float64) BoundedQuadratic {
	if x1 == x2 {
		panic("pwq: LineThrough requires distinct x coordinates")
	}
	q := (y2 - y1) / (x2 - x1)
	r := y1 - q*x1
	return NewUnboundedQuadratic(0, q, r)
}

// Minimize returns (x*, f(x*)), the minimizer and minimum value of f over its
// domain. If f's domain is empty, returns (NaN, +Inf).
func (f BoundedQuadratic) Minimize() (xStar, vStar float64) {
	if f.IsEmpty() {
		return math.NaN(), math.Inf(1)
	}
	switch {
	case f.P > 0:
		x := ClipTo(-f.Q/(2*f.P), f.Lb, f.Ub)
		return x, f.Eval(x)
	case f.P < 0:
		// Concave: the vertex is a maximum, so the minimum over a closed
		// interval sits at whichever endpoint is smaller. Needed for
		// PiecewiseQuadratic.Minimize and for the envelope's
		// chord-acceptance checks, both of which run over arbitrary,
		// not-yet-convexified pieces.
		if math.IsInf(f.Lb, -1) || math.IsInf(f.Ub, 1) {
			return math.NaN(), math.Inf(-1)
		}
		vLb, vUb := f.Eval(f.Lb), f.Eval(f.Ub)
		if vLb <= vUb {
			return f.Lb, vLb
		}
		return f.Ub, vUb
	case f.P == 0 && f.Q > 0:
		if math.IsInf(f.Lb, -1) {
			return math.NaN(), math.Inf(-1)
		}
		return f.Lb, f.Eval(f.Lb)
	case f.P == 0 && f.Q < 0:
		if math.IsInf(f.Ub, 1) {
			return math.NaN(), math.Inf(-1)
		}
		return f.Ub, f.Eval(f.Ub)
	default: // P == 0 && Q == 0
		if !math.IsInf(f.Lb, -1) {
			return f.Lb, f.Eval(f.Lb)
		}
		if !math.IsInf(f.Ub, 1) {
			return f.Ub, f.Eval(f.Ub)
		}
		return 0, f.Eval(0)
	}
}

// ContinuousAndOverlapping reports whether f and g are joinable end to end:
// f.Ub ≈ g.Lb and f(f.Ub) ≈ g(g.Lb).
func ContinuousAndOverlapping(f, g BoundedQuadratic) bool {
	return Approx(f.Ub, g.Lb) && Approx(f.Eval(f.Ub), g.Eval(g.Lb))
}

// diffOverShared returns the quadratic-minus-affine difference upper - lower
// restricted to upper's domain, for use by LessEq/ApproxLessEq.
func (lower BoundedQuadratic) diffOverShared(upper BoundedQuadratic) BoundedQuadratic {
	return BoundedQuadratic{
		Lb: upper.Lb, Ub: upper.Ub,
		P: upper.P,
		Q: upper.Q - lower.Q,
		R: upper.R - lower.R,
	}
}

// LessEq reports f ≤ g, which is only defined when f is affine (f.P == 0).
// Panics otherwise. Requires f's domain to exactly include g's domain, and
// the minimum of (g - f) over g's domain to be non-negative.
func (f BoundedQuadratic) LessEq(g BoundedQuadratic) bool {
	if f.P != 0 {
		panic(fmt.Sprintf("pwq: LessEq requires an affine lower operand, got p=%g", f.P))
	}
	if !f.Domain().Includes(g.Domain()) {
		return false
	}
	_, v := f.diffOverShared(g).Minimize()
	return v >= 0
}

// ApproxLessEq reports f ≲ g, the tolerant version of LessEq: f's domain
// must cover g's within Epsilon, and the minimum of (g - f) must be ≳ 0.
func (f BoundedQuadratic) ApproxLessEq(g BoundedQuadratic) bool {
	if f.P != 0 {
		panic(fmt.Sprintf("pwq: ApproxLessEq requires an affine lower operand, got p=%g", f.P))
	}
	if !Lesseq(f.Lb, g.Lb) || !Gtreq(f.Ub, g.Ub) {
		return false
	}
	_, v := f.diffOverShared(g).Minimize()
	return Gtreq(v, 0)
}

// Intersect restricts every piece in bqs to their shared domain, the
// intersection of all of bqs's own domains. ok is false (and the returned
// slice not meaningful) if that shared domain is empty.
func Intersect(bqs []BoundedQuadratic) (restricted []BoundedQuadratic, ok bool) {
	if len(bqs) == 0 {
		return nil, false
	}
	shared := bqs[0].Domain()
	for _, bq := range bqs[1:] {
		shared = shared.Intersect(bq.Domain())
	}
	if shared.IsEmpty() {
		return nil, false
	}
	out := make([]BoundedQuadratic, len(bqs))
	for i, bq := range bqs {
		out[i] = shrinkTo(bq, shared.Lb, shared.Ub)
	}
	return out, true
}

func (f BoundedQuadratic) String() string {
	return fmt.Sprintf(
		"BoundedQuadratic: f(x) = %.5fx² + %.5fx + %.5f, ∀x ∈ %s",
		f.P, f.Q, f.R, f.Domain(),
	)
}
