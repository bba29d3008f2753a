package pwq

import (
	"fmt"
	"math"
)

// Interval is a closed, possibly unbounded scalar domain [Lb, Ub]. NaN bounds
// are never valid; Lb = -Inf and Ub = +Inf are.
type Interval struct {
	Lb, Ub float64
}

// WholeLine returns the interval (-∞, +∞).
func WholeLine() Interval {
	return Interval{Lb: math.Inf(-1), Ub: math.Inf(1)}
}

// NewInterval constructs Interval{lb, ub}. Panics if either bound is NaN.
func NewInterval(lb, ub float64) Interval {
	if math.IsNaN(lb) || math.IsNaN(ub) {
		panic(fmt.Sprintf("pwq: NaN interval bound (%g, %g)", lb, ub))
	}
	return Interval{Lb: lb, Ub: ub}
}

// IsEmpty reports whether the interval is empty, i.e. Lb > Ub. Singleton
// intervals (Lb == Ub) are not empty.
func (iv Interval) IsEmpty() bool {
	return iv.Lb > iv.Ub
}

// Contains reports whether x lies in the closed interval [Lb, Ub].
func (iv Interval) Contains(x float64) bool {
	return iv.Lb <= x && x <= iv.Ub
}

// Includes reports whether other is entirely contained within iv.
func (iv Interval) Includes(other Interval) bool {
	return iv.Lb <= other.Lb && other.Ub <= iv.Ub
}

// Intersect returns the intersection of iv and other. The result may be
// empty; callers must inspect IsEmpty.
func (iv Interval) Intersect(other Interval) Interval {
	return Interval{Lb: max(iv.Lb, other.Lb), Ub: min(iv.Ub, other.Ub)}
}

// Less reports whether iv is entirely, strictly to the left of other
// (iv.Ub < other.Lb).
func (iv Interval) Less(other Interval) bool {
	return iv.Ub < other.Lb
}

// Greater reports whether iv is entirely, strictly to the right of other.
func (iv Interval) Greater(other Interval) bool {
	return iv.Lb > other.Ub
}

// Approx reports whether iv and other agree to within Epsilon on both
// bounds.
func (iv Interval) Approx(other Interval) bool {
	return Approx(iv.Lb, other.Lb) && Approx(iv.Ub, other.Ub)
}

// IsPoint reports whether iv is a singleton, Lb == Ub exactly.
func (iv Interval) IsPoint() bool {
	return iv.Lb == iv.Ub
}

func (iv Interval) String() string {
	if math.IsInf(iv.Lb, -1) && math.IsInf(iv.Ub, 1) {
		return "ℝ"
	}
	return fmt.Sprintf("[%.5f, %.5f]", iv.Lb, iv.Ub)
}
