package pwq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPiecewiseQuadraticEvalFirstMatchWins(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 10, 0, 0, 1),
		NewBoundedQuadratic(5, 10, 0, 0, 99),
	}
	require.Equal(t, 1.0, f.Eval(7))
	require.True(t, math.IsInf(f.Eval(20), 1))
}

func TestPiecewiseQuadraticDomainIsConvexHull(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 0, 0),
		NewBoundedQuadratic(5, 10, 0, 0, 0),
	}
	dom := f.Domain()
	require.Equal(t, 0.0, dom.Lb)
	require.Equal(t, 10.0, dom.Ub)
}

func TestPiecewiseQuadraticPushPopTruncate(t *testing.T) {
	var f PiecewiseQuadratic
	f.Push(NewBoundedQuadratic(0, 1, 0, 0, 0), false)
	f.Push(NewBoundedQuadratic(1, 2, 0, 0, 1), false)
	require.Len(t, f, 2)

	last, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, 1.0, last.R)
	require.Len(t, f, 1)

	f.Push(NewBoundedQuadratic(1, 2, 0, 0, 1), false)
	f.Push(NewBoundedQuadratic(2, 3, 0, 0, 2), false)
	f.Truncate(1)
	require.Len(t, f, 1)
	require.Equal(t, 0.0, f[0].R)
}

func TestPiecewiseQuadraticReverseIsInvolution(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 1, 2, 3),
		NewBoundedQuadratic(1, 5, 0, 1, 0),
	}
	got := f.Reverse().Reverse()
	require.Equal(t, f, got)
	for x := 0.0; x <= 5.0; x += 0.5 {
		require.InDelta(t, f.Eval(x), f.Reverse().Eval(-x), 1e-9)
	}
}

func TestPiecewiseQuadraticRestrictDomDropsEmptyPieces(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 0, 0),
		NewBoundedQuadratic(5, 10, 0, 0, 0),
	}
	got := f.RestrictDom(Interval{Lb: 2, Ub: 6})
	require.Len(t, got, 1)
	require.Equal(t, 5.0, got[0].Lb)
	require.Equal(t, 6.0, got[0].Ub)
}

func TestPiecewiseQuadraticIsConvex(t *testing.T) {
	var empty PiecewiseQuadratic
	require.True(t, empty.IsConvex())

	convex := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 0, 0),
		NewBoundedQuadratic(1, 2, 0, 1, -1),
	}
	require.True(t, convex.IsConvex())

	nonConvex := PiecewiseQuadratic{
		NewBoundedQuadratic(-1, 0, 0, 2, 0),
		NewBoundedQuadratic(0, 1, 0, 0, 0),
	}
	require.False(t, nonConvex.IsConvex())
}

func TestPiecewiseQuadraticSimplifyRule2KeepsSmallerPoint(t *testing.T) {
	f := PiecewiseQuadratic{
		{Lb: 1, Ub: 1, P: 0, Q: 0, R: 5},
		{Lb: 1, Ub: 1, P: 0, Q: 0, R: 2},
	}
	got := f.Simplify()
	require.Len(t, got, 1)
	require.Equal(t, 2.0, got[0].R)
}

func TestPiecewiseQuadraticSimplifyRule3DropsRedundantPoint(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 1, 0),
		{Lb: 1, Ub: 1, P: 0, Q: 0, R: 1},
	}
	got := f.Simplify()
	require.Len(t, got, 1)
	require.Equal(t, 1.0, got[0].Ub)
}

func TestPiecewiseQuadraticSimplifyRule4FusesIdenticalPieces(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 1, 2, 3),
		NewBoundedQuadratic(1, 2, 1, 2, 3),
	}
	got := f.Simplify()
	require.Len(t, got, 1)
	require.Equal(t, 0.0, got[0].Lb)
	require.Equal(t, 2.0, got[0].Ub)
}

func TestPiecewiseQuadraticSimplifyRule5DropsPointRegardlessOfValue(t *testing.T) {
	// Two point pieces wedged between two intervals that already meet at the
	// same boundary. Neither point is ever reachable under first-match-wins
	// evaluation, however their own values compare to the intervals', so
	// simplify must drop both and leave the two intervals untouched.
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 3, 0, 0, 4),
		{Lb: 3, Ub: 3, P: 0, Q: 0, R: 1},
		{Lb: 3, Ub: 3, P: 0, Q: 0, R: 50},
		NewBoundedQuadratic(3, 4, 0, 0, 20),
	}
	got := f.Simplify()
	require.Len(t, got, 2)
	require.Equal(t, 0.0, got[0].Lb)
	require.Equal(t, 3.0, got[0].Ub)
	require.Equal(t, 4.0, got[0].R)
	require.Equal(t, 3.0, got[1].Lb)
	require.Equal(t, 4.0, got[1].Ub)
	require.Equal(t, 20.0, got[1].R)
}

func TestPiecewiseQuadraticSimplifyWorkedExample(t *testing.T) {
	// A point exactly at the join of two continuing pieces, with the
	// point's own value above the continuing piece's.
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 0, 0),
		{Lb: 1, Ub: 1, P: 0, Q: 0, R: 10},
		NewBoundedQuadratic(1, 2, 0, 1, -1),
	}
	got := f.Simplify()
	require.Len(t, got, 2)
	require.Equal(t, 0.0, got[0].Lb)
	require.Equal(t, 1.0, got[0].Ub)
	require.Equal(t, 1.0, got[1].Lb)
	require.Equal(t, 2.0, got[1].Ub)
}

func TestPiecewiseQuadraticStringJoinsPieces(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 0, 0),
		NewBoundedQuadratic(1, 2, 0, 1, -1),
	}
	s := f.String()
	require.Contains(t, s, "\n")
	require.Contains(t, s, "BoundedQuadratic")
}

func TestSumReexportsMergeSum(t *testing.T) {
	f := PiecewiseQuadratic{NewBoundedQuadratic(0, 5, 1, 0, 0)}
	g := PiecewiseQuadratic{NewBoundedQuadratic(0, 5, 0, 1, 0)}
	got := Sum(f, g)
	require.InDelta(t, f.Eval(3)+g.Eval(3), got.Eval(3), 1e-9)
}
