package pwq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinimizeSinglePiece(t *testing.T) {
	f := PiecewiseQuadratic{NewBoundedQuadratic(-5, 5, 1, 0, -3)}
	x, v := f.Minimize()
	require.InDelta(t, 0.0, x, 1e-9)
	require.InDelta(t, -3.0, v, 1e-9)
}

func TestMinimizePicksBestAcrossPieces(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 1, 0, 1),     // x^2+1, min 1 at x=0
		NewBoundedQuadratic(1, 3, 1, -4, 4),    // (x-2)^2, min 0 at x=2
		NewBoundedQuadratic(3, 4, 1, -14, 49),  // (x-7)^2, vertex out of domain, clipped to x=4
	}
	x, v := f.Minimize()
	require.InDelta(t, 2.0, x, 1e-9)
	require.InDelta(t, 0.0, v, 1e-9)
}

func TestMinimizeTiesBreakToEarlierPiece(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 0, 5),
		NewBoundedQuadratic(1, 2, 0, 0, 5),
	}
	x, v := f.Minimize()
	require.Equal(t, 0.0, x)
	require.Equal(t, 5.0, v)
}

func TestMinimizeEmpty(t *testing.T) {
	var f PiecewiseQuadratic
	x, v := f.Minimize()
	require.True(t, math.IsNaN(x))
	require.True(t, math.IsInf(v, 1))
}
