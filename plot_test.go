package pwq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleCoversFiniteDomain(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 0, 0),
		NewBoundedQuadratic(1, 10, 0, 1, -1),
	}
	xs, ys := Sample(f, 5)
	require.Len(t, xs, 5)
	require.Len(t, ys, 5)
	require.InDelta(t, 0.0, xs[0], 1e-9)
	require.InDelta(t, 10.0, xs[len(xs)-1], 1e-9)
	for i, x := range xs {
		require.InDelta(t, f.Eval(x), ys[i], 1e-9)
	}
}

func TestSampleClampsInfiniteEnds(t *testing.T) {
	f := PiecewiseQuadratic{
		NewBoundedQuadratic(math.Inf(-1), 0, 0, 1, 0),
		NewBoundedQuadratic(0, math.Inf(1), 1, 0, 0),
	}
	xs, ys := Sample(f, 10)
	for _, x := range xs {
		require.False(t, math.IsInf(x, 0))
	}
	require.Len(t, ys, 10)
}

func TestSampleClampsNBelowTwo(t *testing.T) {
	f := PiecewiseQuadratic{NewBoundedQuadratic(0, 1, 0, 0, 0)}
	xs, _ := Sample(f, 1)
	require.GreaterOrEqual(t, len(xs), 2)
}

func TestSampleEmpty(t *testing.T) {
	xs, ys := Sample(nil, 10)
	require.Nil(t, xs)
	require.Nil(t, ys)
}
