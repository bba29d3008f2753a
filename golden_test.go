package pwq

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TestEnvelopeStringGolden pins the textual rendering of a worked-example
// envelope against a fixture in testdata/. Run with -update to regenerate
// the fixture after a deliberate change to String's format.
func TestEnvelopeStringGolden(t *testing.T) {
	g := goldie.New(t)

	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 1, 0, 0, 0),
		NewBoundedQuadratic(1, 2, 0, 1, -1),
		NewBoundedQuadratic(2, 10, 1, -4, 5),
	}
	env := Envelope(f)
	g.Assert(t, "envelope-three-piece", []byte(env.String()))
}

// TestSampleGolden pins Sample's output for a fixed function and point
// count, catching accidental changes to the auto-ranging or spacing rules.
func TestSampleGolden(t *testing.T) {
	g := goldie.New(t)

	f := PiecewiseQuadratic{
		NewBoundedQuadratic(0, 5, 1, 0, 0),
		NewBoundedQuadratic(5, 10, 0, 2, -5),
	}
	xs, ys := Sample(f, 6)
	var b strings.Builder
	for i := range xs {
		fmt.Fprintf(&b, "%.6f\t%.6f\n", xs[i], ys[i])
	}
	g.Assert(t, "sample-two-piece", []byte(b.String()))
}
