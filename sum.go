package pwq

import "math"

// sumWorkspace holds the per-input cursor and liveness state for the
// merge-sum sweep, sized once to k = len(inputs) so the sweep itself never
// allocates.
type sumWorkspace struct {
	inputs []PiecewiseQuadratic
	cursor []int
	alive  []bool
}

func newSumWorkspace(inputs []PiecewiseQuadratic) *sumWorkspace {
	w := &sumWorkspace{
		inputs: inputs,
		cursor: make([]int, len(inputs)),
		alive:  make([]bool, len(inputs)),
	}
	for i, f := range inputs {
		w.alive[i] = len(f) > 0
	}
	return w
}

func (w *sumWorkspace) active(i int) BoundedQuadratic {
	return w.inputs[i][w.cursor[i]]
}

func (w *sumWorkspace) anyAlive() bool {
	for _, a := range w.alive {
		if a {
			return true
		}
	}
	return false
}

// step advances every input whose active piece's upper bound equals u*
// exactly, marking it dead once its piece list is exhausted. Inputs must
// step together when they share an upper bound, or the sweep's breakpoint
// invariant (monotone, no input skipped past a shared boundary) breaks.
func (w *sumWorkspace) step(uStar float64) {
	for i := range w.inputs {
		if w.alive[i] && w.active(i).Ub == uStar {
			if w.cursor[i]+1 < len(w.inputs[i]) {
				w.cursor[i]++
			} else {
				// Exhausted: stay frozen on the last piece so later sweeps
				// still see a (now permanently bounded) domain for it.
				w.alive[i] = false
			}
		}
	}
}

// mergeSum implements the k-way breakpoint sweep of Sum. Pieces whose joint
// domain is empty are omitted; the output is not re-simplified.
func mergeSum(inputs []PiecewiseQuadratic) PiecewiseQuadratic {
	switch len(inputs) {
	case 0:
		return nil
	case 1:
		return append(PiecewiseQuadratic(nil), inputs[0]...)
	}

	for _, f := range inputs {
		if len(f) == 0 {
			// One input has no pieces at all: the joint domain is empty
			// everywhere, no sweep needed.
			return nil
		}
	}

	w := newSumWorkspace(inputs)
	var out PiecewiseQuadratic

	for {
		dom := WholeLine()
		var sumP, sumQ, sumR float64
		for i := range w.inputs {
			piece := w.active(i)
			dom = dom.Intersect(piece.Domain())
			sumP += piece.P
			sumQ += piece.Q
			sumR += piece.R
		}
		if !dom.IsEmpty() {
			out = append(out, BoundedQuadratic{Lb: dom.Lb, Ub: dom.Ub, P: sumP, Q: sumQ, R: sumR})
		}

		if !w.anyAlive() {
			break
		}

		uStar := math.Inf(1)
		for i := range w.inputs {
			if w.alive[i] {
				uStar = min(uStar, w.active(i).Ub)
			}
		}
		w.step(uStar)
	}

	return out
}
