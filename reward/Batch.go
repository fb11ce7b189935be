package reward

import (
	"gorgonia.org/tensor"

	"sfneuman.com/gogait/state"
)

// EvaluateBatch scores a batch of independent environment instances.
// Batched evaluation is defined as elementwise application of Evaluate
// across the slice: instance i's total is identical to evaluating its
// snapshot alone, with no cross-instance coupling.
func (e *Evaluator) EvaluateBatch(snaps []state.Snapshot) ([]float64, error) {
	totals := make([]float64, len(snaps))
	for i := range snaps {
		total, err := e.Evaluate(&snaps[i])
		if err != nil {
			return nil, err
		}
		totals[i] = total
	}
	return totals, nil
}

// BreakdownBatch scores a batch and additionally materializes the
// normalized per-term values as a (batch × terms) dense tensor in
// Terms() column order, ready for the training loop's diagnostics.
func (e *Evaluator) BreakdownBatch(snaps []state.Snapshot) ([]float64,
	*tensor.Dense, error) {
	nTerms := len(termOrder)
	totals := make([]float64, len(snaps))
	backing := make([]float64, len(snaps)*nTerms)

	for i := range snaps {
		if err := snaps[i].Validate(); err != nil {
			return nil, nil, err
		}

		values := e.values(&snaps[i])
		copy(backing[i*nTerms:(i+1)*nTerms], values)
		totals[i] = e.total(values)
	}

	breakdown := tensor.New(
		tensor.WithShape(len(snaps), nTerms),
		tensor.WithBacking(backing),
	)
	return totals, breakdown, nil
}
