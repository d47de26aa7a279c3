package opt

import (
	"context"
	"time"

	"johnsonShop/internal/flowshop"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *flowshop.Instance) (Result, error)
}

type Result struct {
	Permutation []int
	Makespan    float64
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// NewResult copies perm so the caller may reuse its buffer.
func NewResult(perm []int, makespan float64, evals, iters int, dur time.Duration, meta map[string]any) Result {
	permCopy := make([]int, len(perm))
	copy(permCopy, perm)
	return Result{
		Permutation: permCopy,
		Makespan:    makespan,
		Evaluations: evals,
		Iterations:  iters,
		Duration:    dur,
		Meta:        meta,
	}
}
