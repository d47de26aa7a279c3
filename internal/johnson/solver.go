package johnson

import (
	"context"
	"time"

	"johnsonShop/internal/flowshop"
	"johnsonShop/internal/opt"
)

// Solver adapts Johnson's Rule to opt.Optimizer.
type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return opt.Result{}, err
	}
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	seq, err := SequenceWith(s.Cfg, inst.Tasks)
	if err != nil {
		return opt.Result{}, err
	}
	ms, err := eval.Makespan(seq)
	if err != nil {
		return opt.Result{}, err
	}

	return opt.Result{
		Permutation: seq,
		Makespan:    ms,
		Evaluations: 1,
		Iterations:  inst.Len(),
		Duration:    time.Since(start),
		Meta: map[string]any{
			"strategy": string(s.Cfg.Strategy),
		},
	}, nil
}
