// Package planner runs the full pass over one input list:
// validation, sequencing, simulation and metrics.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"johnsonShop/internal/flowshop"
	"johnsonShop/internal/johnson"
	"johnsonShop/internal/report"
	"johnsonShop/internal/telemetry"
)

var log = logging.Logger("planner")

type Planner struct {
	solver  *johnson.Solver
	metrics *telemetry.Collectors
}

// New returns a planner; metrics may be nil.
func New(cfg johnson.Config, metrics *telemetry.Collectors) (*Planner, error) {
	solver, err := johnson.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Planner{solver: solver, metrics: metrics}, nil
}

func (p *Planner) Strategy() string { return string(p.solver.Cfg.Strategy) }

// Plan validates inst and computes the schedule. Nothing is returned on a
// validation failure. ErrNoTasks and ErrZeroMakespan surface unchanged.
func (p *Planner) Plan(ctx context.Context, inst *flowshop.Instance) (*report.Report, error) {
	start := time.Now()
	strategy := p.Strategy()

	if err := inst.Validate(); err != nil {
		log.Warnw("rejected input", "error", err)
		p.metrics.Observe(strategy, telemetry.OutcomeInvalid, 0, 0, 0, 0)
		return nil, err
	}

	res, err := p.solver.Solve(ctx, inst)
	if err != nil {
		p.metrics.Observe(strategy, telemetry.OutcomeError, 0, 0, 0, 0)
		return nil, fmt.Errorf("sequence: %w", err)
	}
	timing, err := flowshop.Simulate(inst, res.Permutation)
	if err != nil {
		p.metrics.Observe(strategy, telemetry.OutcomeError, 0, 0, 0, 0)
		return nil, fmt.Errorf("simulate: %w", err)
	}
	m, err := flowshop.ComputeMetrics(timing)
	if err != nil {
		p.metrics.Observe(strategy, outcomeOf(err), 0, 0, 0, 0)
		return nil, err
	}

	dur := time.Since(start)
	p.metrics.Observe(strategy, telemetry.OutcomeOK, inst.Len(), m.Makespan, m.Utilization, dur)
	log.Debugw("plan computed",
		"tasks", inst.Len(),
		"strategy", strategy,
		"makespan", m.Makespan,
		"utilization", m.Utilization,
		"duration", dur,
	)
	return report.New(inst, timing, m, strategy), nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, flowshop.ErrNoTasks):
		return telemetry.OutcomeNoTasks
	case errors.Is(err, flowshop.ErrZeroMakespan):
		return telemetry.OutcomeZeroLength
	default:
		return telemetry.OutcomeError
	}
}
