// Package exact finds a minimum-makespan sequence by branch and bound.
// It serves as the reference optimum for small instances.
package exact

import (
	"context"
	"fmt"
	"time"

	"johnsonShop/internal/flowshop"
	"johnsonShop/internal/opt"
)

type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

type search struct {
	ctx   context.Context
	tasks []flowshop.Task
	every int

	used []bool
	cur  []int
	best []int

	bestMs float64
	nodes  int
	err    error
}

func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	n := inst.Len()
	if n > s.Cfg.MaxJobs {
		return opt.Result{}, fmt.Errorf("instance has %d tasks, exact search is limited to %d", n, s.Cfg.MaxJobs)
	}

	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	st := &search{
		ctx:   ctx,
		tasks: inst.Tasks,
		every: s.Cfg.CheckEvery,
		used:  make([]bool, n),
		cur:   make([]int, n),
		best:  make([]int, n),
	}
	// Identity order is the initial upper bound.
	for i := range st.best {
		st.best[i] = i
	}
	st.bestMs = eval.MustMakespan(st.best)

	var sum1, sum2 float64
	for _, t := range inst.Tasks {
		sum1 += t.P1
		sum2 += t.P2
	}
	st.branch(0, 0, 0, sum1, sum2)

	meta := map[string]any{"nodes": st.nodes}
	if st.err != nil {
		meta["stopped"] = "context"
	}
	return opt.NewResult(st.best, st.bestMs, st.nodes, st.nodes, time.Since(start), meta), st.err
}

// branch extends the partial sequence cur[:depth]; m1 and m2 are the machine
// finish times so far and rem1, rem2 the work still to be placed.
func (st *search) branch(depth int, m1, m2, rem1, rem2 float64) {
	if st.err != nil {
		return
	}
	st.nodes++
	if st.nodes%st.every == 0 {
		if err := st.ctx.Err(); err != nil {
			st.err = err
			return
		}
	}

	n := len(st.tasks)
	if depth == n {
		if m2 < st.bestMs {
			st.bestMs = m2
			copy(st.best, st.cur)
		}
		return
	}
	if lowerBound(st.tasks, st.used, m1, m2, rem1, rem2) >= st.bestMs {
		return
	}

	for j := 0; j < n; j++ {
		if st.used[j] {
			continue
		}
		t := st.tasks[j]
		st.used[j] = true
		st.cur[depth] = j
		n1, n2 := flowshop.Step(m1, m2, t)
		st.branch(depth+1, n1, n2, rem1-t.P1, rem2-t.P2)
		st.used[j] = false
	}
}

// lowerBound: machine 1 must still process rem1 and then at least the shortest
// remaining p2 follows on machine 2; machine 2 must still process rem2.
func lowerBound(tasks []flowshop.Task, used []bool, m1, m2, rem1, rem2 float64) float64 {
	minP2 := -1.0
	for j, t := range tasks {
		if !used[j] && (minP2 < 0 || t.P2 < minP2) {
			minP2 = t.P2
		}
	}
	if minP2 < 0 {
		minP2 = 0
	}
	lb := m1 + rem1 + minP2
	if v := m2 + rem2; v > lb {
		lb = v
	}
	return lb
}
