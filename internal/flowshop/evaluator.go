package flowshop

import "fmt"

// Evaluator computes the makespan of a sequence without building timing arrays.
type Evaluator struct {
	inst *Instance
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

func (e *Evaluator) Makespan(perm []int) (float64, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePermutation(perm, e.inst.Len()); err != nil {
		return 0, err
	}

	var m1, m2 float64
	for _, job := range perm {
		m1, m2 = Step(m1, m2, e.inst.Tasks[job])
	}
	return m2, nil
}

func (e *Evaluator) MustMakespan(perm []int) float64 {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// Step appends one task to a partial schedule whose machines finish at m1 and m2.
func Step(m1, m2 float64, t Task) (float64, float64) {
	m1 += t.P1
	if m1 > m2 {
		m2 = m1
	}
	return m1, m2 + t.P2
}
