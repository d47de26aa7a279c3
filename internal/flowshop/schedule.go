package flowshop

import "fmt"

// Timing holds per-position start/finish times on both machines, aligned with Sequence.
type Timing struct {
	Sequence []int     `json:"sequence"`
	StartM1  []float64 `json:"start_m1"`
	FinishM1 []float64 `json:"finish_m1"`
	StartM2  []float64 `json:"start_m2"`
	FinishM2 []float64 `json:"finish_m2"`
}

func (t Timing) Len() int { return len(t.Sequence) }

// Simulate turns a sequence into start/finish times. Machine 1 runs back to back
// from time 0; machine 2 starts a task once both the task has left machine 1 and
// the previous task has left machine 2.
func Simulate(inst *Instance, seq []int) (Timing, error) {
	if inst == nil {
		return Timing{}, fmt.Errorf("instance is nil")
	}
	if err := ValidatePermutation(seq, inst.Len()); err != nil {
		return Timing{}, err
	}

	n := len(seq)
	t := Timing{
		Sequence: append([]int(nil), seq...),
		StartM1:  make([]float64, n),
		FinishM1: make([]float64, n),
		StartM2:  make([]float64, n),
		FinishM2: make([]float64, n),
	}
	for i, idx := range seq {
		task := inst.Tasks[idx]
		if i > 0 {
			t.StartM1[i] = t.FinishM1[i-1]
		}
		t.FinishM1[i] = t.StartM1[i] + task.P1

		t.StartM2[i] = t.FinishM1[i]
		if i > 0 && t.FinishM2[i-1] > t.StartM2[i] {
			t.StartM2[i] = t.FinishM2[i-1]
		}
		t.FinishM2[i] = t.StartM2[i] + task.P2
	}
	return t, nil
}

// Interval is the occupation of one machine by one task.
type Interval struct {
	Task   int     `json:"task"`
	Label  string  `json:"label"`
	Start  float64 `json:"start"`
	Finish float64 `json:"finish"`
}

// Intervals returns the bars of machine 0 or 1 in sequence order.
func (t Timing) Intervals(machine int) []Interval {
	start, finish := t.StartM1, t.FinishM1
	if machine == 1 {
		start, finish = t.StartM2, t.FinishM2
	}
	out := make([]Interval, len(t.Sequence))
	for i, idx := range t.Sequence {
		out[i] = Interval{Task: idx, Label: ShortLabel(idx), Start: start[i], Finish: finish[i]}
	}
	return out
}
