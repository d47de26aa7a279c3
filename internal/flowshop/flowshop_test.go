package flowshop

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func mustInstance(t *testing.T, p1, p2 []float64) *Instance {
	t.Helper()
	inst, err := NewInstance(p1, p2)
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	return inst
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestValidate_CombinesAllRows(t *testing.T) {
	inst := &Instance{Tasks: []Task{
		{Label: "Task 1", P1: 3, P2: 5},
		{Label: "Task 2", P1: -1, P2: 2},
		{Label: "Task 3", P1: 4, P2: 4},
		{Label: "Task 4", P1: -2, P2: -7},
	}}

	err := inst.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrNegativeTime) {
		t.Errorf("expected error to wrap ErrNegativeTime, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Rows) != 2 || verr.Rows[0].Index != 1 || verr.Rows[1].Index != 3 {
		t.Errorf("expected rows 1 and 3, got %+v", verr.Rows)
	}

	msg := err.Error()
	for _, want := range []string{"Task 2 (p1=-1)", "Task 4 (p1=-2, p2=-7)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got %q", want, msg)
		}
	}
	if strings.Count(msg, ErrNegativeTime.Error()) != 1 {
		t.Errorf("expected one combined message, got %q", msg)
	}
}

func TestValidate_RejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{"nan p1", Task{Label: "Task 1", P1: math.NaN(), P2: 3}, "Task 1 (p1=NaN)"},
		{"inf p2", Task{Label: "Task 1", P1: 1, P2: math.Inf(1)}, "Task 1 (p2=+Inf)"},
		{"negative inf", Task{Label: "Task 1", P1: math.Inf(-1), P2: 1}, "Task 1 (p1=-Inf)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := &Instance{Tasks: []Task{tt.task, {Label: "Task 2", P1: 1, P2: 2}}}
			err := inst.Validate()
			if !errors.Is(err, ErrNegativeTime) {
				t.Fatalf("expected ErrNegativeTime, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || len(verr.Rows) != 1 || verr.Rows[0].Index != 0 {
				t.Fatalf("expected only row 0 rejected, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected message to contain %q, got %q", tt.want, err.Error())
			}
		})
	}

	if _, err := NewInstance([]float64{math.NaN()}, []float64{1}); err == nil {
		t.Error("NewInstance: expected error for NaN")
	}
}

func TestValidate_EmptyAndZeroAreValid(t *testing.T) {
	if err := (&Instance{}).Validate(); err != nil {
		t.Errorf("empty instance: unexpected error %v", err)
	}
	if err := BlankInstance(3).Validate(); err != nil {
		t.Errorf("zero times: unexpected error %v", err)
	}
	var nilInst *Instance
	if err := nilInst.Validate(); err == nil {
		t.Error("nil instance: expected error")
	}
}

func TestNewInstance_LengthMismatch(t *testing.T) {
	if _, err := NewInstance([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatal("expected error for mismatched columns")
	}
}

func TestBlankInstance(t *testing.T) {
	blank := BlankInstance(4)
	if blank.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", blank.Len())
	}
	for i, task := range blank.Tasks {
		if task.P1 != 0 || task.P2 != 0 {
			t.Errorf("row %d: expected zero times, got %+v", i, task)
		}
		if task.Label != DefaultLabel(i) {
			t.Errorf("row %d: expected label %q, got %q", i, DefaultLabel(i), task.Label)
		}
	}

	def := BlankInstance(DefaultTaskCount)
	if def.Tasks[9].P1 != 10 || def.Tasks[9].P2 != 4 {
		t.Errorf("expected the example data for ten rows, got %+v", def.Tasks[9])
	}
}

func TestValidatePermutation(t *testing.T) {
	tests := []struct {
		name string
		perm []int
		n    int
		ok   bool
	}{
		{"empty", nil, 0, true},
		{"identity", []int{0, 1, 2}, 3, true},
		{"shuffled", []int{2, 0, 1}, 3, true},
		{"short", []int{0, 1}, 3, false},
		{"long", []int{0, 1, 2, 3}, 3, false},
		{"duplicate", []int{0, 0, 1}, 3, false},
		{"out of range", []int{0, 1, 3}, 3, false},
		{"negative", []int{-1, 1, 2}, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePermutation(tt.perm, tt.n)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidSequence) {
					t.Errorf("expected ErrInvalidSequence, got %v", err)
				}
			}
		})
	}
}

func TestSequenceLabels(t *testing.T) {
	got := SequenceLabels([]int{2, 0, 9})
	want := []string{"T3", "T1", "T10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSimulate_SingleTask(t *testing.T) {
	inst := mustInstance(t, []float64{5}, []float64{3})

	timing, err := Simulate(inst, []int{0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFloats(t, "start_m1", timing.StartM1, []float64{0})
	assertFloats(t, "finish_m1", timing.FinishM1, []float64{5})
	assertFloats(t, "start_m2", timing.StartM2, []float64{5})
	assertFloats(t, "finish_m2", timing.FinishM2, []float64{8})
}

func TestSimulate_TwoTasks(t *testing.T) {
	inst := mustInstance(t, []float64{4, 1}, []float64{2, 3})

	timing, err := Simulate(inst, []int{1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertFloats(t, "start_m1", timing.StartM1, []float64{0, 1})
	assertFloats(t, "finish_m1", timing.FinishM1, []float64{1, 5})
	assertFloats(t, "start_m2", timing.StartM2, []float64{1, 5})
	assertFloats(t, "finish_m2", timing.FinishM2, []float64{4, 7})
	assertTimingInvariants(t, inst, timing)
}

func TestSimulate_Empty(t *testing.T) {
	timing, err := Simulate(&Instance{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timing.Len() != 0 || len(timing.StartM1) != 0 || len(timing.FinishM2) != 0 {
		t.Errorf("expected empty timing, got %+v", timing)
	}
}

func TestSimulate_RejectsMalformedSequence(t *testing.T) {
	inst := mustInstance(t, []float64{1, 2, 3}, []float64{3, 2, 1})
	for _, seq := range [][]int{{0, 1}, {0, 1, 1}, {0, 1, 5}} {
		if _, err := Simulate(inst, seq); !errors.Is(err, ErrInvalidSequence) {
			t.Errorf("seq %v: expected ErrInvalidSequence, got %v", seq, err)
		}
	}
}

func TestSimulate_RandomInvariantsAndIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(15)
		inst := RandomInstance(n, 0, 20, rng)
		seq := rng.Perm(n)

		a, err := Simulate(inst, seq)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		b, _ := Simulate(inst, seq)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("trial %d: simulate is not deterministic", trial)
		}
		assertTimingInvariants(t, inst, a)

		eval, err := NewEvaluator(inst)
		if err != nil {
			t.Fatalf("trial %d: evaluator: %v", trial, err)
		}
		if ms := eval.MustMakespan(seq); !almostEqual(ms, a.FinishM2[n-1]) {
			t.Errorf("trial %d: evaluator makespan %g, simulate %g", trial, ms, a.FinishM2[n-1])
		}
	}
}

func TestIntervals(t *testing.T) {
	inst := mustInstance(t, []float64{4, 1}, []float64{2, 3})
	timing, _ := Simulate(inst, []int{1, 0})

	m2 := timing.Intervals(1)
	want := []Interval{
		{Task: 1, Label: "T2", Start: 1, Finish: 4},
		{Task: 0, Label: "T1", Start: 5, Finish: 7},
	}
	if !reflect.DeepEqual(m2, want) {
		t.Errorf("expected %+v, got %+v", want, m2)
	}
}

func TestComputeMetrics_SingleTask(t *testing.T) {
	inst := mustInstance(t, []float64{5}, []float64{3})
	timing, _ := Simulate(inst, []int{0})

	m, err := ComputeMetrics(timing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Makespan != 8 {
		t.Errorf("expected makespan 8, got %g", m.Makespan)
	}
	if m.DelayM1 != 3 {
		t.Errorf("expected delay M1 3, got %g", m.DelayM1)
	}
	if m.DelayM2 != 5 {
		t.Errorf("expected delay M2 5, got %g", m.DelayM2)
	}
	if !almostEqual(m.AverageDelay, 0.5) {
		t.Errorf("expected average delay 0.5, got %g", m.AverageDelay)
	}
	if !almostEqual(m.Utilization, 0.5) {
		t.Errorf("expected utilization 0.5, got %g", m.Utilization)
	}
}

func TestComputeMetrics_TwoTasks(t *testing.T) {
	inst := mustInstance(t, []float64{4, 1}, []float64{2, 3})
	timing, _ := Simulate(inst, []int{1, 0})

	m, err := ComputeMetrics(timing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// M2 waits 1 before T2 and 1 between T2 (ends 4) and T1 (starts 5).
	if m.Makespan != 7 || m.DelayM1 != 2 || m.DelayM2 != 2 {
		t.Errorf("unexpected metrics %+v", m)
	}
	if !almostEqual(m.AverageDelay, 2.0/7.0) {
		t.Errorf("expected average delay 2/7, got %g", m.AverageDelay)
	}
}

func TestComputeMetrics_NoTasks(t *testing.T) {
	_, err := ComputeMetrics(Timing{})
	if !errors.Is(err, ErrNoTasks) {
		t.Fatalf("expected ErrNoTasks, got %v", err)
	}
}

func TestComputeMetrics_ZeroMakespan(t *testing.T) {
	inst := BlankInstance(3)
	timing, err := Simulate(inst, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := ComputeMetrics(timing)
	if !errors.Is(err, ErrZeroMakespan) {
		t.Fatalf("expected ErrZeroMakespan, got %v (%+v)", err, m)
	}
}

func TestComputeMetrics_NonFinite(t *testing.T) {
	tests := []struct {
		name   string
		timing Timing
	}{
		{"nan makespan", Timing{
			StartM1: []float64{0}, FinishM1: []float64{math.NaN()},
			StartM2: []float64{math.NaN()}, FinishM2: []float64{math.NaN()},
		}},
		{"inf makespan", Timing{
			StartM1: []float64{0}, FinishM1: []float64{1},
			StartM2: []float64{1}, FinishM2: []float64{math.Inf(1)},
		}},
		{"nan before finite makespan", Timing{
			StartM1: []float64{0, math.NaN()}, FinishM1: []float64{1, math.NaN()},
			StartM2: []float64{1, 3}, FinishM2: []float64{3, 5},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ComputeMetrics(tt.timing)
			if !errors.Is(err, ErrNonFinite) {
				t.Fatalf("expected ErrNonFinite, got %v (%+v)", err, m)
			}
		})
	}
}

func TestComputeMetrics_MismatchedArrays(t *testing.T) {
	timing := Timing{
		StartM1:  []float64{0, 1},
		FinishM1: []float64{1, 2},
		StartM2:  []float64{1},
		FinishM2: []float64{2, 3},
	}
	if _, err := ComputeMetrics(timing); !errors.Is(err, ErrTimingMismatch) {
		t.Fatalf("expected ErrTimingMismatch, got %v", err)
	}
}

func TestComputeMetrics_ClampsNegativeGaps(t *testing.T) {
	// Hand-built arrays where task 2 starts on M2 before task 1 left it.
	timing := Timing{
		Sequence: []int{0, 1},
		StartM1:  []float64{0, 2},
		FinishM1: []float64{2, 4},
		StartM2:  []float64{2, 4},
		FinishM2: []float64{6, 8},
	}
	m, err := ComputeMetrics(timing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.DelayM2 != 2 {
		t.Errorf("expected only the initial wait of 2, got %g", m.DelayM2)
	}
}

func TestComputeMetrics_UtilizationInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		n := 1 + rng.Intn(20)
		inst := RandomInstance(n, 0, 50, rng)
		timing, err := Simulate(inst, rng.Perm(n))
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		m, err := ComputeMetrics(timing)
		if errors.Is(err, ErrZeroMakespan) {
			continue
		}
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if m.Utilization < 0 || m.Utilization > 1 {
			t.Errorf("trial %d: utilization %g outside [0, 1]", trial, m.Utilization)
		}
	}
}

func assertFloats(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func assertTimingInvariants(t *testing.T, inst *Instance, tm Timing) {
	t.Helper()
	for i, idx := range tm.Sequence {
		task := inst.Tasks[idx]
		if !almostEqual(tm.FinishM1[i]-tm.StartM1[i], task.P1) {
			t.Errorf("pos %d: M1 duration %g, want %g", i, tm.FinishM1[i]-tm.StartM1[i], task.P1)
		}
		if !almostEqual(tm.FinishM2[i]-tm.StartM2[i], task.P2) {
			t.Errorf("pos %d: M2 duration %g, want %g", i, tm.FinishM2[i]-tm.StartM2[i], task.P2)
		}
		if i == 0 {
			if tm.StartM1[0] != 0 {
				t.Errorf("M1 must start at 0, got %g", tm.StartM1[0])
			}
			if tm.StartM2[0] != tm.FinishM1[0] {
				t.Errorf("pos 0: M2 start %g, want %g", tm.StartM2[0], tm.FinishM1[0])
			}
			continue
		}
		if tm.StartM1[i] != tm.FinishM1[i-1] {
			t.Errorf("pos %d: M1 idles (start %g, previous finish %g)", i, tm.StartM1[i], tm.FinishM1[i-1])
		}
		want := math.Max(tm.FinishM1[i], tm.FinishM2[i-1])
		if tm.StartM2[i] != want {
			t.Errorf("pos %d: M2 start %g, want %g", i, tm.StartM2[i], want)
		}
	}
}
