package flowshop

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Machines is fixed: every task visits machine 1, then machine 2.
const Machines = 2

var ErrNegativeTime = errors.New("processing times must be finite and non-negative")

// Task is one row of the input list. Its index in Instance.Tasks is its identity.
type Task struct {
	Label string  `json:"task"`
	P1    float64 `json:"p1"`
	P2    float64 `json:"p2"`
}

// Min returns the smaller of the two processing times.
func (t Task) Min() float64 {
	if t.P1 <= t.P2 {
		return t.P1
	}
	return t.P2
}

type Instance struct {
	Tasks []Task
}

// NewInstance builds an instance from parallel p1/p2 slices, labelling rows "Task 1".."Task n".
func NewInstance(p1, p2 []float64) (*Instance, error) {
	if len(p1) != len(p2) {
		return nil, fmt.Errorf("p1 and p2 must have the same length (got %d and %d)", len(p1), len(p2))
	}
	tasks := make([]Task, len(p1))
	for i := range p1 {
		tasks[i] = Task{Label: DefaultLabel(i), P1: p1[i], P2: p2[i]}
	}
	inst := &Instance{Tasks: tasks}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// RowError describes one task rejected by Validate.
type RowError struct {
	Index int     `json:"index"`
	Label string  `json:"task"`
	P1    float64 `json:"p1"`
	P2    float64 `json:"p2"`
}

// ValidationError collects every invalid row so the caller gets a single message.
type ValidationError struct {
	Rows []RowError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		var bad []string
		if invalidTime(r.P1) {
			bad = append(bad, fmt.Sprintf("p1=%g", r.P1))
		}
		if invalidTime(r.P2) {
			bad = append(bad, fmt.Sprintf("p2=%g", r.P2))
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", r.Label, strings.Join(bad, ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrNegativeTime, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrNegativeTime }

// invalidTime reports negative, NaN and infinite processing times.
func invalidTime(v float64) bool {
	return !(v >= 0) || math.IsInf(v, 1)
}

// Validate checks all rows and reports every invalid processing time at once.
// An empty instance is valid.
func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	var rows []RowError
	for i, t := range inst.Tasks {
		if invalidTime(t.P1) || invalidTime(t.P2) {
			label := t.Label
			if label == "" {
				label = DefaultLabel(i)
			}
			rows = append(rows, RowError{Index: i, Label: label, P1: t.P1, P2: t.P2})
		}
	}
	if len(rows) > 0 {
		return &ValidationError{Rows: rows}
	}
	return nil
}

func (inst *Instance) Len() int { return len(inst.Tasks) }

// DefaultLabel is the row name used when the caller gives none.
func DefaultLabel(i int) string {
	return fmt.Sprintf("Task %d", i+1)
}

// ShortLabel is the 1-based tag used in sequences and timelines.
func ShortLabel(i int) string {
	return fmt.Sprintf("T%d", i+1)
}

var (
	defaultP1 = []float64{3, 6, 2, 7, 6, 5, 5, 3, 6, 10}
	defaultP2 = []float64{5, 2, 8, 6, 6, 9, 4, 2, 8, 4}
)

// DefaultTaskCount is the size of the built-in example data set.
const DefaultTaskCount = 10

// DefaultInstance returns the ten-task example data set.
func DefaultInstance() *Instance {
	inst, err := NewInstance(defaultP1, defaultP2)
	if err != nil {
		panic(err)
	}
	return inst
}

// BlankInstance returns n rows of zero processing times, or the example data when n is DefaultTaskCount.
func BlankInstance(n int) *Instance {
	if n == DefaultTaskCount {
		return DefaultInstance()
	}
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{Label: DefaultLabel(i)}
	}
	return &Instance{Tasks: tasks}
}

// RandomInstance draws integral processing times uniformly from [minTime, maxTime].
func RandomInstance(jobs int, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("random source is nil")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	span := maxTime - minTime + 1
	draw := func() float64 {
		v := minTime
		if span > 1 {
			v += rng.Intn(span)
		}
		return float64(v)
	}
	tasks := make([]Task, jobs)
	for i := range tasks {
		tasks[i] = Task{Label: DefaultLabel(i), P1: draw(), P2: draw()}
	}
	return &Instance{Tasks: tasks}
}
