package flowshop

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoTasks        = errors.New("no tasks to schedule")
	ErrZeroMakespan   = errors.New("makespan is zero: all processing times are zero")
	ErrTimingMismatch = errors.New("timing arrays have different lengths")
	ErrNonFinite      = errors.New("timing contains NaN or infinite values")
)

type Metrics struct {
	Makespan     float64 `json:"makespan"`
	DelayM1      float64 `json:"delay_m1"`
	DelayM2      float64 `json:"delay_m2"`
	AverageDelay float64 `json:"average_delay"`
	Utilization  float64 `json:"utilization"`
}

// ComputeMetrics derives makespan, idle time per machine and utilization.
//
// Machine 1 delay is the tail after its last task; machine 2 delay is the wait
// before its first task plus every gap between consecutive tasks.
func ComputeMetrics(t Timing) (Metrics, error) {
	n := len(t.FinishM2)
	if len(t.StartM1) != n || len(t.FinishM1) != n || len(t.StartM2) != n {
		return Metrics{}, fmt.Errorf("%w: start_m1=%d finish_m1=%d start_m2=%d finish_m2=%d",
			ErrTimingMismatch, len(t.StartM1), len(t.FinishM1), len(t.StartM2), n)
	}
	if n == 0 {
		return Metrics{}, ErrNoTasks
	}

	for i := 0; i < n; i++ {
		for _, v := range [...]float64{t.StartM1[i], t.FinishM1[i], t.StartM2[i], t.FinishM2[i]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Metrics{}, fmt.Errorf("%w: position %d", ErrNonFinite, i)
			}
		}
	}

	makespan := t.FinishM2[n-1]
	if makespan <= 0 {
		return Metrics{}, ErrZeroMakespan
	}

	delayM1 := makespan - t.FinishM1[n-1]
	delayM2 := t.StartM2[0]
	for i := 1; i < n; i++ {
		if idle := t.StartM2[i] - t.FinishM2[i-1]; idle > 0 {
			delayM2 += idle
		}
	}

	avg := (delayM1/makespan + delayM2/makespan) / 2
	return Metrics{
		Makespan:     makespan,
		DelayM1:      delayM1,
		DelayM2:      delayM2,
		AverageDelay: avg,
		Utilization:  1 - avg,
	}, nil
}
