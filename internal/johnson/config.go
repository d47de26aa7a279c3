package johnson

import "fmt"

// Strategy selects how the next task is picked from the working set.
type Strategy string

const (
	// StrategyScan rescans the remaining tasks on every step.
	StrategyScan Strategy = "scan"
	// StrategyHeap keeps the remaining tasks in a priority queue.
	StrategyHeap Strategy = "heap"
)

type Config struct {
	Strategy Strategy
}

func DefaultConfig() Config {
	return Config{Strategy: StrategyScan}
}

func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyScan, StrategyHeap:
		return nil
	default:
		return fmt.Errorf("unknown strategy %q (want %q or %q)", c.Strategy, StrategyScan, StrategyHeap)
	}
}
