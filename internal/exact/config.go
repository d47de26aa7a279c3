package exact

import "fmt"

type Config struct {
	// MaxJobs bounds the instance size; the search is exponential in the worst case.
	MaxJobs int
	// CheckEvery is the number of visited nodes between context checks.
	CheckEvery int
}

func DefaultConfig() Config {
	return Config{
		MaxJobs:    10,
		CheckEvery: 4096,
	}
}

func (c Config) Validate() error {
	if c.MaxJobs <= 0 {
		return fmt.Errorf("MaxJobs must be > 0 (got %d)", c.MaxJobs)
	}
	if c.CheckEvery <= 0 {
		return fmt.Errorf("CheckEvery must be > 0 (got %d)", c.CheckEvery)
	}
	return nil
}
