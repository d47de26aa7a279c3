package config

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"johnsonShop/internal/johnson"
)

type Config struct {
	Server struct {
		Addr string `json:"addr"`
		// Mode is the gin mode: debug, release or test.
		Mode string `json:"mode"`
	} `json:"server"`
	Log struct {
		Level  string `json:"level"`
		Format string `json:"format"`
	} `json:"log"`
	Scheduler struct {
		Strategy string `json:"strategy"`
	} `json:"scheduler"`
	Limits Limits `json:"limits"`
	Bench  struct {
		// ExactLimit is the largest size the exact solver runs on; 0 disables it.
		ExactLimit int `json:"exactLimit"`
	} `json:"bench"`
}

// Limits bound the task count accepted at the CLI and HTTP boundary.
type Limits struct {
	MinTasks int `json:"minTasks"`
	MaxTasks int `json:"maxTasks"`
}

var ErrTaskCount = errors.New("task count out of range")

func (l Limits) Check(n int) error {
	if n < l.MinTasks || n > l.MaxTasks {
		return fmt.Errorf("%w: got %d, want [%d, %d]", ErrTaskCount, n, l.MinTasks, l.MaxTasks)
	}
	return nil
}

func Default() *Config {
	c := &Config{}
	c.Server.Addr = ":8080"
	c.Server.Mode = "release"
	c.Log.Level = "info"
	c.Log.Format = "color"
	c.Scheduler.Strategy = string(johnson.StrategyScan)
	c.Limits = Limits{MinTasks: 1, MaxTasks: 20}
	c.Bench.ExactLimit = 9
	return c
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test (got %q)", c.Server.Mode)
	}
	if err := c.Johnson().Validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	if c.Limits.MinTasks < 0 {
		return fmt.Errorf("limits.minTasks must be >= 0 (got %d)", c.Limits.MinTasks)
	}
	if c.Limits.MaxTasks < c.Limits.MinTasks {
		return fmt.Errorf("limits.maxTasks must be >= minTasks (got %d < %d)", c.Limits.MaxTasks, c.Limits.MinTasks)
	}
	if c.Bench.ExactLimit < 0 {
		return fmt.Errorf("bench.exactLimit must be >= 0 (got %d)", c.Bench.ExactLimit)
	}
	return nil
}

func (c *Config) Johnson() johnson.Config {
	return johnson.Config{Strategy: johnson.Strategy(c.Scheduler.Strategy)}
}
