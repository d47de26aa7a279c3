package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"johnsonShop/internal/bench"
	"johnsonShop/internal/config"
	"johnsonShop/internal/exact"
	"johnsonShop/internal/johnson"
	"johnsonShop/internal/opt"
	"johnsonShop/internal/telemetry"
)

var (
	flagConfig   string
	flagOut      string
	flagSizes    string
	flagAlgos    string
	flagRuns     int
	flagSeed     int64
	flagMinTime  int
	flagMaxTime  int
	flagTimeout  time.Duration
	flagExact    int
	flagLogLevel string
)

// configError marks bad flags or settings; main exits with status 2 for them.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func main() {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark Johnson's Rule on random two-machine instances",
		Long: `bench generates random two-machine flow-shop instances, sequences them with
the selected algorithms and writes time, makespan and utilization statistics
to CSV. Instances small enough for the exact solver are checked for optimality.`,
		SilenceUsage: true,
		RunE:         run,
	}

	f := cmd.Flags()
	f.StringVar(&flagConfig, "config", "", "YAML config file")
	f.StringVar(&flagOut, "out", "artifacts/results.csv", "output CSV path")
	f.StringVar(&flagSizes, "sizes", "5,8,20,100", "task counts, comma separated")
	f.StringVar(&flagAlgos, "algos", "johnson-scan,johnson-heap,exact", "algorithms, comma separated")
	f.IntVar(&flagRuns, "runs", 30, "random instances per size")
	f.Int64Var(&flagSeed, "instance_seed", 777, "base seed for instance generation")
	f.IntVar(&flagMinTime, "min_time", 1, "smallest processing time")
	f.IntVar(&flagMaxTime, "max_time", 99, "largest processing time")
	f.DurationVar(&flagTimeout, "per_run_timeout", 0, "timeout of one solve; 0 disables it")
	f.IntVar(&flagExact, "exact_limit", -1, "largest size the exact solver runs on (-1 = config value)")
	f.StringVar(&flagLogLevel, "log-level", "", "log level (default from config)")

	if err := cmd.Execute(); err != nil {
		var ce configError
		if errors.As(err, &ce) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return configError{err}
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := telemetry.SetupLogging(cfg.Log.Level, cfg.Log.Format); err != nil {
		return configError{err}
	}
	exactLimit := cfg.Bench.ExactLimit
	if flagExact >= 0 {
		exactLimit = flagExact
	}

	cases, err := bench.ParseSizes(flagSizes, flagSeed)
	if err != nil {
		return configError{err}
	}
	if flagRuns <= 0 {
		return configError{fmt.Errorf("runs must be > 0 (got %d)", flagRuns)}
	}
	if err := checkTimeBounds(flagMinTime, flagMaxTime); err != nil {
		return configError{err}
	}

	exactCfg := exactConfig(exactLimit)
	selected, err := selectAlgorithms(bench.SplitCSV(flagAlgos), exactLimit)
	if err != nil {
		return configError{err}
	}

	runner := bench.Runner{
		Runs:          flagRuns,
		MinTime:       flagMinTime,
		MaxTime:       flagMaxTime,
		PerRunTimeout: flagTimeout,
	}
	if exactLimit > 0 {
		ref, err := exact.New(exactCfg)
		if err != nil {
			return configError{err}
		}
		runner.Reference = ref
		runner.ReferenceMaxJobs = exactLimit
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			if !a.Supports(c.Jobs) {
				fmt.Printf("Skipping %s on %d tasks (limit %d)\n", a.Name, c.Jobs, a.MaxJobs)
				continue
			}
			fmt.Printf("Running %s on %d tasks (%d instances)...\n", a.Name, c.Jobs, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				return err
			}
			records = append(records, rec)

			optimal := "n/a"
			if rec.OptimalHits >= 0 {
				optimal = fmt.Sprintf("%d/%d", rec.OptimalHits, rec.Runs)
			}
			fmt.Printf("  makespan: best=%g mean=%.2f std=%.2f | utilization mean=%.4f | optimal=%s | time: mean=%.3fms std=%.3fms\n",
				rec.MakespanBest, rec.MakespanMean, rec.MakespanStd,
				rec.UtilizationMean, optimal,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(flagOut, records); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}
	fmt.Println("Saved:", flagOut)
	return nil
}

// checkTimeBounds rejects ranges that cannot produce a schedulable instance.
func checkTimeBounds(minTime, maxTime int) error {
	if minTime < 0 || maxTime < minTime {
		return fmt.Errorf("invalid time bounds [%d, %d]", minTime, maxTime)
	}
	if maxTime == 0 {
		return fmt.Errorf("max_time must be > 0: every instance would have a zero makespan")
	}
	return nil
}

// exactConfig sizes the exact solver; a limit of 0 keeps the default.
func exactConfig(limit int) exact.Config {
	cfg := exact.DefaultConfig()
	if limit > 0 {
		cfg.MaxJobs = limit
	}
	return cfg
}

// selectAlgorithms resolves algorithm names. An exact limit of 0 disables the
// exact solver, so it is dropped from the selection.
func selectAlgorithms(names []string, exactLimit int) ([]bench.Algorithm, error) {
	exactCfg := exactConfig(exactLimit)
	available := map[string]bench.Algorithm{
		"johnson-scan": johnsonAlgorithm("johnson-scan", johnson.StrategyScan),
		"johnson-heap": johnsonAlgorithm("johnson-heap", johnson.StrategyHeap),
		"exact": {
			Name:    "exact",
			MaxJobs: exactCfg.MaxJobs,
			Factory: func() (opt.Optimizer, error) { return exact.New(exactCfg) },
		},
	}

	var selected []bench.Algorithm
	for _, a := range names {
		al, ok := available[a]
		if !ok {
			return nil, fmt.Errorf("unknown algorithm %q; available: %v", a, keys(available))
		}
		if a == "exact" && exactLimit <= 0 {
			fmt.Println("Skipping exact: exact limit is 0")
			continue
		}
		selected = append(selected, al)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no algorithm left to run")
	}
	return selected, nil
}

func johnsonAlgorithm(name string, s johnson.Strategy) bench.Algorithm {
	return bench.Algorithm{
		Name: name,
		Factory: func() (opt.Optimizer, error) {
			return johnson.New(johnson.Config{Strategy: s})
		},
	}
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
