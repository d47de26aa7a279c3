package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"johnsonShop/internal/flowshop"
	"johnsonShop/internal/opt"
)

var log = logging.Logger("bench")

type Algorithm struct {
	Name    string
	Factory func() (opt.Optimizer, error)
	// MaxJobs limits the sizes the algorithm is run on; 0 means no limit.
	MaxJobs int
}

func (a Algorithm) Supports(jobs int) bool {
	return a.MaxJobs <= 0 || jobs <= a.MaxJobs
}

type Case struct {
	Jobs         int
	InstanceSeed int64
}

type Record struct {
	Algo string
	Jobs int
	Runs int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest float64
	MakespanMean float64
	MakespanStd  float64

	UtilizationMean float64
	// OptimalHits counts runs matching the reference optimum; -1 when no reference ran.
	OptimalHits int
}

type Runner struct {
	Runs          int
	MinTime       int
	MaxTime       int
	PerRunTimeout time.Duration // 0 = no timeout

	// Reference, when set, is solved on every instance of at most ReferenceMaxJobs tasks.
	Reference        opt.Optimizer
	ReferenceMaxJobs int
}

// RunCase solves Runs random instances of c.Jobs tasks. Run i uses instance seed c.InstanceSeed+i.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	op, err := algo.Factory()
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", algo.Name, err)
	}
	checkRef := r.Reference != nil && c.Jobs <= r.ReferenceMaxJobs

	makespans := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	utils := make([]float64, 0, r.Runs)
	hits := 0

	for i := 0; i < r.Runs; i++ {
		inst := flowshop.RandomInstance(c.Jobs, r.MinTime, r.MaxTime, randForSeed(c.InstanceSeed+int64(i)))

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}

		timing, err := flowshop.Simulate(inst, res.Permutation)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}
		m, err := flowshop.ComputeMetrics(timing)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}

		if checkRef {
			ref, err := r.Reference.Solve(ctx, inst)
			if err != nil {
				return Record{}, fmt.Errorf("run %d: reference: %w", i, err)
			}
			if math.Abs(ref.Makespan-m.Makespan) < 1e-9 {
				hits++
			} else {
				log.Warnw("sub-optimal run", "algo", algo.Name, "jobs", c.Jobs, "run", i,
					"makespan", m.Makespan, "optimum", ref.Makespan)
			}
		}

		makespans = append(makespans, m.Makespan)
		utils = append(utils, m.Utilization)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	msStats := CalcStats(makespans)
	tStats := CalcStats(timesMs)
	uStats := CalcStats(utils)

	rec := Record{
		Algo: algo.Name,
		Jobs: c.Jobs,
		Runs: r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,

		UtilizationMean: uStats.Mean,
		OptimalHits:     -1,
	}
	if checkRef {
		rec.OptimalHits = hits
	}
	return rec, nil
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "jobs", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
		"utilization_mean", "optimal_hits",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		hits := ""
		if r.OptimalHits >= 0 {
			hits = itoa(r.OptimalHits)
		}
		row := []string{
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),

			ftoa(r.UtilizationMean),
			hits,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
