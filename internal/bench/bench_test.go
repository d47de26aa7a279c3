package bench

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"johnsonShop/internal/exact"
	"johnsonShop/internal/johnson"
	"johnsonShop/internal/opt"
)

func TestCalcStats(t *testing.T) {
	s := CalcStats([]int{4, 2, 6})
	if s.N != 3 || s.Best != 2 || s.Mean != 4 {
		t.Errorf("unexpected stats %+v", s)
	}
	if math.Abs(s.Std-2) > 1e-12 {
		t.Errorf("expected std 2, got %g", s.Std)
	}

	f := CalcStats([]float64{1.5})
	if f.Best != 1.5 || f.Std != 0 {
		t.Errorf("unexpected stats %+v", f)
	}

	if empty := CalcStats[float64](nil); empty.N != 0 {
		t.Errorf("expected empty stats, got %+v", empty)
	}
}

func TestParseSizes(t *testing.T) {
	cases, err := ParseSizes(" 5, 8 ,,20", 777)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 3 || cases[0].Jobs != 5 || cases[2].Jobs != 20 {
		t.Errorf("unexpected cases %+v", cases)
	}
	if cases[0].InstanceSeed == cases[1].InstanceSeed {
		t.Error("expected distinct instance seeds")
	}
	for _, bad := range []string{"0", "x", "-3"} {
		if _, err := ParseSizes(bad, 1); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestRunCase_JohnsonIsOptimal(t *testing.T) {
	ref, err := exact.New(exact.DefaultConfig())
	if err != nil {
		t.Fatalf("exact: %v", err)
	}
	runner := Runner{Runs: 5, MinTime: 1, MaxTime: 20, Reference: ref, ReferenceMaxJobs: 6}
	algo := Algorithm{
		Name:    "johnson-scan",
		Factory: func() (opt.Optimizer, error) { return johnson.New(johnson.DefaultConfig()) },
	}

	rec, err := runner.RunCase(context.Background(), Case{Jobs: 6, InstanceSeed: 11}, algo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.OptimalHits != 5 {
		t.Errorf("expected 5/5 optimal runs, got %d", rec.OptimalHits)
	}
	if rec.UtilizationMean <= 0 || rec.UtilizationMean > 1 {
		t.Errorf("utilization mean %g outside (0, 1]", rec.UtilizationMean)
	}

	rec, err = runner.RunCase(context.Background(), Case{Jobs: 30, InstanceSeed: 11}, algo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.OptimalHits != -1 {
		t.Errorf("expected no reference above the limit, got %d", rec.OptimalHits)
	}
}

func TestAlgorithmSupports(t *testing.T) {
	a := Algorithm{MaxJobs: 8}
	if !a.Supports(8) || a.Supports(9) {
		t.Error("unexpected Supports result with limit 8")
	}
	if !(Algorithm{}).Supports(1000) {
		t.Error("expected no limit when MaxJobs is 0")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	records := []Record{
		{Algo: "johnson-scan", Jobs: 5, Runs: 3, MakespanBest: 40, OptimalHits: 3},
		{Algo: "johnson-heap", Jobs: 100, Runs: 3, MakespanBest: 900, OptimalHits: -1},
	}
	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[1][10] != "3" || rows[2][10] != "" {
		t.Errorf("unexpected optimal_hits column: %q, %q", rows[1][10], rows[2][10])
	}
}
