package bench

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseSizes turns "5,8,20" into cases. Instance seeds are fixed per size so
// every algorithm sees the same instances.
func ParseSizes(s string, baseInstanceSeed int64) ([]Case, error) {
	parts := SplitCSV(s)
	cases := make([]Case, 0, len(parts))
	for i, p := range parts {
		jobs, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", p, err)
		}
		if jobs <= 0 {
			return nil, fmt.Errorf("size %q: task count must be > 0", p)
		}
		cases = append(cases, Case{
			Jobs:         jobs,
			InstanceSeed: baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100,
		})
	}
	return cases, nil
}

func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
