package flowshop

import (
	"errors"
	"fmt"
)

var ErrInvalidSequence = errors.New("invalid sequence")

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidSequence, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: seq[%d]=%d out of range [0,%d)", ErrInvalidSequence, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate task index %d", ErrInvalidSequence, v)
		}
		seen[v] = true
	}
	return nil
}

// SequenceLabels renders a sequence as 1-based tags: [2 0] -> ["T3" "T1"].
func SequenceLabels(perm []int) []string {
	out := make([]string, len(perm))
	for i, idx := range perm {
		out[i] = ShortLabel(idx)
	}
	return out
}
