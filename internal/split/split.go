// Package split partitions validated examples into train and validation
// subsets, deterministically for a given seed and input order.
package split

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// InsufficientDataError reports a batch too small to split. Fatal: the
// orchestrator aborts the run on it.
type InsufficientDataError struct {
	N int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("split: need at least 2 records to form a split, have %d", e.N)
}

// Options controls the partition.
type Options struct {
	// Ratio is the train share, in (0,1).
	Ratio float64
	// Shuffle applies a seeded pseudo-random shuffle before cutting;
	// when false the input order is preserved.
	Shuffle bool
	Seed    int64
	// ReserveVal pulls the cut back so the validation side keeps at least
	// one record even when rounding would leave it empty.
	ReserveVal bool
}

// Split partitions records at floor(Ratio*n) after an optional seeded
// shuffle of a copy (the input slice is never reordered). The two halves are
// an exhaustive, disjoint partition of the input. Fewer than 2 records is an
// *InsufficientDataError.
func Split[T any](records []T, opts Options) (train, val []T, err error) {
	n := len(records)
	if n < 2 {
		return nil, nil, &InsufficientDataError{N: n}
	}
	if opts.Ratio <= 0 || opts.Ratio >= 1 {
		return nil, nil, fmt.Errorf("split: ratio must be in (0,1), got %g", opts.Ratio)
	}

	ordered := slices.Clone(records)
	if opts.Shuffle {
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(n, func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}

	cut := int(math.Floor(opts.Ratio * float64(n)))
	if cut < 1 {
		cut = 1
	}
	if opts.ReserveVal && cut >= n {
		cut = n - 1
	}

	return ordered[:cut], ordered[cut:], nil
}
