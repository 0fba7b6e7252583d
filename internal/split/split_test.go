package split

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sequence(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("rec-%02d", i)
	}
	return out
}

func TestSplit_RatioAndSizes(t *testing.T) {
	train, val, err := Split(sequence(20), Options{Ratio: 0.9, Shuffle: true, Seed: 7, ReserveVal: true})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(train) != 18 || len(val) != 2 {
		t.Errorf("sizes = %d/%d, want 18/2", len(train), len(val))
	}
}

func TestSplit_DeterministicForSeed(t *testing.T) {
	input := sequence(20)
	t1, v1, err := Split(input, Options{Ratio: 0.9, Shuffle: true, Seed: 42, ReserveVal: true})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	t2, v2, err := Split(input, Options{Ratio: 0.9, Shuffle: true, Seed: 42, ReserveVal: true})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if diff := cmp.Diff(t1, t2); diff != "" {
		t.Errorf("train not reproducible:\n%s", diff)
	}
	if diff := cmp.Diff(v1, v2); diff != "" {
		t.Errorf("val not reproducible:\n%s", diff)
	}
}

func TestSplit_DifferentSeedsDiffer(t *testing.T) {
	input := sequence(50)
	t1, _, _ := Split(input, Options{Ratio: 0.8, Shuffle: true, Seed: 1, ReserveVal: true})
	t2, _, _ := Split(input, Options{Ratio: 0.8, Shuffle: true, Seed: 2, ReserveVal: true})
	if cmp.Equal(t1, t2) {
		t.Error("different seeds produced identical shuffles (astronomically unlikely)")
	}
}

func TestSplit_NoShufflePreservesOrder(t *testing.T) {
	input := sequence(10)
	train, val, err := Split(input, Options{Ratio: 0.8, Shuffle: false, ReserveVal: true})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if diff := cmp.Diff(input[:8], train); diff != "" {
		t.Errorf("train order mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(input[8:], val); diff != "" {
		t.Errorf("val order mismatch:\n%s", diff)
	}
}

func TestSplit_ExhaustiveAndDisjoint(t *testing.T) {
	input := sequence(17)
	train, val, err := Split(input, Options{Ratio: 0.7, Shuffle: true, Seed: 99, ReserveVal: true})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(train)+len(val) != len(input) {
		t.Fatalf("partition size %d+%d != %d", len(train), len(val), len(input))
	}
	seen := make(map[string]int)
	for _, r := range train {
		seen[r]++
	}
	for _, r := range val {
		seen[r]++
	}
	for _, r := range input {
		if seen[r] != 1 {
			t.Errorf("record %q appears %d times across the partition", r, seen[r])
		}
	}
}

func TestSplit_InsufficientData(t *testing.T) {
	for _, n := range []int{0, 1} {
		_, _, err := Split(sequence(n), Options{Ratio: 0.9, ReserveVal: true})
		var ide *InsufficientDataError
		if !errors.As(err, &ide) {
			t.Errorf("n=%d: expected *InsufficientDataError, got %v", n, err)
			continue
		}
		if ide.N != n {
			t.Errorf("n=%d: error N = %d", n, ide.N)
		}
	}
}

func TestSplit_TinyRatioKeepsTrainNonEmpty(t *testing.T) {
	train, val, err := Split(sequence(3), Options{Ratio: 0.1, Shuffle: false, ReserveVal: true})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(train) != 1 || len(val) != 2 {
		t.Errorf("sizes = %d/%d, want 1/2", len(train), len(val))
	}
}

func TestSplit_RejectsOutOfRangeRatio(t *testing.T) {
	for _, ratio := range []float64{0, 1, -0.5, 2} {
		if _, _, err := Split(sequence(10), Options{Ratio: ratio}); err == nil {
			t.Errorf("ratio %g should be rejected", ratio)
		}
	}
}

func TestSplit_InputNotMutated(t *testing.T) {
	input := sequence(10)
	want := sequence(10)
	if _, _, err := Split(input, Options{Ratio: 0.5, Shuffle: true, Seed: 3, ReserveVal: true}); err != nil {
		t.Fatalf("Split: %v", err)
	}
	if diff := cmp.Diff(want, input); diff != "" {
		t.Errorf("input slice mutated:\n%s", diff)
	}
}
