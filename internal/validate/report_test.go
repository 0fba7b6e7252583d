package validate

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	verdicts := []Verdict{
		{Index: 0, Passed: true, Score: 0.9},
		{Index: 1, Passed: false, Reasons: []string{ReasonTooShort, ReasonLowQuality}, Score: 0.1},
		{Index: 2, Passed: false, Reasons: []string{ReasonTooShort}, Score: 0.5},
		{Index: 3, Passed: true, Score: 0.8},
	}
	report := Summarize(verdicts)

	if report.Total != 4 || report.Passed != 2 || report.Failed != 2 {
		t.Errorf("counts = %d/%d/%d, want 4/2/2", report.Total, report.Passed, report.Failed)
	}
	if report.Passed+report.Failed != report.Total {
		t.Error("passed + failed must equal total")
	}
	wantReasons := map[string]int{ReasonTooShort: 2, ReasonLowQuality: 1}
	if diff := cmp.Diff(wantReasons, report.Reasons); diff != "" {
		t.Errorf("reasons mismatch:\n%s", diff)
	}
	if math.Abs(report.PassRate-0.5) > 1e-9 {
		t.Errorf("PassRate = %g, want 0.5", report.PassRate)
	}
}

func TestSummarize_EmptyIsZeroRate(t *testing.T) {
	report := Summarize(nil)
	if report.Total != 0 || report.PassRate != 0 {
		t.Errorf("empty summarize = %+v, want zero totals and rate", report)
	}
}

func TestMerge_RecomputesRateFromSums(t *testing.T) {
	// 1/1 passed and 0/3 passed: averaged rates would give 0.5; the merged
	// rate must be 1/4.
	a := Summarize([]Verdict{{Passed: true}})
	b := Summarize([]Verdict{
		{Passed: false, Reasons: []string{ReasonTooShort}},
		{Passed: false, Reasons: []string{ReasonTooShort}},
		{Passed: false, Reasons: []string{ReasonTooLong}},
	})

	merged := Merge(a, b)
	if merged.Total != 4 || merged.Passed != 1 || merged.Failed != 3 {
		t.Errorf("counts = %d/%d/%d, want 4/1/3", merged.Total, merged.Passed, merged.Failed)
	}
	if math.Abs(merged.PassRate-0.25) > 1e-9 {
		t.Errorf("PassRate = %g, want 0.25", merged.PassRate)
	}
	if merged.Reasons[ReasonTooShort] != 2 || merged.Reasons[ReasonTooLong] != 1 {
		t.Errorf("merged reasons = %v", merged.Reasons)
	}
}
