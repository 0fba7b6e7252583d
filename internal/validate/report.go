package validate

// Report aggregates validation verdicts for one run (or one shard). It is
// derived data: recomputable from the verdict sequence that produced it.
type Report struct {
	Total    int            `json:"total"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
	Reasons  map[string]int `json:"reasons,omitempty"`
	PassRate float64        `json:"pass_rate"`
}

// Summarize tallies a verdict sequence. A verdict that failed several checks
// contributes to every matching reason bucket. PassRate is 0 for an empty
// sequence, never a division fault.
func Summarize(verdicts []Verdict) Report {
	r := Report{Reasons: make(map[string]int)}
	for _, v := range verdicts {
		r.Total++
		if v.Passed {
			r.Passed++
		} else {
			r.Failed++
		}
		for _, reason := range v.Reasons {
			r.Reasons[reason]++
		}
	}
	if r.Total > 0 {
		r.PassRate = float64(r.Passed) / float64(r.Total)
	}
	return r
}

// Merge combines shard reports: counts sum and PassRate is recomputed from
// the summed totals, never averaged.
func Merge(reports ...Report) Report {
	merged := Report{Reasons: make(map[string]int)}
	for _, r := range reports {
		merged.Total += r.Total
		merged.Passed += r.Passed
		merged.Failed += r.Failed
		for reason, n := range r.Reasons {
			merged.Reasons[reason] += n
		}
	}
	if merged.Total > 0 {
		merged.PassRate = float64(merged.Passed) / float64(merged.Total)
	}
	return merged
}
