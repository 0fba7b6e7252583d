package output

import (
	"fmt"
	"sort"
	"strings"

	"refinery/internal/format"
	"refinery/internal/pipeline"
)

// RenderReport renders the run summary as two tables: per-stage record
// counts and failure reasons. The reason table is omitted when every
// record passed.
func RenderReport(result *pipeline.Result, mode format.Mode) string {
	var b strings.Builder

	stats := format.NewTable(mode)
	stats.Header("Stage", "Records")
	stats.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	stats.Row("ingested", format.FmtCount(result.Stats.Ingested))
	stats.Row("duplicates dropped", format.FmtCount(result.Stats.Duplicates))
	stats.Row("empties dropped", format.FmtCount(result.Stats.Empties))
	stats.Row("cleaned", format.FmtCount(result.Stats.Cleaned))
	stats.Row("transformed", format.FmtCount(result.Stats.Transformed))
	stats.Row("transform failures", format.FmtCount(result.Stats.TransformFailed))
	stats.Row("passed validation", format.FmtCount(result.Stats.Passed))
	stats.Row("failed validation", format.FmtCount(result.Stats.Failed))
	stats.Footer("train / val", fmt.Sprintf("%s / %s",
		format.FmtCount(result.Stats.Train), format.FmtCount(result.Stats.Val)))

	fmt.Fprintf(&b, "Run %s: pass rate %s in %s\n\n",
		result.RunID,
		format.FmtPercent(result.Report.PassRate),
		format.FmtDuration(result.Elapsed))
	b.WriteString(stats.String())
	b.WriteString("\n")

	if len(result.Report.Reasons) > 0 {
		reasons := format.NewTable(mode)
		reasons.Header("Failure reason", "Count")
		reasons.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})

		keys := make([]string, 0, len(result.Report.Reasons))
		for k := range result.Report.Reasons {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			reasons.Row(k, result.Report.Reasons[k])
		}
		b.WriteString("\n")
		b.WriteString(reasons.String())
		b.WriteString("\n")
	}
	return b.String()
}
