package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"golang.org/x/sync/errgroup"

	"refinery/internal/ingest"
	"refinery/internal/validate"
)

// RunSharded partitions the batch into contiguous shards, runs an
// independent pipeline per shard concurrently, and merges the results:
// train/val splits are concatenated in shard order and shard reports are
// merged by summing counts (the pass rate is recomputed from the summed
// totals). Every shard must independently satisfy the split preconditions;
// with fewer passing records than 2 per shard the run fails.
func (p *Pipeline) RunSharded(ctx context.Context, records []ingest.Record, shards int) (*Result, error) {
	if shards <= 1 {
		return p.Run(ctx, records)
	}
	if shards > len(records) {
		return nil, fmt.Errorf("pipeline: %d shards for %d records", shards, len(records))
	}

	parts := partition(records, shards)
	results := make([]*Result, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			r, err := p.Run(gctx, part)
			if err != nil {
				return fmt.Errorf("shard %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Result{RunID: uuid.NewString()}
	reports := make([]validate.Report, len(results))
	for i, r := range results {
		merged.Train = append(merged.Train, r.Train...)
		merged.Val = append(merged.Val, r.Val...)
		merged.Stats.add(r.Stats)
		if r.Elapsed > merged.Elapsed {
			merged.Elapsed = r.Elapsed
		}
		reports[i] = r.Report
	}
	merged.Report = validate.Merge(reports...)

	p.logger.Info("sharded run complete",
		"run_id", merged.RunID,
		"shards", shards,
		"train", len(merged.Train),
		"val", len(merged.Val))
	return merged, nil
}

// partition slices records into n contiguous, near-equal parts.
func partition(records []ingest.Record, n int) [][]ingest.Record {
	parts := make([][]ingest.Record, 0, n)
	size := len(records) / n
	rem := len(records) % n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		parts = append(parts, records[start:end])
		start = end
	}
	return parts
}
