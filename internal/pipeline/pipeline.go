// Package pipeline sequences the preparation stages over one in-memory
// batch: clean, transform, validate, split. Per-record failures are tallied
// and the run continues; only whole-batch impossibilities abort it.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"refinery/internal/clean"
	"refinery/internal/config"
	"refinery/internal/ingest"
	"refinery/internal/logging"
	"refinery/internal/split"
	"refinery/internal/transform"
	"refinery/internal/validate"
)

// NoValidDataError reports a run where cleaning removed every record.
// Fatal: there is nothing left to transform.
type NoValidDataError struct {
	Stage    string
	Ingested int
}

func (e *NoValidDataError) Error() string {
	return fmt.Sprintf("pipeline: %s stage left no records (ingested %d)", e.Stage, e.Ingested)
}

// Stats counts records through each stage of one run.
type Stats struct {
	Ingested        int `json:"ingested"`
	Duplicates      int `json:"duplicates"`
	Empties         int `json:"empties"`
	Cleaned         int `json:"cleaned"`
	Transformed     int `json:"transformed"`
	TransformFailed int `json:"transform_failed"`
	Passed          int `json:"passed"`
	Failed          int `json:"failed"`
	Train           int `json:"train"`
	Val             int `json:"val"`
}

func (s *Stats) add(o Stats) {
	s.Ingested += o.Ingested
	s.Duplicates += o.Duplicates
	s.Empties += o.Empties
	s.Cleaned += o.Cleaned
	s.Transformed += o.Transformed
	s.TransformFailed += o.TransformFailed
	s.Passed += o.Passed
	s.Failed += o.Failed
	s.Train += o.Train
	s.Val += o.Val
}

// Result is what survives a run: the split plus the quality report and
// per-stage statistics.
type Result struct {
	RunID   string              `json:"run_id"`
	Train   []transform.Example `json:"-"`
	Val     []transform.Example `json:"-"`
	Report  validate.Report     `json:"report"`
	Stats   Stats               `json:"stats"`
	Elapsed time.Duration       `json:"elapsed_ns"`
}

// Pipeline holds the configured stage implementations. Stateless across
// runs: every Run consumes one batch and produces a fresh Result.
type Pipeline struct {
	cfg         *config.Config
	transformer *transform.Transformer
	validator   *validate.Validator
	logger      *slog.Logger
}

// New wires the stages from a resolved configuration.
func New(cfg *config.Config) (*Pipeline, error) {
	tr, err := transform.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:         cfg,
		transformer: tr,
		validator:   validate.New(cfg),
		logger:      logging.New("pipeline"),
	}, nil
}

// Run threads one batch through clean → transform → validate → split.
func (p *Pipeline) Run(ctx context.Context, records []ingest.Record) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	passing, err := p.process(ctx, records, result)
	if err != nil {
		return nil, err
	}

	// Split the passing examples.
	train, val, err := split.Split(passing, split.Options{
		Ratio:      p.cfg.Output.TrainSplit,
		Shuffle:    p.cfg.Output.Shuffle,
		Seed:       p.cfg.Output.Seed,
		ReserveVal: p.cfg.Output.ReserveVal,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: split stage (%d passing of %d ingested): %w",
			len(passing), len(records), err)
	}
	result.Train = train
	result.Val = val
	result.Stats.Train = len(train)
	result.Stats.Val = len(val)
	result.Elapsed = time.Since(start)

	p.logger.Info("run complete",
		"run_id", result.RunID,
		"train", len(train),
		"val", len(val),
		"elapsed", result.Elapsed)
	return result, nil
}

// Inspect runs the clean, transform and validate stages without splitting
// or writing anything. Dry runs work on batches of any size, including ones
// too small to split.
func (p *Pipeline) Inspect(ctx context.Context, records []ingest.Record) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	if _, err := p.process(ctx, records, result); err != nil {
		return nil, err
	}
	result.Elapsed = time.Since(start)
	return result, nil
}

// process runs the shared front of the pipeline and returns the examples
// that passed validation.
func (p *Pipeline) process(ctx context.Context, records []ingest.Record, result *Result) ([]transform.Example, error) {
	result.Stats.Ingested = len(records)
	p.logger.Info("run started", "run_id", result.RunID, "records", len(records))

	// Clean: normalize every textual field, then drop empties and duplicates.
	cleaned := clean.Records(records)
	if p.cfg.Validation.CheckDuplicates {
		var drops clean.DropStats
		cleaned, drops = clean.Dedupe(cleaned,
			p.cfg.Validation.DedupMode,
			p.cfg.ContentFields(),
			p.cfg.Validation.RequiredFields)
		result.Stats.Duplicates = drops.Duplicates
		result.Stats.Empties = drops.Empties
	}
	result.Stats.Cleaned = len(cleaned)
	p.logger.Info("cleaning complete",
		"kept", len(cleaned),
		"duplicates", result.Stats.Duplicates,
		"empties", result.Stats.Empties)

	if len(cleaned) == 0 {
		return nil, &NoValidDataError{Stage: "clean", Ingested: len(records)}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: canceled after cleaning: %w", err)
	}

	// Transform and validate. A record the transformer rejects becomes a
	// failed verdict so the report covers it; the run never aborts here.
	var examples []transform.Example
	var verdicts []validate.Verdict
	var passing []transform.Example

	for i, rec := range cleaned {
		ex, err := p.transformer.Transform(rec)
		if err != nil {
			result.Stats.TransformFailed++
			verdict := validate.Verdict{Index: i, Passed: false, Score: 0}
			if mfe, ok := err.(*transform.MissingFieldError); ok {
				verdict.Reasons = []string{validate.ReasonMissingField(mfe.Field)}
			} else {
				verdict.Reasons = []string{"transform_error"}
			}
			verdicts = append(verdicts, verdict)
			p.logger.Debug("transform skipped record", "index", i, "error", err)
			continue
		}
		examples = append(examples, ex)

		verdict := p.validator.Validate(i, ex)
		verdicts = append(verdicts, verdict)
		if verdict.Passed {
			passing = append(passing, ex)
		} else {
			p.logger.Debug("validation failed", "index", i, "reasons", verdict.Reasons, "score", verdict.Score)
		}
	}
	result.Stats.Transformed = len(examples)

	result.Report = validate.Summarize(verdicts)
	result.Stats.Passed = result.Report.Passed
	result.Stats.Failed = result.Report.Failed
	p.logger.Info("validation complete",
		"transformed", result.Stats.Transformed,
		"transform_failed", result.Stats.TransformFailed,
		"passed", result.Report.Passed,
		"failed", result.Report.Failed,
		"pass_rate", result.Report.PassRate)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: canceled after validation: %w", err)
	}
	return passing, nil
}
