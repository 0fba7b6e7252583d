package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refinery/internal/format"
	"refinery/internal/ingest"
	"refinery/internal/output"
	"refinery/internal/pipeline"
)

var (
	prepareOutputDir string
	prepareShards    int
	prepareMarkdown  bool
)

var prepareCmd = &cobra.Command{
	Use:   "prepare <input>",
	Short: "Run the full pipeline and write train/val splits",
	Long: `Runs ingest, clean, transform, validate and split over the input file or
directory, then writes train.jsonl, val.jsonl and report.json to the output
directory and prints the quality report.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrepare,
}

func init() {
	f := prepareCmd.Flags()
	f.StringVarP(&prepareOutputDir, "output", "o", "", "output directory (overrides the configured one)")
	f.IntVar(&prepareShards, "shards", 1, "number of concurrent pipeline shards")
	f.BoolVar(&prepareMarkdown, "markdown", false, "render the report as Markdown instead of ASCII")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if prepareOutputDir != "" {
		cfg.Output.Dir = prepareOutputDir
	}

	records, err := ingest.Load(cmd.Context(), args[0], cfg.Pipeline.SupportedFormats)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	result, err := p.RunSharded(cmd.Context(), records, prepareShards)
	if err != nil {
		return err
	}

	trainPath, valPath, err := output.WriteSplit(cfg.Output.Dir, result)
	if err != nil {
		return err
	}
	reportPath, err := output.WriteReport(cfg.Output.Dir, result)
	if err != nil {
		return err
	}

	mode := format.ASCII
	if prepareMarkdown {
		mode = format.Markdown
	}
	fmt.Fprint(cmd.OutOrStdout(), output.RenderReport(result, mode))
	fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s, %s and %s\n", trainPath, valPath, reportPath)
	return nil
}
