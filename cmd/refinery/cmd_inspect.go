package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refinery/internal/format"
	"refinery/internal/ingest"
	"refinery/internal/output"
	"refinery/internal/pipeline"
)

var inspectMarkdown bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Dry-run the pipeline and print the quality report",
	Long: `Runs ingest, clean, transform and validate over the input file or
directory and prints the quality report. Nothing is written; use it to gauge
a corpus before preparing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectMarkdown, "markdown", false, "render the report as Markdown instead of ASCII")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := ingest.Load(cmd.Context(), args[0], cfg.Pipeline.SupportedFormats)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	result, err := p.Inspect(cmd.Context(), records)
	if err != nil {
		return err
	}

	mode := format.ASCII
	if inspectMarkdown {
		mode = format.Markdown
	}
	fmt.Fprint(cmd.OutOrStdout(), output.RenderReport(result, mode))
	return nil
}
