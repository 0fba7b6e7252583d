// Package mcp exposes the preparation pipeline as Model Context Protocol
// tools over stdio, so agent hosts can prepare and inspect datasets without
// shelling out to the CLI.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"refinery/internal/config"
	"refinery/internal/format"
	"refinery/internal/ingest"
	"refinery/internal/logging"
	"refinery/internal/output"
	"refinery/internal/pipeline"
	"refinery/internal/validate"
)

// Server wraps the MCP SDK server around the preparation pipeline.
type Server struct {
	MCPServer *sdkmcp.Server
	logger    *slog.Logger
}

// NewServer creates an MCP server with the dataset tools registered.
func NewServer(version string) *Server {
	s := &Server{logger: logging.New("mcp")}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "refinery", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "prepare_dataset",
		Description: "Run the full preparation pipeline on an input file or directory and write train.jsonl, val.jsonl and report.json to the output directory.",
	}, s.handlePrepare)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "inspect_dataset",
		Description: "Dry-run cleaning, transformation and validation on an input file or directory. Reports quality without writing any files.",
	}, s.handleInspect)
}

// --- Tool input/output types ---

type prepareInput struct {
	Input     string `json:"input" jsonschema:"path to an input file or directory of JSON/JSONL/CSV/TXT records"`
	Config    string `json:"config,omitempty" jsonschema:"path to a YAML or JSON pipeline configuration (defaults apply when omitted)"`
	OutputDir string `json:"output_dir,omitempty" jsonschema:"directory for train.jsonl/val.jsonl, overrides the configured one"`
	Shards    int    `json:"shards,omitempty" jsonschema:"number of concurrent pipeline shards (0 or 1 = single run)"`
}

type prepareOutput struct {
	RunID      string          `json:"run_id"`
	TrainPath  string          `json:"train_path"`
	ValPath    string          `json:"val_path"`
	ReportPath string          `json:"report_path"`
	Stats      pipeline.Stats  `json:"stats"`
	Report     validate.Report `json:"report"`
}

type inspectInput struct {
	Input  string `json:"input" jsonschema:"path to an input file or directory of JSON/JSONL/CSV/TXT records"`
	Config string `json:"config,omitempty" jsonschema:"path to a YAML or JSON pipeline configuration (defaults apply when omitted)"`
}

type inspectOutput struct {
	RunID    string          `json:"run_id"`
	Stats    pipeline.Stats  `json:"stats"`
	Report   validate.Report `json:"report"`
	Rendered string          `json:"rendered"`
}

// --- Tool handlers ---

func (s *Server) handlePrepare(ctx context.Context, _ *sdkmcp.CallToolRequest, input prepareInput) (*sdkmcp.CallToolResult, prepareOutput, error) {
	if input.Input == "" {
		return nil, prepareOutput{}, fmt.Errorf("prepare_dataset: input path is required")
	}

	cfg, err := config.Load(input.Config)
	if err != nil {
		return nil, prepareOutput{}, fmt.Errorf("prepare_dataset: %w", err)
	}
	if input.OutputDir != "" {
		cfg.Output.Dir = input.OutputDir
	}

	records, err := ingest.Load(ctx, input.Input, cfg.Pipeline.SupportedFormats)
	if err != nil {
		return nil, prepareOutput{}, fmt.Errorf("prepare_dataset: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, prepareOutput{}, fmt.Errorf("prepare_dataset: %w", err)
	}
	result, err := p.RunSharded(ctx, records, input.Shards)
	if err != nil {
		return nil, prepareOutput{}, fmt.Errorf("prepare_dataset: %w", err)
	}

	trainPath, valPath, err := output.WriteSplit(cfg.Output.Dir, result)
	if err != nil {
		return nil, prepareOutput{}, fmt.Errorf("prepare_dataset: %w", err)
	}
	reportPath, err := output.WriteReport(cfg.Output.Dir, result)
	if err != nil {
		return nil, prepareOutput{}, fmt.Errorf("prepare_dataset: %w", err)
	}

	s.logger.Info("prepare_dataset complete",
		"run_id", result.RunID,
		"train", result.Stats.Train,
		"val", result.Stats.Val)
	return nil, prepareOutput{
		RunID:      result.RunID,
		TrainPath:  trainPath,
		ValPath:    valPath,
		ReportPath: reportPath,
		Stats:      result.Stats,
		Report:     result.Report,
	}, nil
}

func (s *Server) handleInspect(ctx context.Context, _ *sdkmcp.CallToolRequest, input inspectInput) (*sdkmcp.CallToolResult, inspectOutput, error) {
	if input.Input == "" {
		return nil, inspectOutput{}, fmt.Errorf("inspect_dataset: input path is required")
	}

	cfg, err := config.Load(input.Config)
	if err != nil {
		return nil, inspectOutput{}, fmt.Errorf("inspect_dataset: %w", err)
	}
	records, err := ingest.Load(ctx, input.Input, cfg.Pipeline.SupportedFormats)
	if err != nil {
		return nil, inspectOutput{}, fmt.Errorf("inspect_dataset: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, inspectOutput{}, fmt.Errorf("inspect_dataset: %w", err)
	}
	result, err := p.Inspect(ctx, records)
	if err != nil {
		return nil, inspectOutput{}, fmt.Errorf("inspect_dataset: %w", err)
	}

	s.logger.Info("inspect_dataset complete",
		"run_id", result.RunID,
		"pass_rate", result.Report.PassRate)
	return nil, inspectOutput{
		RunID:    result.RunID,
		Stats:    result.Stats,
		Report:   result.Report,
		Rendered: output.RenderReport(result, format.Markdown),
	}, nil
}

// Serve runs the MCP server over stdio until the context is canceled or
// the transport closes.
func (s *Server) Serve(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
