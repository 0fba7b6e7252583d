// Package config defines the resolved pipeline configuration and its YAML
// loader. All defaulting and validation happens here, before the core
// pipeline sees the Config.
package config

import (
	"fmt"
	"slices"
)

// Output formats for transformed examples.
const (
	FormatInstruction  = "instruction"
	FormatConversation = "conversation"
	FormatCompletion   = "completion"
)

// Canonical roles that field mappings resolve raw keys onto.
const (
	RoleInstruction = "instruction"
	RoleInput       = "input"
	RoleResponse    = "response"
	RolePrompt      = "prompt"
	RoleCompletion  = "completion"
)

// Dedup modes.
const (
	DedupExact = "exact"
	DedupField = "field"
)

// Config is the fully resolved pipeline configuration. Built once by Load
// (or Default) and read-only afterwards.
type Config struct {
	Pipeline       PipelineConfig  `yaml:"pipeline" json:"pipeline"`
	Transformation TransformConfig `yaml:"transformation" json:"transformation"`
	Validation     ValidationConfig `yaml:"validation" json:"validation"`
	Output         OutputConfig    `yaml:"output" json:"output"`
	Logging        LoggingConfig   `yaml:"logging" json:"logging"`
}

// PipelineConfig controls ingestion.
type PipelineConfig struct {
	SupportedFormats []string `yaml:"supported_formats" json:"supported_formats"`
}

// TransformConfig controls the output format, the raw-key → canonical-role
// mapping, and the rendering templates.
type TransformConfig struct {
	OutputFormat string              `yaml:"output_format" json:"output_format"`
	FieldMapping map[string][]string `yaml:"field_mapping" json:"field_mapping"`
	Template     TemplateConfig      `yaml:"template" json:"template"`
}

// TemplateConfig holds the fixed separators used when rendering examples.
type TemplateConfig struct {
	SystemPrompt      string `yaml:"system_prompt" json:"system_prompt"`
	InstructionPrefix string `yaml:"instruction_prefix" json:"instruction_prefix"`
	ResponsePrefix    string `yaml:"response_prefix" json:"response_prefix"`
	InputPrefix       string `yaml:"input_prefix" json:"input_prefix"`
	CompletionJoiner  string `yaml:"completion_joiner" json:"completion_joiner"`
}

// ValidationConfig holds cleaning and quality thresholds.
type ValidationConfig struct {
	RequiredFields  []string `yaml:"required_fields" json:"required_fields"`
	MinTextLength   int      `yaml:"min_text_length" json:"min_text_length"`
	MaxTextLength   int      `yaml:"max_text_length" json:"max_text_length"`
	MinQualityScore float64  `yaml:"min_quality_score" json:"min_quality_score"`
	CheckDuplicates bool     `yaml:"check_duplicates" json:"check_duplicates"`
	DedupMode       string   `yaml:"dedup_mode" json:"dedup_mode"`
}

// OutputConfig controls the train/val split and where files land.
type OutputConfig struct {
	Dir        string  `yaml:"dir" json:"dir"`
	TrainSplit float64 `yaml:"train_split" json:"train_split"`
	Shuffle    bool    `yaml:"shuffle" json:"shuffle"`
	Seed       int64   `yaml:"seed" json:"seed"`
	ReserveVal bool    `yaml:"reserve_val" json:"reserve_val"`
}

// LoggingConfig controls the global slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns a Config with every setting resolved to its default.
// Load unmarshals user files over this, so absent keys keep these values.
func Default() Config {
	return Config{
		Pipeline: PipelineConfig{
			SupportedFormats: []string{"json", "jsonl", "csv", "txt"},
		},
		Transformation: TransformConfig{
			OutputFormat: FormatInstruction,
			FieldMapping: map[string][]string{
				RoleInstruction: {"instruction", "prompt", "question", "user"},
				RoleInput:       {"context", "input_context", "input"},
				RoleResponse:    {"response", "output", "answer", "assistant"},
				RolePrompt:      {"prompt", "instruction", "input"},
				RoleCompletion:  {"completion", "response", "output", "text"},
			},
			Template: TemplateConfig{
				SystemPrompt:      "You are a helpful AI assistant.",
				InstructionPrefix: "### Instruction:\n",
				ResponsePrefix:    "### Response:\n",
				InputPrefix:       "Input: ",
				CompletionJoiner:  "",
			},
		},
		Validation: ValidationConfig{
			RequiredFields:  []string{"instruction", "response"},
			MinTextLength:   10,
			MaxTextLength:   5000,
			MinQualityScore: 0.3,
			CheckDuplicates: true,
			DedupMode:       DedupField,
		},
		Output: OutputConfig{
			Dir:        "data/output",
			TrainSplit: 0.9,
			Shuffle:    true,
			Seed:       42,
			ReserveVal: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

var knownRoles = []string{RoleInstruction, RoleInput, RoleResponse, RolePrompt, RoleCompletion}

// Validate checks a resolved Config for structural impossibilities.
func (c *Config) Validate() error {
	switch c.Transformation.OutputFormat {
	case FormatInstruction, FormatConversation, FormatCompletion:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Transformation.OutputFormat)
	}

	for role := range c.Transformation.FieldMapping {
		if !slices.Contains(knownRoles, role) {
			return fmt.Errorf("config: field mapping names unknown role %q", role)
		}
	}

	switch c.Validation.DedupMode {
	case DedupExact, DedupField:
	default:
		return fmt.Errorf("config: unknown dedup mode %q", c.Validation.DedupMode)
	}

	if c.Validation.MinTextLength < 0 {
		return fmt.Errorf("config: min_text_length must be >= 0, got %d", c.Validation.MinTextLength)
	}
	if c.Validation.MaxTextLength > 0 && c.Validation.MaxTextLength < c.Validation.MinTextLength {
		return fmt.Errorf("config: max_text_length %d below min_text_length %d",
			c.Validation.MaxTextLength, c.Validation.MinTextLength)
	}
	if c.Validation.MinQualityScore < 0 || c.Validation.MinQualityScore > 1 {
		return fmt.Errorf("config: min_quality_score must be in [0,1], got %g", c.Validation.MinQualityScore)
	}

	if c.Output.TrainSplit <= 0 || c.Output.TrainSplit >= 1 {
		return fmt.Errorf("config: train_split must be in (0,1), got %g", c.Output.TrainSplit)
	}

	return nil
}

// ContentRoles returns the canonical roles that carry training content for
// the configured output format.
func (c *Config) ContentRoles() []string {
	switch c.Transformation.OutputFormat {
	case FormatCompletion:
		return []string{RolePrompt, RoleCompletion}
	default:
		return []string{RoleInstruction, RoleResponse}
	}
}

// ContentFields returns the ordered, deduplicated raw keys the field mapping
// binds to the format's content roles. The deduplicator's "field" mode
// fingerprints records over exactly these keys.
func (c *Config) ContentFields() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, role := range c.ContentRoles() {
		for _, key := range c.Transformation.FieldMapping[role] {
			if !seen[key] {
				seen[key] = true
				fields = append(fields, key)
			}
		}
	}
	return fields
}
