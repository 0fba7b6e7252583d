package transform

import (
	"fmt"

	"refinery/internal/config"
	"refinery/internal/ingest"
)

// MissingFieldError reports a record that lacks a canonical field the
// configured format requires after mapping. Per-record and recoverable: the
// orchestrator tallies it and continues the run.
type MissingFieldError struct {
	Format string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("transform: %s format requires field %q", e.Format, e.Field)
}

// Transformer maps cleaned records into the configured example shape.
// The field-mapping table is validated once at construction.
type Transformer struct {
	format  string
	mapping map[string][]string
	tmpl    config.TemplateConfig
}

// requiredRoles lists the canonical roles each format cannot do without.
var requiredRoles = map[string][]string{
	config.FormatInstruction:  {config.RoleInstruction, config.RoleResponse},
	config.FormatConversation: {config.RoleInstruction, config.RoleResponse},
	config.FormatCompletion:   {config.RolePrompt, config.RoleCompletion},
}

// New builds a Transformer for cfg, checking that the field mapping binds
// raw keys to every role the configured format requires.
func New(cfg *config.Config) (*Transformer, error) {
	format := cfg.Transformation.OutputFormat
	roles, ok := requiredRoles[format]
	if !ok {
		return nil, fmt.Errorf("transform: unknown output format %q", format)
	}
	for _, role := range roles {
		if len(cfg.Transformation.FieldMapping[role]) == 0 {
			return nil, fmt.Errorf("transform: field mapping binds no raw keys to required role %q", role)
		}
	}
	return &Transformer{
		format:  format,
		mapping: cfg.Transformation.FieldMapping,
		tmpl:    cfg.Transformation.Template,
	}, nil
}

// Template returns the rendering template the transformer was built with.
func (t *Transformer) Template() config.TemplateConfig { return t.tmpl }

// Transform converts one cleaned record into the configured example shape.
// Returns *MissingFieldError when a required canonical field resolves empty.
func (t *Transformer) Transform(rec ingest.Record) (Example, error) {
	switch t.format {
	case config.FormatInstruction:
		return t.toInstruction(rec)
	case config.FormatConversation:
		return t.toConversation(rec)
	case config.FormatCompletion:
		return t.toCompletion(rec)
	default:
		return nil, fmt.Errorf("transform: unknown output format %q", t.format)
	}
}

// resolve returns the first non-empty raw value among the keys mapped to role.
func (t *Transformer) resolve(rec ingest.Record, role string) string {
	for _, key := range t.mapping[role] {
		if v := rec.String(key); v != "" {
			return v
		}
	}
	return ""
}

func (t *Transformer) toInstruction(rec ingest.Record) (Example, error) {
	instruction := t.resolve(rec, config.RoleInstruction)
	if instruction == "" {
		return nil, &MissingFieldError{Format: t.format, Field: config.RoleInstruction}
	}
	response := t.resolve(rec, config.RoleResponse)
	if response == "" {
		return nil, &MissingFieldError{Format: t.format, Field: config.RoleResponse}
	}

	ex := &Instruction{
		Instruction: instruction,
		Input:       t.resolve(rec, config.RoleInput),
		Response:    response,
	}
	ex.Text = ex.Render(t.tmpl)
	return ex, nil
}

func (t *Transformer) toConversation(rec ingest.Record) (Example, error) {
	instruction := t.resolve(rec, config.RoleInstruction)
	if instruction == "" {
		return nil, &MissingFieldError{Format: t.format, Field: config.RoleInstruction}
	}
	response := t.resolve(rec, config.RoleResponse)
	if response == "" {
		return nil, &MissingFieldError{Format: t.format, Field: config.RoleResponse}
	}

	userContent := instruction
	if input := t.resolve(rec, config.RoleInput); input != "" {
		userContent = instruction + "\n\n" + input
	}

	var messages []Message
	if t.tmpl.SystemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: t.tmpl.SystemPrompt})
	}
	messages = append(messages,
		Message{Role: RoleUser, Content: userContent},
		Message{Role: RoleAssistant, Content: response},
	)
	return &Conversation{Messages: messages}, nil
}

func (t *Transformer) toCompletion(rec ingest.Record) (Example, error) {
	prompt := t.resolve(rec, config.RolePrompt)
	if prompt == "" {
		return nil, &MissingFieldError{Format: t.format, Field: config.RolePrompt}
	}
	completion := t.resolve(rec, config.RoleCompletion)
	if completion == "" {
		return nil, &MissingFieldError{Format: t.format, Field: config.RoleCompletion}
	}

	ex := &Completion{Prompt: prompt, Completion: completion}
	ex.Text = ex.Render(t.tmpl)
	return ex, nil
}
