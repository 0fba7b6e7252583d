package validate

import (
	"unicode/utf8"

	"refinery/internal/config"
	"refinery/internal/transform"
)

// Validator checks transformed examples against the configured thresholds.
// Checks never short-circuit: every applicable failure reason is recorded so
// the quality report carries a full breakdown.
type Validator struct {
	tmpl     config.TemplateConfig
	minLen   int
	maxLen   int
	minScore float64
}

// New builds a Validator from the resolved configuration.
func New(cfg *config.Config) *Validator {
	return &Validator{
		tmpl:     cfg.Transformation.Template,
		minLen:   cfg.Validation.MinTextLength,
		maxLen:   cfg.Validation.MaxTextLength,
		minScore: cfg.Validation.MinQualityScore,
	}
}

// Validate produces the verdict for one example at the given batch index.
func (v *Validator) Validate(index int, ex transform.Example) Verdict {
	var reasons []string

	reasons = append(reasons, requiredFieldReasons(ex)...)

	text := ex.Render(v.tmpl)
	length := utf8.RuneCountInString(text)
	if length < v.minLen {
		reasons = append(reasons, ReasonTooShort)
	}
	if v.maxLen > 0 && length > v.maxLen {
		reasons = append(reasons, ReasonTooLong)
	}

	score := Score(text)
	if score < v.minScore {
		reasons = append(reasons, ReasonLowQuality)
	}

	return Verdict{
		Index:   index,
		Passed:  len(reasons) == 0,
		Reasons: reasons,
		Score:   score,
	}
}

// requiredFieldReasons checks variant-specific required fields. The Example
// sum is closed, so the switch is exhaustive over its three cases.
func requiredFieldReasons(ex transform.Example) []string {
	var reasons []string
	switch e := ex.(type) {
	case *transform.Instruction:
		if e.Instruction == "" {
			reasons = append(reasons, ReasonMissingField(config.RoleInstruction))
		}
		if e.Response == "" {
			reasons = append(reasons, ReasonMissingField(config.RoleResponse))
		}
	case *transform.Conversation:
		if len(e.Messages) == 0 {
			reasons = append(reasons, ReasonMissingField("messages"))
			break
		}
		var hasUser, hasAssistant bool
		for _, m := range e.Messages {
			switch m.Role {
			case transform.RoleUser:
				hasUser = hasUser || m.Content != ""
			case transform.RoleAssistant:
				hasAssistant = hasAssistant || m.Content != ""
			}
		}
		if !hasUser {
			reasons = append(reasons, ReasonMissingField(transform.RoleUser))
		}
		if !hasAssistant {
			reasons = append(reasons, ReasonMissingField(transform.RoleAssistant))
		}
	case *transform.Completion:
		if e.Prompt == "" {
			reasons = append(reasons, ReasonMissingField(config.RolePrompt))
		}
		if e.Completion == "" {
			reasons = append(reasons, ReasonMissingField(config.RoleCompletion))
		}
	}
	return reasons
}
