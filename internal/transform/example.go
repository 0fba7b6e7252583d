// Package transform converts cleaned records into training-ready examples in
// one of three schemas: instruction, conversation, or completion.
package transform

import (
	"strings"

	"refinery/internal/config"
)

// Message is one turn in a conversation example.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Example is the closed set of transformed record shapes. Exactly three
// types implement it: Instruction, Conversation, and Completion. Render is
// deterministic: the same fields and template always produce the same text.
type Example interface {
	Format() string
	Render(tmpl config.TemplateConfig) string

	// example restricts implementations to this package, keeping the sum closed.
	example()
}

// Instruction is an instruction-tuning example. Text stores the rendered
// training string and always equals Render over the other fields.
type Instruction struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input,omitempty"`
	Response    string `json:"response"`
	Text        string `json:"text"`
}

func (e *Instruction) Format() string { return config.FormatInstruction }
func (e *Instruction) example()       {}

func (e *Instruction) Render(tmpl config.TemplateConfig) string {
	var b strings.Builder
	if tmpl.SystemPrompt != "" {
		b.WriteString(tmpl.SystemPrompt)
		b.WriteString("\n\n")
	}
	if e.Input != "" {
		b.WriteString(tmpl.InputPrefix)
		b.WriteString(e.Input)
		b.WriteString("\n\n")
	}
	b.WriteString(tmpl.InstructionPrefix)
	b.WriteString(e.Instruction)
	b.WriteString("\n\n")
	b.WriteString(tmpl.ResponsePrefix)
	b.WriteString(e.Response)
	return b.String()
}

// Conversation is a chat-style example: ordered messages, system first when
// configured, then one user and one assistant turn.
type Conversation struct {
	Messages []Message `json:"messages"`
}

func (e *Conversation) Format() string { return config.FormatConversation }
func (e *Conversation) example()       {}

// Render flattens the messages for length and quality checks. Conversations
// carry no stored text field; this is their primary rendered text.
func (e *Conversation) Render(_ config.TemplateConfig) string {
	parts := make([]string, len(e.Messages))
	for i, m := range e.Messages {
		parts[i] = m.Content
	}
	return strings.Join(parts, "\n\n")
}

// Completion is a plain prompt-continuation example.
type Completion struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
	Text       string `json:"text"`
}

func (e *Completion) Format() string { return config.FormatCompletion }
func (e *Completion) example()       {}

// Render joins prompt and completion with the configured joiner, without
// duplicating it when the prompt already ends in the join token.
func (e *Completion) Render(tmpl config.TemplateConfig) string {
	joiner := tmpl.CompletionJoiner
	if joiner != "" && strings.HasSuffix(e.Prompt, joiner) {
		joiner = ""
	}
	return e.Prompt + joiner + e.Completion
}
