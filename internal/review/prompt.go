package review

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/critiq-cli/critiq/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PromptBuilder renders the fixed review rubric and the per-file user
// prompt from embedded templates.
type PromptBuilder struct {
	system *template.Template
	user   *template.Template
}

// NewPromptBuilder loads the embedded prompt templates.
func NewPromptBuilder() (*PromptBuilder, error) {
	system, err := template.ParseFS(templateFS, "templates/system_prompt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse system prompt template: %w", err)
	}
	user, err := template.ParseFS(templateFS, "templates/user_prompt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse user prompt template: %w", err)
	}
	return &PromptBuilder{system: system, user: user}, nil
}

// SystemPrompt renders the review rubric, including the security
// checklist schema the provider must fill in.
func (pb *PromptBuilder) SystemPrompt() (string, error) {
	var buf bytes.Buffer
	if err := pb.system.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("failed to execute system prompt template: %w", err)
	}
	return buf.String(), nil
}

// UserPrompt renders the per-file prompt embedding the file's name,
// language tag, and full content.
func (pb *PromptBuilder) UserPrompt(file model.UploadedFile) (string, error) {
	var buf bytes.Buffer
	if err := pb.user.Execute(&buf, file); err != nil {
		return "", fmt.Errorf("failed to execute user prompt template: %w", err)
	}
	return buf.String(), nil
}
