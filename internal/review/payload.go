package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

// payload mirrors the JSON shape the provider is instructed to return.
type payload struct {
	Status            string            `json:"status"`
	RefactoredCode    string            `json:"refactoredCode,omitempty"`
	SuggestedFilePath string            `json:"suggestedFilePath,omitempty"`
	Issues            []payloadIssue    `json:"issues"`
	Improvements      []payloadImprove  `json:"improvements"`
	SecurityChecklist *payloadChecklist `json:"securityChecklist,omitempty"`
}

type payloadIssue struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Line       *int   `json:"line,omitempty"`
	Column     *int   `json:"column,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
	Before     string `json:"before,omitempty"`
	After      string `json:"after,omitempty"`
}

type payloadImprove struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Before      string `json:"before,omitempty"`
	After       string `json:"after,omitempty"`
}

type payloadCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Notes  string `json:"notes,omitempty"`
}

// payloadChecklist tolerates partially-malformed checklists: missing
// sub-groups decode to nil and are simply skipped downstream.
type payloadChecklist struct {
	Frontend        []payloadCheck `json:"frontend"`
	Backend         []payloadCheck `json:"backend"`
	PracticalHabits []payloadCheck `json:"practicalHabits"`
}

// extractJSON pulls a JSON object out of a raw provider response,
// tolerating responses wrapped in fenced code blocks or surrounded by
// prose.
func extractJSON(raw string) (string, error) {
	content := strings.TrimSpace(raw)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	// Fall back to the outermost braces when the model added prose.
	if !strings.HasPrefix(content, "{") {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start < 0 || end <= start {
			return "", fmt.Errorf("no JSON object found in response")
		}
		content = content[start : end+1]
	}

	return content, nil
}

// parsePayload extracts and decodes the analysis payload from a raw
// provider response.
func parsePayload(raw string) (*payload, error) {
	content, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return nil, fmt.Errorf("failed to parse analysis payload: %w", err)
	}
	return &p, nil
}
