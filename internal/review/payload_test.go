package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"status": "success"}`,
			want:  `{"status": "success"}`,
		},
		{
			name:  "fenced json block",
			input: "```json\n{\"status\": \"success\"}\n```",
			want:  `{"status": "success"}`,
		},
		{
			name:  "fenced block without language",
			input: "```\n{\"status\": \"success\"}\n```",
			want:  `{"status": "success"}`,
		},
		{
			name:  "surrounding prose",
			input: "Here is the review:\n{\"status\": \"success\"}\nLet me know!",
			want:  `{"status": "success"}`,
		},
		{
			name:    "no object at all",
			input:   "I could not review this file.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePayload(t *testing.T) {
	raw := "```json\n" + `{
		"status": "warning",
		"refactoredCode": "def main(): ...",
		"suggestedFilePath": "src/main.py",
		"issues": [
			{"type": "security", "severity": "critical", "line": 3, "message": "eval on user input", "suggestion": "parse explicitly"}
		],
		"improvements": [
			{"category": "testing", "title": "Add tests", "description": "No coverage"}
		],
		"securityChecklist": {
			"backend": [{"name": "Validates all input", "passed": false, "notes": "raw eval"}]
		}
	}` + "\n```"

	p, err := parsePayload(raw)
	require.NoError(t, err)

	assert.Equal(t, "warning", p.Status)
	assert.Equal(t, "def main(): ...", p.RefactoredCode)
	assert.Equal(t, "src/main.py", p.SuggestedFilePath)
	require.Len(t, p.Issues, 1)
	require.NotNil(t, p.Issues[0].Line)
	assert.Equal(t, 3, *p.Issues[0].Line)
	require.Len(t, p.Improvements, 1)

	// Partial checklist: present group decodes, absent groups stay nil.
	require.NotNil(t, p.SecurityChecklist)
	assert.Len(t, p.SecurityChecklist.Backend, 1)
	assert.Nil(t, p.SecurityChecklist.Frontend)
	assert.Nil(t, p.SecurityChecklist.PracticalHabits)
}

func TestParsePayloadInvalidJSON(t *testing.T) {
	_, err := parsePayload(`{"status": `)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse analysis payload")
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "success", string(normalizeStatus("success")))
	assert.Equal(t, "warning", string(normalizeStatus("warning")))
	assert.Equal(t, "error", string(normalizeStatus("error")))
	assert.Equal(t, "warning", string(normalizeStatus("")))
	assert.Equal(t, "warning", string(normalizeStatus("amazing")))
}
