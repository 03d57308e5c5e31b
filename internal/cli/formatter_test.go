package cli

import (
	"strings"
	"testing"

	"github.com/critiq-cli/critiq/internal/model"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func sampleResult() model.AnalysisResult {
	return model.AnalysisResult{
		ID:     "r1",
		Status: model.StatusWarning,
		File:   model.UploadedFile{Name: "server.py", Language: "python"},
		Issues: []model.CodeIssue{
			{ID: "i1", Type: model.IssueTypeStyle, Severity: model.SeverityLow, Message: "long line", Suggestion: "wrap it"},
			{ID: "i2", Type: model.IssueTypeSecurity, Severity: model.SeverityCritical, Line: intPtr(3), Message: "eval on input"},
		},
		Improvements: []model.CodeImprovement{
			{ID: "m1", Category: model.ImprovementTesting, Title: "Add tests", Description: "No coverage"},
		},
		Summary: model.AnalysisSummary{
			OverallScore: 71,
			Checklist: &model.SecurityChecklist{
				Backend: []model.ChecklistEntry{
					{Name: "Validates all input", Passed: false, Notes: "raw eval"},
				},
			},
		},
		RefactoredCode: "print('ok')",
		SuggestedPath:  "src/server.py",
	}
}

func TestFormatResult(t *testing.T) {
	out := NewFormatter().FormatResult(&model.AnalysisResult{})

	// A zero result still renders without panicking.
	assert.Contains(t, out, "0/100")

	r := sampleResult()
	out = NewFormatter().FormatResult(&r)
	assert.Contains(t, out, "server.py")
	assert.Contains(t, out, "71/100")
	assert.Contains(t, out, "Issues (2)")
	assert.Contains(t, out, "eval on input")
	assert.Contains(t, out, "Add tests")
	assert.Contains(t, out, "Validates all input")
	assert.Contains(t, out, "suggested path: src/server.py")

	// Critical issues sort before low ones.
	assert.Less(t, strings.Index(out, "eval on input"), strings.Index(out, "long line"))
}

func TestFormatResultChecklistNotAvailable(t *testing.T) {
	r := sampleResult()
	r.Summary.Checklist = nil
	out := NewFormatter().FormatResult(&r)
	assert.Contains(t, out, "not available")
}

func TestFormatBatchAggregateStatus(t *testing.T) {
	f := NewFormatter()

	ok := model.AnalysisResult{Status: model.StatusSuccess, File: model.UploadedFile{Name: "a.go"}}
	warn := model.AnalysisResult{Status: model.StatusWarning, File: model.UploadedFile{Name: "b.go"}}
	bad := model.AnalysisResult{Status: model.StatusError, File: model.UploadedFile{Name: "c.go"}}

	assert.Contains(t, f.FormatBatch([]model.AnalysisResult{ok, ok}), "SUCCESS")
	assert.Contains(t, f.FormatBatch([]model.AnalysisResult{ok, warn}), "WARNING")
	assert.Contains(t, f.FormatBatch([]model.AnalysisResult{ok, warn, bad}), "ERROR")
}
