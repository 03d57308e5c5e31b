package review

import (
	"github.com/critiq-cli/critiq/internal/model"
	"github.com/google/uuid"
)

var validSeverities = map[model.IssueSeverity]bool{
	model.SeverityCritical: true,
	model.SeverityHigh:     true,
	model.SeverityMedium:   true,
	model.SeverityLow:      true,
	model.SeverityInfo:     true,
}

// normalizeIssues converts wire issues into domain records with fresh
// identities. Unrecognized severities are coerced to info so they never
// skew the score.
func normalizeIssues(raw []payloadIssue) []model.CodeIssue {
	issues := make([]model.CodeIssue, 0, len(raw))
	for _, r := range raw {
		severity := model.IssueSeverity(r.Severity)
		if !validSeverities[severity] {
			severity = model.SeverityInfo
		}

		issues = append(issues, model.CodeIssue{
			ID:         uuid.NewString(),
			Type:       model.IssueType(r.Type),
			Severity:   severity,
			Line:       r.Line,
			Column:     r.Column,
			Message:    r.Message,
			Suggestion: r.Suggestion,
			Before:     r.Before,
			After:      r.After,
		})
	}
	return issues
}

func normalizeImprovements(raw []payloadImprove) []model.CodeImprovement {
	improvements := make([]model.CodeImprovement, 0, len(raw))
	for _, r := range raw {
		improvements = append(improvements, model.CodeImprovement{
			ID:          uuid.NewString(),
			Category:    model.ImprovementCategory(r.Category),
			Title:       r.Title,
			Description: r.Description,
			Before:      r.Before,
			After:       r.After,
		})
	}
	return improvements
}

// normalizeChecklist converts the wire checklist. An absent top-level
// checklist stays nil (rendered as "not available"); missing sub-groups
// are carried as empty and skipped in rendering and scoring.
func normalizeChecklist(raw *payloadChecklist) *model.SecurityChecklist {
	if raw == nil {
		return nil
	}

	convert := func(entries []payloadCheck) []model.ChecklistEntry {
		if len(entries) == 0 {
			return nil
		}
		out := make([]model.ChecklistEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, model.ChecklistEntry{Name: e.Name, Passed: e.Passed, Notes: e.Notes})
		}
		return out
	}

	return &model.SecurityChecklist{
		Frontend:        convert(raw.Frontend),
		Backend:         convert(raw.Backend),
		PracticalHabits: convert(raw.PracticalHabits),
	}
}

// normalizeStatus coerces the provider-supplied status to a valid value.
func normalizeStatus(raw string) model.ResultStatus {
	switch model.ResultStatus(raw) {
	case model.StatusSuccess, model.StatusWarning, model.StatusError:
		return model.ResultStatus(raw)
	default:
		return model.StatusWarning
	}
}
