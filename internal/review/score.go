package review

import (
	"github.com/critiq-cli/critiq/internal/model"
	"github.com/samber/lo"
)

// Per-severity score penalties. Info issues do not penalize.
var severityPenalty = map[model.IssueSeverity]int{
	model.SeverityCritical: 25,
	model.SeverityHigh:     15,
	model.SeverityMedium:   5,
	model.SeverityLow:      2,
	model.SeverityInfo:     0,
}

const checklistFailurePenalty = 5

// Score maps a file's issues and security checklist to a 0-100 quality
// score. Deterministic and order-independent: the same issue multiset
// always yields the same score.
func Score(issues []model.CodeIssue, checklist *model.SecurityChecklist) int {
	score := 100

	for _, issue := range issues {
		score -= severityPenalty[issue.Severity]
	}

	score -= checklist.FailedCount() * checklistFailurePenalty

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Summarize computes the AnalysisSummary for a file's findings.
func Summarize(issues []model.CodeIssue, improvements []model.CodeImprovement, checklist *model.SecurityChecklist) model.AnalysisSummary {
	counts := lo.CountValuesBy(issues, func(i model.CodeIssue) model.IssueSeverity {
		return i.Severity
	})

	var passed, failed []string
	for _, entry := range checklist.Entries() {
		if entry.Passed {
			passed = append(passed, entry.Name)
		} else {
			failed = append(failed, entry.Name)
		}
	}

	return model.AnalysisSummary{
		SeverityCounts:    counts,
		TotalIssues:       len(issues),
		TotalImprovements: len(improvements),
		OverallScore:      Score(issues, checklist),
		PassedChecks:      passed,
		FailedChecks:      failed,
		Checklist:         checklist,
	}
}
