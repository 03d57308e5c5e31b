package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/critiq-cli/critiq/internal/model"
)

// Formatter renders analysis results for plain (non-interactive)
// terminal output.
type Formatter struct{}

// NewFormatter creates a plain-output formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatBatch renders the whole batch: aggregate header plus one
// section per file.
func (f *Formatter) FormatBatch(results []model.AnalysisResult) string {
	var sections []string

	status := model.BatchStatus(results)
	header := fmt.Sprintf("%s  %d file(s) analyzed",
		StatusStyle(status).Render(strings.ToUpper(string(status))), len(results))
	sections = append(sections, TitleStyle.Render("Code Review")+"\n"+header)

	for i := range results {
		sections = append(sections, f.FormatResult(&results[i]))
	}

	return strings.Join(sections, "\n\n")
}

// FormatResult renders one file's full report.
func (f *Formatter) FormatResult(r *model.AnalysisResult) string {
	var parts []string

	title := fmt.Sprintf("%s %s  score %s",
		StatusStyle(r.Status).Render(statusIcon(r.Status)),
		SubtitleStyle.UnsetMarginBottom().Render(r.File.Name),
		ScoreStyle.Render(fmt.Sprintf("%d/100", r.Summary.OverallScore)))
	parts = append(parts, title)

	if len(r.Issues) > 0 {
		parts = append(parts, f.formatIssues(r.Issues))
	}
	if len(r.Improvements) > 0 {
		parts = append(parts, f.formatImprovements(r.Improvements))
	}
	parts = append(parts, f.formatChecklist(r.Summary.Checklist))

	if r.RefactoredCode != "" {
		note := SubtleStyle.Render("Refactored code available")
		if r.SuggestedPath != "" {
			note += SubtleStyle.Render(" (suggested path: " + r.SuggestedPath + ")")
		}
		parts = append(parts, note)
	}

	return BoxStyle.Render(strings.Join(parts, "\n\n"))
}

func (f *Formatter) formatIssues(issues []model.CodeIssue) string {
	sorted := append([]model.CodeIssue(nil), issues...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Order() < sorted[j].Severity.Order()
	})

	lines := []string{SubtitleStyle.UnsetMarginBottom().Render(fmt.Sprintf("Issues (%d)", len(sorted)))}
	for _, issue := range sorted {
		location := ""
		if issue.Line != nil {
			location = fmt.Sprintf(" L%d", *issue.Line)
			if issue.Column != nil {
				location += fmt.Sprintf(":%d", *issue.Column)
			}
		}
		lines = append(lines, fmt.Sprintf("  %s [%s]%s %s",
			SeverityStyle(issue.Severity).Render(strings.ToUpper(string(issue.Severity))),
			issue.Type, location, issue.Message))
		if issue.Suggestion != "" {
			lines = append(lines, SubtleStyle.Render("      ↳ "+issue.Suggestion))
		}
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) formatImprovements(improvements []model.CodeImprovement) string {
	lines := []string{SubtitleStyle.UnsetMarginBottom().Render(fmt.Sprintf("Improvements (%d)", len(improvements)))}
	for _, imp := range improvements {
		lines = append(lines, fmt.Sprintf("  • [%s] %s", imp.Category, imp.Title))
		if imp.Description != "" {
			lines = append(lines, SubtleStyle.Render("      "+imp.Description))
		}
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) formatChecklist(checklist *model.SecurityChecklist) string {
	header := SubtitleStyle.UnsetMarginBottom().Render("Security checklist")
	if checklist == nil {
		return header + "\n  " + SubtleStyle.Render("not available")
	}

	var lines []string
	lines = append(lines, header)
	groups := []struct {
		name    string
		entries []model.ChecklistEntry
	}{
		{"Frontend", checklist.Frontend},
		{"Backend", checklist.Backend},
		{"Practical habits", checklist.PracticalHabits},
	}
	for _, g := range groups {
		if len(g.entries) == 0 {
			continue
		}
		lines = append(lines, "  "+g.name)
		for _, e := range g.entries {
			icon := FormatSuccess("")
			if !e.Passed {
				icon = FormatError("")
			}
			line := fmt.Sprintf("    %s %s", strings.TrimSpace(icon), e.Name)
			if e.Notes != "" {
				line += SubtleStyle.Render(": " + e.Notes)
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func statusIcon(status model.ResultStatus) string {
	switch status {
	case model.StatusSuccess:
		return SuccessIcon
	case model.StatusWarning:
		return WarningIcon
	default:
		return ErrorIcon
	}
}
