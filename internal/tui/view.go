package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/critiq-cli/critiq/internal/cli"
	"github.com/critiq-cli/critiq/internal/model"
)

var (
	activeFileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor).
			Underline(true)

	inactiveFileStyle = lipgloss.NewStyle().
				Foreground(cli.SubtleColor)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(cli.PrimaryColor).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(cli.SubtleColor).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.state == StateQuitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.fileBar())
	b.WriteString("\n")
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) fileBar() string {
	parts := make([]string, 0, len(m.results))
	for i, r := range m.results {
		label := fmt.Sprintf("%s %s (%d)", statusGlyph(r.Status), r.File.Name, r.Summary.OverallScore)
		if i == m.selected {
			parts = append(parts, activeFileStyle.Render(label))
		} else {
			parts = append(parts, inactiveFileStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) tabBar() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(name))
		} else {
			parts = append(parts, inactiveTabStyle.Render(name))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) footer() string {
	if m.status != "" {
		return cli.InfoStyle.Render(m.status)
	}
	return helpStyle.Render("←/→ file · tab/1-4 switch tab · ↑/↓ scroll · c copy code · s save code · q quit")
}

// tabContent renders the focal result's active tab.
func (m Model) tabContent() string {
	r := m.Selected()
	if r == nil {
		return ""
	}

	switch m.tab {
	case TabIssues:
		return renderIssues(r)
	case TabImprovements:
		return renderImprovements(r)
	case TabSecurity:
		return renderChecklist(r.Summary.Checklist)
	case TabCode:
		return renderCode(r)
	default:
		return ""
	}
}

func renderIssues(r *model.AnalysisResult) string {
	if len(r.Issues) == 0 {
		return cli.FormatSuccess("No issues found")
	}

	sorted := append([]model.CodeIssue(nil), r.Issues...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Order() < sorted[j].Severity.Order()
	})

	var sections []string
	for _, issue := range sorted {
		header := fmt.Sprintf("%s [%s]",
			cli.SeverityStyle(issue.Severity).Render(strings.ToUpper(string(issue.Severity))),
			issue.Type)
		if issue.Line != nil {
			header += fmt.Sprintf(" line %d", *issue.Line)
		}

		lines := []string{header, issue.Message}
		if issue.Suggestion != "" {
			lines = append(lines, cli.SubtleStyle.Render("Suggestion: "+issue.Suggestion))
		}
		if issue.Before != "" && issue.After != "" {
			lines = append(lines,
				cli.ErrorStyle.Render("- "+issue.Before),
				cli.SuccessStyle.Render("+ "+issue.After))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func renderImprovements(r *model.AnalysisResult) string {
	if len(r.Improvements) == 0 {
		return cli.SubtleStyle.Render("No improvements suggested")
	}

	var sections []string
	for _, imp := range r.Improvements {
		lines := []string{
			fmt.Sprintf("%s %s", cli.InfoStyle.Render("["+string(imp.Category)+"]"), imp.Title),
			imp.Description,
		}
		if imp.Before != "" && imp.After != "" {
			lines = append(lines,
				cli.ErrorStyle.Render("- "+imp.Before),
				cli.SuccessStyle.Render("+ "+imp.After))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func renderChecklist(checklist *model.SecurityChecklist) string {
	if checklist == nil {
		return cli.SubtleStyle.Render("Security checklist not available")
	}

	groups := []struct {
		name    string
		entries []model.ChecklistEntry
	}{
		{"Frontend", checklist.Frontend},
		{"Backend", checklist.Backend},
		{"Practical habits", checklist.PracticalHabits},
	}

	var sections []string
	for _, g := range groups {
		if len(g.entries) == 0 {
			continue
		}
		lines := []string{cli.TitleStyle.UnsetMarginBottom().Render(g.name)}
		for _, e := range g.entries {
			icon := cli.SuccessStyle.Render(cli.SuccessIcon)
			if !e.Passed {
				icon = cli.ErrorStyle.Render(cli.ErrorIcon)
			}
			line := fmt.Sprintf("%s %s", icon, e.Name)
			if e.Notes != "" {
				line += cli.SubtleStyle.Render(": " + e.Notes)
			}
			lines = append(lines, line)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if len(sections) == 0 {
		return cli.SubtleStyle.Render("Security checklist not available")
	}
	return strings.Join(sections, "\n\n")
}

func renderCode(r *model.AnalysisResult) string {
	if r.RefactoredCode == "" {
		return cli.SubtleStyle.Render("No refactored code returned for this file")
	}

	header := ""
	if r.SuggestedPath != "" {
		header = cli.SubtleStyle.Render("Suggested path: "+r.SuggestedPath) + "\n\n"
	}
	return header + r.RefactoredCode
}

func statusGlyph(status model.ResultStatus) string {
	switch status {
	case model.StatusSuccess:
		return cli.SuccessStyle.Render(cli.SuccessIcon)
	case model.StatusWarning:
		return cli.WarningStyle.Render(cli.WarningIcon)
	default:
		return cli.ErrorStyle.Render(cli.ErrorIcon)
	}
}
