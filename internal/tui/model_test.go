package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-cli/critiq/internal/model"
)

func testResults() []model.AnalysisResult {
	return []model.AnalysisResult{
		{
			ID:     "r1",
			Status: model.StatusSuccess,
			File:   model.UploadedFile{Name: "a.py"},
			Issues: []model.CodeIssue{{ID: "i1", Severity: model.SeverityLow, Message: "m"}},
		},
		{
			ID:             "r2",
			Status:         model.StatusWarning,
			File:           model.UploadedFile{Name: "b.ts"},
			RefactoredCode: "export {}",
		},
	}
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestTabCycling(t *testing.T) {
	m := sized(New(testResults()))
	assert.Equal(t, TabIssues, m.ActiveTab())

	updated, _ := m.Update(key("tab"))
	m = updated.(Model)
	assert.Equal(t, TabImprovements, m.ActiveTab())

	updated, _ = m.Update(key("4"))
	m = updated.(Model)
	assert.Equal(t, TabCode, m.ActiveTab())

	// Cycling wraps around.
	updated, _ = m.Update(key("tab"))
	m = updated.(Model)
	assert.Equal(t, TabIssues, m.ActiveTab())
}

func TestSwitchingFileResetsTab(t *testing.T) {
	m := sized(New(testResults()))

	updated, _ := m.Update(key("3"))
	m = updated.(Model)
	assert.Equal(t, TabSecurity, m.ActiveTab())

	updated, _ = m.Update(key("right"))
	m = updated.(Model)
	require.Equal(t, "b.ts", m.Selected().File.Name)
	assert.Equal(t, TabIssues, m.ActiveTab())

	updated, _ = m.Update(key("left"))
	m = updated.(Model)
	assert.Equal(t, "a.py", m.Selected().File.Name)
}

func TestFileSelectionClamps(t *testing.T) {
	m := sized(New(testResults()))

	updated, _ := m.Update(key("left"))
	m = updated.(Model)
	assert.Equal(t, "a.py", m.Selected().File.Name)

	updated, _ = m.Update(key("right"))
	m = updated.(Model)
	updated, _ = m.Update(key("right"))
	m = updated.(Model)
	assert.Equal(t, "b.ts", m.Selected().File.Name)
}

func TestQuitKeys(t *testing.T) {
	m := sized(New(testResults()))

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewRendersActiveTab(t *testing.T) {
	m := sized(New(testResults()))
	view := m.View()
	assert.Contains(t, view, "a.py")
	assert.Contains(t, view, "b.ts")
	assert.Contains(t, view, "Issues")

	// The code tab for a file without refactored output explains itself.
	updated, _ := m.Update(key("4"))
	m = updated.(Model)
	assert.Contains(t, m.View(), "No refactored code")
}
