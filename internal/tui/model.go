// Package tui implements the interactive tabbed results viewer.
package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/critiq-cli/critiq/internal/model"
)

// Tab identifies the active results tab.
type Tab int

const (
	// TabIssues lists the file's issues.
	TabIssues Tab = iota
	// TabImprovements lists suggested improvements.
	TabImprovements
	// TabSecurity shows the security checklist.
	TabSecurity
	// TabCode shows the refactored code.
	TabCode
)

var tabNames = []string{"Issues", "Improvements", "Security", "Code"}

// State is the viewer's state machine.
type State int

const (
	// StateResults is the normal browsing state.
	StateResults State = iota
	// StateQuitting means the user asked to leave.
	StateQuitting
)

// Model holds the results viewer state.
type Model struct {
	results  []model.AnalysisResult
	selected int
	tab      Tab
	state    State
	viewport viewport.Model
	ready    bool
	status   string
	width    int
	height   int
}

// New creates a viewer over a non-empty batch of results.
func New(results []model.AnalysisResult) Model {
	return Model{
		results: results,
		tab:     TabIssues,
		state:   StateResults,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 4
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.tabContent())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.state = StateQuitting
		return m, tea.Quit

	case "left", "h", "[":
		m = m.selectFile(m.selected - 1)
		return m, nil

	case "right", "l", "]":
		m = m.selectFile(m.selected + 1)
		return m, nil

	case "tab":
		m = m.setTab((m.tab + 1) % Tab(len(tabNames)))
		return m, nil

	case "shift+tab":
		m = m.setTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		return m, nil

	case "1", "2", "3", "4":
		m = m.setTab(Tab(int(msg.String()[0] - '1')))
		return m, nil

	case "c":
		m.status = m.copyRefactoredCode()
		return m, nil

	case "s":
		m.status = m.saveRefactoredCode()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// selectFile moves the focal result, clamping to the batch bounds.
// Switching file always resets the active tab to issues.
func (m Model) selectFile(idx int) Model {
	if idx < 0 || idx >= len(m.results) || idx == m.selected {
		return m
	}
	m.selected = idx
	m.tab = TabIssues
	m.status = ""
	m.viewport.SetContent(m.tabContent())
	m.viewport.GotoTop()
	return m
}

func (m Model) setTab(tab Tab) Model {
	m.tab = tab
	m.status = ""
	m.viewport.SetContent(m.tabContent())
	m.viewport.GotoTop()
	return m
}

// Selected returns the focal result.
func (m Model) Selected() *model.AnalysisResult {
	if len(m.results) == 0 {
		return nil
	}
	return &m.results[m.selected]
}

// ActiveTab returns the active tab.
func (m Model) ActiveTab() Tab {
	return m.tab
}

// copyRefactoredCode copies the focal result's refactored code to the
// clipboard. Fire-and-forget: failure only updates the status line.
func (m Model) copyRefactoredCode() string {
	r := m.Selected()
	if r == nil || r.RefactoredCode == "" {
		return "No refactored code to copy"
	}
	if err := clipboard.WriteAll(r.RefactoredCode); err != nil {
		return fmt.Sprintf("Copy failed: %v", err)
	}
	return "Refactored code copied to clipboard"
}

// saveRefactoredCode writes the focal result's refactored code to disk,
// preferring the provider's suggested path.
func (m Model) saveRefactoredCode() string {
	r := m.Selected()
	if r == nil || r.RefactoredCode == "" {
		return "No refactored code to save"
	}

	path := r.SuggestedPath
	if path == "" {
		path = r.File.Name + ".refactored"
	}
	path = filepath.Base(path)

	if err := os.WriteFile(path, []byte(r.RefactoredCode), 0o600); err != nil {
		return fmt.Sprintf("Save failed: %v", err)
	}
	return "Saved to " + path
}

// Show runs the viewer until the user quits.
func Show(results []model.AnalysisResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to display")
	}

	p := tea.NewProgram(New(results), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("results viewer failed: %w", err)
	}
	return nil
}
