// Package model defines the core types shared across the review pipeline.
package model

import (
	"time"
)

// ResultStatus represents the outcome of a single file's review.
type ResultStatus string

const (
	// StatusSuccess indicates the provider returned a clean analysis.
	StatusSuccess ResultStatus = "success"
	// StatusWarning indicates the analysis completed with caveats.
	StatusWarning ResultStatus = "warning"
	// StatusError indicates the review failed for this file.
	StatusError ResultStatus = "error"
)

// IssueSeverity represents the severity level of an identified issue.
type IssueSeverity string

const (
	// SeverityCritical indicates an issue requiring immediate attention.
	SeverityCritical IssueSeverity = "critical"
	// SeverityHigh indicates a significant issue that should be addressed soon.
	SeverityHigh IssueSeverity = "high"
	// SeverityMedium indicates a moderate issue that can be scheduled for resolution.
	SeverityMedium IssueSeverity = "medium"
	// SeverityLow indicates a minor issue or optimization opportunity.
	SeverityLow IssueSeverity = "low"
	// SeverityInfo indicates an observation with no score impact.
	SeverityInfo IssueSeverity = "info"
)

// Order returns the numeric priority of a severity (lower is more severe).
func (s IssueSeverity) Order() int {
	switch s {
	case SeverityCritical:
		return 1
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 4
	case SeverityInfo:
		return 5
	default:
		return 6
	}
}

// IssueType categorizes the type of issue identified.
type IssueType string

const (
	// IssueTypeSecurity indicates a vulnerability or unsafe handling of data.
	IssueTypeSecurity IssueType = "security"
	// IssueTypeBug indicates incorrect behavior.
	IssueTypeBug IssueType = "bug"
	// IssueTypePerformance indicates wasted work or poor scaling.
	IssueTypePerformance IssueType = "performance"
	// IssueTypeStyle indicates formatting or readability problems.
	IssueTypeStyle IssueType = "style"
	// IssueTypeBestPractice indicates a deviation from established conventions.
	IssueTypeBestPractice IssueType = "best-practice"
	// IssueTypeAccessibility indicates markup or UI accessibility problems.
	IssueTypeAccessibility IssueType = "accessibility"
	// IssueTypeTypeSafety indicates weak or missing type guarantees.
	IssueTypeTypeSafety IssueType = "type-safety"
)

// ImprovementCategory categorizes a suggested improvement.
type ImprovementCategory string

const (
	// ImprovementStructure covers module and component organization.
	ImprovementStructure ImprovementCategory = "structure"
	// ImprovementNaming covers identifier naming.
	ImprovementNaming ImprovementCategory = "naming"
	// ImprovementTypes covers type annotations and narrowing.
	ImprovementTypes ImprovementCategory = "typescript"
	// ImprovementHooks covers state and effect management.
	ImprovementHooks ImprovementCategory = "hooks"
	// ImprovementPerformance covers runtime efficiency.
	ImprovementPerformance ImprovementCategory = "performance"
	// ImprovementAccessibility covers accessible markup and interaction.
	ImprovementAccessibility ImprovementCategory = "accessibility"
	// ImprovementTesting covers test coverage and testability.
	ImprovementTesting ImprovementCategory = "testing"
)

// UploadedFile is a normalized file record produced at intake time.
// Immutable after creation.
type UploadedFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Language string `json:"language"`
	Size     int64  `json:"size"`
}

// CodeIssue represents a specific problem the provider identified.
type CodeIssue struct {
	ID         string        `json:"id"`
	Type       IssueType     `json:"type"`
	Severity   IssueSeverity `json:"severity"`
	Line       *int          `json:"line,omitempty"`
	Column     *int          `json:"column,omitempty"`
	Message    string        `json:"message"`
	Suggestion string        `json:"suggestion"`
	Before     string        `json:"before,omitempty"`
	After      string        `json:"after,omitempty"`
}

// CodeImprovement represents a non-defect suggestion.
type CodeImprovement struct {
	ID          string              `json:"id"`
	Category    ImprovementCategory `json:"category"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Before      string              `json:"before,omitempty"`
	After       string              `json:"after,omitempty"`
}

// ChecklistEntry is a single named pass/fail check with free-text notes.
type ChecklistEntry struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Notes  string `json:"notes,omitempty"`
}

// SecurityChecklist groups checklist entries into the three fixed
// rubric categories. Any group may be empty when the provider omits it.
type SecurityChecklist struct {
	Frontend        []ChecklistEntry `json:"frontend,omitempty"`
	Backend         []ChecklistEntry `json:"backend,omitempty"`
	PracticalHabits []ChecklistEntry `json:"practical_habits,omitempty"`
}

// Entries returns every entry across all sub-groups.
func (c *SecurityChecklist) Entries() []ChecklistEntry {
	if c == nil {
		return nil
	}
	entries := make([]ChecklistEntry, 0, len(c.Frontend)+len(c.Backend)+len(c.PracticalHabits))
	entries = append(entries, c.Frontend...)
	entries = append(entries, c.Backend...)
	entries = append(entries, c.PracticalHabits...)
	return entries
}

// FailedCount returns the number of failed entries across all sub-groups.
func (c *SecurityChecklist) FailedCount() int {
	count := 0
	for _, e := range c.Entries() {
		if !e.Passed {
			count++
		}
	}
	return count
}

// AnalysisSummary aggregates the findings for one file.
type AnalysisSummary struct {
	SeverityCounts    map[IssueSeverity]int `json:"severity_counts"`
	TotalIssues       int                   `json:"total_issues"`
	TotalImprovements int                   `json:"total_improvements"`
	OverallScore      int                   `json:"overall_score"`
	PassedChecks      []string              `json:"passed_checks,omitempty"`
	FailedChecks      []string              `json:"failed_checks,omitempty"`
	Checklist         *SecurityChecklist    `json:"checklist,omitempty"`
}

// AnalysisResult holds the complete review outcome for one input file.
// One result per input file; immutable once returned.
type AnalysisResult struct {
	ID             string            `json:"id"`
	Status         ResultStatus      `json:"status"`
	File           UploadedFile      `json:"file"`
	RefactoredCode string            `json:"refactored_code,omitempty"`
	SuggestedPath  string            `json:"suggested_path,omitempty"`
	Issues         []CodeIssue       `json:"issues"`
	Improvements   []CodeImprovement `json:"improvements"`
	Summary        AnalysisSummary   `json:"summary"`
	Timestamp      time.Time         `json:"timestamp"`
}

// BatchStatus derives the aggregate status for a set of results:
// success only if every result succeeded, error if any failed,
// warning otherwise.
func BatchStatus(results []AnalysisResult) ResultStatus {
	allSuccess := true
	for _, r := range results {
		switch r.Status {
		case StatusError:
			return StatusError
		case StatusWarning:
			allSuccess = false
		case StatusSuccess:
		}
	}
	if allSuccess {
		return StatusSuccess
	}
	return StatusWarning
}

// UsageData is the persisted monthly request counter.
type UsageData struct {
	Count int        `json:"count"`
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// APIKeys holds per-provider credentials. Stored verbatim in the local
// store; the settings command tells the user this is plaintext storage.
type APIKeys struct {
	Anthropic string `json:"anthropic,omitempty"`
	OpenAI    string `json:"openai,omitempty"`
}

// ForProvider returns the credential for the named provider.
func (k APIKeys) ForProvider(provider string) string {
	switch provider {
	case "anthropic":
		return k.Anthropic
	case "openai":
		return k.OpenAI
	default:
		return ""
	}
}
