// Package review turns uploaded files into analysis results: it builds
// prompts, calls the configured provider for each file concurrently,
// normalizes the JSON payloads, and computes per-file quality scores.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/critiq-cli/critiq/internal/llm"
	"github.com/critiq-cli/critiq/internal/model"
	"github.com/google/uuid"
)

// defaultConcurrency bounds the number of in-flight provider calls.
const defaultConcurrency = 4

// ProgressFunc is called after each file's analysis settles.
type ProgressFunc func(completed, total int, file model.UploadedFile)

// Dispatcher runs a batch of per-file reviews against one provider.
type Dispatcher struct {
	client      llm.Client
	prompts     *PromptBuilder
	progress    ProgressFunc
	concurrency int
	now         func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Dispatcher) { d.progress = fn }
}

// WithConcurrency bounds concurrent provider calls.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) { d.concurrency = n }
}

// withClock replaces the timestamp source in tests.
func withClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher creates a dispatcher for the given provider client.
func NewDispatcher(client llm.Client, opts ...Option) (*Dispatcher, error) {
	if client == nil {
		return nil, fmt.Errorf("provider client is required")
	}

	prompts, err := NewPromptBuilder()
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		client:      client,
		prompts:     prompts,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.concurrency < 1 {
		d.concurrency = 1
	}
	return d, nil
}

// Analyze reviews every file and returns exactly one result per input
// file, output order matching input order. Files are analyzed
// concurrently; a failure in one file is contained to that file's result
// and never aborts the rest of the batch.
func (d *Dispatcher) Analyze(ctx context.Context, files []model.UploadedFile) []model.AnalysisResult {
	results := make([]model.AnalysisResult, len(files))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	sem := make(chan struct{}, d.concurrency)

	for i, file := range files {
		sem <- struct{}{}
		wg.Add(1)

		go func(idx int, f model.UploadedFile) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := d.analyzeFile(ctx, f)
			if err != nil {
				slog.Warn("file analysis failed",
					"file", f.Name,
					"error", err)
				result = d.errorResult(f, err)
			}
			results[idx] = result

			mu.Lock()
			completed++
			c := completed
			mu.Unlock()

			if d.progress != nil {
				d.progress(c, len(files), f)
			}
		}(i, file)
	}

	wg.Wait()
	return results
}

// analyzeFile runs the full pipeline for one file: prompt, provider
// call, extraction, normalization, scoring.
func (d *Dispatcher) analyzeFile(ctx context.Context, file model.UploadedFile) (model.AnalysisResult, error) {
	systemPrompt, err := d.prompts.SystemPrompt()
	if err != nil {
		return model.AnalysisResult{}, err
	}
	userPrompt, err := d.prompts.UserPrompt(file)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	raw, err := d.client.Review(ctx, systemPrompt, userPrompt)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("provider call failed: %w", err)
	}

	p, err := parsePayload(raw)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	issues := normalizeIssues(p.Issues)
	improvements := normalizeImprovements(p.Improvements)
	checklist := normalizeChecklist(p.SecurityChecklist)

	return model.AnalysisResult{
		ID:             uuid.NewString(),
		Status:         normalizeStatus(p.Status),
		File:           file,
		RefactoredCode: p.RefactoredCode,
		SuggestedPath:  p.SuggestedFilePath,
		Issues:         issues,
		Improvements:   improvements,
		Summary:        Summarize(issues, improvements, checklist),
		Timestamp:      d.now(),
	}, nil
}

// errorResult builds the synthetic result for a failed file: status
// error, one critical issue describing the failure, score zero.
func (d *Dispatcher) errorResult(file model.UploadedFile, cause error) model.AnalysisResult {
	issue := model.CodeIssue{
		ID:         uuid.NewString(),
		Type:       model.IssueTypeBug,
		Severity:   model.SeverityCritical,
		Message:    fmt.Sprintf("Analysis failed: %v", cause),
		Suggestion: "Check your provider configuration and network connection, then try again.",
	}

	summary := Summarize([]model.CodeIssue{issue}, nil, nil)
	summary.OverallScore = 0

	return model.AnalysisResult{
		ID:        uuid.NewString(),
		Status:    model.StatusError,
		File:      file,
		Issues:    []model.CodeIssue{issue},
		Summary:   summary,
		Timestamp: d.now(),
	}
}
