// Package llm contains the provider clients used to run code reviews.
// Providers are polymorphic over one capability: given a filename and a
// system/user prompt pair, return the model's raw text response.
package llm

import (
	"context"
	"time"
)

// Client is the common capability all providers implement.
type Client interface {
	// Review sends the prompts and returns the provider's raw text
	// response. Extraction and normalization happen in the review package.
	Review(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds everything a provider client needs, resolved once per
// operation by the caller rather than read ad hoc from global state.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
