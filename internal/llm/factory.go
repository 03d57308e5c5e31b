package llm

import (
	"fmt"
	"strings"
)

// New creates a provider client based on the provided configuration.
func New(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return newAnthropicClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// SupportedProviders lists the provider names New accepts.
func SupportedProviders() []string {
	return []string{"anthropic", "openai"}
}
