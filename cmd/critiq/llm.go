package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/critiq-cli/critiq/internal/common"
	"github.com/critiq-cli/critiq/internal/llm"
	"github.com/critiq-cli/critiq/internal/model"
	"github.com/critiq-cli/critiq/internal/storage"
)

// resolveLLMConfig assembles the provider configuration for one
// operation. Credentials are looked up in order: local store, viper
// config, provider environment variable. The result is threaded into
// the dispatcher explicitly; nothing reads the store mid-operation.
func resolveLLMConfig(store *storage.Store, providerFlag, modelFlag string) (llm.Config, error) {
	provider := providerFlag
	if provider == "" {
		provider = viper.GetString("llm.provider")
	}
	if provider == "" {
		provider = "anthropic"
	}

	cfg := llm.Config{
		Provider:    provider,
		Model:       modelFlag,
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}
	if cfg.Model == "" {
		cfg.Model = viper.GetString("llm.model")
	}

	keys := storage.Load(store, storage.KeyAPIKeys, model.APIKeys{})
	apiKey := keys.ForProvider(provider)
	if apiKey == "" {
		apiKey = viper.GetString("llm." + provider + "_api_key")
	}
	if apiKey == "" {
		apiKey = os.Getenv(envKeyFor(provider))
	}
	if apiKey == "" {
		return llm.Config{}, common.NewUserError(
			fmt.Sprintf("no API key configured for %s; run 'critiq settings set %s <key>'", provider, provider),
			common.ErrMissingAPIKey)
	}
	cfg.APIKey = apiKey

	return cfg, nil
}

func envKeyFor(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
