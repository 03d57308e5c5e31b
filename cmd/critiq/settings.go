package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/critiq-cli/critiq/internal/cli"
	"github.com/critiq-cli/critiq/internal/llm"
	"github.com/critiq-cli/critiq/internal/model"
	"github.com/critiq-cli/critiq/internal/storage"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage provider credentials",
	}

	cmd.AddCommand(settingsSetCmd())
	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsClearCmd())

	return cmd
}

func settingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <provider> <api-key>",
		Short: "Store an API key for a provider",
		Long: `Stores the API key in the local store. Keys are saved in plaintext
on this machine; anyone with access to your home directory can read them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			provider := strings.ToLower(args[0])
			if !isSupportedProvider(provider) {
				return fmt.Errorf("unknown provider %q (supported: %s)",
					provider, strings.Join(llm.SupportedProviders(), ", "))
			}

			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open local store: %w", err)
			}
			defer func() { _ = store.Close() }()

			keys := storage.Load(store, storage.KeyAPIKeys, model.APIKeys{})
			switch provider {
			case "anthropic":
				keys.Anthropic = args[1]
			case "openai":
				keys.OpenAI = args[1]
			}

			if err := store.Set(storage.KeyAPIKeys, keys); err != nil {
				return fmt.Errorf("failed to save API key: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("API key for %s saved", provider)))
			fmt.Println(cli.FormatWarning("Keys are stored in plaintext on this machine"))
			return nil
		},
	}
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show which providers have a stored key",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open local store: %w", err)
			}
			defer func() { _ = store.Close() }()

			keys := storage.Load(store, storage.KeyAPIKeys, model.APIKeys{})
			for _, provider := range llm.SupportedProviders() {
				if keys.ForProvider(provider) != "" {
					fmt.Printf("%s %s: %s\n", cli.SuccessIcon, provider, maskKey(keys.ForProvider(provider)))
				} else {
					fmt.Printf("%s %s: not configured\n", cli.ErrorIcon, provider)
				}
			}
			return nil
		},
	}
}

func settingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <provider>",
		Short: "Remove a stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			provider := strings.ToLower(args[0])
			if !isSupportedProvider(provider) {
				return fmt.Errorf("unknown provider %q", provider)
			}

			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open local store: %w", err)
			}
			defer func() { _ = store.Close() }()

			keys := storage.Load(store, storage.KeyAPIKeys, model.APIKeys{})
			switch provider {
			case "anthropic":
				keys.Anthropic = ""
			case "openai":
				keys.OpenAI = ""
			}

			if err := store.Set(storage.KeyAPIKeys, keys); err != nil {
				return fmt.Errorf("failed to clear API key: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("API key for %s removed", provider)))
			return nil
		},
	}
}

func isSupportedProvider(provider string) bool {
	for _, p := range llm.SupportedProviders() {
		if p == provider {
			return true
		}
	}
	return false
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
