package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/critiq-cli/critiq/internal/cli"
	"github.com/critiq-cli/critiq/internal/common"
	"github.com/critiq-cli/critiq/internal/intake"
	"github.com/critiq-cli/critiq/internal/llm"
	"github.com/critiq-cli/critiq/internal/model"
	"github.com/critiq-cli/critiq/internal/review"
	"github.com/critiq-cli/critiq/internal/tui"
	"github.com/critiq-cli/critiq/internal/usage"
)

func reviewCmd() *cobra.Command {
	var (
		providerFlag string
		modelFlag    string
		plainOutput  bool
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "review <files...>",
		Short: "Review source files with an LLM provider",
		Long: `Validates the selected files, sends each one to the configured
provider concurrently, and shows issues, improvements, a security
checklist, and refactored code per file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open local store: %w", err)
			}
			defer func() { _ = store.Close() }()

			// Validation first: nothing is read and no network call is
			// made for a bad batch.
			handles, err := intake.FromPaths(args)
			if err != nil {
				return err
			}

			validator := intake.NewValidator(intake.DefaultLimits())
			batch, err := validator.Intake(ctx, handles)
			if err != nil {
				return err
			}
			for _, warning := range batch.Warnings {
				fmt.Fprintln(os.Stderr, cli.FormatWarning(warning))
			}

			// Quota gate before dispatch.
			tracker := usage.NewTracker(store)
			if tracker.IsLimitReached() {
				return common.NewUserError(
					fmt.Sprintf("free tier limit reached (%d batches this month); quota resets next month", tracker.Limit()),
					common.ErrQuotaExceeded)
			}

			// Configuration errors also surface before any network call.
			cfg, err := resolveLLMConfig(store, providerFlag, modelFlag)
			if err != nil {
				return err
			}
			client, err := llm.New(cfg)
			if err != nil {
				return err
			}

			opts := []review.Option{}
			var bar *progressbar.ProgressBar
			if !jsonOutput {
				bar = progressbar.NewOptions(len(batch.Files),
					progressbar.OptionSetDescription("Analyzing"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionClearOnFinish(),
				)
				opts = append(opts, review.WithProgress(func(_, _ int, _ model.UploadedFile) {
					_ = bar.Add(1)
				}))
			}

			dispatcher, err := review.NewDispatcher(client, opts...)
			if err != nil {
				return err
			}

			results := dispatcher.Analyze(ctx, batch.Files)
			if bar != nil {
				_ = bar.Finish()
			}

			// One increment per batch, after every per-file call settles.
			if _, err := tracker.Increment(); err != nil {
				common.LogError(err, "failed to record usage", nil)
			}

			switch {
			case jsonOutput:
				return json.NewEncoder(os.Stdout).Encode(results)
			case plainOutput:
				fmt.Println(cli.NewFormatter().FormatBatch(results))
				return nil
			default:
				return tui.Show(results)
			}
		},
	}

	cmd.Flags().StringVar(&providerFlag, "provider", "", "LLM provider (anthropic, openai)")
	cmd.Flags().StringVar(&modelFlag, "model", "", "model override for the selected provider")
	cmd.Flags().BoolVar(&plainOutput, "plain", false, "print results instead of opening the interactive view")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit raw results as JSON")

	return cmd
}
