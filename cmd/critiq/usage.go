package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/critiq-cli/critiq/internal/cli"
	"github.com/critiq-cli/critiq/internal/usage"
)

func usageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show free-tier usage for the current month",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open local store: %w", err)
			}
			defer func() { _ = store.Close() }()

			tracker := usage.NewTracker(store)
			data := tracker.Status()

			fmt.Println(cli.TitleStyle.Render("Free Tier Usage"))
			fmt.Printf("Period:    %s %d\n", data.Month, data.Year)
			fmt.Printf("Used:      %d of %d batches\n", data.Count, tracker.Limit())
			fmt.Printf("Remaining: %d\n", tracker.Remaining())

			if tracker.IsLimitReached() {
				fmt.Println(cli.FormatWarning("Monthly limit reached; quota resets next month"))
			}
			return nil
		},
	}
}
