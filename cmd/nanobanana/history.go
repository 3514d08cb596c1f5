package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manash/nanobanana/internal/history"
)

var flagHistoryLimit int

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, app)
		},
	}

	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "maximum number of entries to show (0 for all)")
	return cmd
}

func runHistory(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := app.OpenHistory()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	gens, err := store.List(ctx, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(gens) == 0 {
		fmt.Fprintln(app.Out, "No generations recorded yet.")
		return nil
	}

	for _, gen := range gens {
		fmt.Fprintf(app.Out, "%s  [%s]  %s\n", history.FormatTimestamp(gen.CreatedAt), gen.Pattern, gen.Model)
		fmt.Fprintf(app.Out, "    request: %s\n", truncate(gen.Request, 80))
		fmt.Fprintf(app.Out, "    image:   %s\n", gen.ImagePath)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
