package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manash/nanobanana/internal/keys"
)

func newKeysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the stored Gemini API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [key]",
		Short: "Store the API key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runKeysSet(args, app)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored API key (masked)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runKeysShow(app)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the stored API key",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runKeysDelete(app)
		},
	})

	return cmd
}

func runKeysSet(args []string, app *App) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		entered, err := readKey(app)
		if err != nil {
			return err
		}
		key = entered
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	store, err := keys.NewStore()
	if err != nil {
		return err
	}
	if err := store.Set(key); err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "API key stored in %s\n", store.Path())
	return nil
}

// readKey prompts without echo when stdin is a terminal, and falls
// back to a plain line read when input is piped.
func readKey(app *App) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(app.Out, "Enter API key: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(app.Out)
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return "", fmt.Errorf("no key provided on stdin")
	}
	return scanner.Text(), nil
}

func runKeysShow(app *App) error {
	store, err := keys.NewStore()
	if err != nil {
		return err
	}

	key, err := store.Get()
	if err != nil {
		return err
	}
	if key == "" {
		fmt.Fprintln(app.Out, "No API key stored.")
		return nil
	}

	fmt.Fprintf(app.Out, "Stored key: %s\n", keys.MaskKey(key))
	return nil
}

func runKeysDelete(app *App) error {
	store, err := keys.NewStore()
	if err != nil {
		return err
	}
	if err := store.Delete(); err != nil {
		return err
	}

	fmt.Fprintln(app.Out, "API key deleted.")
	return nil
}
