package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/manash/nanobanana/internal/history"
	"github.com/manash/nanobanana/internal/image"
	"github.com/manash/nanobanana/internal/keys"
	"github.com/manash/nanobanana/internal/logging"
	"github.com/manash/nanobanana/internal/pattern"
	"github.com/manash/nanobanana/internal/prompt"
	"github.com/manash/nanobanana/internal/provider"
	"github.com/manash/nanobanana/internal/provider/gemini"
	"github.com/manash/nanobanana/pkg/models"
)

var (
	version = "dev"
	commit  = "none"
)

var (
	flagModel      string
	flagPattern    string
	flagRaw        bool
	flagOutputDir  string
	flagAPIKey     string
	flagNoHistory  bool
	flagShowPrompt bool
	flagVerbose    bool
)

type App struct {
	Out         io.Writer
	Err         io.Writer
	Registry    *models.ModelRegistry
	GetEnv      func(string) string
	NewProvider func(ctx context.Context, cfg *provider.Config, registry *models.ModelRegistry) (provider.Provider, error)
	NewSaver    func() *image.Saver
	OpenHistory func() (*history.Store, error)
}

func DefaultApp() *App {
	return &App{
		Out:      os.Stdout,
		Err:      os.Stderr,
		Registry: models.DefaultRegistry(),
		GetEnv:   os.Getenv,
		NewProvider: func(ctx context.Context, cfg *provider.Config, registry *models.ModelRegistry) (provider.Provider, error) {
			return gemini.New(ctx, cfg, registry)
		},
		NewSaver:    image.NewSaver,
		OpenHistory: history.NewStore,
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	app := DefaultApp()
	rootCmd := newRootCmd(app)
	return rootCmd.Execute()
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nanobanana [request]",
		Short: "Generate images with Gemini image models",
		Long: `nanobanana turns a plain-language request into an image using
Google's Gemini image models (Nano Banana).

The request is classified into a pattern (infographic, typography,
portrait, general) and expanded into a structured prompt before the
call. The result is saved as nanobanana_<timestamp>.png.

Examples:
  nanobanana "a fluffy cat sitting on a cloud"
  nanobanana "a poster for a jazz night called 'Blue Moon' on Friday"
  nanobanana -m nano-banana -o out/ "a diagram of the water cycle"`,
		Args:    cobra.ExactArgs(1),
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Setup(flagVerbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, app)
		},
	}

	cmd.Flags().StringVarP(&flagModel, "model", "m", models.DefaultModel, "model name or alias (nano-banana-pro, nano-banana)")
	cmd.Flags().StringVarP(&flagPattern, "pattern", "p", "", "force a prompt pattern (infographic, typography, portrait, general)")
	cmd.Flags().BoolVar(&flagRaw, "raw", false, "send the request verbatim without prompt expansion")
	cmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "directory for the generated image (default: current directory)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key (defaults to stored key, then GEMINI_API_KEY)")
	cmd.Flags().BoolVar(&flagNoHistory, "no-save-history", false, "do not record this generation in history")
	cmd.Flags().BoolVar(&flagShowPrompt, "show-prompt", false, "print the assembled prompt and exit without calling the API")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newModelsCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newKeysCmd(app))

	return cmd
}

func runGenerate(_ *cobra.Command, args []string, app *App) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	request := strings.TrimSpace(args[0])
	if request == "" {
		return fmt.Errorf("request cannot be empty")
	}

	pat := pattern.Classify(request)
	if flagPattern != "" {
		forced, ok := pattern.Parse(flagPattern)
		if !ok {
			return fmt.Errorf("invalid pattern %q: must be one of %v", flagPattern, pattern.All())
		}
		pat = forced
	}

	promptText := request
	if !flagRaw {
		promptText = prompt.Assemble(request, pat)
	}

	if flagShowPrompt {
		fmt.Fprintf(app.Out, "Pattern: %s\n\n%s\n", pat, promptText)
		return nil
	}

	model, caps, ok := app.Registry.Resolve(flagModel)
	if !ok {
		return fmt.Errorf("unknown model %q: available models: %v", flagModel, app.Registry.List())
	}

	req := models.NewRequest(promptText)
	req.Model = model
	caps.ApplyDefaults(req)
	if err := caps.Validate(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	apiKey, keySource, err := keys.Resolve(flagAPIKey, app.GetEnv)
	if err != nil {
		return err
	}
	slog.Debug("resolved API key", "source", keySource)

	prov, err := app.NewProvider(ctx, &provider.Config{APIKey: apiKey, Verbose: flagVerbose}, app.Registry)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	fmt.Fprintf(app.Out, "Generating image with %s (pattern: %s)...\n", req.Model, pat)

	resp, err := prov.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	saver := app.NewSaver()
	paths, err := saver.SaveAll(resp, flagOutputDir)
	if err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Fprintf(app.Out, "Saved: %s\n", color.GreenString(path))
	}

	if resp.Commentary != "" {
		fmt.Fprintf(app.Out, "Model: %s\n", resp.Commentary)
	}

	if !flagNoHistory && len(paths) > 0 {
		recordHistory(ctx, app, request, pat, promptText, req.Model, paths[0], resp.Commentary)
	}

	fmt.Fprintln(app.Out, "Done!")
	return nil
}

// recordHistory is best effort: a broken history database should not
// fail a generation that already produced a file.
func recordHistory(ctx context.Context, app *App, request string, pat pattern.Pattern, promptText, model, path, commentary string) {
	store, err := app.OpenHistory()
	if err != nil {
		slog.Warn("failed to open history store", "error", err)
		return
	}
	defer store.Close()

	gen := history.NewGeneration(request, pat.String(), promptText, model, path)
	gen.Commentary = commentary
	if err := store.Record(ctx, gen); err != nil {
		slog.Warn("failed to record generation", "error", err)
	}
}

func newModelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available models",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, name := range app.Registry.List() {
				cap, _ := app.Registry.Get(name)
				line := name
				if len(cap.Aliases) > 0 {
					line += fmt.Sprintf(" (alias: %s)", strings.Join(cap.Aliases, ", "))
				}
				fmt.Fprintf(app.Out, "%s\n    %s\n", line, cap.Description)
			}
			return nil
		},
	}
}
