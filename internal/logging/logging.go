// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs a tinted slog handler writing to stderr. Verbose mode
// lowers the level to debug.
func Setup(verbose bool) *slog.Logger {
	return setup(os.Stderr, verbose, isatty.IsTerminal(os.Stderr.Fd()))
}

func setup(w io.Writer, verbose, isTerminal bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(w, &tint.Options{
		NoColor:    !isTerminal,
		TimeFormat: time.Kitchen,
		Level:      level,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
