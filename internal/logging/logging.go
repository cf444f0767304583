package logging

import (
	"log/slog"
	"os"
)

// Init installs the default slog logger. Logs go to stderr; stdout is
// reserved for rendered graphs and wrapped compiler output.
func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
