package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ppiankov/eyec/internal/logging"
	"github.com/ppiankov/eyec/internal/recorder"
	"github.com/spf13/cobra"
)

var (
	version    = "0.3.0"
	verbose    bool
	configPath string
)

// Exit codes for structured error reporting.
const (
	ExitSuccess    = 0
	ExitInternal   = 1
	ExitInvalidArg = 2
	ExitNotFound   = 3
)

func main() {
	logging.Init(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if isWrapperInvocation(os.Args[0]) {
		err = runWrapped(ctx, os.Args, os.Stderr)
	} else {
		err = NewRootCmd().ExecuteContext(ctx)
	}

	if err != nil {
		exitCode := classifyError(err)
		var exitErr *recorder.ExitError
		if !errors.As(err, &exitErr) {
			slog.Error("command failed", slog.String("error", err.Error()))
		}
		stop()
		os.Exit(exitCode)
	}
}

// NewRootCmd builds the eyec command tree. The root command renders its last
// positional argument, like the render subcommand.
func NewRootCmd() *cobra.Command {
	opts := newRenderOptions()

	root := &cobra.Command{
		Use:   "eyec [flags] <report.json>",
		Short: "Build report visualizer",
		Long: `eyec records what your compiler does and renders it as a graph.

Wrap a compiler with "eyec record -- gcc ..." (or symlink eyec under the
compiler's name) to collect stages into eyec-report.json, then render the
report as Graphviz DOT:

  eyec render eyec-report.json | dot -Tsvg > build.svg`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return opts.run(cmd, args)
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .eyec.yaml in cwd or home)")
	opts.bindFlags(root)
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewRenderCmd())
	root.AddCommand(NewRecordCmd())
	root.AddCommand(NewVersionCmd())

	return root
}

// isWrapperInvocation reports whether the binary was started under a
// compiler's name, e.g. through a gcc -> eyec symlink.
func isWrapperInvocation(argv0 string) bool {
	name := strings.TrimSuffix(filepath.Base(argv0), ".exe")
	return name != "" && !strings.HasPrefix(name, "eyec")
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *recorder.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code > 0 {
			return exitErr.Code
		}
		return ExitInternal
	}

	if errors.Is(err, os.ErrNotExist) {
		return ExitNotFound
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "not a directory") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such file") {
		return ExitNotFound
	}

	if strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") ||
		strings.Contains(msg, "expected") ||
		strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "arg(s)") {
		return ExitInvalidArg
	}

	return ExitInternal
}
