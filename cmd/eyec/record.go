package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ppiankov/eyec/internal/app"
	"github.com/ppiankov/eyec/internal/recorder"
	"github.com/ppiankov/eyec/pkg/config"
	"github.com/spf13/cobra"
)

// NewRecordCmd creates the record command
func NewRecordCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "record [flags] -- <program> [args...]",
		Short: "Run a compiler, archiver or linker and record it in the report",
		Long: `Record runs the given program found on PATH, then appends the files it
consumed and produced to the build report.

The report path is taken from --report, then $EYEC_REPORT, then the config
file, then ./eyec-report.json. The program's exit status is passed through.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.ApplyEnv()
			return applyConfigFile(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return recorder.New(cfg.RecordPath()).Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&cfg.ReportPath, "report", "", "Report file to append to")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// runWrapped handles invocations through a compiler-named symlink. The
// wrapping notice goes to notice.
func runWrapped(ctx context.Context, argv []string, notice io.Writer) error {
	cfg := config.DefaultConfig()
	cfg.ApplyEnv()
	if err := applyConfigFile(cfg); err != nil {
		return err
	}
	if app.ShouldNotify() {
		fmt.Fprintln(notice, "warning: your compiler executable is being wrapped by eyec.")
	}
	return recorder.New(cfg.RecordPath()).Run(ctx, argv)
}
