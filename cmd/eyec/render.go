package main

import (
	"fmt"
	"log/slog"

	"github.com/ppiankov/eyec/internal/loader"
	"github.com/ppiankov/eyec/internal/reporter"
	"github.com/ppiankov/eyec/pkg/config"
	"github.com/spf13/cobra"
)

// renderOptions holds the flags shared by the root and render commands
type renderOptions struct {
	cfg *config.Config
}

func newRenderOptions() *renderOptions {
	return &renderOptions{cfg: config.DefaultConfig()}
}

func (o *renderOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&o.cfg.Exclude, "exclude", nil, "Glob pattern of file names to leave out of the graph (repeatable)")
	cmd.Flags().BoolVar(&o.cfg.DedupeNodes, "dedupe-nodes", false, "Emit each node statement only once")
}

// prepare merges the config file under the parsed flags. An explicitly set
// --dedupe-nodes wins over the file in both directions.
func (o *renderOptions) prepare(cmd *cobra.Command) error {
	dedupe := o.cfg.DedupeNodes
	if err := applyConfigFile(o.cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("dedupe-nodes") {
		o.cfg.DedupeNodes = dedupe
	}
	if _, err := o.cfg.ExcludeMatcher(); err != nil {
		return fmt.Errorf("invalid --exclude value: %w", err)
	}
	return nil
}

// run renders the report named by the last positional argument. Earlier
// arguments are ignored.
func (o *renderOptions) run(cmd *cobra.Command, args []string) error {
	path := args[len(args)-1]
	if len(args) > 1 {
		slog.Debug("ignoring leading arguments", slog.Any("args", args[:len(args)-1]))
	}

	report, err := loader.Load(path)
	if err != nil {
		return err
	}

	rep, err := reporter.New(o.cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return rep.Generate(report)
}

// NewRenderCmd creates the render command
func NewRenderCmd() *cobra.Command {
	opts := newRenderOptions()

	cmd := &cobra.Command{
		Use:   "render [flags] <report.json>",
		Short: "Render a build report as a Graphviz digraph",
		Long: `Render reads a build report and writes a Graphviz DOT digraph to stdout.
Files become nodes, and every stage draws an edge from each input to its
output, labelled with the stage duration in milliseconds.

Only the last argument is read; earlier arguments are ignored.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	opts.bindFlags(cmd)
	return cmd
}

// applyConfigFile merges the --config file, or the first discovered
// .eyec.yaml, into cfg.
func applyConfigFile(cfg *config.Config) error {
	var (
		fc   *config.FileConfig
		path string
		err  error
	)
	if configPath != "" {
		path = configPath
		fc, err = config.LoadFile(configPath)
	} else {
		fc, path, err = config.AutoLoadFile()
	}
	if err != nil {
		return err
	}
	if fc != nil {
		slog.Debug("config file loaded", slog.String("path", path))
		cfg.ApplyFile(fc)
	}
	return nil
}
