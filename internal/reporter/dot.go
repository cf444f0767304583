package reporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ppiankov/eyec/internal/models"
	"github.com/ppiankov/eyec/pkg/config"
)

// Options tune DOT output. The zero value renders every statement.
type Options struct {
	// DedupeNodes emits each node statement once per node name.
	DedupeNodes bool
	// Exclude drops files whose name matches.
	Exclude *config.Matcher
}

// DOTWriter streams a report as a Graphviz digraph, one statement per line,
// in stage order.
type DOTWriter struct {
	out  io.Writer
	opts Options
	seen map[string]struct{}
	err  error
}

// NewDOTWriter creates a writer emitting to out
func NewDOTWriter(out io.Writer, opts Options) *DOTWriter {
	return &DOTWriter{
		out:  out,
		opts: opts,
		seen: make(map[string]struct{}),
	}
}

// Write renders the whole report and returns the first write error
func (w *DOTWriter) Write(report *models.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	files := report.Index()

	w.line("digraph {")
	w.line("rankdir=LR")
	for i := range report.Stages {
		w.writeStage(i, &report.Stages[i], files)
		if w.err != nil {
			return w.err
		}
	}
	w.line("}")

	return w.err
}

func (w *DOTWriter) writeStage(idx int, stage *models.Stage, files map[models.FileID]*models.File) {
	outID, ok := stage.Output()
	if !ok {
		slog.Debug("skipping stage without outputs", slog.Int("stage", idx))
		return
	}
	output, ok := files[outID]
	if !ok {
		slog.Debug("skipping stage with unknown output", slog.Int("stage", idx), slog.String("output", string(outID)))
		return
	}
	if w.opts.Exclude.Match(output.Name) {
		slog.Debug("skipping excluded stage", slog.Int("stage", idx), slog.String("output", output.Name))
		return
	}

	duration := models.FormatDuration(stage.Duration)
	to := quote(output.Name)
	single := len(stage.Inputs) == 1

	for _, inID := range stage.Inputs {
		input, ok := files[inID]
		if !ok {
			slog.Warn("skipping edge from unknown input",
				slog.Int("stage", idx),
				slog.String("input", string(inID)),
				slog.String("output", output.Name),
			)
			continue
		}
		if w.opts.Exclude.Match(input.Name) {
			continue
		}

		from := quote(input.Name)
		if single {
			w.line(fmt.Sprintf("%s -> %s [ label=%s ];", from, to, quote(duration)))
		} else {
			w.line(fmt.Sprintf("%s -> %s;", from, to))
		}
		w.node(input.Name, NodeAttributes(input), false)
	}

	attrs := NodeAttributes(output)
	labelled := len(stage.Inputs) > 1
	if labelled {
		attrs = append(attrs, Attr{Key: "xlabel", Value: quote(duration)})
	}
	w.node(output.Name, attrs, labelled)
}

// node writes a node statement. With DedupeNodes only the first statement
// per name is written unless force is set.
func (w *DOTWriter) node(name string, attrs []Attr, force bool) {
	if w.opts.DedupeNodes && !force {
		if _, ok := w.seen[name]; ok {
			return
		}
	}
	w.seen[name] = struct{}{}
	w.line(fmt.Sprintf("%s [ %s];", quote(name), FormatAttrs(attrs)))
}

func (w *DOTWriter) line(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, s+"\n"); err != nil {
		w.err = fmt.Errorf("failed to write graph: %w", err)
	}
}
