package reporter

import (
	"fmt"
	"io"

	"github.com/ppiankov/eyec/internal/models"
	"github.com/ppiankov/eyec/pkg/config"
)

// Reporter interface for rendering reports
type Reporter interface {
	Generate(report *models.Report) error
}

// reporter implements the Reporter interface
type reporter struct {
	out  io.Writer
	opts Options
}

// New creates a new reporter writing DOT to out
func New(cfg *config.Config, out io.Writer) (Reporter, error) {
	if out == nil {
		return nil, fmt.Errorf("writer is nil")
	}

	matcher, err := cfg.ExcludeMatcher()
	if err != nil {
		return nil, err
	}

	opts := Options{Exclude: matcher}
	if cfg != nil {
		opts.DedupeNodes = cfg.DedupeNodes
	}
	return &reporter{out: out, opts: opts}, nil
}

// Generate renders the report as a DOT digraph
func (r *reporter) Generate(report *models.Report) error {
	return NewDOTWriter(r.out, r.opts).Write(report)
}
