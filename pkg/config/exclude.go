package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher reports whether a file name matches any exclude pattern.
// A nil Matcher matches nothing.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles glob patterns. Patterns have no path separators,
// so "*.c" also matches "src/main.c".
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, pattern := range patterns {
		p := strings.TrimSpace(pattern)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// ExcludeMatcher compiles the configured exclude patterns.
func (c *Config) ExcludeMatcher() (*Matcher, error) {
	if c == nil {
		return &Matcher{}, nil
	}
	return NewMatcher(c.Exclude)
}

// Match reports whether name is excluded.
func (m *Matcher) Match(name string) bool {
	if m == nil {
		return false
	}
	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher has no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.globs) == 0
}
