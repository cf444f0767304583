package config

import (
	"os"
	"strings"
)

// ReportEnvVar overrides the report path used by the recorder.
const ReportEnvVar = "EYEC_REPORT"

// DefaultReportFile is the report written to the working directory when nothing else is configured.
const DefaultReportFile = "eyec-report.json"

// Config holds all runtime configuration
type Config struct {
	// Report settings
	ReportPath string

	// Rendering settings
	Exclude     []string
	DedupeNodes bool

	// Operational flags
	Verbose bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ReportPath:  "",
		Exclude:     []string{},
		DedupeNodes: false,
		Verbose:     false,
	}
}

// ApplyFile copies values set in a config file onto c. Values already set on
// c from flags are kept.
func (c *Config) ApplyFile(fc *FileConfig) {
	if c == nil || fc == nil {
		return
	}
	if c.ReportPath == "" {
		c.ReportPath = fc.ReportPath
	}
	if len(c.Exclude) == 0 {
		c.Exclude = append([]string{}, fc.Exclude...)
	}
	if !c.DedupeNodes && fc.DedupeNodes != nil {
		c.DedupeNodes = *fc.DedupeNodes
	}
}

// ApplyEnv sets the report path from $EYEC_REPORT unless one is already set.
// Call it after flags and before ApplyFile.
func (c *Config) ApplyEnv() {
	if c == nil || c.ReportPath != "" {
		return
	}
	c.ReportPath = strings.TrimSpace(os.Getenv(ReportEnvVar))
}

// RecordPath returns where the recorder appends observations, defaulting to
// ./eyec-report.json.
func (c *Config) RecordPath() string {
	if c != nil && c.ReportPath != "" {
		return c.ReportPath
	}
	return DefaultReportFile
}
