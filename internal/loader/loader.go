package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/eyec/internal/models"
)

// ErrEmptyPath is returned when no report path was given.
var ErrEmptyPath = errors.New("report path is empty")

// Load reads and parses a report. Read failures keep the underlying
// error so callers can test it with errors.Is.
func Load(path string) (*models.Report, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("read report %q: %w", trimmed, err)
	}

	report := &models.Report{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("invalid report %q: %w", trimmed, err)
	}

	slog.Debug("report loaded",
		slog.String("path", trimmed),
		slog.Int("files", len(report.Files)),
		slog.Int("stages", len(report.Stages)),
	)
	return report, nil
}

// LoadOrEmpty reads a report, falling back to an empty one when the file is
// missing or unreadable. It is used when appending to a report.
func LoadOrEmpty(path string) *models.Report {
	report, err := Load(path)
	if err == nil {
		return report
	}
	if !errors.Is(err, os.ErrNotExist) {
		slog.Warn("discarding unreadable report", slog.String("path", path), slog.String("error", err.Error()))
	}
	return &models.Report{Files: []models.File{}, Stages: []models.Stage{}}
}

// Save writes a report as JSON, creating the parent directory when needed.
func Save(path string, report *models.Report) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ErrEmptyPath
	}
	if report == nil {
		return errors.New("report is nil")
	}

	dir := filepath.Dir(trimmed)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(trimmed, data, 0644); err != nil {
		return fmt.Errorf("write report %q: %w", trimmed, err)
	}
	return nil
}
