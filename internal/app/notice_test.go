package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestShouldNotifyAt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if !ShouldNotifyAt(dir, start) {
		t.Fatalf("expected notice on first run")
	}
	if ShouldNotifyAt(dir, start.Add(time.Minute)) {
		t.Fatalf("expected no notice one minute later")
	}
	if ShouldNotifyAt(dir, start.Add(5*time.Minute)) {
		t.Fatalf("expected no notice while runs keep coming")
	}
	if !ShouldNotifyAt(dir, start.Add(11*time.Minute)) {
		t.Fatalf("expected notice after an idle interval")
	}
}

func TestShouldNotifyAtCorruptMarker(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, markerFileName), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("failed to write marker: %v", err)
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !ShouldNotifyAt(dir, now) {
		t.Fatalf("expected notice with corrupt marker")
	}
	if ShouldNotifyAt(dir, now.Add(time.Second)) {
		t.Fatalf("expected marker to be rewritten")
	}
}
