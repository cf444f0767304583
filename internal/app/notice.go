package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	markerFileName = "last_wrapped_run"
	appName        = "eyec"

	// NoticeInterval is how long the wrapper must sit idle before the
	// wrapping notice is shown again.
	NoticeInterval = 5 * time.Minute
)

// GetAppConfigDir returns the path to the application's configuration directory.
func GetAppConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appConfigDir := filepath.Join(configDir, appName)
	return appConfigDir, nil
}

// ShouldNotify reports whether the user should be reminded that their
// compiler is wrapped.
func ShouldNotify() bool {
	appConfigDir, err := GetAppConfigDir()
	if err != nil {
		slog.Debug("failed to get app config directory", slog.String("error", err.Error()))
		return true
	}
	return ShouldNotifyAt(appConfigDir, time.Now())
}

// ShouldNotifyAt is ShouldNotify with an explicit state directory and clock.
// It returns true on the first wrapped run and after NoticeInterval without
// runs. Every call refreshes the stored timestamp.
func ShouldNotifyAt(dir string, now time.Time) bool {
	markerFilePath := filepath.Join(dir, markerFileName)

	notify := true
	if data, err := os.ReadFile(markerFilePath); err == nil {
		if last, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64); err == nil {
			notify = now.Sub(time.UnixMilli(last)) > NoticeInterval
		}
	} else if !os.IsNotExist(err) {
		slog.Debug("failed to read notice marker", slog.String("path", markerFilePath), slog.String("error", err.Error()))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Debug("failed to create app config directory", slog.String("path", dir), slog.String("error", err.Error()))
		return notify
	}
	stamp := strconv.FormatInt(now.UnixMilli(), 10)
	if err := os.WriteFile(markerFilePath, []byte(stamp), 0644); err != nil {
		slog.Debug("failed to write notice marker", slog.String("path", markerFilePath), slog.String("error", err.Error()))
	}
	return notify
}
