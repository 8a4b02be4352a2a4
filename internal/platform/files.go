package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Per-user locations
const (
	AppDirName      = "boxbuddy"
	ConfigFileName  = "config"
	ConfigFileType  = "yaml"
	HistoryFileName = "history.db"
	LogFileName     = "boxbuddy.log"

	xdgDataHome   = "XDG_DATA_HOME"
	localShareDir = ".local/share"
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// ConfigDir returns $XDG_CONFIG_HOME/boxbuddy
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, AppDirName), nil
}

// CacheDir returns $XDG_CACHE_HOME/boxbuddy
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(dir, AppDirName), nil
}

// DataDir returns $XDG_DATA_HOME/boxbuddy, falling back to ~/.local/share
func DataDir() (string, error) {
	if dir := os.Getenv(xdgDataHome); dir != "" {
		return filepath.Join(dir, AppDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, localShareDir, AppDirName), nil
}

// DefaultHistoryPath returns where the action history database lives
func DefaultHistoryPath() string {
	dir, err := DataDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName, HistoryFileName)
	}
	return filepath.Join(dir, HistoryFileName)
}

// DefaultLogPath returns where the rotating log file lives
func DefaultLogPath() string {
	dir, err := CacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName, LogFileName)
	}
	return filepath.Join(dir, LogFileName)
}
