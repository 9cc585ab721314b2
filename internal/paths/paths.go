package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvUserHome overrides the jreleaser home directory when set and non-blank.
const EnvUserHome = "JRELEASER_USER_HOME"

// UserHome returns the jreleaser home directory: $JRELEASER_USER_HOME when
// set and non-blank, otherwise ~/.jreleaser.
func UserHome() (string, error) {
	if override := strings.TrimSpace(os.Getenv(EnvUserHome)); override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", EnvUserHome, err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	return filepath.Join(home, ".jreleaser"), nil
}

// CacheRoot returns the shared tool cache directory (<home>/caches).
func CacheRoot() (string, error) {
	home, err := UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "caches"), nil
}

// ToolCacheDir returns the version-specific cache directory for a tool.
// Entries under it persist across runs; nothing ever deletes them.
func ToolCacheDir(name, version string) (string, error) {
	root, err := CacheRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name, version), nil
}

// ConfigFile returns the optional user configuration file (<home>/config.yml).
func ConfigFile() (string, error) {
	home, err := UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yml"), nil
}

// LogsDir returns the directory for CLI log files, creating it if needed.
func LogsDir() (string, error) {
	home, err := UserHome()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create logs dir: %w", err)
	}
	return dir, nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
