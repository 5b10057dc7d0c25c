package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ResolveDataDir locates a relative data directory. The working directory is
// tried first, then the directory holding the executable, so the binaries
// work both from a source checkout and from a packaged release. Absolute
// paths and paths that cannot be found are returned unchanged.
func ResolveDataDir(dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}

	exeDir, err := executableDir()
	if err != nil {
		return dir
	}

	candidate := filepath.Join(exeDir, dir)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		slog.Debug("Resolved data directory next to executable",
			slog.String("data_dir", candidate))
		return candidate
	}

	return dir
}

// EnsureParentDir creates the directory that will hold path
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// executableDir returns the directory of the running binary with symlinks resolved
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return filepath.Dir(exe), nil
}
