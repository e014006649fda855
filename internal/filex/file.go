// Package filex contains small filesystem helpers shared by the client:
// resolving and creating the per-user application directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "coinkeeper"

// EnsureAppDir returns the per-user coinkeeper directory (under the OS
// config dir), creating it if necessary.
func EnsureAppDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}

	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureSubDir creates (if needed) and returns a subdirectory of dir.
func EnsureSubDir(dir, name string) (string, error) {
	sub := filepath.Join(dir, name)
	if err := os.MkdirAll(sub, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", sub, err)
	}
	return sub, nil
}
