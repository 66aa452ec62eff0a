package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/khanhnv2901/cmsaudit/internal/shared/security"
)

// executableDir returns the directory of the running binary. Relative output
// paths are resolved against it. Tests replace it.
var executableDir = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("could not determine executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// resolveOutputPath returns an absolute path for a report file. Absolute
// paths are kept; relative ones must stay inside the executable's directory.
func resolveOutputPath(output string) (string, error) {
	if output == "" {
		return "", fmt.Errorf("output path is required")
	}
	if filepath.IsAbs(output) {
		return filepath.Clean(output), nil
	}

	baseDir, err := executableDir()
	if err != nil {
		return "", err
	}
	return security.ResolveWithin(baseDir, output)
}
