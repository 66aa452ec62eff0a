package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPathEscape indicates the resolved path would escape the trusted root directory.
	ErrPathEscape = errors.New("path escapes base directory")
	// ErrNotAFile indicates the name resolves to the base directory itself or
	// ends in a separator.
	ErrNotAFile = errors.New("path does not name a file")
)

// ResolveWithin joins name under base and ensures the result never traverses
// outside of base and names a file rather than a directory. The returned path
// is absolute.
func ResolveWithin(base, name string) (string, error) {
	if base == "" {
		return "", errors.New("base directory is required")
	}
	if name == "" || strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrNotAFile, name)
	}

	cleanBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base path: %w", err)
	}

	target := filepath.Join(cleanBase, name)
	rel, err := filepath.Rel(cleanBase, target)
	if err != nil {
		return "", fmt.Errorf("relativize path: %w", err)
	}

	switch {
	case rel == ".":
		return "", fmt.Errorf("%w: %q", ErrNotAFile, name)
	case rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)):
		return "", fmt.Errorf("%w: %s", ErrPathEscape, target)
	}

	return target, nil
}
