package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	consts "github.com/khanhnv2901/cmsaudit/internal/shared/constants"
)

// Marshal renders r as indented JSON followed by a newline. HTML characters
// are not escaped so findings read the same in the file and on the console.
func Marshal(r *Report, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode writes r to w as indented JSON.
func Encode(w io.Writer, r *Report, indent string) error {
	data, err := Marshal(r, indent)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteFile writes r to path with two-space indentation, creating parent
// directories as needed.
func WriteFile(path string, r *Report) error {
	data, err := Marshal(r, "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), consts.DefaultDirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, consts.DefaultFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
