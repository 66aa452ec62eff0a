package cmd

import (
	"fmt"
	"strings"

	apperrors "github.com/khanhnv2901/cmsaudit/internal/shared/errors"
)

// UsageError indicates invalid or missing command-line parameters. It is
// raised before any network activity.
type UsageError struct {
	Missing []string
	Reason  string
}

func (e *UsageError) Error() string {
	switch {
	case len(e.Missing) > 0:
		flags := make([]string, len(e.Missing))
		for i, m := range e.Missing {
			flags[i] = "--" + m
		}
		return fmt.Sprintf("missing required parameter(s): %s", strings.Join(flags, ", "))
	case e.Reason != "":
		return fmt.Sprintf("invalid parameters: %s", e.Reason)
	}
	return "invalid parameters"
}

func (e *UsageError) Unwrap() error {
	if len(e.Missing) > 0 {
		return apperrors.ErrMissingRequired
	}
	return nil
}
