package checker

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
	apperrors "github.com/khanhnv2901/cmsaudit/internal/shared/errors"
)

// probeSchemes lists the schemes tried for a bare hostname, in order.
var probeSchemes = []string{"http://", "https://"}

// HasScheme reports whether target already starts with http:// or https://.
func HasScheme(target string) bool {
	for _, scheme := range probeSchemes {
		if strings.HasPrefix(target, scheme) {
			return true
		}
	}
	return false
}

// NormalizeTarget returns target unchanged when it already carries a scheme.
// Otherwise it probes http:// then https:// and returns the first prefixed
// form that answers with a status below 400. If neither does, the error
// wraps ErrConnection.
func NormalizeTarget(ctx context.Context, p httpclient.Prober, target string) (string, error) {
	if target == "" {
		return "", apperrors.ErrEmptyTarget
	}
	if HasScheme(target) {
		return target, nil
	}

	for _, scheme := range probeSchemes {
		candidate := scheme + target
		resp, ok := p.Get(ctx, candidate)
		if ok && resp.StatusCode < http.StatusBadRequest {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s is unreachable over http and https", apperrors.ErrConnection, target)
}

// probeURL joins a known path onto the target without doubling the slash.
func probeURL(target, path string) string {
	return strings.TrimRight(target, "/") + "/" + strings.TrimLeft(path, "/")
}
