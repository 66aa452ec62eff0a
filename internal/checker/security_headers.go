package checker

import (
	"context"
	"net/http"

	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
)

// SecurityHeaderSpec defines a response header whose absence is a finding
type SecurityHeaderSpec struct {
	Name    string
	Finding string
}

// securityHeaderSpecs is checked in order so findings are reproducible
var securityHeaderSpecs = []SecurityHeaderSpec{
	{
		Name:    "Content-Security-Policy",
		Finding: "Missing Content-Security-Policy header",
	},
	{
		Name:    "X-Frame-Options",
		Finding: "Missing X-Frame-Options header",
	},
}

// MissingSecurityHeaders returns one finding per absent header. Lookup goes
// through http.Header, so header names match case-insensitively.
func MissingSecurityHeaders(headers http.Header) []string {
	findings := []string{}
	for _, spec := range securityHeaderSpecs {
		if len(headers.Values(spec.Name)) == 0 {
			findings = append(findings, spec.Finding)
		}
	}
	return findings
}

// HeaderChecker fetches the target once and reports missing security headers.
type HeaderChecker struct {
	Prober httpclient.Prober
}

// NewHeaderChecker returns a HeaderChecker using p.
func NewHeaderChecker(p httpclient.Prober) *HeaderChecker {
	return &HeaderChecker{Prober: p}
}

// Name returns the name of this checker
func (h *HeaderChecker) Name() string {
	return "headers"
}

// StartMessage returns the progress line for this checker.
func (h *HeaderChecker) StartMessage() string {
	return "Checking common security headers..."
}

// Check skips silently when the target does not respond.
func (h *HeaderChecker) Check(ctx context.Context, scan Scan) []string {
	resp, ok := h.Prober.Get(ctx, scan.Target)
	if !ok {
		return nil
	}
	return MissingSecurityHeaders(resp.Header)
}
