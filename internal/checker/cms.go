package checker

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
	consts "github.com/khanhnv2901/cmsaudit/internal/shared/constants"
	"github.com/khanhnv2901/cmsaudit/internal/whatcms"
)

// Supported CMS names, matched exactly against the fingerprinting result.
const (
	CMSWordPress = "WordPress"
	CMSJoomla    = "Joomla"
	CMSDrupal    = "Drupal"
)

// PathRule maps a well-known path to the finding reported when it answers 200.
type PathRule struct {
	Path    string
	Finding string
}

// CMSRules lists the sensitive paths probed for each supported CMS.
var CMSRules = map[string][]PathRule{
	CMSWordPress: {
		{Path: "/readme.html", Finding: "readme.html is accessible – version disclosure risk"},
		{Path: "/wp-config.php", Finding: "wp-config.php is accessible – critical security risk"},
	},
	CMSJoomla: {
		{Path: "/configuration.php", Finding: "configuration.php is accessible – sensitive data exposure risk"},
		{Path: "/administrator/", Finding: "/administrator/ directory is accessible – check access restrictions"},
	},
	CMSDrupal: {
		{Path: "/CHANGELOG.txt", Finding: "CHANGELOG.txt is accessible – version disclosure risk"},
	},
}

// DetectionFinding returns the "Detected CMS" finding when a name was reported
// with at least DetectionConfidenceThreshold confidence.
func DetectionFinding(info whatcms.Info) (string, bool) {
	name := info.CMSName()
	if name == "" || float64(info.Confidence) < consts.DetectionConfidenceThreshold {
		return "", false
	}
	if version := info.CMSVersion(); version != "" {
		return fmt.Sprintf("Detected CMS: %s %s", name, version), true
	}
	return fmt.Sprintf("Detected CMS: %s", name), true
}

// CMSChecker probes a CMS's sensitive paths and, when a VersionSource is set,
// compares the reported version with the latest release.
type CMSChecker struct {
	CMS     string
	Rules   []PathRule
	Prober  httpclient.Prober
	Version VersionSource
}

// Name returns the lower-cased CMS name.
func (c *CMSChecker) Name() string {
	return strings.ToLower(c.CMS)
}

// StartMessage returns the progress line for this checker.
func (c *CMSChecker) StartMessage() string {
	return fmt.Sprintf("Starting %s security checks...", c.CMS)
}

// Check probes every rule independently; unreachable paths produce nothing.
func (c *CMSChecker) Check(ctx context.Context, scan Scan) []string {
	findings := make([]string, 0, len(c.Rules)+1)

	for _, rule := range c.Rules {
		resp, ok := c.Prober.Get(ctx, probeURL(scan.Target, rule.Path))
		if !ok {
			continue
		}
		if resp.StatusCode == http.StatusOK {
			findings = append(findings, rule.Finding)
		}
	}

	if c.Version == nil {
		return findings
	}
	current := scan.CMS.CMSVersion()
	if current == "" {
		return findings
	}
	latest, ok := c.Version.Latest(ctx)
	if ok && latest != current {
		findings = append(findings, fmt.Sprintf("%s version (%s) is outdated. Latest: %s", c.CMS, current, latest))
	}
	return findings
}

// NewCMSCheckers builds one checker per entry in CMSRules. WordPress also
// gets the version freshness check backed by wpVersions.
func NewCMSCheckers(p httpclient.Prober, wpVersions VersionSource) map[string]Checker {
	checkers := make(map[string]Checker, len(CMSRules))
	for name, rules := range CMSRules {
		chk := &CMSChecker{
			CMS:    name,
			Rules:  rules,
			Prober: p,
		}
		if name == CMSWordPress && wpVersions != nil {
			chk.Version = wpVersions
		}
		checkers[name] = chk
	}
	return checkers
}
