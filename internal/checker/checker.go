package checker

import (
	"context"
	"errors"
	"fmt"

	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
	"github.com/khanhnv2901/cmsaudit/internal/report"
	"github.com/khanhnv2901/cmsaudit/internal/whatcms"
	"go.uber.org/zap"
)

// Scan carries what a checker needs to know about the current run.
type Scan struct {
	Target string
	CMS    whatcms.Info
}

// Checker is the interface that all check implementations must satisfy
type Checker interface {
	// Name returns a short identifier (e.g., "wordpress", "headers")
	Name() string

	// StartMessage is the progress line printed before the checker runs
	StartMessage() string

	// Check runs every probe of the checker and returns its findings in order
	Check(ctx context.Context, scan Scan) []string
}

// Identifier fingerprints the CMS behind a target.
type Identifier interface {
	Identify(ctx context.Context, target string) (whatcms.Info, error)
}

// Runner orchestrates a single scan: normalize, identify, dispatch, report.
type Runner struct {
	Prober      httpclient.Prober
	Identifier  Identifier
	CMSCheckers map[string]Checker // keyed by exact CMS name
	Checkers    []Checker          // run for every target, after the CMS checker
	IncludeCMS  bool               // embed the identification payload in the report

	// OnStart and OnFinding are optional progress callbacks
	OnStart   func(Checker)
	OnFinding func(string)

	Logger *zap.SugaredLogger
}

// Run scans rawTarget. The returned error is non-nil only for the fatal
// bootstrap failures: an unreachable target or a failed identification call.
func (r *Runner) Run(ctx context.Context, rawTarget string) (*report.Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	target, err := NormalizeTarget(ctx, r.Prober, rawTarget)
	if err != nil {
		logger.Errorw("target unreachable", "target", rawTarget, "error", err)
		return nil, err
	}
	logger.Infow("target normalized", "target", target)

	info, err := r.Identifier.Identify(ctx, target)
	if errors.Is(err, whatcms.ErrInvalidAPIKey) {
		logger.Warnw("fingerprinting service rejected the API key", "target", target)
		return report.Minimal(target, whatcms.InvalidAPIKeyMessage), nil
	}
	if err != nil {
		logger.Errorw("CMS identification failed", "target", target, "error", err)
		return nil, fmt.Errorf("identify %s: %w", target, err)
	}

	messages := make([]string, 0)
	if msg, ok := DetectionFinding(info); ok {
		messages = r.record(messages, msg)
	}

	scan := Scan{Target: target, CMS: info}
	if chk, ok := r.CMSCheckers[info.CMSName()]; ok {
		messages = r.runChecker(ctx, chk, scan, messages)
	} else {
		logger.Infow("no CMS-specific checks", "cms", info.CMSName())
	}
	for _, chk := range r.Checkers {
		messages = r.runChecker(ctx, chk, scan, messages)
	}

	var cms *whatcms.Info
	if r.IncludeCMS {
		cms = &info
	}
	logger.Infow("scan complete", "target", target, "findings", len(messages))
	return report.Assemble(target, cms, messages), nil
}

func (r *Runner) runChecker(ctx context.Context, chk Checker, scan Scan, messages []string) []string {
	if r.OnStart != nil {
		r.OnStart(chk)
	}
	for _, msg := range chk.Check(ctx, scan) {
		messages = r.record(messages, msg)
	}
	return messages
}

func (r *Runner) record(messages []string, msg string) []string {
	if r.OnFinding != nil {
		r.OnFinding(msg)
	}
	return append(messages, msg)
}
