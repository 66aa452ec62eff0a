package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/khanhnv2901/cmsaudit/internal/checker"
	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
	"github.com/khanhnv2901/cmsaudit/internal/report"
	"github.com/khanhnv2901/cmsaudit/internal/whatcms"
	"go.uber.org/zap"
)

// runScan executes one scan and writes the report to outputPath. Nothing is
// written when the scan fails fatally.
func runScan(ctx context.Context, cfg *CLIConfig, outputPath string, log *zap.SugaredLogger, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	client := httpclient.New(httpclient.Config{
		Timeout:   cfg.Timeout(),
		RateLimit: cfg.RateLimit,
		UserAgent: cfg.UserAgent,
		Logger:    log,
	})

	runner := &checker.Runner{
		Prober: client,
		Identifier: whatcms.NewClient(cfg.APIKey, client,
			whatcms.WithEndpoint(cfg.API.Endpoint),
			whatcms.WithLogger(log),
		),
		CMSCheckers: checker.NewCMSCheckers(client, checker.NewWordPressFeed(client, cfg.API.VersionFeed)),
		Checkers:    []checker.Checker{checker.NewHeaderChecker(client)},
		IncludeCMS:  cfg.Report.IncludeCMS,
		OnStart: func(c checker.Checker) {
			fmt.Fprintln(out, colorInfo(c.StartMessage()))
		},
		OnFinding: func(msg string) {
			fmt.Fprintln(out, colorWarn(msg))
		},
		Logger: log,
	}

	rep, err := runner.Run(ctx, cfg.Target)
	if err != nil {
		return err
	}

	if err := report.WriteFile(outputPath, rep); err != nil {
		return err
	}
	log.Infow("report written", "path", outputPath, "findings", len(rep.Messages))

	if cfg.Report.Markdown != "" {
		mdPath, err := resolveOutputPath(cfg.Report.Markdown)
		if err != nil {
			return err
		}
		if err := report.WriteMarkdownFile(mdPath, rep); err != nil {
			return err
		}
		log.Infow("markdown summary written", "path", mdPath)
	}

	fmt.Fprintln(out, "RESULTS:")
	if err := report.Encode(out, rep, "    "); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s\n", colorSuccess("Results saved to"), outputPath)
	return nil
}
