package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "cmsaudit"

var cfgFile string
var logger *zap.SugaredLogger
var cliConfig = newCLIConfig()

var rootCmd = &cobra.Command{
	Use:   "cmsaudit --target <host|url> --apikey <key> --output <file>",
	Short: "Fingerprint a site's CMS and check it for common exposures",
	Long: `Identify the CMS behind a web host through the WhatCMS API, then run a
small set of safe GET checks: well-known sensitive paths for WordPress, Joomla
and Drupal, WordPress version freshness, and missing security headers.

The findings are written as JSON to --output (relative paths resolve next to
the executable) and echoed to stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadViper(cmd.Flags())
		if err != nil {
			return err
		}
		cliConfig = buildCLIConfig(v)

		// init logger
		l, err := newLogger(cliConfig.Debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l.Sugar()

		if used := v.ConfigFileUsed(); used != "" {
			logger.Debugw("config loaded", "path", used)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() { _ = logger.Sync() }()

		if err := cliConfig.Validate(); err != nil {
			return err
		}
		outputPath, err := resolveOutputPath(cliConfig.Output)
		if err != nil {
			return &UsageError{Reason: err.Error()}
		}

		out := cmd.OutOrStdout()
		if !cliConfig.NoBanner {
			printBanner(out)
		}
		return runScan(cmd.Context(), cliConfig, outputPath, logger, out)
	},
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, rootCmd.UsageString())
		}
		fmt.Fprintln(os.Stderr, colorError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	registerFlags(rootCmd.Flags())

	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/cmsaudit/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable development logging at debug level")

	// add subcommands
	rootCmd.AddCommand(versionCmd)
}
