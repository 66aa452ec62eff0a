package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration sources and effective settings",
	Long: `Display cmsaudit configuration information including:
  - Configuration file location
  - Directory relative output paths resolve against
  - Effective endpoints and request settings
  - Platform information`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, err := executableDir()
		if err != nil {
			return err
		}

		configPath := cfgFile
		if configPath == "" {
			configPath = filepath.Join(defaultConfigDir(), configBaseName+".yaml")
		}
		configExists := "✗ (using defaults)"
		if _, err := os.Stat(configPath); err == nil {
			configExists = "✓ (exists)"
		}

		apiKey := "✗ (not set)"
		if cliConfig.APIKey != "" {
			apiKey = "✓ (set)"
		}

		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "cmsaudit System Information")
		fmt.Fprintln(out, "===========================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Platform:             %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Configuration File:   %s %s\n", configPath, configExists)
		fmt.Fprintf(out, "Output Directory:     %s\n", outputDir)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Effective Settings:")
		fmt.Fprintf(out, "  API Key:            %s\n", apiKey)
		fmt.Fprintf(out, "  API Endpoint:       %s\n", cliConfig.API.Endpoint)
		fmt.Fprintf(out, "  Version Feed:       %s\n", cliConfig.API.VersionFeed)
		fmt.Fprintf(out, "  Timeout:            %s\n", cliConfig.Timeout())
		fmt.Fprintf(out, "  Rate Limit:         %s\n", formatRateLimit(cliConfig.RateLimit))
		fmt.Fprintf(out, "  User-Agent:         %s\n", cliConfig.UserAgent)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Environment variables use the %s_ prefix, e.g. %s_APIKEY.\n", envPrefix, envPrefix)

		return nil
	},
}

func formatRateLimit(perSecond int) string {
	if perSecond <= 0 {
		return "unpaced"
	}
	return fmt.Sprintf("%d req/s", perSecond)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
