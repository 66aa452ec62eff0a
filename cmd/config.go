package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/khanhnv2901/cmsaudit/internal/checker"
	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
	consts "github.com/khanhnv2901/cmsaudit/internal/shared/constants"
	"github.com/khanhnv2901/cmsaudit/internal/whatcms"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "CMSAUDIT"
	configBaseName = "config"
)

var defaultTimeoutSeconds = int(consts.DefaultProbeTimeout / time.Second)

// CLIConfig captures runtime configuration for a scan.
type CLIConfig struct {
	Target      string
	APIKey      string
	Output      string
	TimeoutSecs int
	RateLimit   int
	UserAgent   string
	API         APIConfig
	Report      ReportConfig
	NoBanner    bool
	Debug       bool
}

// APIConfig groups the external endpoints the scan talks to.
type APIConfig struct {
	Endpoint    string
	VersionFeed string
}

// ReportConfig controls what is written besides the JSON report.
type ReportConfig struct {
	IncludeCMS bool
	Markdown   string
}

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		TimeoutSecs: defaultTimeoutSeconds,
		RateLimit:   0,
		UserAgent:   httpclient.DefaultUserAgent,
		API: APIConfig{
			Endpoint:    whatcms.DefaultEndpoint,
			VersionFeed: checker.DefaultWordPressVersionFeed,
		},
		Report: ReportConfig{
			IncludeCMS: true,
		},
	}
}

// Timeout returns the per-request timeout.
func (c *CLIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Validate checks the mandatory parameters and numeric bounds.
func (c *CLIConfig) Validate() error {
	var missing []string
	if c.Target == "" {
		missing = append(missing, "target")
	}
	if c.APIKey == "" {
		missing = append(missing, "apikey")
	}
	if c.Output == "" {
		missing = append(missing, "output")
	}
	if len(missing) > 0 {
		return &UsageError{Missing: missing}
	}
	if c.TimeoutSecs <= 0 {
		return &UsageError{Reason: fmt.Sprintf("timeout must be positive, got %d", c.TimeoutSecs)}
	}
	if c.RateLimit < 0 {
		return &UsageError{Reason: fmt.Sprintf("rate limit cannot be negative, got %d", c.RateLimit)}
	}
	return nil
}

// flagBindings maps config keys to the flags that override them.
var flagBindings = map[string]string{
	"target":             "target",
	"apikey":             "apikey",
	"output":             "output",
	"timeout_secs":       "timeout",
	"rate_limit":         "rate-limit",
	"user_agent":         "user-agent",
	"api.endpoint":       "api-endpoint",
	"api.version_feed":   "version-feed",
	"report.include_cms": "include-cms",
	"report.markdown":    "markdown",
	"no_banner":          "no-banner",
	"debug":              "debug",
}

func registerFlags(flags *pflag.FlagSet) {
	defaults := newCLIConfig()

	flags.StringP("target", "t", "", "target domain or URL")
	flags.StringP("apikey", "k", "", "WhatCMS API key (or set CMSAUDIT_APIKEY)")
	flags.StringP("output", "o", "", "output file name for JSON results")
	flags.Int("timeout", defaults.TimeoutSecs, "per-request timeout in seconds")
	flags.Int("rate-limit", defaults.RateLimit, "maximum requests per second (0 = unpaced)")
	flags.String("user-agent", defaults.UserAgent, "User-Agent sent with every request")
	flags.String("api-endpoint", defaults.API.Endpoint, "fingerprinting service endpoint")
	flags.String("version-feed", defaults.API.VersionFeed, "WordPress latest-version feed")
	flags.Bool("include-cms", defaults.Report.IncludeCMS, "embed the identification payload in the report")
	flags.String("markdown", "", "also write a Markdown summary to this file")
	flags.Bool("no-banner", false, "do not print the startup banner")
}

// defaultConfigDir returns the XDG config directory for cmsaudit.
// On Linux: ~/.config/cmsaudit
func defaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// loadViper layers flags over environment over the config file. An explicit
// --config that cannot be read is an error; a missing default file is not.
func loadViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	explicit := ""
	if f := flags.Lookup("config"); f != nil {
		explicit = f.Value.String()
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(defaultConfigDir())
		v.SetConfigName(configBaseName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, name := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	defaults := newCLIConfig()
	v.SetDefault("timeout_secs", defaults.TimeoutSecs)
	v.SetDefault("rate_limit", defaults.RateLimit)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("api.endpoint", defaults.API.Endpoint)
	v.SetDefault("api.version_feed", defaults.API.VersionFeed)
	v.SetDefault("report.include_cms", defaults.Report.IncludeCMS)

	if err := v.ReadInConfig(); err != nil && explicit != "" {
		return nil, fmt.Errorf("read config %s: %w", explicit, err)
	}
	return v, nil
}

func buildCLIConfig(v *viper.Viper) *CLIConfig {
	return &CLIConfig{
		Target:      strings.TrimSpace(v.GetString("target")),
		APIKey:      strings.TrimSpace(v.GetString("apikey")),
		Output:      strings.TrimSpace(v.GetString("output")),
		TimeoutSecs: v.GetInt("timeout_secs"),
		RateLimit:   v.GetInt("rate_limit"),
		UserAgent:   v.GetString("user_agent"),
		API: APIConfig{
			Endpoint:    v.GetString("api.endpoint"),
			VersionFeed: v.GetString("api.version_feed"),
		},
		Report: ReportConfig{
			IncludeCMS: v.GetBool("report.include_cms"),
			Markdown:   strings.TrimSpace(v.GetString("report.markdown")),
		},
		NoBanner: v.GetBool("no_banner"),
		Debug:    v.GetBool("debug"),
	}
}
