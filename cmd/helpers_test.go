package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

// useOutputDir points relative output resolution at a temporary directory.
func useOutputDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	original := executableDir
	executableDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { executableDir = original })
	return dir
}

func disableColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

// emptyConfig writes an empty YAML file so tests never read the host's config.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func newTestFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(flags)
	flags.String("config", "", "")
	flags.Bool("debug", false, "")
	return flags
}

// resetRootFlags restores every root flag to its default between executions.
func resetRootFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	versionCmd.Flags().VisitAll(reset)
	t.Cleanup(func() {
		rootCmd.Flags().VisitAll(reset)
		rootCmd.PersistentFlags().VisitAll(reset)
		versionCmd.Flags().VisitAll(reset)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
}

// fixture wires a target site, a fingerprinting API and a version feed.
type fixture struct {
	site *httptest.Server
	api  *httptest.Server
	feed *httptest.Server
}

func newFixture(t *testing.T, apiStatus int, apiBody string, sitePaths map[string]int) *fixture {
	t.Helper()

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, ok := sitePaths[r.URL.Path]
		if !ok {
			code = http.StatusNotFound
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(site.Close)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "" || r.URL.Query().Get("url") == "" {
			t.Errorf("fingerprinting call missing key or url: %s", r.URL.RawQuery)
		}
		w.WriteHeader(apiStatus)
		_, _ = w.Write([]byte(apiBody))
	}))
	t.Cleanup(api.Close)

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"offers":[{"current":"6.4.2"}]}`))
	}))
	t.Cleanup(feed.Close)

	return &fixture{site: site, api: api, feed: feed}
}

func (f *fixture) config(output string) *CLIConfig {
	cfg := newCLIConfig()
	cfg.Target = f.site.URL
	cfg.APIKey = "test-key"
	cfg.Output = output
	cfg.TimeoutSecs = 2
	cfg.API.Endpoint = f.api.URL
	cfg.API.VersionFeed = f.feed.URL
	return cfg
}
