package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
)

// allConfigKeys lists every env var that Load() reads.
var allConfigKeys = []string{
	"EVICTIONREPORT_GITHUB_TOKEN",
	"GITHUB_TOKEN",
	"EVICTIONREPORT_API_URL",
	"GITHUB_API_URL",
	"EVICTIONREPORT_REPORT_PATH",
	"EVICTIONREPORT_MARKER",
	"EVICTIONREPORT_ALL_PAGES",
	"EVICTIONREPORT_HISTORY_DB",
	"EVICTIONREPORT_LOG_LEVEL",
}

// isolateConfigEnv saves and unsets all config env vars so tests don't
// inherit values from the host environment (e.g. an Actions runner).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("EVICTIONREPORT_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("EVICTIONREPORT_API_URL", "https://github.example.com/api/v3/")
	t.Setenv("EVICTIONREPORT_REPORT_PATH", "target/unique_evictions.txt")
	t.Setenv("EVICTIONREPORT_MARKER", "<!-- evictions -->")
	t.Setenv("EVICTIONREPORT_ALL_PAGES", "true")
	t.Setenv("EVICTIONREPORT_HISTORY_DB", "/tmp/history.db")
	t.Setenv("EVICTIONREPORT_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ghp_test123", cfg.GitHubToken)
	assert.Equal(t, "https://github.example.com/api/v3/", cfg.APIURL)
	assert.Equal(t, "target/unique_evictions.txt", cfg.ReportPath)
	assert.Equal(t, "<!-- evictions -->", cfg.Marker)
	assert.True(t, cfg.AllPages)
	assert.Equal(t, "/tmp/history.db", cfg.HistoryDB)
	assert.True(t, cfg.HistoryEnabled())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "", cfg.GitHubToken)
	assert.False(t, cfg.HasGitHubToken())
	assert.Equal(t, "", cfg.APIURL)
	assert.Equal(t, model.DefaultReportPath, cfg.ReportPath)
	assert.Equal(t, model.DefaultMarker, cfg.Marker)
	assert.False(t, cfg.AllPages)
	assert.False(t, cfg.HistoryEnabled())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_FallsBackToGitHubToken(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghs_actions")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ghs_actions", cfg.GitHubToken)
	assert.True(t, cfg.HasGitHubToken())
}

func TestLoad_PrefixedTokenWins(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghs_actions")
	t.Setenv("EVICTIONREPORT_GITHUB_TOKEN", "ghp_personal")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ghp_personal", cfg.GitHubToken)
}

func TestLoad_GitHubAPIURL(t *testing.T) {
	tests := []struct {
		name   string
		apiURL string
		want   string
	}{
		{name: "public api ignored", apiURL: "https://api.github.com", want: ""},
		{name: "public api with slash ignored", apiURL: "https://api.github.com/", want: ""},
		{name: "enterprise kept", apiURL: "https://ghe.example.com/api/v3", want: "https://ghe.example.com/api/v3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv("GITHUB_API_URL", tc.apiURL)

			cfg, err := Load()

			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.APIURL)
		})
	}
}

func TestLoad_InvalidAllPages(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("EVICTIONREPORT_ALL_PAGES", "sometimes")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EVICTIONREPORT_ALL_PAGES")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("EVICTIONREPORT_LOG_LEVEL", "verbose")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EVICTIONREPORT_LOG_LEVEL")
}
