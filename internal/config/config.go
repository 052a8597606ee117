// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/wellcomecollection/scala-libs/internal/domain/model"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken string
	APIURL      string
	ReportPath  string
	Marker      string
	AllPages    bool
	HistoryDB   string
	LogLevel    slog.Level
}

// HasGitHubToken returns true when a token was found. Upserts need one;
// previewing a report and reading history do not.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// HistoryEnabled returns true when a run history database path is configured.
func (c *Config) HistoryEnabled() bool {
	return c.HistoryDB != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// The token is read from EVICTIONREPORT_GITHUB_TOKEN, then GITHUB_TOKEN; the API
// root from EVICTIONREPORT_API_URL, then GITHUB_API_URL when it is not the
// public github.com API. Optional variables with defaults:
// EVICTIONREPORT_REPORT_PATH (unique_evictions.txt), EVICTIONREPORT_MARKER
// (the eviction summary heading), EVICTIONREPORT_ALL_PAGES (false),
// EVICTIONREPORT_HISTORY_DB (disabled), EVICTIONREPORT_LOG_LEVEL (info).
func Load() (*Config, error) {
	token := firstNonEmpty(os.Getenv("EVICTIONREPORT_GITHUB_TOKEN"), os.Getenv("GITHUB_TOKEN"))

	apiURL := os.Getenv("EVICTIONREPORT_API_URL")
	if apiURL == "" {
		if v := os.Getenv("GITHUB_API_URL"); v != "" && !isPublicAPI(v) {
			apiURL = v
		}
	}

	reportPath := model.DefaultReportPath
	if v, ok := os.LookupEnv("EVICTIONREPORT_REPORT_PATH"); ok && v != "" {
		reportPath = v
	}

	marker := model.DefaultMarker
	if v, ok := os.LookupEnv("EVICTIONREPORT_MARKER"); ok && v != "" {
		marker = v
	}

	allPages := false
	if v, ok := os.LookupEnv("EVICTIONREPORT_ALL_PAGES"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("EVICTIONREPORT_ALL_PAGES has invalid boolean %q: %w", v, err)
		}
		allPages = parsed
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("EVICTIONREPORT_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("EVICTIONREPORT_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		GitHubToken: token,
		APIURL:      apiURL,
		ReportPath:  reportPath,
		Marker:      marker,
		AllPages:    allPages,
		HistoryDB:   os.Getenv("EVICTIONREPORT_HISTORY_DB"),
		LogLevel:    logLevel,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// isPublicAPI reports whether u is the github.com REST root, which go-github
// already defaults to.
func isPublicAPI(u string) bool {
	return strings.TrimSuffix(u, "/") == "https://api.github.com"
}
