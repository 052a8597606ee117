package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	githubadapter "github.com/wellcomecollection/scala-libs/internal/adapter/driven/github"
	sqliteadapter "github.com/wellcomecollection/scala-libs/internal/adapter/driven/sqlite"
	"github.com/wellcomecollection/scala-libs/internal/config"
)

// cli carries state shared by all subcommands once configuration is loaded.
type cli struct {
	cfg *config.Config
	out io.Writer
}

// newRootCmd creates a new instance of the root command. A fresh tree per
// call keeps tests from sharing flag state.
func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	cmd := &cobra.Command{
		Use:   "evictionreport",
		Short: "Post the eviction summary report as a single, updatable PR comment",
		Long: `evictionreport reads the eviction summary written by the build
(unique_evictions.txt by default) and posts it as a comment on the current
issue or pull request. If a comment containing the report marker already
exists, the first such comment is updated in place instead.

Examples:
  evictionreport upsert                       # Use the GitHub Actions job context
  evictionreport upsert --repo o/r --issue 12 # Explicit target
  evictionreport upsert --dry-run             # Show what would change
  evictionreport preview --out report.html    # Render the report locally
  evictionreport history                      # Show recent runs`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.SetOut(out)
	cmd.AddCommand(newUpsertCmd(c))
	cmd.AddCommand(newPreviewCmd(c))
	cmd.AddCommand(newHistoryCmd(c))

	return cmd
}

// newTrackerClient creates the GitHub client from configuration.
func (c *cli) newTrackerClient() (*githubadapter.Client, error) {
	if !c.cfg.HasGitHubToken() {
		return nil, fmt.Errorf("no GitHub token: set EVICTIONREPORT_GITHUB_TOKEN or GITHUB_TOKEN")
	}

	client, err := githubadapter.NewClient(c.cfg.GitHubToken, c.cfg.APIURL)
	if err != nil {
		return nil, err
	}
	return client.WithAllPages(c.cfg.AllPages), nil
}

// openHistory opens the run history database and applies migrations.
// Callers must close the returned DB.
func (c *cli) openHistory(ctx context.Context) (*sqliteadapter.DB, *sqliteadapter.HistoryRepo, error) {
	db, err := sqliteadapter.NewDB(ctx, c.cfg.HistoryDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history database %s: %w", c.cfg.HistoryDB, err)
	}

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	slog.Debug("history database opened", "path", c.cfg.HistoryDB)
	return db, sqliteadapter.NewHistoryRepo(db), nil
}

// closeDB closes db and logs rather than returns the error; by then the
// command's own result is already decided.
func closeDB(db *sqliteadapter.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
