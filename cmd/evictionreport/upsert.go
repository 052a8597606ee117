package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wellcomecollection/scala-libs/internal/adapter/driven/filesystem"
	"github.com/wellcomecollection/scala-libs/internal/adapter/driving/actions"
	"github.com/wellcomecollection/scala-libs/internal/application"
	"github.com/wellcomecollection/scala-libs/internal/domain/model"
	"github.com/wellcomecollection/scala-libs/internal/domain/port/driven"
)

func newUpsertCmd(c *cli) *cobra.Command {
	var (
		overrides  actions.Overrides
		reportPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update the eviction report comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			issue, err := actions.LoadIssueRef(os.Getenv, overrides)
			if err != nil {
				return err
			}

			tracker, err := c.newTrackerClient()
			if err != nil {
				return err
			}

			if reportPath == "" {
				reportPath = c.cfg.ReportPath
			}
			reader := filesystem.NewReportFile(reportPath)

			var history driven.HistoryStore
			if c.cfg.HistoryEnabled() && !dryRun {
				db, repo, err := c.openHistory(ctx)
				if err != nil {
					return err
				}
				defer closeDB(db)
				history = repo
			}

			svc := application.NewUpsertService(tracker, reader, history, c.cfg.Marker)

			if dryRun {
				outcome, err := svc.Plan(ctx, issue)
				if err != nil {
					return err
				}
				return printPlan(c, issue, outcome)
			}

			outcome, err := svc.UpsertReport(ctx, issue)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.out, "%s comment %d on %s %s\n", outcome.Action, outcome.CommentID, issue, outcome.URL)
			return err
		},
	}

	cmd.Flags().StringVar(&overrides.Repo, "repo", "", "target repository as owner/repo (default: $GITHUB_REPOSITORY)")
	cmd.Flags().IntVar(&overrides.Number, "issue", 0, "target issue or pull request number (default: from the workflow event)")
	cmd.Flags().StringVar(&reportPath, "report", "", "report file (default: $EVICTIONREPORT_REPORT_PATH or "+model.DefaultReportPath+")")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list comments and print the planned action without writing")

	return cmd
}

func printPlan(c *cli, issue model.IssueRef, outcome *model.UpsertOutcome) error {
	var err error
	switch outcome.Action {
	case model.UpsertActionUpdated:
		_, err = fmt.Fprintf(c.out, "would update comment %d on %s %s\n", outcome.CommentID, issue, outcome.URL)
	default:
		_, err = fmt.Fprintf(c.out, "would create a new comment on %s\n", issue)
	}
	return err
}
