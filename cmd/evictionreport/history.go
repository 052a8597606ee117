package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent report postings from the local run history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.cfg.HistoryEnabled() {
				return errors.New("run history is disabled: set EVICTIONREPORT_HISTORY_DB")
			}

			db, repo, err := c.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)

			entries, err := repo.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				_, err = fmt.Fprintln(c.out, "no runs recorded")
				return err
			}

			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RECORDED\tISSUE\tACTION\tCOMMENT\tBYTES\tSHA256")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s#%d\t%s\t%d\t%d\t%.12s\n",
					e.RecordedAt.UTC().Format(time.RFC3339),
					e.RepoFullName, e.IssueNumber,
					e.Action, e.CommentID, e.BodyBytes, e.BodySHA256,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show")

	return cmd
}
