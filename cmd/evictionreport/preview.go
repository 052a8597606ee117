package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wellcomecollection/scala-libs/internal/adapter/driven/filesystem"
	"github.com/wellcomecollection/scala-libs/internal/render"
)

func newPreviewCmd(c *cli) *cobra.Command {
	var reportPath, outPath string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the report to HTML the way the comment will display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reportPath == "" {
				reportPath = c.cfg.ReportPath
			}

			report, err := filesystem.NewReportFile(reportPath).ReadReport(cmd.Context())
			if err != nil {
				return err
			}

			page := render.Page(report.Path, report.Body)

			if outPath == "" {
				_, err = io.WriteString(c.out, page)
				return err
			}

			if err := os.WriteFile(outPath, []byte(page), 0o644); err != nil {
				return fmt.Errorf("writing preview %s: %w", outPath, err)
			}
			_, err = fmt.Fprintf(c.out, "preview written to %s\n", outPath)
			return err
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "report file (default: $EVICTIONREPORT_REPORT_PATH or unique_evictions.txt)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write HTML to this file instead of stdout")

	return cmd
}
