package main

import (
	"fmt"
	"time"

	"github.com/metdatasystem/cwa/internal/report"
	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/spf13/cobra"
)

var (
	reportYear    int
	reportMonth   int
	reportHazard  string
	reportCSV     bool
	reportDir     string
	reportArchive bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Monthly report of issued products",
	Long: `List every product issued in a month, grouped by hazard. The report is printed, saved to
	--dir, or archived gzip compressed to REPORT_BUCKET with --archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var hazard cwa.Hazard
		if reportHazard != "" && reportHazard != report.All {
			h, err := cwa.ParseHazard(reportHazard)
			if err != nil {
				return fmt.Errorf("invalid --hazard %q: %w", reportHazard, err)
			}
			hazard = h
		}
		if reportMonth < 1 || reportMonth > 12 {
			return fmt.Errorf("invalid --month %d", reportMonth)
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		r, err := report.Build(ctx, a.store, reportYear, time.Month(reportMonth), hazard, a.cfg.Operational)
		if err != nil {
			return err
		}

		switch {
		case reportArchive:
			if a.cfg.ReportBucket == "" {
				return fmt.Errorf("REPORT_BUCKET is not set")
			}
			archive, err := report.NewArchive(ctx, a.cfg.ReportBucket, a.cfg.CWSU)
			if err != nil {
				return err
			}
			key, err := archive.Upload(ctx, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Archived %d products to s3://%s/%s\n", r.Len(), a.cfg.ReportBucket, key)
		case reportDir != "":
			path, err := r.Save(reportDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d products to %s\n", r.Len(), path)
		case reportCSV:
			return r.WriteCSV(cmd.OutOrStdout())
		default:
			return r.WriteText(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	now := time.Now().UTC()
	reportCmd.Flags().IntVar(&reportYear, "year", now.Year(), "Report year.")
	reportCmd.Flags().IntVar(&reportMonth, "month", int(now.Month()), "Report month, 1 to 12.")
	reportCmd.Flags().StringVar(&reportHazard, "hazard", report.All, "Limit the report to one hazard.")
	reportCmd.Flags().BoolVar(&reportCSV, "csv", false, "Print a CSV listing instead of product text.")
	reportCmd.Flags().StringVar(&reportDir, "dir", "", "Save the text report into this directory.")
	reportCmd.Flags().BoolVar(&reportArchive, "archive", false, "Archive the report to REPORT_BUCKET.")
}
