package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch, score and store job postings",
	Long:  `Fetch postings from the configured boards, extract skill and timezone signals, drop postings that miss the preferences and store the rest ranked by score.`,
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.pipeline.Ingest(cmd.Context())
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if verbose {
		app.printer.PrintIngestReport(report)
		jobs, err := app.db.ListJobs(cmd.Context(), 10)
		if err == nil {
			app.printer.PrintRankedJobs(jobs)
		}
	} else {
		fmt.Printf("Ingested %d postings, kept %d\n", report.Fetched, report.Kept)
	}
	return nil
}
