package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var agentTopN int

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Generate packages for the top ranked jobs",
	Long:  `Rank the stored jobs and generate application packages for the highest scoring ones. Per-job failures are reported but do not stop the run.`,
	RunE:  runAgent,
}

func init() {
	agentCmd.Flags().IntVar(&agentTopN, "top", 0, "How many top jobs to package (default 5)")
	rootCmd.AddCommand(agentCmd)
}

func runAgent(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	topN := agentTopN
	if topN == 0 {
		topN = app.cfg.TopN
	}

	report, err := app.pipeline.Agent(cmd.Context(), topN)
	if err != nil {
		return fmt.Errorf("agent run failed: %w", err)
	}

	if verbose {
		app.printer.PrintAgentReport(report)
	} else {
		fmt.Printf("Packaged %d of %d jobs\n", len(report.Results), report.Considered)
		for _, f := range report.Failures {
			fmt.Printf("  failed %s: %s\n", f.JobID, f.Err)
		}
	}
	return nil
}
