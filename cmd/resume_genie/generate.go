package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <job-id>",
	Short: "Generate an application package for one job",
	Long:  `Compose a tailored resume for the given job, post-process the LaTeX, write the artifact, attempt PDF compilation and store the package with its cheat sheet.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.pipeline.Generate(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if verbose {
		app.printer.PrintGenerationResult(res)
	} else {
		fmt.Printf("Wrote %s (package %s)\n", res.TexPath, res.PackageID)
		if res.PDFPath != "" {
			fmt.Printf("Compiled %s\n", res.PDFPath)
		}
	}
	return nil
}
