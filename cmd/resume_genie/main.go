// Package main provides the entry point for the ResumeGenie CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_genie",
	Short: "ResumeGenie job application pipeline",
	Long:  "ResumeGenie ingests remote job postings, scores them against your preferences and generates tailored LaTeX resumes with application cheat sheets.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
