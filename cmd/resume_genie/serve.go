package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-genie/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for ingesting jobs, managing the profile and generating application packages.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	port := servePort
	if port == 0 {
		port = app.cfg.Port
	}

	srv := server.New(server.Config{
		Port:      port,
		Store:     app.db,
		Runner:    app.pipeline,
		Profiles:  app.profiles,
		Provider:  app.provider,
		OutputDir: app.cfg.OutputDir,
	})

	if err := srv.Start(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
