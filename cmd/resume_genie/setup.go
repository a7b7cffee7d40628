package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-genie/internal/analysis"
	"github.com/jonathan/resume-genie/internal/config"
	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/ingestion"
	"github.com/jonathan/resume-genie/internal/llm"
	"github.com/jonathan/resume-genie/internal/observability"
	"github.com/jonathan/resume-genie/internal/pipeline"
	"github.com/jonathan/resume-genie/internal/profile"
	"github.com/jonathan/resume-genie/internal/resume"
)

var (
	configPath  string
	profilePath string
	outputDir   string
	prefSkills  []string
	remoteOnly  bool
	compilePDF  bool
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Path to the master profile document (default master_profile.json)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Directory for generated artifacts (default out)")
	rootCmd.PersistentFlags().StringSliceVar(&prefSkills, "skills", nil, "Preferred skills; jobs matching none are dropped during ingestion")
	rootCmd.PersistentFlags().BoolVar(&remoteOnly, "remote-only", false, "Keep only remote jobs during ingestion")
	rootCmd.PersistentFlags().BoolVar(&compilePDF, "pdf", true, "Attempt PDF compilation with pdflatex")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print formatted progress boxes")
}

// resolveConfig layers CLI flags over the optional config file over the
// built-in defaults.
func resolveConfig() (config.Config, error) {
	cfg := config.Config{
		ProfilePath: profilePath,
		OutputDir:   outputDir,
		Skills:      prefSkills,
		RemoteOnly:  remoteOnly,
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		if err := fileCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// app bundles the wired components behind every subcommand.
type app struct {
	cfg      config.Config
	db       *db.DB
	profiles *profile.Store
	provider llm.Provider
	pipeline *pipeline.Pipeline
	printer  *observability.Printer
}

// newApp connects to the database and wires the pipeline from the resolved
// configuration. Callers must Close when done.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable (or database_url in the config file) is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	provider := llm.NewProvider(ctx, llm.ConfigFromEnv())
	profiles := profile.NewStore(cfg.ProfilePath)

	prefs := analysis.Preferences{RemoteOnly: cfg.RemoteOnly}
	for _, s := range cfg.Skills {
		if s = strings.TrimSpace(s); s != "" {
			prefs.Skills = append(prefs.Skills, strings.ToLower(s))
		}
	}

	pipe := pipeline.New(pipeline.Options{
		Jobs:     database,
		Profiles: profiles,
		Sources: []ingestion.Source{
			ingestion.NewRemoteOK(),
			ingestion.NewWeWorkRemotely(),
		},
		Ghost:       ingestion.NewGhostChecker(),
		Scanner:     ingestion.NewScanner(),
		Compositor:  resume.NewCompositor(provider),
		Preferences: prefs,
		OutputDir:   cfg.OutputDir,
		CompilePDF:  compilePDF,
	})

	return &app{
		cfg:      cfg,
		db:       database,
		profiles: profiles,
		provider: provider,
		pipeline: pipe,
		printer:  observability.NewPrinter(os.Stdout),
	}, nil
}

// Close releases the database pool and any provider connections.
func (a *app) Close() {
	if closer, ok := a.provider.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	a.db.Close()
}
