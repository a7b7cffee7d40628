// Package pipeline wires ingestion, analysis, generation and persistence
// into the operations exposed by the CLI and the HTTP server.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-genie/internal/analysis"
	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/ingestion"
	"github.com/jonathan/resume-genie/internal/profile"
	"github.com/jonathan/resume-genie/internal/resume"
)

// JobStore is the persistence surface the pipeline needs. *db.DB satisfies
// it; tests use in-memory fakes.
type JobStore interface {
	UpsertJobs(ctx context.Context, jobs []db.Job) error
	ListJobs(ctx context.Context, limit int) ([]db.Job, error)
	GetJob(ctx context.Context, id string) (*db.Job, error)
	SaveApplication(ctx context.Context, jobID, resumeTex string, cheatSheet any) (uuid.UUID, error)
}

// ProfileStore loads the candidate master profile.
type ProfileStore interface {
	Load() (*profile.Profile, error)
}

// ProjectScanner imports public repositories as candidate projects.
// *ingestion.Scanner satisfies it.
type ProjectScanner interface {
	FetchProjects(ctx context.Context, username string) ([]profile.Project, error)
}

// Options configures a Pipeline.
type Options struct {
	Jobs        JobStore
	Profiles    ProfileStore
	Sources     []ingestion.Source
	Ghost       *ingestion.GhostChecker
	Scanner     ProjectScanner
	Compositor  *resume.Compositor
	Preferences analysis.Preferences
	OutputDir   string
	CompilePDF  bool
}

// Pipeline runs the ingest, generate and agent operations.
type Pipeline struct {
	opts Options
}

// New returns a Pipeline. OutputDir defaults to "out".
func New(opts Options) *Pipeline {
	if opts.OutputDir == "" {
		opts.OutputDir = "out"
	}
	return &Pipeline{opts: opts}
}
