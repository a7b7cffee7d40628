package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/resume-genie/internal/ingestion"
	"github.com/jonathan/resume-genie/internal/latex"
	"github.com/jonathan/resume-genie/internal/profile"
	"github.com/jonathan/resume-genie/internal/resume"
)

// GenerationResult describes one completed generation request.
type GenerationResult struct {
	PackageID uuid.UUID `json:"package_id"`
	JobID     string    `json:"job_id"`
	OutputID  string    `json:"output_id"`
	Document  string    `json:"-"`
	TexPath   string    `json:"tex_path"`
	PDFPath   string    `json:"pdf_path,omitempty"`
	Generated bool      `json:"generated"`
	Compiled  bool      `json:"compiled"`
}

// Generate builds the application package for one job: compose a draft,
// post-process it, write the artifact, attempt PDF compilation and persist
// the package. Compilation failures are warnings; everything up to and
// including persistence must succeed.
func (p *Pipeline) Generate(ctx context.Context, jobID string) (*GenerationResult, error) {
	job, err := p.opts.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job %s: %w", jobID, err)
	}
	if job == nil {
		return nil, &JobNotFoundError{ID: jobID}
	}

	prof, err := p.opts.Profiles.Load()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	projects := p.relevantProjects(ctx, prof, job.Title+" "+job.Description)

	draft, generated := p.opts.Compositor.Compose(ctx, prof, job, projects)
	final, outputID := latex.Postprocess(draft, prof, job)

	texPath, err := latex.WriteArtifact(p.opts.OutputDir, outputID, final)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{
		JobID:     job.ID,
		OutputID:  outputID,
		Document:  final,
		TexPath:   texPath,
		Generated: generated,
	}

	if p.opts.CompilePDF {
		pdfPath, _, err := latex.Compile(ctx, texPath, p.opts.OutputDir)
		if err != nil {
			log.Printf("[generate] pdf compilation for %s: %v", job.ID, err)
		}
		if pdfPath != "" {
			result.PDFPath = pdfPath
			result.Compiled = err == nil
		}
		latex.CleanupAux(p.opts.OutputDir, outputID)
	}

	sheet := resume.BuildCheatSheet(prof, job)
	pkgID, err := p.opts.Jobs.SaveApplication(ctx, job.ID, final, sheet)
	if err != nil {
		return nil, fmt.Errorf("save application package: %w", err)
	}
	result.PackageID = pkgID

	return result, nil
}

// relevantProjects merges authored profile projects with scanned GitHub
// repositories and keeps the ones matching the job text. Scanner failures
// degrade to authored projects only.
func (p *Pipeline) relevantProjects(ctx context.Context, prof *profile.Profile, jobText string) []profile.Project {
	merged := append([]profile.Project{}, prof.Projects...)

	if p.opts.Scanner != nil && prof.GitHubUsername != "" {
		scanned, err := p.opts.Scanner.FetchProjects(ctx, prof.GitHubUsername)
		if err != nil {
			log.Printf("[generate] github scan for %s: %v", prof.GitHubUsername, err)
		} else {
			merged = append(merged, scanned...)
		}
	}

	return ingestion.RelevantProjects(merged, jobText)
}
