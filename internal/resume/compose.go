package resume

import (
	"context"
	"log"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/llm"
	"github.com/jonathan/resume-genie/internal/profile"
)

// Compositor turns a profile and a job posting into a resume draft. When the
// provider is absent or fails, it falls back to deterministic rendering so a
// document is always produced.
type Compositor struct {
	Provider llm.Provider
	Options  llm.Options
}

// NewCompositor returns a Compositor using the default generation options.
func NewCompositor(provider llm.Provider) *Compositor {
	return &Compositor{Provider: provider, Options: llm.DefaultOptions()}
}

// Compose produces a resume draft for the job. The boolean reports whether
// the draft came from the text generation provider; false means the
// deterministic fallback was used.
func (c *Compositor) Compose(ctx context.Context, p *profile.Profile, job *db.Job, projects []profile.Project) (string, bool) {
	prompt := BuildPrompt(p, job, projects)

	draft, ok := llm.SafeGenerate(ctx, c.Provider, prompt, c.Options)
	if ok {
		return draft, true
	}

	log.Printf("generation unavailable for job %s, using fallback renderer", job.ID)
	return RenderFallback(p, job, projects), false
}
