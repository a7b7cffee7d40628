package pipeline

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-genie/internal/analysis"
)

// agentConcurrency caps parallel generations in agent mode. Generation is
// provider-bound, so a small limit keeps the backend responsive.
const agentConcurrency = 3

// agentListLimit bounds how many stored jobs the agent considers.
const agentListLimit = 200

// AgentFailure records one job the agent could not package.
type AgentFailure struct {
	JobID string `json:"job_id"`
	Err   string `json:"error"`
}

// AgentReport summarizes one agent run.
type AgentReport struct {
	Considered int                `json:"considered"`
	Results    []GenerationResult `json:"results"`
	Failures   []AgentFailure     `json:"failures,omitempty"`
}

// Agent generates application packages for the top scored jobs in the
// store. Per-job failures are recorded in the report, not returned; the
// run only errors when the job list itself cannot be loaded.
func (p *Pipeline) Agent(ctx context.Context, topN int) (*AgentReport, error) {
	jobs, err := p.opts.Jobs.ListJobs(ctx, agentListLimit)
	if err != nil {
		return nil, err
	}

	targets := analysis.TopN(analysis.Rank(jobs), topN)
	report := &AgentReport{Considered: len(targets)}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(agentConcurrency)
	for _, job := range targets {
		g.Go(func() error {
			res, err := p.Generate(ctx, job.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[agent] job %s: %v", job.ID, err)
				report.Failures = append(report.Failures, AgentFailure{JobID: job.ID, Err: err.Error()})
				return nil
			}
			report.Results = append(report.Results, *res)
			return nil
		})
	}
	_ = g.Wait()

	return report, nil
}
