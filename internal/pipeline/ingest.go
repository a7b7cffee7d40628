package pipeline

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-genie/internal/analysis"
	"github.com/jonathan/resume-genie/internal/db"
)

// ghostCheckConcurrency caps parallel liveness probes during ingestion.
const ghostCheckConcurrency = 8

// IngestReport summarizes one ingestion pass.
type IngestReport struct {
	Fetched      int      `json:"fetched"`
	Kept         int      `json:"kept"`
	FailedBoards []string `json:"failed_boards,omitempty"`
}

// Ingest fetches from every configured source, enriches and scores the
// postings, filters them against the preferences and upserts the survivors.
// A failing board is logged and skipped; ingestion only fails outright when
// every source fails or the store rejects the batch.
func (p *Pipeline) Ingest(ctx context.Context) (*IngestReport, error) {
	report := &IngestReport{}

	var all []db.Job
	var lastErr error
	for _, src := range p.opts.Sources {
		jobs, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("[ingest] %v", err)
			report.FailedBoards = append(report.FailedBoards, src.Name())
			lastErr = err
			continue
		}
		log.Printf("[ingest] %s returned %d postings", src.Name(), len(jobs))
		all = append(all, jobs...)
	}
	report.Fetched = len(all)

	if len(all) == 0 {
		if lastErr != nil {
			return report, lastErr
		}
		return report, nil
	}

	for i := range all {
		analysis.Enrich(&all[i])
		all[i].Score = analysis.Score(all[i])
	}

	if p.opts.Ghost != nil {
		p.probeApplyURLs(ctx, all)
	}

	kept := analysis.Rank(analysis.Filter(all, p.opts.Preferences))
	report.Kept = len(kept)

	if len(kept) > 0 {
		if err := p.opts.Jobs.UpsertJobs(ctx, kept); err != nil {
			return report, err
		}
	}
	return report, nil
}

// probeApplyURLs records ghost status for each job, a bounded number of
// probes at a time. Probe failures only mark the job; they never fail the
// ingestion pass.
func (p *Pipeline) probeApplyURLs(ctx context.Context, jobs []db.Job) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ghostCheckConcurrency)
	for i := range jobs {
		job := &jobs[i]
		g.Go(func() error {
			p.opts.Ghost.Check(ctx, job)
			return nil
		})
	}
	_ = g.Wait()
}
