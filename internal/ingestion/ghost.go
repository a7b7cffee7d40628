package ingestion

import (
	"context"
	"net/http"
	"time"

	"github.com/jonathan/resume-genie/internal/db"
)

// ghostCheckTimeout bounds a single liveness probe.
const ghostCheckTimeout = 10 * time.Second

// GhostChecker probes apply links to flag postings that were taken down
// but still appear in board feeds.
type GhostChecker struct {
	Client *http.Client
}

// NewGhostChecker returns a checker with a short per-probe timeout.
func NewGhostChecker() *GhostChecker {
	return &GhostChecker{Client: &http.Client{Timeout: ghostCheckTimeout}}
}

// CheckApplyURL issues a HEAD request and returns the response status.
// A status of 0 means the URL was empty or the request failed outright.
func (g *GhostChecker) CheckApplyURL(ctx context.Context, applyURL string) int {
	if applyURL == "" {
		return 0
	}

	req, err := newRequest(ctx, http.MethodHead, applyURL)
	if err != nil {
		return 0
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return 0
	}
	resp.Body.Close()
	return resp.StatusCode
}

// Check stores the probe result on the job. Alive reports whether the
// posting still resolves; anything under 400 counts as alive.
func (g *GhostChecker) Check(ctx context.Context, job *db.Job) {
	job.GhostStatus = g.CheckApplyURL(ctx, job.ApplyURL)
}

// Alive reports whether a recorded ghost status indicates a live posting.
func Alive(status int) bool {
	return status > 0 && status < 400
}
