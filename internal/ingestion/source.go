// Package ingestion fetches job postings from external boards and checks
// whether their apply links are still alive.
package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/resume-genie/internal/db"
)

// userAgent identifies us to job boards; some reject default Go clients.
const userAgent = "ResumeGenie/1.0 (+https://github.com/jonathan/resume-genie)"

// defaultTimeout bounds a single fetch against one board.
const defaultTimeout = 30 * time.Second

// Source is a single job board connector. Fetch returns the postings
// currently listed; connectors normalize into db.Job but leave enrichment
// fields empty for the analysis package to fill.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]db.Job, error)
}

// SourceError wraps a connector failure with the board's name so callers
// can log which source failed without losing the cause.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

func newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}
