package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-genie/internal/db"
)

// defaultRemoteOKURL is the public JSON feed.
const defaultRemoteOKURL = "https://remoteok.com/api"

// RemoteOK fetches postings from the RemoteOK JSON API.
type RemoteOK struct {
	BaseURL string
	Client  *http.Client
}

// NewRemoteOK returns a connector against the public RemoteOK feed.
func NewRemoteOK() *RemoteOK {
	return &RemoteOK{BaseURL: defaultRemoteOKURL, Client: newHTTPClient()}
}

func (r *RemoteOK) Name() string { return "remoteok" }

// remoteOKPosting mirrors the feed's per-job object. The feed's first
// element is a legal notice without an id; decoding it yields a zero ID
// and the entry is skipped.
type remoteOKPosting struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	SalaryMin   int         `json:"salary_min"`
	SalaryMax   int         `json:"salary_max"`
	URL         string      `json:"url"`
	Tags        []string    `json:"tags"`
}

// Fetch downloads the feed and normalizes each posting. The description
// gets the tag list appended so tag-only skills are still detectable by
// text extraction.
func (r *RemoteOK) Fetch(ctx context.Context) ([]db.Job, error) {
	req, err := newRequest(ctx, http.MethodGet, r.BaseURL)
	if err != nil {
		return nil, &SourceError{Source: r.Name(), Err: err}
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, &SourceError{Source: r.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceError{Source: r.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var postings []remoteOKPosting
	if err := json.NewDecoder(resp.Body).Decode(&postings); err != nil {
		return nil, &SourceError{Source: r.Name(), Err: fmt.Errorf("decode feed: %w", err)}
	}

	jobs := make([]db.Job, 0, len(postings))
	for _, p := range postings {
		if p.ID.String() == "" || p.Position == "" {
			continue
		}
		description := p.Description
		if len(p.Tags) > 0 {
			description += "\nTags: " + strings.Join(p.Tags, ", ")
		}
		jobs = append(jobs, db.Job{
			ID:          "remoteok-" + p.ID.String(),
			Source:      r.Name(),
			Title:       p.Position,
			Company:     p.Company,
			Description: description,
			Location:    p.Location,
			Salary:      formatSalary(p.SalaryMin, p.SalaryMax),
			ApplyURL:    p.URL,
			Valid:       true,
			FetchedAt:   time.Now().UTC(),
		})
	}
	return jobs, nil
}

func formatSalary(min, max int) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("$%d - $%d", min, max)
	case min > 0:
		return fmt.Sprintf("$%d+", min)
	default:
		return ""
	}
}
