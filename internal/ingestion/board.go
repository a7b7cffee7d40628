package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-genie/internal/db"
)

// defaultBoardURL is the We Work Remotely programming category page.
const defaultBoardURL = "https://weworkremotely.com/categories/remote-programming-jobs"

// Board scrapes an HTML job board listing page. The selectors follow the
// We Work Remotely markup: one listing per li with title, company and
// region spans.
type Board struct {
	BoardName string
	BaseURL   string
	Client    *http.Client
}

// NewWeWorkRemotely returns a connector for the WWR programming category.
func NewWeWorkRemotely() *Board {
	return &Board{BoardName: "weworkremotely", BaseURL: defaultBoardURL, Client: newHTTPClient()}
}

func (b *Board) Name() string { return b.BoardName }

// Fetch downloads the listing page and extracts one job per posting link.
// Listing pages carry no full description, so the description is the
// title, company and region joined; extraction still picks up skills
// named in titles.
func (b *Board) Fetch(ctx context.Context) ([]db.Job, error) {
	req, err := newRequest(ctx, http.MethodGet, b.BaseURL)
	if err != nil {
		return nil, &SourceError{Source: b.Name(), Err: err}
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, &SourceError{Source: b.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceError{Source: b.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &SourceError{Source: b.Name(), Err: fmt.Errorf("parse listing: %w", err)}
	}

	base, err := url.Parse(b.BaseURL)
	if err != nil {
		return nil, &SourceError{Source: b.Name(), Err: err}
	}

	var jobs []db.Job
	doc.Find("section.jobs li").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("span.title").First().Text())
		if title == "" {
			return
		}
		company := strings.TrimSpace(s.Find("span.company").First().Text())
		region := strings.TrimSpace(s.Find("span.region").First().Text())

		href, ok := s.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		applyURL := base.ResolveReference(ref).String()

		jobs = append(jobs, db.Job{
			ID:          b.BoardName + "-" + slugFromPath(ref.Path),
			Source:      b.Name(),
			Title:       title,
			Company:     company,
			Description: strings.Join([]string{title, company, region}, " | "),
			Location:    region,
			ApplyURL:    applyURL,
			Valid:       true,
			FetchedAt:   time.Now().UTC(),
		})
	})
	return jobs, nil
}

// slugFromPath takes the last non-empty path segment as a stable job key.
func slugFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	return segments[len(segments)-1]
}
