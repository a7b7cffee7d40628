package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-genie/internal/profile"
)

// defaultGitHubAPI is the REST API root.
const defaultGitHubAPI = "https://api.github.com"

// maxRelevantProjects caps the projects attached to one generation request.
const maxRelevantProjects = 5

// Scanner imports a candidate's public repositories as profile projects.
type Scanner struct {
	BaseURL string
	Client  *http.Client
}

// NewScanner returns a scanner against the public GitHub API.
func NewScanner() *Scanner {
	return &Scanner{BaseURL: defaultGitHubAPI, Client: newHTTPClient()}
}

type githubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	HTMLURL     string `json:"html_url"`
	Fork        bool   `json:"fork"`
}

// FetchProjects lists the user's public repositories ordered by last push,
// skipping forks and repositories without a description.
func (s *Scanner) FetchProjects(ctx context.Context, username string) ([]profile.Project, error) {
	if username == "" {
		return nil, nil
	}

	url := fmt.Sprintf("%s/users/%s/repos?sort=pushed&per_page=100", s.BaseURL, username)
	req, err := newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch github repos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api status %d for user %s", resp.StatusCode, username)
	}

	var repos []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decode github response: %w", err)
	}

	projects := make([]profile.Project, 0, len(repos))
	for _, r := range repos {
		if r.Fork || r.Description == "" {
			continue
		}
		projects = append(projects, profile.Project{
			Name:        r.Name,
			Description: r.Description,
			Language:    r.Language,
			Stars:       r.Stars,
			URL:         r.HTMLURL,
		})
	}
	return projects, nil
}

// RelevantProjects keeps projects whose language appears in the job text,
// capped at five. Projects without a recorded language never match.
func RelevantProjects(projects []profile.Project, jobText string) []profile.Project {
	lower := strings.ToLower(jobText)

	out := []profile.Project{}
	for _, p := range projects {
		if p.Language == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p.Language)) {
			out = append(out, p)
			if len(out) == maxRelevantProjects {
				break
			}
		}
	}
	return out
}
