package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/llm"
	"github.com/jonathan/resume-genie/internal/pipeline"
	"github.com/jonathan/resume-genie/internal/profile"
)

// fakeStore is an in-memory JobStore for handler tests.
type fakeStore struct {
	jobs    []db.Job
	pkg     *db.ApplicationPackage
	listErr error
	updated map[string]map[string]any
}

func (f *fakeStore) ListJobs(_ context.Context, limit int) ([]db.Job, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > 0 && len(f.jobs) > limit {
		return f.jobs[:limit], nil
	}
	return f.jobs, nil
}

func (f *fakeStore) GetJob(_ context.Context, id string) (*db.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateJob(_ context.Context, id string, fields map[string]any) (bool, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			if f.updated == nil {
				f.updated = map[string]map[string]any{}
			}
			f.updated[id] = fields
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetApplication(_ context.Context, jobID string) (*db.ApplicationPackage, error) {
	if f.pkg != nil && f.pkg.JobID == jobID {
		return f.pkg, nil
	}
	return nil, nil
}

// fakeRunner is a scripted pipeline Runner.
type fakeRunner struct {
	ingested    chan struct{}
	generateRes *pipeline.GenerationResult
	generateErr error
}

func (f *fakeRunner) Ingest(_ context.Context) (*pipeline.IngestReport, error) {
	if f.ingested != nil {
		close(f.ingested)
	}
	return &pipeline.IngestReport{Fetched: 1, Kept: 1}, nil
}

func (f *fakeRunner) Generate(_ context.Context, jobID string) (*pipeline.GenerationResult, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	if f.generateRes != nil {
		return f.generateRes, nil
	}
	return &pipeline.GenerationResult{JobID: jobID, PackageID: uuid.New(), OutputID: "x"}, nil
}

func newTestServer(t *testing.T, store *fakeStore, runner *fakeRunner) *httptest.Server {
	t.Helper()
	s := New(Config{
		Port:      0,
		Store:     store,
		Runner:    runner,
		Profiles:  profile.NewStore(filepath.Join(t.TempDir(), "master_profile.json")),
		Provider:  llm.Disabled{},
		OutputDir: t.TempDir(),
	})
	srv := httptest.NewServer(s.httpServer.Handler)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeRunner{})

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestHandleLLMHealth_Disabled(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeRunner{})

	var body map[string]any
	status := getJSON(t, srv.URL+"/health/llm", &body)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, "disabled", body["provider"])
}

func TestHandleListJobs(t *testing.T) {
	store := &fakeStore{jobs: []db.Job{{ID: "j1", Title: "A"}, {ID: "j2", Title: "B"}}}
	srv := newTestServer(t, store, &fakeRunner{})

	var body struct {
		Jobs  []db.Job `json:"jobs"`
		Count int      `json:"count"`
	}
	status := getJSON(t, srv.URL+"/jobs", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Jobs, 2)
}

func TestHandleListJobs_Limit(t *testing.T) {
	store := &fakeStore{jobs: []db.Job{{ID: "j1"}, {ID: "j2"}}}
	srv := newTestServer(t, store, &fakeRunner{})

	var body struct {
		Count int `json:"count"`
	}
	status := getJSON(t, srv.URL+"/jobs?limit=1", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Count)

	status = getJSON(t, srv.URL+"/jobs?limit=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandleGetJob(t *testing.T) {
	store := &fakeStore{jobs: []db.Job{{ID: "j1", Title: "A"}}}
	srv := newTestServer(t, store, &fakeRunner{})

	var job db.Job
	status := getJSON(t, srv.URL+"/jobs/j1", &job)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "A", job.Title)

	status = getJSON(t, srv.URL+"/jobs/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandleUpdateJob(t *testing.T) {
	store := &fakeStore{jobs: []db.Job{{ID: "j1"}}}
	srv := newTestServer(t, store, &fakeRunner{})

	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/jobs/j1", `{"title":"New Title","remote_flag":true}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, store.updated, "j1")
	assert.Equal(t, "New Title", store.updated["j1"]["title"])
	assert.Equal(t, true, store.updated["j1"]["remote_flag"])
}

func TestHandleUpdateJob_Validation(t *testing.T) {
	store := &fakeStore{jobs: []db.Job{{ID: "j1"}}}
	srv := newTestServer(t, store, &fakeRunner{})

	resp, body := doJSON(t, http.MethodPatch, srv.URL+"/jobs/j1", `{"seniority":"architect"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Validation failed")

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/jobs/j1", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/jobs/missing", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleGetPackage(t *testing.T) {
	store := &fakeStore{
		jobs: []db.Job{{ID: "j1"}},
		pkg:  &db.ApplicationPackage{ID: uuid.New(), JobID: "j1", ResumeTex: "doc"},
	}
	srv := newTestServer(t, store, &fakeRunner{})

	var pkg db.ApplicationPackage
	status := getJSON(t, srv.URL+"/jobs/j1/package", &pkg)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "doc", pkg.ResumeTex)

	status = getJSON(t, srv.URL+"/jobs/j2/package", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandleExportJobs(t *testing.T) {
	store := &fakeStore{jobs: []db.Job{
		{ID: "j1", Title: "Engineer", SkillsExtracted: []string{"go", "aws"}, RemoteFlag: true, Score: 4},
	}}
	srv := newTestServer(t, store, &fakeRunner{})

	resp, err := http.Get(srv.URL + "/export_jobs")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "id,source,title")
	assert.Contains(t, lines[1], "go;aws")
	assert.Contains(t, lines[1], "true")
}

func TestHandleIngest_RunsInBackground(t *testing.T) {
	runner := &fakeRunner{ingested: make(chan struct{})}
	srv := newTestServer(t, &fakeStore{}, runner)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/ingest", "")

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Contains(t, body, "started")
	<-runner.ingested
}

func TestHandleGenerate(t *testing.T) {
	runner := &fakeRunner{generateRes: &pipeline.GenerationResult{
		JobID:    "j1",
		OutputID: "j1",
		Document: `\documentclass{article}`,
		PDFPath:  "out/resume_j1.pdf",
	}}
	srv := newTestServer(t, &fakeStore{}, runner)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/generate/j1", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"job_id":"j1"`)
	assert.Contains(t, body, `"tex_url":"/static/resume_j1.tex"`)
	assert.Contains(t, body, `"pdf_url":"/static/resume_j1.pdf"`)
	assert.Contains(t, body, `\\documentclass`)
}

func TestHandleGenerate_NotFound(t *testing.T) {
	runner := &fakeRunner{generateErr: &pipeline.JobNotFoundError{ID: "nope"}}
	srv := newTestServer(t, &fakeStore{}, runner)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/generate/nope", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "not found")
}

func TestHandleGenerate_InternalError(t *testing.T) {
	runner := &fakeRunner{generateErr: errors.New("backend exploded")}
	srv := newTestServer(t, &fakeStore{}, runner)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/generate/j1", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestProfileRoundTrip(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeRunner{})

	// Missing profile loads as empty
	var empty profile.Profile
	status := getJSON(t, srv.URL+"/profile", &empty)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, empty.Name)

	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/profile", `{"name":"Ada","email":"ada@example.com","skills":["python"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved profile.Profile
	status = getJSON(t, srv.URL+"/profile", &saved)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada", saved.Name)
}

func TestHandlePutProfile_Invalid(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeRunner{})

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/profile", `{"experience":[{"company":"Acme"}]}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Profile validation failed")
}

func TestHandlePutProfile_UnknownField(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, &fakeRunner{})

	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/profile", `{"nickname":"ada"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
