package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-genie/internal/llm"
	"github.com/jonathan/resume-genie/internal/pipeline"
	"github.com/jonathan/resume-genie/internal/profile"
)

// defaultListLimit bounds GET /jobs when no limit is given.
const defaultListLimit = 50

// ingestTimeout bounds a background ingestion triggered over HTTP.
const ingestTimeout = 5 * time.Minute

var validate = validator.New()

// UpdateJobRequest represents the request body for PATCH /jobs/{id}.
// Pointer fields distinguish "not sent" from zero values.
type UpdateJobRequest struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Location    *string `json:"location,omitempty"`
	Salary      *string `json:"salary,omitempty"`
	ApplyURL    *string `json:"apply_url,omitempty" validate:"omitempty,url"`
	Seniority   *string `json:"seniority,omitempty" validate:"omitempty,oneof=junior mid senior lead principal"`
	RemoteFlag  *bool   `json:"remote_flag,omitempty"`
	Score       *int    `json:"score,omitempty" validate:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
}

// fields flattens the set fields into the column map the store expects.
func (r *UpdateJobRequest) fields() map[string]any {
	out := map[string]any{}
	set := func(col string, v any) { out[col] = v }
	if r.Title != nil {
		set("title", *r.Title)
	}
	if r.Company != nil {
		set("company", *r.Company)
	}
	if r.Location != nil {
		set("location", *r.Location)
	}
	if r.Salary != nil {
		set("salary", *r.Salary)
	}
	if r.ApplyURL != nil {
		set("apply_url", *r.ApplyURL)
	}
	if r.Seniority != nil {
		set("seniority", *r.Seniority)
	}
	if r.RemoteFlag != nil {
		set("remote_flag", *r.RemoteFlag)
	}
	if r.Score != nil {
		set("score", *r.Score)
	}
	if r.Description != nil {
		set("description", *r.Description)
	}
	return out
}

// handleHealth reports process liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLLMHealth probes the text generation backend with a trivial prompt
func (s *Server) handleLLMHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	name := "disabled"
	if s.provider != nil {
		name = s.provider.Name()
	}

	_, ok := llm.SafeGenerate(ctx, s.provider, "Reply with the single word: ok", llm.Options{MaxTokens: 10})
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	s.jsonResponse(w, status, map[string]any{"provider": name, "available": ok})
}

// handleListJobs returns stored jobs ordered by score
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	jobs, err := s.store.ListJobs(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// handleGetJob returns a single job by id
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob applies a partial update to a stored job
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "No updatable fields in request")
		return
	}

	updated, err := s.store.UpdateJob(r.Context(), r.PathValue("id"), fields)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !updated {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleGetPackage returns the stored application package for a job
func (s *Server) handleGetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.store.GetApplication(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if pkg == nil {
		s.errorResponse(w, http.StatusNotFound, "No application package for job")
		return
	}
	s.jsonResponse(w, http.StatusOK, pkg)
}

// exportListLimit is effectively "everything" for a personal job store.
const exportListLimit = 10000

// handleExportJobs streams all stored jobs as CSV
func (s *Server) handleExportJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context(), exportListLimit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="jobs.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "source", "title", "company", "location", "salary", "apply_url", "skills", "seniority", "remote", "score", "ghost_status"})
	for _, j := range jobs {
		_ = cw.Write([]string{
			j.ID, j.Source, j.Title, j.Company, j.Location, j.Salary, j.ApplyURL,
			strings.Join(j.SkillsExtracted, ";"), j.Seniority,
			strconv.FormatBool(j.RemoteFlag), strconv.Itoa(j.Score), strconv.Itoa(j.GhostStatus),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
}

// handleIngest kicks off an ingestion pass in the background
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
		defer cancel()
		report, err := s.runner.Ingest(ctx)
		if err != nil {
			log.Printf("Background ingestion failed: %v", err)
			return
		}
		log.Printf("Background ingestion done: fetched=%d kept=%d", report.Fetched, report.Kept)
	}()

	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "started"})
}

// previewChars bounds the document preview embedded in generate responses.
const previewChars = 500

// GenerateResponse represents the response for POST /generate/{id}.
type GenerateResponse struct {
	PackageID string `json:"package_id"`
	JobID     string `json:"job_id"`
	OutputID  string `json:"output_id"`
	Preview   string `json:"preview"`
	TexURL    string `json:"tex_url"`
	PDFURL    string `json:"pdf_url,omitempty"`
	Generated bool   `json:"generated"`
	Compiled  bool   `json:"compiled"`
}

// handleGenerate builds the application package for one job
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	res, err := s.runner.Generate(r.Context(), r.PathValue("id"))
	if err != nil {
		var notFound *pipeline.JobNotFoundError
		if errors.As(err, &notFound) {
			s.errorResponse(w, http.StatusNotFound, notFound.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Generation failed: "+err.Error())
		return
	}

	preview := res.Document
	if len(preview) > previewChars {
		preview = preview[:previewChars]
	}

	out := GenerateResponse{
		PackageID: res.PackageID.String(),
		JobID:     res.JobID,
		OutputID:  res.OutputID,
		Preview:   preview,
		TexURL:    "/static/resume_" + res.OutputID + ".tex",
		Generated: res.Generated,
		Compiled:  res.Compiled,
	}
	if res.PDFPath != "" {
		out.PDFURL = "/static/resume_" + res.OutputID + ".pdf"
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleGetProfile returns the candidate master profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load profile: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handlePutProfile replaces the candidate master profile
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.profiles.Save(&p); err != nil {
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Profile validation failed: %s", strings.Join(verr.Problems, "; ")))
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save profile: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}
