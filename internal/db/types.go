// Package db provides PostgreSQL persistence for jobs and application packages.
package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job represents a job posting record. Enrichment fields (SkillsExtracted,
// Timezones, Seniority, RemoteFlag, Score) are derived from Description by
// the analysis package and recomputed on every ingestion pass.
type Job struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	Title           string    `json:"title"`
	Company         string    `json:"company,omitempty"`
	Description     string    `json:"description"`
	Location        string    `json:"location,omitempty"`
	Salary          string    `json:"salary,omitempty"`
	ApplyURL        string    `json:"apply_url,omitempty"`
	SkillsExtracted []string  `json:"skills_extracted"`
	Timezones       []string  `json:"timezones"`
	Seniority       string    `json:"seniority,omitempty"`
	RemoteFlag      bool      `json:"remote_flag"`
	Score           int       `json:"score"`
	GhostStatus     int       `json:"ghost_status,omitempty"`
	Valid           bool      `json:"valid"`
	FetchedAt       time.Time `json:"fetched_at,omitempty"`
}

// ApplicationPackage pairs a generated resume with its cheat sheet for one job.
// At most one package exists per job; regeneration overwrites.
type ApplicationPackage struct {
	ID         uuid.UUID       `json:"id"`
	JobID      string          `json:"job_id"`
	ResumeTex  string          `json:"resume_tex"`
	CheatSheet json.RawMessage `json:"cheat_sheet"`
	CreatedAt  time.Time       `json:"created_at"`
}
