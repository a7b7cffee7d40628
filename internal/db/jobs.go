package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UpsertJobs inserts or updates job records. Enrichment fields are always
// overwritten: they are recomputed deterministically on every ingestion pass.
func (db *DB) UpsertJobs(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, j := range jobs {
		batch.Queue(
			`INSERT INTO jobs (id, source, title, company, description, location, salary,
			                   apply_url, skills_extracted, timezones, seniority, remote_flag,
			                   score, ghost_status, valid, fetched_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13, $14, $15, NOW())
			 ON CONFLICT (id) DO UPDATE SET
			     source = EXCLUDED.source,
			     title = EXCLUDED.title,
			     company = EXCLUDED.company,
			     description = EXCLUDED.description,
			     location = EXCLUDED.location,
			     salary = EXCLUDED.salary,
			     apply_url = EXCLUDED.apply_url,
			     skills_extracted = EXCLUDED.skills_extracted,
			     timezones = EXCLUDED.timezones,
			     seniority = EXCLUDED.seniority,
			     remote_flag = EXCLUDED.remote_flag,
			     score = EXCLUDED.score,
			     ghost_status = EXCLUDED.ghost_status,
			     valid = EXCLUDED.valid,
			     fetched_at = NOW()`,
			j.ID, j.Source, j.Title, j.Company, j.Description, j.Location, j.Salary,
			j.ApplyURL, j.SkillsExtracted, j.Timezones, j.Seniority, j.RemoteFlag,
			j.Score, j.GhostStatus, j.Valid,
		)
	}

	results := db.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range jobs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert jobs: %w", err)
		}
	}
	return nil
}

const jobColumns = `id, source, title, COALESCE(company, ''), description,
	COALESCE(location, ''), COALESCE(salary, ''), COALESCE(apply_url, ''),
	skills_extracted, timezones, COALESCE(seniority, ''), remote_flag,
	score, COALESCE(ghost_status, 0), valid, fetched_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Source, &j.Title, &j.Company, &j.Description,
		&j.Location, &j.Salary, &j.ApplyURL, &j.SkillsExtracted, &j.Timezones,
		&j.Seniority, &j.RemoteFlag, &j.Score, &j.GhostStatus, &j.Valid, &j.FetchedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ListJobs retrieves jobs ordered by score descending
func (db *DB) ListJobs(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY score DESC, fetched_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// GetJob retrieves a job by its external identifier.
// Returns (nil, nil) when no such job exists.
func (db *DB) GetJob(ctx context.Context, id string) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// allowedJobUpdates lists the fields a PATCH may modify.
var allowedJobUpdates = map[string]bool{
	"title":       true,
	"company":     true,
	"location":    true,
	"salary":      true,
	"apply_url":   true,
	"seniority":   true,
	"remote_flag": true,
	"score":       true,
	"description": true,
}

// UpdateJob applies a partial update to a job. Unknown fields are ignored.
// Returns false when nothing changed (no allowed fields in the input).
func (db *DB) UpdateJob(ctx context.Context, id string, fields map[string]any) (bool, error) {
	query := `UPDATE jobs SET `
	args := []any{}
	argNum := 1

	for k, v := range fields {
		if !allowedJobUpdates[k] {
			continue
		}
		if argNum > 1 {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%d", k, argNum)
		args = append(args, v)
		argNum++
	}
	if len(args) == 0 {
		return false, nil
	}

	query += fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, id)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return false, fmt.Errorf("job not found: %s", id)
	}
	return true, nil
}
