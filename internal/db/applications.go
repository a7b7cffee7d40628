package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveApplication stores the generated resume and cheat sheet for a job.
// A job has at most one package; regeneration overwrites the existing row
// but keeps its ID stable.
func (db *DB) SaveApplication(ctx context.Context, jobID, resumeTex string, cheatSheet any) (uuid.UUID, error) {
	cheatJSON, err := json.Marshal(cheatSheet)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal cheat sheet: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO application_packages (id, job_id, resume_tex, cheat_sheet)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (job_id) DO UPDATE SET
		     resume_tex = EXCLUDED.resume_tex,
		     cheat_sheet = EXCLUDED.cheat_sheet,
		     created_at = NOW()
		 RETURNING id`,
		uuid.New(), jobID, resumeTex, cheatJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save application package: %w", err)
	}
	return id, nil
}

// GetApplication retrieves the application package for a job.
// Returns (nil, nil) when none exists.
func (db *DB) GetApplication(ctx context.Context, jobID string) (*ApplicationPackage, error) {
	var pkg ApplicationPackage
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, resume_tex, cheat_sheet, created_at
		 FROM application_packages WHERE job_id = $1`,
		jobID,
	).Scan(&pkg.ID, &pkg.JobID, &pkg.ResumeTex, &pkg.CheatSheet, &pkg.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application package: %w", err)
	}
	return &pkg, nil
}
