package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/hiring-portal/internal/types"
)

// SaveApplication stores a submitted candidate. Saving the same id twice
// keeps the first submission.
func (db *DB) SaveApplication(ctx context.Context, c types.Candidate) error {
	applied, err := time.Parse(time.DateOnly, c.AppliedDate)
	if err != nil {
		return fmt.Errorf("invalid applied date %q: %w", c.AppliedDate, err)
	}
	fieldsJSON, err := json.Marshal(c.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal fields: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO applications (id, job_id, fields, applied_date)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		c.ID, c.JobID, fieldsJSON, applied,
	)
	if err != nil {
		return fmt.Errorf("failed to save application %s: %w", c.ID, err)
	}
	return nil
}

// GetApplication retrieves an application by id. It returns nil when absent.
func (db *DB) GetApplication(ctx context.Context, id string) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, job_id, fields, applied_date, created_at
		 FROM applications WHERE id = $1`,
		id,
	)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListApplicationsByJob returns the applications of a job, oldest first.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID string) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, fields, applied_date, created_at
		 FROM applications WHERE job_id = $1 ORDER BY created_at, id`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return apps, nil
}

// CountApplicationsByJob returns the number of archived applications per job.
func (db *DB) CountApplicationsByJob(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx, `SELECT job_id, COUNT(*) FROM applications GROUP BY job_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var jobID string
		var n int
		if err := rows.Scan(&jobID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[jobID] = n
	}
	return counts, rows.Err()
}

func scanApplication(row pgx.Row) (*Application, error) {
	var app Application
	var fieldsJSON []byte
	if err := row.Scan(&app.ID, &app.JobID, &fieldsJSON, &app.AppliedDate, &app.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fieldsJSON, &app.Fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fields: %w", err)
	}
	return &app, nil
}
