package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/breadcrumb/foodseed/internal/models"
)

// runTimeLayout is fixed-width so timestamps sort correctly as text.
const runTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunRepository records generator invocations.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new generation run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a generation run.
func (r *RunRepository) Create(ctx context.Context, tx *sql.Tx, run *models.GenerationRun) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}

	var ex execer = r.db
	if tx != nil {
		ex = tx
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO generation_runs (
			id, data_path, seed, requested, generated, adjusted,
			first_id, last_id, dry_run, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.DataPath,
		run.Seed,
		run.Requested,
		run.Generated,
		run.Adjusted,
		run.FirstID,
		run.LastID,
		run.DryRun,
		run.StartedAt.UTC().Format(runTimeLayout),
		run.FinishedAt.UTC().Format(runTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting generation run: %w", err)
	}

	return nil
}

// Latest returns the most recently started run.
func (r *RunRepository) Latest(ctx context.Context) (*models.GenerationRun, error) {
	runs, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("generation run: %w", ErrNotFound)
	}
	return runs[0], nil
}

// List returns up to limit runs, newest first.
func (r *RunRepository) List(ctx context.Context, limit int) ([]*models.GenerationRun, error) {
	if limit < 1 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, data_path, seed, requested, generated, adjusted,
			first_id, last_id, dry_run, started_at, finished_at
		FROM generation_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying generation runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.GenerationRun
	for rows.Next() {
		var (
			run                models.GenerationRun
			started, finished string
		)
		if err := rows.Scan(
			&run.ID, &run.DataPath, &run.Seed, &run.Requested, &run.Generated, &run.Adjusted,
			&run.FirstID, &run.LastID, &run.DryRun, &started, &finished,
		); err != nil {
			return nil, fmt.Errorf("scanning generation run: %w", err)
		}
		if run.StartedAt, err = time.Parse(runTimeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(runTimeLayout, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generation runs: %w", err)
	}

	return runs, nil
}
