package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Run is one recorded check run.
type Run struct {
	ID          string     `json:"id"`
	Standard    string     `json:"standard"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Files       int        `json:"files"`
	Errors      int        `json:"errors"`
	Warnings    int        `json:"warnings"`
	Cached      int        `json:"cached"`
}

// RunTotals are the counts recorded when a run completes.
type RunTotals struct {
	Files    int
	Errors   int
	Warnings int
	Cached   int
}

// generateID creates a new run id.
func generateID() string {
	return uuid.New().String()
}

// CreateRun records the start of a run.
func (s *Store) CreateRun(ctx context.Context, standard string) (*Run, error) {
	run := &Run{
		ID:        generateID(),
		Standard:  standard,
		StartedAt: time.Now().UTC(),
	}

	s.logger.Debug("creating run", zap.String("id", run.ID), zap.String("standard", standard))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, standard, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Standard, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun stores the totals of a finished run.
func (s *Store) CompleteRun(ctx context.Context, id string, totals RunTotals) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET completed_at = ?, files = ?, errors = ?, warnings = ?, cached = ? WHERE id = ?`,
		time.Now().UTC(), totals.Files, totals.Errors, totals.Warnings, totals.Cached, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// GetRun retrieves a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	var completedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT id, standard, started_at, completed_at, files, errors, warnings, cached FROM runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.Standard, &run.StartedAt, &completedAt, &run.Files, &run.Errors, &run.Warnings, &run.Cached)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return run, nil
}

// LatestRun returns the most recently started run, or nil when none is recorded.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest run: %w", err)
	}
	return s.GetRun(ctx, id)
}
