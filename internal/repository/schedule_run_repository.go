package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/kelaskita/timetable/internal/models"
)

// ScheduleRunRepository persists one audit row per solve invocation (C5's
// status plus whether the result was ever persisted by C6).
type ScheduleRunRepository struct {
	db *sqlx.DB
}

// NewScheduleRunRepository constructs the repository.
func NewScheduleRunRepository(db *sqlx.DB) *ScheduleRunRepository {
	return &ScheduleRunRepository{db: db}
}

func (r *ScheduleRunRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateVersioned inserts a run record assigning the next global version.
func (r *ScheduleRunRepository) CreateVersioned(ctx context.Context, exec sqlx.ExtContext, run *models.ScheduleRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if len(run.Meta) == 0 {
		run.Meta = types.JSONText(`{}`)
	}
	now := time.Now().UTC()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now

	target := r.exec(exec)

	const nextVersionQuery = `SELECT COALESCE(MAX(version), 0) + 1 FROM schedule_runs`
	if err := sqlx.GetContext(ctx, target, &run.Version, nextVersionQuery); err != nil {
		return fmt.Errorf("compute next schedule run version: %w", err)
	}

	const insertQuery = `
INSERT INTO schedule_runs (id, version, status, score, persisted, meta, created_at, updated_at)
VALUES (:id, :version, :status, :score, :persisted, :meta, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, target, insertQuery, run); err != nil {
		return fmt.Errorf("insert schedule run: %w", err)
	}
	return nil
}

// MarkPersisted flips a run's persisted flag once C6 has committed its
// write.
func (r *ScheduleRunRepository) MarkPersisted(ctx context.Context, exec sqlx.ExtContext, id string) error {
	target := r.exec(exec)
	const query = `UPDATE schedule_runs SET persisted = TRUE, updated_at = $2 WHERE id = $1`
	if _, err := target.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark schedule run persisted: %w", err)
	}
	return nil
}

// List returns every solve run, most recent first.
func (r *ScheduleRunRepository) List(ctx context.Context) ([]models.ScheduleRun, error) {
	const query = `SELECT id, version, status, score, persisted, meta, created_at, updated_at
		FROM schedule_runs ORDER BY version DESC`
	var runs []models.ScheduleRun
	if err := r.db.SelectContext(ctx, &runs, query); err != nil {
		return nil, fmt.Errorf("list schedule runs: %w", err)
	}
	return runs, nil
}

// FindByID loads a run by its identifier.
func (r *ScheduleRunRepository) FindByID(ctx context.Context, id string) (*models.ScheduleRun, error) {
	const query = `SELECT id, version, status, score, persisted, meta, created_at, updated_at FROM schedule_runs WHERE id = $1`
	var run models.ScheduleRun
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// Delete removes a stored run.
func (r *ScheduleRunRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedule_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule run rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
