package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kelaskita/timetable/internal/models"
)

// weekConfigSingletonID is the single row id week_configs is expected to
// ever hold: the solver schedules against one week shape at a time (spec
// §3's Config has no natural key of its own).
const weekConfigSingletonID = "default"

// WeekConfigRepository persists the single active Config row (spec §3):
// classes_per_day, days_per_week, hour_names, day_indices.
type WeekConfigRepository struct {
	db *sqlx.DB
}

// NewWeekConfigRepository constructs the repository.
func NewWeekConfigRepository(db *sqlx.DB) *WeekConfigRepository {
	return &WeekConfigRepository{db: db}
}

// Get returns the active week configuration.
func (r *WeekConfigRepository) Get(ctx context.Context) (*models.WeekConfig, error) {
	const query = `SELECT id, classes_per_day, days_per_week, hour_names, day_indices, created_at, updated_at
		FROM week_configs WHERE id = $1`
	var cfg models.WeekConfig
	if err := r.db.GetContext(ctx, &cfg, query, weekConfigSingletonID); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Upsert replaces the active week configuration.
func (r *WeekConfigRepository) Upsert(ctx context.Context, cfg *models.WeekConfig) error {
	cfg.ID = weekConfigSingletonID
	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	const query = `INSERT INTO week_configs (id, classes_per_day, days_per_week, hour_names, day_indices, created_at, updated_at)
		VALUES (:id, :classes_per_day, :days_per_week, :hour_names, :day_indices, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE
		SET classes_per_day = EXCLUDED.classes_per_day,
		    days_per_week = EXCLUDED.days_per_week,
		    hour_names = EXCLUDED.hour_names,
		    day_indices = EXCLUDED.day_indices,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, cfg); err != nil {
		return fmt.Errorf("upsert week config: %w", err)
	}
	return nil
}
