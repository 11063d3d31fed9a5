package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kelaskita/timetable/internal/models"
)

// TeacherPreferenceRepository persists per-day teacher preferences: a hard
// "unavailable" hour set and a soft "preferred" hour set (spec §3).
type TeacherPreferenceRepository struct {
	db *sqlx.DB
}

// NewTeacherPreferenceRepository constructs the repository.
func NewTeacherPreferenceRepository(db *sqlx.DB) *TeacherPreferenceRepository {
	return &TeacherPreferenceRepository{db: db}
}

// ListByTeacher returns every stored per-day preference row for a teacher.
func (r *TeacherPreferenceRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherPreference, error) {
	const query = `SELECT id, teacher_id, day_index, unavailable, preferred, created_at, updated_at
		FROM teacher_preferences WHERE teacher_id = $1 ORDER BY day_index ASC`
	var prefs []models.TeacherPreference
	if err := r.db.SelectContext(ctx, &prefs, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher preferences: %w", err)
	}
	return prefs, nil
}

// All returns every preference row, used by the snapshot loader.
func (r *TeacherPreferenceRepository) All(ctx context.Context) ([]models.TeacherPreference, error) {
	const query = `SELECT id, teacher_id, day_index, unavailable, preferred, created_at, updated_at
		FROM teacher_preferences ORDER BY teacher_id ASC, day_index ASC`
	var prefs []models.TeacherPreference
	if err := r.db.SelectContext(ctx, &prefs, query); err != nil {
		return nil, fmt.Errorf("list all teacher preferences: %w", err)
	}
	return prefs, nil
}

// Upsert creates or replaces the preference row for (teacher, day).
func (r *TeacherPreferenceRepository) Upsert(ctx context.Context, pref *models.TeacherPreference) error {
	if pref.ID == "" {
		pref.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now
	if len(pref.Unavailable) == 0 {
		pref.Unavailable = []byte("[]")
	}
	if len(pref.Preferred) == 0 {
		pref.Preferred = []byte("[]")
	}

	const query = `INSERT INTO teacher_preferences (id, teacher_id, day_index, unavailable, preferred, created_at, updated_at)
		VALUES (:id, :teacher_id, :day_index, :unavailable, :preferred, :created_at, :updated_at)
		ON CONFLICT (teacher_id, day_index) DO UPDATE
		SET unavailable = EXCLUDED.unavailable,
		    preferred = EXCLUDED.preferred,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, pref); err != nil {
		return fmt.Errorf("upsert teacher preference: %w", err)
	}
	return nil
}

// DeleteByTeacherDay removes the preference row for (teacher, day), if any.
func (r *TeacherPreferenceRepository) DeleteByTeacherDay(ctx context.Context, teacherID string, dayIndex int) error {
	const query = `DELETE FROM teacher_preferences WHERE teacher_id = $1 AND day_index = $2`
	if _, err := r.db.ExecContext(ctx, query, teacherID, dayIndex); err != nil {
		return fmt.Errorf("delete teacher preference: %w", err)
	}
	return nil
}
