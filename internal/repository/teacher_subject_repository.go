package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kelaskita/timetable/internal/models"
)

// TeacherSubjectRepository persists the teacher-subject eligibility join:
// which subjects a teacher is qualified to teach (spec §3, "t.subjects").
type TeacherSubjectRepository struct {
	db *sqlx.DB
}

// NewTeacherSubjectRepository constructs the repository.
func NewTeacherSubjectRepository(db *sqlx.DB) *TeacherSubjectRepository {
	return &TeacherSubjectRepository{db: db}
}

// ListByTeacher returns the eligibility rows owned by teacher, joined with
// subject and course names for display.
func (r *TeacherSubjectRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSubjectDetail, error) {
	const query = `
SELECT ts.id, ts.teacher_id, ts.subject_id, ts.created_at,
       s.name AS subject_name, s.course_id AS course_id, tr.name AS teacher_name
FROM teacher_subjects ts
JOIN subjects s ON s.id = ts.subject_id
JOIN teachers tr ON tr.id = ts.teacher_id
WHERE ts.teacher_id = $1
ORDER BY s.name ASC`
	var rows []models.TeacherSubjectDetail
	if err := r.db.SelectContext(ctx, &rows, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher subjects: %w", err)
	}
	return rows, nil
}

// All returns every eligibility row, used by the snapshot loader.
func (r *TeacherSubjectRepository) All(ctx context.Context) ([]models.TeacherSubject, error) {
	const query = `SELECT id, teacher_id, subject_id, created_at FROM teacher_subjects ORDER BY teacher_id ASC`
	var rows []models.TeacherSubject
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list all teacher subjects: %w", err)
	}
	return rows, nil
}

// Exists checks if the teacher-subject pair already exists.
func (r *TeacherSubjectRepository) Exists(ctx context.Context, teacherID, subjectID string) (bool, error) {
	const query = `SELECT 1 FROM teacher_subjects WHERE teacher_id = $1 AND subject_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, teacherID, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher subject: %w", err)
	}
	return true, nil
}

// Create inserts a new eligibility row.
func (r *TeacherSubjectRepository) Create(ctx context.Context, ts *models.TeacherSubject) error {
	if ts.ID == "" {
		ts.ID = uuid.NewString()
	}
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO teacher_subjects (id, teacher_id, subject_id, created_at) VALUES (:id, :teacher_id, :subject_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, ts); err != nil {
		return fmt.Errorf("create teacher subject: %w", err)
	}
	return nil
}

// Delete removes an eligibility row, verifying ownership.
func (r *TeacherSubjectRepository) Delete(ctx context.Context, teacherID, id string) error {
	const query = `DELETE FROM teacher_subjects WHERE id = $1 AND teacher_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, teacherID)
	if err != nil {
		return fmt.Errorf("delete teacher subject: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted teacher subject rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
