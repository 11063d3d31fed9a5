package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kelaskita/timetable/internal/models"
)

// AssignmentRepository persists Assignment rows: one per decision variable
// set to 1 in a winning solve (spec §3, §4.6 step 3).
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// DeleteAll removes every assignment row. Must run first in the solution
// writer's atomic replace, before timeslots are deleted, so no assignment
// ever dangles on a deleted timeslot (spec §4.6 step 1).
func (r *AssignmentRepository) DeleteAll(ctx context.Context, exec sqlx.ExtContext) error {
	if _, err := r.exec(exec).ExecContext(ctx, `DELETE FROM assignments`); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}
	return nil
}

// InsertBatch inserts every Assignment row produced by a solve.
func (r *AssignmentRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, rows []models.Assignment) error {
	target := r.exec(exec)
	const query = `INSERT INTO assignments (timeslot_id, subject_id, teacher_id) VALUES ($1, $2, $3)`
	for _, row := range rows {
		if _, err := target.ExecContext(ctx, query, row.TimeslotID, row.SubjectID, row.TeacherID); err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}
	return nil
}
