package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/kelaskita/timetable/internal/models"
)

// TimeslotRepository persists Timeslot rows: one per valid (group, day,
// hour) cell regardless of occupancy (spec §3, §4.6).
type TimeslotRepository struct {
	db *sqlx.DB
}

// NewTimeslotRepository constructs the repository.
func NewTimeslotRepository(db *sqlx.DB) *TimeslotRepository {
	return &TimeslotRepository{db: db}
}

func (r *TimeslotRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// DeleteAll removes every timeslot row, used by the solution writer's
// atomic replace (spec §4.6 step 1). Must run inside a transaction that
// also deletes assignments first.
func (r *TimeslotRepository) DeleteAll(ctx context.Context, exec sqlx.ExtContext) error {
	if _, err := r.exec(exec).ExecContext(ctx, `DELETE FROM timeslots`); err != nil {
		return fmt.Errorf("delete timeslots: %w", err)
	}
	return nil
}

// InsertBatch inserts every Timeslot row of a fresh solve and returns them
// with their assigned ids, in the same order as the input.
func (r *TimeslotRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, rows []models.Timeslot) ([]models.Timeslot, error) {
	target := r.exec(exec)
	out := make([]models.Timeslot, len(rows))
	for i, row := range rows {
		const query = `INSERT INTO timeslots (course_id, line, day, hour, subject_group_id)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := sqlx.GetContext(ctx, target, &row.ID, query, row.CourseID, row.Line, row.Day, row.Hour, row.SubjectGroupID); err != nil {
			return nil, fmt.Errorf("insert timeslot: %w", err)
		}
		out[i] = row
	}
	return out, nil
}

// ListByFilter returns the schedule's timeslot+assignment join for reads.
func (r *TimeslotRepository) ListByFilter(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, int, error) {
	base := `FROM timeslots t
JOIN assignments a ON a.timeslot_id = t.id
JOIN subjects s ON s.id = a.subject_id
LEFT JOIN teachers tr ON tr.id = a.teacher_id
WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("t.course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.Line != nil {
		conditions = append(conditions, fmt.Sprintf("t.line = $%d", len(args)+1))
		args = append(args, *filter.Line)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("a.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.Day != nil {
		conditions = append(conditions, fmt.Sprintf("t.day = $%d", len(args)+1))
		args = append(args, *filter.Day)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT t.id AS timeslot_id, t.course_id, t.line, t.day, t.hour,
		a.subject_id, s.name AS subject_name, a.teacher_id, tr.name AS teacher_name
		%s ORDER BY t.day ASC, t.hour ASC LIMIT %d OFFSET %d`, base, size, offset)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedule entries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedule entries: %w", err)
	}
	return entries, total, nil
}
