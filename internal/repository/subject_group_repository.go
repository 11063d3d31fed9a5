package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kelaskita/timetable/internal/models"
)

// SubjectGroupRepository persists SubjectGroup bundles: alternative subjects
// that must always share a slot (spec §3).
type SubjectGroupRepository struct {
	db *sqlx.DB
}

// NewSubjectGroupRepository constructs the repository.
func NewSubjectGroupRepository(db *sqlx.DB) *SubjectGroupRepository {
	return &SubjectGroupRepository{db: db}
}

// List returns every subject group.
func (r *SubjectGroupRepository) List(ctx context.Context) ([]models.SubjectGroup, error) {
	const query = `SELECT id, name, created_at, updated_at FROM subject_groups ORDER BY name ASC`
	var groups []models.SubjectGroup
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list subject groups: %w", err)
	}
	return groups, nil
}

// FindByID returns one subject group joined with its member subjects.
func (r *SubjectGroupRepository) FindByID(ctx context.Context, id string) (*models.SubjectGroupDetail, error) {
	const groupQuery = `SELECT id, name, created_at, updated_at FROM subject_groups WHERE id = $1`
	var detail models.SubjectGroupDetail
	if err := r.db.GetContext(ctx, &detail.SubjectGroup, groupQuery, id); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM subjects WHERE subject_group_id = $1 ORDER BY id ASC`, subjectColumns)
	if err := r.db.SelectContext(ctx, &detail.Subjects, query, id); err != nil {
		return nil, fmt.Errorf("list subject group members: %w", err)
	}
	return &detail, nil
}

// Create persists a new subject group.
func (r *SubjectGroupRepository) Create(ctx context.Context, sg *models.SubjectGroup) error {
	if sg.ID == "" {
		sg.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if sg.CreatedAt.IsZero() {
		sg.CreatedAt = now
	}
	sg.UpdatedAt = now
	const query = `INSERT INTO subject_groups (id, name, created_at, updated_at) VALUES (:id, :name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sg); err != nil {
		return fmt.Errorf("create subject group: %w", err)
	}
	return nil
}

// Update modifies a subject group's name.
func (r *SubjectGroupRepository) Update(ctx context.Context, sg *models.SubjectGroup) error {
	sg.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subject_groups SET name = :name, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, sg); err != nil {
		return fmt.Errorf("update subject group: %w", err)
	}
	return nil
}

// Delete removes a subject group row. Member subjects are not touched: their
// subject_group_id is left as it is, here and in SubjectGroupService.Delete.
func (r *SubjectGroupRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subject_groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete subject group: %w", err)
	}
	return nil
}
