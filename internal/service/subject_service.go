package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kelaskita/timetable/internal/models"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
	CountTeacherLinks(ctx context.Context, id string) (int, error)
}

// CreateSubjectRequest captures fields for creating subjects (spec §3's
// Subject type).
type CreateSubjectRequest struct {
	Name             string  `json:"name" validate:"required"`
	CourseID         string  `json:"course_id" validate:"required"`
	WeeklyHours      int     `json:"weekly_hours" validate:"required,min=1,max=40"`
	MaxHoursPerDay   int     `json:"max_hours_per_day" validate:"required,min=1,max=40"`
	ConsecutiveHours bool    `json:"consecutive_hours"`
	TeachEveryDay    bool    `json:"teach_every_day"`
	LinkedSubjectID  *string `json:"linked_subject_id"`
	SubjectGroupID   *string `json:"subject_group_id"`
}

// UpdateSubjectRequest modifies subject fields.
type UpdateSubjectRequest struct {
	Name             string  `json:"name" validate:"required"`
	WeeklyHours      int     `json:"weekly_hours" validate:"required,min=1,max=40"`
	MaxHoursPerDay   int     `json:"max_hours_per_day" validate:"required,min=1,max=40"`
	ConsecutiveHours bool    `json:"consecutive_hours"`
	TeachEveryDay    bool    `json:"teach_every_day"`
	LinkedSubjectID  *string `json:"linked_subject_id"`
	SubjectGroupID   *string `json:"subject_group_id"`
}

// SubjectService handles subject domain workflows.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger}
}

// List returns paginated subjects.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	subjects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return subjects, pagination, nil
}

// Get returns subject by identifier.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Create adds a new subject.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if err := s.validateLink(ctx, req.LinkedSubjectID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:             strings.TrimSpace(req.Name),
		CourseID:         req.CourseID,
		WeeklyHours:      req.WeeklyHours,
		MaxHoursPerDay:   req.MaxHoursPerDay,
		ConsecutiveHours: req.ConsecutiveHours,
		TeachEveryDay:    req.TeachEveryDay,
		LinkedSubjectID:  req.LinkedSubjectID,
		SubjectGroupID:   req.SubjectGroupID,
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// Update modifies an existing subject.
func (s *SubjectService) Update(ctx context.Context, id string, req UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if err := s.validateLink(ctx, req.LinkedSubjectID); err != nil {
		return nil, err
	}

	subject.Name = strings.TrimSpace(req.Name)
	subject.WeeklyHours = req.WeeklyHours
	subject.MaxHoursPerDay = req.MaxHoursPerDay
	subject.ConsecutiveHours = req.ConsecutiveHours
	subject.TeachEveryDay = req.TeachEveryDay
	subject.LinkedSubjectID = req.LinkedSubjectID
	subject.SubjectGroupID = req.SubjectGroupID

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	return subject, nil
}

// Delete removes a subject when no teacher is still linked to it.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	count, err := s.repo.CountTeacherLinks(ctx, subject.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject dependencies")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "subject still has eligible teachers")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}

func (s *SubjectService) validateLink(ctx context.Context, linkedID *string) error {
	if linkedID == nil || *linkedID == "" {
		return nil
	}
	exists, err := s.repo.ExistsByID(ctx, *linkedID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check linked subject")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrValidation, "linked_subject_id does not reference an existing subject")
	}
	return nil
}
