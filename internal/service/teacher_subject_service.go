package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kelaskita/timetable/internal/models"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type teacherSubjectRepo interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSubjectDetail, error)
	Exists(ctx context.Context, teacherID, subjectID string) (bool, error)
	Create(ctx context.Context, ts *models.TeacherSubject) error
	Delete(ctx context.Context, teacherID, id string) error
}

type teacherSubjectReader interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

// CreateTeacherSubjectRequest grants a teacher eligibility to teach a
// subject (spec §3, "t.subjects").
type CreateTeacherSubjectRequest struct {
	SubjectID string `json:"subject_id" validate:"required"`
}

// TeacherSubjectService manages the teacher-subject eligibility relation.
type TeacherSubjectService struct {
	teachers  teacherRepository
	subjects  teacherSubjectReader
	repo      teacherSubjectRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherSubjectService builds the service.
func NewTeacherSubjectService(teachers teacherRepository, subjects teacherSubjectReader, repo teacherSubjectRepo, validate *validator.Validate, logger *zap.Logger) *TeacherSubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherSubjectService{
		teachers:  teachers,
		subjects:  subjects,
		repo:      repo,
		validator: validate,
		logger:    logger,
	}
}

// ListByTeacher returns every subject a teacher is eligible to teach.
func (s *TeacherSubjectService) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSubjectDetail, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	rows, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher subjects")
	}
	return rows, nil
}

// Grant links a teacher to a subject, rejecting a duplicate pair.
func (s *TeacherSubjectService) Grant(ctx context.Context, teacherID string, req CreateTeacherSubjectRequest) (*models.TeacherSubject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher subject payload")
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	exists, err := s.repo.Exists(ctx, teacherID, req.SubjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher subject")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "teacher already eligible for this subject")
	}

	ts := &models.TeacherSubject{TeacherID: teacherID, SubjectID: req.SubjectID}
	if err := s.repo.Create(ctx, ts); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher subject")
	}
	return ts, nil
}

// Revoke removes a teacher's eligibility row.
func (s *TeacherSubjectService) Revoke(ctx context.Context, teacherID, id string) error {
	if err := s.repo.Delete(ctx, teacherID, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher subject link not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher subject")
	}
	return nil
}
