package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/kelaskita/timetable/internal/models"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type teacherPreferenceRepo interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherPreference, error)
	Upsert(ctx context.Context, pref *models.TeacherPreference) error
	DeleteByTeacherDay(ctx context.Context, teacherID string, dayIndex int) error
}

// UpsertTeacherPreferenceRequest captures the payload to store one day's
// unavailable/preferred hour sets for a teacher (spec §3). An hour must not
// appear in both sets; the snapshot loader keeps such a row but drops the
// overlapping hours from its preferred set, while the API rejects it up front.
type UpsertTeacherPreferenceRequest struct {
	DayIndex    int   `json:"day_index" validate:"min=0"`
	Unavailable []int `json:"unavailable"`
	Preferred   []int `json:"preferred"`
}

// TeacherPreferenceService handles per-day teacher preference workflows.
type TeacherPreferenceService struct {
	teachers  teacherRepository
	repo      teacherPreferenceRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherPreferenceService builds the service.
func NewTeacherPreferenceService(teachers teacherRepository, repo teacherPreferenceRepo, validate *validator.Validate, logger *zap.Logger) *TeacherPreferenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherPreferenceService{
		teachers:  teachers,
		repo:      repo,
		validator: validate,
		logger:    logger,
	}
}

// List returns every stored per-day preference row for a teacher.
func (s *TeacherPreferenceService) List(ctx context.Context, teacherID string) ([]models.TeacherPreference, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	prefs, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher preferences")
	}
	return prefs, nil
}

// Upsert stores one day's preferences for a teacher.
func (s *TeacherPreferenceService) Upsert(ctx context.Context, teacherID string, req UpsertTeacherPreferenceRequest) (*models.TeacherPreference, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preference payload")
	}
	if err := disjoint(req.Unavailable, req.Preferred); err != nil {
		return nil, err
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	unavailable, err := marshalHours(req.Unavailable)
	if err != nil {
		return nil, err
	}
	preferred, err := marshalHours(req.Preferred)
	if err != nil {
		return nil, err
	}

	pref := &models.TeacherPreference{
		TeacherID:   teacherID,
		DayIndex:    req.DayIndex,
		Unavailable: unavailable,
		Preferred:   preferred,
	}
	if err := s.repo.Upsert(ctx, pref); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to upsert teacher preference")
	}
	return pref, nil
}

// Delete removes a teacher's preference row for one day.
func (s *TeacherPreferenceService) Delete(ctx context.Context, teacherID string, dayIndex int) error {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if err := s.repo.DeleteByTeacherDay(ctx, teacherID, dayIndex); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher preference")
	}
	return nil
}

func disjoint(a, b []int) error {
	seen := make(map[int]bool, len(a))
	for _, h := range a {
		seen[h] = true
	}
	for _, h := range b {
		if seen[h] {
			return appErrors.Clone(appErrors.ErrValidation, "an hour cannot be both unavailable and preferred")
		}
	}
	return nil
}

func marshalHours(hours []int) (types.JSONText, error) {
	if len(hours) == 0 {
		return types.JSONText("[]"), nil
	}
	bytes, err := json.Marshal(hours)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hour list")
	}
	return types.JSONText(bytes), nil
}
