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

type weekConfigRepository interface {
	Get(ctx context.Context) (*models.WeekConfig, error)
	Upsert(ctx context.Context, cfg *models.WeekConfig) error
}

// UpsertWeekConfigRequest replaces the single active week shape (spec §3's
// Config): how many hours a day, how many days a week, and their display
// names/weekday indices.
type UpsertWeekConfigRequest struct {
	ClassesPerDay int    `json:"classes_per_day" validate:"required,min=1,max=20"`
	DaysPerWeek   int    `json:"days_per_week" validate:"required,min=1,max=7"`
	HourNames     []string `json:"hour_names" validate:"required,min=1"`
	DayIndices    []int  `json:"day_indices" validate:"required,min=1"`
}

// WeekConfigService manages the single active Config row the snapshot
// loader reads at solve time.
type WeekConfigService struct {
	repo      weekConfigRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWeekConfigService constructs a WeekConfigService.
func NewWeekConfigService(repo weekConfigRepository, validate *validator.Validate, logger *zap.Logger) *WeekConfigService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeekConfigService{repo: repo, validator: validate, logger: logger}
}

// Get returns the active week configuration.
func (s *WeekConfigService) Get(ctx context.Context) (*models.WeekConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "week configuration not set")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week configuration")
	}
	return cfg, nil
}

// Upsert replaces the active week configuration. Hour names and weekday
// indices must agree in length with classes_per_day/days_per_week, since
// the snapshot loader maps them positionally at solve time (spec §7).
func (s *WeekConfigService) Upsert(ctx context.Context, req UpsertWeekConfigRequest) (*models.WeekConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid week configuration payload")
	}
	if len(req.HourNames) != req.ClassesPerDay {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hour_names must have classes_per_day entries")
	}
	if len(req.DayIndices) != req.DaysPerWeek {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day_indices must have days_per_week entries")
	}

	hourNames, err := json.Marshal(req.HourNames)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hour_names")
	}
	dayIndices, err := json.Marshal(req.DayIndices)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day_indices")
	}

	cfg := &models.WeekConfig{
		ClassesPerDay: req.ClassesPerDay,
		DaysPerWeek:   req.DaysPerWeek,
		HourNames:     types.JSONText(hourNames),
		DayIndices:    types.JSONText(dayIndices),
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save week configuration")
	}
	return cfg, nil
}
