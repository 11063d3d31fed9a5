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

type subjectGroupRepository interface {
	List(ctx context.Context) ([]models.SubjectGroup, error)
	FindByID(ctx context.Context, id string) (*models.SubjectGroupDetail, error)
	Create(ctx context.Context, sg *models.SubjectGroup) error
	Update(ctx context.Context, sg *models.SubjectGroup) error
	Delete(ctx context.Context, id string) error
}

// CreateSubjectGroupRequest names a new bundle of alternative subjects.
type CreateSubjectGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateSubjectGroupRequest renames an existing bundle.
type UpdateSubjectGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// SubjectGroupService manages the bundles of alternative subjects that must
// always land on the same slot (spec §3's SubjectGroup).
type SubjectGroupService struct {
	repo      subjectGroupRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectGroupService constructs a SubjectGroupService.
func NewSubjectGroupService(repo subjectGroupRepository, validate *validator.Validate, logger *zap.Logger) *SubjectGroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectGroupService{repo: repo, validator: validate, logger: logger}
}

// List returns every subject group.
func (s *SubjectGroupService) List(ctx context.Context) ([]models.SubjectGroup, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject groups")
	}
	return groups, nil
}

// Get returns one subject group with its member subjects resolved.
func (s *SubjectGroupService) Get(ctx context.Context, id string) (*models.SubjectGroupDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject group")
	}
	return detail, nil
}

// Create adds a new subject group.
func (s *SubjectGroupService) Create(ctx context.Context, req CreateSubjectGroupRequest) (*models.SubjectGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject group payload")
	}
	group := &models.SubjectGroup{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject group")
	}
	return group, nil
}

// Update renames an existing subject group.
func (s *SubjectGroupService) Update(ctx context.Context, id string, req UpdateSubjectGroupRequest) (*models.SubjectGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject group payload")
	}
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject group")
	}
	detail.SubjectGroup.Name = strings.TrimSpace(req.Name)
	if err := s.repo.Update(ctx, &detail.SubjectGroup); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject group")
	}
	return &detail.SubjectGroup, nil
}

// Delete removes a subject group. The snapshot loader treats any subject
// still pointing at a deleted group's id as a validation failure, so callers
// are expected to have cleared members first (spec §7's Build step rejects
// dangling SubjectGroup references rather than this layer enforcing it).
func (s *SubjectGroupService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "subject group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject group")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject group")
	}
	return nil
}
