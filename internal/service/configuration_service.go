package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kelaskita/timetable/internal/dto"
	"github.com/kelaskita/timetable/internal/models"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type configurationRepository interface {
	ListByKeys(ctx context.Context, keys []string) ([]models.Configuration, error)
	Get(ctx context.Context, key string) (*models.Configuration, error)
	Upsert(ctx context.Context, cfg *models.Configuration) error
	BulkUpsert(ctx context.Context, cfgs []models.Configuration) error
}

type allowedConfiguration struct {
	Key         string
	Type        models.ConfigurationType
	Description string
}

// allowedConfigurationKeys holds the solver tuning knobs an operator can
// override without a redeploy (spec §7's Options, plus display metadata).
var allowedConfigurationKeys = []string{
	"solver_time_budget_seconds",
	"solver_weight_preferred",
	"solver_weight_tutor",
	"solver_node_limit",
	"school_display_name",
}

var allowedConfigurations = map[string]allowedConfiguration{
	"solver_time_budget_seconds": {
		Key:         "solver_time_budget_seconds",
		Type:        models.ConfigurationTypeString,
		Description: "Wall-clock budget, in seconds, granted to one solve",
	},
	"solver_weight_preferred": {
		Key:         "solver_weight_preferred",
		Type:        models.ConfigurationTypeString,
		Description: "Objective weight for satisfying a teacher's preferred hour",
	},
	"solver_weight_tutor": {
		Key:         "solver_weight_tutor",
		Type:        models.ConfigurationTypeString,
		Description: "Objective weight for placing a tutor's mandatory slot on time",
	},
	"solver_node_limit": {
		Key:         "solver_node_limit",
		Type:        models.ConfigurationTypeString,
		Description: "Branch-and-bound node budget for one solve",
	},
	"school_display_name": {
		Key:         "school_display_name",
		Type:        models.ConfigurationTypeString,
		Description: "Display name for the school shown in headers",
	},
}

var builtinConfigurationDefaults = map[string]string{
	"solver_time_budget_seconds": "60",
	"solver_weight_preferred":    "1",
	"solver_weight_tutor":        "100",
	"solver_node_limit":          "0",
}

// ConfigurationServiceConfig tunes runtime behaviour.
type ConfigurationServiceConfig struct {
	Defaults map[string]string
}

// ConfigurationService orchestrates CRUD workflow for configuration entries.
type ConfigurationService struct {
	repo      configurationRepository
	validator *validator.Validate
	logger    *zap.Logger
	defaults  map[string]string
}

// NewConfigurationService constructs a ConfigurationService.
func NewConfigurationService(repo configurationRepository, validate *validator.Validate, logger *zap.Logger, cfg ConfigurationServiceConfig) *ConfigurationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := make(map[string]string, len(builtinConfigurationDefaults))
	for key, value := range builtinConfigurationDefaults {
		defaults[key] = value
	}
	for key, value := range cfg.Defaults {
		if value == "" {
			continue
		}
		defaults[key] = value
	}
	return &ConfigurationService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		defaults:  defaults,
	}
}

// List returns configuration items scoped to allowed keys.
func (s *ConfigurationService) List(ctx context.Context) ([]dto.ConfigurationItem, error) {
	keys := allowedKeys()
	rows, err := s.repo.ListByKeys(ctx, keys)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list configurations")
	}
	existing := make(map[string]models.Configuration, len(rows))
	for _, row := range rows {
		existing[row.Key] = row
	}

	items := make([]dto.ConfigurationItem, 0, len(keys))
	for _, key := range keys {
		meta := allowedConfigurations[key]
		item := dto.ConfigurationItem{
			Key:         key,
			Type:        string(meta.Type),
			Description: meta.Description,
		}
		if row, ok := existing[key]; ok {
			item.Value = row.Value
			if row.Description != nil && *row.Description != "" {
				item.Description = *row.Description
			}
		} else if def, ok := s.defaultValue(key); ok {
			item.Value = def
		}
		items = append(items, item)
	}
	return items, nil
}

// Get retrieves a single configuration.
func (s *ConfigurationService) Get(ctx context.Context, key string) (*dto.ConfigurationItem, error) {
	meta, err := s.requireAllowedKey(key)
	if err != nil {
		return nil, err
	}
	cfg, err := s.repo.Get(ctx, key)
	if err != nil {
		if err == sql.ErrNoRows {
			if def, ok := s.defaultValue(key); ok {
				return &dto.ConfigurationItem{
					Key:         key,
					Value:       def,
					Type:        string(meta.Type),
					Description: meta.Description,
				}, nil
			}
			return nil, appErrors.Clone(appErrors.ErrNotFound, "configuration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get configuration")
	}
	description := meta.Description
	if cfg.Description != nil && *cfg.Description != "" {
		description = *cfg.Description
	}
	return &dto.ConfigurationItem{
		Key:         cfg.Key,
		Value:       cfg.Value,
		Type:        string(cfg.Type),
		Description: description,
	}, nil
}

// Update upserts a configuration entry.
func (s *ConfigurationService) Update(ctx context.Context, key string, value string) (*dto.ConfigurationItem, error) {
	meta, err := s.requireAllowedKey(key)
	if err != nil {
		return nil, err
	}
	value, err = s.validateValue(meta, value)
	if err != nil {
		return nil, err
	}

	prev, err := s.repo.Get(ctx, key)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch configuration")
	}
	if prev != nil && prev.Type != meta.Type {
		return nil, appErrors.Clone(appErrors.ErrValidation, "configuration type mismatch")
	}

	cfg := &models.Configuration{
		Key:         key,
		Value:       value,
		Type:        meta.Type,
		Description: strPtr(meta.Description),
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update configuration")
	}

	return &dto.ConfigurationItem{
		Key:         key,
		Value:       value,
		Type:        string(meta.Type),
		Description: meta.Description,
	}, nil
}

// BulkUpdate applies multiple updates transactionally.
func (s *ConfigurationService) BulkUpdate(ctx context.Context, req dto.BulkUpdateConfigurationRequest) ([]dto.ConfigurationItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk payload")
	}

	keys := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		keys = append(keys, item.Key)
	}
	existing, err := s.repo.ListByKeys(ctx, keys)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing configurations")
	}
	existingMap := make(map[string]models.Configuration, len(existing))
	for _, cfg := range existing {
		existingMap[cfg.Key] = cfg
	}

	toUpsert := make([]models.Configuration, 0, len(req.Items))
	for _, item := range req.Items {
		meta, err := s.requireAllowedKey(item.Key)
		if err != nil {
			return nil, err
		}
		normalizedValue, err := s.validateValue(meta, item.Value)
		if err != nil {
			return nil, err
		}
		if prev, ok := existingMap[item.Key]; ok && prev.Type != meta.Type {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("configuration type mismatch for %s", item.Key))
		}
		toUpsert = append(toUpsert, models.Configuration{
			Key:         item.Key,
			Value:       normalizedValue,
			Type:        meta.Type,
			Description: strPtr(meta.Description),
		})
	}

	if err := s.repo.BulkUpsert(ctx, toUpsert); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to bulk update configurations")
	}

	result := make([]dto.ConfigurationItem, 0, len(toUpsert))
	for _, cfg := range toUpsert {
		result = append(result, dto.ConfigurationItem{
			Key:         cfg.Key,
			Value:       cfg.Value,
			Type:        string(cfg.Type),
			Description: allowedConfigurations[cfg.Key].Description,
		})
	}
	return result, nil
}

// SolverTuning resolves the active solver.Options overrides, falling back to
// the built-in defaults for anything never configured.
func (s *ConfigurationService) SolverTuning(ctx context.Context) (timeBudgetSeconds, weightPreferred, weightTutor, nodeLimit int, err error) {
	timeBudgetSeconds, err = s.intValue(ctx, "solver_time_budget_seconds")
	if err != nil {
		return
	}
	weightPreferred, err = s.intValue(ctx, "solver_weight_preferred")
	if err != nil {
		return
	}
	weightTutor, err = s.intValue(ctx, "solver_weight_tutor")
	if err != nil {
		return
	}
	nodeLimit, err = s.intValue(ctx, "solver_node_limit")
	return
}

func (s *ConfigurationService) intValue(ctx context.Context, key string) (int, error) {
	value, err := s.getValueOrDefault(ctx, key)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("%s is not an integer", key))
	}
	return parsed, nil
}

func (s *ConfigurationService) requireAllowedKey(key string) (allowedConfiguration, error) {
	meta, ok := allowedConfigurations[key]
	if !ok {
		return allowedConfiguration{}, appErrors.Clone(appErrors.ErrValidation, "unsupported configuration key")
	}
	return meta, nil
}

func (s *ConfigurationService) validateValue(meta allowedConfiguration, value string) (string, error) {
	switch meta.Type {
	case models.ConfigurationTypeBoolean:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true":
			return "true", nil
		case "false":
			return "false", nil
		default:
			return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s expects boolean value", meta.Key))
		}
	case models.ConfigurationTypeString:
		return strings.TrimSpace(value), nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unsupported configuration type")
	}
}

func allowedKeys() []string {
	keys := make([]string, len(allowedConfigurationKeys))
	copy(keys, allowedConfigurationKeys)
	return keys
}

func strPtr(value string) *string {
	if value == "" {
		return nil
	}
	result := value
	return &result
}

func (s *ConfigurationService) defaultValue(key string) (string, bool) {
	if s.defaults == nil {
		return "", false
	}
	value, ok := s.defaults[key]
	return value, ok
}

func (s *ConfigurationService) getValueOrDefault(ctx context.Context, key string) (string, error) {
	cfg, err := s.repo.Get(ctx, key)
	if err != nil {
		if err == sql.ErrNoRows {
			if def, ok := s.defaultValue(key); ok {
				return def, nil
			}
			return "", nil
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get configuration")
	}
	return cfg.Value, nil
}
