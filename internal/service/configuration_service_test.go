package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelaskita/timetable/internal/dto"
	"github.com/kelaskita/timetable/internal/models"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type configurationRepoStub struct {
	items map[string]models.Configuration
	err   error
}

func (s *configurationRepoStub) ListByKeys(ctx context.Context, keys []string) ([]models.Configuration, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := []models.Configuration{}
	for _, key := range keys {
		if cfg, ok := s.items[key]; ok {
			result = append(result, cfg)
		}
	}
	return result, nil
}

func (s *configurationRepoStub) Get(ctx context.Context, key string) (*models.Configuration, error) {
	if s.err != nil {
		return nil, s.err
	}
	if cfg, ok := s.items[key]; ok {
		return &cfg, nil
	}
	return nil, sql.ErrNoRows
}

func (s *configurationRepoStub) Upsert(ctx context.Context, cfg *models.Configuration) error {
	if s.err != nil {
		return s.err
	}
	if s.items == nil {
		s.items = make(map[string]models.Configuration)
	}
	s.items[cfg.Key] = *cfg
	return nil
}

func (s *configurationRepoStub) BulkUpsert(ctx context.Context, cfgs []models.Configuration) error {
	if s.err != nil {
		return s.err
	}
	if s.items == nil {
		s.items = make(map[string]models.Configuration)
	}
	for _, cfg := range cfgs {
		s.items[cfg.Key] = cfg
	}
	return nil
}

func TestConfigurationServiceUpdateString(t *testing.T) {
	repo := &configurationRepoStub{}
	service := NewConfigurationService(repo, validator.New(), nil, ConfigurationServiceConfig{})
	item, err := service.Update(context.Background(), "school_display_name", "  Parkside Academy  ")
	require.NoError(t, err)
	assert.Equal(t, "Parkside Academy", item.Value)
	assert.Equal(t, "STRING", item.Type)
}

func TestConfigurationServiceUpdateInvalidKey(t *testing.T) {
	service := NewConfigurationService(&configurationRepoStub{}, validator.New(), nil, ConfigurationServiceConfig{})
	_, err := service.Update(context.Background(), "unknown_key", "abc")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestConfigurationServiceBulkUpdateRejectsUnknownKey(t *testing.T) {
	repo := &configurationRepoStub{}
	service := NewConfigurationService(repo, validator.New(), nil, ConfigurationServiceConfig{})
	req := dto.BulkUpdateConfigurationRequest{
		Items: []dto.UpdateConfigurationRequest{
			{Key: "solver_weight_preferred", Value: "2"},
			{Key: "unknown", Value: "value"},
		},
	}
	_, err := service.BulkUpdate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.items, 0)
}

func TestConfigurationServiceListFiltersKeys(t *testing.T) {
	repo := &configurationRepoStub{
		items: map[string]models.Configuration{
			"solver_weight_preferred": {Key: "solver_weight_preferred", Value: "5", Type: models.ConfigurationTypeString},
			"other_key":               {Key: "other_key", Value: "secret", Type: models.ConfigurationTypeString},
		},
	}
	service := NewConfigurationService(repo, validator.New(), nil, ConfigurationServiceConfig{})
	items, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, len(allowedConfigurationKeys))
	found := false
	for _, item := range items {
		if item.Key == "other_key" {
			t.Fatalf("unexpected key returned: %s", item.Key)
		}
		if item.Key == "solver_weight_preferred" {
			found = true
			assert.Equal(t, "5", item.Value)
		}
	}
	assert.True(t, found, "expected solver_weight_preferred to be present")
}

func TestConfigurationServiceUpdateHandlesRepoError(t *testing.T) {
	repo := &configurationRepoStub{err: errors.New("db down")}
	service := NewConfigurationService(repo, validator.New(), nil, ConfigurationServiceConfig{})
	_, err := service.Update(context.Background(), "school_display_name", "SMA ADP")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestConfigurationServiceGetUsesDefaults(t *testing.T) {
	service := NewConfigurationService(
		&configurationRepoStub{},
		validator.New(),
		nil,
		ConfigurationServiceConfig{
			Defaults: map[string]string{"school_display_name": "SMA ADP"},
		},
	)

	item, err := service.Get(context.Background(), "school_display_name")
	require.NoError(t, err)
	assert.Equal(t, "SMA ADP", item.Value)
}

func TestConfigurationServiceSolverTuningFallsBackToDefaults(t *testing.T) {
	service := NewConfigurationService(
		&configurationRepoStub{},
		validator.New(),
		nil,
		ConfigurationServiceConfig{},
	)
	timeBudget, weightPreferred, weightTutor, nodeLimit, err := service.SolverTuning(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 60, timeBudget)
	assert.Equal(t, 1, weightPreferred)
	assert.Equal(t, 100, weightTutor)
	assert.Equal(t, 0, nodeLimit)
}
