package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kelaskita/timetable/internal/models"
)

type prefRepoMock struct {
	stored   map[string]*models.TeacherPreference
	listErr  error
	deleted  []string
}

func prefKey(teacherID string, day int) string {
	return teacherID + "#" + string(rune('0'+day))
}

func (m *prefRepoMock) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherPreference, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.TeacherPreference
	for _, p := range m.stored {
		if p.TeacherID == teacherID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *prefRepoMock) Upsert(ctx context.Context, pref *models.TeacherPreference) error {
	if m.stored == nil {
		m.stored = make(map[string]*models.TeacherPreference)
	}
	cp := *pref
	m.stored[prefKey(pref.TeacherID, pref.DayIndex)] = &cp
	return nil
}

func (m *prefRepoMock) DeleteByTeacherDay(ctx context.Context, teacherID string, dayIndex int) error {
	m.deleted = append(m.deleted, prefKey(teacherID, dayIndex))
	delete(m.stored, prefKey(teacherID, dayIndex))
	return nil
}

func TestTeacherPreferenceServiceList(t *testing.T) {
	teacherRepo := &mockTeacherRepo{
		items: map[string]*models.Teacher{"teacher-1": {ID: "teacher-1", Active: true}},
	}
	repo := &prefRepoMock{}
	service := NewTeacherPreferenceService(teacherRepo, repo, validator.New(), zap.NewNop())

	prefs, err := service.List(context.Background(), "teacher-1")
	require.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestTeacherPreferenceServiceUpsert(t *testing.T) {
	teacherRepo := &mockTeacherRepo{
		items: map[string]*models.Teacher{"teacher-1": {ID: "teacher-1", Active: true}},
	}
	repo := &prefRepoMock{}
	service := NewTeacherPreferenceService(teacherRepo, repo, validator.New(), zap.NewNop())

	result, err := service.Upsert(context.Background(), "teacher-1", UpsertTeacherPreferenceRequest{
		DayIndex:    1,
		Unavailable: []int{0, 1},
		Preferred:   []int{5},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.DayIndex)
	assert.NotEqual(t, types.JSONText("[]"), result.Unavailable)
	assert.Len(t, repo.stored, 1)
}

func TestTeacherPreferenceServiceUpsertRejectsOverlap(t *testing.T) {
	teacherRepo := &mockTeacherRepo{
		items: map[string]*models.Teacher{"teacher-1": {ID: "teacher-1", Active: true}},
	}
	repo := &prefRepoMock{}
	service := NewTeacherPreferenceService(teacherRepo, repo, validator.New(), zap.NewNop())

	_, err := service.Upsert(context.Background(), "teacher-1", UpsertTeacherPreferenceRequest{
		DayIndex:    1,
		Unavailable: []int{2},
		Preferred:   []int{2},
	})
	require.Error(t, err)
}
