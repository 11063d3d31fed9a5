package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kelaskita/timetable/internal/models"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type scheduleQueryRepository interface {
	ListByFilter(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, int, error)
}

// ScheduleQueryService answers read-side questions about the persisted
// schedule (spec §4.6 step 3, §5 read paths).
type ScheduleQueryService struct {
	repo   scheduleQueryRepository
	logger *zap.Logger
}

// NewScheduleQueryService builds the service.
func NewScheduleQueryService(repo scheduleQueryRepository, logger *zap.Logger) *ScheduleQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleQueryService{repo: repo, logger: logger}
}

// List returns the schedule's timeslot+assignment entries matching filter.
func (s *ScheduleQueryService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, *models.Pagination, error) {
	entries, total, err := s.repo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule entries")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return entries, pagination, nil
}

// ListByGroup returns every entry for one group (course+line), across all days.
func (s *ScheduleQueryService) ListByGroup(ctx context.Context, courseID string, line int) ([]models.ScheduleEntry, error) {
	filter := models.ScheduleFilter{CourseID: courseID, Line: &line, PageSize: 200}
	entries, _, err := s.repo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list group schedule")
	}
	return entries, nil
}

// ListByTeacher returns every entry assigned to one teacher, across all days.
func (s *ScheduleQueryService) ListByTeacher(ctx context.Context, teacherID string) ([]models.ScheduleEntry, error) {
	filter := models.ScheduleFilter{TeacherID: teacherID, PageSize: 200}
	entries, _, err := s.repo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher schedule")
	}
	return entries, nil
}
