package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kelaskita/timetable/internal/dto"
	"github.com/kelaskita/timetable/internal/models"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type fakeCourseReader struct{ rows []models.Course }

func (f fakeCourseReader) All(ctx context.Context) ([]models.Course, error) { return f.rows, nil }

type fakeSubjectReader struct{ rows []models.Subject }

func (f fakeSubjectReader) All(ctx context.Context) ([]models.Subject, error) { return f.rows, nil }

type fakeSubjectGroupReader struct{ rows []models.SubjectGroup }

func (f fakeSubjectGroupReader) List(ctx context.Context) ([]models.SubjectGroup, error) {
	return f.rows, nil
}

type fakeTeacherReader struct{ rows []models.Teacher }

func (f fakeTeacherReader) AllActive(ctx context.Context) ([]models.Teacher, error) {
	return f.rows, nil
}

type fakeTeacherSubjectReader struct{ rows []models.TeacherSubject }

func (f fakeTeacherSubjectReader) All(ctx context.Context) ([]models.TeacherSubject, error) {
	return f.rows, nil
}

type fakeTeacherPreferenceReader struct{ rows []models.TeacherPreference }

func (f fakeTeacherPreferenceReader) All(ctx context.Context) ([]models.TeacherPreference, error) {
	return f.rows, nil
}

type fakeWeekConfigReader struct{ cfg *models.WeekConfig }

func (f fakeWeekConfigReader) Get(ctx context.Context) (*models.WeekConfig, error) {
	return f.cfg, nil
}

type fakeTuning struct {
	timeBudgetSeconds, weightPreferred, weightTutor, nodeLimit int
	err                                                        error
}

func (f fakeTuning) SolverTuning(ctx context.Context) (int, int, int, int, error) {
	return f.timeBudgetSeconds, f.weightPreferred, f.weightTutor, f.nodeLimit, f.err
}

type fakeSolver struct {
	outcome *solver.SolveOutcome
	err     error
	capture func(opts solver.Options)
}

func (f fakeSolver) Solve(ctx context.Context, snap *snapshot.Snapshot, opts solver.Options) (*solver.SolveOutcome, error) {
	if f.capture != nil {
		f.capture(opts)
	}
	return f.outcome, f.err
}

type fakeWriter struct {
	runID string
	err   error
}

func (f fakeWriter) Persist(ctx context.Context, snap *snapshot.Snapshot, outcome *solver.SolveOutcome, score float64) (string, error) {
	return f.runID, f.err
}

type fakeCache struct {
	store map[string]interface{}
}

func newFakeCache() *fakeCache { return &fakeCache{store: make(map[string]interface{})} }

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.store[key] = value
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *pendingRun:
		*d = v.(pendingRun)
	default:
		return false, nil
	}
	return true, nil
}

func minimalWeekConfig() *models.WeekConfig {
	return &models.WeekConfig{
		ID:            "default",
		ClassesPerDay: 2,
		DaysPerWeek:   1,
		HourNames:     types.JSONText(`["1st","2nd"]`),
		DayIndices:    types.JSONText(`[1]`),
	}
}

func newGeneratorFixture(t *testing.T, sv scheduleSolver, w scheduleWriter, tuning generatorTuning) (*ScheduleGeneratorService, *fakeCache) {
	t.Helper()
	cache := newFakeCache()
	svc := NewScheduleGeneratorService(
		fakeCourseReader{rows: []models.Course{{ID: "c1", Name: "Course", NumLines: 1}}},
		fakeSubjectReader{rows: []models.Subject{{ID: "s1", Name: "Math", CourseID: "c1", WeeklyHours: 1, MaxHoursPerDay: 2}}},
		fakeSubjectGroupReader{},
		fakeTeacherReader{rows: []models.Teacher{{ID: "t1", Name: "Teacher", MaxHoursWeek: 10}}},
		fakeTeacherSubjectReader{rows: []models.TeacherSubject{{TeacherID: "t1", SubjectID: "s1"}}},
		fakeTeacherPreferenceReader{},
		fakeWeekConfigReader{cfg: minimalWeekConfig()},
		tuning,
		w,
		cache,
		zap.NewNop(),
	)
	svc.solver = sv
	return svc, cache
}

func TestScheduleGeneratorServiceSolveCachesOutcome(t *testing.T) {
	outcome := &solver.SolveOutcome{
		Status:       solver.StatusSolved,
		SolverStatus: "OPTIMAL",
		Score:        42,
		Assignments:  []solver.Assignment{{Group: "c1-A", Subject: "s1", Teacher: "t1", Day: 0, Hour: 0}},
	}
	svc, cache := newGeneratorFixture(t, fakeSolver{outcome: outcome}, fakeWriter{}, fakeTuning{timeBudgetSeconds: 30})

	resp, err := svc.Solve(context.Background(), dto.SolveRequest{})
	require.NoError(t, err)
	assert.Equal(t, "SOLVED", resp.Status)
	assert.Equal(t, 42.0, resp.Score)
	assert.Equal(t, 1, resp.AssignmentCount)
	assert.NotEmpty(t, resp.RunID)
	assert.Len(t, cache.store, 1)
}

func TestScheduleGeneratorServiceSolveRespectsOverrides(t *testing.T) {
	var captured solver.Options
	sv := fakeSolver{
		outcome: &solver.SolveOutcome{Status: solver.StatusSolved, SolverStatus: "OPTIMAL"},
		capture: func(opts solver.Options) { captured = opts },
	}
	svc, _ := newGeneratorFixture(t, sv, fakeWriter{}, fakeTuning{timeBudgetSeconds: 30, weightPreferred: 1, weightTutor: 100})

	_, err := svc.Solve(context.Background(), dto.SolveRequest{TimeBudgetSeconds: 90, WeightTutor: 500})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, captured.TimeBudget)
	assert.Equal(t, 500, captured.WTutor)
	assert.Equal(t, 1, captured.WPreferred)
}

func TestScheduleGeneratorServiceSolveNoSolutionDoesNotCache(t *testing.T) {
	sv := fakeSolver{
		outcome: &solver.SolveOutcome{Status: solver.StatusNoSolution, SolverStatus: "INFEASIBLE"},
		err:     appErrors.ErrUnsatisfiable,
	}
	svc, cache := newGeneratorFixture(t, sv, fakeWriter{}, fakeTuning{timeBudgetSeconds: 30})

	resp, err := svc.Solve(context.Background(), dto.SolveRequest{})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "NO_SOLUTION", resp.Status)
	assert.Empty(t, cache.store)
}

func TestScheduleGeneratorServicePersistUnknownRun(t *testing.T) {
	svc, _ := newGeneratorFixture(t, fakeSolver{}, fakeWriter{}, fakeTuning{timeBudgetSeconds: 30})

	_, err := svc.Persist(context.Background(), "does-not-exist")
	require.Error(t, err)
}

func TestScheduleGeneratorServicePersistWritesCachedRun(t *testing.T) {
	outcome := &solver.SolveOutcome{
		Status:       solver.StatusSolved,
		SolverStatus: "OPTIMAL",
		Score:        7,
		Assignments:  []solver.Assignment{{Group: "c1-A", Subject: "s1", Teacher: "t1", Day: 0, Hour: 0}},
	}
	svc, _ := newGeneratorFixture(t, fakeSolver{outcome: outcome}, fakeWriter{runID: "run-xyz"}, fakeTuning{timeBudgetSeconds: 30})

	solveResp, err := svc.Solve(context.Background(), dto.SolveRequest{})
	require.NoError(t, err)

	persistResp, err := svc.Persist(context.Background(), solveResp.RunID)
	require.NoError(t, err)
	assert.Equal(t, "run-xyz", persistResp.RunID)
	assert.True(t, persistResp.Persisted)
}
