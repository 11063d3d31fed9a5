package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kelaskita/timetable/internal/dto"
	"github.com/kelaskita/timetable/internal/models"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type generatorCourseReader interface {
	All(ctx context.Context) ([]models.Course, error)
}

type generatorSubjectReader interface {
	All(ctx context.Context) ([]models.Subject, error)
}

type generatorSubjectGroupReader interface {
	List(ctx context.Context) ([]models.SubjectGroup, error)
}

type generatorTeacherReader interface {
	AllActive(ctx context.Context) ([]models.Teacher, error)
}

type generatorTeacherSubjectReader interface {
	All(ctx context.Context) ([]models.TeacherSubject, error)
}

type generatorTeacherPreferenceReader interface {
	All(ctx context.Context) ([]models.TeacherPreference, error)
}

type generatorWeekConfigReader interface {
	Get(ctx context.Context) (*models.WeekConfig, error)
}

type generatorTuning interface {
	SolverTuning(ctx context.Context) (timeBudgetSeconds, weightPreferred, weightTutor, nodeLimit int, err error)
}

type scheduleSolver interface {
	Solve(ctx context.Context, snap *snapshot.Snapshot, opts solver.Options) (*solver.SolveOutcome, error)
}

type scheduleWriter interface {
	Persist(ctx context.Context, snap *snapshot.Snapshot, outcome *solver.SolveOutcome, score float64) (string, error)
}

type pendingRunCache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
}

type cpsatSolver struct{}

func (cpsatSolver) Solve(ctx context.Context, snap *snapshot.Snapshot, opts solver.Options) (*solver.SolveOutcome, error) {
	return solver.Solve(ctx, snap, opts)
}

// pendingRunKey namespaces a solved-but-unpersisted outcome in cache.
func pendingRunKey(runID string) string {
	return "schedule:pending_run:" + runID
}

// pendingRun is the cached shape of a solved outcome awaiting persistence
// (spec §4.7: Solving -> idle review -> Writing).
type pendingRun struct {
	Outcome *solver.SolveOutcome `json:"outcome"`
	Raw     snapshot.RawInput    `json:"raw"`
}

// ScheduleGeneratorService orchestrates C1 (snapshot load), C4/C5 (solve) and
// C6 (persist): the full §4.5/§4.6 pipeline.
type ScheduleGeneratorService struct {
	courses       generatorCourseReader
	subjects      generatorSubjectReader
	subjectGroups generatorSubjectGroupReader
	teachers      generatorTeacherReader
	teacherLinks  generatorTeacherSubjectReader
	preferences   generatorTeacherPreferenceReader
	weekConfig    generatorWeekConfigReader
	tuning        generatorTuning
	solver        scheduleSolver
	writer        scheduleWriter
	cache         pendingRunCache
	logger        *zap.Logger
}

// NewScheduleGeneratorService builds the orchestrator.
func NewScheduleGeneratorService(
	courses generatorCourseReader,
	subjects generatorSubjectReader,
	subjectGroups generatorSubjectGroupReader,
	teachers generatorTeacherReader,
	teacherLinks generatorTeacherSubjectReader,
	preferences generatorTeacherPreferenceReader,
	weekConfig generatorWeekConfigReader,
	tuning generatorTuning,
	writer scheduleWriter,
	cache pendingRunCache,
	logger *zap.Logger,
) *ScheduleGeneratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGeneratorService{
		courses:       courses,
		subjects:      subjects,
		subjectGroups: subjectGroups,
		teachers:      teachers,
		teacherLinks:  teacherLinks,
		preferences:   preferences,
		weekConfig:    weekConfig,
		tuning:        tuning,
		solver:        cpsatSolver{},
		writer:        writer,
		cache:         cache,
		logger:        logger,
	}
}

// Solve loads the current snapshot, runs the solver under req's tuning (or
// the stored defaults), and caches the outcome under a run token for a
// later Persist call. It never writes to the schedule tables itself (spec
// §4.7: Solving is reviewable before Writing).
func (s *ScheduleGeneratorService) Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	raw, err := s.loadRawInput(ctx)
	if err != nil {
		return nil, err
	}

	snap, warnings, err := snapshot.Build(*raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "snapshot failed validation")
	}

	opts, err := s.resolveOptions(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("solve started",
		zap.Int("courses", len(snap.Courses)),
		zap.Int("teachers", len(snap.Teachers)),
		zap.Duration("time_budget", opts.TimeBudget))

	outcome, solveErr := s.solver.Solve(ctx, snap, opts)
	if solveErr != nil && outcome == nil {
		return nil, solveErr
	}

	runID := uuid.NewString()
	resp := &dto.SolveResponse{
		RunID:           runID,
		Status:          string(outcome.Status),
		SolverStatus:    string(outcome.SolverStatus),
		Score:           outcome.Score,
		AssignmentCount: len(outcome.Assignments),
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, w.Message)
	}

	if outcome.Status != solver.StatusSolved {
		s.logger.Warn("solve produced no solution", zap.String("status", string(outcome.Status)), zap.Error(solveErr))
		return resp, solveErr
	}

	cacheTTL := opts.TimeBudget + 15*time.Minute
	if err := s.cache.Set(ctx, pendingRunKey(runID), pendingRun{Outcome: outcome, Raw: *raw}, cacheTTL); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cache solved run")
	}

	s.logger.Info("solve finished",
		zap.String("run_id", runID),
		zap.String("status", resp.Status),
		zap.Float64("score", resp.Score))
	return resp, nil
}

// Persist replays the snapshot of a previously solved run and writes its
// assignments atomically (spec §4.6). The run must still be in cache: a
// stale or unknown run_id is rejected rather than silently re-solved.
func (s *ScheduleGeneratorService) Persist(ctx context.Context, runID string) (*dto.PersistResponse, error) {
	var pending pendingRun
	found, err := s.cache.Get(ctx, pendingRunKey(runID), &pending)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pending run")
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "run not found or expired, solve again")
	}

	snap, _, err := snapshot.Build(pending.Raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "cached run no longer matches a valid snapshot")
	}

	persistedID, err := s.writer.Persist(ctx, snap, pending.Outcome, pending.Outcome.Score)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule")
	}

	s.logger.Info("schedule persisted", zap.String("run_id", runID), zap.String("schedule_run_id", persistedID))
	return &dto.PersistResponse{RunID: persistedID, Persisted: true}, nil
}

func (s *ScheduleGeneratorService) resolveOptions(ctx context.Context, req dto.SolveRequest) (solver.Options, error) {
	defaults := solver.DefaultOptions()
	timeBudgetSeconds, weightPreferred, weightTutor, nodeLimit, err := s.tuning.SolverTuning(ctx)
	if err != nil {
		return solver.Options{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load solver tuning")
	}
	opts := solver.Options{
		TimeBudget: time.Duration(timeBudgetSeconds) * time.Second,
		WPreferred: weightPreferred,
		WTutor:     weightTutor,
		NodeLimit:  nodeLimit,
	}
	if opts.TimeBudget <= 0 {
		opts.TimeBudget = defaults.TimeBudget
	}

	if req.TimeBudgetSeconds > 0 {
		opts.TimeBudget = time.Duration(req.TimeBudgetSeconds) * time.Second
	}
	if req.WeightPreferred > 0 {
		opts.WPreferred = req.WeightPreferred
	}
	if req.WeightTutor > 0 {
		opts.WTutor = req.WeightTutor
	}
	if req.NodeLimit > 0 {
		opts.NodeLimit = req.NodeLimit
	}
	return opts, nil
}

// loadRawInput is C1's repository-facing half: it fans out to every
// domain repository and adapts models.* rows into the snapshot package's
// db-agnostic Raw* shapes.
func (s *ScheduleGeneratorService) loadRawInput(ctx context.Context) (*snapshot.RawInput, error) {
	cfg, err := s.weekConfig.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week configuration")
	}
	var hourNames []string
	if err := json.Unmarshal(cfg.HourNames, &hourNames); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode hour_names")
	}
	var dayIndices []int
	if err := json.Unmarshal(cfg.DayIndices, &dayIndices); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode day_indices")
	}

	courses, err := s.courses.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	subjects, err := s.subjects.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	subjectGroups, err := s.subjectGroups.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject groups")
	}
	teachers, err := s.teachers.AllActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	teacherLinks, err := s.teacherLinks.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher subject links")
	}
	preferences, err := s.preferences.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher preferences")
	}

	raw := &snapshot.RawInput{
		ClassesPerDay: cfg.ClassesPerDay,
		DaysPerWeek:   cfg.DaysPerWeek,
		HourNames:     hourNames,
		DayIndices:    dayIndices,
	}
	for _, c := range courses {
		raw.Courses = append(raw.Courses, snapshot.RawCourse{ID: c.ID, Name: c.Name, NumLines: c.NumLines})
	}
	for _, sub := range subjects {
		rs := snapshot.RawSubject{
			ID:             sub.ID,
			Name:           sub.Name,
			CourseID:       sub.CourseID,
			WeeklyHours:    sub.WeeklyHours,
			MaxHoursPerDay: sub.MaxHoursPerDay,
			TeachEveryDay:  sub.TeachEveryDay,
		}
		consecutive := sub.ConsecutiveHours
		rs.ConsecutiveHours = &consecutive
		if sub.LinkedSubjectID != nil {
			rs.LinkedSubjectID = *sub.LinkedSubjectID
		}
		if sub.SubjectGroupID != nil {
			rs.SubjectGroupID = *sub.SubjectGroupID
		}
		raw.Subjects = append(raw.Subjects, rs)
	}
	for _, sg := range subjectGroups {
		raw.SubjectGroups = append(raw.SubjectGroups, snapshot.RawSubjectGroup{ID: sg.ID, Name: sg.Name})
	}
	for _, t := range teachers {
		rt := snapshot.RawTeacher{ID: t.ID, Name: t.Name, MaxHoursWeek: t.MaxHoursWeek}
		if t.TutorGroup != nil {
			rt.TutorGroup = *t.TutorGroup
		}
		raw.Teachers = append(raw.Teachers, rt)
	}
	for _, ts := range teacherLinks {
		raw.TeacherSubjects = append(raw.TeacherSubjects, snapshot.RawTeacherSubject{TeacherID: ts.TeacherID, SubjectID: ts.SubjectID})
	}
	for _, pref := range preferences {
		raw.TeacherPreferences = append(raw.TeacherPreferences, snapshot.RawTeacherPreference{
			TeacherID:       pref.TeacherID,
			DayIndex:        pref.DayIndex,
			UnavailableJSON: []byte(pref.Unavailable),
			PreferredJSON:   []byte(pref.Preferred),
		})
	}
	return raw, nil
}
