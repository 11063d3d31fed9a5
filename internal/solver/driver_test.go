package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

func trivialSnapshot(t *testing.T) *snapshot.Snapshot {
	snap, warnings, err := snapshot.Build(snapshot.RawInput{
		ClassesPerDay: 1,
		DaysPerWeek:   1,
		DayIndices:    []int{0},
		Courses:       []snapshot.RawCourse{{ID: "c1", Name: "1st", NumLines: 1}},
		Subjects: []snapshot.RawSubject{
			{ID: "s1", Name: "Math", CourseID: "c1", WeeklyHours: 1, MaxHoursPerDay: 1},
		},
		Teachers:        []snapshot.RawTeacher{{ID: "t1", Name: "Alice", MaxHoursWeek: 10}},
		TeacherSubjects: []snapshot.RawTeacherSubject{{TeacherID: "t1", SubjectID: "s1"}},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	return snap
}

func TestSolveTrivialSnapshotIsSolved(t *testing.T) {
	snap := trivialSnapshot(t)
	outcome, err := Solve(context.Background(), snap, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, StatusSolved, outcome.Status)
	require.Len(t, outcome.Assignments, 1)
	a := outcome.Assignments[0]
	assert.Equal(t, "c1-A", a.Group)
	assert.Equal(t, "s1", a.Subject)
	assert.Equal(t, "t1", a.Teacher)
}

func TestSolveInfeasibleWhenWeeklyHoursExceedCapacity(t *testing.T) {
	snap, warnings, err := snapshot.Build(snapshot.RawInput{
		ClassesPerDay: 1,
		DaysPerWeek:   1,
		DayIndices:    []int{0},
		Courses:       []snapshot.RawCourse{{ID: "c1", Name: "1st", NumLines: 1}},
		Subjects: []snapshot.RawSubject{
			// 2 weekly hours but only 1 slot in the whole week: unsatisfiable.
			{ID: "s1", Name: "Math", CourseID: "c1", WeeklyHours: 2, MaxHoursPerDay: 1},
		},
		Teachers:        []snapshot.RawTeacher{{ID: "t1", Name: "Alice", MaxHoursWeek: 10}},
		TeacherSubjects: []snapshot.RawTeacherSubject{{TeacherID: "t1", SubjectID: "s1"}},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)

	outcome, err := Solve(context.Background(), snap, DefaultOptions())
	assert.ErrorIs(t, err, appErrors.ErrUnsatisfiable)
	assert.Equal(t, StatusNoSolution, outcome.Status)
	assert.Equal(t, cpsat.StatusInfeasible, outcome.SolverStatus)
	assert.Empty(t, outcome.Assignments)
}

func TestSolveNoEligibleTeacherIsInfeasible(t *testing.T) {
	snap, warnings, err := snapshot.Build(snapshot.RawInput{
		ClassesPerDay: 2,
		DaysPerWeek:   1,
		DayIndices:    []int{0},
		Courses:       []snapshot.RawCourse{{ID: "c1", Name: "1st", NumLines: 1}},
		Subjects: []snapshot.RawSubject{
			{ID: "s1", Name: "Math", CourseID: "c1", WeeklyHours: 1, MaxHoursPerDay: 1},
		},
		// No teacher is eligible for s1: no variable exists to satisfy C-1.
		Teachers: []snapshot.RawTeacher{{ID: "t1", Name: "Alice", MaxHoursWeek: 10}},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)

	outcome, err := Solve(context.Background(), snap, DefaultOptions())
	assert.ErrorIs(t, err, appErrors.ErrUnsatisfiable)
	assert.Equal(t, StatusNoSolution, outcome.Status)
}

func TestSolveHonorsCancelledContextAsTimeBudgetExceeded(t *testing.T) {
	snap := trivialSnapshot(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := Solve(ctx, snap, DefaultOptions())
	assert.ErrorIs(t, err, appErrors.ErrTimeBudgetExceeded)
	assert.Equal(t, StatusNoSolution, outcome.Status)
}

func TestDefaultOptionsMatchSpecDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 60*time.Second, opts.TimeBudget)
	assert.Equal(t, 1, opts.WPreferred)
	assert.Equal(t, 100, opts.WTutor)
}
