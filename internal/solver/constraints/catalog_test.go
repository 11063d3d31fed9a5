package constraints

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

func solveSnapshot(t *testing.T, snap *snapshot.Snapshot, w Weights) (*cpsat.Solution, cpsat.Status, *vars.Variables) {
	t.Helper()
	model := cpsat.NewModel()
	v := vars.Build(model, snap)
	require.NoError(t, PostAll(model, v, snap, w))
	sol, status, err := cpsat.NewSolver(model).Solve(context.Background(), cpsat.Options{})
	require.NoError(t, err)
	return sol, status, v
}

func TestCatalogPostsInFixedOrder(t *testing.T) {
	names := make([]string, 0)
	for _, c := range Catalog(DefaultWeights()) {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{
		"C-1 subject weekly hours",
		"C-2 subject max hours per day",
		"C-3 consecutive hours policy",
		"C-4 teach every day",
		"C-5 linked subjects consecutive",
		"C-6 subject group atomic co-assignment",
		"C-7 one logical unit per slot",
		"C-8 teacher at most one class per slot",
		"C-9 teacher weekly cap",
		"C-10 teacher unavailable hours",
		"C-11 tutor mandatory",
		"C-12 teacher preferred hours",
		"C-13 tutor preference",
	}, names)
}

func TestTeacherNoClashMakesSharedSoleTeacherInfeasible(t *testing.T) {
	snap, warnings, err := snapshot.Build(snapshot.RawInput{
		ClassesPerDay: 1,
		DaysPerWeek:   1,
		DayIndices:    []int{0},
		Courses: []snapshot.RawCourse{
			{ID: "c1", Name: "1st", NumLines: 2}, // two lines -> two groups, one slot each
		},
		Subjects: []snapshot.RawSubject{
			{ID: "s1", Name: "Math", CourseID: "c1", WeeklyHours: 1, MaxHoursPerDay: 1},
		},
		Teachers:        []snapshot.RawTeacher{{ID: "t1", Name: "Alice", MaxHoursWeek: 10}},
		TeacherSubjects: []snapshot.RawTeacherSubject{{TeacherID: "t1", SubjectID: "s1"}},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)

	_, status, _ := solveSnapshot(t, snap, DefaultWeights())
	assert.Equal(t, cpsat.StatusInfeasible, status, "one teacher cannot cover both groups' only slot at once")
}

func TestTeacherUnavailableBlocksOnlySlot(t *testing.T) {
	unavailable, _ := json.Marshal([]int{0})
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
		TeacherPreferences: []snapshot.RawTeacherPreference{
			{TeacherID: "t1", DayIndex: 0, UnavailableJSON: unavailable},
		},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)

	_, status, _ := solveSnapshot(t, snap, DefaultWeights())
	assert.Equal(t, cpsat.StatusInfeasible, status)
}

func TestTeacherWeeklyCapMakesOverloadInfeasible(t *testing.T) {
	snap, warnings, err := snapshot.Build(snapshot.RawInput{
		ClassesPerDay: 2,
		DaysPerWeek:   1,
		DayIndices:    []int{0},
		Courses:       []snapshot.RawCourse{{ID: "c1", Name: "1st", NumLines: 1}},
		Subjects: []snapshot.RawSubject{
			{ID: "s1", Name: "Math", CourseID: "c1", WeeklyHours: 2, MaxHoursPerDay: 2},
		},
		Teachers:        []snapshot.RawTeacher{{ID: "t1", Name: "Alice", MaxHoursWeek: 1}}, // cap below weekly_hours
		TeacherSubjects: []snapshot.RawTeacherSubject{{TeacherID: "t1", SubjectID: "s1"}},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)

	_, status, _ := solveSnapshot(t, snap, DefaultWeights())
	assert.Equal(t, cpsat.StatusInfeasible, status)
}

func TestSubjectGroupAtomicityBindsMembersTogether(t *testing.T) {
	snap, warnings, err := snapshot.Build(snapshot.RawInput{
		ClassesPerDay: 1,
		DaysPerWeek:   1,
		DayIndices:    []int{0},
		Courses:       []snapshot.RawCourse{{ID: "c1", Name: "1st", NumLines: 1}},
		Subjects: []snapshot.RawSubject{
			{ID: "s1", Name: "French", CourseID: "c1", WeeklyHours: 1, MaxHoursPerDay: 1, SubjectGroupID: "sg1"},
			{ID: "s2", Name: "German", CourseID: "c1", WeeklyHours: 1, MaxHoursPerDay: 1, SubjectGroupID: "sg1"},
		},
		SubjectGroups: []snapshot.RawSubjectGroup{{ID: "sg1", Name: "Languages"}},
		Teachers: []snapshot.RawTeacher{
			{ID: "t1", Name: "Alice", MaxHoursWeek: 10},
			{ID: "t2", Name: "Bob", MaxHoursWeek: 10},
		},
		TeacherSubjects: []snapshot.RawTeacherSubject{
			{TeacherID: "t1", SubjectID: "s1"},
			{TeacherID: "t2", SubjectID: "s2"},
		},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)

	sol, status, v := solveSnapshot(t, snap, DefaultWeights())
	require.Equal(t, cpsat.StatusOptimal, status)
	// Both subjects must land in the same (only) slot since the group is
	// atomic and there is only one hour to place them in.
	frSlot := v.InGroupSubjectSlot("c1-A", "s1", 0, 0)
	deSlot := v.InGroupSubjectSlot("c1-A", "s2", 0, 0)
	require.Len(t, frSlot, 1)
	require.Len(t, deSlot, 1)
	assert.Equal(t, 1, sol.Value(frSlot[0].Bool))
}

func TestTutorMandatorySlotConflictsWithWeeklyHours(t *testing.T) {
	snap, warnings, err := snapshot.Build(snapshot.RawInput{
		ClassesPerDay: 1,
		DaysPerWeek:   2, // first slot (day 0) and last slot (day 1) are distinct
		DayIndices:    []int{0, 1},
		Courses:       []snapshot.RawCourse{{ID: "c1", Name: "1st", NumLines: 1}},
		Subjects: []snapshot.RawSubject{
			// Only 1 weekly hour, but the tutor-mandatory rule requires the
			// tutor to teach both the first AND the last slot of the week:
			// two occurrences against a budget of one is unsatisfiable.
			{ID: "s1", Name: "Math", CourseID: "c1", WeeklyHours: 1, MaxHoursPerDay: 1},
		},
		Teachers: []snapshot.RawTeacher{
			{ID: "t1", Name: "Alice", MaxHoursWeek: 10, TutorGroup: "c1-A"},
		},
		TeacherSubjects: []snapshot.RawTeacherSubject{{TeacherID: "t1", SubjectID: "s1"}},
	})
	require.NoError(t, err)
	require.Empty(t, warnings)

	_, status, _ := solveSnapshot(t, snap, DefaultWeights())
	assert.Equal(t, cpsat.StatusInfeasible, status)
}
