package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRaw() RawInput {
	return RawInput{
		ClassesPerDay: 6,
		DaysPerWeek:   5,
		HourNames:     []string{"1st", "2nd", "3rd", "4th", "5th", "6th"},
		DayIndices:    []int{0, 1, 2, 3, 4},
		Courses:       []RawCourse{{ID: "c1", Name: "1st grade", NumLines: 2}},
		Subjects: []RawSubject{
			{ID: "s1", Name: "Math", CourseID: "c1", WeeklyHours: 4, MaxHoursPerDay: 2},
		},
		Teachers: []RawTeacher{{ID: "t1", Name: "Alice", MaxHoursWeek: 20}},
		TeacherSubjects: []RawTeacherSubject{
			{TeacherID: "t1", SubjectID: "s1"},
		},
	}
}

func TestBuildValidInput(t *testing.T) {
	snap, warnings, err := Build(baseRaw())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, snap.Groups, 2)
	assert.Equal(t, "c1-A", snap.Groups[0].ID)
	assert.Equal(t, "c1-B", snap.Groups[1].ID)
	assert.True(t, snap.Subjects["s1"].ConsecutiveHours, "nil ConsecutiveHours defaults to true")
	assert.True(t, snap.Teachers["t1"].CanTeach("s1"))
}

func TestBuildEmptyInputIsValid(t *testing.T) {
	raw := RawInput{ClassesPerDay: 6, DaysPerWeek: 5, DayIndices: []int{0, 1, 2, 3, 4}}
	snap, warnings, err := Build(raw)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, snap.Courses)
	assert.Empty(t, snap.Groups)
}

func TestBuildRejectsBadDaysPerWeek(t *testing.T) {
	raw := baseRaw()
	raw.DaysPerWeek = 8
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildRejectsDayIndicesMismatch(t *testing.T) {
	raw := baseRaw()
	raw.DayIndices = []int{0, 1}
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildRejectsDuplicateDayIndices(t *testing.T) {
	raw := baseRaw()
	raw.DayIndices = []int{0, 0, 1, 2, 3}
	raw.DaysPerWeek = 5
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildRejectsSubjectWithUnknownCourse(t *testing.T) {
	raw := baseRaw()
	raw.Subjects[0].CourseID = "missing"
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildRejectsZeroWeeklyHours(t *testing.T) {
	raw := baseRaw()
	raw.Subjects[0].WeeklyHours = 0
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildRejectsMaxHoursPerDayOutOfRange(t *testing.T) {
	raw := baseRaw()
	raw.Subjects[0].MaxHoursPerDay = 7 // classes_per_day is 6
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildLinkedSubjectsBecomeSymmetric(t *testing.T) {
	raw := baseRaw()
	raw.Subjects = append(raw.Subjects, RawSubject{
		ID: "s2", Name: "Physics", CourseID: "c1", WeeklyHours: 4, MaxHoursPerDay: 2,
		LinkedSubjectID: "s1",
	})
	snap, _, err := Build(raw)
	require.NoError(t, err)
	assert.Equal(t, "s2", snap.Subjects["s1"].LinkedSubjectID, "link must be filled in on the other side")
}

func TestBuildRejectsLinkedSubjectAcrossCourses(t *testing.T) {
	raw := baseRaw()
	raw.Courses = append(raw.Courses, RawCourse{ID: "c2", Name: "2nd grade", NumLines: 1})
	raw.Subjects = append(raw.Subjects, RawSubject{
		ID: "s2", Name: "Physics", CourseID: "c2", WeeklyHours: 4, MaxHoursPerDay: 2,
		LinkedSubjectID: "s1",
	})
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildRejectsUnknownLinkedSubject(t *testing.T) {
	raw := baseRaw()
	raw.Subjects[0].LinkedSubjectID = "ghost"
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildSubjectGroupMembersMustShareWeeklyHours(t *testing.T) {
	raw := baseRaw()
	raw.SubjectGroups = []RawSubjectGroup{{ID: "sg1", Name: "Electives"}}
	raw.Subjects[0].SubjectGroupID = "sg1"
	raw.Subjects = append(raw.Subjects, RawSubject{
		ID: "s2", Name: "Art", CourseID: "c1", WeeklyHours: 3, MaxHoursPerDay: 2,
		SubjectGroupID: "sg1",
	})
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildRejectsSubjectWithUnknownSubjectGroup(t *testing.T) {
	raw := baseRaw()
	raw.Subjects[0].SubjectGroupID = "missing"
	_, _, err := Build(raw)
	assert.Error(t, err)
}

func TestBuildWarnsOnUnresolvedTutorGroup(t *testing.T) {
	raw := baseRaw()
	raw.Teachers[0].TutorGroup = "c1-Z"
	snap, warnings, err := Build(raw)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "c1-Z")
	assert.Equal(t, "c1-Z", snap.Teachers["t1"].TutorGroup)
}

func TestBuildTutorGroupResolvesAndNormalizes(t *testing.T) {
	raw := baseRaw()
	raw.Teachers[0].TutorGroup = "c1A" // legacy no-dash form
	snap, warnings, err := Build(raw)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "c1-A", snap.Teachers["t1"].TutorGroup)
}

func TestBuildDropsMalformedPreferenceWithWarning(t *testing.T) {
	raw := baseRaw()
	raw.TeacherPreferences = []RawTeacherPreference{
		{TeacherID: "t1", DayIndex: 0, UnavailableJSON: []byte(`not-json`)},
	}
	snap, warnings, err := Build(raw)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.False(t, snap.Teachers["t1"].IsUnavailable(0, 1))
}

func TestBuildPreferenceHardWinsOverSoft(t *testing.T) {
	raw := baseRaw()
	raw.TeacherPreferences = []RawTeacherPreference{
		{
			TeacherID:       "t1",
			DayIndex:        0,
			UnavailableJSON: []byte(`[3]`),
			PreferredJSON:   []byte(`[3]`),
		},
	}
	snap, warnings, err := Build(raw)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.True(t, snap.Teachers["t1"].IsUnavailable(0, 3))
	assert.False(t, snap.Teachers["t1"].IsPreferred(0, 3), "disjoint: hard block wins over soft preference")
}

func TestSnapshotSubjectsOfCourseSortedByID(t *testing.T) {
	raw := baseRaw()
	raw.Subjects = append(raw.Subjects, RawSubject{ID: "s0", Name: "Gym", CourseID: "c1", WeeklyHours: 2, MaxHoursPerDay: 1})
	snap, _, err := Build(raw)
	require.NoError(t, err)
	subs := snap.SubjectsOfCourse("c1")
	require.Len(t, subs, 2)
	assert.Equal(t, "s0", subs[0].ID)
	assert.Equal(t, "s1", subs[1].ID)
}

func TestSnapshotTeachersEligibleFor(t *testing.T) {
	snap, _, err := Build(baseRaw())
	require.NoError(t, err)
	eligible := snap.TeachersEligibleFor("s1")
	require.Len(t, eligible, 1)
	assert.Equal(t, "t1", eligible[0].ID)
	assert.Empty(t, snap.TeachersEligibleFor("unknown"))
}

func TestNormalizeGroupKey(t *testing.T) {
	assert.Equal(t, "", NormalizeGroupKey(""))
	assert.Equal(t, "c1-A", NormalizeGroupKey("c1-A"))
	assert.Equal(t, "c1-A", NormalizeGroupKey("c1A"))
}
