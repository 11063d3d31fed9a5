package snapshot

import (
	"encoding/json"
	"fmt"

	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

// RawCourse, RawSubject, etc. are the loader's input shape: plain values
// decoupled from any persistence model, so this package has no sqlx/db
// dependency. The repository layer adapts models.* rows into these before
// calling Build.
type RawCourse struct {
	ID       string
	Name     string
	NumLines int
}

type RawSubject struct {
	ID               string
	Name             string
	CourseID         string
	WeeklyHours      int
	MaxHoursPerDay   int
	ConsecutiveHours *bool // nil means "undefined": treated as true (legacy default)
	TeachEveryDay    bool
	LinkedSubjectID  string
	SubjectGroupID   string
}

type RawSubjectGroup struct {
	ID   string
	Name string
}

type RawTeacher struct {
	ID           string
	Name         string
	MaxHoursWeek int
	TutorGroup   string
}

type RawTeacherSubject struct {
	TeacherID string
	SubjectID string
}

// RawTeacherPreference mirrors one models.TeacherPreference row with its JSON
// hour arrays still encoded; Build decodes and validates them per-teacher
// per-day, dropping (not failing) malformed entries per spec §7.
type RawTeacherPreference struct {
	TeacherID       string
	DayIndex        int
	UnavailableJSON []byte
	PreferredJSON   []byte
}

// RawInput is everything the snapshot loader needs to build a Snapshot.
type RawInput struct {
	ClassesPerDay int
	DaysPerWeek   int
	HourNames     []string
	DayIndices    []int

	Courses            []RawCourse
	Subjects           []RawSubject
	SubjectGroups      []RawSubjectGroup
	Teachers           []RawTeacher
	TeacherSubjects    []RawTeacherSubject
	TeacherPreferences []RawTeacherPreference
}

// Warning is a non-fatal observation raised during Build (spec §9: an
// implementer should "emit a warning, not an error" for a tutor_group that
// does not resolve to a real group).
type Warning struct {
	Message string
}

// Build validates RawInput against the invariants of spec §3 and produces an
// immutable Snapshot. An empty set of courses/subjects is valid and yields an
// empty model (spec §4.1); any invariant violation returns an
// *errors.Error wrapping ErrInvalidInput with Build's warnings discarded.
func Build(raw RawInput) (*Snapshot, []Warning, error) {
	if raw.DaysPerWeek < 1 || raw.DaysPerWeek > 7 {
		return nil, nil, invalidInput(fmt.Sprintf("days_per_week must be in [1,7], got %d", raw.DaysPerWeek))
	}
	if raw.ClassesPerDay < 1 {
		return nil, nil, invalidInput(fmt.Sprintf("classes_per_day must be ≥ 1, got %d", raw.ClassesPerDay))
	}
	if len(raw.DayIndices) != raw.DaysPerWeek {
		return nil, nil, invalidInput(fmt.Sprintf("day_indices must contain %d distinct entries, got %d", raw.DaysPerWeek, len(raw.DayIndices)))
	}
	seenDays := make(map[int]bool, len(raw.DayIndices))
	for _, d := range raw.DayIndices {
		if seenDays[d] {
			return nil, nil, invalidInput(fmt.Sprintf("day_indices contains duplicate index %d", d))
		}
		seenDays[d] = true
	}

	courses := make(map[string]Course, len(raw.Courses))
	for _, c := range raw.Courses {
		courses[c.ID] = Course{ID: c.ID, Name: c.Name, NumLines: c.NumLines}
	}

	subjects := make(map[string]Subject, len(raw.Subjects))
	for _, s := range raw.Subjects {
		if _, ok := courses[s.CourseID]; !ok {
			return nil, nil, invalidInput(fmt.Sprintf("subject %s references unknown course %s", s.ID, s.CourseID))
		}
		if s.WeeklyHours < 1 {
			return nil, nil, invalidInput(fmt.Sprintf("subject %s: weekly_hours must be ≥ 1", s.ID))
		}
		if s.MaxHoursPerDay < 1 || s.MaxHoursPerDay > raw.ClassesPerDay {
			return nil, nil, invalidInput(fmt.Sprintf("subject %s: max_hours_per_day must be in [1,%d]", s.ID, raw.ClassesPerDay))
		}
		consecutive := true // missing is undefined; treat as true (legacy default, spec §9)
		if s.ConsecutiveHours != nil {
			consecutive = *s.ConsecutiveHours
		}
		subjects[s.ID] = Subject{
			ID:               s.ID,
			Name:             s.Name,
			CourseID:         s.CourseID,
			WeeklyHours:      s.WeeklyHours,
			MaxHoursPerDay:   s.MaxHoursPerDay,
			ConsecutiveHours: consecutive,
			TeachEveryDay:    s.TeachEveryDay,
			LinkedSubjectID:  s.LinkedSubjectID,
			SubjectGroupID:   s.SubjectGroupID,
		}
	}

	// Linked subjects: validate same-course and make the link symmetric even
	// if stored one-sided (spec §3, §9).
	for id, s := range subjects {
		if s.LinkedSubjectID == "" {
			continue
		}
		linked, ok := subjects[s.LinkedSubjectID]
		if !ok {
			return nil, nil, invalidInput(fmt.Sprintf("subject %s: linked_subject_id %s does not exist", id, s.LinkedSubjectID))
		}
		if linked.CourseID != s.CourseID {
			return nil, nil, invalidInput(fmt.Sprintf("subject %s: linked_subject_id %s belongs to a different course", id, s.LinkedSubjectID))
		}
		if linked.LinkedSubjectID == "" {
			linked.LinkedSubjectID = id
			subjects[linked.ID] = linked
		}
	}

	subjectGroups := make(map[string]SubjectGroup, len(raw.SubjectGroups))
	for _, sg := range raw.SubjectGroups {
		subjectGroups[sg.ID] = SubjectGroup{ID: sg.ID, Name: sg.Name}
	}
	for _, s := range subjects {
		if s.SubjectGroupID == "" {
			continue
		}
		sg, ok := subjectGroups[s.SubjectGroupID]
		if !ok {
			return nil, nil, invalidInput(fmt.Sprintf("subject %s references unknown subject group %s", s.ID, s.SubjectGroupID))
		}
		sg.SubjectIDs = append(sg.SubjectIDs, s.ID)
		subjectGroups[s.SubjectGroupID] = sg
	}
	for _, sg := range subjectGroups {
		if len(sg.SubjectIDs) < 2 {
			continue
		}
		weeklyHours := subjects[sg.SubjectIDs[0]].WeeklyHours
		for _, sid := range sg.SubjectIDs[1:] {
			if subjects[sid].WeeklyHours != weeklyHours {
				return nil, nil, invalidInput(fmt.Sprintf("subject group %s: members must share weekly_hours", sg.ID))
			}
		}
	}

	eligibility := make(map[string]map[string]bool) // teacherID -> subjectID -> true
	for _, ts := range raw.TeacherSubjects {
		if eligibility[ts.TeacherID] == nil {
			eligibility[ts.TeacherID] = make(map[string]bool)
		}
		eligibility[ts.TeacherID][ts.SubjectID] = true
	}

	groupIDs := make(map[string]bool, len(courses))
	var groups []Group
	for _, c := range courses {
		for line := 0; line < c.NumLines; line++ {
			g := Group{ID: groupID(c.ID, line), CourseID: c.ID, Line: line}
			groups = append(groups, g)
			groupIDs[g.ID] = true
		}
	}

	var warnings []Warning
	teachers := make(map[string]Teacher, len(raw.Teachers))
	for _, t := range raw.Teachers {
		tutorGroup := ""
		if t.TutorGroup != "" {
			tutorGroup = NormalizeGroupKey(t.TutorGroup)
			if !groupIDs[tutorGroup] {
				warnings = append(warnings, Warning{Message: fmt.Sprintf("teacher %s: tutor_group %q does not resolve to any known group", t.ID, t.TutorGroup)})
			}
		}
		teachers[t.ID] = Teacher{
			ID:           t.ID,
			Name:         t.Name,
			SubjectIDs:   eligibility[t.ID],
			MaxHoursWeek: t.MaxHoursWeek,
			TutorGroup:   tutorGroup,
			Unavailable:  make(map[int]map[int]bool),
			Preferred:    make(map[int]map[int]bool),
		}
		if teachers[t.ID].SubjectIDs == nil {
			tc := teachers[t.ID]
			tc.SubjectIDs = make(map[string]bool)
			teachers[t.ID] = tc
		}
	}

	for _, pref := range raw.TeacherPreferences {
		teacher, ok := teachers[pref.TeacherID]
		if !ok {
			continue
		}
		unavailable, okU := decodeHourSet(pref.UnavailableJSON)
		preferred, okP := decodeHourSet(pref.PreferredJSON)
		if !okU || !okP {
			// Malformed preferences are silently dropped per-teacher
			// per-day rather than failing the whole solve (spec §7).
			warnings = append(warnings, Warning{Message: fmt.Sprintf("teacher %s: malformed preference for day %d dropped", pref.TeacherID, pref.DayIndex)})
			continue
		}
		for h := range unavailable {
			if preferred[h] {
				delete(preferred, h) // keep the two sets disjoint; hard wins
			}
		}
		if teacher.Unavailable[pref.DayIndex] == nil {
			teacher.Unavailable[pref.DayIndex] = make(map[int]bool)
		}
		if teacher.Preferred[pref.DayIndex] == nil {
			teacher.Preferred[pref.DayIndex] = make(map[int]bool)
		}
		for h := range unavailable {
			teacher.Unavailable[pref.DayIndex][h] = true
		}
		for h := range preferred {
			teacher.Preferred[pref.DayIndex][h] = true
		}
		teachers[pref.TeacherID] = teacher
	}

	snap := &Snapshot{
		Config: Config{
			ClassesPerDay: raw.ClassesPerDay,
			DaysPerWeek:   raw.DaysPerWeek,
			HourNames:     raw.HourNames,
			DayIndices:    raw.DayIndices,
		},
		Courses:       courses,
		Subjects:      subjects,
		SubjectGroups: subjectGroups,
		Teachers:      teachers,
		Groups:        groups,
	}
	return snap, warnings, nil
}

func decodeHourSet(raw []byte) (map[int]bool, bool) {
	set := make(map[int]bool)
	if len(raw) == 0 {
		return set, true
	}
	var hours []int
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, false
	}
	for _, h := range hours {
		set[h] = true
	}
	return set, true
}

func groupID(courseID string, line int) string {
	return fmt.Sprintf("%s-%s", courseID, string(rune('A'+line)))
}

func invalidInput(detail string) error {
	return appErrors.Clone(appErrors.ErrInvalidInput, detail)
}
