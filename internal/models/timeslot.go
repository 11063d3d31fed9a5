package models

// Timeslot is one (group, day, hour) cell, created for every valid slot of
// every group regardless of occupancy (spec §3, §4.6 step 2).
type Timeslot struct {
	ID              int64   `db:"id" json:"id"`
	CourseID        string  `db:"course_id" json:"course_id"`
	Line            int     `db:"line" json:"line"`
	Day             int     `db:"day" json:"day"`
	Hour            int     `db:"hour" json:"hour"`
	SubjectGroupID  *string `db:"subject_group_id" json:"subject_group_id,omitempty"`
}

// GroupKey returns the canonical "<course_id>-<letter>" group string for this timeslot.
func (t Timeslot) GroupKey() string {
	return GroupID(t.CourseID, t.Line)
}

// Assignment records one (subject, teacher) pair placed at a Timeslot; one row
// per decision variable set to 1 in the solution (spec §4.6 step 3). Multiple
// assignments may share a Timeslot when a SubjectGroup bundle occupies it.
type Assignment struct {
	ID         int64   `db:"id" json:"id"`
	TimeslotID int64   `db:"timeslot_id" json:"timeslot_id"`
	SubjectID  string  `db:"subject_id" json:"subject_id"`
	TeacherID  *string `db:"teacher_id" json:"teacher_id,omitempty"`
}

// ScheduleEntry is a read-side join of Timeslot and Assignment used to answer
// "what does group/teacher X's week look like" queries.
type ScheduleEntry struct {
	TimeslotID  int64  `db:"timeslot_id" json:"timeslot_id"`
	CourseID    string `db:"course_id" json:"course_id"`
	Line        int    `db:"line" json:"line"`
	Day         int    `db:"day" json:"day"`
	Hour        int    `db:"hour" json:"hour"`
	SubjectID   string `db:"subject_id" json:"subject_id"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	TeacherID   *string `db:"teacher_id" json:"teacher_id,omitempty"`
	TeacherName *string `db:"teacher_name" json:"teacher_name,omitempty"`
}

// ScheduleFilter describes query params for listing schedule entries.
type ScheduleFilter struct {
	CourseID  string
	Line      *int
	TeacherID string
	Day       *int
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
