package models

import "time"

// Subject represents an academic subject taught within a single course.
type Subject struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	CourseID         string    `db:"course_id" json:"course_id"`
	WeeklyHours      int       `db:"weekly_hours" json:"weekly_hours"`
	MaxHoursPerDay   int       `db:"max_hours_per_day" json:"max_hours_per_day"`
	ConsecutiveHours bool      `db:"consecutive_hours" json:"consecutive_hours"`
	TeachEveryDay    bool      `db:"teach_every_day" json:"teach_every_day"`
	LinkedSubjectID  *string   `db:"linked_subject_id" json:"linked_subject_id,omitempty"`
	SubjectGroupID   *string   `db:"subject_group_id" json:"subject_group_id,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	CourseID  string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
