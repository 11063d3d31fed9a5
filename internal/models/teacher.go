package models

import "time"

// Teacher represents an instructor record.
type Teacher struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	MaxHoursWeek int       `db:"max_hours_week" json:"max_hours_week"`
	TutorGroup   *string   `db:"tutor_group" json:"tutor_group,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search    string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// TeacherSubject records that a teacher is eligible to teach a subject
// (the "s ∈ t.subjects" relation of the spec).
type TeacherSubject struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TeacherSubjectDetail enriches the eligibility row with descriptive fields.
type TeacherSubjectDetail struct {
	TeacherSubject
	SubjectName string `db:"subject_name" json:"subject_name"`
	CourseID    string `db:"course_id" json:"course_id"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
}
