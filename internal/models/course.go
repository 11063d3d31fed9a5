package models

import "time"

// Course represents a cohort offering one or more parallel groups (lines).
type Course struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	NumLines  int       `db:"num_lines" json:"num_lines"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter defines filter criteria for listing courses.
type CourseFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// LineLetter returns the canonical letter ('A', 'B', ...) for a zero-based line index.
func LineLetter(index int) string {
	return string(rune('A' + index))
}

// GroupID returns the canonical "<course_id>-<letter>" string for a course line.
func GroupID(courseID string, lineIndex int) string {
	return courseID + "-" + LineLetter(lineIndex)
}
