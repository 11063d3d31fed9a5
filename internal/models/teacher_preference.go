package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TeacherPreference stores, for one teacher and one day, the hour indices the
// teacher cannot teach (hard) and the hour indices the teacher would rather
// teach (soft). Unavailable and Preferred are disjoint JSON int arrays.
type TeacherPreference struct {
	ID          string         `db:"id" json:"id"`
	TeacherID   string         `db:"teacher_id" json:"teacher_id"`
	DayIndex    int            `db:"day_index" json:"day_index"`
	Unavailable types.JSONText `db:"unavailable" json:"unavailable"`
	Preferred   types.JSONText `db:"preferred" json:"preferred"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// DayPreference is the decoded, in-memory shape of one TeacherPreference row,
// used by the snapshot loader once JSON hour arrays have been parsed.
type DayPreference struct {
	DayIndex    int
	Unavailable map[int]bool
	Preferred   map[int]bool
}
