package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// WeekConfig is the persisted shape of the weekly timetable configuration: how
// many hours a day, how many days a week, their display names and weekday
// indices. Exactly one active row is expected; the snapshot loader reads it
// and decodes HourNames/DayIndices from their JSON columns.
type WeekConfig struct {
	ID            string         `db:"id" json:"id"`
	ClassesPerDay int            `db:"classes_per_day" json:"classes_per_day"`
	DaysPerWeek   int            `db:"days_per_week" json:"days_per_week"`
	HourNames     types.JSONText `db:"hour_names" json:"hour_names"`
	DayIndices    types.JSONText `db:"day_indices" json:"day_indices"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
