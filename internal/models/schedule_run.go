package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ScheduleRunStatus mirrors the C5 solver-driver status contract.
type ScheduleRunStatus string

const (
	ScheduleRunStatusOptimal     ScheduleRunStatus = "OPTIMAL"
	ScheduleRunStatusFeasible    ScheduleRunStatus = "FEASIBLE"
	ScheduleRunStatusInfeasible  ScheduleRunStatus = "INFEASIBLE"
	ScheduleRunStatusUnknown     ScheduleRunStatus = "UNKNOWN"
)

// ScheduleRun records one invocation of the solver: its outcome, score, and
// whether the resulting assignments were ever persisted via C6. Versioned per
// the teacher's CreateVersioned pattern so the history of solves is auditable.
type ScheduleRun struct {
	ID        string            `db:"id" json:"id"`
	Version   int               `db:"version" json:"version"`
	Status    ScheduleRunStatus `db:"status" json:"status"`
	Score     float64           `db:"score" json:"score"`
	Persisted bool              `db:"persisted" json:"persisted"`
	Meta      types.JSONText    `db:"meta" json:"meta"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt time.Time         `db:"updated_at" json:"updated_at"`
}
