package dto

import "github.com/kelaskita/timetable/internal/models"

// SolveRequest tunes one invocation of the solver (spec §6 Options). Zero
// values fall back to the stored configuration tuning knobs.
type SolveRequest struct {
	TimeBudgetSeconds int `json:"time_budget_seconds" validate:"omitempty,min=1,max=600"`
	WeightPreferred   int `json:"weight_preferred" validate:"omitempty,min=0"`
	WeightTutor       int `json:"weight_tutor" validate:"omitempty,min=0"`
	NodeLimit         int `json:"node_limit" validate:"omitempty,min=0"`
}

// SolveResponse reports the outcome of a solve without persisting it: the
// caller inspects Status before calling the persist endpoint (spec §4.7).
type SolveResponse struct {
	RunID            string  `json:"run_id"`
	Status           string  `json:"status"`
	SolverStatus     string  `json:"solver_status"`
	Score            float64 `json:"score"`
	AssignmentCount  int     `json:"assignment_count"`
	Warnings         []string `json:"warnings,omitempty"`
}

// PersistResponse reports the result of writing a solved run to the
// schedule tables (spec §4.6 step 3).
type PersistResponse struct {
	RunID     string `json:"run_id"`
	Persisted bool   `json:"persisted"`
}

// ScheduleRunSummary is the read-side shape of a models.ScheduleRun.
type ScheduleRunSummary struct {
	ID        string                   `json:"id"`
	Version   int                      `json:"version"`
	Status    models.ScheduleRunStatus `json:"status"`
	Score     float64                  `json:"score"`
	Persisted bool                     `json:"persisted"`
}
