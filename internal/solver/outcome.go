package solver

import "github.com/kelaskita/timetable/internal/cpsat"

// Status is the outer result of a solve(), distinct from the inner
// cpsat.Status it was derived from.
type Status string

const (
	StatusSolved     Status = "SOLVED"
	StatusNoSolution Status = "NO_SOLUTION"
)

// Assignment is one variable set to 1 in the winning solution: teacher t
// teaches subject s to group g at (day, hour).
type Assignment struct {
	Group   string
	Subject string
	Teacher string
	Day     int
	Hour    int
}

// SolveOutcome is the result of Solve: either a full assignment set, or a
// status explaining why none was produced (spec §6).
type SolveOutcome struct {
	Status       Status
	Assignments  []Assignment
	SolverStatus cpsat.Status
	Score        float64
}
