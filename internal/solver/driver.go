package solver

import (
	"context"

	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/constraints"
	"github.com/kelaskita/timetable/internal/solver/vars"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

// Solve builds the model for snap, posts the full constraint catalog, and
// submits it to the cpsat backend under opts' time budget (spec §4.5).
//
// On OPTIMAL/FEASIBLE the returned outcome carries the winning assignments
// and a nil error. On INFEASIBLE/UNKNOWN the outcome is NoSolution and the
// error is ErrUnsatisfiable or ErrTimeBudgetExceeded respectively, so
// callers can branch on error kind without inspecting SolverStatus.
func Solve(ctx context.Context, snap *snapshot.Snapshot, opts Options) (*SolveOutcome, error) {
	model := cpsat.NewModel()
	v := vars.Build(model, snap)

	w := constraints.Weights{Preferred: opts.WPreferred, Tutor: opts.WTutor}
	if err := constraints.PostAll(model, v, snap, w); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, err.Error())
	}

	solver := cpsat.NewSolver(model)
	sol, status, err := solver.Solve(ctx, cpsat.Options{
		TimeBudget: opts.TimeBudget,
		NodeLimit:  opts.NodeLimit,
	})
	if err != nil {
		return nil, err
	}

	switch status {
	case cpsat.StatusOptimal, cpsat.StatusFeasible:
		return &SolveOutcome{
			Status:       StatusSolved,
			Assignments:  materialize(v, sol),
			SolverStatus: status,
			Score:        float64(sol.Objective),
		}, nil
	case cpsat.StatusInfeasible:
		return &SolveOutcome{Status: StatusNoSolution, SolverStatus: status}, appErrors.ErrUnsatisfiable
	default:
		return &SolveOutcome{Status: StatusNoSolution, SolverStatus: status}, appErrors.ErrTimeBudgetExceeded
	}
}

func materialize(v *vars.Variables, sol *cpsat.Solution) []Assignment {
	var out []Assignment
	for _, pv := range v.All {
		if sol.Value(pv.Bool) != 1 {
			continue
		}
		out = append(out, Assignment{
			Group:   pv.Group,
			Subject: pv.Subject,
			Teacher: pv.Teacher,
			Day:     pv.Day,
			Hour:    pv.Hour,
		})
	}
	return out
}
