package cpsat

import (
	"context"
	"time"
)

// Status is the outcome of a Solve call, matching the spec's C5 contract:
// exactly one of OPTIMAL, FEASIBLE, INFEASIBLE, UNKNOWN.
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusUnknown    Status = "UNKNOWN"
)

// Options configures one Solve call.
type Options struct {
	TimeBudget time.Duration // 0 means no wall-clock budget beyond ctx
	NodeLimit  int           // 0 means unlimited
}

// Solution is a complete 0/1 assignment to every variable of a Model.
type Solution struct {
	Values    []int // indexed by BoolVar.ID()
	Objective int
}

// Value returns the assigned 0/1 value of v in this solution.
func (s *Solution) Value(v *BoolVar) int {
	if s == nil || v.id >= len(s.Values) {
		return 0
	}
	return s.Values[v.id]
}

// Solver runs branch-and-bound search over a Model.
type Solver struct {
	model *Model
}

// NewSolver binds a solver to a fully-built model. The model must not be
// mutated once Solve has been called.
func NewSolver(m *Model) *Solver {
	return &Solver{model: m}
}

type searchState struct {
	assign     []int8 // -1 unassigned, 0 or 1
	deadline   time.Time
	hasBudget  bool
	nodes      int
	nodeLimit  int
	ctx        context.Context
	timedOut   bool
	best       []int8
	bestObj    int
	hasIncumbent bool
	wantOneFeasible bool // true when the model has no objective: stop at first full assignment
}

// Solve runs the search under the given time/node budget and returns the best
// solution found together with its status. A nil Solution accompanies
// INFEASIBLE and UNKNOWN.
func (s *Solver) Solve(ctx context.Context, opts Options) (*Solution, Status, error) {
	n := s.model.NumVars()
	st := &searchState{
		assign:          make([]int8, n),
		nodeLimit:       opts.NodeLimit,
		ctx:             ctx,
		wantOneFeasible: !s.model.HasObjective(),
	}
	for i := range st.assign {
		st.assign[i] = -1
	}
	if opts.TimeBudget > 0 {
		st.deadline = time.Now().Add(opts.TimeBudget)
		st.hasBudget = true
	}

	exhausted := s.search(st, 0)

	switch {
	case st.hasIncumbent && exhausted:
		return solutionFromState(st), StatusOptimal, nil
	case st.hasIncumbent && !exhausted:
		return solutionFromState(st), StatusFeasible, nil
	case !st.hasIncumbent && exhausted:
		return nil, StatusInfeasible, nil
	default:
		return nil, StatusUnknown, nil
	}
}

func solutionFromState(st *searchState) *Solution {
	values := make([]int, len(st.best))
	for i, v := range st.best {
		values[i] = int(v)
	}
	return &Solution{Values: values, Objective: st.bestObj}
}

// search explores the assignment tree rooted at the current partial
// assignment. It returns true iff the subtree rooted here was fully explored
// (i.e. no early stop due to time/node budget) — callers use this to decide
// between INFEASIBLE (exhausted, no incumbent) and UNKNOWN (not exhausted).
func (s *Solver) search(st *searchState, depth int) bool {
	if st.budgetExceeded() {
		st.timedOut = true
		return false
	}
	st.nodes++
	if st.nodeLimit > 0 && st.nodes > st.nodeLimit {
		st.timedOut = true
		return false
	}

	ok, forced := propagate(s.model, st.assign)
	if !ok {
		return true // this branch is a dead end; fully explored
	}
	for varID, val := range forced {
		st.assign[varID] = val
	}

	idx := firstUnassigned(st.assign)
	if idx == -1 {
		// Complete assignment: evaluate.
		obj := objectiveValue(s.model, st.assign)
		if !st.hasIncumbent || obj > st.bestObj {
			st.hasIncumbent = true
			st.bestObj = obj
			st.best = append([]int8(nil), st.assign...)
		}
		unassignForced(st.assign, forced)
		return true
	}

	if st.hasIncumbent && s.model.HasObjective() {
		bound := objectiveUpperBound(s.model, st.assign)
		if bound <= st.bestObj {
			unassignForced(st.assign, forced)
			return true
		}
	}

	fullyExplored := true
	for _, val := range [2]int8{1, 0} {
		st.assign[idx] = val
		if !s.search(st, depth+1) {
			fullyExplored = false
			st.assign[idx] = -1
			unassignForced(st.assign, forced)
			return false
		}
		st.assign[idx] = -1
		if st.wantOneFeasible && st.hasIncumbent {
			break
		}
	}

	unassignForced(st.assign, forced)
	return fullyExplored
}

func (st *searchState) budgetExceeded() bool {
	if st.ctx != nil && st.ctx.Err() != nil {
		return true
	}
	if st.hasBudget && time.Now().After(st.deadline) {
		return true
	}
	return false
}

func unassignForced(assign []int8, forced map[int]int8) {
	for varID := range forced {
		assign[varID] = -1
	}
}

func firstUnassigned(assign []int8) int {
	for i, v := range assign {
		if v == -1 {
			return i
		}
	}
	return -1
}
