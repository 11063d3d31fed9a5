package cpsat

// propagate tightens the current partial assignment to a fixpoint: any
// variable whose remaining freedom cannot avoid violating some constraint is
// forced to the only value that keeps that constraint satisfiable. Returns
// ok=false the moment a constraint can no longer be satisfied by any
// completion of the current assignment. forced records every variable this
// call pinned, so the caller can undo them on backtrack.
func propagate(m *Model, assign []int8) (ok bool, forced map[int]int8) {
	forced = make(map[int]int8)
	changed := true
	for changed {
		changed = false
		for _, c := range m.constraints {
			lo, hi := bounds(c, assign)
			if !opFeasible(c.Op, lo, hi, c.RHS) {
				return false, forced
			}
			for _, t := range c.Terms {
				if assign[t.Var.id] != -1 {
					continue
				}
				lo1, hi1 := boundsExcluding(c, assign, t.Var.id, 1)
				lo0, hi0 := boundsExcluding(c, assign, t.Var.id, 0)
				feasible1 := opFeasible(c.Op, lo1, hi1, c.RHS)
				feasible0 := opFeasible(c.Op, lo0, hi0, c.RHS)
				switch {
				case !feasible1 && !feasible0:
					return false, forced
				case !feasible1:
					assign[t.Var.id] = 0
					forced[t.Var.id] = 0
					changed = true
				case !feasible0:
					assign[t.Var.id] = 1
					forced[t.Var.id] = 1
					changed = true
				}
			}
		}
	}
	return true, forced
}

func bounds(c *LinearConstraint, assign []int8) (lo, hi int) {
	for _, t := range c.Terms {
		v := assign[t.Var.id]
		if v == -1 {
			if t.Coeff > 0 {
				hi += t.Coeff
			} else {
				lo += t.Coeff
			}
			continue
		}
		contrib := t.Coeff * int(v)
		lo += contrib
		hi += contrib
	}
	return lo, hi
}

// boundsExcluding computes the same bounds as bounds, but pretends varID is
// fixed to fixedVal regardless of its current entry in assign.
func boundsExcluding(c *LinearConstraint, assign []int8, varID int, fixedVal int8) (lo, hi int) {
	for _, t := range c.Terms {
		var v int8
		if t.Var.id == varID {
			v = fixedVal
		} else {
			v = assign[t.Var.id]
		}
		if v == -1 {
			if t.Coeff > 0 {
				hi += t.Coeff
			} else {
				lo += t.Coeff
			}
			continue
		}
		contrib := t.Coeff * int(v)
		lo += contrib
		hi += contrib
	}
	return lo, hi
}

func opFeasible(op Op, lo, hi, rhs int) bool {
	switch op {
	case LE:
		return lo <= rhs
	case GE:
		return hi >= rhs
	case EQ:
		return lo <= rhs && hi >= rhs
	default:
		return true
	}
}

func objectiveValue(m *Model, assign []int8) int {
	if m.objective == nil {
		return 0
	}
	total := 0
	for _, t := range m.objective.Terms {
		total += t.Coeff * int(assign[t.Var.id])
	}
	return total
}

// objectiveUpperBound bounds the best objective value reachable from the
// current partial assignment: every still-unassigned variable is assumed to
// take whichever value maximises its own contribution.
func objectiveUpperBound(m *Model, assign []int8) int {
	if m.objective == nil {
		return 0
	}
	total := 0
	for _, t := range m.objective.Terms {
		v := assign[t.Var.id]
		if v == -1 {
			if t.Coeff > 0 {
				total += t.Coeff
			}
			continue
		}
		total += t.Coeff * int(v)
	}
	return total
}
