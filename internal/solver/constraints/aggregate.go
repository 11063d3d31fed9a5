package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// buildAggregate allocates one fresh y[g,s,d,h] per hour of the day and posts
// y[h] = Σ_t x[g,s,t,d,h] (spec §9). hours is the full 0..H-1 range; the
// returned slice is indexed the same way.
func buildAggregate(model *cpsat.Model, v *vars.Variables, group, subjectID string, day, hours int) []*cpsat.BoolVar {
	y := make([]*cpsat.BoolVar, hours)
	for h := 0; h < hours; h++ {
		pvs := v.InGroupSubjectSlot(group, subjectID, day, h)
		bv := model.NewBoolVar(cpsat.AggregateName(group, subjectID, day, h))
		model.AddConstraint(cpsat.Equals(bv, vars.Bools(pvs)))
		y[h] = bv
	}
	return y
}
