package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// TeacherNoClash is C-8: a teacher may teach at most one (group, subject)
// at any given slot.
type TeacherNoClash struct{}

func (TeacherNoClash) Name() string { return "C-8 teacher at most one class per slot" }

func (TeacherNoClash) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	for _, t := range snap.Teachers {
		for _, pvs := range v.TeacherSlots(t.ID) {
			if len(pvs) < 2 {
				continue
			}
			model.AddConstraint(cpsat.SumLE(vars.Bools(pvs), 1))
		}
	}
	return nil
}
