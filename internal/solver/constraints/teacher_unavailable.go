package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// TeacherUnavailable is C-10: a teacher may never be assigned at a slot
// listed in their hard-unavailable set. Hours outside the configured week
// simply never match a variable's slot, so they are silently ignored.
type TeacherUnavailable struct{}

func (TeacherUnavailable) Name() string { return "C-10 teacher unavailable hours" }

func (TeacherUnavailable) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	for _, t := range snap.Teachers {
		slots := v.TeacherSlots(t.ID)
		for day, hourSet := range t.Unavailable {
			for hour := range hourSet {
				pvs := slots[[2]int{day, hour}]
				if len(pvs) == 0 {
					continue
				}
				model.AddConstraint(cpsat.SumEQ(vars.Bools(pvs), 0))
			}
		}
	}
	return nil
}
