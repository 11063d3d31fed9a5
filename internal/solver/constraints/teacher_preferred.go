package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// TeacherPreferred is C-12 (soft): reward placing a teacher's classes at
// hours they marked preferred.
type TeacherPreferred struct {
	Weight int
}

func (TeacherPreferred) Name() string { return "C-12 teacher preferred hours" }

func (c TeacherPreferred) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	if c.Weight == 0 {
		return nil
	}
	for _, t := range snap.Teachers {
		slots := v.TeacherSlots(t.ID)
		for day, hourSet := range t.Preferred {
			for hour := range hourSet {
				pvs := slots[[2]int{day, hour}]
				for _, pv := range pvs {
					model.AddObjectiveTerms(cpsat.Term{Var: pv.Bool, Coeff: c.Weight})
				}
			}
		}
	}
	return nil
}
