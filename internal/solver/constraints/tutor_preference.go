package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// TutorPreference is C-13 (soft): reward a tutor teaching their own group so
// tutors gravitate toward their home class.
type TutorPreference struct {
	Weight int
}

func (TutorPreference) Name() string { return "C-13 tutor preference" }

func (c TutorPreference) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	if c.Weight == 0 {
		return nil
	}
	for _, t := range snap.Teachers {
		if t.TutorGroup == "" {
			continue
		}
		for _, pv := range v.ByGroup(t.TutorGroup) {
			if pv.Teacher != t.ID {
				continue
			}
			model.AddObjectiveTerms(cpsat.Term{Var: pv.Bool, Coeff: c.Weight})
		}
	}
	return nil
}
