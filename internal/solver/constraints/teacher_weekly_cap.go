package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// TeacherWeeklyCap is C-9: a teacher's total weekly load may not exceed
// max_hours_week.
type TeacherWeeklyCap struct{}

func (TeacherWeeklyCap) Name() string { return "C-9 teacher weekly cap" }

func (TeacherWeeklyCap) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	for _, t := range snap.Teachers {
		pvs := v.ByTeacher(t.ID)
		if len(pvs) == 0 {
			continue
		}
		model.AddConstraint(cpsat.SumLE(vars.Bools(pvs), t.MaxHoursWeek))
	}
	return nil
}
