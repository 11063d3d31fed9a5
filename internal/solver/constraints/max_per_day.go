package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// MaxHoursPerDay is C-2: a teacher may not teach the same subject to the
// same group more than s.max_hours_per_day times on any one day.
type MaxHoursPerDay struct{}

func (MaxHoursPerDay) Name() string { return "C-2 subject max hours per day" }

func (MaxHoursPerDay) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	for _, g := range snap.Groups {
		for _, s := range snap.SubjectsOfCourse(g.CourseID) {
			teachers := snap.TeachersEligibleFor(s.ID)
			for _, t := range teachers {
				for day := 0; day < len(snap.Config.DayIndices); day++ {
					pvs := v.InGroupSubjectTeacherDay(g.ID, s.ID, t.ID, day)
					if len(pvs) == 0 {
						continue
					}
					model.AddConstraint(cpsat.SumLE(vars.Bools(pvs), s.MaxHoursPerDay))
				}
			}
		}
	}
	return nil
}
