package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// WeeklyHours is C-1: every group must receive exactly s.weekly_hours of
// each of its subjects across the week.
type WeeklyHours struct{}

func (WeeklyHours) Name() string { return "C-1 subject weekly hours" }

func (WeeklyHours) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	for _, g := range snap.Groups {
		for _, s := range snap.SubjectsOfCourse(g.CourseID) {
			pvs := v.InGroupSubject(g.ID, s.ID)
			model.AddConstraint(cpsat.SumEQ(vars.Bools(pvs), s.WeeklyHours))
		}
	}
	return nil
}
