package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// TeachEveryDay is C-4: subjects flagged teach_every_day must appear at
// least once per day in every group of their course.
type TeachEveryDay struct{}

func (TeachEveryDay) Name() string { return "C-4 teach every day" }

func (TeachEveryDay) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	for _, s := range snap.Subjects {
		if !s.TeachEveryDay {
			continue
		}
		for _, g := range snap.GroupsOfCourse(s.CourseID) {
			for day := 0; day < len(snap.Config.DayIndices); day++ {
				pvs := v.InGroupSubjectDay(g.ID, s.ID, day)
				model.AddConstraint(cpsat.SumGE(vars.Bools(pvs), 1))
			}
		}
	}
	return nil
}
