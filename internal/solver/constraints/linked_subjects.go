package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// LinkedSubjects is C-5: every scheduled hour of a linked subject must sit
// adjacent to an hour of its partner, on the same day. The snapshot loader
// already makes the link symmetric, so iterating every subject with
// linked_subject_id set covers both directions without special-casing.
type LinkedSubjects struct{}

func (LinkedSubjects) Name() string { return "C-5 linked subjects consecutive" }

func (LinkedSubjects) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	hours := snap.Config.ClassesPerDay
	for _, s := range snap.Subjects {
		if s.LinkedSubjectID == "" {
			continue
		}
		r := snap.Subjects[s.LinkedSubjectID]
		for _, g := range snap.GroupsOfCourse(s.CourseID) {
			for day := 0; day < len(snap.Config.DayIndices); day++ {
				ys := buildAggregate(model, v, g.ID, s.ID, day, hours)
				yr := buildAggregate(model, v, g.ID, r.ID, day, hours)
				for h := 0; h < hours; h++ {
					var neighbours []*cpsat.BoolVar
					if h-1 >= 0 {
						neighbours = append(neighbours, yr[h-1])
					}
					if h+1 < hours {
						neighbours = append(neighbours, yr[h+1])
					}
					model.AddConstraint(cpsat.LessEqualSum(ys[h], neighbours))
				}
			}
		}
	}
	return nil
}
