package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// ConsecutivePolicy is C-3: per (group, subject, day), the hours used either
// form one contiguous block (consecutive_hours=true) or never sit adjacent
// (consecutive_hours=false). Subjects are partitioned by their own
// consecutive_hours flag exactly once (spec §9's open question).
type ConsecutivePolicy struct{}

func (ConsecutivePolicy) Name() string { return "C-3 consecutive hours policy" }

func (ConsecutivePolicy) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	hours := snap.Config.ClassesPerDay
	for _, g := range snap.Groups {
		for _, s := range snap.SubjectsOfCourse(g.CourseID) {
			for day := 0; day < len(snap.Config.DayIndices); day++ {
				y := buildAggregate(model, v, g.ID, s.ID, day, hours)
				if s.ConsecutiveHours {
					postContiguousBlock(model, g.ID, s.ID, day, y)
				} else {
					postNoAdjacency(model, y)
				}
			}
		}
	}
	return nil
}

// postContiguousBlock requires at most one "start of block" hour: a start at
// h means y[h]=1 and y[h-1]=0 (or h is the first hour of the day).
func postContiguousBlock(model *cpsat.Model, group, subjectID string, day int, y []*cpsat.BoolVar) {
	starts := make([]*cpsat.BoolVar, len(y))
	for h := range y {
		start := model.NewBoolVar(cpsat.StartName(group, subjectID, day, h))
		if h == 0 {
			model.AddConstraint(cpsat.Equals(start, []*cpsat.BoolVar{y[0]}))
		} else {
			for _, c := range cpsat.AndNot(start, y[h], y[h-1]) {
				model.AddConstraint(c)
			}
		}
		starts[h] = start
	}
	model.AddConstraint(cpsat.SumLE(starts, 1))
}

// postNoAdjacency forbids any two adjacent hours from both being used.
func postNoAdjacency(model *cpsat.Model, y []*cpsat.BoolVar) {
	for h := 0; h+1 < len(y); h++ {
		model.AddConstraint(cpsat.SumLE([]*cpsat.BoolVar{y[h], y[h+1]}, 1))
	}
}
