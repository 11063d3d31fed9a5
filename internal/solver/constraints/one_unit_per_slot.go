package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// OneUnitPerSlot is C-7: at most one logical unit may occupy a (group, day,
// hour) cell. A standalone subject is its own unit; a SubjectGroup bundle
// counts as a single unit, represented by its first member (C-6 already
// forces every member to agree).
type OneUnitPerSlot struct{}

func (OneUnitPerSlot) Name() string { return "C-7 one logical unit per slot" }

func (OneUnitPerSlot) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	for _, g := range snap.Groups {
		subjects := snap.SubjectsOfCourse(g.CourseID)
		bundleRep := make(map[string]string) // subject_group_id -> representative subject id
		for _, s := range subjects {
			if s.SubjectGroupID != "" {
				if _, ok := bundleRep[s.SubjectGroupID]; !ok {
					bundleRep[s.SubjectGroupID] = s.ID
				}
			}
		}
		for day := 0; day < len(snap.Config.DayIndices); day++ {
			for hour := 0; hour < snap.Config.ClassesPerDay; hour++ {
				var units []*cpsat.BoolVar
				for _, s := range subjects {
					if s.SubjectGroupID != "" {
						continue
					}
					units = append(units, unitIndicator(model, v, g.ID, s.ID, "s:"+s.ID, day, hour))
				}
				for sgID, rep := range bundleRep {
					units = append(units, unitIndicator(model, v, g.ID, rep, "b:"+sgID, day, hour))
				}
				if len(units) > 1 {
					model.AddConstraint(cpsat.SumLE(units, 1))
				}
			}
		}
	}
	return nil
}

func unitIndicator(model *cpsat.Model, v *vars.Variables, group, subjectID, unitLabel string, day, hour int) *cpsat.BoolVar {
	pvs := v.InGroupSubjectSlot(group, subjectID, day, hour)
	u := model.NewBoolVar(cpsat.UnitName(group, unitLabel, day, hour))
	model.AddConstraint(cpsat.Equals(u, vars.Bools(pvs)))
	return u
}
