package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// TutorMandatory is C-11: a teacher designated tutor of a group must teach
// that group's first and last weekly slot, restricted to standalone
// subjects (a bundled slot cannot satisfy the rule). Skipped entirely when
// no eligible variable exists for a teacher.
type TutorMandatory struct{}

func (TutorMandatory) Name() string { return "C-11 tutor mandatory" }

func (TutorMandatory) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	lastDay := len(snap.Config.DayIndices) - 1
	lastHour := snap.Config.ClassesPerDay - 1
	if lastDay < 0 || lastHour < 0 {
		return nil
	}
	for _, t := range snap.Teachers {
		if t.TutorGroup == "" {
			continue
		}
		g, ok := findGroup(snap, t.TutorGroup)
		if !ok {
			continue
		}
		standalone := standaloneSubjects(snap, g.CourseID)
		if err := postMandatorySlot(model, v, g.ID, t.ID, 0, 0, standalone); err != nil {
			return err
		}
		if err := postMandatorySlot(model, v, g.ID, t.ID, lastDay, lastHour, standalone); err != nil {
			return err
		}
	}
	return nil
}

func postMandatorySlot(model *cpsat.Model, v *vars.Variables, group, teacherID string, day, hour int, standalone map[string]bool) error {
	var pvs []*vars.Var
	for _, pv := range v.InGroupSlot(group, day, hour) {
		if pv.Teacher == teacherID && standalone[pv.Subject] {
			pvs = append(pvs, pv)
		}
	}
	if len(pvs) == 0 {
		return nil
	}
	model.AddConstraint(cpsat.SumEQ(vars.Bools(pvs), 1))
	return nil
}

func standaloneSubjects(snap *snapshot.Snapshot, courseID string) map[string]bool {
	out := make(map[string]bool)
	for _, s := range snap.SubjectsOfCourse(courseID) {
		if s.SubjectGroupID == "" {
			out[s.ID] = true
		}
	}
	return out
}

func findGroup(snap *snapshot.Snapshot, groupID string) (snapshot.Group, bool) {
	for _, g := range snap.Groups {
		if g.ID == groupID {
			return g, true
		}
	}
	return snapshot.Group{}, false
}
