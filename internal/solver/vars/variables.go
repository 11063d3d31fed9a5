// Package vars implements C2, the variable builder: it enumerates the
// eligible (group, subject, teacher, day, hour) tuples of a snapshot and
// allocates one boolean decision variable per tuple, plus four hash indices
// so every constraint in C3 can look up its working set in O(1) rather than
// scanning the full variable list (spec §9, "the single most important
// performance decision").
package vars

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
)

// Var is one decision variable x[g,s,t,d,h] together with the key it was
// created for, so constraints never need to re-derive it from the boolean's
// name.
type Var struct {
	Bool    *cpsat.BoolVar
	Group   string
	Subject string
	Teacher string
	Day     int
	Hour    int
}

type slotKey struct {
	Day  int
	Hour int
}

// Variables is the O(1)-lookup index over every variable of one solve.
type Variables struct {
	All       []*Var
	byGroup   map[string][]*Var
	byTeacher map[string][]*Var
	bySubject map[string][]*Var
	bySlot    map[slotKey][]*Var
}

// Build enumerates x[g,s,t,d,h] for every group g, subject s with
// s.course_id == g.course, teacher t eligible for s, and valid slot (d,h).
func Build(model *cpsat.Model, snap *snapshot.Snapshot) *Variables {
	v := &Variables{
		byGroup:   make(map[string][]*Var),
		byTeacher: make(map[string][]*Var),
		bySubject: make(map[string][]*Var),
		bySlot:    make(map[slotKey][]*Var),
	}

	// day is the positional index 0..D-1 into Config.DayIndices, not the raw
	// weekday value the position maps to; that mapping only matters at the
	// import/export boundary (spec §6), never inside a decision variable.
	for _, group := range snap.Groups {
		subjects := snap.SubjectsOfCourse(group.CourseID)
		for _, subject := range subjects {
			teachers := snap.TeachersEligibleFor(subject.ID)
			for _, teacher := range teachers {
				for day := 0; day < len(snap.Config.DayIndices); day++ {
					for hour := 0; hour < snap.Config.ClassesPerDay; hour++ {
						name := cpsat.VarName(group.ID, subject.ID, teacher.ID, day, hour)
						bv := model.NewBoolVar(name)
						pv := &Var{
							Bool:    bv,
							Group:   group.ID,
							Subject: subject.ID,
							Teacher: teacher.ID,
							Day:     day,
							Hour:    hour,
						}
						v.add(pv)
					}
				}
			}
		}
	}
	return v
}

func (v *Variables) add(pv *Var) {
	v.All = append(v.All, pv)
	v.byGroup[pv.Group] = append(v.byGroup[pv.Group], pv)
	v.byTeacher[pv.Teacher] = append(v.byTeacher[pv.Teacher], pv)
	v.bySubject[pv.Subject] = append(v.bySubject[pv.Subject], pv)
	key := slotKey{Day: pv.Day, Hour: pv.Hour}
	v.bySlot[key] = append(v.bySlot[key], pv)
}

// ByGroup returns every variable whose group is g.
func (v *Variables) ByGroup(g string) []*Var { return v.byGroup[g] }

// ByTeacher returns every variable whose teacher is t.
func (v *Variables) ByTeacher(t string) []*Var { return v.byTeacher[t] }

// BySubject returns every variable whose subject is s.
func (v *Variables) BySubject(s string) []*Var { return v.bySubject[s] }

// BySlot returns every variable at (day, hour), across all groups.
func (v *Variables) BySlot(day, hour int) []*Var { return v.bySlot[slotKey{Day: day, Hour: hour}] }

// InGroupSlot filters ByGroup(g) down to one (day, hour); groups have at most
// a few dozen variables per slot so this scan is cheap relative to a fifth
// hash index.
func (v *Variables) InGroupSlot(g string, day, hour int) []*Var {
	var out []*Var
	for _, pv := range v.byGroup[g] {
		if pv.Day == day && pv.Hour == hour {
			out = append(out, pv)
		}
	}
	return out
}

// InGroupSubject filters ByGroup(g) down to one subject, across all days and
// hours, used by the weekly-hours constraint.
func (v *Variables) InGroupSubject(g, subjectID string) []*Var {
	var out []*Var
	for _, pv := range v.byGroup[g] {
		if pv.Subject == subjectID {
			out = append(out, pv)
		}
	}
	return out
}

// InGroupSubjectDay filters ByGroup(g) down to one subject and day, used by
// the teach-every-day constraint.
func (v *Variables) InGroupSubjectDay(g, subjectID string, day int) []*Var {
	var out []*Var
	for _, pv := range v.byGroup[g] {
		if pv.Subject == subjectID && pv.Day == day {
			out = append(out, pv)
		}
	}
	return out
}

// InGroupSubjectTeacherDay filters ByGroup(g) down to one subject, teacher and
// day, across hours, used by the max-hours-per-day constraint.
func (v *Variables) InGroupSubjectTeacherDay(g, subjectID, teacherID string, day int) []*Var {
	var out []*Var
	for _, pv := range v.byGroup[g] {
		if pv.Subject == subjectID && pv.Teacher == teacherID && pv.Day == day {
			out = append(out, pv)
		}
	}
	return out
}

// InGroupSubjectSlot filters ByGroup(g) down to one subject at one (day,
// hour), across teachers; used by the SubjectGroup-atomicity and
// one-logical-unit-per-slot constraints.
func (v *Variables) InGroupSubjectSlot(g, subjectID string, day, hour int) []*Var {
	var out []*Var
	for _, pv := range v.byGroup[g] {
		if pv.Subject == subjectID && pv.Day == day && pv.Hour == hour {
			out = append(out, pv)
		}
	}
	return out
}

// TeacherSlots buckets every variable of teacher t by (day, hour); used by
// the teacher-no-clash and teacher-unavailable constraints, both of which
// need every variable a given teacher could occupy at a given slot.
func (v *Variables) TeacherSlots(t string) map[[2]int][]*Var {
	out := make(map[[2]int][]*Var)
	for _, pv := range v.byTeacher[t] {
		key := [2]int{pv.Day, pv.Hour}
		out[key] = append(out[key], pv)
	}
	return out
}

// TeachersOf returns the distinct teacher ids appearing among pvs, in first
// seen order.
func TeachersOf(pvs []*Var) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pv := range pvs {
		if !seen[pv.Teacher] {
			seen[pv.Teacher] = true
			out = append(out, pv.Teacher)
		}
	}
	return out
}

// Bools projects a slice of Var into their underlying boolean variables.
func Bools(pvs []*Var) []*cpsat.BoolVar {
	out := make([]*cpsat.BoolVar, len(pvs))
	for i, pv := range pvs {
		out[i] = pv.Bool
	}
	return out
}
