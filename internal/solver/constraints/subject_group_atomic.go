package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// SubjectGroupAtomic is C-6: at a given (group, slot), either every member
// of a SubjectGroup bundle is taught or none are. Enforced as a chain of
// pairwise equalities against the bundle's first member, which implies all
// members equal without an O(k²) blow-up.
type SubjectGroupAtomic struct{}

func (SubjectGroupAtomic) Name() string { return "C-6 subject group atomic co-assignment" }

func (SubjectGroupAtomic) Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error {
	for _, sg := range snap.SubjectGroups {
		if len(sg.SubjectIDs) < 2 {
			continue
		}
		first := sg.SubjectIDs[0]
		firstSubject := snap.Subjects[first]
		for _, g := range snap.GroupsOfCourse(firstSubject.CourseID) {
			for day := 0; day < len(snap.Config.DayIndices); day++ {
				for hour := 0; hour < snap.Config.ClassesPerDay; hour++ {
					base := vars.Bools(v.InGroupSubjectSlot(g.ID, first, day, hour))
					for _, other := range sg.SubjectIDs[1:] {
						otherVars := vars.Bools(v.InGroupSubjectSlot(g.ID, other, day, hour))
						model.AddConstraint(equalSums(base, otherVars))
					}
				}
			}
		}
	}
	return nil
}

// equalSums posts Σ a - Σ b = 0.
func equalSums(a, b []*cpsat.BoolVar) *cpsat.LinearConstraint {
	terms := make([]cpsat.Term, 0, len(a)+len(b))
	for _, v := range a {
		terms = append(terms, cpsat.Term{Var: v, Coeff: 1})
	}
	for _, v := range b {
		terms = append(terms, cpsat.Term{Var: v, Coeff: -1})
	}
	return cpsat.NewLinear(cpsat.EQ, 0, terms...)
}
