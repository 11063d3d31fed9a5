// Package constraints implements C3, the constraint catalog: one small
// module per rule of spec §4.3 (C-1 through C-13), each posting boolean or
// linear relations over the variables built by vars.Build. Constraints are
// dispatched through a single Constraint interface and posted in a fixed
// static order by Catalog — no inheritance, no dynamic discovery (spec §9).
package constraints

import (
	"github.com/kelaskita/timetable/internal/cpsat"
	"github.com/kelaskita/timetable/internal/snapshot"
	"github.com/kelaskita/timetable/internal/solver/vars"
)

// Constraint posts its relations over model given the variable index and the
// snapshot it was built from. Soft constraints add terms to the model's
// objective instead of (or in addition to) posting hard relations.
type Constraint interface {
	Name() string
	Post(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot) error
}

// Weights are the configuration-time constants of the soft constraints
// (spec §4.4): C-12's w_pref and C-13's w_tutor.
type Weights struct {
	Preferred int // default 1
	Tutor     int // default 100
}

// DefaultWeights returns the spec's stated defaults.
func DefaultWeights() Weights {
	return Weights{Preferred: 1, Tutor: 100}
}

// Catalog returns every constraint in the fixed posting order C-1..C-13.
func Catalog(w Weights) []Constraint {
	return []Constraint{
		WeeklyHours{},
		MaxHoursPerDay{},
		ConsecutivePolicy{},
		TeachEveryDay{},
		LinkedSubjects{},
		SubjectGroupAtomic{},
		OneUnitPerSlot{},
		TeacherNoClash{},
		TeacherWeeklyCap{},
		TeacherUnavailable{},
		TutorMandatory{},
		TeacherPreferred{Weight: w.Preferred},
		TutorPreference{Weight: w.Tutor},
	}
}

// PostAll posts every constraint of the catalog in order, stopping at the
// first error.
func PostAll(model *cpsat.Model, v *vars.Variables, snap *snapshot.Snapshot, w Weights) error {
	for _, c := range Catalog(w) {
		if err := c.Post(model, v, snap); err != nil {
			return err
		}
	}
	return nil
}
