// Package cpsat implements a small boolean constraint-satisfaction and
// integer-linear-programming backend: boolean decision variables, linear
// relations over them (≤, =, ≥), and a maximising objective, solved by
// branch-and-bound with bounds propagation. It plays the role the solver
// driver (C5) submits a model to, in the spirit of a CP-SAT backend, without
// depending on an external solver library.
//
// The package splits a Model from its Solver and runs a time/node-limited,
// incumbent-tracking search. Variables are native booleans, which fits the
// x[g,s,t,d,h] ∈ {0,1} decision variables and keeps constraint posting
// linear.
package cpsat

// BoolVar is a boolean decision variable. Its only state is an identity; the
// assignment during search lives in the solver, not here, so a Model can be
// solved more than once.
type BoolVar struct {
	id   int
	name string
}

// ID returns the variable's stable index within its Model.
func (v *BoolVar) ID() int { return v.id }

// Name returns the variable's diagnostic label.
func (v *BoolVar) Name() string { return v.name }

// Term is one coefficient*variable product inside a LinearConstraint or an
// Objective.
type Term struct {
	Var   *BoolVar
	Coeff int
}

// Objective is a weighted sum of boolean variables to maximise.
type Objective struct {
	Terms []Term
}

// Model collects the variables, constraints and objective of one solve. It is
// built by C2 (variables) and C3 (constraints), then handed to a Solver by
// C5. A Model has no solving logic of its own.
type Model struct {
	vars        []*BoolVar
	constraints []*LinearConstraint
	objective   *Objective
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar allocates a fresh boolean variable.
func (m *Model) NewBoolVar(name string) *BoolVar {
	v := &BoolVar{id: len(m.vars), name: name}
	m.vars = append(m.vars, v)
	return v
}

// AddConstraint posts a linear relation over the model's variables.
func (m *Model) AddConstraint(c *LinearConstraint) {
	if c == nil {
		return
	}
	m.constraints = append(m.constraints, c)
}

// AddObjectiveTerms accumulates weighted terms into the model's maximisation
// objective, creating it on first use. Called repeatedly by soft constraints
// (C-12, C-13); the objective assembler (C4) does not need to merge anything
// itself.
func (m *Model) AddObjectiveTerms(terms ...Term) {
	if len(terms) == 0 {
		return
	}
	if m.objective == nil {
		m.objective = &Objective{}
	}
	m.objective.Terms = append(m.objective.Terms, terms...)
}

// HasObjective reports whether any soft term was ever added; a model with no
// objective is a pure feasibility problem (spec §4.4).
func (m *Model) HasObjective() bool {
	return m.objective != nil && len(m.objective.Terms) > 0
}

// NumVars returns the number of variables allocated in the model.
func (m *Model) NumVars() int { return len(m.vars) }

// Vars returns the model's variables in creation order.
func (m *Model) Vars() []*BoolVar { return m.vars }
