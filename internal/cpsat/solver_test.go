package cpsat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolverAtMostOneWithObjectivePicksBest(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	m.AddConstraint(AtMostOne([]*BoolVar{a, b, c}))
	m.AddObjectiveTerms(Term{Var: a, Coeff: 1}, Term{Var: b, Coeff: 5}, Term{Var: c, Coeff: 2})

	sol, status, err := NewSolver(m).Solve(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 5, sol.Objective)
	assert.Equal(t, 1, sol.Value(b))
	assert.Equal(t, 0, sol.Value(a))
	assert.Equal(t, 0, sol.Value(c))
}

func TestSolverInfeasible(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	// a >= 1 and a <= 0 simultaneously: unsatisfiable.
	m.AddConstraint(NewLinear(GE, 1, Term{Var: a, Coeff: 1}))
	m.AddConstraint(NewLinear(LE, 0, Term{Var: a, Coeff: 1}))

	sol, status, err := NewSolver(m).Solve(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, status)
	assert.Nil(t, sol)
}

func TestSolverEqualsIndicator(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	y := m.NewBoolVar("y")
	m.AddConstraint(NewLinear(EQ, 1, Term{Var: a, Coeff: 1})) // a = 1
	m.AddConstraint(NewLinear(EQ, 0, Term{Var: b, Coeff: 1})) // b = 0
	m.AddConstraint(Equals(y, []*BoolVar{a, b}))

	sol, status, err := NewSolver(m).Solve(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 1, sol.Value(a))
	assert.Equal(t, 0, sol.Value(b))
	assert.Equal(t, 1, sol.Value(y)) // y - a - b = 0 with a=1, b=0 => y = 1
}

func TestSolverLessEqualSumEmptyForcesZero(t *testing.T) {
	m := NewModel()
	lhs := m.NewBoolVar("lhs")
	m.AddConstraint(LessEqualSum(lhs, nil))

	sol, status, err := NewSolver(m).Solve(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 0, sol.Value(lhs))
}

func TestSolverAndNot(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	z := m.NewBoolVar("z")
	m.AddConstraint(NewLinear(EQ, 1, Term{Var: a, Coeff: 1})) // a = 1
	m.AddConstraint(NewLinear(EQ, 0, Term{Var: b, Coeff: 1})) // b = 0
	for _, c := range AndNot(z, a, b) {
		m.AddConstraint(c)
	}

	sol, status, err := NewSolver(m).Solve(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 1, sol.Value(z)) // a=1, b=0 => z = a ∧ ¬b = 1
}

func TestSolverRespectsCancelledContext(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddConstraint(AtMostOne([]*BoolVar{a, b}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol, status, err := NewSolver(m).Solve(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, status)
	assert.Nil(t, sol)
}

func TestSolverEmptyModelIsTriviallyOptimal(t *testing.T) {
	m := NewModel()
	sol, status, err := NewSolver(m).Solve(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 0, sol.Objective)
}

func TestSolverNodeLimitYieldsUnknownOnHardProblem(t *testing.T) {
	m := NewModel()
	// 20 free booleans with a loose objective: branch-and-bound without
	// propagation shortcuts explores far more than a tiny node budget allows.
	vars := make([]*BoolVar, 20)
	terms := make([]Term, 20)
	for i := range vars {
		vars[i] = m.NewBoolVar("v")
		terms[i] = Term{Var: vars[i], Coeff: i + 1}
	}
	m.AddConstraint(SumLE(vars, 10))
	m.AddObjectiveTerms(terms...)

	_, status, err := NewSolver(m).Solve(context.Background(), Options{NodeLimit: 1})
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, status) // second node exceeds the limit before any incumbent exists
}

func TestSolverTimeBudgetExceededStillReturnsNoError(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	m.AddConstraint(NewLinear(EQ, 1, Term{Var: a, Coeff: 1}))

	_, status, err := NewSolver(m).Solve(context.Background(), Options{TimeBudget: time.Nanosecond})
	require.NoError(t, err)
	assert.NotEmpty(t, status)
}
