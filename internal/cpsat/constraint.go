package cpsat

// Op is the relational operator of a LinearConstraint.
type Op int

const (
	LE Op = iota // Σ coeff*var ≤ RHS
	EQ           // Σ coeff*var = RHS
	GE           // Σ coeff*var ≥ RHS
)

// LinearConstraint restricts a weighted sum of boolean variables against a
// constant. Coefficients may be negative, which is how equality-defined
// indicator variables (the aggregated "y" of C-3/C-5, the logical-unit
// booleans of C-7) are expressed: e.g. y - Σx_i = 0.
type LinearConstraint struct {
	Terms []Term
	Op    Op
	RHS   int
}

// NewLinear builds a constraint from explicit terms.
func NewLinear(op Op, rhs int, terms ...Term) *LinearConstraint {
	return &LinearConstraint{Terms: append([]Term(nil), terms...), Op: op, RHS: rhs}
}

// SumLE posts Σ vars ≤ k.
func SumLE(vars []*BoolVar, k int) *LinearConstraint {
	return NewLinear(LE, k, unitTerms(vars)...)
}

// SumGE posts Σ vars ≥ k.
func SumGE(vars []*BoolVar, k int) *LinearConstraint {
	return NewLinear(GE, k, unitTerms(vars)...)
}

// SumEQ posts Σ vars = k.
func SumEQ(vars []*BoolVar, k int) *LinearConstraint {
	return NewLinear(EQ, k, unitTerms(vars)...)
}

// Equals posts y = Σ vars as a single linear equality: y - Σvars = 0.
func Equals(y *BoolVar, vars []*BoolVar) *LinearConstraint {
	terms := make([]Term, 0, len(vars)+1)
	terms = append(terms, Term{Var: y, Coeff: 1})
	for _, v := range vars {
		terms = append(terms, Term{Var: v, Coeff: -1})
	}
	return NewLinear(EQ, 0, terms...)
}

// AtMostOne posts Σ vars ≤ 1.
func AtMostOne(vars []*BoolVar) *LinearConstraint {
	return SumLE(vars, 1)
}

// LessEqualSum posts lhs ≤ Σ rhs. An empty rhs forces lhs to 0, which is
// exactly the boundary case of C-5 (an hour with no adjacent neighbour can
// never host half of a linked pair).
func LessEqualSum(lhs *BoolVar, rhs []*BoolVar) *LinearConstraint {
	terms := make([]Term, 0, len(rhs)+1)
	terms = append(terms, Term{Var: lhs, Coeff: 1})
	for _, r := range rhs {
		terms = append(terms, Term{Var: r, Coeff: -1})
	}
	return NewLinear(LE, 0, terms...)
}

// AndNot posts z = a ∧ ¬b via its three linear facets: z≤a, z≤1-b, z≥a-b.
func AndNot(z, a, b *BoolVar) []*LinearConstraint {
	return []*LinearConstraint{
		NewLinear(LE, 0, Term{Var: z, Coeff: 1}, Term{Var: a, Coeff: -1}),
		NewLinear(LE, 1, Term{Var: z, Coeff: 1}, Term{Var: b, Coeff: 1}),
		NewLinear(GE, 0, Term{Var: z, Coeff: 1}, Term{Var: a, Coeff: -1}, Term{Var: b, Coeff: 1}),
	}
}

func unitTerms(vars []*BoolVar) []Term {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coeff: 1}
	}
	return terms
}
