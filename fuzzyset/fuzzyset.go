// Package fuzzyset implements the intermediate fuzzy-set representations an
// inference pass produces: Activated (one consequent term scaled by its
// rule's firing degree) and Aggregated (every Activated term accumulated
// onto one output variable, combined by an S-norm).
package fuzzyset

import (
	"fmt"

	"github.com/loian/fuzzyengine/norm"
	"github.com/loian/fuzzyengine/term"
)

// Activated pairs a consequent term with the degree its rule fired at and
// the implication used to scale it. Membership(x) = implication(degree,
// term.Membership(x)) * term.Height() is already folded into
// term.Membership, so Activated only needs to apply the implication.
type Activated struct {
	Term        term.Term
	Degree      float64
	Implication norm.Implication
}

// Membership returns the activated term's contribution at x.
func (a Activated) Membership(x float64) float64 {
	return a.Implication.Imply(a.Degree, a.Term.Membership(x))
}

// Aggregated is the fuzzy set accumulated on one output variable across an
// inference pass: a sequence of Activated terms, combined pointwise by an
// aggregation S-norm, over a fixed range.
type Aggregated struct {
	VariableName string
	Min, Max     float64
	Aggregation  norm.SNorm // nil is valid: see Membership.
	Terms        []Activated
}

// NewAggregated creates an empty aggregated set for the named output
// variable over [min, max].
func NewAggregated(variableName string, min, max float64, aggregation norm.SNorm) *Aggregated {
	return &Aggregated{VariableName: variableName, Min: min, Max: max, Aggregation: aggregation}
}

// Add appends an activated term, as a rule block does each time one of its
// rules fires above the activation threshold (spec section 2, step 3).
func (a *Aggregated) Add(activated Activated) {
	a.Terms = append(a.Terms, activated)
}

// Clear empties the aggregated set, as required by OutputVariable.clear()
// (spec section 4.8).
func (a *Aggregated) Clear() {
	a.Terms = a.Terms[:0]
}

// Membership evaluates the aggregated fuzzy set at x. When an aggregation
// S-norm is configured, every activated term's membership at x is folded
// through it. When no aggregation norm is configured, it returns the
// membership of the first activated entry (0 when there is none);
// MembershipOfTerm selects the first entry for a given term instead.
func (a *Aggregated) Membership(x float64) float64 {
	if a.Aggregation != nil {
		values := make([]float64, len(a.Terms))
		for i, t := range a.Terms {
			values[i] = t.Membership(x)
		}
		return a.Aggregation.Reduce(values)
	}
	if len(a.Terms) == 0 {
		return 0
	}
	return a.Terms[0].Membership(x)
}

// MembershipOfTerm implements the "no aggregation norm" selection rule of
// spec section 3 explicitly: it returns the membership of the first
// Activated entry whose Term is literally queryTerm, not a pointwise
// combination, and false when no entry matches. Neither the defuzzifiers
// nor antecedent evaluation call it.
func (a *Aggregated) MembershipOfTerm(queryTerm term.Term, x float64) (float64, bool) {
	for _, t := range a.Terms {
		if t.Term == queryTerm {
			return t.Membership(x), true
		}
	}
	return 0, false
}

// ActivationDegree sums the activation degrees of every Activated entry
// matching the named term, used when an output variable appears in an
// antecedent proposition (spec section 4.4: "mu is taken from the
// aggregated set's activation degree for that term").
func (a *Aggregated) ActivationDegree(termName string) float64 {
	sum := 0.0
	for _, t := range a.Terms {
		if t.Term.Name() == termName {
			sum += t.Degree
		}
	}
	return sum
}

// String renders the aggregated set in the stable textual form of spec
// section 6 used by OutputVariable.fuzzy_value(): "mu1/term1 + mu2/term2 -
// mu3/term3 ...", separators chosen by the sign of each activated term's
// degree (NaN uses "+"), formatted with the given decimal precision.
func (a *Aggregated) String(precision int) string {
	if len(a.Terms) == 0 {
		return ""
	}
	out := ""
	for i, t := range a.Terms {
		sep := "+"
		degree := t.Degree
		if degree < 0 {
			sep = "-"
			degree = -degree
		}
		if i == 0 {
			if t.Degree < 0 {
				out += "-"
			}
		} else {
			out += fmt.Sprintf(" %s ", sep)
		}
		out += fmt.Sprintf("%.*f/%s", precision, degree, t.Term.Name())
	}
	return out
}
