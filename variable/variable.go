// Package variable implements the linguistic variable (spec section 3):
// a named range of discourse populated with terms, holding the crisp value
// an engine fuzzifies or, for outputs, defuzzifies into.
package variable

import (
	"fmt"
	"math"

	"github.com/loian/fuzzyengine/term"
)

// Variable is a linguistic variable: a name, a range of discourse, an
// ordered set of uniquely-named terms, and the crisp value currently held.
// InputVariable and OutputVariable both embed it.
type Variable struct {
	Name        string
	Description string
	Enabled     bool
	Min, Max    float64
	LockRange   bool

	value     float64
	terms     map[string]term.Term
	termOrder []string
}

// New constructs a Variable over [min, max]. The invariant min <= max is
// enforced; equal bounds are accepted (a degenerate, single-point domain).
func New(name string, min, max float64) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("variable: name cannot be empty")
	}
	if min > max {
		return nil, fmt.Errorf("variable: min (%v) must be <= max (%v)", min, max)
	}
	return &Variable{
		Name:    name,
		Enabled: true,
		Min:     min,
		Max:     max,
		value:   math.NaN(),
		terms:   make(map[string]term.Term),
	}, nil
}

// AddTerm adds a term to the variable. Term names must be unique within the
// variable.
func (v *Variable) AddTerm(t term.Term) error {
	if t == nil {
		return fmt.Errorf("variable %q: term cannot be nil", v.Name)
	}
	if _, exists := v.terms[t.Name()]; exists {
		return fmt.Errorf("variable %q: term %q already exists", v.Name, t.Name())
	}
	v.terms[t.Name()] = t
	v.termOrder = append(v.termOrder, t.Name())
	return nil
}

// Term looks up a term by name.
func (v *Variable) Term(name string) (term.Term, bool) {
	t, ok := v.terms[name]
	return t, ok
}

// Terms returns every term in declaration order.
func (v *Variable) Terms() []term.Term {
	out := make([]term.Term, len(v.termOrder))
	for i, name := range v.termOrder {
		out[i] = v.terms[name]
	}
	return out
}

// Value returns the variable's current crisp value.
func (v *Variable) Value() float64 { return v.value }

// SetValue assigns the variable's crisp value. When LockRange is set, the
// value is clamped to [Min, Max] before being stored.
func (v *Variable) SetValue(x float64) {
	if v.LockRange && !math.IsNaN(x) {
		x = clamp(x, v.Min, v.Max)
	}
	v.value = x
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Fuzzify returns the membership degree of x at every term, computed via
// Membership(x), keyed by term name.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	result := make(map[string]float64, len(v.terms))
	for name, t := range v.terms {
		result[name] = t.Membership(x)
	}
	return result
}

// FuzzifyString renders Fuzzify(x) in the stable textual form of spec
// section 6: "mu1/term1 + mu2/term2 - mu3/term3 ...", term order matching
// declaration order, separators chosen by the sign of each mu (NaN uses
// "+"), numbers formatted with the given decimal precision.
func (v *Variable) FuzzifyString(x float64, precision int) string {
	out := ""
	for i, name := range v.termOrder {
		mu := v.terms[name].Membership(x)
		sep := "+"
		magnitude := mu
		if !math.IsNaN(mu) && mu < 0 {
			sep = "-"
			magnitude = -mu
		}
		if i == 0 {
			if sep == "-" {
				out += "-"
			}
		} else {
			out += fmt.Sprintf(" %s ", sep)
		}
		out += fmt.Sprintf("%.*f/%s", precision, magnitude, name)
	}
	return out
}

// HighestMembership returns the term with the greatest membership at x, and
// its degree. Ties are resolved in declaration order (the first maximum
// wins). Terms whose membership is NaN are skipped. Returns (0, nil) if the
// variable has no terms or every term evaluates to NaN at x.
func (v *Variable) HighestMembership(x float64) (float64, term.Term) {
	var bestTerm term.Term
	best := math.Inf(-1)
	for _, name := range v.termOrder {
		mu := v.terms[name].Membership(x)
		if math.IsNaN(mu) {
			continue
		}
		if mu > best {
			best = mu
			bestTerm = v.terms[name]
		}
	}
	if bestTerm == nil {
		return 0, nil
	}
	return best, bestTerm
}

// IsValid reports whether x lies within the variable's range of discourse.
func (v *Variable) IsValid(x float64) bool {
	return x >= v.Min && x <= v.Max
}
