package variable

import (
	"math"

	"github.com/loian/fuzzyengine/ferr"
	"github.com/loian/fuzzyengine/fuzzyset"
	"github.com/loian/fuzzyengine/norm"
)

// Defuzzifier reduces an aggregated fuzzy set to a crisp value. Defined
// locally rather than imported from a defuzzifier package so that package
// can depend on variable and fuzzyset without a cycle back here.
type Defuzzifier interface {
	Defuzzify(agg *fuzzyset.Aggregated, min, max float64) (float64, error)
}

// OutputVariable is a Variable an engine defuzzifies after evaluating its
// rule blocks (spec section 3, section 4.8).
type OutputVariable struct {
	Variable

	Fuzzy         *fuzzyset.Aggregated
	Defuzzifier   Defuzzifier
	LockPrevious  bool
	DefaultValue  float64
	PreviousValue float64
}

// NewOutput constructs an output variable over [min, max], with an empty
// aggregated set that has no aggregation norm (nil selects the first-entry
// rule of fuzzyset.Aggregated.Membership; SetAggregation installs one), and
// with DefaultValue and PreviousValue both NaN.
func NewOutput(name string, min, max float64) (*OutputVariable, error) {
	v, err := New(name, min, max)
	if err != nil {
		return nil, err
	}
	return &OutputVariable{
		Variable:      *v,
		Fuzzy:         fuzzyset.NewAggregated(name, min, max, nil),
		DefaultValue:  math.NaN(),
		PreviousValue: math.NaN(),
	}, nil
}

// SetAggregation installs the S-norm the output variable's aggregated set
// combines activated consequent terms with.
func (v *OutputVariable) SetAggregation(agg norm.SNorm) {
	v.Fuzzy.Aggregation = agg
}

// Clear empties the aggregated fuzzy set and resets the crisp value to NaN,
// as required at the start of every process() pass (spec section 4.9) before
// LockPrevious has a chance to record anything: Defuzzify, not Clear, is
// where the previous value is captured.
func (v *OutputVariable) Clear() {
	v.Fuzzy.Clear()
	v.value = math.NaN()
}

// Defuzzify reduces the accumulated aggregated set to a crisp value and
// applies the precedence rules of spec section 4.8, in order:
//
//  1. If the aggregated set is empty (no rule fired), the result is NaN
//     unless LockPrevious or a DefaultValue apply.
//  2. LockPrevious substitutes the last non-NaN output value when the fresh
//     result would be NaN.
//  3. DefaultValue substitutes a configured fallback when the result is
//     still NaN after (2).
//  4. LockRange clamps the final value to [Min, Max] (handled by SetValue).
//
// The previous value is captured here, immediately before computing the new
// one, so Defuzzify can be called repeatedly within a pass without losing
// the value a LockPrevious substitution would need.
func (v *OutputVariable) Defuzzify() error {
	if v.Defuzzifier == nil {
		return ferr.NewStateError("output variable " + v.Name + " has no defuzzifier configured")
	}
	prior := v.PreviousValue

	result, err := v.Defuzzifier.Defuzzify(v.Fuzzy, v.Min, v.Max)
	if err != nil {
		return err
	}

	if math.IsNaN(result) && v.LockPrevious && !math.IsNaN(prior) {
		result = prior
	}
	if math.IsNaN(result) && !math.IsNaN(v.DefaultValue) {
		result = v.DefaultValue
	}

	v.SetValue(result)
	if !math.IsNaN(v.value) {
		v.PreviousValue = v.value
	}
	return nil
}

// FuzzyValue renders the output variable's aggregated fuzzy set in the
// textual form of spec section 6.
func (v *OutputVariable) FuzzyValue(precision int) string {
	return v.Fuzzy.String(precision)
}
