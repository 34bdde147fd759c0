package defuzzifier

import (
	"math"

	"github.com/loian/fuzzyengine/ferr"
	"github.com/loian/fuzzyengine/fuzzyset"
	"github.com/loian/fuzzyengine/norm"
	"github.com/loian/fuzzyengine/term"
)

// representative returns an activated term's characteristic value: for an
// Evaluable term (Constant/Linear/Function) this is Evaluate(); for a
// monotonic Tsukamoto term it is the x at which Membership(x) equals the
// rule's firing degree, found by bisection since monotonic terms have no
// closed-form inverse exposed on the Term interface.
func representative(activated fuzzyset.Activated, min, max float64) float64 {
	if ev, ok := activated.Term.(term.Evaluable); ok {
		return ev.Evaluate()
	}
	return inverseByBisection(activated.Term, activated.Degree, min, max)
}

// inverseByBisection finds x in [min, max] such that term.Membership(x) is
// approximately target, assuming Membership is monotonic over the range (the
// Tsukamoto precondition). It never raises: when the term's membership never
// reaches target within the range, the search converges to the range
// endpoint whose membership is closest to it, and a NaN membership stops the
// search at the midpoint of the current bracket.
func inverseByBisection(t term.Term, target, min, max float64) float64 {
	lo, hi := min, max
	muLo, muHi := t.Membership(lo), t.Membership(hi)
	increasing := muHi >= muLo
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		mu := t.Membership(mid)
		if math.IsNaN(mu) {
			break
		}
		if (increasing && mu < target) || (!increasing && mu > target) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// WeightedMode selects how a weighted defuzzifier folds an activated term's
// firing degree into its representative value (spec section 4.7's
// "Automatic" strategy).
type WeightedMode int

const (
	// TakeAndMultiply routes the degree and the representative value through
	// the rule block's own implication norm (activated.Implication.Imply),
	// so a Minimum-implication block weights by min(degree, value) rather
	// than their algebraic product. This is the default: the zero value of
	// WeightedMode.
	TakeAndMultiply WeightedMode = iota
	// Take ignores the block's implication and weights by the plain
	// algebraic product of degree and representative value.
	Take
)

// weightedNumerator folds one activated term's representative value and
// firing degree together per mode. A Takagi-Sugeno consequent's Implication
// is always NoneNorm (it ignores degree entirely, by design: see
// norm.NoneNorm), so there is no implication norm to route a multiply
// through; both modes fall back to the plain algebraic product for those
// terms, which is also what the headline Σwᵢzᵢ formula already specifies.
func weightedNumerator(activated fuzzyset.Activated, value float64, mode WeightedMode) float64 {
	if mode == Take || activated.Implication == norm.NoneNorm {
		return value * activated.Degree
	}
	return activated.Implication.Imply(activated.Degree, value)
}

// WeightedAverage implements the weighted-average defuzzifier: the sum of
// each activated term's representative value folded with its firing degree
// per Mode, divided by the sum of degrees. The representative value is
// resolved automatically per term (Evaluate() for Takagi-Sugeno terms,
// inverse membership for Tsukamoto terms).
type WeightedAverage struct {
	Mode WeightedMode
}

func (d WeightedAverage) Defuzzify(agg *fuzzyset.Aggregated, min, max float64) (float64, error) {
	if len(agg.Terms) == 0 {
		return math.NaN(), nil
	}
	var numerator, denominator float64
	for _, activated := range agg.Terms {
		value := representative(activated, min, max)
		if math.IsNaN(value) {
			return math.NaN(), ferr.NewDomainError("weighted average: representative value is NaN")
		}
		numerator += weightedNumerator(activated, value, d.Mode)
		denominator += activated.Degree
	}
	if denominator == 0 {
		return math.NaN(), nil
	}
	return numerator / denominator, nil
}

// WeightedSum is WeightedAverage without the final normalization by the sum
// of degrees: used when an output's consequent weights are already
// understood to sum to something meaningful on their own (spec section
// 4.7).
type WeightedSum struct {
	Mode WeightedMode
}

func (d WeightedSum) Defuzzify(agg *fuzzyset.Aggregated, min, max float64) (float64, error) {
	if len(agg.Terms) == 0 {
		return math.NaN(), nil
	}
	var sum float64
	for _, activated := range agg.Terms {
		value := representative(activated, min, max)
		if math.IsNaN(value) {
			return math.NaN(), ferr.NewDomainError("weighted sum: representative value is NaN")
		}
		sum += weightedNumerator(activated, value, d.Mode)
	}
	return sum, nil
}
