// Package ruleblock implements the RuleBlock: a named, ordered list of
// rules sharing one conjunction norm, disjunction norm, implication
// operator, and activation strategy.
package ruleblock

import (
	"github.com/loian/fuzzyengine/ferr"
	"github.com/loian/fuzzyengine/norm"
	"github.com/loian/fuzzyengine/rule"
)

// Activation decides, from a rule's firing degree, whether and how it
// contributes to its consequents' aggregated sets.
type Activation interface {
	Name() string
	// Activates reports whether degree is strong enough to fire at all.
	Activates(degree float64) bool
}

// generalActivation is the mandatory "General" strategy: a rule fires
// whenever its antecedent degree is strictly greater than zero.
type generalActivation struct{}

func (generalActivation) Name() string                { return "general" }
func (generalActivation) Activates(degree float64) bool { return degree > 0 }

// General is the baseline activation strategy every engine must support.
var General Activation = generalActivation{}

// RuleBlock groups rules that fire together under one set of operators.
type RuleBlock struct {
	Name         string
	Enabled      bool
	Conjunction  norm.TNorm  // "and" in antecedents; nil if unused by every rule
	Disjunction  norm.SNorm  // "or" in antecedents; nil if unused by every rule
	Implication  norm.TNorm  // scales a Mamdani consequent by its firing degree
	Activation   Activation
	Rules        []*rule.Rule
}

// New constructs an empty, enabled rule block with the mandatory General
// activation strategy. Conjunction, Disjunction, and Implication start
// unset: a rule whose antecedent actually needs one it does not find
// reports a MissingOperator error rather than silently defaulting.
func New(name string) *RuleBlock {
	return &RuleBlock{Name: name, Enabled: true, Activation: General}
}

// AddRule appends a rule to the block.
func (b *RuleBlock) AddRule(r *rule.Rule) {
	b.Rules = append(b.Rules, r)
}

// ruleScope adapts a RuleBlock and an engine-provided variable scope into
// the rule.Scope a Rule.Degree needs; it exists so ruleblock can supply the
// block's own conjunction/disjunction without the rule package depending on
// ruleblock (which would cycle back through engine).
type ruleScope struct {
	block *RuleBlock
	vars  VariableScope
}

// VariableScope is the subset of an engine's bookkeeping a rule block needs
// to resolve propositions: input variable membership and output variable
// activation degree, both by (variable name, term name).
type VariableScope interface {
	InputDegree(variable, term string) (float64, bool)
	OutputDegree(variable, term string) (float64, bool)
}

func (s ruleScope) InputDegree(variable, term string) (float64, bool) {
	return s.vars.InputDegree(variable, term)
}

func (s ruleScope) OutputDegree(variable, term string) (float64, bool) {
	return s.vars.OutputDegree(variable, term)
}

func (s ruleScope) Conjunction() (norm.TNorm, bool) {
	if s.block.Conjunction == nil {
		return nil, false
	}
	return s.block.Conjunction, true
}

func (s ruleScope) Disjunction() (norm.SNorm, bool) {
	if s.block.Disjunction == nil {
		return nil, false
	}
	return s.block.Disjunction, true
}

// Fired is one rule's outcome within a block evaluation pass: its degree
// (post-activation-check). The engine resolves each consequent's
// implication itself, since NoneNorm applies per Evaluable term rather than
// per rule.
type Fired struct {
	Rule   *rule.Rule
	Degree float64
}

// RuleError pairs a rule with the error its evaluation raised.
type RuleError struct {
	Rule *rule.Rule
	Err  error
}

// Evaluate computes every enabled rule's antecedent degree against vars and
// returns the rules that pass the block's activation strategy. A rule whose
// antecedent needs a missing operator or references an unresolved name is
// reported in the returned RuleError slice and skipped; it never prevents
// the block's other rules from firing (spec section 7: a rule-level
// diagnostic is a warning, not an abort).
func (b *RuleBlock) Evaluate(vars VariableScope) ([]Fired, []RuleError) {
	if !b.Enabled {
		return nil, nil
	}
	scope := ruleScope{block: b, vars: vars}
	var fired []Fired
	var errs []RuleError
	for _, r := range b.Rules {
		if !r.Loaded {
			continue
		}
		degree, err := r.Degree(scope)
		if err != nil {
			errs = append(errs, RuleError{Rule: r, Err: err})
			continue
		}
		if !b.Activation.Activates(degree) {
			continue
		}
		fired = append(fired, Fired{Rule: r, Degree: degree})
	}
	return fired, errs
}

// RequireImplication returns the block's Mamdani implication, or a
// MissingOperator error if none is configured.
func (b *RuleBlock) RequireImplication() (norm.Implication, error) {
	if b.Implication == nil {
		return nil, ferr.NewMissingOperatorError("implication")
	}
	return norm.AsImplication(b.Implication), nil
}
