// Package engine implements the inference engine: the ordered collection
// of input variables, output variables, and rule blocks that together
// process one crisp input vector into one crisp output vector (spec
// section 2).
package engine

import (
	"math"

	"github.com/loian/fuzzyengine/defuzzifier"
	"github.com/loian/fuzzyengine/diagnostics"
	"github.com/loian/fuzzyengine/fuzzyset"
	"github.com/loian/fuzzyengine/norm"
	"github.com/loian/fuzzyengine/numeric"
	"github.com/loian/fuzzyengine/rule"
	"github.com/loian/fuzzyengine/ruleblock"
	"github.com/loian/fuzzyengine/term"
	"github.com/loian/fuzzyengine/variable"
)

// Kind classifies an engine's evaluation style, purely for diagnostics: it
// never changes how Process evaluates, only what String() callers use to
// describe what they built.
type Kind int

const (
	Unknown Kind = iota
	Mamdani
	TakagiSugeno
	Tsukamoto
	Larsen
	Hybrid
)

func (k Kind) String() string {
	switch k {
	case Mamdani:
		return "mamdani"
	case TakagiSugeno:
		return "takagi-sugeno"
	case Tsukamoto:
		return "tsukamoto"
	case Larsen:
		return "larsen"
	case Hybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Engine is the top-level inference object: an ordered set of input
// variables, output variables, and rule blocks, plus a numeric.Settings
// value (which no sub-component reads; see numeric.Settings).
type Engine struct {
	Name     string
	Settings numeric.Settings

	inputs      map[string]*variable.InputVariable
	inputOrder  []string
	outputs     map[string]*variable.OutputVariable
	outputOrder []string
	blocks      []*ruleblock.RuleBlock

	Diagnostics *diagnostics.Sink
}

// New constructs an empty engine with default numeric settings and a
// diagnostics sink writing to stderr.
func New(name string) *Engine {
	return &Engine{
		Name:        name,
		Settings:    numeric.DefaultSettings(),
		inputs:      make(map[string]*variable.InputVariable),
		outputs:     make(map[string]*variable.OutputVariable),
		Diagnostics: diagnostics.NewSink(nil),
	}
}

// AddInputVariable registers an input variable in declaration order.
func (e *Engine) AddInputVariable(v *variable.InputVariable) error {
	if _, exists := e.inputs[v.Name]; exists {
		return ferrDuplicate("input variable", v.Name)
	}
	e.inputs[v.Name] = v
	e.inputOrder = append(e.inputOrder, v.Name)
	return nil
}

// AddOutputVariable registers an output variable in declaration order.
func (e *Engine) AddOutputVariable(v *variable.OutputVariable) error {
	if _, exists := e.outputs[v.Name]; exists {
		return ferrDuplicate("output variable", v.Name)
	}
	e.outputs[v.Name] = v
	e.outputOrder = append(e.outputOrder, v.Name)
	return nil
}

// AddRuleBlock registers a rule block. Rule blocks evaluate in the order
// they were added.
func (e *Engine) AddRuleBlock(b *ruleblock.RuleBlock) {
	e.blocks = append(e.blocks, b)
}

// InputVariable looks up an input variable by name.
func (e *Engine) InputVariable(name string) (*variable.InputVariable, bool) {
	v, ok := e.inputs[name]
	return v, ok
}

// OutputVariable looks up an output variable by name.
func (e *Engine) OutputVariable(name string) (*variable.OutputVariable, bool) {
	v, ok := e.outputs[name]
	return v, ok
}

// InputVariables returns every input variable in declaration order.
func (e *Engine) InputVariables() []*variable.InputVariable {
	out := make([]*variable.InputVariable, len(e.inputOrder))
	for i, name := range e.inputOrder {
		out[i] = e.inputs[name]
	}
	return out
}

// OutputVariables returns every output variable in declaration order.
func (e *Engine) OutputVariables() []*variable.OutputVariable {
	out := make([]*variable.OutputVariable, len(e.outputOrder))
	for i, name := range e.outputOrder {
		out[i] = e.outputs[name]
	}
	return out
}

// Restart clears every output variable's aggregated set and crisp value and
// resets its previous value to NaN, per spec section 4.8's clear()
// semantics and section 6's Engine.restart() contract. Input variable
// values are left untouched; a caller reassigns those itself before the
// next Process call.
func (e *Engine) Restart() {
	for _, name := range e.outputOrder {
		out := e.outputs[name]
		out.Clear()
		out.PreviousValue = math.NaN()
	}
}

// Variables implements term.Environment: Linear and Function consequent
// terms resolve their expressions against the engine's current input
// values through this method, wired in at Build time.
func (e *Engine) Variables() map[string]float64 {
	values := make(map[string]float64, len(e.inputOrder))
	for _, name := range e.inputOrder {
		values[name] = e.inputs[name].Value()
	}
	return values
}

// Build wires every Linear/Function consequent term across every rule
// block's rules to this engine's Environment. It must be called once after
// every variable, term, and rule block has been added and before the first
// Process call, mirroring the load-time reference resolution described for
// rules themselves.
func (e *Engine) Build() {
	for _, block := range e.blocks {
		for _, r := range block.Rules {
			for _, c := range r.Consequents {
				out, ok := e.outputs[c.Variable]
				if !ok {
					continue
				}
				t, ok := out.Term(c.Term)
				if !ok {
					continue
				}
				if withEnv, ok := t.(interface{ SetEnvironment(term.Environment) }); ok {
					withEnv.SetEnvironment(e)
				}
			}
		}
	}
}

// HasVariable implements rule.Resolver: reports whether name is a
// registered input or output variable, so Rule.Create can eagerly reject a
// rule referencing an unknown variable when an engine is supplied.
func (e *Engine) HasVariable(name string) bool {
	if _, ok := e.inputs[name]; ok {
		return true
	}
	_, ok := e.outputs[name]
	return ok
}

// HasTerm implements rule.Resolver: reports whether variable (input or
// output) has a term named term.
func (e *Engine) HasTerm(variableName, termName string) bool {
	if v, ok := e.inputs[variableName]; ok {
		_, known := v.Term(termName)
		return known
	}
	if v, ok := e.outputs[variableName]; ok {
		_, known := v.Term(termName)
		return known
	}
	return false
}

// InputDegree implements ruleblock.VariableScope: the membership degree of
// an input variable's named term at its current crisp value.
func (e *Engine) InputDegree(variableName, termName string) (float64, bool) {
	v, ok := e.inputs[variableName]
	if !ok {
		return 0, false
	}
	t, ok := v.Term(termName)
	if !ok {
		return 0, false
	}
	return t.Membership(v.Value()), true
}

// OutputDegree implements ruleblock.VariableScope: the activation degree an
// output variable's named term has already accumulated this pass, used when
// a rule's antecedent references an output variable (feedback position).
func (e *Engine) OutputDegree(variableName, termName string) (float64, bool) {
	v, ok := e.outputs[variableName]
	if !ok {
		return 0, false
	}
	if _, known := v.Term(termName); !known {
		return 0, false
	}
	return v.Fuzzy.ActivationDegree(termName), true
}

// Process runs one inference pass (spec section 4.9):
//  1. every output variable's aggregated set is cleared;
//  2. each rule block is evaluated in order, accumulating activated
//     consequent terms onto their output variables' aggregated sets
//     (a rule needing a missing operator, or referencing an unresolved
//     name, is reported to Diagnostics and skipped rather than aborting
//     the pass);
//  3. every output variable is defuzzified, which also records its crisp
//     value as the previous value for the next pass's LockPrevious.
func (e *Engine) Process() error {
	e.Diagnostics.Reset()
	for _, v := range e.outputs {
		v.Clear()
	}

	for _, block := range e.blocks {
		fired, errs := block.Evaluate(e)
		for _, re := range errs {
			e.Diagnostics.Report(block.Name, re.Rule.Text, re.Err)
		}
		for _, f := range fired {
			for _, c := range f.Rule.Consequents {
				if err := e.activate(block, f, c); err != nil {
					e.Diagnostics.Report(block.Name, f.Rule.Text, err)
				}
			}
		}
	}

	for _, name := range e.outputOrder {
		if err := e.outputs[name].Defuzzify(); err != nil {
			return err
		}
	}
	return nil
}

// activate resolves one fired rule's consequent term and accumulates it
// onto its output variable's aggregated set, choosing NoneNorm for
// Evaluable (Takagi-Sugeno) terms and the block's configured Mamdani
// implication otherwise.
func (e *Engine) activate(block *ruleblock.RuleBlock, f ruleblock.Fired, c rule.Consequent) error {
	out, ok := e.outputs[c.Variable]
	if !ok {
		return ferrUnknownVariable(c.Variable)
	}
	t, ok := out.Term(c.Term)
	if !ok {
		return ferrUnknownVariable(c.Variable + "." + c.Term)
	}

	degree := hedgeApply(c, f.Degree)

	var implication norm.Implication
	if _, evaluable := t.(term.Evaluable); evaluable {
		implication = norm.NoneNorm
	} else {
		imp, err := block.RequireImplication()
		if err != nil {
			return err
		}
		implication = imp
	}

	out.Fuzzy.Add(fuzzyset.Activated{Term: t, Degree: degree, Implication: implication})
	return nil
}

// hedgeApply composes a consequent's hedges left-to-right (spec section
// 4.5), the opposite order from an antecedent proposition's right-to-left
// composition (hedge.Apply): the first-declared hedge is applied to the
// raw activation degree first, and each subsequent hedge modifies the
// previous result.
func hedgeApply(c rule.Consequent, degree float64) float64 {
	for _, h := range c.Hedges {
		degree = h.Hedge(degree)
	}
	return degree
}

// Type classifies the engine's evaluation style for diagnostic purposes: it
// inspects every output variable's configured defuzzifier and every rule
// block's implication, and never influences Process's actual computation.
func (e *Engine) Type() Kind {
	sawMamdani, sawSugeno, sawTsukamoto, sawLarsen := false, false, false, false
	for _, block := range e.blocks {
		if block.Implication != nil && block.Implication.Name() == "algebraic-product" {
			sawLarsen = true
		}
	}
	for _, out := range e.outputs {
		switch out.Defuzzifier.(type) {
		case defuzzifier.Integral:
			sawMamdani = true
		case defuzzifier.WeightedAverage, defuzzifier.WeightedSum:
			if outputHasEvaluableTerm(out) {
				sawSugeno = true
			} else {
				sawTsukamoto = true
			}
		}
	}
	count := 0
	for _, b := range []bool{sawMamdani, sawSugeno, sawTsukamoto} {
		if b {
			count++
		}
	}
	switch {
	case count > 1:
		return Hybrid
	case sawLarsen:
		return Larsen
	case sawSugeno:
		return TakagiSugeno
	case sawTsukamoto:
		return Tsukamoto
	case sawMamdani:
		return Mamdani
	default:
		return Unknown
	}
}

func outputHasEvaluableTerm(out *variable.OutputVariable) bool {
	for _, t := range out.Terms() {
		if _, ok := t.(term.Evaluable); ok {
			return true
		}
	}
	return false
}
