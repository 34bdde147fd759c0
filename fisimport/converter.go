package fisimport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loian/fuzzyengine/defuzzifier"
	"github.com/loian/fuzzyengine/engine"
	"github.com/loian/fuzzyengine/norm"
	"github.com/loian/fuzzyengine/rule"
	"github.com/loian/fuzzyengine/ruleblock"
	"github.com/loian/fuzzyengine/term"
	"github.com/loian/fuzzyengine/variable"
)

// LoadFIS parses a .fis file and builds a ready-to-run Engine from it.
func LoadFIS(filename string) (*engine.Engine, error) {
	model, err := ParseFIS(filename)
	if err != nil {
		return nil, err
	}
	return ConvertToEngine(model)
}

// ConvertToEngine converts a parsed FISModel into an Engine, supporting both
// the "mamdani" and "sugeno" System.Type values: Sugeno systems carry
// Constant/Linear consequent terms and a weighted-average defuzzifier
// instead of the integral family.
func ConvertToEngine(model *FISModel) (*engine.Engine, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	sugeno := model.System.Type == "sugeno"
	if !sugeno && model.System.Type != "mamdani" && model.System.Type != "" {
		return nil, fmt.Errorf("unsupported FIS type %q (supported: mamdani, sugeno)", model.System.Type)
	}

	eng := engine.New(model.System.Name)

	for i, spec := range model.Inputs {
		v, err := convertInputVariable(spec)
		if err != nil {
			return nil, fmt.Errorf("input variable #%d (%q): %w", i+1, spec.Name, err)
		}
		if err := eng.AddInputVariable(v); err != nil {
			return nil, fmt.Errorf("input variable #%d (%q): %w", i+1, spec.Name, err)
		}
	}

	for i, spec := range model.Outputs {
		v, err := convertOutputVariable(spec, sugeno, model.System.DefuzzMethod, model.Inputs)
		if err != nil {
			return nil, fmt.Errorf("output variable #%d (%q): %w", i+1, spec.Name, err)
		}
		if err := eng.AddOutputVariable(v); err != nil {
			return nil, fmt.Errorf("output variable #%d (%q): %w", i+1, spec.Name, err)
		}
	}

	block := ruleblock.New("main")
	block.Conjunction = mapAndMethod(model.System.AndMethod)
	block.Disjunction = mapOrMethod(model.System.OrMethod)
	block.Implication = mapImpMethod(model.System.ImpMethod)
	for i, spec := range model.Rules {
		r, err := convertRule(spec, model.Inputs, model.Outputs, eng)
		if err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i+1, err)
		}
		block.AddRule(r)
	}
	eng.AddRuleBlock(block)
	eng.Build()

	return eng, nil
}

func convertInputVariable(spec VariableSection) (*variable.InputVariable, error) {
	v, err := variable.NewInput(spec.Name, spec.Range[0], spec.Range[1])
	if err != nil {
		return nil, err
	}
	for i, mf := range spec.MFs {
		t, err := convertTerm(mf)
		if err != nil {
			return nil, fmt.Errorf("membership function #%d (%q): %w", i+1, mf.Name, err)
		}
		if err := v.AddTerm(t); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func convertOutputVariable(spec VariableSection, sugeno bool, defuzzMethod string, inputs []VariableSection) (*variable.OutputVariable, error) {
	v, err := variable.NewOutput(spec.Name, spec.Range[0], spec.Range[1])
	if err != nil {
		return nil, err
	}
	for i, mf := range spec.MFs {
		var t term.Term
		var err error
		if mf.Type == "linear" {
			t, err = convertLinearTerm(mf, inputs)
		} else {
			t, err = convertTerm(mf)
		}
		if err != nil {
			return nil, fmt.Errorf("membership function #%d (%q): %w", i+1, mf.Name, err)
		}
		if err := v.AddTerm(t); err != nil {
			return nil, err
		}
	}
	v.SetAggregation(norm.Maximum)
	if sugeno {
		v.Defuzzifier = defuzzifier.WeightedAverage{}
	} else {
		v.Defuzzifier = mapIntegralDefuzzifier(defuzzMethod)
	}
	return v, nil
}

// convertTerm maps a .fis membership function spec onto a term.Term by
// calling the matching term constructor directly. "linear" (Sugeno
// consequents) is rejected here because it needs the input variable names;
// convertOutputVariable routes it to convertLinearTerm instead.
func convertTerm(spec MembershipFunctionSpec) (term.Term, error) {
	switch spec.Type {
	case "trimf":
		return expect(spec, 3, func(p []float64) (term.Term, error) { return term.NewTriangle(spec.Name, p[0], p[1], p[2]) })
	case "trapmf":
		return expect(spec, 4, func(p []float64) (term.Term, error) { return term.NewTrapezoid(spec.Name, p[0], p[1], p[2], p[3]) })
	case "gaussmf":
		// .fis orders gaussmf params as [sigma, center].
		return expect(spec, 2, func(p []float64) (term.Term, error) { return term.NewGaussian(spec.Name, p[1], p[0]) })
	case "gbellmf":
		return expect(spec, 3, func(p []float64) (term.Term, error) { return term.NewBell(spec.Name, p[2], p[0], p[1]) })
	case "sigmf":
		return expect(spec, 2, func(p []float64) (term.Term, error) { return term.NewSigmoid(spec.Name, p[1], p[0]) })
	case "constant":
		return expect(spec, 1, func(p []float64) (term.Term, error) { return term.NewConstant(spec.Name, p[0]), nil })
	case "linear":
		return nil, fmt.Errorf("linear consequent terms must go through convertLinearTerm, which needs the input variable names")
	default:
		return nil, fmt.Errorf("unsupported membership function type %q", spec.Type)
	}
}

// convertLinearTerm builds a Sugeno linear consequent term: .fis lists one
// coefficient per input variable, in declaration order, followed by a
// trailing constant.
func convertLinearTerm(spec MembershipFunctionSpec, inputs []VariableSection) (term.Term, error) {
	if len(spec.Params) != len(inputs)+1 {
		return nil, fmt.Errorf("linear requires %d parameters (one per input plus a constant), got %d", len(inputs)+1, len(spec.Params))
	}
	coefficients := make(map[string]float64, len(inputs))
	for i, in := range inputs {
		coefficients[in.Name] = spec.Params[i]
	}
	constant := spec.Params[len(spec.Params)-1]
	return term.NewLinear(spec.Name, coefficients, constant), nil
}

func expect(spec MembershipFunctionSpec, n int, build func([]float64) (term.Term, error)) (term.Term, error) {
	if len(spec.Params) != n {
		return nil, fmt.Errorf("%s requires %d parameters, got %d", spec.Type, n, len(spec.Params))
	}
	return build(spec.Params)
}

// convertRule builds rule text from a RuleSpec's numeric antecedent/
// consequent indices and parses it through rule.Create, reusing the same
// parser hand-authored rules go through. resolver is the engine the rule's
// variables and terms were just added to, so a malformed .fis rule index
// fails eagerly here rather than silently at evaluation time.
func convertRule(spec RuleSpec, inputs, outputs []VariableSection, resolver rule.Resolver) (*rule.Rule, error) {
	var clauses []string
	for i, idx := range spec.Antecedents {
		if idx == 0 || i >= len(inputs) {
			continue
		}
		negated := idx < 0
		setIdx := idx - 1
		if negated {
			setIdx = -idx - 1
		}
		if setIdx < 0 || setIdx >= len(inputs[i].MFs) {
			return nil, fmt.Errorf("invalid membership function index %d for input %q", idx, inputs[i].Name)
		}
		prefix := ""
		if negated {
			prefix = "not "
		}
		clauses = append(clauses, fmt.Sprintf("%s is %s%s", inputs[i].Name, prefix, inputs[i].MFs[setIdx].Name))
	}
	if len(clauses) == 0 {
		return nil, fmt.Errorf("rule has no antecedent clauses")
	}
	joiner := " and "
	if spec.Connection == 2 {
		joiner = " or "
	}

	var consequents []string
	for i, idx := range spec.Consequents {
		if idx == 0 || i >= len(outputs) {
			continue
		}
		setIdx := idx - 1
		if setIdx < 0 || setIdx >= len(outputs[i].MFs) {
			return nil, fmt.Errorf("invalid membership function index %d for output %q", idx, outputs[i].Name)
		}
		consequents = append(consequents, fmt.Sprintf("%s is %s", outputs[i].Name, outputs[i].MFs[setIdx].Name))
	}
	if len(consequents) == 0 {
		return nil, fmt.Errorf("rule has no consequent clause")
	}

	text := "if " + strings.Join(clauses, joiner) + " then " + strings.Join(consequents, " and ")
	if spec.Weight != 1.0 {
		text += " with " + strconv.FormatFloat(spec.Weight, 'g', -1, 64)
	}
	return rule.Create(text, resolver)
}

func mapAndMethod(method string) norm.TNorm {
	switch method {
	case "prod":
		return norm.AlgebraicProduct
	default:
		return norm.Minimum
	}
}

func mapOrMethod(method string) norm.SNorm {
	switch method {
	case "probor":
		return norm.AlgebraicSum
	default:
		return norm.Maximum
	}
}

func mapImpMethod(method string) norm.TNorm {
	switch method {
	case "prod":
		return norm.AlgebraicProduct
	default:
		return norm.Minimum
	}
}

func mapIntegralDefuzzifier(method string) defuzzifier.Integral {
	switch method {
	case "bisector":
		return defuzzifier.Bisector(0)
	case "som":
		return defuzzifier.SmallestOfMaximum(0)
	case "lom":
		return defuzzifier.LargestOfMaximum(0)
	case "mom":
		return defuzzifier.MeanOfMaximum(0)
	default:
		return defuzzifier.Centroid(0)
	}
}
