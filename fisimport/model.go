package fisimport

import "fmt"

// FISModel is the intermediate parse tree ConvertToEngine builds an
// engine.Engine from: one System section, the ordered input/output
// variable sections, and the rule list, mirroring the shape of a .fis file
// rather than the engine/variable/term types it is eventually converted
// into.
type FISModel struct {
	System  SystemSection
	Inputs  []VariableSection
	Outputs []VariableSection
	Rules   []RuleSpec
}

// SystemSection holds the [System] block: the engine's name, inference
// type ("mamdani" or "sugeno"), and the norm/defuzzifier method names
// ConvertToEngine maps onto norm.TNorm/norm.SNorm/defuzzifier values.
type SystemSection struct {
	Name         string
	Type         string // "mamdani" or "sugeno"
	Version      string
	NumInputs    int
	NumOutputs   int
	NumRules     int
	AndMethod    string // "min" or "prod" -> norm.Minimum / norm.AlgebraicProduct
	OrMethod     string // "max" or "probor" -> norm.Maximum / norm.AlgebraicSum
	ImpMethod    string // "min" or "prod" -> the rule block's implication
	AggMethod    string // parsed but unused: outputs always aggregate with norm.Maximum
	DefuzzMethod string // mamdani: "bisector", "som", "lom", "mom"; anything else -> centroid
}

// VariableSection is one [Input#]/[Output#] block: a variable's name,
// range of discourse, and ordered membership functions, later built into a
// *variable.InputVariable or *variable.OutputVariable with one term.Term
// per MembershipFunctionSpec.
type VariableSection struct {
	Name   string
	Range  [2]float64
	NumMFs int
	MFs    []MembershipFunctionSpec
}

// MembershipFunctionSpec is one membership function entry within a
// VariableSection, later converted into a concrete term.Term by
// convertTerm/convertLinearTerm.
type MembershipFunctionSpec struct {
	Name   string
	Type   string // "trimf", "trapmf", "gaussmf", etc.
	Params []float64
}

// RuleSpec is one [Rules] line in the compact numeric format: one MF index
// per input/output (1-based, 0 meaning "don't care", negative meaning a
// "not" hedge), a firing weight, and the antecedent connective. convertRule
// expands it into rule text and parses it through rule.Create.
type RuleSpec struct {
	Antecedents []int   // MF indices for inputs (1-based, 0=don't care, negative=NOT)
	Consequents []int   // MF indices for outputs (1-based)
	Weight      float64 // Rule weight (default 1.0)
	Connection  int     // 1=AND, 2=OR
}

// Validate cross-checks the [System] section's declared counts against
// what was actually parsed, catching a truncated or hand-edited .fis file
// before ConvertToEngine builds an engine from a partial model.
func (m *FISModel) Validate() error {
	if m.System.NumInputs != len(m.Inputs) {
		return fmt.Errorf("fisimport: System declares NumInputs=%d but %d [Input#] sections were parsed", m.System.NumInputs, len(m.Inputs))
	}
	if m.System.NumOutputs != len(m.Outputs) {
		return fmt.Errorf("fisimport: System declares NumOutputs=%d but %d [Output#] sections were parsed", m.System.NumOutputs, len(m.Outputs))
	}
	if m.System.NumRules != len(m.Rules) {
		return fmt.Errorf("fisimport: System declares NumRules=%d but %d rule lines were parsed", m.System.NumRules, len(m.Rules))
	}
	return nil
}
