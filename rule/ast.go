// Package rule implements fuzzy rule antecedents and consequents: the
// parser that turns a line of rule text ("if temperature is very hot then
// fan is high") into an evaluable AST, and the Rule type a RuleBlock fires.
package rule

import (
	"strings"

	"github.com/loian/fuzzyengine/hedge"
	"github.com/loian/fuzzyengine/norm"
)

// Scope is everything an antecedent node needs from its owning engine and
// rule block to evaluate itself: membership lookups for input variables,
// activation-degree lookups for output variables referenced in feedback
// position, and the rule block's configured conjunction/disjunction norms.
type Scope interface {
	InputDegree(variable, term string) (float64, bool)
	OutputDegree(variable, term string) (float64, bool)
	Conjunction() (norm.TNorm, bool)
	Disjunction() (norm.SNorm, bool)
}

// Node is one antecedent AST node: a Proposition (leaf) or a Connective
// (and/or, binary).
type Node interface {
	Evaluate(scope Scope) (float64, error)
	String() string
}

// Proposition is a leaf antecedent: "Variable is [hedge...] Term".
type Proposition struct {
	Variable   string
	HedgeNames []string
	Hedges     []hedge.Hedge
	Term       string
}

// Evaluate resolves the proposition's variable as an input first, then as
// an output (feedback position), applying its hedge chain to the raw
// degree. An unresolved variable or term is a semantic error, not a zero.
func (p *Proposition) Evaluate(scope Scope) (float64, error) {
	if mu, ok := scope.InputDegree(p.Variable, p.Term); ok {
		return hedge.Apply(p.Hedges, mu), nil
	}
	if mu, ok := scope.OutputDegree(p.Variable, p.Term); ok {
		return hedge.Apply(p.Hedges, mu), nil
	}
	return 0, newSemanticError(p.Variable + " is " + p.Term)
}

func (p *Proposition) String() string {
	var b strings.Builder
	b.WriteString(p.Variable)
	b.WriteString(" is ")
	for _, h := range p.HedgeNames {
		b.WriteString(h)
		b.WriteString(" ")
	}
	b.WriteString(p.Term)
	return b.String()
}

// Connective is a binary "and"/"or" antecedent node. The parser builds
// left-associative chains at each precedence level, with "and" binding
// tighter than "or", so without parentheses an "or" node may have "and"
// operands but an "and" node never has "or" operands.
type Connective struct {
	Op          string // "and" or "or"
	Left, Right Node
}

func (c *Connective) Evaluate(scope Scope) (float64, error) {
	l, err := c.Left.Evaluate(scope)
	if err != nil {
		return 0, err
	}
	r, err := c.Right.Evaluate(scope)
	if err != nil {
		return 0, err
	}
	switch c.Op {
	case "and":
		t, ok := scope.Conjunction()
		if !ok {
			return 0, newMissingOperatorError("conjunction (and)")
		}
		return t.T(l, r), nil
	case "or":
		s, ok := scope.Disjunction()
		if !ok {
			return 0, newMissingOperatorError("disjunction (or)")
		}
		return s.S(l, r), nil
	}
	return 0, newSemanticError("unknown connective " + c.Op)
}

func (c *Connective) String() string {
	return "(" + c.Left.String() + " " + c.Op + " " + c.Right.String() + ")"
}
