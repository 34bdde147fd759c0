package rule

import (
	"strconv"
	"strings"

	"github.com/loian/fuzzyengine/hedge"
)

// Consequent is one "Variable is [hedge...] Term" clause in a rule's "then"
// part. A rule may have more than one consequent, each driving a different
// output variable, joined with "and".
type Consequent struct {
	Variable   string
	HedgeNames []string
	Hedges     []hedge.Hedge
	Term       string
}

func (c Consequent) String() string {
	var b strings.Builder
	b.WriteString(c.Variable)
	b.WriteString(" is ")
	for _, h := range c.HedgeNames {
		b.WriteString(h)
		b.WriteString(" ")
	}
	b.WriteString(c.Term)
	return b.String()
}

// Rule is one parsed "if ... then ..." fuzzy rule, holding its own
// antecedent AST and consequent list, plus its firing weight.
//
// Enabled lets a rule be switched off without removing it from a block.
// Loaded marks a rule as ready to fire: Create sets it on every rule it
// returns, whether or not a Resolver checked its names, and a RuleBlock
// skips rules whose Loaded is false.
type Rule struct {
	Text        string
	Antecedent  Node
	Consequents []Consequent
	Weight      float64
	Enabled     bool
	Loaded      bool
}

// Resolver is the name-resolution surface Create eagerly validates a
// rule's variable and term references against when one is supplied,
// implementing spec section 6's optional "engine" parameter on
// Rule.create. It is declared here, rather than accepting an
// *engine.Engine directly, because engine already imports rule
// (transitively, through ruleblock); rule importing engine back would
// cycle. *engine.Engine satisfies Resolver via its own HasVariable/HasTerm
// methods.
type Resolver interface {
	HasVariable(name string) bool
	HasTerm(variable, term string) bool
}

// Create parses rule text of the form
//
//	if <antecedent> then <consequent> ("and" <consequent>)* ("with" weight)?
//
// into a Rule. When resolver is non-nil, every variable and term name the
// antecedent and consequents reference is validated against it immediately,
// failing with a SemanticError at parse time rather than waiting for the
// rule to fire; resolver == nil skips this and defers name resolution to
// Scope at evaluation time (a rule can be parsed before its engine's
// variables are fully built, per the load-time reference model described
// alongside the rest of this package).
func Create(text string, resolver Resolver) (*Rule, error) {
	p := newParser(text)
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	antecedent, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	first, err := p.parseConsequent()
	if err != nil {
		return nil, err
	}
	consequents := []Consequent{first}
	for p.atKeyword("and") {
		p.next()
		next, err := p.parseConsequent()
		if err != nil {
			return nil, err
		}
		consequents = append(consequents, next)
	}
	weight, _, err := p.parseWeight()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, newSyntaxError(t.pos, "unexpected trailing text '"+t.text+"'")
	}
	if resolver != nil {
		if err := resolveAntecedent(antecedent, resolver); err != nil {
			return nil, err
		}
		for _, c := range consequents {
			if err := resolveNameAndTerm(c.Variable, c.Term, resolver); err != nil {
				return nil, err
			}
		}
	}
	return &Rule{
		Text:        text,
		Antecedent:  antecedent,
		Consequents: consequents,
		Weight:      weight,
		Enabled:     true,
		Loaded:      true,
	}, nil
}

// resolveAntecedent walks an antecedent AST, validating every proposition's
// variable and term against resolver.
func resolveAntecedent(node Node, resolver Resolver) error {
	switch n := node.(type) {
	case *Proposition:
		return resolveNameAndTerm(n.Variable, n.Term, resolver)
	case *Connective:
		if err := resolveAntecedent(n.Left, resolver); err != nil {
			return err
		}
		return resolveAntecedent(n.Right, resolver)
	}
	return nil
}

func resolveNameAndTerm(variable, term string, resolver Resolver) error {
	if !resolver.HasVariable(variable) {
		return newSemanticError(variable)
	}
	if !resolver.HasTerm(variable, term) {
		return newSemanticError(variable + " is " + term)
	}
	return nil
}

// String reprints the rule in its canonical form: parsing String()'s
// output again produces an equivalent rule (spec section 8's round-trip
// property). Whitespace and keyword case are normalized and every
// connective is parenthesized; variable, hedge, and term names are
// reprinted as written.
func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(r.Antecedent.String())
	b.WriteString(" then ")
	for i, c := range r.Consequents {
		if i > 0 {
			b.WriteString(" and ")
		}
		b.WriteString(c.String())
	}
	if r.Weight != 1.0 {
		b.WriteString(" with ")
		b.WriteString(strconv.FormatFloat(r.Weight, 'g', -1, 64))
	}
	return b.String()
}

// Degree evaluates the rule's antecedent against scope, returning 0 instead
// of the raw antecedent value when the rule is disabled so a disabled rule
// never contributes to an output's aggregated set.
func (r *Rule) Degree(scope Scope) (float64, error) {
	if !r.Enabled {
		return 0, nil
	}
	degree, err := r.Antecedent.Evaluate(scope)
	if err != nil {
		return 0, err
	}
	return degree * r.Weight, nil
}
