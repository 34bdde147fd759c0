package rule

import (
	"strconv"
	"strings"

	"github.com/loian/fuzzyengine/hedge"
)

// parser is a hand-written recursive-descent parser over the grammar:
//
//	rule       := "if" expr "then" consequent ("and" consequent)* ("with" number)?
//	expr       := term ("or" term)*
//	term       := factor ("and" factor)*
//	factor     := "(" expr ")" | proposition
//	proposition:= IDENT "is" hedge* IDENT
//	consequent := IDENT "is" hedge* IDENT
//
// "and" binds tighter than "or" and both are left-associative: this is the
// left-associative alternative the grammar offers for resolving mixed
// infix chains, rather than rejecting them outright.
type parser struct {
	tokens []token
	pos    int
}

func newParser(text string) *parser {
	return &parser{tokens: lex(text)}
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expectKeyword(keyword string) error {
	t := p.next()
	if t.kind != tokIdent || !isKeyword(t.text, keyword) {
		return newSyntaxError(t.pos, "expected '"+keyword+"', got '"+t.text+"'")
	}
	return nil
}

func (p *parser) atKeyword(keyword string) bool {
	t := p.peek()
	return t.kind == tokIdent && isKeyword(t.text, keyword)
}

// parseExpr parses the "or" precedence level.
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("or") {
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Connective{Op: "or", Left: left, Right: right}
	}
	return left, nil
}

// parseTerm parses the "and" precedence level.
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("and") {
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Connective{Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseFactor() (Node, error) {
	if p.peek().kind == tokLParen {
		p.next()
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			t := p.peek()
			return nil, newSyntaxError(t.pos, "expected ')'")
		}
		p.next()
		return node, nil
	}
	return p.parseProposition()
}

func (p *parser) parseProposition() (*Proposition, error) {
	variable := p.next()
	if variable.kind != tokIdent {
		return nil, newSyntaxError(variable.pos, "expected a variable name")
	}
	if err := p.expectKeyword("is"); err != nil {
		return nil, err
	}
	var names []string
	var hedges []hedge.Hedge
	for {
		t := p.peek()
		if t.kind != tokIdent {
			break
		}
		h, ok := hedge.Lookup(strings.ToLower(t.text))
		if !ok {
			break
		}
		names = append(names, t.text)
		hedges = append(hedges, h)
		p.next()
	}
	term := p.next()
	if term.kind != tokIdent {
		return nil, newSyntaxError(term.pos, "expected a term name")
	}
	return &Proposition{Variable: variable.text, HedgeNames: names, Hedges: hedges, Term: term.text}, nil
}

// parseConsequent parses a single "V is [hedge...] T" consequent clause;
// the optional trailing weight clause is parsed by the caller since it
// applies to the whole rule, not one consequent.
func (p *parser) parseConsequent() (Consequent, error) {
	prop, err := p.parseProposition()
	if err != nil {
		return Consequent{}, err
	}
	return Consequent{Variable: prop.Variable, HedgeNames: prop.HedgeNames, Hedges: prop.Hedges, Term: prop.Term}, nil
}

func (p *parser) parseWeight() (float64, bool, error) {
	if !p.atKeyword("with") {
		return 1.0, false, nil
	}
	p.next()
	t := p.next()
	if t.kind != tokNumber {
		return 0, false, newSyntaxError(t.pos, "expected a numeric weight after 'with'")
	}
	w, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, false, newSyntaxError(t.pos, "invalid weight: "+t.text)
	}
	return w, true, nil
}
