// Package ferr defines the error kinds shared across the engine (spec
// section 7): SyntaxError, SemanticError, MissingOperator, DomainError, and
// StateError. They are plain Go error types, wrapped with
// github.com/pkg/errors at the point they are first raised so a caller can
// recover a stack trace with errors.StackTrace, the same way
// other_examples/bornholm-go-fuzzy wraps its own sentinel errors.
package ferr

import (
	"fmt"

	"github.com/pkg/errors"
)

// SyntaxErr reports malformed rule text, a malformed expression, or an
// invalid parameter list, at a given rune position within the source text.
type SyntaxErr struct {
	Position int
	Message  string
}

func (e *SyntaxErr) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Position, e.Message)
}

// NewSyntaxError builds a stack-carrying SyntaxErr.
func NewSyntaxError(position int, message string) error {
	return errors.WithStack(&SyntaxErr{Position: position, Message: message})
}

// SemanticErr reports an unknown variable, term, or hedge name, or a rule
// referencing a disabled element.
type SemanticErr struct {
	Name string
}

func (e *SemanticErr) Error() string {
	return fmt.Sprintf("semantic error: unknown name %q", e.Name)
}

// NewSemanticError builds a stack-carrying SemanticErr.
func NewSemanticError(name string) error {
	return errors.WithStack(&SemanticErr{Name: name})
}

// MissingOperatorErr reports a rule block missing the connective,
// implication, or aggregation operator a rule needs.
type MissingOperatorErr struct {
	Operator string
}

func (e *MissingOperatorErr) Error() string {
	return fmt.Sprintf("missing operator: rule block has no %s configured", e.Operator)
}

// NewMissingOperatorError builds a stack-carrying MissingOperatorErr.
func NewMissingOperatorError(operator string) error {
	return errors.WithStack(&MissingOperatorErr{Operator: operator})
}

// DomainErr marks an out-of-support term evaluation request. By convention
// (spec section 7) callers do not construct this as a raised error in the
// hot path — out-of-support evaluation yields NaN directly — but it is kept
// as a named type so diagnostics and tests can classify a NaN's origin when
// they choose to wrap it explicitly.
type DomainErr struct {
	Detail string
}

func (e *DomainErr) Error() string {
	return fmt.Sprintf("domain error: %s", e.Detail)
}

// NewDomainError builds a stack-carrying DomainErr.
func NewDomainError(detail string) error {
	return errors.WithStack(&DomainErr{Detail: detail})
}

// StateErr reports defuzzification invoked on an output variable without a
// defuzzifier, or any other operation requested while the owning engine is
// disabled.
type StateErr struct {
	Detail string
}

func (e *StateErr) Error() string {
	return fmt.Sprintf("state error: %s", e.Detail)
}

// NewStateError builds a stack-carrying StateErr.
func NewStateError(detail string) error {
	return errors.WithStack(&StateErr{Detail: detail})
}
