// Package fuzzyexpr evaluates the arithmetic expressions used by Function
// terms (spec section 4.3): "+ - * / % ^", parentheses, calls to standard
// math functions, and identifiers resolved against the engine's current
// variable values. It is a thin wrapper around github.com/expr-lang/expr so
// the rest of the engine never depends on expr's API directly.
package fuzzyexpr

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/loian/fuzzyengine/ferr"
)

// Expression is a compiled arithmetic expression, ready to be evaluated
// repeatedly against varying variable maps.
type Expression struct {
	source  string
	program *vm.Program
}

// builtins are the standard math functions spec section 4.3 names: "sin,
// cos, tan, exp, log, ln, sqrt, fabs, pow, max, min, ...". They are injected
// into every evaluation environment alongside the caller's variables.
func builtins() map[string]any {
	return map[string]any{
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tan":  math.Tan,
		"asin": math.Asin,
		"acos": math.Acos,
		"atan": math.Atan,
		"exp":  math.Exp,
		"log":  math.Log10,
		"ln":   math.Log,
		"sqrt": math.Sqrt,
		"fabs": math.Abs,
		"pow":  math.Pow,
		"max":  math.Max,
		"min":  math.Min,
		"pi":   math.Pi,
	}
}

// Compile parses src once; evaluation-time identifier resolution (the
// engine's variable values) is supplied later via Eval, so the expression
// may reference names that do not yet exist at compile time.
func Compile(src string) (*Expression, error) {
	program, err := expr.Compile(src, expr.Env(builtins()), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ferr.NewSyntaxError(0, fmt.Sprintf("invalid function expression %q: %v", src, err))
	}
	return &Expression{source: src, program: program}, nil
}

// Eval runs the compiled expression against the given variable values,
// returning a SyntaxErr-wrapped error if the expression does not reduce to a
// number (e.g. an unresolved identifier, or a type mismatch in a call).
func (e *Expression) Eval(vars map[string]float64) (float64, error) {
	env := builtins()
	for name, value := range vars {
		env[name] = value
	}
	out, err := expr.Run(e.program, env)
	if err != nil {
		return math.NaN(), ferr.NewSyntaxError(0, fmt.Sprintf("evaluating %q: %v", e.source, err))
	}
	switch v := out.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return math.NaN(), ferr.NewSyntaxError(0, fmt.Sprintf("expression %q did not evaluate to a number", e.source))
	}
}

// String returns the original expression source.
func (e *Expression) String() string { return e.source }
