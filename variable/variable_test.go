package variable

import (
	"math"
	"testing"

	"github.com/loian/fuzzyengine/fuzzyset"
	"github.com/loian/fuzzyengine/norm"
	"github.com/loian/fuzzyengine/term"
)

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func mustTriangle(t *testing.T, name string, a, b, c float64) term.Term {
	t.Helper()
	tri, err := term.NewTriangle(name, a, b, c)
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	return tri
}

func TestVariableFuzzifyAndHighestMembership(t *testing.T) {
	v, err := New("temperature", 0, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = v.AddTerm(mustTriangle(t, "cold", 0, 0, 5))
	_ = v.AddTerm(mustTriangle(t, "hot", 5, 10, 10))

	degree, best := v.HighestMembership(7)
	if best == nil || best.Name() != "hot" {
		t.Fatalf("HighestMembership(7) picked %v, want hot", best)
	}
	if !approxEqual(degree, 0.4) {
		t.Errorf("HighestMembership(7) degree = %v, want 0.4", degree)
	}
}

func TestVariableSetValueLockRange(t *testing.T) {
	v, _ := New("x", 0, 10)
	v.LockRange = true
	v.SetValue(15)
	if v.Value() != 10 {
		t.Errorf("SetValue should clamp to Max, got %v", v.Value())
	}
}

// constDefuzzifier always returns a fixed value, ignoring the aggregated set,
// so tests can isolate the precedence logic in OutputVariable.Defuzzify from
// any particular defuzzification method.
type constDefuzzifier struct{ value float64 }

func (c constDefuzzifier) Defuzzify(agg *fuzzyset.Aggregated, min, max float64) (float64, error) {
	return c.value, nil
}

func TestOutputVariableDefuzzifyLockPrevious(t *testing.T) {
	out, err := NewOutput("steer", -10, 10)
	if err != nil {
		t.Fatalf("NewOutput: %v", err)
	}
	out.Defuzzifier = constDefuzzifier{value: 3}
	if err := out.Defuzzify(); err != nil {
		t.Fatalf("Defuzzify: %v", err)
	}
	if out.Value() != 3 {
		t.Fatalf("Value() = %v, want 3", out.Value())
	}

	out.LockPrevious = true
	out.Defuzzifier = constDefuzzifier{value: math.NaN()}
	if err := out.Defuzzify(); err != nil {
		t.Fatalf("Defuzzify: %v", err)
	}
	if out.Value() != 3 {
		t.Errorf("LockPrevious should have substituted the prior value 3, got %v", out.Value())
	}
}

func TestOutputVariableDefuzzifyDefaultValue(t *testing.T) {
	out, _ := NewOutput("steer", -10, 10)
	out.DefaultValue = -1
	out.Defuzzifier = constDefuzzifier{value: math.NaN()}
	if err := out.Defuzzify(); err != nil {
		t.Fatalf("Defuzzify: %v", err)
	}
	if out.Value() != -1 {
		t.Errorf("DefaultValue should apply when no rule fired and LockPrevious is unset, got %v", out.Value())
	}
}

func TestOutputVariableDefuzzifyPrecedenceLockPreviousBeforeDefault(t *testing.T) {
	out, _ := NewOutput("steer", -10, 10)
	out.LockPrevious = true
	out.DefaultValue = -1
	out.Defuzzifier = constDefuzzifier{value: 5}
	if err := out.Defuzzify(); err != nil {
		t.Fatalf("Defuzzify: %v", err)
	}

	out.Defuzzifier = constDefuzzifier{value: math.NaN()}
	if err := out.Defuzzify(); err != nil {
		t.Fatalf("Defuzzify: %v", err)
	}
	if out.Value() != 5 {
		t.Errorf("LockPrevious should win over DefaultValue, got %v", out.Value())
	}
}

func TestOutputVariableDefuzzifyRequiresDefuzzifier(t *testing.T) {
	out, _ := NewOutput("steer", -10, 10)
	if err := out.Defuzzify(); err == nil {
		t.Error("expected a state error when no defuzzifier is configured")
	}
}

func TestOutputVariableClearResetsFuzzyAndValue(t *testing.T) {
	out, _ := NewOutput("steer", -10, 10)
	low := mustTriangle(t, "low", -10, -10, 0)
	out.Fuzzy.Add(fuzzyset.Activated{Term: low, Degree: 1, Implication: norm.AsImplication(norm.Minimum)})
	out.Defuzzifier = constDefuzzifier{value: 2}
	_ = out.Defuzzify()

	out.Clear()
	if len(out.Fuzzy.Terms) != 0 {
		t.Error("Clear should empty the aggregated set")
	}
	if !math.IsNaN(out.Value()) {
		t.Error("Clear should reset the crisp value to NaN")
	}
	// PreviousValue must survive Clear: LockPrevious reads it on the next pass.
	if out.PreviousValue != 2 {
		t.Errorf("PreviousValue = %v, want 2 to survive Clear", out.PreviousValue)
	}
}

func TestInputVariableEmbedsVariable(t *testing.T) {
	in, err := NewInput("temperature", 0, 40)
	if err != nil {
		t.Fatalf("NewInput: %v", err)
	}
	in.SetValue(21)
	if in.Value() != 21 {
		t.Errorf("Value() = %v, want 21", in.Value())
	}
}
