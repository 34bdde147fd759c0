package hedge

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNot(t *testing.T) {
	if got := Not.Hedge(0.3); !approxEqual(got, 0.7) {
		t.Errorf("Not(0.3) = %v, want 0.7", got)
	}
}

func TestVery(t *testing.T) {
	if got := Very.Hedge(0.5); !approxEqual(got, 0.25) {
		t.Errorf("Very(0.5) = %v, want 0.25", got)
	}
}

func TestSomewhat(t *testing.T) {
	if got := Somewhat.Hedge(0.25); !approxEqual(got, 0.5) {
		t.Errorf("Somewhat(0.25) = %v, want 0.5", got)
	}
}

func TestExtremely(t *testing.T) {
	if got := Extremely.Hedge(0.25); !approxEqual(got, 0.125) {
		t.Errorf("Extremely(0.25) = %v, want 0.125", got)
	}
	if got := Extremely.Hedge(0.75); !approxEqual(got, 0.875) {
		t.Errorf("Extremely(0.75) = %v, want 0.875", got)
	}
}

func TestSeldom(t *testing.T) {
	if got := Seldom.Hedge(0.5); !approxEqual(got, 0.5) {
		t.Errorf("Seldom(0.5) = %v, want 0.5", got)
	}
}

func TestAnyIsConstant(t *testing.T) {
	if Any.Hedge(0) != 1 || Any.Hedge(1) != 1 || Any.Hedge(0.4) != 1 {
		t.Error("Any must always return 1")
	}
}

func TestUnsetIsIdentity(t *testing.T) {
	if Unset.Hedge(0.37) != 0.37 {
		t.Error("Unset must be the identity")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"not", "very", "somewhat", "extremely", "seldom", "any"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) should resolve", name)
		}
	}
	if _, ok := Lookup("unknown"); ok {
		t.Error("Lookup(\"unknown\") should not resolve")
	}
}

// TestApplyComposesRightToLeft pins the example from spec section 4.4:
// "very not low" with low=Triangle(0,0,1) at x=0.25 yields (1-low(x))^2 = 0.0625.
func TestApplyComposesRightToLeft(t *testing.T) {
	low := 0.75 // Triangle(0,0,1).Membership(0.25)
	got := Apply([]Hedge{Very, Not}, low)
	want := 0.0625
	if !approxEqual(got, want) {
		t.Errorf("Apply([very, not], 0.75) = %v, want %v", got, want)
	}
}
