package term

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// fakeEnv is a minimal Environment for testing Linear/Function terms.
type fakeEnv map[string]float64

func (f fakeEnv) Variables() map[string]float64 { return f }

func TestTriangleShape(t *testing.T) {
	tri, err := NewTriangle("low", 0, 5, 10)
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	cases := []struct {
		x, want float64
	}{
		{5, 1}, {2.5, 0.5}, {7.5, 0.5}, {-1, 0}, {10, 0},
	}
	for _, c := range cases {
		if got := tri.Membership(c.x); !approxEqual(got, c.want) {
			t.Errorf("Triangle.Membership(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestTriangleRejectsInvalidParams(t *testing.T) {
	if _, err := NewTriangle("bad", 5, 0, 10); err == nil {
		t.Error("expected error for a > b")
	}
}

func TestTrapezoidPlateau(t *testing.T) {
	trap, err := NewTrapezoid("mid", 0, 2, 8, 10)
	if err != nil {
		t.Fatalf("NewTrapezoid: %v", err)
	}
	for _, x := range []float64{2, 5, 8} {
		if got := trap.Membership(x); !approxEqual(got, 1) {
			t.Errorf("Trapezoid.Membership(%v) = %v, want 1", x, got)
		}
	}
}

func TestRectangle(t *testing.T) {
	r, _ := NewRectangle("band", 2, 4)
	if r.Membership(3) != 1 {
		t.Error("expected 1 inside band")
	}
	if r.Membership(1) != 0 || r.Membership(5) != 0 {
		t.Error("expected 0 outside band")
	}
}

func TestRampDirections(t *testing.T) {
	rising, _ := NewRamp("rising", 0, 10)
	if !approxEqual(rising.Membership(5), 0.5) {
		t.Errorf("rising ramp mid = %v, want 0.5", rising.Membership(5))
	}
	falling, _ := NewRamp("falling", 10, 0)
	if !approxEqual(falling.Membership(5), 0.5) {
		t.Errorf("falling ramp mid = %v, want 0.5", falling.Membership(5))
	}
	if falling.Membership(0) != 1 || falling.Membership(10) != 0 {
		t.Error("falling ramp endpoints wrong")
	}
}

func TestGaussianPeak(t *testing.T) {
	g, _ := NewGaussian("g", 5, 2)
	if !approxEqual(g.Membership(5), 1) {
		t.Errorf("Gaussian peak = %v, want 1", g.Membership(5))
	}
}

func TestSigmoidExampleFromSpec(t *testing.T) {
	// spec section 8 scenario 2 pins these two Sigmoid curves at x=0.5 (the
	// crossover) to both equal 0.5.
	left, _ := NewSigmoid("left", 0.5, -30)
	right, _ := NewSigmoid("right", 0.5, 30)
	if !approxEqual(left.Membership(0.5), 0.5) || !approxEqual(right.Membership(0.5), 0.5) {
		t.Error("sigmoids should cross at 0.5 at their shared inflection point")
	}
}

func TestSShapeZShapeComplement(t *testing.T) {
	s, _ := NewSShape("s", 0, 10)
	z, _ := NewZShape("z", 0, 10)
	for _, x := range []float64{-1, 0, 2, 5, 8, 10, 11} {
		if got, want := s.Membership(x)+z.Membership(x), 1.0; !approxEqual(got, want) {
			t.Errorf("SShape+ZShape at %v = %v, want %v", x, got, want)
		}
	}
}

func TestPiShapeIsProduct(t *testing.T) {
	p, _ := NewPiShape("p", 0, 4, 6, 10)
	if !approxEqual(p.Membership(5), 1) {
		t.Errorf("PiShape plateau = %v, want 1", p.Membership(5))
	}
	if p.Membership(-1) != 0 || p.Membership(11) != 0 {
		t.Error("PiShape should vanish outside [a,d]")
	}
}

func TestConcaveIncreasing(t *testing.T) {
	c, _ := NewConcave("c", 0, 10)
	if !approxEqual(c.Membership(10), 1) {
		t.Errorf("Concave at end = %v, want 1", c.Membership(10))
	}
}

func TestCosineBump(t *testing.T) {
	c, _ := NewCosine("c", 5, 4)
	if !approxEqual(c.Membership(5), 1) {
		t.Errorf("Cosine center = %v, want 1", c.Membership(5))
	}
	if c.Membership(0) != 0 {
		t.Error("Cosine should vanish far from center")
	}
}

func TestConstantIgnoresX(t *testing.T) {
	c := NewConstant("c", 0.75)
	if c.Membership(0) != 0.75 || c.Membership(100) != 0.75 {
		t.Error("Constant must ignore x")
	}
	if c.Evaluate() != 0.75 {
		t.Error("Constant.Evaluate must match its value")
	}
}

func TestLinearResolvesEnvironment(t *testing.T) {
	l := NewLinear("l", map[string]float64{"temperature": 2, "humidity": -0.5}, 1)
	if !math.IsNaN(l.Evaluate()) {
		t.Error("Linear without an environment must evaluate to NaN")
	}
	l.SetEnvironment(fakeEnv{"temperature": 10, "humidity": 4})
	want := 2*10 + -0.5*4 + 1
	if got := l.Evaluate(); !approxEqual(got, want) {
		t.Errorf("Linear.Evaluate() = %v, want %v", got, want)
	}
}

func TestFunctionEvaluatesExpression(t *testing.T) {
	f, err := NewFunction("f", "2*temperature + 1")
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}
	f.SetEnvironment(fakeEnv{"temperature": 3})
	if got, want := f.Evaluate(), 7.0; !approxEqual(got, want) {
		t.Errorf("Function.Evaluate() = %v, want %v", got, want)
	}
}

func TestFunctionSyntaxError(t *testing.T) {
	if _, err := NewFunction("bad", "2 + * 3"); err == nil {
		t.Error("expected a syntax error for malformed function expression")
	}
}

func TestDiscreteInterpolates(t *testing.T) {
	d, err := NewDiscrete("d", []Point{{0, 0}, {5, 1}, {10, 0}})
	if err != nil {
		t.Fatalf("NewDiscrete: %v", err)
	}
	if !approxEqual(d.Membership(2.5), 0.5) {
		t.Errorf("Discrete.Membership(2.5) = %v, want 0.5", d.Membership(2.5))
	}
	if d.Membership(-5) != 0 {
		t.Error("Discrete should extend constant via the nearest endpoint below range")
	}
	if d.Membership(20) != 0 {
		t.Error("Discrete should extend constant via the nearest endpoint above range")
	}
}

func TestHeightScalesMembership(t *testing.T) {
	tri, _ := NewTriangle("half", 0, 5, 10)
	tri.base.height = 0.5
	if !approxEqual(tri.Membership(5), 0.5) {
		t.Errorf("height-scaled peak = %v, want 0.5", tri.Membership(5))
	}
}

// TestMembershipRangeInvariant pins the universal invariant from spec
// section 8: for all terms and all x, membership(x) is NaN or in [0, height].
func TestMembershipRangeInvariant(t *testing.T) {
	terms := []Term{
		mustTerm(NewTriangle("t", 0, 5, 10)),
		mustTerm(NewTrapezoid("t", 0, 2, 8, 10)),
		mustTerm(NewGaussian("t", 5, 2)),
		mustTerm(NewSigmoid("t", 5, 1)),
		mustTerm(NewBell("t", 5, 2, 3)),
	}
	for _, term := range terms {
		for x := -5.0; x <= 15; x += 0.5 {
			m := term.Membership(x)
			if math.IsNaN(m) {
				continue
			}
			if m < -1e-9 || m > term.Height()+1e-9 {
				t.Errorf("%s.Membership(%v) = %v out of [0,%v]", term.Name(), x, m, term.Height())
			}
		}
	}
}

func mustTerm(term Term, err error) Term {
	if err != nil {
		panic(err)
	}
	return term
}
