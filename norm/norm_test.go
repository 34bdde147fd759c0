package norm

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

var tnorms = []TNorm{
	Minimum, AlgebraicProduct, BoundedDifference, DrasticProduct,
	EinsteinProduct, HamacherProduct, NilpotentMinimum,
}

var snorms = []SNorm{
	Maximum, AlgebraicSum, BoundedSum, DrasticSum,
	EinsteinSum, HamacherSum, NilpotentMaximum,
}

var sampleDegrees = []float64{0, 0.25, 0.5, 0.75, 1}

// TestTNormIdentity pins T(a,1)=a and T(a,0)=0 for every required T-norm.
func TestTNormIdentity(t *testing.T) {
	for _, tn := range tnorms {
		for _, a := range sampleDegrees {
			if got := tn.T(a, 1); !approxEqual(got, a) {
				t.Errorf("%s: T(%v,1) = %v, want %v", tn.Name(), a, got, a)
			}
			if got := tn.T(a, 0); !approxEqual(got, 0) {
				t.Errorf("%s: T(%v,0) = %v, want 0", tn.Name(), a, got)
			}
		}
	}
}

func TestTNormCommutative(t *testing.T) {
	for _, tn := range tnorms {
		for _, a := range sampleDegrees {
			for _, b := range sampleDegrees {
				if got, want := tn.T(a, b), tn.T(b, a); !approxEqual(got, want) {
					t.Errorf("%s: T(%v,%v)=%v != T(%v,%v)=%v", tn.Name(), a, b, got, b, a, want)
				}
			}
		}
	}
}

func TestTNormAssociative(t *testing.T) {
	for _, tn := range tnorms {
		for _, a := range sampleDegrees {
			for _, b := range sampleDegrees {
				for _, c := range sampleDegrees {
					left := tn.T(tn.T(a, b), c)
					right := tn.T(a, tn.T(b, c))
					if !approxEqual(left, right) {
						t.Errorf("%s: not associative at (%v,%v,%v): %v != %v", tn.Name(), a, b, c, left, right)
					}
				}
			}
		}
	}
}

func TestTNormMonotonic(t *testing.T) {
	for _, tn := range tnorms {
		for _, b := range sampleDegrees {
			prev := tn.T(0, b)
			for _, a := range sampleDegrees[1:] {
				cur := tn.T(a, b)
				if cur < prev-1e-9 {
					t.Errorf("%s: not monotonic at b=%v: T(.,%v) decreased", tn.Name(), b, b)
				}
				prev = cur
			}
		}
	}
}

func TestSNormIdentity(t *testing.T) {
	for _, sn := range snorms {
		for _, a := range sampleDegrees {
			if got := sn.S(a, 0); !approxEqual(got, a) {
				t.Errorf("%s: S(%v,0) = %v, want %v", sn.Name(), a, got, a)
			}
		}
	}
}

func TestSNormCommutative(t *testing.T) {
	for _, sn := range snorms {
		for _, a := range sampleDegrees {
			for _, b := range sampleDegrees {
				if got, want := sn.S(a, b), sn.S(b, a); !approxEqual(got, want) {
					t.Errorf("%s: S(%v,%v)=%v != S(%v,%v)=%v", sn.Name(), a, b, got, b, a, want)
				}
			}
		}
	}
}

func TestSNormMonotonic(t *testing.T) {
	for _, sn := range snorms {
		for _, b := range sampleDegrees {
			prev := sn.S(0, b)
			for _, a := range sampleDegrees[1:] {
				cur := sn.S(a, b)
				if cur < prev-1e-9 {
					t.Errorf("%s: not monotonic at b=%v", sn.Name(), b)
				}
				prev = cur
			}
		}
	}
}

func TestNoneNormIsIdentityOnMembership(t *testing.T) {
	for _, m := range sampleDegrees {
		for _, d := range sampleDegrees {
			if got := NoneNorm.Imply(d, m); got != m {
				t.Errorf("NoneNorm.Imply(%v,%v) = %v, want %v", d, m, got, m)
			}
		}
	}
}

func TestAsImplicationDelegatesToTNorm(t *testing.T) {
	impl := AsImplication(Minimum)
	if got := impl.Imply(0.3, 0.7); !approxEqual(got, 0.3) {
		t.Errorf("Minimum implication: got %v, want 0.3", got)
	}
}

func TestNormalizedAndUnboundedSumOperateOnSigma(t *testing.T) {
	values := []float64{0.3, 0.4, 0.5}
	if got, want := UnboundedSum.Reduce(values), 1.2; !approxEqual(got, want) {
		t.Errorf("UnboundedSum.Reduce = %v, want %v", got, want)
	}
	if got, want := NormalizedSum.Reduce(values), 1.2/1.2; !approxEqual(got, want) {
		t.Errorf("NormalizedSum.Reduce = %v, want %v", got, want)
	}

	small := []float64{0.1, 0.2}
	if got, want := NormalizedSum.Reduce(small), 0.3; !approxEqual(got, want) {
		t.Errorf("NormalizedSum.Reduce(small sum) = %v, want %v (denominator clamps to 1)", got, want)
	}
}
