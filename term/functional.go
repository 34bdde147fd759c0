package term

import (
	"fmt"
	"math"
	"sort"

	"github.com/loian/fuzzyengine/fuzzyexpr"
)

// Constant is a Takagi-Sugeno output term whose value never varies: it
// ignores both x and the input variables.
type Constant struct {
	base
	Value float64
}

func NewConstant(name string, value float64) *Constant {
	return &Constant{base: newBase(name, 1), Value: value}
}

func (c *Constant) Parameters() []float64 { return []float64{c.Value} }

// Membership ignores x entirely: a Constant term's value is a property of
// the term, not of the point it's queried at.
func (c *Constant) Membership(float64) float64 { return c.scale(c.Value) }

func (c *Constant) Evaluate() float64 { return c.scale(c.Value) }

// Linear is a Takagi-Sugeno output term: a weighted sum of the engine's
// input values plus a constant term, resolved through an Environment set by
// the owning engine at build time.
type Linear struct {
	base
	Coefficients map[string]float64
	Constant     float64
	env          Environment
}

// NewLinear builds a Linear term over the named inputs. SetEnvironment must
// be called (by the owning engine) before Membership/Evaluate can resolve a
// value; until then both return NaN, consistent with the DomainError policy
// of "out-of-support evaluation yields NaN".
func NewLinear(name string, coefficients map[string]float64, constant float64) *Linear {
	return &Linear{base: newBase(name, 1), Coefficients: coefficients, Constant: constant}
}

func (l *Linear) SetEnvironment(env Environment) { l.env = env }

func (l *Linear) Parameters() []float64 {
	params := make([]float64, 0, len(l.Coefficients)+1)
	for _, c := range l.Coefficients {
		params = append(params, c)
	}
	return append(params, l.Constant)
}

func (l *Linear) Membership(float64) float64 { return l.scale(l.rawValue()) }

func (l *Linear) Evaluate() float64 { return l.scale(l.rawValue()) }

func (l *Linear) rawValue() float64 {
	if l.env == nil {
		return math.NaN()
	}
	values := l.env.Variables()
	sum := l.Constant
	for name, coefficient := range l.Coefficients {
		v, ok := values[name]
		if !ok {
			return math.NaN()
		}
		sum += coefficient * v
	}
	return sum
}

// Function is a Takagi-Sugeno (or antecedent-position) term that evaluates
// a parsed arithmetic expression against the engine's current variable
// values, via fuzzyexpr.
type Function struct {
	base
	expr *fuzzyexpr.Expression
	env  Environment
}

// NewFunction parses source once; it fails with a SyntaxErr (via fuzzyexpr)
// if the expression is malformed.
func NewFunction(name, source string) (*Function, error) {
	compiled, err := fuzzyexpr.Compile(source)
	if err != nil {
		return nil, err
	}
	return &Function{base: newBase(name, 1), expr: compiled}, nil
}

func (f *Function) SetEnvironment(env Environment) { f.env = env }

func (f *Function) Parameters() []float64 { return nil }

func (f *Function) Source() string { return f.expr.String() }

func (f *Function) Membership(x float64) float64 { return f.scale(f.evaluate(x)) }

func (f *Function) Evaluate() float64 { return f.evaluate(math.NaN()) }

func (f *Function) evaluate(x float64) float64 {
	if f.env == nil {
		return math.NaN()
	}
	vars := make(map[string]float64, len(f.env.Variables())+1)
	for name, v := range f.env.Variables() {
		vars[name] = v
	}
	if !math.IsNaN(x) {
		vars["x"] = x
	}
	result, err := f.expr.Eval(vars)
	if err != nil {
		return math.NaN()
	}
	return result
}

// Point is one (x, y) sample of a Discrete term.
type Point struct {
	X, Y float64
}

// Discrete linearly interpolates between sorted (x,y) pairs; values outside
// the domain extend constant via the nearest endpoint, per spec section 3.
type Discrete struct {
	base
	Points []Point
}

// NewDiscrete requires the points to be sorted by X and at least one point.
func NewDiscrete(name string, points []Point) (*Discrete, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("discrete: requires at least one point")
	}
	if !sort.SliceIsSorted(points, func(i, j int) bool { return points[i].X < points[j].X }) {
		return nil, fmt.Errorf("discrete: points must be sorted by x")
	}
	return &Discrete{base: newBase(name, 1), Points: points}, nil
}

func (d *Discrete) Parameters() []float64 {
	params := make([]float64, 0, len(d.Points)*2)
	for _, p := range d.Points {
		params = append(params, p.X, p.Y)
	}
	return params
}

func (d *Discrete) Membership(x float64) float64 {
	pts := d.Points
	if x <= pts[0].X {
		return d.scale(pts[0].Y)
	}
	last := pts[len(pts)-1]
	if x >= last.X {
		return d.scale(last.Y)
	}
	for i := 1; i < len(pts); i++ {
		if x <= pts[i].X {
			prev := pts[i-1]
			cur := pts[i]
			if cur.X == prev.X {
				return d.scale(cur.Y)
			}
			t := (x - prev.X) / (cur.X - prev.X)
			return d.scale(prev.Y + t*(cur.Y-prev.Y))
		}
	}
	return d.scale(last.Y)
}
