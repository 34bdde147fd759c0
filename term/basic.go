package term

import "fmt"

// Triangle is the triangular membership function: a (left foot), b (peak),
// c (right foot). Degenerates to an impulse when a==b==c.
type Triangle struct {
	base
	A, B, C float64
}

// NewTriangle requires a <= b <= c.
func NewTriangle(name string, a, b, c float64) (*Triangle, error) {
	if a > b || b > c {
		return nil, fmt.Errorf("triangle: parameters must satisfy a<=b<=c, got a=%v b=%v c=%v", a, b, c)
	}
	return &Triangle{base: newBase(name, 1), A: a, B: b, C: c}, nil
}

func (t *Triangle) Parameters() []float64 { return []float64{t.A, t.B, t.C} }

func (t *Triangle) Membership(x float64) float64 {
	if t.A == t.B && t.B == t.C {
		if x == t.A {
			return t.scale(1)
		}
		return t.scale(0)
	}
	switch {
	case x == t.B:
		return t.scale(1)
	case x <= t.A || x >= t.C:
		return t.scale(0)
	case x < t.B:
		return t.scale((x - t.A) / (t.B - t.A))
	default:
		return t.scale((t.C - x) / (t.C - t.B))
	}
}

// Trapezoid is the trapezoidal membership function: a, b (left plateau
// foot/shoulder), c, d (right shoulder/foot).
type Trapezoid struct {
	base
	A, B, C, D float64
}

// NewTrapezoid requires a <= b <= c <= d.
func NewTrapezoid(name string, a, b, c, d float64) (*Trapezoid, error) {
	if a > b || b > c || c > d {
		return nil, fmt.Errorf("trapezoid: parameters must satisfy a<=b<=c<=d, got a=%v b=%v c=%v d=%v", a, b, c, d)
	}
	return &Trapezoid{base: newBase(name, 1), A: a, B: b, C: c, D: d}, nil
}

func (t *Trapezoid) Parameters() []float64 { return []float64{t.A, t.B, t.C, t.D} }

func (t *Trapezoid) Membership(x float64) float64 {
	if t.A == t.B && t.B == t.C && t.C == t.D {
		if x == t.A {
			return t.scale(1)
		}
		return t.scale(0)
	}
	switch {
	case x >= t.B && x <= t.C:
		return t.scale(1)
	case x <= t.A || x >= t.D:
		return t.scale(0)
	case x < t.B:
		return t.scale((x - t.A) / (t.B - t.A))
	default:
		return t.scale((t.D - x) / (t.D - t.C))
	}
}

// Rectangle is a crisp membership function: 1 inside [a,b], 0 outside.
type Rectangle struct {
	base
	A, B float64
}

// NewRectangle requires a <= b.
func NewRectangle(name string, a, b float64) (*Rectangle, error) {
	if a > b {
		return nil, fmt.Errorf("rectangle: parameters must satisfy a<=b, got a=%v b=%v", a, b)
	}
	return &Rectangle{base: newBase(name, 1), A: a, B: b}, nil
}

func (r *Rectangle) Parameters() []float64 { return []float64{r.A, r.B} }

func (r *Rectangle) Membership(x float64) float64 {
	if x >= r.A && x <= r.B {
		return r.scale(1)
	}
	return r.scale(0)
}

// Ramp is a monotonic linear function between start and end. When
// start < end it rises from 0 to 1; when start > end it falls from 1 to 0.
type Ramp struct {
	base
	Start, End float64
}

// NewRamp accepts Start == End only as a degenerate step (handled as a
// vertical edge at that point); Start may be greater or less than End to
// select the ramp's direction.
func NewRamp(name string, start, end float64) (*Ramp, error) {
	return &Ramp{base: newBase(name, 1), Start: start, End: end}, nil
}

func (r *Ramp) Parameters() []float64 { return []float64{r.Start, r.End} }

func (r *Ramp) Membership(x float64) float64 {
	if r.Start == r.End {
		if x < r.Start {
			return r.scale(0)
		}
		return r.scale(1)
	}
	if r.Start < r.End {
		switch {
		case x <= r.Start:
			return r.scale(0)
		case x >= r.End:
			return r.scale(1)
		default:
			return r.scale((x - r.Start) / (r.End - r.Start))
		}
	}
	// Falling ramp: Start > End.
	switch {
	case x >= r.Start:
		return r.scale(0)
	case x <= r.End:
		return r.scale(1)
	default:
		return r.scale((x - r.Start) / (r.End - r.Start))
	}
}
