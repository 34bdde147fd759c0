package term

import (
	"fmt"
	"math"
)

func sShapeRaw(x, start, end float64) float64 {
	switch {
	case x <= start:
		return 0
	case x <= (start+end)/2:
		return 2 * math.Pow((x-start)/(end-start), 2)
	case x < end:
		return 1 - 2*math.Pow((x-end)/(end-start), 2)
	default:
		return 1
	}
}

// SShape is a smooth S-shaped rise from start to end (a two-piece quadratic
// spline, the same curve fuzzylite calls "s-shape").
type SShape struct {
	base
	Start, End float64
}

func NewSShape(name string, start, end float64) (*SShape, error) {
	if start >= end {
		return nil, fmt.Errorf("s-shape: start must be < end, got start=%v end=%v", start, end)
	}
	return &SShape{base: newBase(name, 1), Start: start, End: end}, nil
}

func (s *SShape) Parameters() []float64 { return []float64{s.Start, s.End} }

func (s *SShape) Membership(x float64) float64 {
	return s.scale(sShapeRaw(x, s.Start, s.End))
}

// ZShape is the mirror image of SShape: a smooth fall from 1 to 0.
type ZShape struct {
	base
	Start, End float64
}

func NewZShape(name string, start, end float64) (*ZShape, error) {
	if start >= end {
		return nil, fmt.Errorf("z-shape: start must be < end, got start=%v end=%v", start, end)
	}
	return &ZShape{base: newBase(name, 1), Start: start, End: end}, nil
}

func (z *ZShape) Parameters() []float64 { return []float64{z.Start, z.End} }

func (z *ZShape) Membership(x float64) float64 {
	return z.scale(1 - sShapeRaw(x, z.Start, z.End))
}

// PiShape is the product of an SShape rise (a,b) and a ZShape fall (c,d),
// forming a smooth plateau.
type PiShape struct {
	base
	A, B, C, D float64
}

func NewPiShape(name string, a, b, c, d float64) (*PiShape, error) {
	if a >= b || c >= d {
		return nil, fmt.Errorf("pi-shape: requires a<b and c<d, got a=%v b=%v c=%v d=%v", a, b, c, d)
	}
	return &PiShape{base: newBase(name, 1), A: a, B: b, C: c, D: d}, nil
}

func (p *PiShape) Parameters() []float64 { return []float64{p.A, p.B, p.C, p.D} }

func (p *PiShape) Membership(x float64) float64 {
	rise := sShapeRaw(x, p.A, p.B)
	fall := 1 - sShapeRaw(x, p.C, p.D)
	return p.scale(rise * fall)
}

// Concave curves away from a flat asymptote toward Inflection, reaching 1 at
// End. When Inflection <= End the curve increases; otherwise it decreases.
type Concave struct {
	base
	Inflection, End float64
}

func NewConcave(name string, inflection, end float64) (*Concave, error) {
	if inflection == end {
		return nil, fmt.Errorf("concave: inflection must differ from end")
	}
	return &Concave{base: newBase(name, 1), Inflection: inflection, End: end}, nil
}

func (c *Concave) Parameters() []float64 { return []float64{c.Inflection, c.End} }

func (c *Concave) Membership(x float64) float64 {
	i, e := c.Inflection, c.End
	if i <= e { // increasing
		if x < e {
			denom := 2*e - i - x
			if denom == 0 {
				return c.scale(1)
			}
			return c.scale((e - i) / denom)
		}
		return c.scale(1)
	}
	// decreasing
	if x > e {
		denom := i - 2*e + x
		if denom == 0 {
			return c.scale(1)
		}
		return c.scale((i - e) / denom)
	}
	return c.scale(1)
}

// Spike is a sharply peaked exponential decay around Center.
type Spike struct {
	base
	Center, Width float64
}

func NewSpike(name string, center, width float64) (*Spike, error) {
	if width == 0 {
		return nil, fmt.Errorf("spike: width must be nonzero")
	}
	return &Spike{base: newBase(name, 1), Center: center, Width: width}, nil
}

func (s *Spike) Parameters() []float64 { return []float64{s.Center, s.Width} }

func (s *Spike) Membership(x float64) float64 {
	return s.scale(math.Exp(-math.Abs(10.0 / s.Width * (x - s.Center))))
}

// Cosine is a raised-cosine bump spanning [center-width/2, center+width/2].
type Cosine struct {
	base
	Center, Width float64
}

func NewCosine(name string, center, width float64) (*Cosine, error) {
	if width <= 0 {
		return nil, fmt.Errorf("cosine: width must be > 0, got %v", width)
	}
	return &Cosine{base: newBase(name, 1), Center: center, Width: width}, nil
}

func (c *Cosine) Parameters() []float64 { return []float64{c.Center, c.Width} }

func (c *Cosine) Membership(x float64) float64 {
	if x < c.Center-c.Width/2 || x > c.Center+c.Width/2 {
		return c.scale(0)
	}
	return c.scale(0.5 * (1 + math.Cos(2*math.Pi/c.Width*(x-c.Center))))
}
