// Package defuzzifier implements the two families of output reduction from
// spec section 4.7: the integral family, which samples an aggregated fuzzy
// set across its range of discourse, and the weighted family, which
// combines each activated term's representative value directly (used for
// Takagi-Sugeno and Tsukamoto consequents).
package defuzzifier

import (
	"math"

	"github.com/loian/fuzzyengine/fuzzyset"
	"github.com/loian/fuzzyengine/numeric"
)

// Integral is the shared sampling machinery for Centroid, Bisector,
// SmallestOfMaximum, LargestOfMaximum, and MeanOfMaximum: it walks the
// range of discourse at the configured resolution and hands each (x, mu)
// sample to a strategy-specific accumulator.
type Integral struct {
	Method     string
	Resolution int
}

// resolutionOrDefault falls back to numeric.DefaultResolution when the
// defuzzifier was constructed without an explicit Resolution.
func (d Integral) resolutionOrDefault() int {
	if d.Resolution > 0 {
		return d.Resolution
	}
	return numeric.DefaultResolution
}

// Centroid returns a new centroid (center-of-gravity) defuzzifier.
func Centroid(resolution int) Integral { return Integral{Method: "centroid", Resolution: resolution} }

// Bisector returns a new bisector-of-area defuzzifier.
func Bisector(resolution int) Integral { return Integral{Method: "bisector", Resolution: resolution} }

// SmallestOfMaximum returns a defuzzifier selecting the smallest x at which
// the aggregated set reaches its maximum membership.
func SmallestOfMaximum(resolution int) Integral {
	return Integral{Method: "smallest-of-maximum", Resolution: resolution}
}

// LargestOfMaximum returns a defuzzifier selecting the largest x at which
// the aggregated set reaches its maximum membership.
func LargestOfMaximum(resolution int) Integral {
	return Integral{Method: "largest-of-maximum", Resolution: resolution}
}

// MeanOfMaximum returns a defuzzifier averaging every x at which the
// aggregated set reaches its maximum membership.
func MeanOfMaximum(resolution int) Integral {
	return Integral{Method: "mean-of-maximum", Resolution: resolution}
}

// Defuzzify samples agg across [min, max] and reduces the samples according
// to Method. An aggregated set with no activated terms, or one whose
// membership is zero everywhere sampled, yields NaN: spec section 4.8
// leaves it to the owning OutputVariable to apply LockPrevious/DefaultValue
// to that NaN.
func (d Integral) Defuzzify(agg *fuzzyset.Aggregated, min, max float64) (float64, error) {
	if len(agg.Terms) == 0 || min > max {
		return math.NaN(), nil
	}
	resolution := d.resolutionOrDefault()
	if resolution < 1 {
		resolution = 1
	}
	step := (max - min) / float64(resolution)

	switch d.Method {
	case "bisector":
		return d.bisector(agg, min, max, resolution, step), nil
	case "smallest-of-maximum", "largest-of-maximum", "mean-of-maximum":
		return d.maximumBased(agg, min, max, resolution, step), nil
	default:
		return d.centroid(agg, min, max, resolution, step), nil
	}
}

func (d Integral) centroid(agg *fuzzyset.Aggregated, min, max float64, resolution int, step float64) float64 {
	var numerator, denominator float64
	for i := 0; i <= resolution; i++ {
		x := min + step*float64(i)
		if x > max {
			x = max
		}
		mu := agg.Membership(x)
		if math.IsNaN(mu) {
			continue
		}
		numerator += x * mu
		denominator += mu
	}
	if denominator == 0 {
		return math.NaN()
	}
	return numerator / denominator
}

func (d Integral) bisector(agg *fuzzyset.Aggregated, min, max float64, resolution int, step float64) float64 {
	xs := make([]float64, resolution+1)
	mus := make([]float64, resolution+1)
	total := 0.0
	for i := 0; i <= resolution; i++ {
		x := min + step*float64(i)
		if x > max {
			x = max
		}
		mu := agg.Membership(x)
		if math.IsNaN(mu) {
			mu = 0
		}
		xs[i] = x
		mus[i] = mu
		total += mu
	}
	if total == 0 {
		return math.NaN()
	}
	half := total / 2
	acc := 0.0
	for i, mu := range mus {
		acc += mu
		if acc >= half {
			return xs[i]
		}
	}
	return xs[len(xs)-1]
}

func (d Integral) maximumBased(agg *fuzzyset.Aggregated, min, max float64, resolution int, step float64) float64 {
	best := math.Inf(-1)
	smallest, largest := math.NaN(), math.NaN()
	sum, count := 0.0, 0
	for i := 0; i <= resolution; i++ {
		x := min + step*float64(i)
		if x > max {
			x = max
		}
		mu := agg.Membership(x)
		if math.IsNaN(mu) {
			continue
		}
		switch {
		case mu > best:
			best = mu
			smallest = x
			largest = x
			sum = x
			count = 1
		case mu == best:
			largest = x
			sum += x
			count++
		}
	}
	if count == 0 || best <= 0 {
		return math.NaN()
	}
	switch d.Method {
	case "smallest-of-maximum":
		return smallest
	case "largest-of-maximum":
		return largest
	default: // mean-of-maximum
		return sum / float64(count)
	}
}
