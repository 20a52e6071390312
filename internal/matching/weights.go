package matching

import (
	"fmt"
	"math"
)

// Default weighting parameters
const (
	DefaultPriorityStep = 0.2
	DefaultSpecificity  = SpecificitySqrt
)

// Specificity names the curve that turns a matcher's word count into its base weight.
type Specificity string

// Supported specificity curves
const (
	SpecificitySqrt   Specificity = "sqrt"
	SpecificityLinear Specificity = "linear"
	SpecificityLog    Specificity = "log"
)

// Apply returns the base weight for a matcher built from wordCount words.
func (s Specificity) Apply(wordCount int) float64 {
	n := float64(wordCount)
	switch s {
	case SpecificityLinear:
		return n
	case SpecificityLog:
		return 1 + math.Log(n)
	default:
		return math.Sqrt(n)
	}
}

// Weights holds the tunable constants of the matcher weighting formula:
//
//	weight = Specificity(words) * (1 + PriorityStep * positionFromEnd)
type Weights struct {
	PriorityStep float64     `json:"priority_step" mapstructure:"priority_step"`
	Specificity  Specificity `json:"specificity" mapstructure:"specificity"`
}

// DefaultWeights returns the weighting used when nothing is configured.
func DefaultWeights() Weights {
	return Weights{
		PriorityStep: DefaultPriorityStep,
		Specificity:  DefaultSpecificity,
	}
}

// OrDefault returns DefaultWeights for the zero value and fills a missing
// specificity otherwise. An explicit zero PriorityStep is kept.
func (w Weights) OrDefault() Weights {
	if w == (Weights{}) {
		return DefaultWeights()
	}
	if w.Specificity == "" {
		w.Specificity = DefaultSpecificity
	}
	return w
}

// Validate checks that the weights produce strictly ordered role priorities.
func (w Weights) Validate() error {
	if math.IsNaN(w.PriorityStep) || math.IsInf(w.PriorityStep, 0) {
		return &WeightsError{Message: fmt.Sprintf("priority_step must be finite, got %g", w.PriorityStep)}
	}
	if w.PriorityStep < 0 {
		return &WeightsError{Message: fmt.Sprintf("priority_step must be non-negative, got %g", w.PriorityStep)}
	}
	switch w.Specificity {
	case "", SpecificitySqrt, SpecificityLinear, SpecificityLog:
		return nil
	default:
		return &WeightsError{Message: fmt.Sprintf("unknown specificity %q", w.Specificity)}
	}
}

// priorityMultiplier scales matchers of the role at position within a sequence of count roles.
// The primary role (position 0) gets the largest multiplier.
func (w Weights) priorityMultiplier(position, count int) float64 {
	fromEnd := count - 1 - position
	if fromEnd < 0 {
		fromEnd = 0
	}
	return 1 + w.PriorityStep*float64(fromEnd)
}
