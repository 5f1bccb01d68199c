package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"forklion/internal/genetics"
)

var ErrNoDrawChoice = errors.New("no value available to draw")

// Sampler draws one value for a category. A non-empty exclude removes the
// current value from the pool when the category has alternatives, so a
// selected mutation always produces a visible change.
type Sampler interface {
	Name() string
	Draw(rng *rand.Rand, category genetics.Category, exclude string) (string, error)
}

// WeightedSampler draws values with probability proportional to their
// rarity weight.
type WeightedSampler struct{}

func (WeightedSampler) Name() string {
	return "rarity_weighted"
}

func (WeightedSampler) Draw(rng *rand.Rand, category genetics.Category, exclude string) (string, error) {
	if rng == nil {
		return "", fmt.Errorf("random source is required")
	}
	if len(category.Values) == 0 {
		return "", ErrNoDrawChoice
	}

	skipExclude := exclude != "" && len(category.Values) > 1
	weights := category.Weights()

	var total float64
	for i, value := range category.Values {
		if skipExclude && value.Name == exclude {
			continue
		}
		total += weights[i]
	}
	if total <= 0 {
		return "", ErrNoDrawChoice
	}

	target := rng.Float64() * total
	last := ""
	for i, value := range category.Values {
		if skipExclude && value.Name == exclude {
			continue
		}
		last = value.Name
		target -= weights[i]
		if target < 0 {
			return value.Name, nil
		}
	}
	// Accumulated float error can leave target at the upper boundary.
	return last, nil
}

// SequenceSampler returns scripted values in order. It substitutes for the
// weighted sampler in tests that need exact control over every draw.
type SequenceSampler struct {
	Values []string
	next   int
}

func (*SequenceSampler) Name() string {
	return "sequence"
}

func (s *SequenceSampler) Draw(_ *rand.Rand, category genetics.Category, _ string) (string, error) {
	if s.next >= len(s.Values) {
		return "", fmt.Errorf("%w: sequence exhausted after %d draws", ErrNoDrawChoice, s.next)
	}
	value := s.Values[s.next]
	s.next++
	if _, ok := category.Value(value); !ok {
		return "", fmt.Errorf("scripted value %q is not in category %q", value, category.Name)
	}
	return value, nil
}
