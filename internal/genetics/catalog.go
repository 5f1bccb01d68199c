package genetics

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"forklion/internal/model"
)

var ErrInvalidCatalog = errors.New("invalid trait catalog")

// Value is one legal trait value and the rarity tier it belongs to.
type Value struct {
	Name string       `yaml:"name" json:"name"`
	Tier model.Rarity `yaml:"tier" json:"tier"`
}

// Category is a named axis of variation with a closed set of values.
type Category struct {
	Name   string  `yaml:"name" json:"name"`
	Values []Value `yaml:"values" json:"values"`
}

// Catalog is the closed world of trait categories. Category order is
// significant: samplers and the evolver iterate categories in catalog
// order so that seeded runs are reproducible.
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Selection weight per tier. Rarer tiers are drawn less often; a tier's
// weight is split evenly across the values in that tier.
var tierWeights = map[model.Rarity]float64{
	model.RarityCommon:    60,
	model.RarityUncommon:  25,
	model.RarityRare:      10,
	model.RarityLegendary: 5,
}

func TierWeight(tier model.Rarity) float64 {
	return tierWeights[tier]
}

// LoadCatalog reads a catalog override from a YAML file and validates it.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *Catalog) Validate() error {
	if c == nil || len(c.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}
	seenCategories := make(map[string]struct{}, len(c.Categories))
	for _, category := range c.Categories {
		if category.Name == "" {
			return fmt.Errorf("%w: category with empty name", ErrInvalidCatalog)
		}
		if _, dup := seenCategories[category.Name]; dup {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, category.Name)
		}
		seenCategories[category.Name] = struct{}{}

		if len(category.Values) == 0 {
			return fmt.Errorf("%w: category %q has no values", ErrInvalidCatalog, category.Name)
		}
		seenValues := make(map[string]struct{}, len(category.Values))
		for _, value := range category.Values {
			if value.Name == "" {
				return fmt.Errorf("%w: category %q has a value with empty name", ErrInvalidCatalog, category.Name)
			}
			if _, dup := seenValues[value.Name]; dup {
				return fmt.Errorf("%w: duplicate value %q in category %q", ErrInvalidCatalog, value.Name, category.Name)
			}
			seenValues[value.Name] = struct{}{}
			if _, known := tierWeights[value.Tier]; !known {
				return fmt.Errorf("%w: unknown tier %q for value %q in category %q", ErrInvalidCatalog, value.Tier, value.Name, category.Name)
			}
		}
	}
	return nil
}

func (c *Catalog) Category(name string) (Category, bool) {
	for _, category := range c.Categories {
		if category.Name == name {
			return category, true
		}
	}
	return Category{}, false
}

func (cat Category) Value(name string) (Value, bool) {
	for _, value := range cat.Values {
		if value.Name == name {
			return value, true
		}
	}
	return Value{}, false
}

// Weights returns the per-value selection weight aligned with cat.Values.
func (cat Category) Weights() []float64 {
	tierCounts := make(map[model.Rarity]int, len(tierWeights))
	for _, value := range cat.Values {
		tierCounts[value.Tier]++
	}
	weights := make([]float64, len(cat.Values))
	for i, value := range cat.Values {
		weights[i] = TierWeight(value.Tier) / float64(tierCounts[value.Tier])
	}
	return weights
}
