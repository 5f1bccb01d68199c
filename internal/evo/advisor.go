package evo

import (
	"context"

	"forklion/internal/genetics"
	"forklion/internal/model"
)

// Mutation is one proposed trait change.
type Mutation struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

// Advisor chooses which categories mutate during an evolution cycle and
// what value each one takes. Proposals are validated against the catalog
// before being applied; when an advisor fails, the evolver falls back to
// the weighted random mutation pass.
type Advisor interface {
	Name() string
	Propose(ctx context.Context, record model.TraitRecord, catalog *genetics.Catalog) ([]Mutation, error)
}
