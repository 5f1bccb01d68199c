package evo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"forklion/internal/genetics"
	"forklion/internal/model"
)

var ErrInvalidConfig = errors.New("invalid evolver config")

const (
	// DefaultMutationRate is the per-category probability that a daily
	// evolution cycle replaces that category's value.
	DefaultMutationRate = 0.15
	// DefaultInheritBias is the probability that a single-parent cub
	// inherits the parent's value instead of drawing fresh.
	DefaultInheritBias = 0.85
)

type Config struct {
	Catalog      *genetics.Catalog // nil selects the built-in catalog
	MutationRate float64
	InheritBias  float64
	Sampler      Sampler // nil selects the rarity-weighted sampler
	Advisor      Advisor // optional mutation strategy for Evolve
}

// DefaultConfig returns a Config with the stock rates. A zero rate is a
// legal degenerate configuration (the record ages but never mutates), so
// New takes the configured rates literally instead of defaulting zeros.
func DefaultConfig() Config {
	return Config{
		MutationRate: DefaultMutationRate,
		InheritBias:  DefaultInheritBias,
	}
}

// Evolver is a pure transform over trait records: every operation takes
// explicit inputs plus a random source and returns a fresh record.
type Evolver struct {
	catalog *genetics.Catalog
	sampler Sampler
	advisor Advisor
	rate    float64
	bias    float64
}

func New(cfg Config) (*Evolver, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = genetics.DefaultCatalog()
	}
	if err := cfg.Catalog.Validate(); err != nil {
		return nil, err
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		return nil, fmt.Errorf("%w: mutation rate must be in [0,1], got %v", ErrInvalidConfig, cfg.MutationRate)
	}
	if cfg.InheritBias < 0 || cfg.InheritBias > 1 {
		return nil, fmt.Errorf("%w: inherit bias must be in [0,1], got %v", ErrInvalidConfig, cfg.InheritBias)
	}
	if cfg.Sampler == nil {
		cfg.Sampler = WeightedSampler{}
	}
	return &Evolver{
		catalog: cfg.Catalog,
		sampler: cfg.Sampler,
		advisor: cfg.Advisor,
		rate:    cfg.MutationRate,
		bias:    cfg.InheritBias,
	}, nil
}

func (e *Evolver) Catalog() *genetics.Catalog {
	return e.catalog
}

// Genesis draws one value per category from the rarity-weighted
// distribution and returns a generation-1 record.
func (e *Evolver) Genesis(rng *rand.Rand) (model.TraitRecord, error) {
	if rng == nil {
		return model.TraitRecord{}, fmt.Errorf("random source is required")
	}

	traits := make(map[string]string, len(e.catalog.Categories))
	for _, category := range e.catalog.Categories {
		value, err := e.sampler.Draw(rng, category, "")
		if err != nil {
			return model.TraitRecord{}, fmt.Errorf("draw %s: %w", category.Name, err)
		}
		traits[category.Name] = value
	}

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return model.TraitRecord{}, fmt.Errorf("generate record id: %w", err)
	}

	record := model.TraitRecord{
		VersionedRecord: model.CurrentVersions(),
		ID:              id.String(),
		Generation:      1,
		Traits:          traits,
	}
	e.finalize(&record)
	return record, nil
}

// Evolve advances the record by one day. Each category mutates with the
// configured probability (or per the advisor's proposal); mutation_count
// increments only when at least one value actually changed.
func (e *Evolver) Evolve(ctx context.Context, rng *rand.Rand, record model.TraitRecord) (model.TraitRecord, error) {
	if rng == nil {
		return model.TraitRecord{}, fmt.Errorf("random source is required")
	}
	if err := genetics.ValidateRecord(e.catalog, record); err != nil {
		return model.TraitRecord{}, err
	}

	out := genetics.CloneRecord(record)
	out.AgeDays++

	changed, err := e.mutate(ctx, rng, out.Traits, record)
	if err != nil {
		return model.TraitRecord{}, err
	}
	if changed > 0 {
		out.MutationCount++
	}
	e.finalize(&out)
	return out, nil
}

// Breed combines one or two parents into a new cub record. Neither parent
// is modified; the cub depends only on the parents' trait values and the
// random draws.
func (e *Evolver) Breed(rng *rand.Rand, parentA model.TraitRecord, parentB *model.TraitRecord) (model.TraitRecord, error) {
	if rng == nil {
		return model.TraitRecord{}, fmt.Errorf("random source is required")
	}
	if err := genetics.ValidateRecord(e.catalog, parentA); err != nil {
		return model.TraitRecord{}, fmt.Errorf("parent a: %w", err)
	}
	if parentB != nil {
		if err := genetics.ValidateRecord(e.catalog, *parentB); err != nil {
			return model.TraitRecord{}, fmt.Errorf("parent b: %w", err)
		}
	}

	inherited := make(map[string]string, len(e.catalog.Categories))
	for _, category := range e.catalog.Categories {
		switch {
		case parentB != nil:
			if rng.Float64() < 0.5 {
				inherited[category.Name] = parentA.Traits[category.Name]
			} else {
				inherited[category.Name] = parentB.Traits[category.Name]
			}
		case rng.Float64() < e.bias:
			inherited[category.Name] = parentA.Traits[category.Name]
		default:
			value, err := e.sampler.Draw(rng, category, "")
			if err != nil {
				return model.TraitRecord{}, fmt.Errorf("draw %s: %w", category.Name, err)
			}
			inherited[category.Name] = value
		}
	}

	// Mutation pass runs on the freshly inherited set, never on a parent.
	traits := genetics.CloneTraits(inherited)
	if _, err := e.mutatePass(rng, traits); err != nil {
		return model.TraitRecord{}, err
	}
	mutations := 0
	for name, value := range traits {
		if inherited[name] != value {
			mutations++
		}
	}

	generation := parentA.Generation + 1
	parentIDs := make([]string, 0, 2)
	if parentA.ID != "" {
		parentIDs = append(parentIDs, parentA.ID)
	}
	if parentB != nil {
		if parentB.Generation >= parentA.Generation {
			generation = parentB.Generation + 1
		}
		if parentB.ID != "" {
			parentIDs = append(parentIDs, parentB.ID)
		}
	}

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return model.TraitRecord{}, fmt.Errorf("generate record id: %w", err)
	}

	cub := model.TraitRecord{
		VersionedRecord: model.CurrentVersions(),
		ID:              id.String(),
		ParentIDs:       parentIDs,
		Generation:      generation,
		MutationCount:   mutations,
		Traits:          traits,
	}
	e.finalize(&cub)
	return cub, nil
}

// mutate applies one mutation pass to traits in place and reports how many
// categories changed. The advisor path validates every proposal; advisor
// failure falls back to the weighted random pass.
func (e *Evolver) mutate(ctx context.Context, rng *rand.Rand, traits map[string]string, record model.TraitRecord) (int, error) {
	if e.advisor == nil {
		return e.mutatePass(rng, traits)
	}

	proposals, err := e.advisor.Propose(ctx, record, e.catalog)
	if err != nil {
		if ctx != nil && ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return e.mutatePass(rng, traits)
	}

	changed := 0
	for _, proposal := range proposals {
		category, ok := e.catalog.Category(proposal.Category)
		if !ok {
			continue
		}
		if _, legal := category.Value(proposal.Value); !legal {
			continue
		}
		if traits[category.Name] == proposal.Value {
			continue
		}
		traits[category.Name] = proposal.Value
		changed++
	}
	return changed, nil
}

func (e *Evolver) mutatePass(rng *rand.Rand, traits map[string]string) (int, error) {
	changed := 0
	for _, category := range e.catalog.Categories {
		if e.rate <= 0 || rng.Float64() >= e.rate {
			continue
		}
		current := traits[category.Name]
		value, err := e.sampler.Draw(rng, category, current)
		if err != nil {
			return changed, fmt.Errorf("draw %s: %w", category.Name, err)
		}
		if value != current {
			traits[category.Name] = value
			changed++
		}
	}
	return changed, nil
}

// finalize recomputes the derived fields so they can never go stale
// relative to the trait set.
func (e *Evolver) finalize(record *model.TraitRecord) {
	record.RarityScore = genetics.RarityScore(e.catalog, record.Traits)
	record.Fingerprint = genetics.Fingerprint(record.Traits)
}
