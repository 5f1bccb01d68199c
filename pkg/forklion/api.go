// Package forklion is the embedding facade: it owns a store and an
// evolver and exposes the genesis / evolve / breed operations together
// with the persisted lineage and evolution history. The automation layer
// (scheduled workflows, fork hooks) is expected to call this package or
// the CLI; the core packages underneath never touch storage.
package forklion

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"forklion/internal/evo"
	"forklion/internal/genetics"
	"forklion/internal/model"
	"forklion/internal/storage"
)

const defaultDBPath = "forklion.db"

type Options struct {
	StoreKind   string
	DBPath      string
	CatalogPath string
	Evolver     *evo.Config // nil selects evo.DefaultConfig
	Advisor     evo.Advisor
	Seed        int64
}

type Client struct {
	store   storage.Store
	evolver *evo.Evolver
	rng     *rand.Rand
	now     func() time.Time
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	cfg := evo.DefaultConfig()
	if opts.Evolver != nil {
		cfg = *opts.Evolver
	}
	if cfg.Catalog == nil && opts.CatalogPath != "" {
		catalog, err := genetics.LoadCatalog(opts.CatalogPath)
		if err != nil {
			return nil, err
		}
		cfg.Catalog = catalog
	}
	if opts.Advisor != nil {
		cfg.Advisor = opts.Advisor
	}

	evolver, err := evo.New(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:   store,
		evolver: evolver,
		rng:     evo.NewSeededRNG(opts.Seed),
		now:     time.Now,
	}, nil
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Catalog() *genetics.Catalog {
	return c.evolver.Catalog()
}

func (c *Client) Record(ctx context.Context, id string) (model.TraitRecord, bool, error) {
	return c.store.GetRecord(ctx, id)
}

func (c *Client) Records(ctx context.Context) ([]model.TraitRecord, error) {
	return c.store.ListRecords(ctx)
}

type GenesisRequest struct {
	// Seed overrides the client RNG for this operation so the caller can
	// reproduce a genesis exactly. Zero keeps the client RNG.
	Seed int64
}

func (c *Client) Genesis(ctx context.Context, req GenesisRequest) (model.TraitRecord, error) {
	rng := c.rng
	if req.Seed != 0 {
		rng = evo.NewSeededRNG(req.Seed)
	}

	record, err := c.evolver.Genesis(rng)
	if err != nil {
		return model.TraitRecord{}, err
	}
	record.BornAt = c.now().UTC()

	if err := c.store.SaveRecord(ctx, record); err != nil {
		return model.TraitRecord{}, err
	}
	lineage := []model.LineageRecord{{
		RecordID:    record.ID,
		Generation:  record.Generation,
		Operation:   "genesis",
		Fingerprint: record.Fingerprint,
	}}
	if err := c.store.SaveLineage(ctx, record.ID, lineage); err != nil {
		return model.TraitRecord{}, err
	}
	return record, nil
}

type EvolveRequest struct {
	// Record is passed explicitly: the automation layer owns the stored
	// state and decides whether to replace it with the returned record.
	Record model.TraitRecord
	// StoryFn, when set, produces the story recorded with the evolution
	// event (e.g. ai.GeminiAdvisor.Story). Failures degrade to a plain
	// text summary; a story is never worth failing the cycle for.
	StoryFn func(ctx context.Context, changes []model.TraitChange) (string, error)
}

type EvolveSummary struct {
	Record  model.TraitRecord
	Changes []model.TraitChange
	Story   string
}

func (c *Client) Evolve(ctx context.Context, req EvolveRequest) (EvolveSummary, error) {
	record := req.Record

	evolved, err := c.evolver.Evolve(ctx, c.rng, record)
	if err != nil {
		return EvolveSummary{}, err
	}
	changes := genetics.DiffTraits(c.evolver.Catalog(), record.Traits, evolved.Traits)

	story := summarizeChanges(changes)
	if req.StoryFn != nil {
		if s, err := req.StoryFn(ctx, changes); err == nil && s != "" {
			story = s
		}
	}

	if err := c.store.SaveRecord(ctx, evolved); err != nil {
		return EvolveSummary{}, err
	}
	events, _, err := c.store.GetEvents(ctx, evolved.ID)
	if err != nil {
		return EvolveSummary{}, err
	}
	events = append(events, model.EvolutionEvent{
		RecordID:   evolved.ID,
		AgeDays:    evolved.AgeDays,
		Changes:    changes,
		Story:      story,
		OccurredAt: c.now().UTC(),
	})
	if err := c.store.SaveEvents(ctx, evolved.ID, events); err != nil {
		return EvolveSummary{}, err
	}

	return EvolveSummary{Record: evolved, Changes: changes, Story: story}, nil
}

type BreedRequest struct {
	ParentA model.TraitRecord
	ParentB *model.TraitRecord // nil for the single-parent fork form
}

func (c *Client) Breed(ctx context.Context, req BreedRequest) (model.TraitRecord, error) {
	parentA := req.ParentA
	parentB := req.ParentB

	cub, err := c.evolver.Breed(c.rng, parentA, parentB)
	if err != nil {
		return model.TraitRecord{}, err
	}
	cub.BornAt = c.now().UTC()

	if err := c.store.SaveRecord(ctx, cub); err != nil {
		return model.TraitRecord{}, err
	}

	// The cub's lineage extends parent A's chain.
	chain, _, err := c.store.GetLineage(ctx, parentA.ID)
	if err != nil {
		return model.TraitRecord{}, err
	}
	chain = append(chain, model.LineageRecord{
		RecordID:    cub.ID,
		ParentIDs:   cub.ParentIDs,
		Generation:  cub.Generation,
		Operation:   "breed",
		Fingerprint: cub.Fingerprint,
	})
	if err := c.store.SaveLineage(ctx, cub.ID, chain); err != nil {
		return model.TraitRecord{}, err
	}
	return cub, nil
}

type LineageRequest struct {
	ID    string
	Limit int
}

func (c *Client) Lineage(ctx context.Context, req LineageRequest) ([]model.LineageRecord, error) {
	lineage, ok, err := c.store.GetLineage(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no lineage for record: %s", req.ID)
	}
	if req.Limit > 0 && len(lineage) > req.Limit {
		lineage = lineage[len(lineage)-req.Limit:]
	}
	return lineage, nil
}

type HistoryRequest struct {
	ID    string
	Limit int
}

func (c *Client) History(ctx context.Context, req HistoryRequest) ([]model.EvolutionEvent, error) {
	events, ok, err := c.store.GetEvents(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no history for record: %s", req.ID)
	}
	if req.Limit > 0 && len(events) > req.Limit {
		events = events[len(events)-req.Limit:]
	}
	return events, nil
}

func summarizeChanges(changes []model.TraitChange) string {
	if len(changes) == 0 {
		return "Your lion rested today. No visible changes."
	}
	parts := make([]string, len(changes))
	for i, change := range changes {
		parts[i] = fmt.Sprintf("%s: %s -> %s", change.Category, change.From, change.To)
	}
	return "Your lion evolved! Changes: " + strings.Join(parts, ", ")
}
