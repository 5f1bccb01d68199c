package storage

import (
	"context"

	"forklion/internal/model"
)

// Store defines persistence operations for trait records and their
// histories. The evolver itself never touches a Store; only the facade
// and CLI do.
type Store interface {
	Init(ctx context.Context) error
	SaveRecord(ctx context.Context, record model.TraitRecord) error
	GetRecord(ctx context.Context, id string) (model.TraitRecord, bool, error)
	ListRecords(ctx context.Context) ([]model.TraitRecord, error)
	SaveLineage(ctx context.Context, recordID string, lineage []model.LineageRecord) error
	GetLineage(ctx context.Context, recordID string) ([]model.LineageRecord, bool, error)
	SaveEvents(ctx context.Context, recordID string, events []model.EvolutionEvent) error
	GetEvents(ctx context.Context, recordID string) ([]model.EvolutionEvent, bool, error)
}
