package storage

import (
	"context"
	"sort"
	"sync"

	"forklion/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	records     map[string]model.TraitRecord
	lineage     map[string][]model.LineageRecord
	events      map[string][]model.EvolutionEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.records = make(map[string]model.TraitRecord)
	s.lineage = make(map[string][]model.LineageRecord)
	s.events = make(map[string][]model.EvolutionEvent)
	return nil
}

func (s *MemoryStore) SaveRecord(_ context.Context, record model.TraitRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) GetRecord(_ context.Context, id string) (model.TraitRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	return record, ok, nil
}

func (s *MemoryStore) ListRecords(_ context.Context) ([]model.TraitRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.TraitRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) SaveLineage(_ context.Context, recordID string, lineage []model.LineageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lineage[recordID] = append([]model.LineageRecord(nil), lineage...)
	return nil
}

func (s *MemoryStore) GetLineage(_ context.Context, recordID string) ([]model.LineageRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lineage, ok := s.lineage[recordID]
	if !ok {
		return nil, false, nil
	}
	return append([]model.LineageRecord(nil), lineage...), true, nil
}

func (s *MemoryStore) SaveEvents(_ context.Context, recordID string, events []model.EvolutionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[recordID] = append([]model.EvolutionEvent(nil), events...)
	return nil
}

func (s *MemoryStore) GetEvents(_ context.Context, recordID string) ([]model.EvolutionEvent, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, ok := s.events[recordID]
	if !ok {
		return nil, false, nil
	}
	return append([]model.EvolutionEvent(nil), events...), true, nil
}
