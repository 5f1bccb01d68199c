//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"forklion/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRecord(ctx context.Context, record model.TraitRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeRecord(record)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO records (id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, record.ID, record.SchemaVersion, record.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (model.TraitRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.TraitRecord{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM records WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TraitRecord{}, false, nil
		}
		return model.TraitRecord{}, false, err
	}

	record, err := DecodeRecord(payload)
	if err != nil {
		return model.TraitRecord{}, false, fmt.Errorf("decode record %s: %w", id, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context) ([]model.TraitRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, payload FROM records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.TraitRecord
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		record, err := DecodeRecord(payload)
		if err != nil {
			return nil, fmt.Errorf("decode record %s: %w", id, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) SaveLineage(ctx context.Context, recordID string, lineage []model.LineageRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeLineage(lineage)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO lineage (record_id, payload)
		VALUES (?, ?)
		ON CONFLICT(record_id) DO UPDATE SET payload = excluded.payload
	`, recordID, payload)
	return err
}

func (s *SQLiteStore) GetLineage(ctx context.Context, recordID string) ([]model.LineageRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM lineage WHERE record_id = ?`, recordID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	lineage, err := DecodeLineage(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode lineage %s: %w", recordID, err)
	}
	return lineage, true, nil
}

func (s *SQLiteStore) SaveEvents(ctx context.Context, recordID string, events []model.EvolutionEvent) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeEvents(events)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO events (record_id, payload)
		VALUES (?, ?)
		ON CONFLICT(record_id) DO UPDATE SET payload = excluded.payload
	`, recordID, payload)
	return err
}

func (s *SQLiteStore) GetEvents(ctx context.Context, recordID string) ([]model.EvolutionEvent, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM events WHERE record_id = ?`, recordID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	events, err := DecodeEvents(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode events %s: %w", recordID, err)
	}
	return events, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS lineage (
			record_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS events (
			record_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
	`)
	return err
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

func DefaultStoreKind() string {
	return "sqlite"
}
