package main

import (
	"encoding/json"
	"fmt"
	"os"

	"forklion/internal/model"
	"forklion/internal/storage"
)

// Record files are the hand-off format between the evolution engine and
// the surrounding automation, which commits them to the repository.

func loadRecordFile(path string) (model.TraitRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.TraitRecord{}, err
	}
	record, err := storage.DecodeRecord(data)
	if err != nil {
		return model.TraitRecord{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return record, nil
}

// saveRecordFile writes the record indented so committed state produces
// readable diffs.
func saveRecordFile(path string, record model.TraitRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
