package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"forklion/internal/model"
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRecord(record model.TraitRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodeRecord(data []byte) (model.TraitRecord, error) {
	var record model.TraitRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.TraitRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.TraitRecord{}, err
	}
	return record, nil
}

func EncodeLineage(lineage []model.LineageRecord) ([]byte, error) {
	return json.Marshal(lineage)
}

func DecodeLineage(data []byte) ([]model.LineageRecord, error) {
	var lineage []model.LineageRecord
	if err := json.Unmarshal(data, &lineage); err != nil {
		return nil, err
	}
	return lineage, nil
}

func EncodeEvents(events []model.EvolutionEvent) ([]byte, error) {
	return json.Marshal(events)
}

func DecodeEvents(data []byte) ([]model.EvolutionEvent, error) {
	var events []model.EvolutionEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != model.CurrentSchemaVersion || v.CodecVersion != model.CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}
