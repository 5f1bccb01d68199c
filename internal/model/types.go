package model

import "time"

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// CurrentVersions is the VersionedRecord stamped onto newly created data.
func CurrentVersions() VersionedRecord {
	return VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

// Rarity is the tier a trait value belongs to. Tiers drive both the
// weighted draw (rarer tiers are drawn less often) and the rarity score.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// TraitRecord is the complete genetic state of one creature. Evolution and
// breeding always return a fresh record; the caller owns persistence.
type TraitRecord struct {
	VersionedRecord
	ID            string            `json:"id"`
	ParentIDs     []string          `json:"parent_ids,omitempty"`
	Generation    int               `json:"generation"`
	AgeDays       int               `json:"age_days"`
	MutationCount int               `json:"mutation_count"`
	Traits        map[string]string `json:"traits"`
	RarityScore   float64           `json:"rarity_score"`
	Fingerprint   string            `json:"fingerprint"`
	BornAt        time.Time         `json:"born_at,omitzero"`
}

type LineageRecord struct {
	RecordID    string   `json:"record_id"`
	ParentIDs   []string `json:"parent_ids,omitempty"`
	Generation  int      `json:"generation"`
	Operation   string   `json:"operation"`
	Fingerprint string   `json:"fingerprint,omitempty"`
}

// TraitChange is one category whose value differs after an operation.
type TraitChange struct {
	Category string `json:"category"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// EvolutionEvent is one applied evolution cycle, kept for history display.
type EvolutionEvent struct {
	RecordID   string        `json:"record_id"`
	AgeDays    int           `json:"age_days"`
	Changes    []TraitChange `json:"changes,omitempty"`
	Story      string        `json:"story,omitempty"`
	OccurredAt time.Time     `json:"occurred_at,omitzero"`
}
