package genetics

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"forklion/internal/model"
)

var ErrInvalidRecord = errors.New("invalid trait record")

// ValidateRecord enforces the closed-world invariants: every catalog
// category is populated, every value is a member of its category's set,
// and counters are in range. Malformed records are a caller bug.
func ValidateRecord(catalog *Catalog, record model.TraitRecord) error {
	if record.Traits == nil {
		return fmt.Errorf("%w: traits are missing", ErrInvalidRecord)
	}
	if record.Generation < 1 {
		return fmt.Errorf("%w: generation must be >= 1, got %d", ErrInvalidRecord, record.Generation)
	}
	if record.AgeDays < 0 {
		return fmt.Errorf("%w: age_days must be >= 0, got %d", ErrInvalidRecord, record.AgeDays)
	}
	if record.MutationCount < 0 {
		return fmt.Errorf("%w: mutation_count must be >= 0, got %d", ErrInvalidRecord, record.MutationCount)
	}
	for _, category := range catalog.Categories {
		value, ok := record.Traits[category.Name]
		if !ok {
			return fmt.Errorf("%w: missing category %q", ErrInvalidRecord, category.Name)
		}
		if _, legal := category.Value(value); !legal {
			return fmt.Errorf("%w: value %q is not in category %q", ErrInvalidRecord, value, category.Name)
		}
	}
	for name := range record.Traits {
		if _, known := catalog.Category(name); !known {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidRecord, name)
		}
	}
	return nil
}

// Rarity points per tier; the record score is the mean over categories,
// so it always lands in [0,100] and depends on traits alone.
var tierPoints = map[model.Rarity]float64{
	model.RarityCommon:    10,
	model.RarityUncommon:  40,
	model.RarityRare:      70,
	model.RarityLegendary: 100,
}

func TierPoints(tier model.Rarity) float64 {
	return tierPoints[tier]
}

func RarityScore(catalog *Catalog, traits map[string]string) float64 {
	if len(catalog.Categories) == 0 {
		return 0
	}
	var total float64
	for _, category := range catalog.Categories {
		if value, ok := category.Value(traits[category.Name]); ok {
			total += tierPoints[value.Tier]
		}
	}
	return total / float64(len(catalog.Categories))
}

// Fingerprint is a stable digest of the trait set, independent of map
// iteration order. Two records with identical traits share a fingerprint.
func Fingerprint(traits map[string]string) string {
	keys := make([]string, 0, len(traits))
	for key := range traits {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(traits[key])
		sb.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// DiffTraits lists categories whose value changed, in catalog order.
func DiffTraits(catalog *Catalog, before, after map[string]string) []model.TraitChange {
	var changes []model.TraitChange
	for _, category := range catalog.Categories {
		from, to := before[category.Name], after[category.Name]
		if from != to {
			changes = append(changes, model.TraitChange{Category: category.Name, From: from, To: to})
		}
	}
	return changes
}

func CloneTraits(traits map[string]string) map[string]string {
	out := make(map[string]string, len(traits))
	for key, value := range traits {
		out[key] = value
	}
	return out
}

func CloneRecord(record model.TraitRecord) model.TraitRecord {
	out := record
	out.ParentIDs = append([]string(nil), record.ParentIDs...)
	out.Traits = CloneTraits(record.Traits)
	return out
}
