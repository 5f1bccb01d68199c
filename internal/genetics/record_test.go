package genetics

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"forklion/internal/model"
)

// allCommonTraits picks the first (common-tier) value of every category.
func allCommonTraits(catalog *Catalog) map[string]string {
	traits := make(map[string]string, len(catalog.Categories))
	for _, category := range catalog.Categories {
		traits[category.Name] = category.Values[0].Name
	}
	return traits
}

func validRecord(catalog *Catalog) model.TraitRecord {
	traits := allCommonTraits(catalog)
	return model.TraitRecord{
		VersionedRecord: model.CurrentVersions(),
		ID:              "rec-1",
		Generation:      1,
		Traits:          traits,
		RarityScore:     RarityScore(catalog, traits),
		Fingerprint:     Fingerprint(traits),
	}
}

func TestValidateRecord(t *testing.T) {
	catalog := DefaultCatalog()

	if err := ValidateRecord(catalog, validRecord(catalog)); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*model.TraitRecord)
	}{
		{name: "nil traits", mutate: func(r *model.TraitRecord) { r.Traits = nil }},
		{name: "missing category", mutate: func(r *model.TraitRecord) { delete(r.Traits, "pattern") }},
		{name: "illegal value", mutate: func(r *model.TraitRecord) { r.Traits["body_color"] = "plaid" }},
		{name: "unknown category", mutate: func(r *model.TraitRecord) { r.Traits["tail_style"] = "long" }},
		{name: "zero generation", mutate: func(r *model.TraitRecord) { r.Generation = 0 }},
		{name: "negative age", mutate: func(r *model.TraitRecord) { r.AgeDays = -1 }},
		{name: "negative mutation count", mutate: func(r *model.TraitRecord) { r.MutationCount = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := validRecord(catalog)
			tc.mutate(&record)
			if err := ValidateRecord(catalog, record); !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestRarityScoreBounds(t *testing.T) {
	catalog := DefaultCatalog()

	common := allCommonTraits(catalog)
	if got := RarityScore(catalog, common); math.Abs(got-10) > 1e-9 {
		t.Fatalf("all-common score = %v, want 10", got)
	}

	legendary := make(map[string]string, len(catalog.Categories))
	for _, category := range catalog.Categories {
		legendary[category.Name] = category.Values[len(category.Values)-1].Name
	}
	if got := RarityScore(catalog, legendary); math.Abs(got-100) > 1e-9 {
		t.Fatalf("all-legendary score = %v, want 100", got)
	}
}

func TestRarityScoreDeterministic(t *testing.T) {
	catalog := DefaultCatalog()
	traits := allCommonTraits(catalog)
	first := RarityScore(catalog, traits)
	for i := 0; i < 10; i++ {
		if got := RarityScore(catalog, traits); got != first {
			t.Fatalf("score changed between calls: %v != %v", got, first)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := map[string]string{"body_color": "brown", "pattern": "solid"}
	b := map[string]string{"pattern": "solid", "body_color": "brown"}
	c := map[string]string{"body_color": "golden", "pattern": "solid"}

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("identical trait sets should share a fingerprint")
	}
	if Fingerprint(a) == Fingerprint(c) {
		t.Fatal("different trait sets should not share a fingerprint")
	}
}

func TestCloneRecordIsIndependent(t *testing.T) {
	catalog := DefaultCatalog()
	original := validRecord(catalog)
	original.ParentIDs = []string{"p-1"}

	clone := CloneRecord(original)
	clone.Traits["body_color"] = "golden"
	clone.ParentIDs[0] = "p-2"

	if original.Traits["body_color"] == "golden" {
		t.Fatal("clone shares traits map with original")
	}
	if original.ParentIDs[0] != "p-1" {
		t.Fatal("clone shares parent ids with original")
	}
}

func TestDiffTraits(t *testing.T) {
	catalog := DefaultCatalog()
	before := allCommonTraits(catalog)
	after := CloneTraits(before)
	after["body_color"] = "golden"
	after["special"] = "sparkles"

	want := []model.TraitChange{
		{Category: "body_color", From: before["body_color"], To: "golden"},
		{Category: "special", From: before["special"], To: "sparkles"},
	}
	got := DiffTraits(catalog, before, after)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("diff mismatch\ngot=%+v\nwant=%+v", got, want)
	}

	if diff := DiffTraits(catalog, before, before); diff != nil {
		t.Fatalf("expected no changes, got %+v", diff)
	}
}
