package ai

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forklion/internal/genetics"
	"forklion/internal/model"
)

func TestParseDecisionPlainJSON(t *testing.T) {
	decision, err := ParseDecision(`{"changes":[{"category":"body_color","new_value":"golden","reason":"warmer tone"}],"evolution_story":"A golden sheen."}`)
	require.NoError(t, err)

	want := Decision{
		Changes: []Change{{Category: "body_color", NewValue: "golden", Reason: "warmer tone"}},
		Story:   "A golden sheen.",
	}
	if diff := cmp.Diff(want, decision); diff != "" {
		t.Fatalf("decision mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDecisionMarkdownFences(t *testing.T) {
	text := "Here is my decision:\n```json\n{\"changes\":[{\"category\":\"pattern\",\"new_value\":\"stars\"}],\"evolution_story\":\"Stars!\"}\n```\nHope that helps."
	decision, err := ParseDecision(text)
	require.NoError(t, err)
	require.Len(t, decision.Changes, 1)
	assert.Equal(t, "pattern", decision.Changes[0].Category)
	assert.Equal(t, "stars", decision.Changes[0].NewValue)
	assert.Equal(t, "Stars!", decision.Story)
}

func TestParseDecisionNoJSON(t *testing.T) {
	_, err := ParseDecision("the lion looks great, no changes needed")
	assert.ErrorIs(t, err, ErrNoDecision)
}

func TestParseDecisionMalformedJSON(t *testing.T) {
	_, err := ParseDecision(`{"changes": [}`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoDecision)
}

func TestBuildEvolutionPrompt(t *testing.T) {
	catalog := genetics.DefaultCatalog()
	record := model.TraitRecord{
		Generation:    3,
		AgeDays:       12,
		MutationCount: 4,
		Traits: map[string]string{
			"body_color":      "golden",
			"face_expression": "wise",
			"accessory":       "monocle",
			"pattern":         "stripes",
			"background":      "sunset",
			"special":         "glow",
		},
	}

	prompt := BuildEvolutionPrompt(record, catalog)
	assert.Contains(t, prompt, "- body_color: golden (common)")
	assert.Contains(t, prompt, "- face_expression: wise (uncommon)")
	assert.Contains(t, prompt, "Generation: 3")
	assert.Contains(t, prompt, "Age in days: 12")
	// Every catalog option must be offered so the model cannot invent values.
	for _, category := range catalog.Categories {
		assert.Contains(t, prompt, category.Name+":")
		for _, value := range category.Values {
			assert.Contains(t, prompt, value.Name)
		}
	}
}

func TestBuildStoryPrompt(t *testing.T) {
	prompt := BuildStoryPrompt([]model.TraitChange{
		{Category: "body_color", From: "brown", To: "golden"},
	})
	assert.Contains(t, prompt, "body_color: brown -> golden")
}
