package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"forklion/internal/genetics"
	"forklion/internal/model"
)

// Decision is the JSON object the model is asked to respond with.
type Decision struct {
	Changes []Change `json:"changes"`
	Story   string   `json:"evolution_story"`
}

type Change struct {
	Category string `json:"category"`
	NewValue string `json:"new_value"`
	Reason   string `json:"reason,omitempty"`
}

var ErrNoDecision = errors.New("no JSON decision found in response")

func BuildEvolutionPrompt(record model.TraitRecord, catalog *genetics.Catalog) string {
	var sb strings.Builder
	sb.WriteString("You are an evolution agent for a digital pet lion that lives on GitHub.\n\n")
	sb.WriteString("Your task is to evolve this lion's appearance in a subtle, aesthetically pleasing way.\n\n")
	sb.WriteString("Current traits:\n")
	for _, category := range catalog.Categories {
		value := record.Traits[category.Name]
		tier := model.RarityCommon
		if v, ok := category.Value(value); ok {
			tier = v.Tier
		}
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", category.Name, value, tier)
	}
	fmt.Fprintf(&sb, "\nContext:\n- Generation: %d\n- Age in days: %d\n- Mutations so far: %d\n\n",
		record.Generation, record.AgeDays, record.MutationCount)
	sb.WriteString("Available trait options:\n")
	for _, category := range catalog.Categories {
		names := make([]string, len(category.Values))
		for i, value := range category.Values {
			names[i] = value.Name
		}
		fmt.Fprintf(&sb, "- %s: %s\n", category.Name, strings.Join(names, ", "))
	}
	sb.WriteString(`
Rules:
- Keep changes minimal (0-2 traits).
- Maintain aesthetic coherence; rarer traits should change less often.

Respond with a JSON object ONLY (no markdown formatting):
{
  "changes": [
    {"category": "body_color", "new_value": "golden", "reason": "subtle shift to a warmer tone"}
  ],
  "evolution_story": "Your lion is maturing, developing a golden sheen..."
}
`)
	return sb.String()
}

func BuildStoryPrompt(changes []model.TraitChange) string {
	var sb strings.Builder
	sb.WriteString("Generate a short, whimsical story (2-3 sentences) about a lion's evolution.\n\n")
	sb.WriteString("Changes that occurred:\n")
	for _, change := range changes {
		fmt.Fprintf(&sb, "- %s: %s -> %s\n", change.Category, change.From, change.To)
	}
	sb.WriteString("\nMake it fun and engaging, like a Tamagotchi update message.")
	return sb.String()
}

// ParseDecision extracts the decision object from a model response,
// tolerating markdown code fences around the JSON.
func ParseDecision(text string) (Decision, error) {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return Decision{}, ErrNoDecision
	}

	var decision Decision
	if err := json.Unmarshal([]byte(clean[start:end+1]), &decision); err != nil {
		return Decision{}, fmt.Errorf("parse decision: %w", err)
	}
	return decision, nil
}
