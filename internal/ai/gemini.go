// Package ai provides a Gemini-backed mutation advisor. The model only
// suggests which trait categories change and to what value; every
// suggestion is validated against the catalog, and callers fall back to
// weighted random mutation when the advisor fails.
package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"forklion/internal/evo"
	"forklion/internal/genetics"
	"forklion/internal/model"
)

const DefaultModel = "gemini-2.0-flash"

type GeminiAdvisor struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

func NewGeminiAdvisor(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiAdvisor{
		client: client,
		model:  modelName,
		log:    log,
	}, nil
}

func (a *GeminiAdvisor) Name() string {
	return "gemini"
}

// Propose asks the model for a small set of trait changes. Suggestions
// outside the catalog are dropped with a warning rather than failing the
// whole cycle; an unparseable response is an error so the evolver falls
// back to random mutation.
func (a *GeminiAdvisor) Propose(ctx context.Context, record model.TraitRecord, catalog *genetics.Catalog) ([]evo.Mutation, error) {
	prompt := BuildEvolutionPrompt(record, catalog)

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}

	decision, err := ParseDecision(resp.Text())
	if err != nil {
		return nil, err
	}

	mutations := make([]evo.Mutation, 0, len(decision.Changes))
	for _, change := range decision.Changes {
		category, ok := catalog.Category(change.Category)
		if !ok {
			a.log.Warn("advisor suggested unknown category",
				zap.String("category", change.Category))
			continue
		}
		if _, legal := category.Value(change.NewValue); !legal {
			a.log.Warn("advisor suggested illegal value",
				zap.String("category", change.Category),
				zap.String("value", change.NewValue))
			continue
		}
		mutations = append(mutations, evo.Mutation{
			Category: category.Name,
			Value:    change.NewValue,
		})
	}
	return mutations, nil
}

// Story generates a short update message about the changes of one
// evolution cycle.
func (a *GeminiAdvisor) Story(ctx context.Context, changes []model.TraitChange) (string, error) {
	if len(changes) == 0 {
		return "Your lion rested today. No visible changes.", nil
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(BuildStoryPrompt(changes)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return resp.Text(), nil
}
