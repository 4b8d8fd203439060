package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// defaultRecipeCount is the number of candidates requested per query.
const defaultRecipeCount = 3

// RecipeProvider answers an augmented query with candidate recipes. It is
// retrieval-augmented: matching documents from the retriever are inlined
// into the prompt as grounding context before the chat backend is asked.
type RecipeProvider struct {
	chat      ChatClient
	retriever outbound.DocumentRetriever
	logger    *zap.Logger
}

// NewRecipeProvider creates a recipe provider. The retriever may be nil, in
// which case the backend answers without grounding context.
func NewRecipeProvider(chat ChatClient, retriever outbound.DocumentRetriever, logger *zap.Logger) *RecipeProvider {
	return &RecipeProvider{
		chat:      chat,
		retriever: retriever,
		logger:    logger.Named("recipe-provider"),
	}
}

const recipeSystemPrompt = `You are an expert chef and nutritionist. Recommend recipes that satisfy every constraint in the user's request. Constraints listed under "Avoid" are absolute: never use those ingredients in any form.

CRITICAL: You must respond with ONLY a valid JSON object in the exact format shown below. Do not include any explanatory text, markdown formatting, or other content outside the JSON.

Required JSON format:
{
  "recipes": [
    {
      "name": "Recipe Name",
      "ingredients": ["2 cups brown rice", "1 tbsp olive oil"],
      "nutrition": {
        "calories": 350,
        "protein_g": 25.0,
        "carbs_g": 30.0,
        "fat_g": 15.0,
        "fiber_g": 5.0,
        "sodium_mg": 400,
        "sugar_g": 6.0
      },
      "why_recommended": "one sentence on why this fits the request",
      "servings": 4,
      "prep_time": "25 minutes",
      "cook_instructions": "Numbered steps as one string."
    }
  ]
}

Nutrition values are per serving. Omit nutrients you cannot estimate.`

type recipeListResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}

// Ask returns candidate recipes for the augmented query.
func (p *RecipeProvider) Ask(ctx context.Context, query string) ([]recipe.Recipe, error) {
	userPrompt := p.buildUserPrompt(ctx, query)

	raw, err := p.chat.Complete(ctx, recipeSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("recipe completion failed: %w", err)
	}

	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("recipe response: %w", err)
	}

	var resp recipeListResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		p.logger.Error("failed to parse recipe JSON",
			zap.Error(err),
			zap.String("response", jsonStr),
		)
		return nil, fmt.Errorf("failed to parse recipe response: %w", err)
	}

	recipes := make([]recipe.Recipe, 0, len(resp.Recipes))
	for _, r := range resp.Recipes {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		recipes = append(recipes, r)
	}

	p.logger.Debug("recipes generated", zap.Int("count", len(recipes)))
	return recipes, nil
}

// buildUserPrompt prepends retrieved reference documents to the query.
// Retrieval errors degrade to an ungrounded prompt.
func (p *RecipeProvider) buildUserPrompt(ctx context.Context, query string) string {
	var b strings.Builder

	if p.retriever != nil {
		docs, err := p.retriever.Retrieve(ctx, query, defaultRecipeCount)
		if err != nil {
			p.logger.Warn("document retrieval failed, answering without context", zap.Error(err))
		} else if len(docs) > 0 {
			b.WriteString("Reference recipes from our cookbook. Prefer adapting these when they fit the request:\n\n")
			for _, doc := range docs {
				fmt.Fprintf(&b, "### %s\n%s\n\n", doc.Title, doc.Content)
			}
			b.WriteString("---\n\n")
		}
	}

	fmt.Fprintf(&b, "Recommend %d recipes for the following request:\n\n%s", defaultRecipeCount, query)
	return b.String()
}
