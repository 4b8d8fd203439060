package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nutriplan/v1/internal/domain/intent"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/safety"
	"go.uber.org/zap"
)

// SemanticChecker asks the chat backend for constraint violations that
// keyword matching cannot see, such as a compound ingredient hiding a banned
// food. One call covers the whole candidate batch.
type SemanticChecker struct {
	chat   ChatClient
	logger *zap.Logger
}

// NewSemanticChecker creates a semantic checker.
func NewSemanticChecker(chat ChatClient, logger *zap.Logger) *SemanticChecker {
	return &SemanticChecker{
		chat:   chat,
		logger: logger.Named("semantic-checker"),
	}
}

const semanticSystemPrompt = `You are a food safety auditor. You receive recipes and a user's dietary constraints. Find violations that simple keyword matching would miss, for example a compound ingredient that contains a banned food (worcestershire sauce contains anchovies, marshmallows contain gelatin, many stocks contain meat).

CRITICAL: You must respond with ONLY a valid JSON object in the exact format shown below. Do not include any explanatory text, markdown formatting, or other content outside the JSON.

Required JSON format:
{
  "findings": [
    {
      "recipe": "exact recipe name as given",
      "category": "hidden_ingredient or restriction_violation",
      "description": "what is violated and by which ingredient",
      "detail": "the specific ingredient"
    }
  ]
}

Strict rules:
- Only flag a CLEAR violation of a stated restriction or a "must avoid" food.
- Never flag general health commentary about a recipe.
- Never flag foods from the "should limit" list. Those are advisory only.
- Never repeat a violation that plain ingredient-name matching would already catch. Only report what the names hide.
- When in doubt, do not flag. An empty findings array is the correct answer when everything is safe.`

type semanticFinding struct {
	Recipe      string `json:"recipe"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
}

type semanticResponse struct {
	Findings []semanticFinding `json:"findings"`
}

// FindIssues returns semantic violations keyed by recipe name.
func (c *SemanticChecker) FindIssues(ctx context.Context, recipes []recipe.Recipe, constraints *nutrition.Constraints, userIntent *intent.UserIntent) (map[string][]safety.Issue, error) {
	if len(recipes) == 0 {
		return map[string][]safety.Issue{}, nil
	}

	raw, err := c.chat.Complete(ctx, semanticSystemPrompt, buildAuditPrompt(recipes, constraints, userIntent))
	if err != nil {
		return nil, fmt.Errorf("semantic check completion failed: %w", err)
	}

	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("semantic check response: %w", err)
	}

	var resp semanticResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		c.logger.Error("failed to parse semantic check JSON",
			zap.Error(err),
			zap.String("response", jsonStr),
		)
		return nil, fmt.Errorf("failed to parse semantic check response: %w", err)
	}

	issues := make(map[string][]safety.Issue, len(resp.Findings))
	for _, f := range resp.Findings {
		name := strings.TrimSpace(f.Recipe)
		if name == "" || strings.TrimSpace(f.Description) == "" {
			continue
		}
		issues[name] = append(issues[name], safety.Issue{
			Category:    safety.Category(f.Category),
			Severity:    safety.SeverityHigh,
			Description: f.Description,
			Detail:      f.Detail,
		})
	}

	c.logger.Debug("semantic check complete",
		zap.Int("recipes", len(recipes)),
		zap.Int("flagged", len(issues)),
	)
	return issues, nil
}

func buildAuditPrompt(recipes []recipe.Recipe, constraints *nutrition.Constraints, userIntent *intent.UserIntent) string {
	var b strings.Builder

	b.WriteString("User constraints:\n")
	if len(userIntent.Restrictions()) > 0 {
		fmt.Fprintf(&b, "Dietary restrictions: %s\n", strings.Join(userIntent.Restrictions(), ", "))
	}
	if len(constraints.Avoid) > 0 {
		fmt.Fprintf(&b, "Must avoid entirely: %s\n", strings.Join(constraints.Avoid, ", "))
	}
	if len(constraints.Limit) > 0 {
		fmt.Fprintf(&b, "Should limit: %s\n", strings.Join(constraints.Limit, ", "))
	}

	b.WriteString("\nRecipes to audit:\n")
	for _, r := range recipes {
		fmt.Fprintf(&b, "\n%s:\n", r.Name)
		for _, ing := range r.Ingredients {
			fmt.Fprintf(&b, "- %s\n", ing)
		}
	}

	return b.String()
}
