// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters). These are the contracts the recommendation core uses to reach
// external systems; every implementation must be a long-lived, stateless
// singleton safe for concurrent invocation.
package outbound

import (
	"context"

	"github.com/nutriplan/v1/internal/domain/intent"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/safety"
)

// IntentParser turns a free-text user message into a structured intent.
// An error means the pipeline cannot proceed; callers treat it as fatal.
type IntentParser interface {
	Parse(ctx context.Context, query string) (*intent.UserIntent, error)
}

// MedicalConstraintProvider derives dietary constraints from health
// conditions. Backed by document retrieval plus generation over a medical
// knowledge base; callers catch failures and degrade to defaults.
type MedicalConstraintProvider interface {
	GetConstraints(ctx context.Context, conditions []string) (*nutrition.Constraints, error)
}

// RecipeProvider returns candidate recipes for an augmented query. Parsing
// of generation output into Recipe values happens behind this boundary.
// An empty result is valid here; the pipeline decides whether it is fatal.
type RecipeProvider interface {
	Ask(ctx context.Context, query string) ([]recipe.Recipe, error)
}

// SemanticChecker finds violations simple keyword matching misses, batched
// across all recipes in one call. Results are keyed by recipe name. Callers
// treat any error as "no additional issues".
type SemanticChecker interface {
	FindIssues(ctx context.Context, recipes []recipe.Recipe, constraints *nutrition.Constraints, userIntent *intent.UserIntent) (map[string][]safety.Issue, error)
}

// Document is one retrieved knowledge-base entry.
type Document struct {
	ID      string
	Title   string
	Content string
	Score   float64
}

// DocumentRetriever retrieves documents relevant to a query. The embedding
// and index mechanics behind it are opaque to the core.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]Document, error)
}
