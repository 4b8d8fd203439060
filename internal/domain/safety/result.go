// Package safety contains the verdict model the safety filter produces for
// candidate recipes.
package safety

import (
	"github.com/nutriplan/v1/internal/domain/recipe"
)

// Category classifies a detected problem.
type Category string

const (
	CategoryAvoidFood            Category = "avoid_food"
	CategoryRestrictionViolation Category = "restriction_violation"
	CategoryNutritionLimit       Category = "nutrition_limit"
	CategoryHiddenIngredient     Category = "hidden_ingredient"
)

// Severity grades how serious an issue is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// Verdict is the safety classification of one candidate recipe.
type Verdict string

const (
	VerdictSafe    Verdict = "SAFE"
	VerdictWarning Verdict = "WARNING"
	VerdictUnsafe  Verdict = "UNSAFE"
)

// Issue is one detected problem. Immutable value object.
type Issue struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Detail      string   `json:"detail,omitempty"`
}

// RecipeResult is the per-recipe verdict with its supporting issues.
type RecipeResult struct {
	RecipeName string        `json:"recipe_name"`
	Verdict    Verdict       `json:"verdict"`
	Issues     []Issue       `json:"issues"`
	Recipe     recipe.Recipe `json:"recipe"`
}

// NewRecipeResult derives the verdict from the issue list: any critical or
// high issue makes the recipe UNSAFE, any medium issue alone makes it
// WARNING, otherwise it is SAFE.
func NewRecipeResult(r recipe.Recipe, issues []Issue) RecipeResult {
	return RecipeResult{
		RecipeName: r.Name,
		Verdict:    VerdictFor(issues),
		Issues:     issues,
		Recipe:     r,
	}
}

// VerdictFor computes the maximum-severity verdict for a set of issues.
func VerdictFor(issues []Issue) Verdict {
	verdict := VerdictSafe
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical, SeverityHigh:
			return VerdictUnsafe
		case SeverityMedium:
			verdict = VerdictWarning
		}
	}
	return verdict
}

// CheckResult aggregates the verdicts of one safety-filter run. It is created
// once per pipeline execution and read-only afterward.
type CheckResult struct {
	RecipeVerdicts      []RecipeResult `json:"recipe_verdicts"`
	SafeRecipesMarkdown string         `json:"safe_recipes_markdown"`
	Summary             string         `json:"summary"`
}

// TotalCount returns the number of recipes that were checked.
func (r *CheckResult) TotalCount() int {
	return len(r.RecipeVerdicts)
}

// SafeCount returns the number of recipes that passed (SAFE or WARNING).
func (r *CheckResult) SafeCount() int {
	count := 0
	for _, v := range r.RecipeVerdicts {
		if v.Verdict != VerdictUnsafe {
			count++
		}
	}
	return count
}

// SafeRecipes returns the recipes that may be shown to the user, in the
// original candidate order. UNSAFE recipes are never included.
func (r *CheckResult) SafeRecipes() []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(r.RecipeVerdicts))
	for _, v := range r.RecipeVerdicts {
		if v.Verdict != VerdictUnsafe {
			out = append(out, v.Recipe)
		}
	}
	return out
}

// FilteredOut returns exactly the UNSAFE verdicts.
func (r *CheckResult) FilteredOut() []RecipeResult {
	out := make([]RecipeResult, 0)
	for _, v := range r.RecipeVerdicts {
		if v.Verdict == VerdictUnsafe {
			out = append(out, v)
		}
	}
	return out
}

// Warnings returns the WARNING verdicts.
func (r *CheckResult) Warnings() []RecipeResult {
	out := make([]RecipeResult, 0)
	for _, v := range r.RecipeVerdicts {
		if v.Verdict == VerdictWarning {
			out = append(out, v)
		}
	}
	return out
}
