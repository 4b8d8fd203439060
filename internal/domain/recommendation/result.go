// Package recommendation contains the top-level result of one pipeline run.
package recommendation

import (
	"github.com/nutriplan/v1/internal/domain/intent"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/safety"
)

// Result composes everything a single recommendation run produced. It is
// assembled once at the end of the pipeline and never mutated.
type Result struct {
	Intent         *intent.UserIntent
	Constraints    *nutrition.Constraints
	AugmentedQuery string
	Candidates     []recipe.Recipe
	Safety         *safety.CheckResult
}

// Summary passes through the safety check's human-readable summary.
func (r *Result) Summary() string {
	if r.Safety == nil {
		return ""
	}
	return r.Safety.Summary
}

// SafeRecipes passes through the recipes that cleared the safety filter.
func (r *Result) SafeRecipes() []recipe.Recipe {
	if r.Safety == nil {
		return nil
	}
	return r.Safety.SafeRecipes()
}
