// Package safety provides the application layer for recipe safety checking:
// deterministic rule-based validation plus a best-effort semantic check.
package safety

import (
	"context"
	"fmt"
	"strings"

	"github.com/nutriplan/v1/internal/domain/intent"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/safety"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// maxSummaryIssues caps the issue descriptions quoted per recipe in the
// summary report.
const maxSummaryIssues = 3

// Filter validates candidate recipes against medical constraints and the
// user's dietary restrictions. The rule-based checks are pure functions; the
// semantic check is an enrichment that fails open to zero issues. A recipe
// that violates a hard constraint never reaches the safe set.
type Filter struct {
	semantic outbound.SemanticChecker
	logger   *zap.Logger
}

// NewFilter creates a safety filter. The semantic checker may be nil, in
// which case only the rule-based checks run.
func NewFilter(semantic outbound.SemanticChecker, logger *zap.Logger) *Filter {
	return &Filter{
		semantic: semantic,
		logger:   logger.Named("safety-filter"),
	}
}

// Check validates every candidate recipe and aggregates the verdicts.
// It never returns an error: rule-based issues are always computed, and a
// semantic-check failure degrades to "no additional issues".
func (f *Filter) Check(ctx context.Context, recipes []recipe.Recipe, constraints *nutrition.Constraints, userIntent *intent.UserIntent) *safety.CheckResult {
	if len(recipes) == 0 {
		return &safety.CheckResult{
			RecipeVerdicts:      []safety.RecipeResult{},
			SafeRecipesMarkdown: "",
			Summary:             "No recipes to check.",
		}
	}

	var restrictions []string
	if userIntent != nil {
		restrictions = userIntent.Restrictions()
	}

	semanticIssues := f.semanticIssues(ctx, recipes, constraints, userIntent)

	verdicts := make([]safety.RecipeResult, 0, len(recipes))
	for _, r := range recipes {
		issues := checkIngredients(r, constraints, restrictions)
		issues = append(issues, checkNutrition(r, constraints)...)
		issues = append(issues, semanticIssues[r.Name]...)
		verdicts = append(verdicts, safety.NewRecipeResult(r, issues))
	}

	result := &safety.CheckResult{RecipeVerdicts: verdicts}
	result.SafeRecipesMarkdown = RenderRecipes(result.SafeRecipes())
	result.Summary = buildSummary(result)

	f.logger.Info("safety check complete",
		zap.Int("total", result.TotalCount()),
		zap.Int("passed", result.SafeCount()),
		zap.Int("rejected", result.TotalCount()-result.SafeCount()),
	)

	return result
}

// semanticIssues runs the batched LLM-backed check. Any failure is logged
// and swallowed; only clear hidden-ingredient or restriction violations of
// high severity are accepted. Findings that have no hard constraint to
// violate, or that name only advisory limit foods, are dropped.
func (f *Filter) semanticIssues(ctx context.Context, recipes []recipe.Recipe, constraints *nutrition.Constraints, userIntent *intent.UserIntent) map[string][]safety.Issue {
	if f.semantic == nil {
		return nil
	}

	found, err := f.semantic.FindIssues(ctx, recipes, constraints, userIntent)
	if err != nil {
		f.logger.Warn("semantic check failed, continuing with rule-based issues only", zap.Error(err))
		return nil
	}

	var restrictions []string
	if userIntent != nil {
		restrictions = userIntent.Restrictions()
	}
	var avoid []string
	if constraints != nil {
		avoid = constraints.Avoid
	}

	accepted := make(map[string][]safety.Issue, len(found))
	for name, issues := range found {
		for _, issue := range issues {
			if issue.Category != safety.CategoryHiddenIngredient && issue.Category != safety.CategoryRestrictionViolation {
				continue
			}
			if issue.Category == safety.CategoryRestrictionViolation && len(restrictions) == 0 {
				continue
			}
			if issue.Category == safety.CategoryHiddenIngredient && len(restrictions) == 0 && len(avoid) == 0 {
				continue
			}
			if limitOnlyFinding(issue, constraints) {
				continue
			}
			issue.Severity = safety.SeverityHigh
			accepted[name] = append(accepted[name], issue)
		}
	}
	return accepted
}

// limitOnlyFinding reports whether a semantic finding points at a food from
// the limit list rather than a hard constraint. Limit entries are advisory
// and never reject a recipe.
func limitOnlyFinding(issue safety.Issue, constraints *nutrition.Constraints) bool {
	if constraints == nil {
		return false
	}
	text := issue.Detail + " " + issue.Description
	hit := false
	for _, term := range constraints.Limit {
		if matchWholeWord(term, text) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, term := range constraints.Avoid {
		if matchWholeWord(term, text) {
			return false
		}
	}
	return true
}

// buildSummary renders the line-per-recipe report with an N/M passed header.
func buildSummary(result *safety.CheckResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d recipes passed safety checks.", result.SafeCount(), result.TotalCount())

	for _, v := range result.RecipeVerdicts {
		switch v.Verdict {
		case safety.VerdictUnsafe:
			fmt.Fprintf(&b, "\n- Rejected %q: %s", v.RecipeName, issueDigest(v.Issues))
		case safety.VerdictWarning:
			fmt.Fprintf(&b, "\n- Warning for %q: %s", v.RecipeName, issueDigest(v.Issues))
		}
	}
	return b.String()
}

func issueDigest(issues []safety.Issue) string {
	descriptions := make([]string, 0, maxSummaryIssues)
	for _, issue := range issues {
		descriptions = append(descriptions, issue.Description)
		if len(descriptions) == maxSummaryIssues {
			break
		}
	}
	return strings.Join(descriptions, "; ")
}
