package safety

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nutriplan/v1/internal/domain/recipe"
)

// RenderRecipes renders the recipes that cleared the safety filter as
// display markdown. It is a pure function over the recipe list and knows
// nothing about verdicts; callers pass only the safe set.
func RenderRecipes(recipes []recipe.Recipe) string {
	blocks := make([]string, 0, len(recipes))
	for _, r := range recipes {
		blocks = append(blocks, renderRecipe(r))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func renderRecipe(r recipe.Recipe) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n", r.Name)
	if r.WhyRecommended != "" {
		fmt.Fprintf(&b, "\n*%s*\n", r.WhyRecommended)
	}

	var meta []string
	if r.Servings > 0 {
		meta = append(meta, fmt.Sprintf("Servings: %d", r.Servings))
	}
	if r.PrepTime != "" {
		meta = append(meta, fmt.Sprintf("Prep time: %s", r.PrepTime))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "\n%s\n", strings.Join(meta, " | "))
	}

	if len(r.Ingredients) > 0 {
		b.WriteString("\nIngredients:\n")
		for _, ingredient := range r.Ingredients {
			fmt.Fprintf(&b, "- %s\n", ingredient)
		}
	}

	if r.CookInstructions != "" {
		fmt.Fprintf(&b, "\nInstructions:\n%s\n", r.CookInstructions)
	}

	if line := nutritionLine(r.Nutrition); line != "" {
		fmt.Fprintf(&b, "\nNutrition per serving: %s", line)
	}

	return strings.TrimRight(b.String(), "\n")
}

// nutritionLine reports calories, protein, carbs, fat, fiber and sodium,
// skipping nutrients the provider did not report.
func nutritionLine(n recipe.NutritionValues) string {
	var parts []string
	if n.Calories != nil {
		parts = append(parts, formatAmount(*n.Calories)+" kcal")
	}
	if n.ProteinG != nil {
		parts = append(parts, formatAmount(*n.ProteinG)+"g protein")
	}
	if n.CarbsG != nil {
		parts = append(parts, formatAmount(*n.CarbsG)+"g carbs")
	}
	if n.FatG != nil {
		parts = append(parts, formatAmount(*n.FatG)+"g fat")
	}
	if n.FiberG != nil {
		parts = append(parts, formatAmount(*n.FiberG)+"g fiber")
	}
	if n.SodiumMG != nil {
		parts = append(parts, formatAmount(*n.SodiumMG)+"mg sodium")
	}
	return strings.Join(parts, ", ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
