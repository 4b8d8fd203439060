package recommendation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nutriplan/v1/internal/domain/intent"
	"github.com/nutriplan/v1/internal/domain/nutrition"
)

// nutrientQueryOrder fixes the order in which numeric limits appear in the
// augmented query so the output is deterministic.
var nutrientQueryOrder = []struct {
	key   string
	label string
	unit  string
}{
	{"sugar_g", "sugar", "g"},
	{"sodium_mg", "sodium", "mg"},
	{"fiber_g", "fiber", "g"},
	{"protein_g", "protein", "g"},
	{"calories", "calories", " kcal"},
}

// BuildAugmentedQuery combines the user's request with intent and constraint
// context into the retrieval query fed to the recipe provider. The original
// query comes first so the food terms drive similarity search, and no piece
// of information is repeated. Sections are joined with blank lines; every
// line is omitted when its source list is empty.
func BuildAugmentedQuery(query string, ui *intent.UserIntent, conditions []string, constraints *nutrition.Constraints) string {
	sections := []string{strings.TrimSpace(query)}

	if prefs := ui.Preferences(); len(prefs) > 0 {
		sections = append(sections, "Preferred ingredients: "+strings.Join(prefs, ", "))
	}
	if instructions := ui.Instructions(); len(instructions) > 0 {
		sections = append(sections, "Special instructions: "+strings.Join(instructions, ". "))
	}
	if block := constraintsBlock(ui, conditions, constraints); block != "" {
		sections = append(sections, block)
	}

	return strings.Join(sections, "\n\n")
}

func constraintsBlock(ui *intent.UserIntent, conditions []string, constraints *nutrition.Constraints) string {
	var lines []string

	if len(conditions) > 0 {
		lines = append(lines, "Medical conditions: "+strings.Join(conditions, ", "))
	}
	if restrictions := ui.Restrictions(); len(restrictions) > 0 {
		lines = append(lines, "Dietary restrictions: "+strings.Join(restrictions, ", "))
	}
	if limits := nutrientLimits(constraints.Limits); limits != "" {
		lines = append(lines, "Nutrient limits: "+limits)
	}
	if len(constraints.Avoid) > 0 {
		lines = append(lines, "Avoid: "+strings.Join(constraints.Avoid, ", "))
	}
	if len(constraints.Limit) > 0 {
		lines = append(lines, "Limit: "+strings.Join(constraints.Limit, ", "))
	}

	return strings.Join(lines, "\n")
}

func nutrientLimits(limits map[string]nutrition.Bound) string {
	var parts []string
	for _, n := range nutrientQueryOrder {
		bound, ok := limits[n.key]
		if !ok {
			continue
		}
		if bound.Max != nil {
			parts = append(parts, fmt.Sprintf("%s max %s%s", n.label, formatLimit(*bound.Max), n.unit))
		}
		if bound.Min != nil {
			parts = append(parts, fmt.Sprintf("%s min %s%s", n.label, formatLimit(*bound.Min), n.unit))
		}
	}
	return strings.Join(parts, ", ")
}

func formatLimit(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
