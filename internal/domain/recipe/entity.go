// Package recipe contains the candidate recipe model produced by the recipe
// provider. Recipes are value objects: built once per pipeline run, never
// mutated, handed to the safety filter for verdict annotation.
package recipe

// Recipe is one recommended dish.
type Recipe struct {
	Name             string          `json:"name"`
	Ingredients      []string        `json:"ingredients"`
	Nutrition        NutritionValues `json:"nutrition"`
	WhyRecommended   string          `json:"why_recommended"`
	Servings         int             `json:"servings"`
	PrepTime         string          `json:"prep_time"`
	CookInstructions string          `json:"cook_instructions"`
}

// NutritionValues holds per-serving nutrition facts. Every field is optional;
// a nil field means the provider did not report that nutrient.
type NutritionValues struct {
	Calories      *float64 `json:"calories,omitempty"`
	ProteinG      *float64 `json:"protein_g,omitempty"`
	CarbsG        *float64 `json:"carbs_g,omitempty"`
	FatG          *float64 `json:"fat_g,omitempty"`
	FiberG        *float64 `json:"fiber_g,omitempty"`
	SodiumMG      *float64 `json:"sodium_mg,omitempty"`
	SugarG        *float64 `json:"sugar_g,omitempty"`
	SaturatedFatG *float64 `json:"saturated_fat_g,omitempty"`
}

// Value looks up a nutrient by its constraint key (e.g. "sodium_mg").
// The second return is false when the nutrient was not reported or the key
// is unknown.
func (n NutritionValues) Value(key string) (float64, bool) {
	var p *float64
	switch key {
	case "calories":
		p = n.Calories
	case "protein_g":
		p = n.ProteinG
	case "carbs_g":
		p = n.CarbsG
	case "fat_g":
		p = n.FatG
	case "fiber_g":
		p = n.FiberG
	case "sodium_mg":
		p = n.SodiumMG
	case "sugar_g":
		p = n.SugarG
	case "saturated_fat_g":
		p = n.SaturatedFatG
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Float is a convenience for building optional nutrition fields.
func Float(v float64) *float64 {
	return &v
}
