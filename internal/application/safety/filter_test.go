package safety

import (
	"context"
	"testing"

	"github.com/nutriplan/v1/internal/domain/intent"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/safety"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockSemanticChecker is a mock implementation of the semantic checker
type MockSemanticChecker struct {
	mock.Mock
}

func (m *MockSemanticChecker) FindIssues(ctx context.Context, recipes []recipe.Recipe, constraints *nutrition.Constraints, userIntent *intent.UserIntent) (map[string][]safety.Issue, error) {
	args := m.Called(ctx, recipes, constraints, userIntent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]safety.Issue), args.Error(1)
}

// Test utilities

func emptyIntent() *intent.UserIntent {
	return intent.NewUserIntent("", "", nil, nil, nil, nil, "")
}

func intentWithRestrictions(restrictions ...string) *intent.UserIntent {
	return intent.NewUserIntent("", "", nil, restrictions, nil, nil, "")
}

func plainConstraints() *nutrition.Constraints {
	return &nutrition.Constraints{Limits: map[string]nutrition.Bound{}}
}

func namedRecipe(name string, ingredients ...string) recipe.Recipe {
	return recipe.Recipe{
		Name:        name,
		Ingredients: ingredients,
		Servings:    2,
	}
}

// Whole-word matching

func TestMatchWholeWord(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		text  string
		match bool
	}{
		{"PluralTerm_ShouldMatchSingularInCompound", "peanuts", "2 tbsp peanut butter", true},
		{"SingularTerm_ShouldMatchPlural", "tomato", "3 tomatoes, diced", true},
		{"Term_ShouldNotMatchInsideLargerWord", "salt", "salted butter", false},
		{"Term_ShouldMatchAsStandaloneWord", "salt", "1 tsp sea salt", true},
		{"Egg_ShouldNotMatchEggplant", "egg", "1 large eggplant", false},
		{"Egg_ShouldMatchEggs", "egg", "2 eggs, beaten", true},
		{"TwoWordTerm_ShouldMatch", "soy sauce", "low-sodium soy sauce", true},
		{"IesPlural_ShouldMatchYSingular", "berries", "fresh berry compote", true},
		{"ThreeWordTerm_ShouldBeSkipped", "foods high in", "foods high in sugar", false},
		{"CaseInsensitive_ShouldMatch", "Shellfish", "SHELLFISH stock", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, matchWholeWord(tt.term, tt.text))
		})
	}
}

// Rule-based checks

func TestCheck_AvoidList(t *testing.T) {
	filter := NewFilter(nil, zaptest.NewLogger(t))

	t.Run("AvoidedIngredient_ShouldRejectRecipe", func(t *testing.T) {
		// Arrange
		constraints := plainConstraints()
		constraints.Avoid = []string{"peanuts"}
		recipes := []recipe.Recipe{namedRecipe("Satay Noodles", "rice noodles", "peanut butter", "lime")}

		// Act
		result := filter.Check(context.Background(), recipes, constraints, emptyIntent())

		// Assert
		require.Len(t, result.RecipeVerdicts, 1)
		verdict := result.RecipeVerdicts[0]
		assert.Equal(t, safety.VerdictUnsafe, verdict.Verdict)
		require.Len(t, verdict.Issues, 1)
		assert.Equal(t, safety.CategoryAvoidFood, verdict.Issues[0].Category)
		assert.Equal(t, safety.SeverityCritical, verdict.Issues[0].Severity)
		assert.Contains(t, verdict.Issues[0].Detail, "peanut butter")
		assert.Empty(t, result.SafeRecipes())
	})

	t.Run("LimitedIngredient_ShouldNotRejectRecipe", func(t *testing.T) {
		// Limit entries are advisory only; they never produce issues on
		// their own.
		constraints := plainConstraints()
		constraints.Limit = []string{"red meat", "salt"}
		recipes := []recipe.Recipe{namedRecipe("Steak Salad", "beef steak", "salt", "arugula")}

		result := filter.Check(context.Background(), recipes, constraints, emptyIntent())

		assert.Equal(t, safety.VerdictSafe, result.RecipeVerdicts[0].Verdict)
		assert.Len(t, result.SafeRecipes(), 1)
	})

	t.Run("MultipleAvoidEntries_ShouldFlagEachOnce", func(t *testing.T) {
		constraints := plainConstraints()
		constraints.Avoid = []string{"shrimp", "peanuts"}
		recipes := []recipe.Recipe{namedRecipe("Pad Thai", "shrimp", "peanuts", "more shrimp")}

		result := filter.Check(context.Background(), recipes, constraints, emptyIntent())

		// One issue per avoid entry, not per matching ingredient.
		assert.Len(t, result.RecipeVerdicts[0].Issues, 2)
	})
}

func TestCheck_Restrictions(t *testing.T) {
	filter := NewFilter(nil, zaptest.NewLogger(t))

	tests := []struct {
		name        string
		restriction string
		ingredient  string
		unsafe      bool
	}{
		{"Vegetarian_ShouldRejectChickenBroth", "vegetarian", "chicken broth", true},
		{"Vegetarian_ShouldAllowCheese", "vegetarian", "cheddar cheese", false},
		{"Vegan_ShouldRejectCheese", "vegan", "cheddar cheese", true},
		{"Vegan_ShouldRejectHoney", "vegan", "1 tbsp honey", true},
		{"Vegan_ShouldRejectGelatin", "vegan", "gelatin sheets", true},
		{"Pescatarian_ShouldAllowSalmon", "pescatarian", "salmon fillet", false},
		{"Pescatarian_ShouldRejectBacon", "pescatarian", "crispy bacon", true},
		{"GlutenFree_ShouldRejectSoySauce", "gluten-free", "2 tbsp soy sauce", true},
		{"GlutenFree_ShouldRejectFlour", "gluten-free", "all-purpose flour", true},
		{"LactoseFree_ShouldRejectCream", "lactose-free", "heavy cream", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes := []recipe.Recipe{namedRecipe("Test Dish", tt.ingredient, "olive oil")}

			result := filter.Check(context.Background(), recipes, plainConstraints(), intentWithRestrictions(tt.restriction))

			if tt.unsafe {
				assert.Equal(t, safety.VerdictUnsafe, result.RecipeVerdicts[0].Verdict)
			} else {
				assert.Equal(t, safety.VerdictSafe, result.RecipeVerdicts[0].Verdict)
			}
		})
	}

	t.Run("MultipleBannedIngredients_ShouldFlagRestrictionOnce", func(t *testing.T) {
		recipes := []recipe.Recipe{namedRecipe("Carbonara", "bacon", "parmesan cheese", "eggs", "cream")}

		result := filter.Check(context.Background(), recipes, plainConstraints(), intentWithRestrictions("vegan"))

		require.Len(t, result.RecipeVerdicts[0].Issues, 1)
		assert.Equal(t, safety.CategoryRestrictionViolation, result.RecipeVerdicts[0].Issues[0].Category)
	})

	t.Run("UnknownRestriction_ShouldBeIgnoredByRules", func(t *testing.T) {
		recipes := []recipe.Recipe{namedRecipe("Curry", "chicken", "rice")}

		result := filter.Check(context.Background(), recipes, plainConstraints(), intentWithRestrictions("paleo"))

		assert.Equal(t, safety.VerdictSafe, result.RecipeVerdicts[0].Verdict)
	})
}

func TestCheck_NutritionLimits(t *testing.T) {
	filter := NewFilter(nil, zaptest.NewLogger(t))

	t.Run("SugarOverMax_ShouldWarnNotReject", func(t *testing.T) {
		constraints := plainConstraints()
		constraints.Limits["sugar_g"] = nutrition.Bound{Max: recipe.Float(25)}
		r := namedRecipe("Glazed Carrots", "carrots", "maple syrup")
		r.Nutrition.SugarG = recipe.Float(32)

		result := filter.Check(context.Background(), []recipe.Recipe{r}, constraints, emptyIntent())

		verdict := result.RecipeVerdicts[0]
		assert.Equal(t, safety.VerdictWarning, verdict.Verdict)
		require.Len(t, verdict.Issues, 1)
		assert.Equal(t, safety.CategoryNutritionLimit, verdict.Issues[0].Category)
		assert.Equal(t, safety.SeverityMedium, verdict.Issues[0].Severity)
		// WARNING recipes stay in the safe set.
		assert.Len(t, result.SafeRecipes(), 1)
	})

	t.Run("FiberBelowMin_ShouldWarn", func(t *testing.T) {
		constraints := plainConstraints()
		constraints.Limits["fiber_g"] = nutrition.Bound{Min: recipe.Float(5)}
		r := namedRecipe("White Toast", "white bread")
		r.Nutrition.FiberG = recipe.Float(1)

		result := filter.Check(context.Background(), []recipe.Recipe{r}, constraints, emptyIntent())

		assert.Equal(t, safety.VerdictWarning, result.RecipeVerdicts[0].Verdict)
	})

	t.Run("UnreportedNutrient_ShouldBeSkipped", func(t *testing.T) {
		constraints := plainConstraints()
		constraints.Limits["sodium_mg"] = nutrition.Bound{Max: recipe.Float(1500)}
		r := namedRecipe("Mystery Stew", "beans")

		result := filter.Check(context.Background(), []recipe.Recipe{r}, constraints, emptyIntent())

		assert.Equal(t, safety.VerdictSafe, result.RecipeVerdicts[0].Verdict)
	})

	t.Run("ValueAtMax_ShouldBeSafe", func(t *testing.T) {
		constraints := plainConstraints()
		constraints.Limits["sugar_g"] = nutrition.Bound{Max: recipe.Float(25)}
		r := namedRecipe("Fruit Bowl", "mixed fruit")
		r.Nutrition.SugarG = recipe.Float(25)

		result := filter.Check(context.Background(), []recipe.Recipe{r}, constraints, emptyIntent())

		assert.Equal(t, safety.VerdictSafe, result.RecipeVerdicts[0].Verdict)
	})
}

// Semantic check integration

func TestCheck_SemanticIssues(t *testing.T) {
	t.Run("HiddenIngredientFinding_ShouldRejectRecipe", func(t *testing.T) {
		// Arrange
		checker := &MockSemanticChecker{}
		checker.On("FindIssues", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(map[string][]safety.Issue{
			"Caesar Salad": {{
				Category:    safety.CategoryHiddenIngredient,
				Severity:    safety.SeverityMedium,
				Description: "worcestershire sauce contains anchovies",
				Detail:      "worcestershire sauce",
			}},
		}, nil)
		filter := NewFilter(checker, zaptest.NewLogger(t))
		recipes := []recipe.Recipe{namedRecipe("Caesar Salad", "romaine", "worcestershire sauce")}

		// Act
		result := filter.Check(context.Background(), recipes, plainConstraints(), intentWithRestrictions("vegetarian"))

		// Assert
		verdict := result.RecipeVerdicts[0]
		assert.Equal(t, safety.VerdictUnsafe, verdict.Verdict)
		require.Len(t, verdict.Issues, 1)
		// Semantic findings are clamped to high severity regardless of what
		// the checker reported.
		assert.Equal(t, safety.SeverityHigh, verdict.Issues[0].Severity)
		checker.AssertExpectations(t)
	})

	t.Run("UnrelatedCategory_ShouldBeDiscarded", func(t *testing.T) {
		checker := &MockSemanticChecker{}
		checker.On("FindIssues", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(map[string][]safety.Issue{
			"Oatmeal": {{
				Category:    safety.CategoryNutritionLimit,
				Severity:    safety.SeverityCritical,
				Description: "might be high in sugar",
			}},
		}, nil)
		filter := NewFilter(checker, zaptest.NewLogger(t))
		recipes := []recipe.Recipe{namedRecipe("Oatmeal", "oats", "water")}

		result := filter.Check(context.Background(), recipes, plainConstraints(), emptyIntent())

		assert.Equal(t, safety.VerdictSafe, result.RecipeVerdicts[0].Verdict)
	})

	t.Run("LimitFoodFinding_ShouldStayAdvisory", func(t *testing.T) {
		// Arrange
		checker := &MockSemanticChecker{}
		checker.On("FindIssues", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(map[string][]safety.Issue{
			"Steak Bowl": {{
				Category:    safety.CategoryRestrictionViolation,
				Severity:    safety.SeverityHigh,
				Description: "contains red meat, which the user should limit",
				Detail:      "beef steak",
			}},
		}, nil)
		filter := NewFilter(checker, zaptest.NewLogger(t))
		recipes := []recipe.Recipe{namedRecipe("Steak Bowl", "beef steak", "rice", "broccoli")}
		constraints := &nutrition.Constraints{
			Limit:  []string{"red meat"},
			Limits: map[string]nutrition.Bound{},
		}

		// Act
		result := filter.Check(context.Background(), recipes, constraints, intentWithRestrictions("low-sodium"))

		// Assert
		verdict := result.RecipeVerdicts[0]
		assert.Equal(t, safety.VerdictSafe, verdict.Verdict)
		assert.Empty(t, verdict.Issues)
	})

	t.Run("FindingWithoutStatedRestrictions_ShouldBeDiscarded", func(t *testing.T) {
		checker := &MockSemanticChecker{}
		checker.On("FindIssues", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(map[string][]safety.Issue{
			"Steak Bowl": {{
				Category:    safety.CategoryRestrictionViolation,
				Severity:    safety.SeverityHigh,
				Description: "beef steak may conflict with dietary guidance",
				Detail:      "beef steak",
			}},
		}, nil)
		filter := NewFilter(checker, zaptest.NewLogger(t))
		recipes := []recipe.Recipe{namedRecipe("Steak Bowl", "beef steak", "rice")}

		result := filter.Check(context.Background(), recipes, plainConstraints(), emptyIntent())

		assert.Equal(t, safety.VerdictSafe, result.RecipeVerdicts[0].Verdict)
	})

	t.Run("SemanticCheckerError_ShouldFailOpen", func(t *testing.T) {
		checker := &MockSemanticChecker{}
		checker.On("FindIssues", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)
		filter := NewFilter(checker, zaptest.NewLogger(t))
		recipes := []recipe.Recipe{namedRecipe("Plain Rice", "rice", "water")}

		result := filter.Check(context.Background(), recipes, plainConstraints(), emptyIntent())

		assert.Equal(t, safety.VerdictSafe, result.RecipeVerdicts[0].Verdict)
		assert.Len(t, result.SafeRecipes(), 1)
	})
}

// Aggregation

func TestCheck_Aggregation(t *testing.T) {
	filter := NewFilter(nil, zaptest.NewLogger(t))

	t.Run("EmptyInput_ShouldReportNothingToCheck", func(t *testing.T) {
		result := filter.Check(context.Background(), nil, plainConstraints(), emptyIntent())

		assert.Equal(t, "No recipes to check.", result.Summary)
		assert.Empty(t, result.RecipeVerdicts)
		assert.Empty(t, result.SafeRecipesMarkdown)
	})

	t.Run("MixedVerdicts_ShouldSummarizeAndPreserveOrder", func(t *testing.T) {
		constraints := plainConstraints()
		constraints.Avoid = []string{"shellfish"}
		constraints.Limits["sodium_mg"] = nutrition.Bound{Max: recipe.Float(1000)}

		salty := namedRecipe("Miso Soup", "miso paste", "tofu")
		salty.Nutrition.SodiumMG = recipe.Float(1800)
		recipes := []recipe.Recipe{
			namedRecipe("Veggie Bowl", "quinoa", "kale"),
			namedRecipe("Shellfish Platter", "shellfish", "lemon"),
			salty,
		}

		result := filter.Check(context.Background(), recipes, constraints, emptyIntent())

		assert.Equal(t, 3, result.TotalCount())
		assert.Equal(t, 2, result.SafeCount())

		safe := result.SafeRecipes()
		require.Len(t, safe, 2)
		assert.Equal(t, "Veggie Bowl", safe[0].Name)
		assert.Equal(t, "Miso Soup", safe[1].Name)

		filtered := result.FilteredOut()
		require.Len(t, filtered, 1)
		assert.Equal(t, "Shellfish Platter", filtered[0].RecipeName)

		assert.Contains(t, result.Summary, "2/3 recipes passed safety checks.")
		assert.Contains(t, result.Summary, `Rejected "Shellfish Platter"`)
		assert.Contains(t, result.Summary, `Warning for "Miso Soup"`)

		// The rendered markdown never contains a rejected recipe.
		assert.Contains(t, result.SafeRecipesMarkdown, "## Veggie Bowl")
		assert.NotContains(t, result.SafeRecipesMarkdown, "Shellfish Platter")
	})

	t.Run("AllSafe_ShouldRenderAllRecipes", func(t *testing.T) {
		recipes := []recipe.Recipe{
			namedRecipe("Dish A", "rice"),
			namedRecipe("Dish B", "beans"),
		}

		result := filter.Check(context.Background(), recipes, plainConstraints(), emptyIntent())

		assert.Equal(t, "2/2 recipes passed safety checks.", result.Summary)
		assert.Contains(t, result.SafeRecipesMarkdown, "## Dish A")
		assert.Contains(t, result.SafeRecipesMarkdown, "## Dish B")
	})
}

func BenchmarkCheck(b *testing.B) {
	filter := NewFilter(nil, zaptest.NewLogger(b))
	constraints := plainConstraints()
	constraints.Avoid = []string{"peanuts", "shellfish", "processed sugar"}
	constraints.Limits["sodium_mg"] = nutrition.Bound{Max: recipe.Float(1500)}

	recipes := make([]recipe.Recipe, 0, 10)
	for i := 0; i < 10; i++ {
		r := namedRecipe("Bench Dish", "rice", "chicken", "soy sauce", "broccoli", "sesame oil")
		r.Nutrition.SodiumMG = recipe.Float(900)
		recipes = append(recipes, r)
	}
	ui := intentWithRestrictions("gluten-free")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		filter.Check(context.Background(), recipes, constraints, ui)
	}
}
