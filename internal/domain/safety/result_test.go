package safety

import (
	"testing"

	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   Verdict
	}{
		{"NoIssues_Safe", nil, VerdictSafe},
		{"CriticalIssue_Unsafe", []Issue{{Severity: SeverityCritical}}, VerdictUnsafe},
		{"HighIssue_Unsafe", []Issue{{Severity: SeverityHigh}}, VerdictUnsafe},
		{"MediumIssue_Warning", []Issue{{Severity: SeverityMedium}}, VerdictWarning},
		{"MediumThenCritical_Unsafe", []Issue{{Severity: SeverityMedium}, {Severity: SeverityCritical}}, VerdictUnsafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerdictFor(tt.issues))
		})
	}
}

func TestCheckResult_Partitioning(t *testing.T) {
	result := CheckResult{
		RecipeVerdicts: []RecipeResult{
			NewRecipeResult(recipe.Recipe{Name: "A"}, nil),
			NewRecipeResult(recipe.Recipe{Name: "B"}, []Issue{{Severity: SeverityCritical}}),
			NewRecipeResult(recipe.Recipe{Name: "C"}, []Issue{{Severity: SeverityMedium}}),
		},
	}

	assert.Equal(t, 3, result.TotalCount())
	assert.Equal(t, 2, result.SafeCount())

	safe := result.SafeRecipes()
	require.Len(t, safe, 2)
	assert.Equal(t, "A", safe[0].Name)
	assert.Equal(t, "C", safe[1].Name)

	filtered := result.FilteredOut()
	require.Len(t, filtered, 1)
	assert.Equal(t, "B", filtered[0].RecipeName)

	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "C", warnings[0].RecipeName)
}
