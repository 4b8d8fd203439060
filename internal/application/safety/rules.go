package safety

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/safety"
)

// maxRuleTermWords bounds rule matching to concrete food names. Longer
// phrases like "foods high in sugar" are left to the semantic check.
const maxRuleTermWords = 2

var meatKeywords = []string{
	"chicken", "beef", "pork", "lamb", "turkey", "duck", "veal",
	"bacon", "ham", "sausage", "salami", "pepperoni", "prosciutto",
	"meatball", "steak", "lard",
}

var seafoodKeywords = []string{
	"fish", "salmon", "tuna", "cod", "trout", "sardine", "anchovy",
	"shrimp", "prawn", "crab", "lobster", "oyster", "mussel", "clam",
}

var dairyKeywords = []string{
	"milk", "cheese", "butter", "cream", "yogurt", "ghee", "whey",
	"casein", "custard", "ice cream",
}

var glutenKeywords = []string{
	"wheat", "barley", "rye", "flour", "bread", "pasta", "noodle",
	"couscous", "seitan", "breadcrumb", "cracker", "soy sauce",
}

// restrictionBans maps a lowercase dietary restriction to the concrete
// ingredient keywords it bans. Vegan is a superset of vegetarian plus dairy,
// egg, honey and gelatin derivatives.
var restrictionBans = map[string][]string{
	"vegetarian":   joinKeywords(meatKeywords, seafoodKeywords, []string{"gelatin"}),
	"vegan":        joinKeywords(meatKeywords, seafoodKeywords, dairyKeywords, []string{"gelatin", "egg", "honey", "mayonnaise"}),
	"pescatarian":  joinKeywords(meatKeywords, []string{"gelatin"}),
	"gluten-free":  glutenKeywords,
	"lactose-free": dairyKeywords,
}

func joinKeywords(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// singular strips a plural suffix so that "peanuts" matches "peanut" and
// "tomatoes" matches "tomato".
func singular(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return strings.TrimSuffix(w, "ies") + "y"
	case len(w) > 4 && strings.HasSuffix(w, "oes"):
		return strings.TrimSuffix(w, "es")
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return strings.TrimSuffix(w, "s")
	}
	return w
}

func wordExpr(w string) string {
	base := singular(strings.ToLower(w))
	if len(base) > 2 && strings.HasSuffix(base, "y") {
		return regexp.QuoteMeta(strings.TrimSuffix(base, "y")) + "(?:y|ies)"
	}
	return regexp.QuoteMeta(base) + "(?:e?s)?"
}

// compileTerm builds a case-insensitive whole-word pattern for a food term
// of at most maxRuleTermWords words. The pattern tolerates plural forms but
// never matches inside a larger word: "salt" matches "sea salt" and never
// "salted butter".
func compileTerm(term string) (*regexp.Regexp, bool) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(term)))
	if len(words) == 0 || len(words) > maxRuleTermWords {
		return nil, false
	}
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = wordExpr(w)
	}
	re, err := regexp.Compile(`(?i)\b` + strings.Join(parts, `\s+`) + `\b`)
	if err != nil {
		return nil, false
	}
	return re, true
}

// matchWholeWord reports whether term appears in text as a complete word.
func matchWholeWord(term, text string) bool {
	re, ok := compileTerm(term)
	if !ok {
		return false
	}
	return re.MatchString(text)
}

// checkIngredients runs the deterministic rule-based ingredient checks:
// hard avoid-list matching and the static restriction table.
func checkIngredients(r recipe.Recipe, constraints *nutrition.Constraints, restrictions []string) []safety.Issue {
	var issues []safety.Issue

	for _, entry := range constraints.Avoid {
		re, ok := compileTerm(entry)
		if !ok {
			continue
		}
		for _, ingredient := range r.Ingredients {
			if re.MatchString(ingredient) {
				issues = append(issues, safety.Issue{
					Category:    safety.CategoryAvoidFood,
					Severity:    safety.SeverityCritical,
					Description: fmt.Sprintf("contains %q which must be completely avoided", entry),
					Detail:      fmt.Sprintf("matched ingredient: %s", ingredient),
				})
				break
			}
		}
	}

	for _, restriction := range restrictions {
		banned, ok := restrictionBans[strings.ToLower(restriction)]
		if !ok {
			continue
		}
		if issue, found := firstRestrictionHit(r, restriction, banned); found {
			issues = append(issues, issue)
		}
	}

	return issues
}

// firstRestrictionHit returns at most one violation per restriction; once a
// banned ingredient is found there is no value in flagging the rest.
func firstRestrictionHit(r recipe.Recipe, restriction string, banned []string) (safety.Issue, bool) {
	for _, keyword := range banned {
		re, ok := compileTerm(keyword)
		if !ok {
			continue
		}
		for _, ingredient := range r.Ingredients {
			if re.MatchString(ingredient) {
				return safety.Issue{
					Category:    safety.CategoryRestrictionViolation,
					Severity:    safety.SeverityCritical,
					Description: fmt.Sprintf("contains %q which violates the %s restriction", keyword, restriction),
					Detail:      fmt.Sprintf("matched ingredient: %s", ingredient),
				}, true
			}
		}
	}
	return safety.Issue{}, false
}

// checkNutrition flags nutrients that fall outside the configured numeric
// bounds. Recipes with no reported value for a nutrient are skipped.
func checkNutrition(r recipe.Recipe, constraints *nutrition.Constraints) []safety.Issue {
	if len(constraints.Limits) == 0 {
		return nil
	}

	keys := make([]string, 0, len(constraints.Limits))
	for key := range constraints.Limits {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var issues []safety.Issue
	for _, key := range keys {
		bound := constraints.Limits[key]
		value, ok := r.Nutrition.Value(key)
		if !ok {
			continue
		}
		if bound.Max != nil && value > *bound.Max {
			issues = append(issues, safety.Issue{
				Category:    safety.CategoryNutritionLimit,
				Severity:    safety.SeverityMedium,
				Description: fmt.Sprintf("%s of %s exceeds the recommended maximum of %s", key, formatAmount(value), formatAmount(*bound.Max)),
				Detail:      fmt.Sprintf("nutrient: %s", key),
			})
		}
		if bound.Min != nil && value < *bound.Min {
			issues = append(issues, safety.Issue{
				Category:    safety.CategoryNutritionLimit,
				Severity:    safety.SeverityMedium,
				Description: fmt.Sprintf("%s of %s is below the recommended minimum of %s", key, formatAmount(value), formatAmount(*bound.Min)),
				Detail:      fmt.Sprintf("nutrient: %s", key),
			})
		}
	}
	return issues
}
