// internal/scoring/keywords.go
package scoring

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"mcp-menu-scan/internal/models"
)

// intoleranceVariants expands a profile intolerance into the words that
// reveal it on a menu. The intolerance itself always matches too.
var intoleranceVariants = map[string][]string{
	"dairy":     {"milk", "cheese", "cream", "butter", "yogurt"},
	"lactose":   {"milk", "cheese", "cream", "butter", "yogurt"},
	"gluten":    {"wheat", "bread", "flour", "pasta", "breaded"},
	"nuts":      {"peanut", "almond", "walnut", "cashew", "pecan"},
	"peanuts":   {"peanut"},
	"shellfish": {"shrimp", "crab", "lobster", "oyster", "mussel"},
	"soy":       {"tofu", "edamame", "soya"},
	"eggs":      {"egg", "mayonnaise", "mayo"},
}

var mediterraneanKeywords = []string{"fish", "olive", "vegetable", "salad", "grilled"}

// Normalize folds text for keyword matching: NFKC, lower case, collapsed
// whitespace.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ItemText joins the searchable text of an item.
func ItemText(item models.MenuItem) string {
	parts := make([]string, 0, len(item.Ingredients)+2)
	parts = append(parts, item.Name, item.Description)
	parts = append(parts, item.Ingredients...)
	return Normalize(strings.Join(parts, " "))
}

// IntoleranceKeywords returns the normalized keywords for an intolerance.
func IntoleranceKeywords(intolerance string) []string {
	key := Normalize(intolerance)
	if key == "" {
		return nil
	}
	words := []string{key}
	words = append(words, intoleranceVariants[key]...)
	return words
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}
