// internal/evaluation/streak.go
package evaluation

import (
	"sort"

	"mcp-menu-scan/internal/models"
)

// Streak counts consecutive healthy meals, newest first, re-evaluating each
// meal against the current criteria.
func Streak(meals []models.LoggedMeal, criteria models.DietCriteria) int {
	ordered := make([]models.LoggedMeal, len(meals))
	copy(ordered, meals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LoggedAt.After(ordered[j].LoggedAt)
	})

	n := 0
	for _, m := range ordered {
		if !Evaluate(m.Item, criteria).IsHealthy {
			break
		}
		n++
	}
	return n
}
