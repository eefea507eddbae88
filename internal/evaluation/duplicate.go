// internal/evaluation/duplicate.go
package evaluation

import (
	"math"
	"time"

	"mcp-menu-scan/internal/models"
	"mcp-menu-scan/internal/scoring"
)

// DuplicateCalorieDelta is the calorie gap under which two meals count as
// the same dish.
const DuplicateCalorieDelta = 50.0

const dayLayout = "2006-01-02"

// SameDay compares calendar dates in now's location, not elapsed time.
func SameDay(t, now time.Time) bool {
	return t.In(now.Location()).Format(dayLayout) == now.Format(dayLayout)
}

// IsDuplicateToday reports whether candidate was already logged on now's
// calendar day at the same restaurant with similar calories. An empty
// restaurant only matches an empty restaurant.
func IsDuplicateToday(meals []models.LoggedMeal, candidate models.MenuItem, restaurant string, now time.Time) bool {
	name := scoring.Normalize(candidate.Name)
	place := scoring.Normalize(restaurant)
	for _, m := range meals {
		if !SameDay(m.LoggedAt, now) {
			continue
		}
		if scoring.Normalize(m.Item.Name) != name {
			continue
		}
		if scoring.Normalize(m.RestaurantName) != place {
			continue
		}
		if math.Abs(m.Item.EstimatedCalories-candidate.EstimatedCalories) < DuplicateCalorieDelta {
			return true
		}
	}
	return false
}
