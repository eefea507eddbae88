package evaluation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mcp-menu-scan/internal/models"
)

func logged(name, restaurant string, kcal float64, at time.Time) models.LoggedMeal {
	return models.LoggedMeal{
		Item:           models.MenuItem{Name: name, EstimatedCalories: kcal},
		RestaurantName: restaurant,
		LoggedAt:       at,
	}
}

func TestIsDuplicateToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	lunch := now.Add(-6 * time.Hour)
	candidate := models.MenuItem{Name: "Pad Thai", EstimatedCalories: 650}

	tests := []struct {
		name       string
		meals      []models.LoggedMeal
		restaurant string
		want       bool
	}{
		{"exact", []models.LoggedMeal{logged("Pad Thai", "Thai Orchid", 640, lunch)}, "Thai Orchid", true},
		{"case and spacing", []models.LoggedMeal{logged("  pad thai ", "THAI ORCHID", 680, lunch)}, "thai orchid", true},
		{"both restaurants empty", []models.LoggedMeal{logged("Pad Thai", "", 650, lunch)}, "", true},
		{"one restaurant empty", []models.LoggedMeal{logged("Pad Thai", "Thai Orchid", 650, lunch)}, "", false},
		{"calories too far", []models.LoggedMeal{logged("Pad Thai", "Thai Orchid", 700, lunch)}, "Thai Orchid", false},
		{"other name", []models.LoggedMeal{logged("Green Curry", "Thai Orchid", 650, lunch)}, "Thai Orchid", false},
		{"yesterday", []models.LoggedMeal{logged("Pad Thai", "Thai Orchid", 650, now.AddDate(0, 0, -1))}, "Thai Orchid", false},
		{
			"later match found",
			[]models.LoggedMeal{
				logged("Green Curry", "Thai Orchid", 650, lunch),
				logged("Pad Thai", "Thai Orchid", 660, lunch),
			},
			"Thai Orchid", true,
		},
		{"no meals", nil, "Thai Orchid", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateToday(tc.meals, candidate, tc.restaurant, now))
		})
	}
}

func TestIsDuplicateToday_MidnightBoundary(t *testing.T) {
	loc := time.FixedZone("local", 2*60*60)
	lateNight := time.Date(2026, 3, 14, 23, 59, 59, 0, loc)
	justAfter := time.Date(2026, 3, 15, 0, 0, 1, 0, loc)
	meals := []models.LoggedMeal{logged("Ramen", "Ichiran", 900, lateNight)}

	assert.False(t, IsDuplicateToday(meals, models.MenuItem{Name: "Ramen", EstimatedCalories: 900}, "Ichiran", justAfter))
	assert.True(t, IsDuplicateToday(meals, models.MenuItem{Name: "Ramen", EstimatedCalories: 900}, "Ichiran", lateNight.Add(time.Second/2)))
}

func TestSameDay_UsesCallerLocation(t *testing.T) {
	loc := time.FixedZone("plus5", 5*60*60)
	// 20:00 UTC is already the next day at +05:00
	loggedAt := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, loc)

	assert.True(t, SameDay(loggedAt, now))
}
