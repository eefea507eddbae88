// internal/evaluation/healthy.go
package evaluation

import (
	"fmt"
	"strings"

	"mcp-menu-scan/internal/models"
	"mcp-menu-scan/internal/scoring"
)

const (
	// MealShareOfTarget caps a single meal as a share of the daily target.
	MealShareOfTarget = 0.4
	// FallbackMealCap applies when no daily target is set.
	FallbackMealCap = 800.0

	KetoCarbLimit    = 20.0
	LowCarbCarbLimit = 45.0
)

// Evaluate decides whether a meal keeps the streak alive. Results are not
// cached: criteria may change after a meal is logged.
func Evaluate(item models.MenuItem, criteria models.DietCriteria) models.HealthEvaluation {
	reasons := []string{}

	if r := checkCalories(item, criteria); r != "" {
		reasons = append(reasons, r)
	}
	if r := checkDiet(item, criteria.DietType); r != "" {
		reasons = append(reasons, r)
	}
	if r := checkRestrictions(item, criteria.RestrictedFoods); r != "" {
		reasons = append(reasons, r)
	}

	return models.HealthEvaluation{
		IsHealthy: len(reasons) == 0,
		Reasons:   reasons,
	}
}

// MealCap is the per-meal calorie ceiling for criteria.
func MealCap(criteria models.DietCriteria) float64 {
	if criteria.DailyCalorieTarget > 0 {
		return criteria.DailyCalorieTarget * MealShareOfTarget
	}
	return FallbackMealCap
}

func checkCalories(item models.MenuItem, criteria models.DietCriteria) string {
	limit := MealCap(criteria)
	if item.EstimatedCalories <= limit {
		return ""
	}
	if criteria.DailyCalorieTarget > 0 {
		return fmt.Sprintf("%.0f kcal is over the %.0f kcal meal budget (40%% of your %.0f kcal daily goal)",
			item.EstimatedCalories, limit, criteria.DailyCalorieTarget)
	}
	return fmt.Sprintf("%.0f kcal is over the %.0f kcal meal budget", item.EstimatedCalories, limit)
}

func checkDiet(item models.MenuItem, diet models.DietType) string {
	switch diet {
	case models.DietKeto:
		if item.EstimatedCarbs > KetoCarbLimit {
			return fmt.Sprintf("%.0fg carbs is too high for keto (max %.0fg)", item.EstimatedCarbs, KetoCarbLimit)
		}
	case models.DietLowCarb:
		if item.EstimatedCarbs > LowCarbCarbLimit {
			return fmt.Sprintf("%.0fg carbs is too high for low-carb (max %.0fg)", item.EstimatedCarbs, LowCarbCarbLimit)
		}
	case models.DietVegan:
		if !item.IsVegan {
			return "Not vegan"
		}
	}
	return ""
}

// checkRestrictions reports every matched food in one reason.
func checkRestrictions(item models.MenuItem, restricted []string) string {
	text := scoring.ItemText(item)
	var hits []string
	for _, food := range restricted {
		word := scoring.Normalize(food)
		if word != "" && strings.Contains(text, word) {
			hits = append(hits, word)
		}
	}
	if len(hits) == 0 {
		return ""
	}
	return "Contains restricted foods: " + strings.Join(hits, ", ")
}
