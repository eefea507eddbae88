// internal/scoring/estimator.go
package scoring

import (
	"math"
	"strings"

	"mcp-menu-scan/internal/models"
)

type macros struct {
	calories, protein, carbs, fat float64
}

const otherCuisine = "other"

var cuisineBase = map[string]macros{
	"american":      {720, 32, 60, 34},
	"italian":       {780, 28, 88, 30},
	"mexican":       {760, 30, 78, 32},
	"chinese":       {700, 26, 86, 24},
	"japanese":      {560, 30, 64, 16},
	"thai":          {650, 24, 78, 24},
	"indian":        {740, 26, 72, 34},
	"mediterranean": {560, 30, 48, 24},
	"french":        {800, 30, 54, 44},
	"korean":        {640, 30, 70, 22},
	otherCuisine:    {650, 25, 65, 28},
}

type keywordAdjustment struct {
	words []string
	delta macros
}

// Each class applies at most once per name.
var keywordAdjustments = []keywordAdjustment{
	{
		words: []string{"salad", "grilled", "steamed", "broth", "sashimi"},
		delta: macros{calories: -120, protein: 4, carbs: -12, fat: -6},
	},
	{
		words: []string{"burger", "fries", "fried", "alfredo", "carbonara", "cream", "cheesy", "pizza", "burrito"},
		delta: macros{calories: 180, carbs: 14, fat: 10},
	},
	{
		words: []string{"chicken", "turkey", "tuna", "salmon", "steak", "beef", "pork", "tofu"},
		delta: macros{protein: 8},
	},
}

var macroFloor = macros{calories: 150, protein: 5, carbs: 5, fat: 3}

const (
	estimateBaseScore = 65
	estimateMinScore  = 20
	estimateMaxScore  = 95

	defaultDishName = "House Special"
)

var healthReasons = map[models.HealthTier]string{
	models.Healthy:   "Lean protein and a sensible calorie load make this an easy fit.",
	models.Moderate:  "Reasonable in a normal portion; watch sides and sauces.",
	models.Indulgent: "Rich and calorie-dense, best kept as an occasional treat.",
}

// EstimateNutrition guesses macros for a dish from its name and cuisine.
// Unknown cuisines use a generic base and an empty name becomes a house
// special; it never fails.
func EstimateNutrition(itemName, cuisineKey string) models.NutritionEstimate {
	name := strings.TrimSpace(itemName)
	if name == "" {
		name = defaultDishName
	}

	m, ok := cuisineBase[Normalize(cuisineKey)]
	if !ok {
		m = cuisineBase[otherCuisine]
	}

	text := Normalize(name)
	for _, adj := range keywordAdjustments {
		if containsAny(text, adj.words) {
			m.calories += adj.delta.calories
			m.protein += adj.delta.protein
			m.carbs += adj.delta.carbs
			m.fat += adj.delta.fat
		}
	}

	m.calories = math.Round(math.Max(m.calories, macroFloor.calories))
	m.protein = math.Round(math.Max(m.protein, macroFloor.protein))
	m.carbs = math.Round(math.Max(m.carbs, macroFloor.carbs))
	m.fat = math.Round(math.Max(m.fat, macroFloor.fat))

	score := clamp(estimateScore(m), estimateMinScore, estimateMaxScore)
	health := HealthTierFor(score)

	return models.NutritionEstimate{
		Name:         name,
		Calories:     m.calories,
		Protein:      m.protein,
		Carbs:        m.carbs,
		Fat:          m.fat,
		Health:       health,
		HealthReason: healthReasons[health],
		Score:        score,
		TrafficLight: TrafficLightFor(score),
		MatchLabel:   MatchLabelFor(score),
	}
}

func estimateScore(m macros) int {
	score := estimateBaseScore
	switch {
	case m.calories > 750:
		score -= 20
	case m.calories > 600:
		score -= 10
	case m.calories < 450:
		score += 8
	}
	if m.protein >= 30 {
		score += 10
	}
	if m.fat > 35 {
		score -= 10
	}
	if m.carbs > 70 {
		score -= 8
	}
	return score
}
