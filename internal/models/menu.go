// internal/models/menu.go
package models

type TrafficLight string

const (
	Green TrafficLight = "green"
	Amber TrafficLight = "amber"
	Red   TrafficLight = "red"
)

type HealthTier string

const (
	Healthy   HealthTier = "healthy"
	Moderate  HealthTier = "moderate"
	Indulgent HealthTier = "indulgent"
)

// MenuItem is a single parsed dish. Score, ScoreReasons, TrafficLight and
// MatchLabel are written by the scorer only, always from the same score.
type MenuItem struct {
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Price             string   `json:"price,omitempty"`
	Section           string   `json:"section,omitempty"`
	EstimatedCalories float64  `json:"estimated_calories"`
	EstimatedProtein  float64  `json:"estimated_protein"`
	EstimatedCarbs    float64  `json:"estimated_carbs"`
	EstimatedFat      float64  `json:"estimated_fat"`
	Ingredients       []string `json:"ingredients,omitempty"`
	IsVegetarian      bool     `json:"is_vegetarian"`
	IsVegan           bool     `json:"is_vegan"`
	IsGlutenFree      bool     `json:"is_gluten_free"`
	AllergenWarning   string   `json:"allergen_warning,omitempty"`
	ModificationTips  []string `json:"modification_tips,omitempty"`

	Score        int          `json:"score"`
	ScoreReasons []string     `json:"score_reasons,omitempty"`
	TrafficLight TrafficLight `json:"traffic_light,omitempty"`
	MatchLabel   string       `json:"match_label,omitempty"`
}

// TopPick is a ranked item. It is never persisted on its own.
type TopPick struct {
	MenuItem
	Rank  int    `json:"rank"`
	Badge string `json:"badge"`
}

type NutritionEstimate struct {
	Name         string       `json:"name"`
	Calories     float64      `json:"calories"`
	Protein      float64      `json:"protein"`
	Carbs        float64      `json:"carbs"`
	Fat          float64      `json:"fat"`
	Health       HealthTier   `json:"health"`
	HealthReason string       `json:"health_reason"`
	Score        int          `json:"score"`
	TrafficLight TrafficLight `json:"traffic_light"`
	MatchLabel   string       `json:"match_label"`
}

// MenuItem converts an estimate into an item the scorer can consume.
func (e NutritionEstimate) MenuItem() MenuItem {
	return MenuItem{
		Name:              e.Name,
		EstimatedCalories: e.Calories,
		EstimatedProtein:  e.Protein,
		EstimatedCarbs:    e.Carbs,
		EstimatedFat:      e.Fat,
		Score:             e.Score,
		TrafficLight:      e.TrafficLight,
		MatchLabel:        e.MatchLabel,
	}
}

type HealthEvaluation struct {
	IsHealthy bool     `json:"is_healthy"`
	Reasons   []string `json:"reasons"`
}
