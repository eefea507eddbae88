// internal/scoring/weights.go
package scoring

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Band awards Points when a value crosses Limit. Ceiling bands match at or
// under Limit, floor bands at or over it. An empty Reason adds no reason.
type Band struct {
	Limit  float64 `yaml:"limit"`
	Points int     `yaml:"points"`
	Reason string  `yaml:"reason,omitempty"`
}

type CalorieWeights struct {
	Bands     []Band  `yaml:"bands"` // ceilings, ascending
	HeavyOver float64 `yaml:"heavy_over"`
	Heavy     int     `yaml:"heavy"`
}

type ProteinWeights struct {
	Tiers        []Band  `yaml:"tiers"` // floors, descending
	LowUnder     float64 `yaml:"low_under"`
	Low          int     `yaml:"low"`
	DensityOver  float64 `yaml:"density_over"` // grams per 100 kcal
	DensityBonus int     `yaml:"density_bonus"`
}

type KetoWeights struct {
	Bands    []Band  `yaml:"bands"`
	OverCarb float64 `yaml:"over_carb"`
	Over     int     `yaml:"over"`
}

type GoalWeights struct {
	LoseLightMax    float64 `yaml:"lose_light_max"`
	LoseLight       int     `yaml:"lose_light"`
	LoseHeavyOver   float64 `yaml:"lose_heavy_over"`
	LoseHeavy       int     `yaml:"lose_heavy"`
	GainProteinMin  float64 `yaml:"gain_protein_min"`
	GainCaloriesMin float64 `yaml:"gain_calories_min"`
	GainBonus       int     `yaml:"gain_bonus"`
}

// Weights holds every threshold the item scorer uses so tuning happens in
// one place.
type Weights struct {
	Base     int            `yaml:"base"`
	Calories CalorieWeights `yaml:"calories"`

	HighProtein ProteinWeights `yaml:"high_protein"`

	LowCarbBands   []Band  `yaml:"low_carb_bands"`
	LowCarbOver    float64 `yaml:"low_carb_over"`
	LowCarbPenalty int     `yaml:"low_carb_penalty"`
	LowCalBands    []Band  `yaml:"low_cal_bands"`
	LowCalOver     float64 `yaml:"low_cal_over"`
	LowCalPenalty  int     `yaml:"low_cal_penalty"`

	Keto               KetoWeights `yaml:"keto"`
	VeganBonus         int         `yaml:"vegan_bonus"`
	LowCarbDietOver    float64     `yaml:"low_carb_diet_over"`
	LowCarbDietPenalty int         `yaml:"low_carb_diet_penalty"`
	MediterraneanBonus int         `yaml:"mediterranean_bonus"`

	DislikePenalty int         `yaml:"dislike_penalty"`
	Goal           GoalWeights `yaml:"goal"`

	MaxReasons int `yaml:"max_reasons"`
}

func DefaultWeights() Weights {
	return Weights{
		Base: 50,
		Calories: CalorieWeights{
			Bands: []Band{
				{Limit: 350, Points: 25, Reason: "Low calorie"},
				{Limit: 500, Points: 15, Reason: "Moderate calories"},
				{Limit: 700, Points: 5},
			},
			HeavyOver: 900,
			Heavy:     -15,
		},
		HighProtein: ProteinWeights{
			Tiers: []Band{
				{Limit: 40, Points: 20, Reason: "High protein"},
				{Limit: 30, Points: 12, Reason: "Good protein"},
				{Limit: 20, Points: 5},
			},
			LowUnder:     15,
			Low:          -10,
			DensityOver:  6,
			DensityBonus: 5,
		},
		LowCarbBands: []Band{
			{Limit: 15, Points: 25, Reason: "Very low carb"},
			{Limit: 30, Points: 15, Reason: "Low carb"},
			{Limit: 45, Points: 5},
		},
		LowCarbOver:    60,
		LowCarbPenalty: -20,
		LowCalBands: []Band{
			{Limit: 300, Points: 25, Reason: "Very low calorie"},
			{Limit: 450, Points: 15, Reason: "Light option"},
			{Limit: 600, Points: 5},
		},
		LowCalOver:    800,
		LowCalPenalty: -15,
		Keto: KetoWeights{
			Bands: []Band{
				{Limit: 8, Points: 20, Reason: "Keto friendly"},
				{Limit: 15, Points: 10, Reason: "Keto compatible"},
			},
			OverCarb: 25,
			Over:     -30,
		},
		VeganBonus:         15,
		LowCarbDietOver:    50,
		LowCarbDietPenalty: -20,
		MediterraneanBonus: 10,
		DislikePenalty:     -30,
		Goal: GoalWeights{
			LoseLightMax:    400,
			LoseLight:       5,
			LoseHeavyOver:   800,
			LoseHeavy:       -5,
			GainProteinMin:  35,
			GainCaloriesMin: 500,
			GainBonus:       10,
		},
		MaxReasons: 3,
	}
}

// LoadWeights overlays the YAML file at path on the defaults. An empty path
// or a missing file yields the defaults.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return w, nil
		}
		return w, fmt.Errorf("read weights: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return DefaultWeights(), fmt.Errorf("decode weights: %w", err)
	}
	if w.MaxReasons <= 0 {
		w.MaxReasons = DefaultWeights().MaxReasons
	}
	return w, nil
}
