// internal/models/profile.go
package models

import "strings"

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
	GoalHealth   Goal = "health"
)

type DietType string

const (
	DietCICO          DietType = "cico"
	DietKeto          DietType = "keto"
	DietVegan         DietType = "vegan"
	DietLowCarb       DietType = "lowcarb"
	DietMediterranean DietType = "mediterranean"
	DietNone          DietType = "none"
)

type MacroPriority string

const (
	PriorityLowCal      MacroPriority = "lowcal"
	PriorityHighProtein MacroPriority = "highprotein"
	PriorityLowCarb     MacroPriority = "lowcarb"
	PriorityBalanced    MacroPriority = "balanced"
)

// UserProfile is a read-only snapshot owned by the profile subsystem.
type UserProfile struct {
	Goal               Goal          `json:"goal"`
	DietType           DietType      `json:"diet_type"`
	MacroPriority      MacroPriority `json:"macro_priority"`
	Intolerances       []string      `json:"intolerances,omitempty"`
	Dislikes           []string      `json:"dislikes,omitempty"`
	DailyCalorieTarget float64       `json:"daily_calorie_target,omitempty"`
}

// DietCriteria drives healthy-choice evaluation. A zero DailyCalorieTarget
// means no target is set.
type DietCriteria struct {
	DailyCalorieTarget float64  `json:"daily_calorie_target,omitempty"`
	DietType           DietType `json:"diet_type,omitempty"`
	RestrictedFoods    []string `json:"restricted_foods,omitempty"`
}

// CriteriaFromProfile restricts the union of intolerances and dislikes,
// dropping blanks and case-insensitive repeats.
func CriteriaFromProfile(p UserProfile) DietCriteria {
	seen := make(map[string]struct{})
	var restricted []string
	for _, food := range append(append([]string{}, p.Intolerances...), p.Dislikes...) {
		key := strings.ToLower(strings.TrimSpace(food))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		restricted = append(restricted, strings.TrimSpace(food))
	}
	return DietCriteria{
		DailyCalorieTarget: p.DailyCalorieTarget,
		DietType:           p.DietType,
		RestrictedFoods:    restricted,
	}
}
