// internal/scoring/scorer.go
package scoring

import (
	"fmt"

	"mcp-menu-scan/internal/models"
)

// ScoreResult is the verdict for one item. An excluded item carries
// Score 0 for display and ExclusionScore as its RawScore; check Excluded
// before recommending anything.
//
// Reasons keeps the first MaxReasons in rule order, so an exclusion that
// fires after earlier bonuses can be cut from it. Read Exclusion for the
// reason an item was excluded.
type ScoreResult struct {
	Score        int                 `json:"score"`
	RawScore     int                 `json:"raw_score"`
	Excluded     bool                `json:"excluded"`
	Exclusion    string              `json:"exclusion,omitempty"`
	Reasons      []string            `json:"reasons"`
	TrafficLight models.TrafficLight `json:"traffic_light"`
	MatchLabel   string              `json:"match_label"`
}

// Eligible reports whether the item may be recommended at all.
func (r ScoreResult) Eligible() bool {
	return !r.Excluded
}

// ScoredItem is a menu item enriched with its verdict.
type ScoredItem struct {
	Item   models.MenuItem `json:"item"`
	Result ScoreResult     `json:"result"`
}

type Scorer struct {
	w Weights
}

func NewScorer(w Weights) *Scorer {
	if w.MaxReasons <= 0 {
		w.MaxReasons = DefaultWeights().MaxReasons
	}
	return &Scorer{w: w}
}

var defaultScorer = NewScorer(DefaultWeights())

// Score rates item for profile with the default weights.
func Score(item models.MenuItem, profile models.UserProfile) ScoreResult {
	return defaultScorer.Score(item, profile)
}

// tally collects points and reasons in the order rules fire.
type tally struct {
	points    int
	reasons   []string
	exclusion string
}

func (t *tally) add(points int, reason string) {
	t.points += points
	if reason != "" {
		t.reasons = append(t.reasons, reason)
	}
}

func (t *tally) exclude(reason string) {
	if t.exclusion == "" {
		t.exclusion = reason
	}
	t.reasons = append(t.reasons, reason)
}

// Score rates a single item. It is pure: the same inputs always give the
// same result.
func (s *Scorer) Score(item models.MenuItem, profile models.UserProfile) ScoreResult {
	t := &tally{points: s.w.Base}
	text := ItemText(item)

	s.scoreCalories(t, item)
	s.scoreMacroPriority(t, item, profile.MacroPriority)
	s.scoreDiet(t, item, profile.DietType, text)
	s.scoreRestrictions(t, text, profile)
	s.scoreGoal(t, item, profile.Goal)

	reasons := t.reasons
	if len(reasons) > s.w.MaxReasons {
		reasons = reasons[:s.w.MaxReasons]
	}
	if reasons == nil {
		reasons = []string{}
	}

	res := ScoreResult{Reasons: reasons}
	if t.exclusion != "" {
		res.Excluded = true
		res.Exclusion = t.exclusion
		res.RawScore = ExclusionScore
	} else {
		res.RawScore = t.points
	}
	res.Score = clamp(res.RawScore, MinScore, MaxScore)
	res.TrafficLight = TrafficLightFor(res.Score)
	res.MatchLabel = MatchLabelFor(res.Score)
	return res
}

// Apply writes a result onto a copy of item.
func Apply(item models.MenuItem, res ScoreResult) models.MenuItem {
	item.Score = res.Score
	item.ScoreReasons = append([]string(nil), res.Reasons...)
	item.TrafficLight = res.TrafficLight
	item.MatchLabel = res.MatchLabel
	return item
}

// ScoreMenu scores every item, leaving the input slice untouched.
func (s *Scorer) ScoreMenu(items []models.MenuItem, profile models.UserProfile) []ScoredItem {
	out := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		res := s.Score(item, profile)
		out = append(out, ScoredItem{Item: Apply(item, res), Result: res})
	}
	return out
}

func (s *Scorer) scoreCalories(t *tally, item models.MenuItem) {
	cw := s.w.Calories
	if !applyCeiling(t, cw.Bands, item.EstimatedCalories) && item.EstimatedCalories > cw.HeavyOver {
		t.add(cw.Heavy, "High calorie")
	}
}

func (s *Scorer) scoreMacroPriority(t *tally, item models.MenuItem, priority models.MacroPriority) {
	switch priority {
	case models.PriorityHighProtein:
		pw := s.w.HighProtein
		matched := false
		for _, b := range pw.Tiers {
			if item.EstimatedProtein >= b.Limit {
				t.add(b.Points, b.Reason)
				matched = true
				break
			}
		}
		if !matched && item.EstimatedProtein < pw.LowUnder {
			t.add(pw.Low, "Low protein")
		}
		if item.EstimatedCalories > 0 && item.EstimatedProtein/item.EstimatedCalories*100 > pw.DensityOver {
			t.add(pw.DensityBonus, "Great protein density")
		}
	case models.PriorityLowCarb:
		if !applyCeiling(t, s.w.LowCarbBands, item.EstimatedCarbs) && item.EstimatedCarbs > s.w.LowCarbOver {
			t.add(s.w.LowCarbPenalty, "High carb")
		}
	case models.PriorityLowCal:
		if !applyCeiling(t, s.w.LowCalBands, item.EstimatedCalories) && item.EstimatedCalories > s.w.LowCalOver {
			t.add(s.w.LowCalPenalty, "Calorie heavy")
		}
	}
}

func (s *Scorer) scoreDiet(t *tally, item models.MenuItem, diet models.DietType, text string) {
	switch diet {
	case models.DietKeto:
		kw := s.w.Keto
		if !applyCeiling(t, kw.Bands, item.EstimatedCarbs) && item.EstimatedCarbs > kw.OverCarb {
			t.add(kw.Over, "Too many carbs for keto")
		}
	case models.DietVegan:
		if item.IsVegan {
			t.add(s.w.VeganBonus, "Vegan")
		} else {
			t.exclude("Not vegan")
		}
	case models.DietLowCarb:
		if item.EstimatedCarbs > s.w.LowCarbDietOver {
			t.add(s.w.LowCarbDietPenalty, "High carb for low-carb diet")
		}
	case models.DietMediterranean:
		if containsAny(text, mediterraneanKeywords) {
			t.add(s.w.MediterraneanBonus, "Mediterranean-friendly")
		}
	}
}

// scoreRestrictions stops at the first intolerance hit but always checks
// every dislike.
func (s *Scorer) scoreRestrictions(t *tally, text string, profile models.UserProfile) {
	for _, intolerance := range profile.Intolerances {
		if containsAny(text, IntoleranceKeywords(intolerance)) {
			t.exclude(fmt.Sprintf("Contains %s", Normalize(intolerance)))
			break
		}
	}
	for _, dislike := range profile.Dislikes {
		word := Normalize(dislike)
		if word != "" && containsAny(text, []string{word}) {
			t.add(s.w.DislikePenalty, fmt.Sprintf("Has %s (disliked)", word))
		}
	}
}

func (s *Scorer) scoreGoal(t *tally, item models.MenuItem, goal models.Goal) {
	gw := s.w.Goal
	switch goal {
	case models.GoalLose:
		if item.EstimatedCalories <= gw.LoseLightMax {
			t.add(gw.LoseLight, "Fits weight loss")
		} else if item.EstimatedCalories > gw.LoseHeavyOver {
			t.add(gw.LoseHeavy, "Heavy for weight loss")
		}
	case models.GoalGain:
		if item.EstimatedProtein >= gw.GainProteinMin && item.EstimatedCalories >= gw.GainCaloriesMin {
			t.add(gw.GainBonus, "Good for gains")
		}
	}
}

// applyCeiling awards the first band whose Limit the value does not exceed.
func applyCeiling(t *tally, bands []Band, value float64) bool {
	for _, b := range bands {
		if value <= b.Limit {
			t.add(b.Points, b.Reason)
			return true
		}
	}
	return false
}
