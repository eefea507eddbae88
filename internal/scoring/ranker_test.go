package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-menu-scan/internal/models"
)

func scored(name string, score int) ScoredItem {
	res := ScoreResult{
		Score:        score,
		RawScore:     score,
		TrafficLight: TrafficLightFor(score),
		MatchLabel:   MatchLabelFor(score),
	}
	return ScoredItem{Item: Apply(models.MenuItem{Name: name}, res), Result: res}
}

func pickNames(picks []models.TopPick) []string {
	names := make([]string, 0, len(picks))
	for _, p := range picks {
		names = append(names, p.Name)
	}
	return names
}

func TestRank_ThresholdExcludesLowScores(t *testing.T) {
	r := Rank([]ScoredItem{scored("a", 85), scored("b", 20), scored("c", 55)}, models.PriorityBalanced)

	require.Len(t, r.TopPicks, 2)
	assert.Equal(t, "a", r.TopPicks[0].Name)
	assert.Equal(t, 1, r.TopPicks[0].Rank)
	assert.Equal(t, "Best Match", r.TopPicks[0].Badge)
	assert.Equal(t, "c", r.TopPicks[1].Name)
	assert.Equal(t, 2, r.TopPicks[1].Rank)
	assert.Equal(t, "Runner Up", r.TopPicks[1].Badge)

	require.Len(t, r.Sorted, 3)
	assert.Equal(t, 20, r.Sorted[2].Result.Score)
}

func TestRank_CapsAtThreeAndKeepsTies(t *testing.T) {
	items := []ScoredItem{
		scored("first", 60), scored("top", 90), scored("second", 60), scored("third", 60), scored("low", 10),
	}
	r := Rank(items, models.PriorityHighProtein)

	assert.Equal(t, []string{"top", "first", "second"}, pickNames(r.TopPicks))
	assert.Equal(t, "Highest Protein", r.TopPicks[1].Badge)
	assert.Equal(t, "Great Option", r.TopPicks[2].Badge)
	assert.Equal(t, "first", items[0].Item.Name)
}

func TestRank_ExcludedNeverPicked(t *testing.T) {
	excluded := scored("excluded", 0)
	excluded.Result.Excluded = true
	excluded.Result.RawScore = ExclusionScore
	// a corrupted display score must not let an excluded item through
	excluded.Result.Score = 95

	r := Rank([]ScoredItem{excluded, scored("ok", 45)}, models.PriorityBalanced)
	assert.Equal(t, []string{"ok"}, pickNames(r.TopPicks))
}

func TestRank_Empty(t *testing.T) {
	r := Rank(nil, models.PriorityBalanced)
	assert.Empty(t, r.Sorted)
	assert.Empty(t, r.TopPicks)
}

func TestRankPicks_Idempotent(t *testing.T) {
	r := Rank([]ScoredItem{scored("a", 72), scored("b", 91), scored("c", 40), scored("d", 66)}, models.PriorityHighProtein)

	again := RankPicks(r.TopPicks, models.PriorityHighProtein)
	assert.Equal(t, r.TopPicks, again)
	assert.Equal(t, again, RankPicks(again, models.PriorityHighProtein))
}

func TestRank_EndToEnd(t *testing.T) {
	items := []models.MenuItem{
		{Name: "Garden Salad", EstimatedCalories: 280, EstimatedProtein: 8, IsVegan: true},
		{Name: "Ribeye", EstimatedCalories: 1100, EstimatedProtein: 70},
		{Name: "Tofu Stir Fry", EstimatedCalories: 480, EstimatedProtein: 24, IsVegan: true},
	}
	profile := models.UserProfile{DietType: models.DietVegan, MacroPriority: models.PriorityBalanced}

	r := Rank(NewScorer(DefaultWeights()).ScoreMenu(items, profile), profile.MacroPriority)

	assert.Equal(t, []string{"Garden Salad", "Tofu Stir Fry"}, pickNames(r.TopPicks))
	assert.True(t, r.Sorted[2].Result.Excluded)
}
