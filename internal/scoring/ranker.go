// internal/scoring/ranker.go
package scoring

import (
	"sort"

	"mcp-menu-scan/internal/models"
)

const maxTopPicks = 3

type Ranking struct {
	Sorted   []ScoredItem     `json:"sorted"`
	TopPicks []models.TopPick `json:"top_picks"`
}

// Rank orders items by display score, keeping input order on ties, and
// picks at most three eligible items scoring TopPickThreshold or more.
// The input slice is not reordered.
func Rank(items []ScoredItem, priority models.MacroPriority) Ranking {
	sorted := make([]ScoredItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Result.Score > sorted[j].Result.Score
	})

	picks := make([]models.TopPick, 0, maxTopPicks)
	for _, si := range sorted {
		if len(picks) == maxTopPicks {
			break
		}
		if !si.Result.Eligible() || si.Result.Score < TopPickThreshold {
			continue
		}
		rank := len(picks) + 1
		picks = append(picks, models.TopPick{
			MenuItem: si.Item,
			Rank:     rank,
			Badge:    badgeFor(rank, priority),
		})
	}

	return Ranking{Sorted: sorted, TopPicks: picks}
}

// RankPicks re-ranks an existing pick list. Feeding it a list produced by
// Rank returns the same list.
func RankPicks(picks []models.TopPick, priority models.MacroPriority) []models.TopPick {
	items := make([]ScoredItem, 0, len(picks))
	for _, p := range picks {
		items = append(items, ScoredItem{
			Item: p.MenuItem,
			Result: ScoreResult{
				Score:        p.Score,
				RawScore:     p.Score,
				Reasons:      p.ScoreReasons,
				TrafficLight: p.TrafficLight,
				MatchLabel:   p.MatchLabel,
			},
		})
	}
	return Rank(items, priority).TopPicks
}

func badgeFor(rank int, priority models.MacroPriority) string {
	switch rank {
	case 1:
		return "Best Match"
	case 2:
		if priority == models.PriorityHighProtein {
			return "Highest Protein"
		}
		return "Runner Up"
	default:
		return "Great Option"
	}
}
