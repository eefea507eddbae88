// internal/scoring/tiers.go
package scoring

import "mcp-menu-scan/internal/models"

const (
	MinScore = 0
	MaxScore = 100

	// ExclusionScore is the raw score carried by an excluded item on the
	// wire. It is never shown to a user.
	ExclusionScore = -100

	// TopPickThreshold is the lowest display score a top pick may have.
	TopPickThreshold = 40
)

type matchBand struct {
	min   int
	label string
}

var matchBands = []matchBand{
	{85, "Perfect Match"},
	{70, "Great Choice"},
	{55, "Good Option"},
	{40, "Okay with Tweaks"},
}

const splurgeLabel = "Splurge"

// TrafficLightFor maps a display score onto its traffic light.
func TrafficLightFor(score int) models.TrafficLight {
	switch {
	case score >= 70:
		return models.Green
	case score >= 40:
		return models.Amber
	default:
		return models.Red
	}
}

// MatchLabelFor maps a display score onto its match label.
func MatchLabelFor(score int) string {
	for _, b := range matchBands {
		if score >= b.min {
			return b.label
		}
	}
	return splurgeLabel
}

// HealthTierFor is used for estimates only.
func HealthTierFor(score int) models.HealthTier {
	switch {
	case score >= 72:
		return models.Healthy
	case score >= 50:
		return models.Moderate
	default:
		return models.Indulgent
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
