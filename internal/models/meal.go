// internal/models/meal.go
package models

import (
	"time"
)

// LoggedMeal is a menu item the user ate. The embedded item is frozen at log
// time; later corrections are stored as a new meal, not an update.
type LoggedMeal struct {
	ID             string    `json:"id"`
	Item           MenuItem  `json:"item"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	Cuisine        string    `json:"cuisine,omitempty"`
	LoggedAt       time.Time `json:"logged_at"`
	CreatedAt      time.Time `json:"created_at"`
	Source         string    `json:"source"` // "manual", "scan"
}

type SpendEntry struct {
	ID             string    `json:"id"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	Confidence     float64   `json:"confidence"`
	HomeAmount     float64   `json:"home_amount"`
	HomeCurrency   string    `json:"home_currency"`
	Converted      bool      `json:"converted"`
	RecordedAt     time.Time `json:"recorded_at"`
}
