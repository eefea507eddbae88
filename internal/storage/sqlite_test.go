package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-menu-scan/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "menu-scan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetMeals(t *testing.T) {
	s := newTestStorage(t)
	at := time.Date(2026, 4, 2, 12, 30, 0, 0, time.UTC)

	meal := &models.LoggedMeal{
		Item: models.MenuItem{
			Name:              "Bibimbap",
			EstimatedCalories: 610,
			Ingredients:       []string{"rice", "egg", "gochujang"},
			Score:             68,
			TrafficLight:      models.Amber,
		},
		RestaurantName: "Seoul Kitchen",
		Cuisine:        "korean",
		LoggedAt:       at,
		Source:         "scan",
	}
	require.NoError(t, s.SaveMeal(meal))
	assert.NotEmpty(t, meal.ID)
	assert.False(t, meal.CreatedAt.IsZero())

	got, err := s.GetMeal(meal.ID)
	require.NoError(t, err)
	assert.Equal(t, meal.Item, got.Item)
	assert.Equal(t, "Seoul Kitchen", got.RestaurantName)
	assert.True(t, at.Equal(got.LoggedAt))

	meals, err := s.GetMeals("2026-04-02", "2026-04-02", 10)
	require.NoError(t, err)
	require.Len(t, meals, 1)

	meals, err = s.GetMeals("2026-04-03", "", 10)
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestGetMeal_NotFound(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.GetMeal("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealsOn(t *testing.T) {
	s := newTestStorage(t)
	loc := time.FixedZone("plus2", 2*60*60)

	times := []time.Time{
		time.Date(2026, 4, 1, 23, 59, 59, 0, loc),
		time.Date(2026, 4, 2, 0, 0, 1, 0, loc),
		time.Date(2026, 4, 2, 21, 0, 0, 0, loc),
		time.Date(2026, 4, 3, 0, 0, 0, 0, loc),
	}
	for i, at := range times {
		require.NoError(t, s.SaveMeal(&models.LoggedMeal{
			Item:     models.MenuItem{Name: "Meal", EstimatedCalories: float64(100 * (i + 1))},
			LoggedAt: at,
			Source:   "manual",
		}))
	}

	meals, err := s.MealsOn(time.Date(2026, 4, 2, 9, 0, 0, 0, loc))
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, 300.0, meals[0].Item.EstimatedCalories)
	assert.Equal(t, 200.0, meals[1].Item.EstimatedCalories)
}

func TestSaveAndGetSpends(t *testing.T) {
	s := newTestStorage(t)

	older := &models.SpendEntry{
		RestaurantName: "Trattoria",
		Amount:         24.5,
		Currency:       "EUR",
		Confidence:     0.92,
		HomeAmount:     26.63,
		HomeCurrency:   "USD",
		Converted:      true,
		RecordedAt:     time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC),
	}
	newer := &models.SpendEntry{
		RestaurantName: "Unknown",
		Amount:         10,
		Currency:       "ZZZ",
		HomeAmount:     10,
		HomeCurrency:   "USD",
		RecordedAt:     time.Date(2026, 4, 2, 20, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveSpend(older))
	require.NoError(t, s.SaveSpend(newer))

	spends, err := s.GetSpends(10)
	require.NoError(t, err)
	require.Len(t, spends, 2)
	assert.Equal(t, newer.ID, spends[0].ID)
	assert.False(t, spends[0].Converted)
	assert.True(t, spends[1].Converted)
	assert.Equal(t, 26.63, spends[1].HomeAmount)
}
