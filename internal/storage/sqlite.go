// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mcp-menu-scan/internal/models"
)

var ErrNotFound = errors.New("not found")

// Timestamps are stored as fixed-width UTC strings so they sort lexically
// and stay readable by SQLite's date functions.
const timeLayout = "2006-01-02T15:04:05.000Z"

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS meals (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        restaurant TEXT NOT NULL,
        cuisine TEXT NOT NULL,
        calories REAL NOT NULL,
        item_json TEXT NOT NULL,
        logged_at TEXT NOT NULL,
        created_at TEXT NOT NULL,
        source TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS spends (
        id TEXT PRIMARY KEY,
        restaurant TEXT NOT NULL,
        amount REAL NOT NULL,
        currency TEXT NOT NULL,
        confidence REAL NOT NULL,
        home_amount REAL NOT NULL,
        home_currency TEXT NOT NULL,
        converted INTEGER NOT NULL,
        recorded_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_meals_logged_at ON meals(logged_at);
    CREATE INDEX IF NOT EXISTS idx_spends_recorded_at ON spends(recorded_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(timeLayout, v)
}

// SaveMeal inserts a meal, assigning an ID and CreatedAt when missing.
// Meals are never updated in place.
func (s *SQLiteStorage) SaveMeal(meal *models.LoggedMeal) error {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = time.Now()
	}
	if meal.LoggedAt.IsZero() {
		meal.LoggedAt = meal.CreatedAt
	}

	itemJSON, err := json.Marshal(meal.Item)
	if err != nil {
		return fmt.Errorf("failed to encode item: %w", err)
	}

	query := `
        INSERT INTO meals (id, name, restaurant, cuisine, calories, item_json, logged_at, created_at, source)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = s.db.Exec(query,
		meal.ID, meal.Item.Name, meal.RestaurantName, meal.Cuisine, meal.Item.EstimatedCalories,
		string(itemJSON), formatTime(meal.LoggedAt), formatTime(meal.CreatedAt), meal.Source)
	if err != nil {
		return fmt.Errorf("failed to insert meal: %w", err)
	}
	return nil
}

const mealColumns = `id, restaurant, cuisine, item_json, logged_at, created_at, source`

// GetMeals returns meals between the YYYY-MM-DD dates (inclusive, UTC),
// newest first.
func (s *SQLiteStorage) GetMeals(startDate, endDate string, limit int) ([]*models.LoggedMeal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE 1=1`
	args := []interface{}{}

	if startDate != "" {
		query += " AND DATE(logged_at) >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND DATE(logged_at) <= ?"
		args = append(args, endDate)
	}

	query += " ORDER BY logged_at DESC LIMIT ?"
	args = append(args, limit)

	return s.queryMeals(query, args...)
}

// MealsOn returns the meals logged on day's calendar date in day's location.
func (s *SQLiteStorage) MealsOn(day time.Time) ([]*models.LoggedMeal, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	query := `SELECT ` + mealColumns + ` FROM meals WHERE logged_at >= ? AND logged_at < ? ORDER BY logged_at DESC`
	return s.queryMeals(query, formatTime(start), formatTime(end))
}

func (s *SQLiteStorage) GetMeal(id string) (*models.LoggedMeal, error) {
	meals, err := s.queryMeals(`SELECT `+mealColumns+` FROM meals WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	return meals[0], nil
}

func (s *SQLiteStorage) queryMeals(query string, args ...interface{}) ([]*models.LoggedMeal, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.LoggedMeal
	for rows.Next() {
		meal := &models.LoggedMeal{}
		var itemJSON, loggedAtStr, createdAtStr string

		err := rows.Scan(&meal.ID, &meal.RestaurantName, &meal.Cuisine, &itemJSON,
			&loggedAtStr, &createdAtStr, &meal.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}

		if err := json.Unmarshal([]byte(itemJSON), &meal.Item); err != nil {
			return nil, fmt.Errorf("failed to decode item for meal %s: %w", meal.ID, err)
		}
		if meal.LoggedAt, err = parseTime(loggedAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse logged_at: %w", err)
		}
		if meal.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}

	return meals, nil
}

func (s *SQLiteStorage) SaveSpend(entry *models.SpendEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	query := `
        INSERT INTO spends (id, restaurant, amount, currency, confidence, home_amount, home_currency, converted, recorded_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		entry.ID, entry.RestaurantName, entry.Amount, entry.Currency, entry.Confidence,
		entry.HomeAmount, entry.HomeCurrency, entry.Converted, formatTime(entry.RecordedAt))
	if err != nil {
		return fmt.Errorf("failed to insert spend: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetSpends(limit int) ([]*models.SpendEntry, error) {
	query := `
        SELECT id, restaurant, amount, currency, confidence, home_amount, home_currency, converted, recorded_at
        FROM spends
        ORDER BY recorded_at DESC
        LIMIT ?
    `
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query spends: %w", err)
	}
	defer rows.Close()

	var spends []*models.SpendEntry
	for rows.Next() {
		e := &models.SpendEntry{}
		var recordedAtStr string
		err := rows.Scan(&e.ID, &e.RestaurantName, &e.Amount, &e.Currency, &e.Confidence,
			&e.HomeAmount, &e.HomeCurrency, &e.Converted, &recordedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spend: %w", err)
		}
		if e.RecordedAt, err = parseTime(recordedAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		spends = append(spends, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spends: %w", err)
	}

	return spends, nil
}
