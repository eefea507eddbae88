// internal/server/tools.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"go.uber.org/zap"

	"mcp-menu-scan/internal/currency"
	"mcp-menu-scan/internal/evaluation"
	"mcp-menu-scan/internal/models"
	"mcp-menu-scan/internal/scoring"
)

type EstimateNutritionParams struct {
	ItemName string `json:"item_name" description:"Dish name as written on the menu"`
	Cuisine  string `json:"cuisine,omitempty" description:"Cuisine key, e.g. thai or italian"`
}

type ScoreMenuParams struct {
	Items   []models.MenuItem  `json:"items" description:"Parsed menu items"`
	Profile models.UserProfile `json:"profile" description:"User nutrition profile"`
}

type EvaluateMealParams struct {
	Item     models.MenuItem     `json:"item" description:"Item to evaluate"`
	Criteria models.DietCriteria `json:"criteria" description:"Diet criteria to check against"`
}

type LogMealParams struct {
	Item       models.MenuItem     `json:"item" description:"Item the user ate"`
	Restaurant string              `json:"restaurant,omitempty" description:"Restaurant name"`
	Cuisine    string              `json:"cuisine,omitempty" description:"Cuisine key, used to estimate missing macros"`
	Timestamp  string              `json:"timestamp,omitempty" description:"ISO timestamp of when the meal was eaten (defaults to now)"`
	Force      bool                `json:"force,omitempty" description:"Log even when a duplicate or unhealthy warning applies"`
	Criteria   models.DietCriteria `json:"criteria" description:"Diet criteria used for the healthy-choice check"`
	Source     string              `json:"source,omitempty" description:"manual or scan"`
}

type GetMealsParams struct {
	StartDate string `json:"start_date,omitempty" description:"Start date for meal query (YYYY-MM-DD)"`
	EndDate   string `json:"end_date,omitempty" description:"End date for meal query (YYYY-MM-DD)"`
	Limit     int    `json:"limit,omitempty" description:"Maximum number of meals to return"`
}

type GetMealParams struct {
	ID string `json:"id" description:"Meal ID returned by log_meal"`
}

type GetStreakParams struct {
	Criteria models.DietCriteria `json:"criteria" description:"Current diet criteria"`
	Limit    int                 `json:"limit,omitempty" description:"How many recent meals to consider"`
}

type DetectCurrencyParams struct {
	PriceText string `json:"price_text,omitempty" description:"Raw price string from the menu"`
	Cuisine   string `json:"cuisine,omitempty" description:"Cuisine key"`
	Fallback  string `json:"fallback,omitempty" description:"Currency to assume when nothing matches"`
}

type ConvertCurrencyParams struct {
	Amount float64 `json:"amount" description:"Amount to convert"`
	From   string  `json:"from" description:"Source currency code"`
	To     string  `json:"to" description:"Target currency code"`
}

type LogSpendParams struct {
	Restaurant   string `json:"restaurant,omitempty" description:"Restaurant name"`
	PriceText    string `json:"price_text" description:"Price as written, e.g. ฿250"`
	Cuisine      string `json:"cuisine,omitempty" description:"Cuisine key, used when the price has no symbol"`
	HomeCurrency string `json:"home_currency,omitempty" description:"Currency to record the spend in"`
}

type GetSpendsParams struct {
	Limit int `json:"limit,omitempty" description:"Maximum number of spend entries to return"`
}

// LogMealResult is returned by log_meal. When NeedsConfirmation is set the
// meal was not stored.
type LogMealResult struct {
	NeedsConfirmation bool                    `json:"needs_confirmation"`
	Duplicate         bool                    `json:"duplicate"`
	Evaluation        models.HealthEvaluation `json:"evaluation"`
	Meal              *models.LoggedMeal      `json:"meal,omitempty"`
}

type ConvertResult struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Converted bool    `json:"converted"`
}

const (
	defaultMealsLimit  = 20
	defaultStreakLimit = 200
	defaultSpendsLimit = 20
)

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidParams, fmt.Sprintf(format, args...))
}

func (s *MenuScanServer) handleEstimateNutrition(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EstimateNutritionParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	return s.createJSONResponse(scoring.EstimateNutrition(params.ItemName, params.Cuisine))
}

func (s *MenuScanServer) handleScoreMenu(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ScoreMenuParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	scored := s.scorer.ScoreMenu(params.Items, params.Profile)
	return s.createJSONResponse(scoring.Rank(scored, params.Profile.MacroPriority))
}

func (s *MenuScanServer) handleEvaluateMeal(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EvaluateMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	return s.createJSONResponse(evaluation.Evaluate(params.Item, params.Criteria))
}

// handleLogMeal warns about duplicates and unhealthy choices before
// persisting; the caller resubmits with force to log anyway.
func (s *MenuScanServer) handleLogMeal(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Item.Name) == "" {
		return nil, invalid("item name is required")
	}

	now := s.now()
	if params.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, params.Timestamp)
		if err != nil {
			return nil, invalid("invalid timestamp format: %v", err)
		}
		now = ts
	}

	item := params.Item
	if item.EstimatedCalories <= 0 {
		// Manual entry without macros: fill them from the estimator.
		est := scoring.EstimateNutrition(item.Name, params.Cuisine)
		item.EstimatedCalories = est.Calories
		item.EstimatedProtein = est.Protein
		item.EstimatedCarbs = est.Carbs
		item.EstimatedFat = est.Fat
		item.Score = est.Score
		item.TrafficLight = est.TrafficLight
		item.MatchLabel = est.MatchLabel
	}

	today, err := s.storage.MealsOn(now)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's meals: %w", err)
	}
	logged := make([]models.LoggedMeal, 0, len(today))
	for _, m := range today {
		logged = append(logged, *m)
	}

	result := LogMealResult{
		Duplicate:  evaluation.IsDuplicateToday(logged, item, params.Restaurant, now),
		Evaluation: evaluation.Evaluate(item, params.Criteria),
	}
	if !params.Force && (result.Duplicate || !result.Evaluation.IsHealthy) {
		result.NeedsConfirmation = true
		return s.createJSONResponse(result)
	}

	source := params.Source
	if source == "" {
		source = "manual"
	}
	meal := &models.LoggedMeal{
		Item:           item,
		RestaurantName: strings.TrimSpace(params.Restaurant),
		Cuisine:        params.Cuisine,
		LoggedAt:       now,
		CreatedAt:      s.now(),
		Source:         source,
	}
	if err := s.storage.SaveMeal(meal); err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	s.logger.Info("meal logged",
		zap.String("meal_id", meal.ID),
		zap.Bool("healthy", result.Evaluation.IsHealthy),
		zap.Bool("duplicate", result.Duplicate))

	result.Meal = meal
	return s.createJSONResponse(result)
}

func (s *MenuScanServer) handleGetMeals(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetMealsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = defaultMealsLimit
	}

	meals, err := s.storage.GetMeals(params.StartDate, params.EndDate, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve meals: %w", err)
	}
	if meals == nil {
		meals = []*models.LoggedMeal{}
	}

	return s.createJSONResponse(meals)
}

func (s *MenuScanServer) handleGetMeal(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.ID) == "" {
		return nil, invalid("id is required")
	}

	meal, err := s.storage.GetMeal(params.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve meal: %w", err)
	}
	return s.createJSONResponse(meal)
}

func (s *MenuScanServer) handleGetStreak(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetStreakParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Limit <= 0 {
		params.Limit = defaultStreakLimit
	}

	recent, err := s.storage.GetMeals("", "", params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve meals: %w", err)
	}
	meals := make([]models.LoggedMeal, 0, len(recent))
	for _, m := range recent {
		meals = append(meals, *m)
	}

	return s.createJSONResponse(map[string]int{"streak": evaluation.Streak(meals, params.Criteria)})
}

func (s *MenuScanServer) handleDetectCurrency(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params DetectCurrencyParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	fallback := params.Fallback
	if fallback == "" {
		fallback = s.config.HomeCurrency
	}
	return s.createJSONResponse(currency.Resolve(params.PriceText, params.Cuisine, fallback))
}

// handleConvertCurrency echoes the original amount when no rate is known.
func (s *MenuScanServer) handleConvertCurrency(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ConvertCurrencyParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.From == "" || params.To == "" {
		return nil, invalid("from and to are required")
	}

	result := ConvertResult{Amount: params.Amount, Currency: strings.ToUpper(params.From)}
	if v, ok := s.converter.Convert(ctx, params.Amount, params.From, params.To); ok {
		result = ConvertResult{Amount: v, Currency: strings.ToUpper(params.To), Converted: true}
	}
	return s.createJSONResponse(result)
}

func (s *MenuScanServer) handleLogSpend(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogSpendParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	amount, ok := currency.ParseAmount(params.PriceText)
	if !ok {
		return nil, invalid("no amount in price text %q", params.PriceText)
	}
	home := params.HomeCurrency
	if home == "" {
		home = s.config.HomeCurrency
	}
	home = strings.ToUpper(home)

	detected := currency.Resolve(params.PriceText, params.Cuisine, home)
	entry := &models.SpendEntry{
		RestaurantName: strings.TrimSpace(params.Restaurant),
		Amount:         amount,
		Currency:       detected.Currency,
		Confidence:     detected.Confidence,
		HomeAmount:     amount,
		HomeCurrency:   detected.Currency,
		RecordedAt:     s.now(),
	}
	if v, ok := s.converter.Convert(ctx, amount, detected.Currency, home); ok {
		entry.HomeAmount = v
		entry.HomeCurrency = home
		entry.Converted = true
	} else {
		s.logger.Warn("no rate for spend, keeping original amount",
			zap.String("from", detected.Currency), zap.String("to", home))
	}

	if err := s.storage.SaveSpend(entry); err != nil {
		return nil, fmt.Errorf("failed to save spend: %w", err)
	}
	return s.createJSONResponse(entry)
}

func (s *MenuScanServer) handleGetSpends(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetSpendsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Limit <= 0 {
		params.Limit = defaultSpendsLimit
	}

	spends, err := s.storage.GetSpends(params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve spends: %w", err)
	}
	if spends == nil {
		spends = []*models.SpendEntry{}
	}
	return s.createJSONResponse(spends)
}

func (s *MenuScanServer) registerTools() {
	s.tools = map[string]toolHandler{
		"estimate_nutrition": s.handleEstimateNutrition,
		"score_menu":         s.handleScoreMenu,
		"evaluate_meal":      s.handleEvaluateMeal,
		"log_meal":           s.handleLogMeal,
		"get_meals":          s.handleGetMeals,
		"get_meal":           s.handleGetMeal,
		"get_streak":         s.handleGetStreak,
		"detect_currency":    s.handleDetectCurrency,
		"convert_currency":   s.handleConvertCurrency,
		"log_spend":          s.handleLogSpend,
		"get_spends":         s.handleGetSpends,
	}

	for name := range s.tools {
		s.logger.Debug("registered tool", zap.String("tool", name))
	}
}
