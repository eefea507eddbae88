// internal/currency/rates.go
package currency

import "math"

// RateTable maps a currency code to units per one USD.
type RateTable map[string]float64

// StaticRates is the offline table used when no live rates are available.
var StaticRates = RateTable{
	"USD": 1,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.5,
	"CNY": 7.24,
	"INR": 83.2,
	"THB": 35.8,
	"AUD": 1.52,
	"CAD": 1.36,
	"SGD": 1.34,
	"MXN": 17.1,
}

// Rate returns how many units of to one unit of from buys.
func (t RateTable) Rate(from, to string) (float64, bool) {
	from, to = normalizeCode(from), normalizeCode(to)
	if from == to {
		return 1, true
	}
	fr, ok := t[from]
	if !ok || fr <= 0 {
		return 0, false
	}
	tr, ok := t[to]
	if !ok || tr <= 0 {
		return 0, false
	}
	return tr / fr, true
}

// Convert converts amount with the static table. The bool is false when
// either code is unknown; callers should then keep the original amount.
func Convert(amount float64, from, to string) (float64, bool) {
	return StaticRates.Convert(amount, from, to)
}

func (t RateTable) Convert(amount float64, from, to string) (float64, bool) {
	if normalizeCode(from) == normalizeCode(to) {
		return round2(amount), true
	}
	rate, ok := t.Rate(from, to)
	if !ok {
		return 0, false
	}
	return round2(amount * rate), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
