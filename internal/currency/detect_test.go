package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFromPriceText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"฿120", "THB"},
		{"120 baht", "THB"},
		{"₹ 450", "INR"},
		{"Rs. 250", "INR"},
		{"¥1,200", "JPY"},
		{"1200円", "JPY"},
		{"RMB 68", "CNY"},
		{"€12.50", "EUR"},
		{"12,50 eur", "EUR"},
		{"£9", "GBP"},
		{"A$24", "AUD"},
		{"CAD 18", "CAD"},
		{"S$15", "SGD"},
		{"MX$180", "MXN"},
		{"$14.99", "USD"},
		{"US$14.99", "USD"},
		{"14.99 USD", "USD"},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			d := DetectFromPriceText(tc.text, "GBP")
			assert.Equal(t, tc.want, d.Currency)
			assert.Equal(t, 0.92, d.Confidence)
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestDetectFromPriceText_Fallback(t *testing.T) {
	d := DetectFromPriceText("14.99", " usd ")
	assert.Equal(t, "USD", d.Currency)
	assert.Equal(t, 0.4, d.Confidence)
}

func TestInferFromCuisine(t *testing.T) {
	d := InferFromCuisine("Thai", "USD")
	assert.Equal(t, "THB", d.Currency)
	assert.Equal(t, 0.65, d.Confidence)

	d = InferFromCuisine("french", "USD")
	assert.Equal(t, "EUR", d.Currency)

	d = InferFromCuisine("peruvian", "CAD")
	assert.Equal(t, "CAD", d.Currency)
	assert.Equal(t, 0.3, d.Confidence)
}

func TestResolve(t *testing.T) {
	// text marker beats the cuisine hint
	assert.Equal(t, "EUR", Resolve("€15", "thai", "USD").Currency)
	// no marker: cuisine is more confident than the fallback
	assert.Equal(t, "THB", Resolve("150", "thai", "USD").Currency)
	// neither: the text result (0.4) beats the cuisine miss (0.3)
	d := Resolve("150", "", "SGD")
	assert.Equal(t, "SGD", d.Currency)
	assert.Equal(t, 0.4, d.Confidence)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"¥1,200", 1200},
		{"฿1,250", 1250},
		{"$14.99", 14.99},
		{"$14.99 + tax", 14.99},
		{"€12,50", 12.5},
		{"12,50 EUR", 12.5},
		{"€1.250,00", 1250},
		{"$1,250.00", 1250},
		{"₹1,20,000", 120000},
		{"¥1.200.000", 1200000},
		{"Rs. 250", 250},
		{"€9,5", 9.5},
		{"£12.", 12},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			v, ok := ParseAmount(tc.text)
			assert.True(t, ok)
			assert.Equal(t, tc.want, v)
		})
	}

	_, ok := ParseAmount("market price")
	assert.False(t, ok)
}
