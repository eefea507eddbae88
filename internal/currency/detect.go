// internal/currency/detect.go
package currency

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	textConfidence     = 0.92
	textMissConfidence = 0.4

	cuisineConfidence     = 0.65
	cuisineMissConfidence = 0.3
)

type Detection struct {
	Currency   string  `json:"currency"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

type symbolPattern struct {
	code string
	re   *regexp.Regexp
}

// Order matters: the first match wins and bare "$" is the last resort.
var symbolPatterns = []symbolPattern{
	{"THB", regexp.MustCompile(`(?i)฿|\bTHB\b|\bbaht\b`)},
	{"INR", regexp.MustCompile(`(?i)₹|\bINR\b|\bRs\.?\s?\d`)},
	{"JPY", regexp.MustCompile(`(?i)¥|円|\bJPY\b`)},
	{"CNY", regexp.MustCompile(`(?i)\bCNY\b|\bRMB\b|元`)},
	{"EUR", regexp.MustCompile(`(?i)€|\bEUR\b`)},
	{"GBP", regexp.MustCompile(`(?i)£|\bGBP\b`)},
	{"AUD", regexp.MustCompile(`(?i)\bAUD\b|\bA\$`)},
	{"CAD", regexp.MustCompile(`(?i)\bCAD\b|\bC\$`)},
	{"SGD", regexp.MustCompile(`(?i)\bSGD\b|\bS\$`)},
	{"MXN", regexp.MustCompile(`(?i)\bMXN\b|\bMX\$`)},
	{"USD", regexp.MustCompile(`(?i)\$|\bUSD\b`)},
}

var cuisineCurrency = map[string]string{
	"thai":          "THB",
	"indian":        "INR",
	"japanese":      "JPY",
	"chinese":       "CNY",
	"mexican":       "MXN",
	"italian":       "EUR",
	"french":        "EUR",
	"mediterranean": "EUR",
	"american":      "USD",
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DetectFromPriceText looks for a currency symbol or code in text.
func DetectFromPriceText(text, fallback string) Detection {
	clean := norm.NFKC.String(text)
	for _, p := range symbolPatterns {
		if p.re.MatchString(clean) {
			return Detection{
				Currency:   p.code,
				Confidence: textConfidence,
				Reason:     fmt.Sprintf("found %s marker in price text", p.code),
			}
		}
	}
	return Detection{
		Currency:   normalizeCode(fallback),
		Confidence: textMissConfidence,
		Reason:     "no currency marker in price text",
	}
}

// InferFromCuisine guesses the currency of a restaurant from its cuisine.
func InferFromCuisine(cuisineKey, fallback string) Detection {
	key := strings.ToLower(strings.TrimSpace(cuisineKey))
	if code, ok := cuisineCurrency[key]; ok {
		return Detection{
			Currency:   code,
			Confidence: cuisineConfidence,
			Reason:     fmt.Sprintf("%s cuisine usually prices in %s", key, code),
		}
	}
	return Detection{
		Currency:   normalizeCode(fallback),
		Confidence: cuisineMissConfidence,
		Reason:     "cuisine gives no currency hint",
	}
}

// Resolve runs both detectors and keeps the more confident one; the price
// text wins ties.
func Resolve(priceText, cuisineKey, fallback string) Detection {
	fromText := DetectFromPriceText(priceText, fallback)
	fromCuisine := InferFromCuisine(cuisineKey, fallback)
	if fromCuisine.Confidence > fromText.Confidence {
		return fromCuisine
	}
	return fromText
}

var amountPattern = regexp.MustCompile(`\d(?:[\d.,]*\d)?`)

// ParseAmount pulls the first number out of a price string. Both "1,250.00"
// and "1.250,00" read as 1250; a single comma followed by one or two digits
// is a decimal comma.
func ParseAmount(priceText string) (float64, bool) {
	m := amountPattern.FindString(norm.NFKC.String(priceText))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(canonicalAmount(m), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// canonicalAmount rewrites a grouped number with "." as the only decimal
// separator.
func canonicalAmount(s string) string {
	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")

	switch {
	case comma >= 0 && dot >= 0:
		// whichever separator comes last is the decimal point
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-comma-1 <= 2 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}
