// internal/currency/provider.go
package currency

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// RateProvider supplies a USD-indexed rate table.
type RateProvider interface {
	Rates(ctx context.Context) (RateTable, error)
}

// HTTPRateProvider fetches {"base": "...", "rates": {...}} style payloads
// and rebases them onto USD.
type HTTPRateProvider struct {
	httpClient *http.Client
	url        string
}

func NewHTTPRateProvider(url string) *HTTPRateProvider {
	return &HTTPRateProvider{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		url: url,
	}
}

func (p *HTTPRateProvider) Rates(ctx context.Context) (RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return parseRates(body)
}

func parseRates(body []byte) (RateTable, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid rates payload")
	}
	rates := gjson.GetBytes(body, "rates")
	if !rates.IsObject() {
		return nil, fmt.Errorf("rates payload has no rates object")
	}

	table := RateTable{}
	rates.ForEach(func(code, value gjson.Result) bool {
		if v := value.Float(); v > 0 {
			table[strings.ToUpper(code.String())] = v
		}
		return true
	})

	base := gjson.GetBytes(body, "base")
	if !base.Exists() {
		base = gjson.GetBytes(body, "base_code")
	}
	if b := strings.ToUpper(base.String()); b != "" {
		table[b] = 1
	}

	usd, ok := table["USD"]
	if !ok {
		return nil, fmt.Errorf("rebase to USD: %w", ErrUnknownCurrency)
	}
	if usd != 1 {
		for code, v := range table {
			table[code] = v / usd
		}
	}
	return table, nil
}
