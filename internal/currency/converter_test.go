package currency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Static(t *testing.T) {
	v, ok := Convert(10.006, "EUR", "eur")
	require.True(t, ok)
	assert.Equal(t, 10.01, v)

	v, ok = Convert(100, "USD", "EUR")
	require.True(t, ok)
	assert.Equal(t, 92.0, v)

	v, ok = Convert(358, "THB", "USD")
	require.True(t, ok)
	assert.Equal(t, 10.0, v)

	_, ok = Convert(10, "USD", "XYZ")
	assert.False(t, ok)
	_, ok = Convert(10, "", "USD")
	assert.False(t, ok)
}

type stubProvider struct {
	table RateTable
	err   error
	calls int
}

func (s *stubProvider) Rates(ctx context.Context) (RateTable, error) {
	s.calls++
	return s.table, s.err
}

func TestConverter_UsesProviderAndCache(t *testing.T) {
	p := &stubProvider{table: RateTable{"USD": 1, "EUR": 0.5}}
	c := NewConverter(p, NewRateCache(time.Minute))

	v, ok := c.Convert(context.Background(), 10, "USD", "EUR")
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	v, ok = c.Convert(context.Background(), 4, "EUR", "USD")
	require.True(t, ok)
	assert.Equal(t, 8.0, v)
	assert.Equal(t, 1, p.calls)

	// pair missing from the live table falls back to static rates
	v, ok = c.Convert(context.Background(), 1, "USD", "JPY")
	require.True(t, ok)
	assert.Equal(t, 149.5, v)
}

func TestConverter_ProviderFailureFallsBack(t *testing.T) {
	p := &stubProvider{err: errors.New("offline")}
	c := NewConverter(p, NewRateCache(time.Minute))

	v, ok := c.Convert(context.Background(), 100, "USD", "GBP")
	require.True(t, ok)
	assert.Equal(t, 79.0, v)

	_, ok = c.Convert(context.Background(), 100, "USD", "ZZZ")
	assert.False(t, ok)
}

func TestConverter_FallbackRatesAreNotCached(t *testing.T) {
	p := &stubProvider{err: errors.New("offline")}
	rc := NewRateCache(time.Minute)
	c := NewConverter(p, rc)

	v, ok := c.Convert(context.Background(), 100, "USD", "EUR")
	require.True(t, ok)
	assert.Equal(t, 92.0, v)
	_, cached := rc.Get("USD", "EUR")
	assert.False(t, cached)

	// provider recovers inside the TTL
	p.err = nil
	p.table = RateTable{"USD": 1, "EUR": 0.5}
	v, ok = c.Convert(context.Background(), 100, "USD", "EUR")
	require.True(t, ok)
	assert.Equal(t, 50.0, v)
	assert.Equal(t, 2, p.calls)

	r, cached := rc.Get("USD", "EUR")
	require.True(t, cached)
	assert.Equal(t, 0.5, r)
}

func TestConverter_NoProvider(t *testing.T) {
	c := NewConverter(nil, nil)
	v, ok := c.Convert(context.Background(), 12.346, "CAD", "CAD")
	require.True(t, ok)
	assert.Equal(t, 12.35, v)
}

func TestRateCache_Expires(t *testing.T) {
	rc := NewRateCache(30 * time.Millisecond)
	rc.Set("usd", "eur", 0.9)

	r, ok := rc.Get("USD", "EUR")
	require.True(t, ok)
	assert.Equal(t, 0.9, r)

	time.Sleep(60 * time.Millisecond)
	_, ok = rc.Get("USD", "EUR")
	assert.False(t, ok)
}

func TestConverter_RefetchesAfterTTL(t *testing.T) {
	p := &stubProvider{table: RateTable{"USD": 1, "EUR": 0.5}}
	c := NewConverter(p, NewRateCache(30*time.Millisecond))

	_, _ = c.Convert(context.Background(), 1, "USD", "EUR")
	p.table = RateTable{"USD": 1, "EUR": 0.25}
	time.Sleep(60 * time.Millisecond)

	v, ok := c.Convert(context.Background(), 100, "USD", "EUR")
	require.True(t, ok)
	assert.Equal(t, 25.0, v)
	assert.Equal(t, 2, p.calls)
}

func TestHTTPRateProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"EUR","rates":{"EUR":1,"USD":2,"GBP":1.6,"BAD":0}}`))
	}))
	defer srv.Close()

	table, err := NewHTTPRateProvider(srv.URL).Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, table["USD"])
	assert.Equal(t, 0.5, table["EUR"])
	assert.Equal(t, 0.8, table["GBP"])
	assert.NotContains(t, table, "BAD")
}

func TestHTTPRateProvider_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTTPRateProvider(srv.URL).Rates(context.Background())
	assert.Error(t, err)

	_, err = parseRates([]byte(`{"rates":{"EUR":0.9}}`))
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	_, err = parseRates([]byte(`not json`))
	assert.Error(t, err)
}
