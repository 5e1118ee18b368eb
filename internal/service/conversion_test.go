package service

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-converter/internal/adapter/cache"
	"currency-converter/internal/domain/model"
	"currency-converter/pkg/logger"
)

var march1 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func newRates(pairs ...interface{}) model.Rates {
	r := model.NewRates()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(model.Currency(pairs[i].(string)), pairs[i+1].(float64))
	}
	return r
}

func newTestCache(entries map[time.Time]model.Rates) *cache.MemoryCache {
	c := cache.NewMemoryCache(logger.NewNop())
	for date, rates := range entries {
		c.Put(date, rates)
	}
	return c
}

func TestConverter_Convert(t *testing.T) {
	rateCache := newTestCache(map[time.Time]model.Rates{
		march1: newRates("USD", 1.10, "GBP", 0.86, "ZER", 0.0, "NEG", -1.5, "INF", math.Inf(1), "NAN", math.NaN()),
	})
	converter := NewConverter(rateCache, model.EUR)

	testCases := []struct {
		name     string
		date     time.Time
		from     model.Currency
		to       model.Currency
		amount   string
		expected float64
		ok       bool
	}{
		{name: "Base To Quote", date: march1, from: "EUR", to: "USD", amount: "100", expected: 110, ok: true},
		{name: "Quote To Base", date: march1, from: "USD", to: "EUR", amount: "110", expected: 100, ok: true},
		{name: "Cross Rate", date: march1, from: "USD", to: "GBP", amount: "110", expected: 86, ok: true},
		{name: "Thousands Separator", date: march1, from: "EUR", to: "USD", amount: "1,000", expected: 1100, ok: true},
		{name: "Decimal Amount", date: march1, from: "EUR", to: "USD", amount: " 2.5 ", expected: 2.75, ok: true},
		{name: "Zero Amount", date: march1, from: "EUR", to: "GBP", amount: "0", expected: 0, ok: true},
		{name: "Base To Base Without Data", date: march1.AddDate(0, 0, 1), from: "EUR", to: "EUR", amount: "42", expected: 42, ok: true},
		{name: "Unknown Currency", date: march1, from: "EUR", to: "XYZ", amount: "100", ok: false},
		{name: "Date Not Cached", date: march1.AddDate(0, 0, 1), from: "EUR", to: "USD", amount: "100", ok: false},
		{name: "Zero Rate", date: march1, from: "ZER", to: "USD", amount: "100", ok: false},
		{name: "Negative Rate", date: march1, from: "EUR", to: "NEG", amount: "100", ok: false},
		{name: "Empty Amount", date: march1, from: "EUR", to: "USD", amount: "", ok: false},
		{name: "Garbage Amount", date: march1, from: "EUR", to: "USD", amount: "12abc", ok: false},
		{name: "Negative Amount", date: march1, from: "EUR", to: "USD", amount: "-5", ok: false},
		{name: "Overflowing Amount", date: march1, from: "EUR", to: "USD", amount: "1e400", ok: false},
		{name: "Overflowing Digits", date: march1, from: "EUR", to: "USD", amount: "1" + strings.Repeat("0", 400), ok: false},
		{name: "Result Beyond Float Range", date: march1, from: "GBP", to: "USD", amount: "1.7e308", ok: false},
		{name: "Infinite Rate", date: march1, from: "EUR", to: "INF", amount: "100", ok: false},
		{name: "NaN Rate", date: march1, from: "NAN", to: "USD", amount: "100", ok: false},
		{name: "Two Decimal Points", date: march1, from: "EUR", to: "USD", amount: "1.2.3", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := converter.Convert(tc.date, tc.from, tc.to, tc.amount)

			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.expected, got, 1e-9)
			}
		})
	}
}

func TestConverter_IsPure(t *testing.T) {
	rateCache := newTestCache(map[time.Time]model.Rates{march1: newRates("USD", 1.10)})
	converter := NewConverter(rateCache, model.EUR)

	first, ok1 := converter.Convert(march1, "EUR", "USD", "123.45")
	second, ok2 := converter.Convert(march1, "EUR", "USD", "123.45")

	assert.True(t, ok1)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, rateCache.Len())
}

func TestConverter_SameCurrencyIsIdentity(t *testing.T) {
	rateCache := newTestCache(map[time.Time]model.Rates{march1: newRates("USD", 1.10, "JPY", 163.27, "GBP", 0.8567)})
	converter := NewConverter(rateCache, model.EUR)

	for _, symbol := range []model.Currency{"EUR", "USD", "JPY", "GBP"} {
		got, ok := converter.Convert(march1, symbol, symbol, "987.65")
		require.True(t, ok, symbol)
		assert.InDelta(t, 987.65, got, 1e-9, symbol)
	}
}

func TestConverter_RoundTrip(t *testing.T) {
	rateCache := newTestCache(map[time.Time]model.Rates{march1: newRates("USD", 1.0876, "JPY", 163.27, "GBP", 0.8567)})
	converter := NewConverter(rateCache, model.EUR)

	pairs := [][2]model.Currency{{"USD", "JPY"}, {"GBP", "EUR"}, {"EUR", "USD"}, {"JPY", "GBP"}}
	for _, pair := range pairs {
		there, ok := converter.Convert(march1, pair[0], pair[1], "250.5")
		require.True(t, ok)

		back, ok := converter.Convert(march1, pair[1], pair[0], strconv.FormatFloat(there, 'f', -1, 64))
		require.True(t, ok)

		assert.InDelta(t, 250.5, back, 1e-6, "%s/%s", pair[0], pair[1])
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "110", FormatAmount(110))
	assert.Equal(t, "1,234.57", FormatAmount(1234.5678))
	assert.Equal(t, "1,234.5", FormatAmount(1234.5))
	assert.Equal(t, "0.01", FormatAmount(0.005))
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "1,000,000", FormatAmount(999999.999))
	assert.Equal(t, "", FormatAmount(math.Inf(1)))
	assert.Equal(t, "", FormatAmount(math.NaN()))
}

func TestParseAmount(t *testing.T) {
	amount, ok := ParseAmount("1,234.50")
	require.True(t, ok)
	assert.Equal(t, "1234.5", amount.String())

	_, ok = ParseAmount("abc")
	assert.False(t, ok)

	_, ok = ParseAmount("1e999999999")
	assert.False(t, ok)

	amount, ok = ParseAmount("2.5e3")
	require.True(t, ok)
	assert.Equal(t, "2500", amount.String())
}
