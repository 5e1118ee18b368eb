package service

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"currency-converter/internal/domain/model"
	"currency-converter/internal/domain/ports"
)

// Converter computes conversions from cached rates. It never fetches and
// never mutates the cache.
type Converter struct {
	cache ports.RateCache
	base  model.Currency
}

func NewConverter(cache ports.RateCache, base model.Currency) *Converter {
	return &Converter{
		cache: cache,
		base:  base,
	}
}

// Rate resolves symbol at date: 1 for the base currency, 0 when unknown.
func (c *Converter) Rate(date time.Time, symbol model.Currency) float64 {
	if symbol == c.base {
		return 1
	}

	rates, found := c.cache.Get(date)
	if !found {
		return 0
	}

	rate, found := rates.Get(symbol)
	if !found {
		return 0
	}
	return rate
}

// Convert returns amount * outputRate / inputRate. ok is false when either
// rate is not positive or amountText is not a non-negative decimal.
func (c *Converter) Convert(date time.Time, input, output model.Currency, amountText string) (float64, bool) {
	inputRate := c.Rate(date, input)
	outputRate := c.Rate(date, output)
	if !finite(inputRate) || !finite(outputRate) || inputRate <= 0 || outputRate <= 0 {
		return 0, false
	}

	amount, ok := ParseAmount(amountText)
	if !ok {
		return 0, false
	}

	result := amount.Mul(decimal.NewFromFloat(outputRate)).Div(decimal.NewFromFloat(inputRate)).InexactFloat64()
	if !finite(result) {
		return 0, false
	}
	return result, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// maxAmountExponent bounds the exponent of a typed amount to the float64 range.
const maxAmountExponent = 308

// ParseAmount reads a locale-invariant decimal: "." is the decimal point and
// "," groups thousands.
func ParseAmount(text string) (decimal.Decimal, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(text)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, false
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, false
	}
	return amount, true
}

// FormatAmount renders v grouped by thousands with at most two decimals.
func FormatAmount(v float64) string {
	if !finite(v) {
		return ""
	}
	return humanize.Commaf(decimal.NewFromFloat(v).Round(2).InexactFloat64())
}
