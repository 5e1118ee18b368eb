package model

import (
	"time"
)

// Rates maps currency symbols to "units per 1 base unit", remembering
// insertion order.
type Rates struct {
	symbols []Currency
	values  map[Currency]float64
}

func NewRates() Rates {
	return Rates{values: make(map[Currency]float64)}
}

// Set inserts or updates a rate. New symbols go to the end.
func (r *Rates) Set(symbol Currency, rate float64) {
	if r.values == nil {
		r.values = make(map[Currency]float64)
	}
	if _, exists := r.values[symbol]; !exists {
		r.symbols = append(r.symbols, symbol)
	}
	r.values[symbol] = rate
}

func (r Rates) Get(symbol Currency) (float64, bool) {
	rate, ok := r.values[symbol]
	return rate, ok
}

// Symbols returns the symbols in insertion order.
func (r Rates) Symbols() []Currency {
	out := make([]Currency, len(r.symbols))
	copy(out, r.symbols)
	return out
}

func (r Rates) Len() int {
	return len(r.symbols)
}

func (r Rates) Clone() Rates {
	out := Rates{
		symbols: make([]Currency, len(r.symbols)),
		values:  make(map[Currency]float64, len(r.values)),
	}
	copy(out.symbols, r.symbols)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}

// RateSnapshot is one date's complete rate table from one fetch.
type RateSnapshot struct {
	Base  Currency
	Date  time.Time
	Rates Rates
}

// Selection is the options list offered for a reference date and the
// reconciled input/output currencies.
type Selection struct {
	Options     []CurrencyInfo
	InputIndex  int
	OutputIndex int
	Input       Currency
	Output      Currency
}

// OptionLabels returns the display strings of Options.
func (s Selection) OptionLabels() []string {
	labels := make([]string, len(s.Options))
	for i, option := range s.Options {
		labels[i] = option.FullName()
	}
	return labels
}

// IndexOf returns the option index of symbol, or -1.
func (s Selection) IndexOf(symbol Currency) int {
	for i, option := range s.Options {
		if option.Symbol == symbol {
			return i
		}
	}
	return -1
}
