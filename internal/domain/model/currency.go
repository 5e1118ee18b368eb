package model

import (
	"fmt"
	"strings"
)

type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CHF Currency = "CHF"
)

// BaseCurrency is the currency every stored rate is expressed against.
const BaseCurrency = EUR

func (c Currency) String() string {
	return string(c)
}

// IsSupported reports whether c is in SupportedCurrencies.
func (c Currency) IsSupported() bool {
	_, ok := SupportedCurrencies.Lookup(c)
	return ok
}

// CurrencyInfo describes one currency the screen can offer.
type CurrencyInfo struct {
	Symbol Currency `json:"symbol"`
	Name   string   `json:"name"`
}

// FullName is the option label, e.g. "USD (US dollar)".
func (c CurrencyInfo) FullName() string {
	return fmt.Sprintf("%s (%s)", c.Symbol, c.Name)
}

// SymbolFromFullName extracts the symbol from an option label.
func SymbolFromFullName(fullName string) Currency {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return ""
	}
	symbol, _, _ := strings.Cut(fullName, " ")
	return Currency(symbol)
}

type CurrencyList []CurrencyInfo

func (l CurrencyList) Lookup(symbol Currency) (CurrencyInfo, bool) {
	for _, info := range l {
		if info.Symbol == symbol {
			return info, true
		}
	}
	return CurrencyInfo{}, false
}

// Describe returns the entry for symbol, or a bare entry named after it.
func (l CurrencyList) Describe(symbol Currency) CurrencyInfo {
	if info, ok := l.Lookup(symbol); ok {
		return info
	}
	return CurrencyInfo{Symbol: symbol, Name: symbol.String()}
}

// SupportedCurrencies is the ECB reference currency set.
var SupportedCurrencies = CurrencyList{
	{Symbol: EUR, Name: "Euro"},
	{Symbol: USD, Name: "US dollar"},
	{Symbol: JPY, Name: "Japanese yen"},
	{Symbol: "BGN", Name: "Bulgarian lev"},
	{Symbol: "CZK", Name: "Czech koruna"},
	{Symbol: "DKK", Name: "Danish krone"},
	{Symbol: GBP, Name: "Pound sterling"},
	{Symbol: "HUF", Name: "Hungarian forint"},
	{Symbol: "PLN", Name: "Polish zloty"},
	{Symbol: "RON", Name: "Romanian leu"},
	{Symbol: "SEK", Name: "Swedish krona"},
	{Symbol: CHF, Name: "Swiss franc"},
	{Symbol: "ISK", Name: "Icelandic krona"},
	{Symbol: "NOK", Name: "Norwegian krone"},
	{Symbol: "HRK", Name: "Croatian kuna"},
	{Symbol: "RUB", Name: "Russian rouble"},
	{Symbol: "TRY", Name: "Turkish lira"},
	{Symbol: "AUD", Name: "Australian dollar"},
	{Symbol: "BRL", Name: "Brazilian real"},
	{Symbol: "CAD", Name: "Canadian dollar"},
	{Symbol: "CNY", Name: "Chinese yuan renminbi"},
	{Symbol: "HKD", Name: "Hong Kong dollar"},
	{Symbol: "IDR", Name: "Indonesian rupiah"},
	{Symbol: "ILS", Name: "Israeli shekel"},
	{Symbol: "INR", Name: "Indian rupee"},
	{Symbol: "KRW", Name: "South Korean won"},
	{Symbol: "MXN", Name: "Mexican peso"},
	{Symbol: "MYR", Name: "Malaysian ringgit"},
	{Symbol: "NZD", Name: "New Zealand dollar"},
	{Symbol: "PHP", Name: "Philippine peso"},
	{Symbol: "SGD", Name: "Singapore dollar"},
	{Symbol: "THB", Name: "Thai baht"},
	{Symbol: "ZAR", Name: "South African rand"},
}
