package service

import (
	"time"

	"currency-converter/internal/domain/model"
	"currency-converter/internal/domain/ports"
)

// SelectionManager derives which currencies can be picked for a reference
// date.
type SelectionManager struct {
	cache ports.RateCache
	base  model.Currency
}

func NewSelectionManager(cache ports.RateCache, base model.Currency) *SelectionManager {
	return &SelectionManager{
		cache: cache,
		base:  base,
	}
}

// Refresh lists the base currency first, then every supported currency that
// has a rate at date, in cached order. A current selection that is not in
// the list falls back to the base currency at index 0.
func (m *SelectionManager) Refresh(date time.Time, supported model.CurrencyList, input, output model.Currency) model.Selection {
	sel := model.Selection{
		Options:     []model.CurrencyInfo{supported.Describe(m.base)},
		InputIndex:  -1,
		OutputIndex: -1,
		Input:       input,
		Output:      output,
	}

	if input == m.base {
		sel.InputIndex = 0
	}
	if output == m.base {
		sel.OutputIndex = 0
	}

	if rates, found := m.cache.Get(date); found {
		for _, symbol := range rates.Symbols() {
			if symbol == m.base {
				continue
			}
			info, ok := supported.Lookup(symbol)
			if !ok {
				continue
			}

			if symbol == input {
				sel.InputIndex = len(sel.Options)
			}
			if symbol == output {
				sel.OutputIndex = len(sel.Options)
			}
			sel.Options = append(sel.Options, info)
		}
	}

	if sel.InputIndex < 0 {
		sel.InputIndex = 0
		sel.Input = m.base
	}
	if sel.OutputIndex < 0 {
		sel.OutputIndex = 0
		sel.Output = m.base
	}

	return sel
}
