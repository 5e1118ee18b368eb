package ports

import (
	"time"

	"currency-converter/internal/domain/model"
)

type RateCache interface {
	Has(date time.Time) bool
	Get(date time.Time) (model.Rates, bool)
	Put(date time.Time, rates model.Rates)
	HasAny() bool
	Len() int
}
