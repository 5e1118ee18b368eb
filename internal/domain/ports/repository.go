package ports

import (
	"context"
	"time"

	"currency-converter/internal/domain/model"
)

// RateFetcher loads one date's rates from the provider. latest asks for
// the provider's most recent table instead of an explicit date.
type RateFetcher interface {
	FetchRates(ctx context.Context, date time.Time, latest bool) (*model.RateSnapshot, error)
}
