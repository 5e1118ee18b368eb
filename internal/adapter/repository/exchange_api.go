package repository

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"currency-converter/internal/domain/model"
	"currency-converter/pkg/logger"
	"currency-converter/pkg/utils"
)

const maxBodySize = 1 << 20

// ExchangeAPI fetches rate tables from an exchangeratesapi-compatible
// provider: GET /latest?base=EUR or GET /YYYY-MM-DD?base=EUR.
type ExchangeAPI struct {
	baseURL    string
	base       model.Currency
	httpClient *http.Client
	log        *logger.Logger
}

func NewExchangeAPI(baseURL string, base model.Currency, timeout time.Duration, log *logger.Logger) *ExchangeAPI {
	return &ExchangeAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    base,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (e *ExchangeAPI) endpoint(date time.Time, latest bool) string {
	path := "latest"
	if !latest {
		path = utils.FormatDate(utils.NormalizeDate(date))
	}
	return fmt.Sprintf("%s/%s?base=%s", e.baseURL, path, e.base)
}

// FetchRates performs one request. The returned snapshot's Date is the date
// the provider answered with, which may differ from the requested one.
func (e *ExchangeAPI) FetchRates(ctx context.Context, date time.Time, latest bool) (*model.RateSnapshot, error) {
	url := e.endpoint(date, latest)
	e.log.Debug("Fetching exchange rates", "url", url, "latest", latest)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", model.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, fmt.Errorf("%w: API returned non-OK status: %d", model.ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", model.ErrNetwork, err)
	}

	snapshot, err := e.parseSnapshot(body)
	if err != nil {
		e.log.Error("Rejected rates response", "error", err, "url", url)
		return nil, err
	}

	e.log.Info("Fetched exchange rates",
		"requested", utils.FormatDate(utils.NormalizeDate(date)),
		"date", utils.FormatDate(snapshot.Date),
		"currencies", snapshot.Rates.Len(),
	)
	return snapshot, nil
}

// parseSnapshot checks shape, then base, then date; rate entries are decoded
// leniently in document order.
func (e *ExchangeAPI) parseSnapshot(body []byte) (*model.RateSnapshot, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", model.ErrMalformedResponse)
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: body is not an object", model.ErrMalformedResponse)
	}

	baseField := doc.Get("base")
	dateField := doc.Get("date")
	ratesField := doc.Get("rates")

	if baseField.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing base", model.ErrMalformedResponse)
	}
	if dateField.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing date", model.ErrMalformedResponse)
	}
	if !ratesField.IsObject() {
		return nil, fmt.Errorf("%w: missing rates", model.ErrMalformedResponse)
	}

	if model.Currency(baseField.Str) != e.base {
		return nil, fmt.Errorf("%w: got %q, want %q", model.ErrUnexpectedBase, baseField.Str, e.base)
	}

	date, err := utils.ParseDate(dateField.Str)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", model.ErrUnparseableDate, dateField.Str)
	}

	rates := model.NewRates()
	ratesField.ForEach(func(key, value gjson.Result) bool {
		symbol := model.Currency(key.String())
		if symbol == e.base {
			return true
		}

		rate, ok := parseRate(value)
		if !ok {
			e.log.Debug("Skipping unparseable rate", "currency", symbol.String(), "value", value.Raw)
			return true
		}

		rates.Set(symbol, rate)
		return true
	})

	return &model.RateSnapshot{
		Base:  e.base,
		Date:  utils.NormalizeDate(date),
		Rates: rates,
	}, nil
}

func parseRate(value gjson.Result) (float64, bool) {
	switch value.Type {
	case gjson.Number:
		if math.IsNaN(value.Num) || math.IsInf(value.Num, 0) {
			return 0, false
		}
		return value.Num, true
	case gjson.String:
		rate, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return 0, false
		}
		return rate, true
	default:
		return 0, false
	}
}
