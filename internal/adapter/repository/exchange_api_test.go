package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-converter/internal/domain/model"
	"currency-converter/pkg/logger"
)

type recordedPaths struct {
	mu    sync.Mutex
	paths []string
}

func (p *recordedPaths) add(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
}

func (p *recordedPaths) all() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

func newTestAPI(t *testing.T, status int, body string) (*ExchangeAPI, *recordedPaths) {
	t.Helper()

	paths := &recordedPaths{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths.add(r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewExchangeAPI(server.URL+"/", model.EUR, 2*time.Second, logger.NewNop()), paths
}

func TestExchangeAPI_Endpoints(t *testing.T) {
	body := `{"base":"EUR","date":"2024-03-01","rates":{"USD":1.10}}`
	date := time.Date(2024, time.February, 7, 15, 0, 0, 0, time.UTC)

	api, paths := newTestAPI(t, http.StatusOK, body)

	_, err := api.FetchRates(context.Background(), date, true)
	require.NoError(t, err)
	_, err = api.FetchRates(context.Background(), date, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"/latest?base=EUR", "/2024-02-07?base=EUR"}, paths.all())
}

func TestExchangeAPI_FetchRates(t *testing.T) {
	testCases := []struct {
		name          string
		status        int
		body          string
		expectedDate  time.Time
		expectedOrder []model.Currency
		expectedRates map[model.Currency]float64
		expectedError error
	}{
		{
			name:          "Success - Order Preserved",
			status:        http.StatusOK,
			body:          `{"base":"EUR","date":"2024-03-01","rates":{"USD":1.10,"GBP":0.86}}`,
			expectedDate:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			expectedOrder: []model.Currency{"USD", "GBP"},
			expectedRates: map[model.Currency]float64{"USD": 1.10, "GBP": 0.86},
		},
		{
			name:          "Success - Fields In Any Order",
			status:        http.StatusOK,
			body:          `{"rates":{"JPY":163.5,"CHF":0.95},"date":"2024-02-29","base":"EUR"}`,
			expectedDate:  time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			expectedOrder: []model.Currency{"JPY", "CHF"},
			expectedRates: map[model.Currency]float64{"JPY": 163.5, "CHF": 0.95},
		},
		{
			name:          "Success - Unparseable Entry Skipped",
			status:        http.StatusOK,
			body:          `{"base":"EUR","date":"2024-03-01","rates":{"USD":1.10,"XYZ":"notanumber","GBP":0.86,"BAD":null}}`,
			expectedDate:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			expectedOrder: []model.Currency{"USD", "GBP"},
			expectedRates: map[model.Currency]float64{"USD": 1.10, "GBP": 0.86},
		},
		{
			name:          "Success - Non-Positive And Quoted Rates Kept",
			status:        http.StatusOK,
			body:          `{"base":"EUR","date":"2024-03-01","rates":{"AAA":0,"BBB":-2.5,"CCC":"1.25"}}`,
			expectedDate:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			expectedOrder: []model.Currency{"AAA", "BBB", "CCC"},
			expectedRates: map[model.Currency]float64{"AAA": 0, "BBB": -2.5, "CCC": 1.25},
		},
		{
			name:          "Success - Out Of Range Rate Skipped",
			status:        http.StatusOK,
			body:          `{"base":"EUR","date":"2024-03-01","rates":{"USD":1e400,"GBP":0.86,"JPY":-1e400,"CHF":"1e400"}}`,
			expectedDate:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			expectedOrder: []model.Currency{"GBP"},
			expectedRates: map[model.Currency]float64{"GBP": 0.86},
		},
		{
			name:          "Success - Base Entry Dropped And Extra Fields Ignored",
			status:        http.StatusOK,
			body:          `{"amount":1.0,"base":"EUR","date":"2024-03-01","rates":{"EUR":1,"USD":1.10}}`,
			expectedDate:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			expectedOrder: []model.Currency{"USD"},
			expectedRates: map[model.Currency]float64{"USD": 1.10},
		},
		{
			name:          "Success - Empty Rates",
			status:        http.StatusOK,
			body:          `{"base":"EUR","date":"2024-03-01","rates":{}}`,
			expectedDate:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			expectedOrder: []model.Currency{},
			expectedRates: map[model.Currency]float64{},
		},
		{
			name:          "Error - HTTP Status",
			status:        http.StatusInternalServerError,
			body:          `{"error":"boom"}`,
			expectedError: model.ErrNetwork,
		},
		{
			name:          "Error - Not JSON",
			status:        http.StatusOK,
			body:          `<html>maintenance</html>`,
			expectedError: model.ErrMalformedResponse,
		},
		{
			name:          "Error - Not An Object",
			status:        http.StatusOK,
			body:          `[1,2,3]`,
			expectedError: model.ErrMalformedResponse,
		},
		{
			name:          "Error - Missing Rates",
			status:        http.StatusOK,
			body:          `{"base":"EUR","date":"2024-03-01"}`,
			expectedError: model.ErrMalformedResponse,
		},
		{
			name:          "Error - Missing Base Checked Before Date",
			status:        http.StatusOK,
			body:          `{"date":"garbage","rates":{}}`,
			expectedError: model.ErrMalformedResponse,
		},
		{
			name:          "Error - Unexpected Base",
			status:        http.StatusOK,
			body:          `{"base":"USD","date":"2024-03-01","rates":{"EUR":0.9}}`,
			expectedError: model.ErrUnexpectedBase,
		},
		{
			name:          "Error - Base Checked Before Date",
			status:        http.StatusOK,
			body:          `{"base":"USD","date":"garbage","rates":{}}`,
			expectedError: model.ErrUnexpectedBase,
		},
		{
			name:          "Error - Unparseable Date",
			status:        http.StatusOK,
			body:          `{"base":"EUR","date":"01/03/2024","rates":{"USD":1.1}}`,
			expectedError: model.ErrUnparseableDate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api, _ := newTestAPI(t, tc.status, tc.body)

			snapshot, err := api.FetchRates(context.Background(), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), false)

			if tc.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.expectedError), "got %v", err)
				assert.Nil(t, snapshot)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, snapshot)
			assert.Equal(t, model.EUR, snapshot.Base)
			assert.Equal(t, tc.expectedDate, snapshot.Date)
			assert.Equal(t, tc.expectedOrder, snapshot.Rates.Symbols())
			for symbol, want := range tc.expectedRates {
				got, ok := snapshot.Rates.Get(symbol)
				assert.True(t, ok, symbol)
				assert.Equal(t, want, got, symbol)
			}
		})
	}
}

func TestExchangeAPI_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	api := NewExchangeAPI(url, model.EUR, time.Second, logger.NewNop())

	_, err := api.FetchRates(context.Background(), time.Now(), true)
	assert.ErrorIs(t, err, model.ErrNetwork)
}

func TestExchangeAPI_ContextCanceled(t *testing.T) {
	api, _ := newTestAPI(t, http.StatusOK, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.FetchRates(ctx, time.Now(), true)
	assert.ErrorIs(t, err, model.ErrNetwork)
}
