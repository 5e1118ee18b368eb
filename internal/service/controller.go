package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"currency-converter/internal/domain/model"
	"currency-converter/internal/domain/ports"
	"currency-converter/internal/metrics"
	"currency-converter/pkg/logger"
	"currency-converter/pkg/utils"
)

const (
	ErrorMessage = "An error occurred :(\nCheck your connection and retry"
	ShareTitle   = "Share currency conversion"

	commandQueueSize = 16
	resultQueueSize  = 16
)

type pendingRequest struct {
	id     string
	date   time.Time
	latest bool
}

type fetchResult struct {
	request  pendingRequest
	snapshot *model.RateSnapshot
	err      error
	duration time.Duration
}

type Option func(*Controller)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func WithCurrencies(currencies model.CurrencyList) Option {
	return func(c *Controller) {
		c.currencies = currencies
	}
}

func WithBaseCurrency(base model.Currency) Option {
	return func(c *Controller) {
		c.base = base
	}
}

func WithSharer(sharer ports.Sharer) Option {
	return func(c *Controller) {
		c.sharer = sharer
	}
}

// Controller owns the reference date, the pending request and the currency
// selection of one screen. All of its state is touched only by the goroutine
// running Run (or calling Handle/Drain/AwaitFetch directly); fetches run in
// their own goroutines and report back through the results queue.
type Controller struct {
	fetcher   ports.RateFetcher
	cache     ports.RateCache
	display   ports.Display
	sharer    ports.Sharer
	converter *Converter
	selector  *SelectionManager
	log       *logger.Logger
	metrics   *metrics.Metrics

	now        func() time.Time
	base       model.Currency
	currencies model.CurrencyList

	referenceDate time.Time
	hasReference  bool
	latest        bool
	pending       *pendingRequest
	inFlight      int

	selection  model.Selection
	amount     string
	resultText string

	commands chan model.Command
	results  chan fetchResult
}

func NewController(fetcher ports.RateFetcher, cache ports.RateCache, display ports.Display, log *logger.Logger, metrics *metrics.Metrics, opts ...Option) *Controller {
	c := &Controller{
		fetcher:    fetcher,
		cache:      cache,
		display:    display,
		log:        log,
		metrics:    metrics,
		now:        time.Now,
		base:       model.BaseCurrency,
		currencies: model.SupportedCurrencies,
		commands:   make(chan model.Command, commandQueueSize),
		results:    make(chan fetchResult, resultQueueSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.converter = NewConverter(cache, c.base)
	c.selector = NewSelectionManager(cache, c.base)
	c.selection = c.selector.Refresh(time.Time{}, c.currencies, c.base, c.base)

	return c
}

// Dispatch queues cmd for the Run loop. Safe to call from any goroutine.
func (c *Controller) Dispatch(ctx context.Context, cmd model.Command) error {
	select {
	case c.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes queued commands and fetch completions until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Info("Screen controller started")

	for {
		select {
		case cmd := <-c.commands:
			if err := c.Handle(ctx, cmd); err != nil {
				c.log.Warn("Command rejected", "command", cmd.Kind.String(), "error", err)
			}
		case res := <-c.results:
			c.complete(res)
		case <-ctx.Done():
			c.log.Info("Stopping screen controller")
			return ctx.Err()
		}
	}
}

// Drain applies every completion already queued without blocking and
// returns how many were applied.
func (c *Controller) Drain() int {
	applied := 0
	for {
		select {
		case res := <-c.results:
			c.complete(res)
			applied++
		default:
			return applied
		}
	}
}

// AwaitFetch blocks until one fetch completes and applies it.
func (c *Controller) AwaitFetch(ctx context.Context) error {
	select {
	case res := <-c.results:
		c.complete(res)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handle applies one command on the calling goroutine.
func (c *Controller) Handle(ctx context.Context, cmd model.Command) error {
	c.metrics.CommandsTotal.WithLabelValues(cmd.Kind.String()).Inc()

	switch cmd.Kind {
	case model.CommandStart:
		c.renderSelection()
		c.display.ShowResult("", false)
		c.RequestDate(ctx, c.today())

	case model.CommandSetDate:
		if cmd.Date.IsZero() {
			return fmt.Errorf("%w: empty date", model.ErrInvalidDate)
		}
		c.RequestDate(ctx, cmd.Date)

	case model.CommandSetDateText:
		date, ok := utils.ParseDisplayDate(cmd.Text)
		if !ok {
			c.restampReference()
			return fmt.Errorf("%w: %q", model.ErrInvalidDate, cmd.Text)
		}
		c.RequestDate(ctx, date)

	case model.CommandSelectInput:
		index := c.selection.IndexOf(cmd.Currency)
		if index < 0 {
			return fmt.Errorf("%w: %s", model.ErrUnknownCurrency, cmd.Currency)
		}
		c.selection.Input, c.selection.InputIndex = cmd.Currency, index
		c.convert()

	case model.CommandSelectOutput:
		index := c.selection.IndexOf(cmd.Currency)
		if index < 0 {
			return fmt.Errorf("%w: %s", model.ErrUnknownCurrency, cmd.Currency)
		}
		c.selection.Output, c.selection.OutputIndex = cmd.Currency, index
		c.convert()

	case model.CommandSetAmount:
		c.amount = cmd.Text
		c.convert()

	case model.CommandSwap:
		c.selection.Input, c.selection.Output = c.selection.Output, c.selection.Input
		c.selection.InputIndex, c.selection.OutputIndex = c.selection.OutputIndex, c.selection.InputIndex
		c.renderSelection()
		c.convert()

	case model.CommandRetry:
		c.retry(ctx)

	case model.CommandShare:
		return c.share()

	default:
		return fmt.Errorf("%w: %d", model.ErrUnknownCommand, cmd.Kind)
	}

	return nil
}

// RequestDate shows date immediately when its rates are cached, otherwise
// makes it the pending request and starts a fetch.
func (c *Controller) RequestDate(ctx context.Context, date time.Time) {
	date = utils.NormalizeDate(date)
	latest := utils.IsLatest(date, c.today())

	if c.cache.Has(date) {
		c.metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		if c.pending != nil {
			c.log.Debug("Pending request superseded by cached date", "request_id", c.pending.id, "date", utils.FormatDate(date))
		}
		c.pending = nil
		c.setReference(date, latest)
		c.refreshSelection()
		return
	}

	c.metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	if c.pending != nil {
		c.log.Debug("Pending request superseded", "request_id", c.pending.id, "date", utils.FormatDate(c.pending.date))
	}

	req := pendingRequest{
		id:     uuid.NewString(),
		date:   date,
		latest: latest,
	}
	c.pending = &req
	c.startFetch(ctx, req)
}

func (c *Controller) startFetch(ctx context.Context, req pendingRequest) {
	c.inFlight++
	if c.inFlight == 1 {
		c.display.ShowLoading(true)
	}

	c.log.Info("Requesting exchange rates",
		"request_id", req.id,
		"date", utils.FormatDate(req.date),
		"latest", req.latest,
	)

	go func() {
		start := time.Now()
		snapshot, err := c.fetcher.FetchRates(ctx, req.date, req.latest)
		res := fetchResult{
			request:  req,
			snapshot: snapshot,
			err:      err,
			duration: time.Since(start),
		}

		select {
		case c.results <- res:
		case <-ctx.Done():
		}
	}()
}

func (c *Controller) complete(res fetchResult) {
	c.inFlight--
	if c.inFlight == 0 {
		c.display.ShowLoading(false)
	}
	c.metrics.FetchDuration.Observe(res.duration.Seconds())

	if res.err == nil && res.snapshot == nil {
		res.err = fmt.Errorf("%w: empty result", model.ErrMalformedResponse)
	}

	current := c.pending != nil && c.pending.id == res.request.id

	if res.err != nil {
		c.metrics.FetchRequestsTotal.WithLabelValues(fetchOutcome(res.err)).Inc()
		if !current {
			c.log.Warn("Stale fetch failed", "request_id", res.request.id, "error", res.err)
			return
		}
		c.fail(res)
		return
	}

	c.metrics.FetchRequestsTotal.WithLabelValues("success").Inc()
	c.cache.Put(res.snapshot.Date, res.snapshot.Rates)
	c.metrics.CachedDates.Set(float64(c.cache.Len()))

	if !current {
		c.log.Info("Stale rates cached", "request_id", res.request.id, "date", utils.FormatDate(res.snapshot.Date))
		return
	}

	c.pending = nil
	c.display.HideError()
	c.setReference(res.snapshot.Date, res.request.latest)
	c.refreshSelection()
}

// fail keeps the previous reference date when there is one and reports the
// error; the pending request stays so Retry can re-issue it.
func (c *Controller) fail(res fetchResult) {
	c.log.Error("Failed to fetch exchange rates",
		"error", res.err,
		"request_id", res.request.id,
		"date", utils.FormatDate(res.request.date),
	)

	fallback := c.cache.HasAny()
	if fallback {
		c.restampReference()
	}
	c.display.ShowError(ErrorMessage, fallback)
}

func (c *Controller) retry(ctx context.Context) {
	if c.pending == nil {
		c.log.Debug("Nothing to retry")
		return
	}
	req := *c.pending
	req.id = uuid.NewString()
	c.pending = &req
	c.startFetch(ctx, req)
}

func (c *Controller) share() error {
	if c.sharer == nil {
		return model.ErrShareUnavailable
	}
	if !c.hasReference || c.resultText == "" {
		return model.ErrNothingToShare
	}

	text := fmt.Sprintf("%s: %s %s = %s %s",
		c.referenceDate.Format(utils.DisplayDateLayout),
		c.amount, c.selection.Input,
		c.resultText, c.selection.Output,
	)
	return c.sharer.Share(ShareTitle, text)
}

func (c *Controller) setReference(date time.Time, latest bool) {
	c.referenceDate = utils.NormalizeDate(date)
	c.latest = latest
	c.hasReference = true
	c.display.ShowDate(utils.FormatDisplayDate(c.referenceDate, latest))
}

// restampReference redraws the current reference date with a fresh latest flag.
func (c *Controller) restampReference() {
	if !c.hasReference {
		return
	}
	c.setReference(c.referenceDate, utils.IsLatest(c.referenceDate, c.today()))
}

func (c *Controller) refreshSelection() {
	c.selection = c.selector.Refresh(c.referenceDate, c.currencies, c.selection.Input, c.selection.Output)
	c.renderSelection()
	c.convert()
}

func (c *Controller) renderSelection() {
	c.display.ShowCurrencyOptions(c.selection.OptionLabels(), c.selection.InputIndex, c.selection.OutputIndex)
}

func (c *Controller) convert() {
	value, ok := c.converter.Convert(c.referenceDate, c.selection.Input, c.selection.Output, c.amount)
	if !ok {
		c.metrics.ConversionsTotal.WithLabelValues("unavailable").Inc()
		c.resultText = ""
		c.display.ShowResult("", false)
		return
	}

	c.metrics.ConversionsTotal.WithLabelValues("ok").Inc()
	c.resultText = FormatAmount(value)
	c.display.ShowResult(c.resultText, true)
}

func (c *Controller) today() time.Time {
	return utils.NormalizeDate(c.now())
}

// ReferenceDate is the date whose rates are displayed; ok is false until
// the first successful fetch or cache hit.
func (c *Controller) ReferenceDate() (time.Time, bool) {
	return c.referenceDate, c.hasReference
}

func (c *Controller) Latest() bool {
	return c.latest
}

// PendingDate is the date of the request whose completion may change the
// display, if any.
func (c *Controller) PendingDate() (time.Time, bool) {
	if c.pending == nil {
		return time.Time{}, false
	}
	return c.pending.date, true
}

func (c *Controller) Selection() model.Selection {
	return c.selection
}

func fetchOutcome(err error) string {
	switch {
	case errors.Is(err, model.ErrNetwork):
		return "network"
	case errors.Is(err, model.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, model.ErrUnexpectedBase):
		return "unexpected_base"
	case errors.Is(err, model.ErrUnparseableDate):
		return "unparseable_date"
	default:
		return "error"
	}
}
