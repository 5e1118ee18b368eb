package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"currency-converter/internal/adapter/screen"
	"currency-converter/internal/domain/model"
	"currency-converter/internal/domain/ports"
	"currency-converter/internal/metrics"
	"currency-converter/pkg/logger"
	"currency-converter/pkg/utils"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ScreenState is the view the handlers report back to clients.
type ScreenState interface {
	Snapshot() screen.State
	DismissError(force bool) bool
}

type dateRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Text string `json:"text" validate:"required_without=Date,max=64"`
}

type currencyRequest struct {
	Currency string `json:"currency" validate:"required,min=3,max=64"`
}

type amountRequest struct {
	Amount string `json:"amount" validate:"max=64"`
}

type Handler struct {
	dispatcher ports.CommandDispatcher
	screen     ScreenState
	validate   *validator.Validate
	log        *logger.Logger
	metrics    *metrics.Metrics
}

func NewHandler(dispatcher ports.CommandDispatcher, screen ScreenState, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		screen:     screen,
		validate:   validator.New(),
		log:        log,
		metrics:    metrics,
	}
}

func (h *Handler) GetScreenHandler(w http.ResponseWriter, r *http.Request) {
	h.sendResponse(w, http.StatusOK, h.screen.Snapshot())
}

func (h *Handler) SetDateHandler(w http.ResponseWriter, r *http.Request) {
	var req dateRequest
	if !h.decode(w, r, &req) {
		return
	}

	var cmd model.Command
	if req.Date != "" {
		date, err := utils.ParseDate(req.Date)
		if err != nil {
			h.handleCommandError(w, model.ErrInvalidDate)
			return
		}
		cmd = model.SetDateCommand(date)
	} else {
		if _, ok := utils.ParseDisplayDate(req.Text); !ok {
			h.handleCommandError(w, model.ErrInvalidDate)
			return
		}
		cmd = model.SetDateTextCommand(req.Text)
	}

	h.dispatch(r.Context(), w, cmd)
}

func (h *Handler) SelectInputHandler(w http.ResponseWriter, r *http.Request) {
	h.selectCurrency(w, r, model.SelectInputCommand)
}

func (h *Handler) SelectOutputHandler(w http.ResponseWriter, r *http.Request) {
	h.selectCurrency(w, r, model.SelectOutputCommand)
}

func (h *Handler) selectCurrency(w http.ResponseWriter, r *http.Request, command func(model.Currency) model.Command) {
	var req currencyRequest
	if !h.decode(w, r, &req) {
		return
	}

	symbol := model.Currency(strings.ToUpper(model.SymbolFromFullName(req.Currency).String()))
	if !offered(h.screen.Snapshot().Options, symbol) {
		h.handleCommandError(w, model.ErrUnknownCurrency)
		return
	}

	h.dispatch(r.Context(), w, command(symbol))
}

func (h *Handler) SetAmountHandler(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.dispatch(r.Context(), w, model.SetAmountCommand(req.Amount))
}

func (h *Handler) SwapHandler(w http.ResponseWriter, r *http.Request) {
	h.dispatch(r.Context(), w, model.SwapCommand())
}

func (h *Handler) RetryHandler(w http.ResponseWriter, r *http.Request) {
	h.screen.DismissError(true)
	h.dispatch(r.Context(), w, model.RetryCommand())
}

func (h *Handler) DismissErrorHandler(w http.ResponseWriter, r *http.Request) {
	if !h.screen.DismissError(false) {
		h.sendErrorResponse(w, http.StatusConflict, "no previous rates to fall back to, retry instead")
		return
	}

	h.sendResponse(w, http.StatusOK, h.screen.Snapshot())
}

func (h *Handler) ShareHandler(w http.ResponseWriter, r *http.Request) {
	if !h.screen.Snapshot().ResultVisible {
		h.handleCommandError(w, model.ErrNothingToShare)
		return
	}

	h.dispatch(r.Context(), w, model.ShareCommand())
}

func (h *Handler) dispatch(ctx context.Context, w http.ResponseWriter, cmd model.Command) {
	if err := h.dispatcher.Dispatch(ctx, cmd); err != nil {
		h.log.Error("Failed to dispatch command", "command", cmd.Kind.String(), "error", err)
		h.sendErrorResponse(w, http.StatusServiceUnavailable, "screen is not accepting commands")
		return
	}

	h.sendResponse(w, http.StatusAccepted, h.screen.Snapshot())
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Debug("Request validation failed", "path", r.URL.Path, "error", err)
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}

	return true
}

func offered(options []string, symbol model.Currency) bool {
	for _, option := range options {
		if model.SymbolFromFullName(option) == symbol {
			return true
		}
	}
	return false
}

func (h *Handler) sendResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := Response{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode error response", "error", err)
	}
}

func (h *Handler) handleCommandError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"

	switch {
	case errors.Is(err, model.ErrInvalidDate):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid date, use M/D/YYYY or YYYY-MM-DD"
	case errors.Is(err, model.ErrUnknownCurrency):
		statusCode = http.StatusUnprocessableEntity
		errorMessage = "currency is not offered for the reference date"
	case errors.Is(err, model.ErrNothingToShare):
		statusCode = http.StatusConflict
		errorMessage = "no conversion result to share"
	}

	h.log.Warn("Command refused", "error", err, "status_code", statusCode)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
