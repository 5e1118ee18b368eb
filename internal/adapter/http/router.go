package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"currency-converter/internal/metrics"
	"currency-converter/pkg/logger"
)

type Router struct {
	handler  *Handler
	log      *logger.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

func NewRouter(handler *Handler, log *logger.Logger, metrics *metrics.Metrics, gatherer prometheus.Gatherer) *Router {
	return &Router{
		handler:  handler,
		log:      log,
		metrics:  metrics,
		gatherer: gatherer,
	}
}

func (r *Router) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		crw := &customResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(crw, req)

		path := routePattern(req)
		if path != "/metrics" {
			duration := time.Since(start).Seconds()
			r.metrics.HTTPRequestDuration.WithLabelValues(path, req.Method).Observe(duration)
			r.metrics.HTTPRequestsTotal.WithLabelValues(path, req.Method, fmt.Sprintf("%dxx", crw.statusCode/100)).Inc()
		}

		r.log.Info("HTTP request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", crw.statusCode,
			"duration", time.Since(start),
			"remote_addr", req.RemoteAddr,
			"user_agent", req.UserAgent(),
		)
	})
}

// routePattern keeps metric labels bounded to the registered routes.
func routePattern(req *http.Request) string {
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type customResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (crw *customResponseWriter) WriteHeader(code int) {
	crw.statusCode = code
	crw.ResponseWriter.WriteHeader(code)
}

func (r *Router) SetupRoutes() http.Handler {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.Recoverer)
	mux.Use(r.loggingMiddleware)

	mux.Route("/api/v1", func(api chi.Router) {
		api.Get("/screen", r.handler.GetScreenHandler)
		api.Post("/date", r.handler.SetDateHandler)
		api.Post("/currencies/input", r.handler.SelectInputHandler)
		api.Post("/currencies/output", r.handler.SelectOutputHandler)
		api.Post("/amount", r.handler.SetAmountHandler)
		api.Post("/swap", r.handler.SwapHandler)
		api.Post("/retry", r.handler.RetryHandler)
		api.Delete("/error", r.handler.DismissErrorHandler)
		api.Post("/share", r.handler.ShareHandler)
	})

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))

	return mux
}
