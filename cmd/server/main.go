package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"currency-converter/internal/adapter/cache"
	httpRouter "currency-converter/internal/adapter/http"
	"currency-converter/internal/adapter/repository"
	"currency-converter/internal/adapter/screen"
	"currency-converter/internal/config"
	"currency-converter/internal/domain/model"
	"currency-converter/internal/metrics"
	"currency-converter/internal/service"
	"currency-converter/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger(os.Getenv("LOG_LEVEL")).Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Log.Level)
	defer log.Sync()
	log.Info("Starting currency converter service")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry)

	base := model.Currency(cfg.ExchangeAPI.BaseCurrency)
	rateCache := cache.NewMemoryCache(log)
	rateRepo := repository.NewExchangeAPI(
		cfg.ExchangeAPI.BaseURL,
		base,
		cfg.ExchangeAPI.Timeout,
		log,
	)

	screenState := screen.NewScreen(log)
	controller := service.NewController(rateRepo, rateCache, screenState, log, appMetrics,
		service.WithBaseCurrency(base),
		service.WithSharer(screenState),
	)

	handler := httpRouter.NewHandler(controller, screenState, log, appMetrics)
	router := httpRouter.NewRouter(handler, log, appMetrics, registry)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stopController := context.WithCancel(context.Background())
	go controller.Run(ctx)

	if err := controller.Dispatch(ctx, model.StartCommand()); err != nil {
		log.Error("Failed to start screen", "error", err)
		os.Exit(1)
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	stopController()
	log.Info("Server exited")
}
