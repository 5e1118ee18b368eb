package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"currency-converter/internal/adapter/cache"
	"currency-converter/internal/adapter/console"
	"currency-converter/internal/adapter/repository"
	"currency-converter/internal/config"
	"currency-converter/internal/domain/model"
	"currency-converter/internal/metrics"
	"currency-converter/internal/service"
	"currency-converter/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	// The terminal belongs to the screen; only warnings and errors are logged.
	level := cfg.Log.Level
	if level == "" || level == "info" {
		level = "warn"
	}
	log := logger.NewLogger(level)
	defer log.Sync()

	base := model.Currency(cfg.ExchangeAPI.BaseCurrency)
	display := console.NewDisplay(os.Stdout)
	controller := service.NewController(
		repository.NewExchangeAPI(cfg.ExchangeAPI.BaseURL, base, cfg.ExchangeAPI.Timeout, log),
		cache.NewMemoryCache(log),
		display,
		log,
		metrics.NewMetrics(prometheus.NewRegistry()),
		service.WithBaseCurrency(base),
		service.WithSharer(display),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go controller.Run(ctx)

	fmt.Println(console.Help)
	if err := controller.Dispatch(ctx, model.StartCommand()); err != nil {
		return
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}

			cmd, err := console.ParseCommand(line, time.Now())
			switch {
			case errors.Is(err, console.ErrQuit):
				return
			case errors.Is(err, console.ErrEmpty):
				continue
			case errors.Is(err, console.ErrHelp):
				fmt.Println(console.Help)
				continue
			case err != nil:
				fmt.Fprintln(os.Stderr, err)
				continue
			}

			if err := controller.Dispatch(ctx, cmd); err != nil {
				return
			}
		}
	}
}
