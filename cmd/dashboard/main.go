package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transactions-dashboard/internal/config"
	"transactions-dashboard/internal/router"
	"transactions-dashboard/internal/services"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not read .env file: %v", err)
	}

	cfg := config.Load()
	logger := cfg.NewLogger(os.Stdout)

	metrics := services.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	var tokens services.TokenServiceInterface
	if cfg.Auth.AuthEnabled() {
		tokens = services.NewTokenService(&cfg.Auth)
	}

	client := services.NewTransactionsClient(
		&cfg.TransactionsAPI,
		tokens,
		services.NewCircuitBreaker(cfg.CircuitBreaker),
		metrics,
		logger,
	)
	provider := services.NewTransactionsProvider(client, metrics, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A failed load is shown on the page; the server still starts
	mountCtx, mountCancel := context.WithTimeout(ctx, cfg.TransactionsAPI.Timeout)
	if err := provider.Mount(mountCtx); err != nil {
		logger.Error("initial transactions load failed", "api", cfg.TransactionsAPI.BaseURL, "error", err)
	}
	mountCancel()
	defer provider.Unmount()

	e := router.NewDashboard(ctx, router.DashboardDependencies{
		Config:   cfg,
		Provider: provider,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("dashboard listening", "addr", server.Addr, "api", cfg.TransactionsAPI.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("dashboard stopped")
}
