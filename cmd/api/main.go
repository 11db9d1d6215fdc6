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
	"transactions-dashboard/internal/database"
	"transactions-dashboard/internal/repositories"
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

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()

	metrics := services.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	transactionService := services.NewTransactionService(
		repositories.NewTransactionRepository(db.DB),
		services.NewTransactionGenerator(),
		metrics,
		logger,
	)

	var tokens services.TokenServiceInterface
	if cfg.Auth.AuthEnabled() {
		tokens = services.NewTokenService(&cfg.Auth)
	} else {
		logger.Warn("AUTH_TOKEN_SECRET is empty, /transactions accepts unauthenticated requests")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e := router.NewAPI(ctx, router.APIDependencies{
		Config:       cfg,
		DB:           db.DB,
		Transactions: transactionService,
		Tokens:       tokens,
		Gatherer:     prometheus.DefaultGatherer,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("transactions api listening", "addr", server.Addr, "env", cfg.Server.Environment)
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
	logger.Info("transactions api stopped")
}
