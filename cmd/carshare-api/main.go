package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dimitrije/carshare/internal/config"
	"github.com/dimitrije/carshare/internal/handlers"
	authmw "github.com/dimitrije/carshare/internal/middleware"
	"github.com/dimitrije/carshare/internal/metrics"
	"github.com/dimitrije/carshare/internal/mockapi"
	"github.com/dimitrije/carshare/internal/services"
	"github.com/dimitrije/carshare/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	emailService := services.NewEmailService(cfg.SMTP)
	opts := []mockapi.Option{
		mockapi.WithLatency(cfg.MockLatency),
		mockapi.WithLogger(logger),
		mockapi.WithCodeSender(emailService),
	}

	var jwtService *services.JWTService
	if cfg.JWTSecret != "" {
		jwtService = services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
		opts = append(opts, mockapi.WithTokenIssuer(jwtService))
	} else {
		logger.Warn("JWT_SECRET not set, issuing mock tokens and ignoring bearer auth")
	}

	dispatcher := mockapi.NewDispatcher(mockapi.Seed(), opts...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	queryHandler := handlers.NewQueryHandler(dispatcher, m, logger)
	healthHandler := handlers.NewHealthHandler(dispatcher)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	if jwtService != nil {
		app.Use(authmw.OptionalAuth(jwtService))
	}

	app.Post("/query", queryHandler.Query)
	app.Get("/health", healthHandler.Health)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	mux.Handle("/", app)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "latency", cfg.MockLatency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
