// Package main is the entry point for the Dining Scout API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/dining-scout/internal/config"
	"github.com/pkordes/dining-scout/internal/handler"
	"github.com/pkordes/dining-scout/internal/links"
	"github.com/pkordes/dining-scout/internal/middleware"
	"github.com/pkordes/dining-scout/internal/repo"
	"github.com/pkordes/dining-scout/internal/service"
	"github.com/pkordes/dining-scout/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Data source ------------------------------------------------------
	// Database sources are connected and pinged inside repo.Open.
	src, closeSrc, err := repo.Open(context.Background(), cfg.DataSource)
	if err != nil {
		slog.Error("failed to open data source", "error", err, "source", cfg.DataSource)
		os.Exit(1)
	}
	defer closeSrc()

	venues := service.NewVenueService(src, links.NewResolver(cfg.DiningBaseURL, cfg.ExternalBookingDomain), logger)

	// The server refuses to start without a first complete catalog.
	// Later reload failures keep the previous catalog in service.
	if _, err := venues.Load(context.Background()); err != nil {
		slog.Error("initial venue load failed", "error", err)
		os.Exit(1)
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srvHandler := handler.NewServer(venues,
		handler.WithDefaultPartySize(cfg.DefaultPartySize),
		handler.WithOpenAPI(spec.OpenAPI),
	)
	r.Mount("/", srvHandler.Handler())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
