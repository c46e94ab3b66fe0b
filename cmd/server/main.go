// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

// Command server runs the Concierge API: the guest recommendation engine,
// the property and catalog management endpoints, and the admin session
// layer, all supervised under one suture tree.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stayloop/concierge/internal/api"
	"github.com/stayloop/concierge/internal/auth"
	"github.com/stayloop/concierge/internal/config"
	"github.com/stayloop/concierge/internal/database"
	"github.com/stayloop/concierge/internal/logging"
	"github.com/stayloop/concierge/internal/recommend"
	"github.com/stayloop/concierge/internal/recommend/factors"
	"github.com/stayloop/concierge/internal/supervisor"
	"github.com/stayloop/concierge/internal/supervisor/services"
	"github.com/stayloop/concierge/internal/weather"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("weather_enabled", cfg.Weather.Enabled).
		Msg("Starting Concierge")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Database close failed")
		}
	}()

	if cfg.Database.SeedDemoData {
		if err := db.SeedDemoData(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	engine, err := recommend.NewEngine(&cfg.Recommend, logging.Component("engine"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	var weatherProvider recommend.WeatherProvider
	if cfg.Weather.Enabled {
		weatherProvider = weather.New(cfg.Weather, cfg.Server.Latitude, cfg.Server.Longitude)
	}

	resolver := recommend.NewResolver(db, weatherProvider,
		cfg.Recommend.Limits.WeatherTimeout, logging.Component("resolver"))
	engine.SetProviders(db, resolver)
	for _, f := range factors.Default() {
		engine.RegisterFactor(f)
	}

	authService, err := auth.NewService(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build auth service")
	}
	defer func() {
		if err := authService.Close(); err != nil {
			logging.Error().Err(err).Msg("Session store close failed")
		}
	}()

	handlers := api.NewHandlers(db, engine, authService, version)
	router := api.NewRouter(cfg, handlers, authService)

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	if cfg.Security.SessionStorePath != "" {
		// In-memory session stores have no value log to compact.
		tree.AddStorageService(services.NewBadgerGCService(authService,
			10*time.Minute, logging.Component("session-gc")))
	}

	logging.Info().Str("addr", cfg.ListenAddr()).Msg("Listening")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
		reportUnstopped(tree)
		os.Exit(1)
	}

	reportUnstopped(tree)
	logging.Info().Msg("Shutdown complete")
}

// reportUnstopped logs services that did not stop within the shutdown
// timeout.
func reportUnstopped(tree *supervisor.Tree) {
	unstopped, err := tree.UnstoppedServiceReport()
	if err != nil || len(unstopped) == 0 {
		return
	}
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
	}
}
