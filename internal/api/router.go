// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stayloop/concierge/internal/auth"
	"github.com/stayloop/concierge/internal/config"
	"github.com/stayloop/concierge/internal/middleware"
)

// Router assembles the HTTP routing tree.
type Router struct {
	cfg      *config.Config
	handlers *Handlers
	auth     *auth.Service
}

// NewRouter builds the router from its dependencies.
func NewRouter(cfg *config.Config, handlers *Handlers, authService *auth.Service) *Router {
	return &Router{cfg: cfg, handlers: handlers, auth: authService}
}

// Setup wires all routes and middleware and returns the root handler.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(rt.cfg.Server.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints stay outside the rate limiter so orchestrator
	// probes are never throttled.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", rt.handlers.Health)
		r.Get("/live", rt.handlers.HealthLive)
		r.Get("/ready", rt.handlers.HealthReady)
	})

	// Auth endpoints with strict login throttling.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.With(httprate.LimitByIP(5, 5*time.Minute)).Post("/login", rt.handlers.Login)
		r.Post("/logout", rt.handlers.Logout)
	})

	// Guest-facing endpoints: recommendations and public catalog reads.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.rateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/recommendations", rt.handlers.Recommendations)
		r.Get("/recommendations/preview", rt.handlers.Preview)

		r.Get("/properties", rt.handlers.ListProperties)
		r.Get("/properties/{propertyID}", rt.handlers.GetProperty)
		r.Get("/properties/{propertyID}/catalog", rt.handlers.ListCatalog)

		// Management endpoints require an admin session.
		r.Group(func(r chi.Router) {
			r.Use(rt.auth.Middleware)

			r.Post("/properties", rt.handlers.UpsertProperty)
			r.Post("/properties/{propertyID}/catalog", rt.handlers.UpsertCatalogItem)

			r.Get("/properties/{propertyID}/guests", rt.handlers.ListGuests)
			r.Post("/properties/{propertyID}/guests", rt.handlers.UpsertGuest)
			r.Get("/guests/{guestID}", rt.handlers.GetGuest)

			r.Get("/config/recommend", rt.handlers.GetEngineConfig)
			r.Put("/config/recommend", rt.handlers.UpdateEngineConfig)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// rateLimit returns the per-IP request limiter, or a no-op when disabled
// for load tests.
func (rt *Router) rateLimit() func(http.Handler) http.Handler {
	if rt.cfg.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(rt.cfg.Security.RateLimitReqs, rt.cfg.Security.RateLimitWindow)
}
