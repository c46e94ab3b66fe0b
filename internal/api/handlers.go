// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/stayloop/concierge/internal/auth"
	"github.com/stayloop/concierge/internal/models"
	"github.com/stayloop/concierge/internal/recommend"
)

// Store is the storage surface the handlers need. Implemented by
// database.DB; narrowed to an interface so handler tests can run against
// an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error

	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)
	ListProperties(ctx context.Context) ([]models.Property, error)
	UpsertProperty(ctx context.Context, p *models.Property) error

	ListCatalogItems(ctx context.Context, propertyID string) ([]recommend.CatalogItem, error)
	UpsertCatalogItem(ctx context.Context, item *recommend.CatalogItem) error

	GetGuest(ctx context.Context, guestID string) (*models.Guest, error)
	ListGuests(ctx context.Context, propertyID string) ([]models.Guest, error)
	UpsertGuest(ctx context.Context, guest *models.Guest) error
}

// Handlers carries the dependencies shared by all HTTP handlers.
type Handlers struct {
	store     Store
	engine    *recommend.Engine
	auth      *auth.Service
	startTime time.Time
	version   string
}

// NewHandlers wires the handler set.
func NewHandlers(store Store, engine *recommend.Engine, authService *auth.Service, version string) *Handlers {
	return &Handlers{
		store:     store,
		engine:    engine,
		auth:      authService,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthLive reports process liveness. Always 200 while the process runs.
func (h *Handlers) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"status": "alive"},
	})
}

// HealthReady reports readiness: the database must answer a ping.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE",
			"database is not reachable", err)
		return
	}

	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"status": "ready"},
	})
}

// Health reports overall service health with uptime and version.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "up"
	status := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":         dbStatus,
			"version":        h.version,
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
			"database":       dbStatus,
		},
	})
}
