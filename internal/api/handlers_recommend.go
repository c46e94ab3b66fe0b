// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/stayloop/concierge/internal/metrics"
	"github.com/stayloop/concierge/internal/middleware"
	"github.com/stayloop/concierge/internal/models"
	"github.com/stayloop/concierge/internal/recommend"
)

// recommendationRequest is the JSON body of the recommendations endpoint.
// Context fields are optional overrides; anything omitted is resolved from
// the stored guest profile and live environment.
type recommendationRequest struct {
	PropertyID  string   `json:"property_id" validate:"required"`
	Kinds       []string `json:"kinds,omitempty" validate:"omitempty,dive,itemkind"`
	GuestID     string   `json:"guest_id,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	ProfileType string   `json:"profile_type,omitempty" validate:"omitempty,profiletype"`
	BudgetTier  string   `json:"budget_tier,omitempty" validate:"omitempty,budgettier"`
	Limit       int      `json:"limit,omitempty" validate:"omitempty,min=0,max=100"`

	Date   string `json:"date,omitempty"`
	Season string `json:"season,omitempty" validate:"omitempty,season"`

	Weather *struct {
		Condition          string  `json:"condition"`
		TemperatureC       float64 `json:"temperature_c"`
		RainProbabilityPct int     `json:"rain_probability_pct" validate:"min=0,max=100"`
	} `json:"weather,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

// toEngineRequest maps the wire request onto the engine's request type.
func (req *recommendationRequest) toEngineRequest(requestID string) (recommend.Request, error) {
	out := recommend.Request{
		PropertyID:  req.PropertyID,
		GuestID:     req.GuestID,
		Labels:      req.Labels,
		ProfileType: recommend.ProfileType(req.ProfileType),
		BudgetTier:  recommend.BudgetTier(req.BudgetTier),
		Season:      recommend.Season(req.Season),
		Limit:       req.Limit,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		RequestID:   requestID,
	}

	for _, k := range req.Kinds {
		out.Kinds = append(out.Kinds, recommend.ItemKind(k))
	}

	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return recommend.Request{}, errors.New("date must be RFC 3339, e.g. 2026-01-10T15:00:00Z")
		}
		out.Date = date
	}

	if req.Weather != nil {
		out.Weather = &recommend.WeatherOverride{
			Condition:          recommend.WeatherCondition(req.Weather.Condition),
			TemperatureC:       req.Weather.TemperatureC,
			RainProbabilityPct: req.Weather.RainProbabilityPct,
		}
	}

	return out, nil
}

func kindLabel(kinds []string) string {
	if len(kinds) == 1 {
		return kinds[0]
	}
	return "mixed"
}

// Recommendations scores and ranks catalog items for a guest context.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommendationRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		metrics.RecordRecommendation(kindLabel(req.Kinds), "invalid", 0, 0, 0, false)
		respondValidationError(w, r, apiErr)
		return
	}

	engineReq, err := req.toEngineRequest(middleware.GetRequestID(r.Context()))
	if err != nil {
		metrics.RecordRecommendation(kindLabel(req.Kinds), "invalid", 0, 0, 0, false)
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	h.runRecommend(w, r, kindLabel(req.Kinds), engineReq, start)
}

// Preview returns a mixed, diversity-capped blend for a property from
// query parameters alone. Meant for lobby displays and dashboard embeds
// where sending a JSON body is inconvenient.
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	engineReq := recommend.Request{
		PropertyID: q.Get("property_id"),
		GuestID:    q.Get("guest_id"),
		RequestID:  middleware.GetRequestID(r.Context()),
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			metrics.RecordRecommendation("mixed", "invalid", 0, 0, 0, false)
			respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR",
				"limit must be a non-negative integer", nil)
			return
		}
		engineReq.Limit = limit
	}

	h.runRecommend(w, r, "mixed", engineReq, start)
}

// runRecommend executes the engine call and maps its errors onto the
// response envelope. Shared by the body-driven and query-driven endpoints.
func (h *Handlers) runRecommend(w http.ResponseWriter, r *http.Request, label string, engineReq recommend.Request, start time.Time) {
	resp, err := h.engine.Recommend(r.Context(), engineReq)
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		metrics.RecordRecommendation(label, "invalid", 0, 0, 0, false)
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	case errors.Is(err, recommend.ErrCatalogUnavailable):
		metrics.RecordRecommendation(label, "unavailable", 0, 0, 0, false)
		respondError(w, r, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE",
			"catalog is temporarily unavailable", err)
		return
	case err != nil:
		metrics.RecordRecommendation(label, "unavailable", 0, 0, 0, false)
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"recommendation failed", err)
		return
	}

	if resp.Context.Environment.WeatherDegraded {
		metrics.WeatherFallbacks.Inc()
	}
	metrics.RecordRecommendation(label, "ok", time.Since(start),
		resp.TotalCandidates, resp.HardFiltered, resp.Metadata.CacheHit)

	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      resp.Metadata.CacheHit,
			RequestID:   resp.Metadata.RequestID,
		},
	})
}

// GetEngineConfig returns the live scoring configuration.
func (h *Handlers) GetEngineConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.engine.GetConfig(),
	})
}

// UpdateEngineConfig replaces the scoring configuration. The new config is
// validated before it is applied; a rejected config leaves the running one
// untouched.
func (h *Handlers) UpdateEngineConfig(w http.ResponseWriter, r *http.Request) {
	var cfg recommend.Config
	if apiErr := decodeJSONBody(w, r, &cfg); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	if err := h.engine.UpdateConfig(&cfg); err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.engine.GetConfig(),
	})
}
