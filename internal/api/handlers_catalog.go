// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayloop/concierge/internal/database"
	"github.com/stayloop/concierge/internal/models"
	"github.com/stayloop/concierge/internal/recommend"
)

// ListProperties returns all properties.
func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.store.ListProperties(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to list properties", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: "success", Data: props})
}

// GetProperty returns one property by id.
func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	prop, err := h.store.GetProperty(r.Context(), propertyID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "property not found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to load property", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: "success", Data: prop})
}

type propertyRequest struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name" validate:"required"`
	Timezone  string  `json:"timezone,omitempty"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// UpsertProperty creates or replaces a property.
func (h *Handlers) UpsertProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	prop := models.Property{
		ID:        req.ID,
		Name:      req.Name,
		Timezone:  req.Timezone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if prop.ID == "" {
		prop.ID = uuid.NewString()
	}
	if prop.Timezone == "" {
		prop.Timezone = "UTC"
	}

	if err := h.store.UpsertProperty(r.Context(), &prop); err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to save property", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: "success", Data: prop})
}

// ListCatalog returns the full catalog of a property, inactive items
// included, for the management UI.
func (h *Handlers) ListCatalog(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	items, err := h.store.ListCatalogItems(r.Context(), propertyID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to list catalog items", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: "success", Data: items})
}

// catalogItemRequest validates the mutable surface of a catalog item.
// Season rule and temperature bounds are cross-checked beyond tags.
type catalogItemRequest struct {
	ID                 string   `json:"id,omitempty"`
	Kind               string   `json:"kind" validate:"required,itemkind"`
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description,omitempty"`
	Category           string   `json:"category,omitempty"`
	WeatherSuitability []string `json:"weather_suitability,omitempty"`
	Labels             []string `json:"labels,omitempty"`

	SeasonRuleKind string `json:"season_rule_kind,omitempty" validate:"omitempty,oneof=all named range"`
	Season         string `json:"season,omitempty" validate:"omitempty,season"`
	StartMonth     int    `json:"start_month,omitempty" validate:"omitempty,min=1,max=12"`
	EndMonth       int    `json:"end_month,omitempty" validate:"omitempty,min=1,max=12"`

	WeatherDependent bool     `json:"weather_dependent,omitempty"`
	MinTempC         *float64 `json:"min_temp_c,omitempty"`
	MaxTempC         *float64 `json:"max_temp_c,omitempty"`

	PriceTier     int    `json:"price_tier" validate:"min=1,max=5"`
	RelevanceTier string `json:"relevance_tier,omitempty" validate:"omitempty,oneof=must_see highly_recommended recommended popular none"`
	Awards        string `json:"awards,omitempty"`

	WalkMinutes     *int `json:"walk_minutes,omitempty"`
	IndoorCapacity  *int `json:"indoor_capacity,omitempty"`
	OutdoorCapacity *int `json:"outdoor_capacity,omitempty"`

	DisplayOrder int  `json:"display_order,omitempty"`
	Active       bool `json:"active"`
}

func (req *catalogItemRequest) seasonRule() (recommend.SeasonRule, error) {
	switch req.SeasonRuleKind {
	case "", "all":
		return recommend.AllSeasons(), nil
	case "named":
		season := recommend.Season(req.Season)
		if !season.Valid() {
			return recommend.SeasonRule{}, errors.New("named season rule requires a valid season")
		}
		return recommend.SeasonRule{Kind: recommend.SeasonRuleNamed, Season: season}, nil
	case "range":
		if req.StartMonth == 0 || req.EndMonth == 0 {
			return recommend.SeasonRule{}, errors.New("range season rule requires start_month and end_month")
		}
		return recommend.SeasonRule{
			Kind:       recommend.SeasonRuleRange,
			StartMonth: req.StartMonth,
			EndMonth:   req.EndMonth,
		}, nil
	default:
		return recommend.SeasonRule{}, errors.New("season_rule_kind must be all, named, or range")
	}
}

// UpsertCatalogItem creates or replaces a catalog item under a property.
func (h *Handlers) UpsertCatalogItem(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	var req catalogItemRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	rule, err := req.seasonRule()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if req.MinTempC != nil && req.MaxTempC != nil && *req.MinTempC > *req.MaxTempC {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR",
			"min_temp_c must not exceed max_temp_c", nil)
		return
	}

	item := recommend.CatalogItem{
		ID:               req.ID,
		PropertyID:       propertyID,
		Kind:             recommend.ItemKind(req.Kind),
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Category:         req.Category,
		Labels:           req.Labels,
		SeasonRule:       rule,
		WeatherDependent: req.WeatherDependent,
		MinTempC:         req.MinTempC,
		MaxTempC:         req.MaxTempC,
		PriceTier:        req.PriceTier,
		RelevanceTier:    recommend.RelevanceTier(req.RelevanceTier),
		Awards:           req.Awards,
		WalkMinutes:      req.WalkMinutes,
		IndoorCapacity:   req.IndoorCapacity,
		OutdoorCapacity:  req.OutdoorCapacity,
		DisplayOrder:     req.DisplayOrder,
		Active:           req.Active,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.RelevanceTier == "" {
		item.RelevanceTier = recommend.TierNone
	}
	for _, tag := range req.WeatherSuitability {
		item.WeatherSuitability = append(item.WeatherSuitability, recommend.WeatherTag(tag))
	}

	if err := h.store.UpsertCatalogItem(r.Context(), &item); err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to save catalog item", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: "success", Data: item})
}

// ListGuests returns the guests registered to a property.
func (h *Handlers) ListGuests(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	guests, err := h.store.ListGuests(r.Context(), propertyID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to list guests", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: "success", Data: guests})
}

// GetGuest returns one guest record.
func (h *Handlers) GetGuest(w http.ResponseWriter, r *http.Request) {
	guestID := chi.URLParam(r, "guestID")

	guest, err := h.store.GetGuest(r.Context(), guestID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "guest not found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to load guest", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: "success", Data: guest})
}

type guestRequest struct {
	ID            string   `json:"id,omitempty"`
	FullName      string   `json:"full_name" validate:"required"`
	ProfileType   string   `json:"profile_type,omitempty" validate:"omitempty,profiletype"`
	Labels        []string `json:"labels,omitempty"`
	Dietary       []string `json:"dietary,omitempty"`
	Accessibility []string `json:"accessibility,omitempty"`
	BudgetTier    string   `json:"budget_tier,omitempty" validate:"omitempty,budgettier"`
	Adults        int      `json:"adults,omitempty" validate:"omitempty,min=1,max=20"`
	Children      int      `json:"children,omitempty" validate:"omitempty,min=0,max=20"`
}

// UpsertGuest creates or replaces a guest under a property.
func (h *Handlers) UpsertGuest(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	var req guestRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	guest := models.Guest{
		ID:            req.ID,
		PropertyID:    propertyID,
		FullName:      req.FullName,
		ProfileType:   req.ProfileType,
		Labels:        req.Labels,
		Dietary:       req.Dietary,
		Accessibility: req.Accessibility,
		BudgetTier:    string(recommend.NormalizeBudgetTier(req.BudgetTier)),
		Adults:        req.Adults,
		Children:      req.Children,
	}
	if guest.ID == "" {
		guest.ID = uuid.NewString()
	}
	if guest.ProfileType == "" {
		guest.ProfileType = string(recommend.ProfileUnknown)
	}
	if guest.Adults == 0 {
		guest.Adults = 1
	}

	if err := h.store.UpsertGuest(r.Context(), &guest); err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to save guest", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{Status: "success", Data: guest})
}
