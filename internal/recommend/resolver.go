// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Resolver assembles the guest and environment contexts scoring needs.
// Guest-store misses and weather-provider failures degrade gracefully;
// resolution never fails a request.
type Resolver struct {
	guests  GuestProvider
	weather WeatherProvider
	timeout time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

// NewResolver creates a context resolver. Either provider may be nil, in
// which case the corresponding context falls back to its neutral default.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(guests GuestProvider, weather WeatherProvider, weatherTimeout time.Duration, logger zerolog.Logger) *Resolver {
	return &Resolver{
		guests:  guests,
		weather: weather,
		timeout: weatherTimeout,
		logger:  logger.With().Str("component", "resolver").Logger(),
		now:     time.Now,
	}
}

// Resolve builds the full scoring context for a request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (r *Resolver) Resolve(ctx context.Context, req Request) ResolvedContext {
	return ResolvedContext{
		Guest:       r.resolveGuest(ctx, req),
		Environment: r.resolveEnvironment(ctx, req),
	}
}

// resolveGuest merges the stored guest profile (when a guest id is present)
// with caller-supplied overrides. Caller labels, when explicitly supplied,
// win over stored labels. A guest-store miss is recovered by proceeding
// with caller-supplied values.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (r *Resolver) resolveGuest(ctx context.Context, req Request) GuestContext {
	gc := GuestContext{
		GuestID:     req.GuestID,
		ProfileType: ProfileUnknown,
		BudgetTier:  BudgetModerate,
		Labels:      req.Labels,
	}

	if req.GuestID != "" && r.guests != nil {
		profile, err := r.guests.GetGuestProfile(ctx, req.GuestID)
		switch {
		case err == nil:
			gc.ProfileType = profile.ProfileType
			gc.BudgetTier = profile.BudgetTier
			gc.Dietary = profile.Dietary
			gc.Accessibility = profile.Accessibility
			gc.Adults = profile.Adults
			gc.Children = profile.Children
			if req.Labels == nil {
				gc.Labels = profile.Labels
			}
		case errors.Is(err, ErrGuestNotFound):
			r.logger.Debug().Str("guest_id", req.GuestID).Msg("guest profile not found, using request labels")
		default:
			r.logger.Warn().Err(err).Str("guest_id", req.GuestID).Msg("guest store lookup failed, using request labels")
		}
	}

	if req.ProfileType != "" {
		gc.ProfileType = req.ProfileType
	}
	if req.BudgetTier != "" {
		gc.BudgetTier = NormalizeBudgetTier(string(req.BudgetTier))
	}
	if gc.Labels == nil {
		gc.Labels = []string{}
	}

	return gc
}

// resolveEnvironment derives season and daypart from the reference date and
// fetches best-effort weather. A provider failure or timeout substitutes the
// neutral context instead of failing the request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (r *Resolver) resolveEnvironment(ctx context.Context, req Request) EnvironmentContext {
	ref := req.Date
	if ref.IsZero() {
		ref = r.now()
	}

	env := EnvironmentContext{
		ReferenceDate: ref,
		Season:        SeasonForDate(ref),
		TimeOfDay:     TimeOfDayForHour(ref.Hour()),
		Condition:     ConditionUnknown,
	}

	if req.Season.Valid() {
		env.Season = req.Season
	}

	if req.Weather != nil {
		env.Condition = req.Weather.Condition
		env.TemperatureC = req.Weather.TemperatureC
		env.RainProbabilityPct = req.Weather.RainProbabilityPct
		return env
	}

	if r.weather == nil {
		env.WeatherDegraded = true
		return env
	}

	wctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	obs, err := r.weather.CurrentWeather(wctx, req.Latitude, req.Longitude)
	if err != nil {
		r.logger.Warn().Err(err).Msg("weather provider unavailable, using neutral context")
		env.WeatherDegraded = true
		return env
	}

	env.Condition = obs.Condition
	env.TemperatureC = obs.TemperatureC
	env.RainProbabilityPct = obs.RainProbabilityPct
	return env
}
