// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

// Package weather implements the current-weather provider backed by the
// Open-Meteo forecast API. The client is defensive about the upstream: a
// non-blocking rate limiter bounds request volume, a circuit breaker stops
// hammering a failing API, and observations are cached for a configurable
// TTL. All failure modes surface as plain errors so the context resolver
// can fall back to the neutral weather context.
package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/stayloop/concierge/internal/config"
	"github.com/stayloop/concierge/internal/logging"
	"github.com/stayloop/concierge/internal/metrics"
	"github.com/stayloop/concierge/internal/recommend"
)

// ErrRateLimited is returned when the per-minute request budget is spent
// and no cached observation is available.
var ErrRateLimited = errors.New("weather request rate limit exceeded")

type cacheEntry struct {
	obs     recommend.WeatherObservation
	expires time.Time
}

// Client fetches current weather from Open-Meteo. Safe for concurrent use.
type Client struct {
	cfg        config.WeatherConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[*recommend.WeatherObservation]
	logger     zerolog.Logger

	// defaultLat and defaultLon are the property reference coordinates
	// used when a request carries no location.
	defaultLat float64
	defaultLon float64

	cacheMu sync.Mutex
	cache   map[string]cacheEntry

	now func() time.Time
}

// New builds a weather client from configuration. defaultLat and defaultLon
// are the reference coordinates of the deployment's primary property.
func New(cfg config.WeatherConfig, defaultLat, defaultLon float64) *Client {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}
	openTimeout := cfg.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = time.Minute
	}

	metrics.WeatherBreakerState.Set(0)

	cb := gobreaker.NewCircuitBreaker[*recommend.WeatherObservation](gobreaker.Settings{
		Name:        "weather-api",
		MaxRequests: 2,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Weather circuit breaker state transition")
			metrics.WeatherBreakerState.Set(stateToFloat(to))
		},
	})

	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		cb:         cb,
		logger:     logging.Component("weather"),
		defaultLat: defaultLat,
		defaultLon: defaultLon,
		cache:      make(map[string]cacheEntry),
		now:        time.Now,
	}
}

// CurrentWeather returns the current observation for the given coordinates,
// or for the property reference location when both are nil. Implements the
// engine's weather provider interface.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon *float64) (*recommend.WeatherObservation, error) {
	la, lo := c.defaultLat, c.defaultLon
	if lat != nil {
		la = *lat
	}
	if lon != nil {
		lo = *lon
	}

	key := fmt.Sprintf("%.3f:%.3f", la, lo)
	if obs, ok := c.cachedObservation(key); ok {
		metrics.WeatherRequestsTotal.WithLabelValues("ok").Inc()
		return obs, nil
	}

	if !c.limiter.Allow() {
		metrics.WeatherRequestsTotal.WithLabelValues("rate_limited").Inc()
		return nil, ErrRateLimited
	}

	obs, err := c.cb.Execute(func() (*recommend.WeatherObservation, error) {
		return c.fetch(ctx, la, lo)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.WeatherRequestsTotal.WithLabelValues("breaker_open").Inc()
		} else {
			metrics.WeatherRequestsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	c.storeObservation(key, obs)
	metrics.WeatherRequestsTotal.WithLabelValues("ok").Inc()
	return obs, nil
}

// forecastResponse is the subset of the Open-Meteo current-weather payload
// the client consumes.
type forecastResponse struct {
	Current struct {
		Temperature2m            float64 `json:"temperature_2m"`
		PrecipitationProbability int     `json:"precipitation_probability"`
		WeatherCode              int     `json:"weather_code"`
	} `json:"current"`
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (*recommend.WeatherObservation, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid weather base URL: %w", err)
	}
	endpoint = endpoint.JoinPath("v1", "forecast")

	q := endpoint.Query()
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("current", "temperature_2m,precipitation_probability,weather_code")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	obs := &recommend.WeatherObservation{
		Condition:          ConditionFromWMOCode(payload.Current.WeatherCode),
		TemperatureC:       payload.Current.Temperature2m,
		RainProbabilityPct: payload.Current.PrecipitationProbability,
	}

	c.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("condition", string(obs.Condition)).
		Float64("temp_c", obs.TemperatureC).
		Msg("Fetched weather observation")

	return obs, nil
}

func (c *Client) cachedObservation(key string) (*recommend.WeatherObservation, bool) {
	if c.cfg.CacheTTL <= 0 {
		return nil, false
	}
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.cache, key)
		return nil, false
	}
	obs := entry.obs
	return &obs, true
}

func (c *Client) storeObservation(key string, obs *recommend.WeatherObservation) {
	if c.cfg.CacheTTL <= 0 || obs == nil {
		return
	}
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache[key] = cacheEntry{obs: *obs, expires: c.now().Add(c.cfg.CacheTTL)}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
