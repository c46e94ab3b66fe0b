// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// BaseScore is the starting score every candidate receives before factor
// contributions are summed. The total is clamped to [MinScore, MaxScore].
const (
	BaseScore = 50.0
	MinScore  = 0.0
	MaxScore  = 100.0
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights are per-factor multipliers applied to factor contributions.
	// A weight of zero disables the factor.
	Weights FactorWeights `json:"weights" koanf:"weights"`

	// Diversity contains mixed-list selection parameters.
	Diversity DiversityConfig `json:"diversity" koanf:"diversity"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Jitter contains variety-jitter parameters.
	Jitter JitterConfig `json:"jitter" koanf:"jitter"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// FactorWeights are the relative multipliers for each factor scorer.
// Contributions are in score points, so 1.0 keeps a factor's documented
// point values and 0 disables it.
type FactorWeights struct {
	Weather   float64 `json:"weather" koanf:"weather"`
	Season    float64 `json:"season" koanf:"season"`
	Profile   float64 `json:"profile" koanf:"profile"`
	TimeOfDay float64 `json:"time_of_day" koanf:"time_of_day"`
	Price     float64 `json:"price" koanf:"price"`
	Proximity float64 `json:"proximity" koanf:"proximity"`
	Relevance float64 `json:"relevance" koanf:"relevance"`
}

// ToMap returns the weights keyed by factor name.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w FactorWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"weather":     w.Weather,
		"season":      w.Season,
		"profile":     w.Profile,
		"time_of_day": w.TimeOfDay,
		"price":       w.Price,
		"proximity":   w.Proximity,
		"relevance":   w.Relevance,
	}
}

// DiversityConfig contains mixed-list selection parameters.
type DiversityConfig struct {
	// PerKindCap is the maximum number of items of one kind in a
	// mixed-kind result list. Applied only when the request blends kinds.
	PerKindCap int `json:"per_kind_cap" koanf:"per_kind_cap"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is the result size when the request leaves Limit zero.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit caps the requested result size.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// MaxCandidates bounds the number of catalog items scored.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`

	// WeatherTimeout bounds the weather-provider call. On expiry the
	// neutral context is substituted; the request never fails.
	WeatherTimeout time.Duration `json:"weather_timeout" koanf:"weather_timeout"`

	// ScoreWorkers is the number of concurrent scoring workers.
	// Zero means runtime.NumCPU().
	ScoreWorkers int `json:"score_workers" koanf:"score_workers"`
}

// JitterConfig contains variety-jitter parameters. Jitter breaks ordering
// ties between near-equal items across repeated calls; it is bounded and
// never large enough to move an item past a materially better one.
type JitterConfig struct {
	// Enabled turns jitter on. Deterministic tests leave it off.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// MaxPoints is the jitter upper bound in score points (at most 5%
	// of the score range).
	MaxPoints float64 `json:"max_points" koanf:"max_points"`

	// Seed fixes the jitter seed for reproducibility. Zero seeds from
	// the request time.
	Seed int64 `json:"seed" koanf:"seed"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled turns the in-memory response cache on. The cache is
	// bypassed while jitter is enabled so repeated calls stay varied.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is how long a cached response stays valid.
	TTL time.Duration `json:"ttl" koanf:"ttl"`

	// MaxEntries bounds the cache size.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: FactorWeights{
			Weather:   1.0,
			Season:    1.0,
			Profile:   1.0,
			TimeOfDay: 1.0,
			Price:     1.0,
			Proximity: 1.0,
			Relevance: 1.0,
		},
		Diversity: DiversityConfig{
			PerKindCap: 2,
		},
		Limits: LimitsConfig{
			DefaultLimit:   10,
			MaxLimit:       50,
			MaxCandidates:  500,
			WeatherTimeout: 3 * time.Second,
			ScoreWorkers:   0,
		},
		Jitter: JitterConfig{
			Enabled:   true,
			MaxPoints: 3.0,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        2 * time.Minute,
			MaxEntries: 512,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Diversity.PerKindCap < 1 {
		return fmt.Errorf("diversity.per_kind_cap must be >= 1, got %d", c.Diversity.PerKindCap)
	}
	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be >= 1, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit (%d) must be >= limits.default_limit (%d)",
			c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.MaxCandidates < 1 {
		return fmt.Errorf("limits.max_candidates must be >= 1, got %d", c.Limits.MaxCandidates)
	}
	if c.Limits.WeatherTimeout <= 0 {
		return fmt.Errorf("limits.weather_timeout must be positive, got %s", c.Limits.WeatherTimeout)
	}
	if c.Jitter.MaxPoints < 0 || c.Jitter.MaxPoints > (MaxScore-MinScore)*0.05 {
		return fmt.Errorf("jitter.max_points must be in [0, %.1f], got %.2f",
			(MaxScore-MinScore)*0.05, c.Jitter.MaxPoints)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be >= 1, got %d", c.Cache.MaxEntries)
		}
	}
	wm := c.Weights.ToMap()
	for name, w := range wm {
		if w < 0 {
			return fmt.Errorf("weights.%s must be >= 0, got %.2f", name, w)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		cp := *c
		return &cp
	}
	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		cp := *c
		return &cp
	}
	return clone
}
