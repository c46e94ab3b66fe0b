// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors surfaced by the engine. Weather and guest lookup failures
// are recovered internally and never reach the caller.
var (
	// ErrInvalidRequest indicates a request missing required fields (property id).
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrCatalogUnavailable indicates the catalog store could not be queried.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrGuestNotFound is returned by GuestProvider implementations when no
	// stored profile exists for a guest id. The resolver recovers from it.
	ErrGuestNotFound = errors.New("guest not found")
)

// ItemKind classifies a recommendable catalog entity.
type ItemKind string

const (
	// KindActivity is an on-property or nearby activity.
	KindActivity ItemKind = "activity"
	// KindDining is a restaurant, bar, or other dining venue.
	KindDining ItemKind = "dining"
	// KindEvent is a dated happening (concert, tasting, market).
	KindEvent ItemKind = "event"
)

// Valid reports whether the kind is one of the known catalog kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case KindActivity, KindDining, KindEvent:
		return true
	default:
		return false
	}
}

// AllKinds returns every catalog kind, in stable order.
func AllKinds() []ItemKind {
	return []ItemKind{KindActivity, KindDining, KindEvent}
}

// Season is a meteorological season derived from the reference date.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// Valid reports whether the season is one of the four known seasons.
func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn:
		return true
	default:
		return false
	}
}

// WeatherCondition is the closed vocabulary of current-weather conditions.
// ConditionUnknown is the neutral value used when the provider is unavailable.
type WeatherCondition string

const (
	ConditionSunny        WeatherCondition = "sunny"
	ConditionPartlyCloudy WeatherCondition = "partly_cloudy"
	ConditionCloudy       WeatherCondition = "cloudy"
	ConditionRainy        WeatherCondition = "rainy"
	ConditionSnowy        WeatherCondition = "snowy"
	ConditionFoggy        WeatherCondition = "foggy"
	ConditionUnknown      WeatherCondition = "unknown"
)

// TimeOfDay buckets the reference time into coarse dayparts.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// RelevanceTier is the curated editorial ranking of an item, independent of
// guest or weather context.
type RelevanceTier string

const (
	TierMustSee           RelevanceTier = "must_see"
	TierHighlyRecommended RelevanceTier = "highly_recommended"
	TierRecommended       RelevanceTier = "recommended"
	TierPopular           RelevanceTier = "popular"
	TierNone              RelevanceTier = "none"
)

// ProfileType classifies the travelling party.
type ProfileType string

const (
	ProfileFamily    ProfileType = "family"
	ProfileCouple    ProfileType = "couple"
	ProfileAdventure ProfileType = "adventure"
	ProfileWellness  ProfileType = "wellness"
	ProfileBusiness  ProfileType = "business"
	ProfileUnknown   ProfileType = "unknown"
)

// Valid reports whether p is one of the known profile types.
func (p ProfileType) Valid() bool {
	switch p {
	case ProfileFamily, ProfileCouple, ProfileAdventure, ProfileWellness,
		ProfileBusiness, ProfileUnknown:
		return true
	default:
		return false
	}
}

// BudgetTier is the guest's spending appetite.
type BudgetTier string

const (
	BudgetLow      BudgetTier = "budget"
	BudgetModerate BudgetTier = "moderate"
	BudgetPremium  BudgetTier = "premium"
)

// NormalizeBudgetTier maps the tier synonyms accepted on input ("medium",
// "luxury") onto the canonical tiers. Unrecognized values fall back to
// moderate.
func NormalizeBudgetTier(s string) BudgetTier {
	switch BudgetTier(s) {
	case BudgetLow:
		return BudgetLow
	case BudgetModerate, "medium":
		return BudgetModerate
	case BudgetPremium, "luxury":
		return BudgetPremium
	default:
		return BudgetModerate
	}
}

// WeatherTag is a weather-suitability tag on a catalog item. Besides the
// named conditions, two special tags exist: TagIndoor marks items sheltered
// from weather, TagAllWeather marks items suitable in any condition.
type WeatherTag string

const (
	// TagIndoor marks an indoor item, favored in rain, snow, or cold.
	TagIndoor WeatherTag = "indoor"
	// TagAllWeather marks an item suitable regardless of conditions.
	TagAllWeather WeatherTag = "all_weather"
)

// SeasonRuleKind discriminates how a catalog item's season rule matches.
type SeasonRuleKind int

const (
	// SeasonRuleAll matches every season (the "all" sentinel).
	SeasonRuleAll SeasonRuleKind = iota
	// SeasonRuleNamed matches one explicit season.
	SeasonRuleNamed
	// SeasonRuleRange matches a [start, end] month range that may wrap
	// across the year boundary (e.g. November through April).
	SeasonRuleRange
)

// SeasonRule describes when a catalog item is seasonally available.
type SeasonRule struct {
	// Kind selects which of the fields below applies.
	Kind SeasonRuleKind `json:"kind"`

	// Season is the explicit season for SeasonRuleNamed.
	Season Season `json:"season,omitempty"`

	// StartMonth and EndMonth (1-12, inclusive) bound a SeasonRuleRange.
	// StartMonth > EndMonth means the range wraps the year boundary.
	StartMonth int `json:"start_month,omitempty"`
	EndMonth   int `json:"end_month,omitempty"`
}

// AllSeasons is the rule that matches year-round.
func AllSeasons() SeasonRule {
	return SeasonRule{Kind: SeasonRuleAll}
}

// CatalogItem is the normalized, source-independent representation of a
// recommendable entity. The catalog store owns these snapshots; the engine
// never mutates them.
type CatalogItem struct {
	// ID uniquely identifies the item within the catalog.
	ID string `json:"id"`

	// PropertyID scopes the item to one property.
	PropertyID string `json:"property_id"`

	// Kind is the catalog kind (activity, dining, event).
	Kind ItemKind `json:"kind"`

	// Title is the display title.
	Title string `json:"title"`

	// Description is free-text display copy.
	Description string `json:"description,omitempty"`

	// Category is the kind-specific category tag (activity type, cuisine,
	// or event category).
	Category string `json:"category,omitempty"`

	// WeatherSuitability lists conditions and special tags the item suits.
	WeatherSuitability []WeatherTag `json:"weather_suitability,omitempty"`

	// Labels are free-form activity / target-guest labels.
	Labels []string `json:"labels,omitempty"`

	// SeasonRule describes seasonal availability.
	SeasonRule SeasonRule `json:"season_rule"`

	// WeatherDependent items are excluded outright when the temperature
	// falls outside [MinTempC, MaxTempC].
	WeatherDependent bool     `json:"weather_dependent,omitempty"`
	MinTempC         *float64 `json:"min_temp_c,omitempty"`
	MaxTempC         *float64 `json:"max_temp_c,omitempty"`

	// PriceTier is the ordinal price band 1 (cheapest) through 5.
	PriceTier int `json:"price_tier"`

	// RelevanceTier is the curated editorial tier.
	RelevanceTier RelevanceTier `json:"relevance_tier"`

	// Awards is free text naming any awards; non-empty earns a boost.
	Awards string `json:"awards,omitempty"`

	// WalkMinutes is the walking time from the property, when known.
	WalkMinutes *int `json:"walk_minutes,omitempty"`

	// IndoorCapacity and OutdoorCapacity are nullable non-negative seat
	// or participant counts.
	IndoorCapacity  *int `json:"indoor_capacity,omitempty"`
	OutdoorCapacity *int `json:"outdoor_capacity,omitempty"`

	// DisplayOrder is the editorial sort hint used for tie-breaking.
	DisplayOrder int `json:"display_order"`

	// Active indicates the item may be recommended at all.
	Active bool `json:"active"`
}

// HasWeatherTag reports whether the item carries the given suitability tag.
func (c *CatalogItem) HasWeatherTag(tag WeatherTag) bool {
	for _, t := range c.WeatherSuitability {
		if t == tag {
			return true
		}
	}
	return false
}

// HasLabel reports whether the item carries the given label.
func (c *CatalogItem) HasLabel(label string) bool {
	for _, l := range c.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// GuestContext is the resolved guest side of a scoring context. It is built
// once per request and never mutated by the engine.
type GuestContext struct {
	// GuestID is the stored guest identifier, empty for anonymous requests.
	GuestID string `json:"guest_id,omitempty"`

	// ProfileType classifies the party (family, couple, ...).
	ProfileType ProfileType `json:"profile_type"`

	// Labels are free-form interest labels (e.g. "boys_weekend", "chill").
	Labels []string `json:"labels,omitempty"`

	// Dietary lists dietary needs; carried for display, not scored.
	Dietary []string `json:"dietary,omitempty"`

	// Accessibility lists accessibility needs; carried for display.
	Accessibility []string `json:"accessibility,omitempty"`

	// BudgetTier is the spending appetite.
	BudgetTier BudgetTier `json:"budget_tier"`

	// Adults and Children describe the party composition.
	Adults   int `json:"adults,omitempty"`
	Children int `json:"children,omitempty"`
}

// HasLabel reports whether the guest carries the given interest label.
func (g *GuestContext) HasLabel(label string) bool {
	for _, l := range g.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// EnvironmentContext is the resolved environmental side of a scoring
// context: reference date, derived season and daypart, and best-effort
// weather. Weather fields degrade to neutral values when the provider is
// unavailable.
type EnvironmentContext struct {
	// ReferenceDate anchors season and daypart derivation.
	ReferenceDate time.Time `json:"reference_date"`

	// Season is derived from ReferenceDate's month.
	Season Season `json:"season"`

	// Condition is the current weather condition, ConditionUnknown when
	// the provider could not be reached.
	Condition WeatherCondition `json:"condition"`

	// TemperatureC is the current temperature in Celsius.
	TemperatureC float64 `json:"temperature_c"`

	// RainProbabilityPct is the precipitation probability (0-100).
	RainProbabilityPct int `json:"rain_probability_pct"`

	// TimeOfDay is the daypart bucket of ReferenceDate.
	TimeOfDay TimeOfDay `json:"time_of_day"`

	// WeatherDegraded is true when the neutral fallback was substituted
	// for a failed provider call.
	WeatherDegraded bool `json:"weather_degraded,omitempty"`
}

// PoorWeather reports whether current conditions favor indoor items:
// rain, snow, or cold.
func (e *EnvironmentContext) PoorWeather() bool {
	if e.Condition == ConditionRainy || e.Condition == ConditionSnowy {
		return true
	}
	if e.Condition != ConditionUnknown && e.TemperatureC < 5 {
		return true
	}
	return false
}

// GoodWeather reports whether current conditions favor outdoor items.
func (e *EnvironmentContext) GoodWeather() bool {
	switch e.Condition {
	case ConditionSunny, ConditionPartlyCloudy:
		return e.TemperatureC >= 15
	default:
		return false
	}
}

// ScoredItem is a catalog item with its aggregated score, per-factor
// breakdown, and render-ready reasons.
type ScoredItem struct {
	// Item is the catalog item snapshot.
	Item CatalogItem `json:"item"`

	// Score is the total score clamped to [0, 100].
	Score float64 `json:"score"`

	// Breakdown maps factor name to its contribution.
	Breakdown map[string]float64 `json:"breakdown,omitempty"`

	// Reasons are de-duplicated display strings in factor evaluation order.
	Reasons []string `json:"reasons"`
}

// WeatherOverride carries caller-supplied weather, bypassing the provider.
type WeatherOverride struct {
	Condition          WeatherCondition `json:"condition"`
	TemperatureC       float64          `json:"temperature_c"`
	RainProbabilityPct int              `json:"rain_probability_pct"`
}

// Request describes one recommendation request.
type Request struct {
	// PropertyID scopes the catalog fetch. Required.
	PropertyID string `json:"property_id"`

	// Kinds limits the candidate kinds. Empty means mixed (all kinds),
	// which also activates the per-kind diversity cap.
	Kinds []ItemKind `json:"kinds,omitempty"`

	// GuestID selects a stored guest profile, when present.
	GuestID string `json:"guest_id,omitempty"`

	// Labels override the stored guest labels when non-nil.
	Labels []string `json:"labels,omitempty"`

	// ProfileType overrides or supplies the party profile.
	ProfileType ProfileType `json:"profile_type,omitempty"`

	// BudgetTier overrides or supplies the budget tier.
	BudgetTier BudgetTier `json:"budget_tier,omitempty"`

	// Date overrides the reference date (defaults to now).
	Date time.Time `json:"date,omitempty"`

	// Season overrides the derived season when non-empty.
	Season Season `json:"season,omitempty"`

	// Weather overrides the provider lookup when non-nil.
	Weather *WeatherOverride `json:"weather,omitempty"`

	// Latitude and Longitude locate the weather lookup; the provider's
	// reference location is used when absent.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Limit is the maximum number of items to return.
	// Defaults to Config.Limits.DefaultLimit if zero.
	Limit int `json:"limit,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Mixed reports whether the request blends multiple kinds, which activates
// the per-kind diversity cap on the result list.
func (r *Request) Mixed() bool {
	return len(r.Kinds) != 1
}

// ResolvedContext echoes the context the engine scored against, for
// caller-side display and debugging.
type ResolvedContext struct {
	Guest       GuestContext       `json:"guest"`
	Environment EnvironmentContext `json:"environment"`
}

// Response is the result of one recommendation request.
type Response struct {
	// Items is the ranked, diversity-capped item list.
	Items []ScoredItem `json:"items"`

	// Context is the resolved context used for scoring.
	Context ResolvedContext `json:"context"`

	// TotalCandidates is the number of active items considered, including
	// those removed by hard filters.
	TotalCandidates int `json:"total_candidates"`

	// HardFiltered is the number of candidates excluded before scoring.
	HardFiltered int `json:"hard_filtered"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// FactorsUsed lists the factor scorers that contributed.
	FactorsUsed []string `json:"factors_used"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// CatalogProvider supplies active catalog items scoped to one property.
// Typically implemented by the database layer; the interface keeps this
// package free of storage imports.
type CatalogProvider interface {
	// GetCatalogItems returns active items for the property, limited to
	// the given kinds (all kinds when empty).
	GetCatalogItems(ctx context.Context, propertyID string, kinds []ItemKind) ([]CatalogItem, error)
}

// GuestProfile is a stored guest profile as returned by the guest store.
type GuestProfile struct {
	GuestID       string
	ProfileType   ProfileType
	Labels        []string
	Dietary       []string
	Accessibility []string
	BudgetTier    BudgetTier
	Adults        int
	Children      int
}

// GuestProvider supplies stored guest profiles. Implementations return
// ErrGuestNotFound for unknown guests; the resolver recovers from it.
type GuestProvider interface {
	GetGuestProfile(ctx context.Context, guestID string) (*GuestProfile, error)
}

// WeatherObservation is a best-effort current-weather reading.
type WeatherObservation struct {
	Condition          WeatherCondition `json:"condition"`
	TemperatureC       float64          `json:"temperature_c"`
	RainProbabilityPct int              `json:"rain_probability_pct"`
}

// WeatherProvider supplies current weather for a location. Coordinates are
// optional; implementations fall back to a fixed reference location.
// Provider failures must be returned as errors, never panics; the resolver
// substitutes the neutral context.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon *float64) (*WeatherObservation, error)
}

// FactorScorer is one independent scoring factor. Implementations must be
// pure: no I/O, no shared mutable state, deterministic for fixed inputs.
// Variety jitter is applied by the engine itself, seeded per request, so
// factor implementations stay fully deterministic.
type FactorScorer interface {
	// Name returns the factor identifier used in score breakdowns
	// (e.g. "weather", "season", "price").
	Name() string

	// Score returns the bounded contribution for one item, zero or more
	// reason tags, and whether the item must be excluded outright.
	// A hard exclusion discards the item before any score is recorded.
	Score(item *CatalogItem, guest *GuestContext, env *EnvironmentContext) FactorResult
}

// FactorResult is the outcome of one factor evaluation.
type FactorResult struct {
	// Contribution is the signed score contribution.
	Contribution float64

	// Reasons are reason tags consumed by the explanation renderer.
	Reasons []string

	// HardExclude removes the item from the candidate set entirely.
	HardExclude bool
}
