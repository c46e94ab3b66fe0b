// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import "github.com/stayloop/concierge/internal/recommend"

// Point values for the weather factor.
const (
	weatherMatchPoints  = 18.0 // suitability lists the current condition
	weatherIndoorPoints = 14.0 // indoor item during rain, snow, or cold
	weatherAllPoints    = 10.0 // all_weather tag
	weatherNeutral      = 2.0  // no match, small positive
)

// Weather scores how well an item suits the current weather, and hard
// excludes weather-dependent items when the temperature falls outside their
// operating range. When the provider is degraded it is fully neutral: no
// contribution, no exclusion. A successful observation with an unmapped
// weather code still carries a real temperature, so the hard filter
// applies to it.
type Weather struct{}

// NewWeather creates the weather factor.
func NewWeather() *Weather { return &Weather{} }

// Name returns the factor identifier.
func (*Weather) Name() string { return "weather" }

// Score implements recommend.FactorScorer.
func (*Weather) Score(item *recommend.CatalogItem, _ *recommend.GuestContext, env *recommend.EnvironmentContext) recommend.FactorResult {
	if env.WeatherDegraded {
		return recommend.FactorResult{}
	}

	if item.WeatherDependent {
		if item.MinTempC != nil && env.TemperatureC < *item.MinTempC {
			return recommend.FactorResult{HardExclude: true}
		}
		if item.MaxTempC != nil && env.TemperatureC > *item.MaxTempC {
			return recommend.FactorResult{HardExclude: true}
		}
	}

	switch {
	case item.HasWeatherTag(recommend.WeatherTag(env.Condition)):
		return recommend.FactorResult{
			Contribution: weatherMatchPoints,
			Reasons:      []string{recommend.ReasonWeatherMatch},
		}
	case env.PoorWeather() && item.HasWeatherTag(recommend.TagIndoor):
		return recommend.FactorResult{
			Contribution: weatherIndoorPoints,
			Reasons:      []string{recommend.ReasonWeatherIndoor},
		}
	case item.HasWeatherTag(recommend.TagAllWeather):
		return recommend.FactorResult{
			Contribution: weatherAllPoints,
			Reasons:      []string{recommend.ReasonWeatherAll},
		}
	default:
		return recommend.FactorResult{Contribution: weatherNeutral}
	}
}
