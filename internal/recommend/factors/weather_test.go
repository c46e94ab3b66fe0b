// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import (
	"testing"

	"github.com/stayloop/concierge/internal/recommend"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// TestWeatherScore covers the suitability tiers and the neutral degraded
// case.
func TestWeatherScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		item        recommend.CatalogItem
		env         recommend.EnvironmentContext
		want        float64
		wantReasons int
	}{
		{
			name: "condition tag match",
			item: recommend.CatalogItem{WeatherSuitability: []recommend.WeatherTag{"sunny"}},
			env:  recommend.EnvironmentContext{Condition: recommend.ConditionSunny, TemperatureC: 22},
			want: 18, wantReasons: 1,
		},
		{
			name: "indoor during snow",
			item: recommend.CatalogItem{WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor}},
			env:  recommend.EnvironmentContext{Condition: recommend.ConditionSnowy, TemperatureC: -3},
			want: 14, wantReasons: 1,
		},
		{
			name: "indoor in fine weather is not boosted",
			item: recommend.CatalogItem{WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor}},
			env:  recommend.EnvironmentContext{Condition: recommend.ConditionSunny, TemperatureC: 22},
			want: 2, wantReasons: 0,
		},
		{
			name: "all weather tag",
			item: recommend.CatalogItem{WeatherSuitability: []recommend.WeatherTag{recommend.TagAllWeather}},
			env:  recommend.EnvironmentContext{Condition: recommend.ConditionRainy, TemperatureC: 12},
			want: 10, wantReasons: 1,
		},
		{
			name: "no tags small neutral",
			item: recommend.CatalogItem{},
			env:  recommend.EnvironmentContext{Condition: recommend.ConditionCloudy, TemperatureC: 15},
			want: 2, wantReasons: 0,
		},
		{
			name: "degraded provider fully neutral",
			item: recommend.CatalogItem{WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor}},
			env:  recommend.EnvironmentContext{Condition: recommend.ConditionUnknown, WeatherDegraded: true},
			want: 0, wantReasons: 0,
		},
		{
			name: "unmapped condition with real observation scores normally",
			item: recommend.CatalogItem{WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor}},
			env:  recommend.EnvironmentContext{Condition: recommend.ConditionUnknown, TemperatureC: 15},
			want: 2, wantReasons: 0,
		},
		{
			name: "cold counts as poor weather",
			item: recommend.CatalogItem{WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor}},
			env:  recommend.EnvironmentContext{Condition: recommend.ConditionCloudy, TemperatureC: 2},
			want: 14, wantReasons: 1,
		},
	}

	f := NewWeather()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := f.Score(&tt.item, &recommend.GuestContext{}, &tt.env)
			if res.HardExclude {
				t.Fatal("unexpected hard exclusion")
			}
			if res.Contribution != tt.want {
				t.Errorf("contribution = %v, want %v", res.Contribution, tt.want)
			}
			if len(res.Reasons) != tt.wantReasons {
				t.Errorf("reasons = %v, want %d", res.Reasons, tt.wantReasons)
			}
		})
	}
}

// TestWeatherHardExclusion verifies the temperature operating range on
// weather-dependent items.
func TestWeatherHardExclusion(t *testing.T) {
	t.Parallel()

	f := NewWeather()

	item := recommend.CatalogItem{
		WeatherDependent: true,
		MinTempC:         floatPtr(10),
		MaxTempC:         floatPtr(30),
	}

	tests := []struct {
		name    string
		temp    float64
		exclude bool
	}{
		{"below minimum", 4, true},
		{"at minimum", 10, false},
		{"inside range", 20, false},
		{"at maximum", 30, false},
		{"above maximum", 35, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := recommend.EnvironmentContext{
				Condition:    recommend.ConditionSunny,
				TemperatureC: tt.temp,
			}
			res := f.Score(&item, &recommend.GuestContext{}, &env)
			if res.HardExclude != tt.exclude {
				t.Errorf("at %v°C: exclude = %v, want %v", tt.temp, res.HardExclude, tt.exclude)
			}
		})
	}

	// A provider outage must not empty the catalog: no range enforcement
	// while degraded.
	env := recommend.EnvironmentContext{Condition: recommend.ConditionUnknown, WeatherDegraded: true}
	if res := f.Score(&item, &recommend.GuestContext{}, &env); res.HardExclude {
		t.Error("degraded weather must not hard-exclude weather-dependent items")
	}

	// An observation with an unmapped weather code still carries a real
	// temperature; the range applies.
	env = recommend.EnvironmentContext{Condition: recommend.ConditionUnknown, TemperatureC: 4}
	if res := f.Score(&item, &recommend.GuestContext{}, &env); !res.HardExclude {
		t.Error("out-of-range temperature with unmapped condition must hard-exclude")
	}
}
