// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import (
	"testing"

	"github.com/stayloop/concierge/internal/recommend"
)

// TestProximityScore covers walking distance bands and the weather-aware
// capacity bonuses.
func TestProximityScore(t *testing.T) {
	t.Parallel()

	sunny := recommend.EnvironmentContext{Condition: recommend.ConditionSunny, TemperatureC: 22}
	rainy := recommend.EnvironmentContext{Condition: recommend.ConditionRainy, TemperatureC: 12}
	neutral := recommend.EnvironmentContext{Condition: recommend.ConditionCloudy, TemperatureC: 12}

	tests := []struct {
		name string
		item recommend.CatalogItem
		env  recommend.EnvironmentContext
		want float64
	}{
		{
			name: "very close",
			item: recommend.CatalogItem{WalkMinutes: intPtr(3)},
			env:  neutral,
			want: 8,
		},
		{
			name: "close",
			item: recommend.CatalogItem{WalkMinutes: intPtr(12)},
			env:  neutral,
			want: 5,
		},
		{
			name: "walkable",
			item: recommend.CatalogItem{WalkMinutes: intPtr(25)},
			env:  neutral,
			want: 2,
		},
		{
			name: "too far",
			item: recommend.CatalogItem{WalkMinutes: intPtr(45)},
			env:  neutral,
			want: 0,
		},
		{
			name: "no distance recorded",
			item: recommend.CatalogItem{},
			env:  neutral,
			want: 0,
		},
		{
			name: "indoor capacity in rain",
			item: recommend.CatalogItem{IndoorCapacity: intPtr(50)},
			env:  rainy,
			want: 6,
		},
		{
			name: "indoor capacity in sun contributes nothing",
			item: recommend.CatalogItem{IndoorCapacity: intPtr(50)},
			env:  sunny,
			want: 0,
		},
		{
			name: "outdoor capacity in sun",
			item: recommend.CatalogItem{OutdoorCapacity: intPtr(80)},
			env:  sunny,
			want: 4,
		},
		{
			name: "distance and indoor capacity stack",
			item: recommend.CatalogItem{WalkMinutes: intPtr(4), IndoorCapacity: intPtr(50)},
			env:  rainy,
			want: 14,
		},
	}

	f := NewProximity()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := f.Score(&tt.item, &recommend.GuestContext{}, &tt.env)
			if res.Contribution != tt.want {
				t.Errorf("contribution = %v, want %v", res.Contribution, tt.want)
			}
		})
	}
}
