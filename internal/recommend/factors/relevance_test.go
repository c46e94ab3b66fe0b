// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import (
	"testing"

	"github.com/stayloop/concierge/internal/recommend"
)

// TestRelevanceScore covers the curated tier boost and the award bonus.
func TestRelevanceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item recommend.CatalogItem
		want float64
	}{
		{"must see", recommend.CatalogItem{RelevanceTier: recommend.TierMustSee}, 12},
		{"highly recommended", recommend.CatalogItem{RelevanceTier: recommend.TierHighlyRecommended}, 9},
		{"recommended", recommend.CatalogItem{RelevanceTier: recommend.TierRecommended}, 6},
		{"popular", recommend.CatalogItem{RelevanceTier: recommend.TierPopular}, 4},
		{"no tier", recommend.CatalogItem{RelevanceTier: recommend.TierNone}, 0},
		{"empty tier", recommend.CatalogItem{}, 0},
		{"award only", recommend.CatalogItem{Awards: "Best Alpine Spa 2025"}, 3},
		{
			"tier and award stack",
			recommend.CatalogItem{RelevanceTier: recommend.TierMustSee, Awards: "Michelin Star"},
			15,
		},
	}

	f := NewRelevance()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := f.Score(&tt.item, &recommend.GuestContext{}, &recommend.EnvironmentContext{})
			if res.Contribution != tt.want {
				t.Errorf("contribution = %v, want %v", res.Contribution, tt.want)
			}
		})
	}
}

// TestDefaultFactorOrder pins the canonical evaluation order.
func TestDefaultFactorOrder(t *testing.T) {
	t.Parallel()

	want := []string{"weather", "season", "profile", "time_of_day", "price", "proximity", "relevance"}
	got := Default()
	if len(got) != len(want) {
		t.Fatalf("expected %d factors, got %d", len(want), len(got))
	}
	for i, f := range got {
		if f.Name() != want[i] {
			t.Errorf("factor %d = %s, want %s", i, f.Name(), want[i])
		}
	}
}
