// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import (
	"testing"

	"github.com/stayloop/concierge/internal/recommend"
)

// TestProfileFitScore covers category preference, label matching with its
// cap, and the active mismatch penalties.
func TestProfileFitScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		item  recommend.CatalogItem
		guest recommend.GuestContext
		want  float64
	}{
		{
			name:  "family prefers family category",
			item:  recommend.CatalogItem{Category: "family"},
			guest: recommend.GuestContext{ProfileType: recommend.ProfileFamily},
			want:  10,
		},
		{
			name:  "category normalization handles spaces and case",
			item:  recommend.CatalogItem{Category: "Fine Dining"},
			guest: recommend.GuestContext{ProfileType: recommend.ProfileCouple},
			want:  10,
		},
		{
			name:  "single label match",
			item:  recommend.CatalogItem{Labels: []string{"wine", "views"}},
			guest: recommend.GuestContext{ProfileType: recommend.ProfileUnknown, Labels: []string{"wine"}},
			want:  8,
		},
		{
			name:  "label bonus capped at two matches",
			item:  recommend.CatalogItem{Labels: []string{"wine", "views", "music"}},
			guest: recommend.GuestContext{ProfileType: recommend.ProfileUnknown, Labels: []string{"wine", "views", "music"}},
			want:  16,
		},
		{
			name:  "category and labels stack",
			item:  recommend.CatalogItem{Category: "wellness", Labels: []string{"spa"}},
			guest: recommend.GuestContext{ProfileType: recommend.ProfileWellness, Labels: []string{"spa"}},
			want:  18,
		},
		{
			name:  "family penalized for adventure",
			item:  recommend.CatalogItem{Category: "adventure"},
			guest: recommend.GuestContext{ProfileType: recommend.ProfileFamily},
			want:  -12,
		},
		{
			name:  "wellness penalized for nightlife",
			item:  recommend.CatalogItem{Category: "nightlife"},
			guest: recommend.GuestContext{ProfileType: recommend.ProfileWellness},
			want:  -10,
		},
		{
			name:  "unknown profile is neutral on category",
			item:  recommend.CatalogItem{Category: "adventure"},
			guest: recommend.GuestContext{ProfileType: recommend.ProfileUnknown},
			want:  0,
		},
	}

	f := NewProfileFit()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := f.Score(&tt.item, &tt.guest, &recommend.EnvironmentContext{})
			if res.Contribution != tt.want {
				t.Errorf("contribution = %v, want %v", res.Contribution, tt.want)
			}
		})
	}
}

// TestProfileFitLabelReasonOnce verifies multiple label matches still emit
// a single label reason.
func TestProfileFitLabelReasonOnce(t *testing.T) {
	t.Parallel()

	item := recommend.CatalogItem{Labels: []string{"wine", "views"}}
	guest := recommend.GuestContext{Labels: []string{"wine", "views"}}

	res := NewProfileFit().Score(&item, &guest, &recommend.EnvironmentContext{})

	count := 0
	for _, r := range res.Reasons {
		if r == recommend.ReasonLabelMatch {
			count++
		}
	}
	if count != 1 {
		t.Errorf("label reason emitted %d times, want 1", count)
	}
}
