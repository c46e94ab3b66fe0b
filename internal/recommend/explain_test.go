// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

import "testing"

// TestRenderReasons verifies ordering, deduplication, unknown-tag dropping
// and the fallback for empty results.
func TestRenderReasons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{
			name: "order preserved",
			tags: []string{ReasonWeatherIndoor, ReasonLabelMatch, ReasonPriceWithin},
			want: []string{
				"🏠 Weather-independent indoor activity",
				"💡 Matches your interests",
				"💶 Fits your budget",
			},
		},
		{
			name: "duplicates collapse",
			tags: []string{ReasonLabelMatch, ReasonLabelMatch},
			want: []string{"💡 Matches your interests"},
		},
		{
			name: "distinct indoor tags both render",
			tags: []string{ReasonWeatherIndoor, ReasonProximityIndoor},
			want: []string{
				"🏠 Weather-independent indoor activity",
				"🏠 Plenty of indoor space",
			},
		},
		{
			name: "unknown tags dropped",
			tags: []string{"nonsense.tag", ReasonSeasonExact},
			want: []string{"🗓 In season right now"},
		},
		{
			name: "empty input yields fallback",
			tags: nil,
			want: []string{"⭐ Popular with guests"},
		},
		{
			name: "all unknown yields fallback",
			tags: []string{"x", "y"},
			want: []string{"⭐ Popular with guests"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := RenderReasons(tt.tags)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d reasons, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("reason %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestReasonStringsCoverAllTags guards against adding a tag constant
// without a display mapping.
func TestReasonStringsCoverAllTags(t *testing.T) {
	t.Parallel()

	tags := []string{
		ReasonWeatherMatch, ReasonWeatherIndoor, ReasonWeatherAll,
		ReasonSeasonExact, ReasonSeasonRange, ReasonSeasonAll,
		ReasonProfileCategory, ReasonLabelMatch,
		ReasonTimeFit,
		ReasonPriceWithin, ReasonPricePremium,
		ReasonProximityClose, ReasonProximityIndoor, ReasonProximityOutdoor,
		ReasonCuratedMustSee, ReasonCuratedHighlyRec, ReasonCuratedRecommended,
		ReasonCuratedPopular, ReasonCuratedAward,
	}

	for _, tag := range tags {
		if _, ok := reasonStrings[tag]; !ok {
			t.Errorf("tag %q has no display string", tag)
		}
	}
}
