// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import (
	"testing"
	"time"

	"github.com/stayloop/concierge/internal/recommend"
)

// TestSeasonFitScore covers the match grades and the out-of-season hard
// filter.
func TestSeasonFitScore(t *testing.T) {
	t.Parallel()

	winterEnv := recommend.EnvironmentContext{
		ReferenceDate: time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC),
		Season:        recommend.SeasonWinter,
	}

	tests := []struct {
		name    string
		rule    recommend.SeasonRule
		want    float64
		exclude bool
	}{
		{
			name: "exact named season",
			rule: recommend.SeasonRule{Kind: recommend.SeasonRuleNamed, Season: recommend.SeasonWinter},
			want: 15,
		},
		{
			name: "wrapped month range",
			rule: recommend.SeasonRule{Kind: recommend.SeasonRuleRange, StartMonth: 11, EndMonth: 4},
			want: 10,
		},
		{
			name: "year round",
			rule: recommend.AllSeasons(),
			want: 4,
		},
		{
			name:    "wrong named season excludes",
			rule:    recommend.SeasonRule{Kind: recommend.SeasonRuleNamed, Season: recommend.SeasonSummer},
			exclude: true,
		},
		{
			name:    "range not covering january excludes",
			rule:    recommend.SeasonRule{Kind: recommend.SeasonRuleRange, StartMonth: 5, EndMonth: 9},
			exclude: true,
		},
	}

	f := NewSeasonFit()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := recommend.CatalogItem{SeasonRule: tt.rule}
			res := f.Score(&item, &recommend.GuestContext{}, &winterEnv)
			if res.HardExclude != tt.exclude {
				t.Fatalf("exclude = %v, want %v", res.HardExclude, tt.exclude)
			}
			if !tt.exclude && res.Contribution != tt.want {
				t.Errorf("contribution = %v, want %v", res.Contribution, tt.want)
			}
		})
	}
}
