// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import (
	"testing"

	"github.com/stayloop/concierge/internal/recommend"
)

// TestTimeOfDayFitScore covers the daypart bonus table.
func TestTimeOfDayFitScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item recommend.CatalogItem
		tod  recommend.TimeOfDay
		want float64
	}{
		{
			name: "dining in the evening",
			item: recommend.CatalogItem{Kind: recommend.KindDining},
			tod:  recommend.TimeEvening,
			want: 8,
		},
		{
			name: "dining in the afternoon",
			item: recommend.CatalogItem{Kind: recommend.KindDining},
			tod:  recommend.TimeAfternoon,
			want: 3,
		},
		{
			name: "dining in the morning has no bonus",
			item: recommend.CatalogItem{Kind: recommend.KindDining},
			tod:  recommend.TimeMorning,
			want: 0,
		},
		{
			name: "spa in the morning",
			item: recommend.CatalogItem{Kind: recommend.KindActivity, Category: "spa"},
			tod:  recommend.TimeMorning,
			want: 8,
		},
		{
			name: "sports in the morning",
			item: recommend.CatalogItem{Kind: recommend.KindActivity, Category: "sports"},
			tod:  recommend.TimeMorning,
			want: 6,
		},
		{
			name: "culture in the afternoon",
			item: recommend.CatalogItem{Kind: recommend.KindActivity, Category: "museum"},
			tod:  recommend.TimeAfternoon,
			want: 5,
		},
		{
			name: "entertainment at night",
			item: recommend.CatalogItem{Kind: recommend.KindEvent, Category: "entertainment"},
			tod:  recommend.TimeNight,
			want: 8,
		},
		{
			name: "uncategorized is neutral",
			item: recommend.CatalogItem{Kind: recommend.KindActivity, Category: "misc"},
			tod:  recommend.TimeAfternoon,
			want: 0,
		},
	}

	f := NewTimeOfDayFit()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := recommend.EnvironmentContext{TimeOfDay: tt.tod}
			res := f.Score(&tt.item, &recommend.GuestContext{}, &env)
			if res.Contribution != tt.want {
				t.Errorf("contribution = %v, want %v", res.Contribution, tt.want)
			}
			if tt.want > 0 && len(res.Reasons) != 1 {
				t.Errorf("expected a time reason, got %v", res.Reasons)
			}
			if tt.want == 0 && len(res.Reasons) != 0 {
				t.Errorf("expected no reasons, got %v", res.Reasons)
			}
		})
	}
}
