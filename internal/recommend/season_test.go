// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

import (
	"testing"
	"time"
)

// TestSeasonForMonth verifies the canonical month-to-season mapping.
func TestSeasonForMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.December, SeasonWinter},
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.March, SeasonSpring},
		{time.April, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.July, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonAutumn},
		{time.October, SeasonAutumn},
		{time.November, SeasonAutumn},
	}

	for _, tt := range tests {
		if got := SeasonForMonth(tt.month); got != tt.want {
			t.Errorf("SeasonForMonth(%v) = %v, want %v", tt.month, got, tt.want)
		}
	}
}

// TestTimeOfDayForHour verifies the hour bucketing.
func TestTimeOfDayForHour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, TimeNight},
		{4, TimeNight},
		{5, TimeMorning},
		{10, TimeMorning},
		{11, TimeAfternoon},
		{16, TimeAfternoon},
		{17, TimeEvening},
		{21, TimeEvening},
		{22, TimeNight},
		{23, TimeNight},
	}

	for _, tt := range tests {
		if got := TimeOfDayForHour(tt.hour); got != tt.want {
			t.Errorf("TimeOfDayForHour(%d) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

// TestMatchSeasonWraparound verifies month ranges that cross the year
// boundary, e.g. a ski-season rule running November through April.
func TestMatchSeasonWraparound(t *testing.T) {
	t.Parallel()

	rule := SeasonRule{Kind: SeasonRuleRange, StartMonth: 11, EndMonth: 4}

	inMonths := []time.Month{time.November, time.December, time.January, time.February, time.March, time.April}
	for _, m := range inMonths {
		if got := MatchSeason(rule, SeasonForMonth(m), m); got != SeasonMatchRange {
			t.Errorf("MatchSeason([11,4], month %v) = %v, want SeasonMatchRange", m, got)
		}
	}

	outMonths := []time.Month{time.May, time.June, time.July, time.August, time.September, time.October}
	for _, m := range outMonths {
		if got := MatchSeason(rule, SeasonForMonth(m), m); got != SeasonMatchNone {
			t.Errorf("MatchSeason([11,4], month %v) = %v, want SeasonMatchNone", m, got)
		}
	}
}

// TestMatchSeasonKinds covers the non-range rule kinds.
func TestMatchSeasonKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rule   SeasonRule
		season Season
		month  time.Month
		want   SeasonMatch
	}{
		{
			name:   "all seasons always match",
			rule:   AllSeasons(),
			season: SeasonWinter,
			month:  time.January,
			want:   SeasonMatchAll,
		},
		{
			name:   "named season exact match",
			rule:   SeasonRule{Kind: SeasonRuleNamed, Season: SeasonSummer},
			season: SeasonSummer,
			month:  time.July,
			want:   SeasonMatchExact,
		},
		{
			name:   "named season mismatch",
			rule:   SeasonRule{Kind: SeasonRuleNamed, Season: SeasonSummer},
			season: SeasonWinter,
			month:  time.January,
			want:   SeasonMatchNone,
		},
		{
			name:   "plain range in bounds",
			rule:   SeasonRule{Kind: SeasonRuleRange, StartMonth: 6, EndMonth: 8},
			season: SeasonSummer,
			month:  time.July,
			want:   SeasonMatchRange,
		},
		{
			name:   "plain range out of bounds",
			rule:   SeasonRule{Kind: SeasonRuleRange, StartMonth: 6, EndMonth: 8},
			season: SeasonWinter,
			month:  time.January,
			want:   SeasonMatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MatchSeason(tt.rule, tt.season, tt.month); got != tt.want {
				t.Errorf("MatchSeason() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSeasonForDate verifies the date convenience wrapper.
func TestSeasonForDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, time.December, 24, 12, 0, 0, 0, time.UTC)
	if got := SeasonForDate(d); got != SeasonWinter {
		t.Errorf("SeasonForDate(Dec 24) = %v, want winter", got)
	}
}
