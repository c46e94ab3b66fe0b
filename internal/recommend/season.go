// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

import "time"

// SeasonForMonth maps a month to its season using the single canonical
// meteorological mapping: Dec-Feb winter, Mar-May spring, Jun-Aug summer,
// Sep-Nov autumn. All callers share this mapping; there is deliberately no
// second month-boundary rule anywhere in the engine.
func SeasonForMonth(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// SeasonForDate derives the season from a reference date.
func SeasonForDate(t time.Time) Season {
	return SeasonForMonth(t.Month())
}

// TimeOfDayForHour buckets an hour (0-23) into a daypart:
// 5-10 morning, 11-16 afternoon, 17-21 evening, otherwise night.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 11:
		return TimeMorning
	case hour >= 11 && hour < 17:
		return TimeAfternoon
	case hour >= 17 && hour < 22:
		return TimeEvening
	default:
		return TimeNight
	}
}

// SeasonMatch grades how a season rule matches the current environment.
type SeasonMatch int

const (
	// SeasonMatchNone means the rule excludes the current season.
	SeasonMatchNone SeasonMatch = iota
	// SeasonMatchAll means the rule is the year-round sentinel.
	SeasonMatchAll
	// SeasonMatchRange means the current month falls inside an explicit
	// month range.
	SeasonMatchRange
	// SeasonMatchExact means the rule names the current season.
	SeasonMatchExact
)

// MatchSeason evaluates a season rule against the current season and month.
// Month ranges wrap the year boundary when StartMonth > EndMonth: a rule of
// [11, 4] covers November through April.
func MatchSeason(rule SeasonRule, season Season, month time.Month) SeasonMatch {
	switch rule.Kind {
	case SeasonRuleAll:
		return SeasonMatchAll
	case SeasonRuleNamed:
		if rule.Season == season {
			return SeasonMatchExact
		}
		return SeasonMatchNone
	case SeasonRuleRange:
		if monthInRange(int(month), rule.StartMonth, rule.EndMonth) {
			return SeasonMatchRange
		}
		return SeasonMatchNone
	default:
		return SeasonMatchNone
	}
}

// monthInRange reports whether month m (1-12) falls in the inclusive range
// [start, end], wrapping across December when start > end.
func monthInRange(m, start, end int) bool {
	if start < 1 || start > 12 || end < 1 || end > 12 {
		return false
	}
	if start <= end {
		return m >= start && m <= end
	}
	// Wrapped range, e.g. 11..4 covers Nov, Dec, Jan, Feb, Mar, Apr.
	return m >= start || m <= end
}
