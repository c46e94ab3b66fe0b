// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import "github.com/stayloop/concierge/internal/recommend"

// categoryClass buckets item categories for the time-of-day bonus table.
type categoryClass int

const (
	classOther categoryClass = iota
	classDining
	classWellness
	classSports
	classCulture
	classNightlife
)

// timeBonus is the (category class, time of day) bonus table. Dining scores
// higher in the evening, wellness and sports in the morning, nightlife at
// night. Unlisted combinations contribute nothing.
var timeBonus = map[categoryClass]map[recommend.TimeOfDay]float64{
	classDining: {
		recommend.TimeAfternoon: 3,
		recommend.TimeEvening:   8,
	},
	classWellness: {
		recommend.TimeMorning:   8,
		recommend.TimeAfternoon: 3,
	},
	classSports: {
		recommend.TimeMorning:   6,
		recommend.TimeAfternoon: 4,
	},
	classCulture: {
		recommend.TimeMorning:   3,
		recommend.TimeAfternoon: 5,
	},
	classNightlife: {
		recommend.TimeEvening: 6,
		recommend.TimeNight:   8,
	},
}

// TimeOfDayFit scores how well an item's category suits the current
// daypart.
type TimeOfDayFit struct{}

// NewTimeOfDayFit creates the time-of-day factor.
func NewTimeOfDayFit() *TimeOfDayFit { return &TimeOfDayFit{} }

// Name returns the factor identifier.
func (*TimeOfDayFit) Name() string { return "time_of_day" }

// Score implements recommend.FactorScorer.
func (*TimeOfDayFit) Score(item *recommend.CatalogItem, _ *recommend.GuestContext, env *recommend.EnvironmentContext) recommend.FactorResult {
	bonus := timeBonus[classify(item)][env.TimeOfDay]
	if bonus == 0 {
		return recommend.FactorResult{}
	}
	return recommend.FactorResult{
		Contribution: bonus,
		Reasons:      []string{recommend.ReasonTimeFit},
	}
}

// classify buckets an item into a category class. Dining venues classify by
// kind; activities and events classify by category tag.
func classify(item *recommend.CatalogItem) categoryClass {
	if item.Kind == recommend.KindDining {
		return classDining
	}
	switch normalizeCategory(item.Category) {
	case "wellness", "spa", "yoga":
		return classWellness
	case "sports", "adventure", "outdoor":
		return classSports
	case "culture", "museum", "tours":
		return classCulture
	case "nightlife", "entertainment":
		return classNightlife
	default:
		return classOther
	}
}
