// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import "github.com/stayloop/concierge/internal/recommend"

// Point values for the proximity factor.
const (
	proximityVeryClose = 8.0 // within 5 minutes on foot
	proximityClose     = 5.0 // within 15 minutes
	proximityWalkable  = 2.0 // within 30 minutes
	proximityIndoorCap = 6.0 // indoor capacity during poor weather
	proximityOutdoor   = 4.0 // outdoor capacity during good weather
)

// Proximity rewards short walking distance and, conditionally on weather,
// capacity that suits the conditions: indoor space when it is wet or cold,
// outdoor space when it is fine.
type Proximity struct{}

// NewProximity creates the proximity factor.
func NewProximity() *Proximity { return &Proximity{} }

// Name returns the factor identifier.
func (*Proximity) Name() string { return "proximity" }

// Score implements recommend.FactorScorer.
func (*Proximity) Score(item *recommend.CatalogItem, _ *recommend.GuestContext, env *recommend.EnvironmentContext) recommend.FactorResult {
	var res recommend.FactorResult

	if item.WalkMinutes != nil {
		switch w := *item.WalkMinutes; {
		case w <= 5:
			res.Contribution += proximityVeryClose
			res.Reasons = append(res.Reasons, recommend.ReasonProximityClose)
		case w <= 15:
			res.Contribution += proximityClose
			res.Reasons = append(res.Reasons, recommend.ReasonProximityClose)
		case w <= 30:
			res.Contribution += proximityWalkable
		}
	}

	if env.PoorWeather() && item.IndoorCapacity != nil && *item.IndoorCapacity > 0 {
		res.Contribution += proximityIndoorCap
		res.Reasons = append(res.Reasons, recommend.ReasonProximityIndoor)
	}
	if env.GoodWeather() && item.OutdoorCapacity != nil && *item.OutdoorCapacity > 0 {
		res.Contribution += proximityOutdoor
		res.Reasons = append(res.Reasons, recommend.ReasonProximityOutdoor)
	}

	return res
}
