// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import "github.com/stayloop/concierge/internal/recommend"

// Default returns the full factor set in canonical evaluation order.
// Reason tags concatenate in this order, so it is part of the observable
// contract: weather, season, profile, time of day, price, proximity,
// relevance.
func Default() []recommend.FactorScorer {
	return []recommend.FactorScorer{
		NewWeather(),
		NewSeasonFit(),
		NewProfileFit(),
		NewTimeOfDayFit(),
		NewPriceFit(),
		NewProximity(),
		NewRelevance(),
	}
}
