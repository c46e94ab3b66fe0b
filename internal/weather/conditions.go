// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package weather

import "github.com/stayloop/concierge/internal/recommend"

// ConditionFromWMOCode maps a WMO 4677 weather interpretation code, as
// reported by Open-Meteo, onto the engine's condition vocabulary. Codes
// outside the table map to ConditionUnknown, which scores neutrally.
func ConditionFromWMOCode(code int) recommend.WeatherCondition {
	switch {
	case code == 0:
		return recommend.ConditionSunny
	case code == 1 || code == 2:
		return recommend.ConditionPartlyCloudy
	case code == 3:
		return recommend.ConditionCloudy
	case code == 45 || code == 48:
		return recommend.ConditionFoggy
	case code >= 51 && code <= 67:
		// Drizzle and rain, including freezing variants.
		return recommend.ConditionRainy
	case code >= 71 && code <= 77:
		return recommend.ConditionSnowy
	case code >= 80 && code <= 82:
		// Rain showers.
		return recommend.ConditionRainy
	case code == 85 || code == 86:
		// Snow showers.
		return recommend.ConditionSnowy
	case code >= 95 && code <= 99:
		// Thunderstorms score as rain for suitability purposes.
		return recommend.ConditionRainy
	default:
		return recommend.ConditionUnknown
	}
}
