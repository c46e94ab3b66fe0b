// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

// Reason tags emitted by the factor scorers. The explanation renderer maps
// these to display strings; tags without a mapping are dropped silently.
const (
	ReasonWeatherMatch  = "weather.match"
	ReasonWeatherIndoor = "weather.indoor"
	ReasonWeatherAll    = "weather.all"

	ReasonSeasonExact = "season.exact"
	ReasonSeasonRange = "season.range"
	ReasonSeasonAll   = "season.all"

	ReasonProfileCategory = "profile.category"
	ReasonLabelMatch      = "label.match"

	ReasonTimeFit = "time.fit"

	ReasonPriceWithin  = "price.within"
	ReasonPricePremium = "price.premium"

	ReasonProximityClose   = "proximity.close"
	ReasonProximityIndoor  = "proximity.indoor"
	ReasonProximityOutdoor = "proximity.outdoor"

	ReasonCuratedMustSee     = "curated.must_see"
	ReasonCuratedHighlyRec   = "curated.highly_recommended"
	ReasonCuratedRecommended = "curated.recommended"
	ReasonCuratedPopular     = "curated.popular"
	ReasonCuratedAward       = "curated.award"
)

// fallbackReason is substituted when an item ends with zero rendered
// reasons, so every recommendation carries at least one justification.
const fallbackReason = "⭐ Popular with guests"

// reasonStrings maps reason tags to emoji-prefixed display strings.
var reasonStrings = map[string]string{
	ReasonWeatherMatch:  "🌤 Great fit for today's weather",
	ReasonWeatherIndoor: "🏠 Weather-independent indoor activity",
	ReasonWeatherAll:    "🌦 Enjoyable in any weather",

	ReasonSeasonExact: "🗓 In season right now",
	ReasonSeasonRange: "🗓 Available this time of year",
	ReasonSeasonAll:   "🗓 Open year-round",

	ReasonProfileCategory: "👍 Suits your travel style",
	ReasonLabelMatch:      "💡 Matches your interests",

	ReasonTimeFit: "⏰ Perfect for this time of day",

	ReasonPriceWithin:  "💶 Fits your budget",
	ReasonPricePremium: "✨ Premium experience",

	ReasonProximityClose:   "🚶 Just a short walk away",
	ReasonProximityIndoor:  "🏠 Plenty of indoor space",
	ReasonProximityOutdoor: "🌳 Great outdoor setting",

	ReasonCuratedMustSee:     "🏆 A must-see at this destination",
	ReasonCuratedHighlyRec:   "🌟 Highly recommended by our team",
	ReasonCuratedRecommended: "👌 Recommended by our team",
	ReasonCuratedPopular:     "⭐ Popular with guests",
	ReasonCuratedAward:       "🥇 Award-winning",
}

// RenderReasons maps reason tags to display strings, preserving order and
// dropping duplicates and unknown tags. When nothing renders, the generic
// fallback is substituted.
func RenderReasons(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		s, ok := reasonStrings[tag]
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	if len(out) == 0 {
		out = append(out, fallbackReason)
	}
	return out
}
