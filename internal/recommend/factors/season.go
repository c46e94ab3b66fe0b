// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import "github.com/stayloop/concierge/internal/recommend"

// Point values for the season factor.
const (
	seasonExactPoints = 15.0
	seasonRangePoints = 10.0
	seasonAllPoints   = 4.0
)

// SeasonFit scores seasonal availability. A rule that does not cover the
// current season is a hard filter, not a low score: it mirrors whether the
// item is available at all, the same way the catalog would close it.
type SeasonFit struct{}

// NewSeasonFit creates the season factor.
func NewSeasonFit() *SeasonFit { return &SeasonFit{} }

// Name returns the factor identifier.
func (*SeasonFit) Name() string { return "season" }

// Score implements recommend.FactorScorer.
func (*SeasonFit) Score(item *recommend.CatalogItem, _ *recommend.GuestContext, env *recommend.EnvironmentContext) recommend.FactorResult {
	match := recommend.MatchSeason(item.SeasonRule, env.Season, env.ReferenceDate.Month())

	switch match {
	case recommend.SeasonMatchExact:
		return recommend.FactorResult{
			Contribution: seasonExactPoints,
			Reasons:      []string{recommend.ReasonSeasonExact},
		}
	case recommend.SeasonMatchRange:
		return recommend.FactorResult{
			Contribution: seasonRangePoints,
			Reasons:      []string{recommend.ReasonSeasonRange},
		}
	case recommend.SeasonMatchAll:
		return recommend.FactorResult{
			Contribution: seasonAllPoints,
			Reasons:      []string{recommend.ReasonSeasonAll},
		}
	default:
		return recommend.FactorResult{HardExclude: true}
	}
}
