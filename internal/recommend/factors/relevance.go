// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import "github.com/stayloop/concierge/internal/recommend"

// awardPoints is the flat bonus for any named award.
const awardPoints = 3.0

// tierPoints maps curated relevance tiers to their boost.
var tierPoints = map[recommend.RelevanceTier]float64{
	recommend.TierMustSee:           12,
	recommend.TierHighlyRecommended: 9,
	recommend.TierRecommended:       6,
	recommend.TierPopular:           4,
}

// tierReasons maps curated relevance tiers to their reason tags.
var tierReasons = map[recommend.RelevanceTier]string{
	recommend.TierMustSee:           recommend.ReasonCuratedMustSee,
	recommend.TierHighlyRecommended: recommend.ReasonCuratedHighlyRec,
	recommend.TierRecommended:       recommend.ReasonCuratedRecommended,
	recommend.TierPopular:           recommend.ReasonCuratedPopular,
}

// Relevance applies the curated editorial boost: relevance tier plus a flat
// award bonus. It is the only factor independent of guest and environment.
type Relevance struct{}

// NewRelevance creates the relevance factor.
func NewRelevance() *Relevance { return &Relevance{} }

// Name returns the factor identifier.
func (*Relevance) Name() string { return "relevance" }

// Score implements recommend.FactorScorer.
func (*Relevance) Score(item *recommend.CatalogItem, _ *recommend.GuestContext, _ *recommend.EnvironmentContext) recommend.FactorResult {
	var res recommend.FactorResult

	if pts, ok := tierPoints[item.RelevanceTier]; ok {
		res.Contribution += pts
		res.Reasons = append(res.Reasons, tierReasons[item.RelevanceTier])
	}
	if item.Awards != "" {
		res.Contribution += awardPoints
		res.Reasons = append(res.Reasons, recommend.ReasonCuratedAward)
	}

	return res
}
