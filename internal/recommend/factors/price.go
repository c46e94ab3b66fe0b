// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import "github.com/stayloop/concierge/internal/recommend"

// Point values for the price factor.
const (
	priceWithinPoints    = 8.0
	pricePremiumPoints   = 4.0 // on top of priceWithinPoints
	priceCheapForPremium = 6.0 // premium-tolerant guest, cheap item
	priceJustOverPoints  = 1.0 // one tier over the cap
)

// budgetCaps maps a budget tier to the highest tolerated price tier.
var budgetCaps = map[recommend.BudgetTier]int{
	recommend.BudgetLow:      2,
	recommend.BudgetModerate: 3,
	recommend.BudgetPremium:  5,
}

// PriceFit scores an item's price tier against the guest's budget. The
// function is deliberately asymmetric: a premium-tolerant guest loses only
// a little on cheap items, while a budget-constrained guest gets near zero
// for items over the cap.
type PriceFit struct{}

// NewPriceFit creates the price factor.
func NewPriceFit() *PriceFit { return &PriceFit{} }

// Name returns the factor identifier.
func (*PriceFit) Name() string { return "price" }

// Score implements recommend.FactorScorer.
func (*PriceFit) Score(item *recommend.CatalogItem, guest *recommend.GuestContext, _ *recommend.EnvironmentContext) recommend.FactorResult {
	cap, ok := budgetCaps[guest.BudgetTier]
	if !ok {
		cap = budgetCaps[recommend.BudgetModerate]
	}

	tier := item.PriceTier
	if tier < 1 {
		tier = 1
	}
	if tier > 5 {
		tier = 5
	}

	switch {
	case tier > cap:
		if tier-cap == 1 {
			return recommend.FactorResult{Contribution: priceJustOverPoints}
		}
		return recommend.FactorResult{}
	case cap >= 4 && tier >= 4:
		// Expensive item matched to an expensive-tolerant guest.
		return recommend.FactorResult{
			Contribution: priceWithinPoints + pricePremiumPoints,
			Reasons:      []string{recommend.ReasonPriceWithin, recommend.ReasonPricePremium},
		}
	case cap >= 4 && tier <= 2:
		// Premium-tolerant guest, cheap item: mildly discounted, not
		// punished the way over-budget items are.
		return recommend.FactorResult{
			Contribution: priceCheapForPremium,
			Reasons:      []string{recommend.ReasonPriceWithin},
		}
	default:
		return recommend.FactorResult{
			Contribution: priceWithinPoints,
			Reasons:      []string{recommend.ReasonPriceWithin},
		}
	}
}
