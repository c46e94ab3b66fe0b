// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package database

import (
	"context"
	"fmt"

	"github.com/stayloop/concierge/internal/logging"
	"github.com/stayloop/concierge/internal/models"
	"github.com/stayloop/concierge/internal/recommend"
)

// SeedDemoData loads a demonstration property with guests and a catalog.
// It is a no-op when any property already exists, so restarting a seeded
// instance never duplicates data.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var count int
	row := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("failed to count properties: %w", err)
	}
	if count > 0 {
		logging.Debug().Msg("Demo data seeding skipped, properties already present")
		return nil
	}

	property := models.Property{
		ID:       "alpenhof",
		Name:     "Hotel Alpenhof",
		Timezone: "Europe/Zurich",
		Latitude: 46.62, Longitude: 8.04,
	}
	if err := db.UpsertProperty(ctx, &property); err != nil {
		return err
	}

	for i := range demoGuests {
		if err := db.UpsertGuest(ctx, &demoGuests[i]); err != nil {
			return err
		}
	}
	for i := range demoCatalog {
		if err := db.UpsertCatalogItem(ctx, &demoCatalog[i]); err != nil {
			return err
		}
	}

	logging.Info().
		Str("property_id", property.ID).
		Int("guests", len(demoGuests)).
		Int("catalog_items", len(demoCatalog)).
		Msg("Seeded demo data")
	return nil
}

var demoGuests = []models.Guest{
	{
		ID: "guest-mueller", PropertyID: "alpenhof", FullName: "Familie Müller",
		ProfileType: "family", Labels: []string{"kids", "nature"},
		BudgetTier: "moderate", Adults: 2, Children: 2,
	},
	{
		ID: "guest-rossi", PropertyID: "alpenhof", FullName: "Anna e Marco Rossi",
		ProfileType: "couple", Labels: []string{"wine", "romantic", "culture"},
		Dietary: []string{"vegetarian"}, BudgetTier: "premium", Adults: 2,
	},
	{
		ID: "guest-berg", PropertyID: "alpenhof", FullName: "Jonas Berg",
		ProfileType: "adventure", Labels: []string{"hiking", "climbing"},
		BudgetTier: "budget", Adults: 1,
	},
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

var demoCatalog = []recommend.CatalogItem{
	{
		ID: "indoor-play-barn", PropertyID: "alpenhof", Kind: recommend.KindActivity,
		Title: "Indoor Play Barn", Category: "family",
		Description:        "Supervised soft-play barn with climbing nets and slides.",
		WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor},
		Labels:             []string{"kids", "family"},
		SeasonRule:         recommend.AllSeasons(),
		PriceTier:          2, RelevanceTier: recommend.TierRecommended,
		WalkMinutes: ip(3), IndoorCapacity: ip(60), DisplayOrder: 10, Active: true,
	},
	{
		ID: "fondue-chalet", PropertyID: "alpenhof", Kind: recommend.KindDining,
		Title: "Fondue Chalet", Category: "swiss",
		Description:        "Traditional cheese fondue in a candle-lit chalet.",
		WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor},
		Labels:             []string{"family", "romantic"},
		SeasonRule:         recommend.SeasonRule{Kind: recommend.SeasonRuleNamed, Season: recommend.SeasonWinter},
		PriceTier:          3, RelevanceTier: recommend.TierHighlyRecommended,
		WalkMinutes: ip(8), IndoorCapacity: ip(45), DisplayOrder: 20, Active: true,
	},
	{
		ID: "panorama-hike", PropertyID: "alpenhof", Kind: recommend.KindActivity,
		Title: "Panorama Ridge Hike", Category: "outdoor",
		Description:      "Guided half-day ridge hike with valley views.",
		Labels:           []string{"hiking", "nature"},
		SeasonRule:       recommend.SeasonRule{Kind: recommend.SeasonRuleRange, StartMonth: 5, EndMonth: 10},
		WeatherDependent: true, MinTempC: fp(5),
		PriceTier: 2, RelevanceTier: recommend.TierMustSee,
		Awards:      "Alpine Trail Award 2025",
		WalkMinutes: ip(12), DisplayOrder: 30, Active: true,
	},
	{
		ID: "ski-school", PropertyID: "alpenhof", Kind: recommend.KindActivity,
		Title: "Ski School", Category: "sports",
		Description: "Group and private lessons on the village slopes.",
		Labels:      []string{"kids", "sports"},
		SeasonRule:  recommend.SeasonRule{Kind: recommend.SeasonRuleRange, StartMonth: 11, EndMonth: 4},
		PriceTier:   4, RelevanceTier: recommend.TierHighlyRecommended,
		WalkMinutes: ip(15), OutdoorCapacity: ip(80), DisplayOrder: 40, Active: true,
	},
	{
		ID: "river-rafting", PropertyID: "alpenhof", Kind: recommend.KindActivity,
		Title: "River Rafting", Category: "adventure",
		Description:      "White-water rafting on the glacier-fed river.",
		Labels:           []string{"adventure", "sports"},
		SeasonRule:       recommend.SeasonRule{Kind: recommend.SeasonRuleRange, StartMonth: 6, EndMonth: 9},
		WeatherDependent: true, MinTempC: fp(12),
		PriceTier: 4, RelevanceTier: recommend.TierRecommended,
		WalkMinutes: ip(25), DisplayOrder: 50, Active: true,
	},
	{
		ID: "spa-day", PropertyID: "alpenhof", Kind: recommend.KindActivity,
		Title: "Alpine Spa Day", Category: "wellness",
		Description:        "Thermal pools, saunas, and massage treatments.",
		WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor, recommend.TagAllWeather},
		Labels:             []string{"wellness", "romantic"},
		SeasonRule:         recommend.AllSeasons(),
		PriceTier:          5, RelevanceTier: recommend.TierHighlyRecommended,
		Awards:      "Spa of the Year 2024",
		WalkMinutes: ip(2), IndoorCapacity: ip(30), DisplayOrder: 60, Active: true,
	},
	{
		ID: "wine-cellar-tasting", PropertyID: "alpenhof", Kind: recommend.KindEvent,
		Title: "Wine Cellar Tasting", Category: "tasting",
		Description:        "Sommelier-led tasting of regional vintages.",
		WeatherSuitability: []recommend.WeatherTag{recommend.TagIndoor},
		Labels:             []string{"wine", "romantic"},
		SeasonRule:         recommend.AllSeasons(),
		PriceTier:          3, RelevanceTier: recommend.TierRecommended,
		WalkMinutes: ip(5), IndoorCapacity: ip(20), DisplayOrder: 70, Active: true,
	},
	{
		ID: "mountain-bistro", PropertyID: "alpenhof", Kind: recommend.KindDining,
		Title: "Mountain Bistro", Category: "international",
		Description:        "Casual all-day bistro with a terrace.",
		WeatherSuitability: []recommend.WeatherTag{recommend.TagAllWeather},
		Labels:             []string{"family"},
		SeasonRule:         recommend.AllSeasons(),
		PriceTier:          2, RelevanceTier: recommend.TierPopular,
		WalkMinutes: ip(1), IndoorCapacity: ip(70), OutdoorCapacity: ip(40),
		DisplayOrder: 80, Active: true,
	},
	{
		ID: "village-market", PropertyID: "alpenhof", Kind: recommend.KindEvent,
		Title: "Village Farmers Market", Category: "market",
		Description: "Weekly market with local cheese, bread, and crafts.",
		Labels:      []string{"culture", "nature"},
		SeasonRule:  recommend.SeasonRule{Kind: recommend.SeasonRuleRange, StartMonth: 4, EndMonth: 10},
		PriceTier:   1, RelevanceTier: recommend.TierPopular,
		WalkMinutes: ip(10), DisplayOrder: 90, Active: true,
	},
	{
		ID: "closed-terrace-bar", PropertyID: "alpenhof", Kind: recommend.KindDining,
		Title: "Terrace Bar", Category: "bar",
		Description: "Seasonal rooftop bar, closed for renovation.",
		SeasonRule:  recommend.AllSeasons(),
		PriceTier:   3, RelevanceTier: recommend.TierNone,
		WalkMinutes: ip(1), DisplayOrder: 100, Active: false,
	},
}
