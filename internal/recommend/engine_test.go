// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayloop/concierge/internal/recommend"
	"github.com/stayloop/concierge/internal/recommend/factors"
)

type fakeCatalog struct {
	items []recommend.CatalogItem
	err   error
}

func (f *fakeCatalog) GetCatalogItems(_ context.Context, propertyID string, kinds []recommend.ItemKind) ([]recommend.CatalogItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]recommend.CatalogItem, 0, len(f.items))
	for _, it := range f.items {
		if it.PropertyID != propertyID {
			continue
		}
		if len(kinds) > 0 {
			match := false
			for _, k := range kinds {
				if it.Kind == k {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func baseItem(id string, kind recommend.ItemKind, title string, order int) recommend.CatalogItem {
	return recommend.CatalogItem{
		ID:           id,
		PropertyID:   "prop-1",
		Kind:         kind,
		Title:        title,
		SeasonRule:   recommend.AllSeasons(),
		PriceTier:    2,
		DisplayOrder: order,
		Active:       true,
	}
}

// deterministicConfig disables jitter and caching so repeated calls are
// byte-for-byte comparable.
func deterministicConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Jitter.Enabled = false
	cfg.Cache.Enabled = false
	cfg.Limits.ScoreWorkers = 2
	return cfg
}

func newTestEngine(t *testing.T, cfg *recommend.Config, catalog recommend.CatalogProvider, guests recommend.GuestProvider, weather recommend.WeatherProvider) *recommend.Engine {
	t.Helper()

	eng, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	resolver := recommend.NewResolver(guests, weather, time.Second, zerolog.Nop())
	eng.SetProviders(catalog, resolver)
	for _, f := range factors.Default() {
		eng.RegisterFactor(f)
	}
	return eng
}

// winterRequest fixes date and weather so environment resolution is static.
func winterRequest() recommend.Request {
	return recommend.Request{
		PropertyID: "prop-1",
		Date:       time.Date(2026, time.January, 10, 15, 0, 0, 0, time.UTC),
		Weather: &recommend.WeatherOverride{
			Condition:    recommend.ConditionSnowy,
			TemperatureC: -2,
		},
	}
}

// TestRecommendDeterministic verifies that with jitter disabled, identical
// requests produce identical ordering and scores.
func TestRecommendDeterministic(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{items: []recommend.CatalogItem{
		baseItem("a", recommend.KindActivity, "Indoor Pool", 1),
		baseItem("b", recommend.KindActivity, "Sauna World", 2),
		baseItem("c", recommend.KindDining, "Alpine Grill", 1),
		baseItem("d", recommend.KindEvent, "Wine Tasting", 1),
	}}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, nil)

	first, err := eng.Recommend(context.Background(), winterRequest())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	second, err := eng.Recommend(context.Background(), winterRequest())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(first.Items) != len(second.Items) {
		t.Fatalf("result sizes differ: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].Item.ID != second.Items[i].Item.ID {
			t.Errorf("position %d: %s vs %s", i, first.Items[i].Item.ID, second.Items[i].Item.ID)
		}
		if first.Items[i].Score != second.Items[i].Score {
			t.Errorf("item %s: score %v vs %v", first.Items[i].Item.ID,
				first.Items[i].Score, second.Items[i].Score)
		}
	}
}

// TestRecommendFixedSeedJitterDeterministic verifies that an explicitly
// seeded jitter keeps repeated calls reproducible.
func TestRecommendFixedSeedJitterDeterministic(t *testing.T) {
	t.Parallel()

	cfg := deterministicConfig()
	cfg.Jitter.Enabled = true
	cfg.Jitter.MaxPoints = 3
	cfg.Jitter.Seed = 42

	catalog := &fakeCatalog{items: []recommend.CatalogItem{
		baseItem("a", recommend.KindActivity, "Indoor Pool", 1),
		baseItem("b", recommend.KindActivity, "Sauna World", 2),
	}}
	eng := newTestEngine(t, cfg, catalog, nil, nil)

	first, err := eng.Recommend(context.Background(), winterRequest())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	second, err := eng.Recommend(context.Background(), winterRequest())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	for i := range first.Items {
		if first.Items[i].Score != second.Items[i].Score {
			t.Errorf("item %s: seeded jitter not reproducible: %v vs %v",
				first.Items[i].Item.ID, first.Items[i].Score, second.Items[i].Score)
		}
		j, ok := first.Items[i].Breakdown["variety"]
		if !ok {
			t.Errorf("item %s: missing variety breakdown entry", first.Items[i].Item.ID)
		}
		if j < 0 || j >= 3 {
			t.Errorf("item %s: jitter %v outside [0, 3)", first.Items[i].Item.ID, j)
		}
	}
}

// TestRecommendScoreBounds verifies every returned score lies in [0, 100]
// even for items stacked with bonuses or penalties.
func TestRecommendScoreBounds(t *testing.T) {
	t.Parallel()

	best := baseItem("best", recommend.KindActivity, "Grand Spa", 1)
	best.WeatherSuitability = []recommend.WeatherTag{recommend.TagIndoor}
	best.Category = "wellness"
	best.Labels = []string{"spa", "relax", "quiet"}
	best.RelevanceTier = recommend.TierMustSee
	best.Awards = "Spa of the Year"
	best.WalkMinutes = intPtr(3)
	best.IndoorCapacity = intPtr(200)

	worst := baseItem("worst", recommend.KindActivity, "Extreme Canyoning", 2)
	worst.Category = "adventure"
	worst.PriceTier = 5

	catalog := &fakeCatalog{items: []recommend.CatalogItem{best, worst}}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, nil)

	req := winterRequest()
	req.ProfileType = recommend.ProfileFamily
	req.Labels = []string{"spa", "relax", "quiet"}
	req.BudgetTier = recommend.BudgetLow

	resp, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	for _, it := range resp.Items {
		if it.Score < 0 || it.Score > 100 {
			t.Errorf("item %s: score %v outside [0, 100]", it.Item.ID, it.Score)
		}
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].Item.ID != "best" {
		t.Errorf("expected the stacked item first, got %s", resp.Items[0].Item.ID)
	}
}

// TestRecommendTemperatureHardFilter verifies a weather-dependent item is
// excluded outright when the temperature leaves its operating range.
func TestRecommendTemperatureHardFilter(t *testing.T) {
	t.Parallel()

	rafting := baseItem("rafting", recommend.KindActivity, "River Rafting", 1)
	rafting.WeatherDependent = true
	rafting.MinTempC = floatPtr(10)

	pool := baseItem("pool", recommend.KindActivity, "Indoor Pool", 2)
	pool.WeatherSuitability = []recommend.WeatherTag{recommend.TagIndoor}

	catalog := &fakeCatalog{items: []recommend.CatalogItem{rafting, pool}}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, nil)

	req := recommend.Request{
		PropertyID: "prop-1",
		Date:       time.Date(2026, time.April, 5, 9, 0, 0, 0, time.UTC),
		Weather: &recommend.WeatherOverride{
			Condition:    recommend.ConditionCloudy,
			TemperatureC: 4,
		},
	}

	resp, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if resp.HardFiltered != 1 {
		t.Errorf("hard filtered = %d, want 1", resp.HardFiltered)
	}
	for _, it := range resp.Items {
		if it.Item.ID == "rafting" {
			t.Error("weather-dependent item returned below its minimum temperature")
		}
	}
	if resp.TotalCandidates != 2 {
		t.Errorf("total candidates = %d, want 2", resp.TotalCandidates)
	}
}

// TestRecommendSeasonWindowWraparound verifies an item with a month window
// crossing the year boundary is in scope inside the window and hard-filtered
// outside it.
func TestRecommendSeasonWindowWraparound(t *testing.T) {
	t.Parallel()

	ski := baseItem("ski", recommend.KindActivity, "Ski School", 1)
	ski.SeasonRule = recommend.SeasonRule{
		Kind:       recommend.SeasonRuleRange,
		StartMonth: 11,
		EndMonth:   4,
	}

	catalog := &fakeCatalog{items: []recommend.CatalogItem{ski}}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, nil)

	for _, month := range []time.Month{time.December, time.February} {
		req := recommend.Request{
			PropertyID: "prop-1",
			Date:       time.Date(2026, month, 10, 10, 0, 0, 0, time.UTC),
			Weather:    &recommend.WeatherOverride{Condition: recommend.ConditionSunny, TemperatureC: 1},
		}
		resp, err := eng.Recommend(context.Background(), req)
		if err != nil {
			t.Fatalf("Recommend(%v): %v", month, err)
		}
		if len(resp.Items) != 1 {
			t.Errorf("month %v: expected the ski item in scope, got %d items", month, len(resp.Items))
		}
	}

	req := recommend.Request{
		PropertyID: "prop-1",
		Date:       time.Date(2026, time.July, 10, 10, 0, 0, 0, time.UTC),
		Weather:    &recommend.WeatherOverride{Condition: recommend.ConditionSunny, TemperatureC: 25},
	}
	resp, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend(July): %v", err)
	}
	if len(resp.Items) != 0 {
		t.Error("July: expected the ski item hard-filtered out of season")
	}
	if resp.HardFiltered != 1 {
		t.Errorf("July: hard filtered = %d, want 1", resp.HardFiltered)
	}
}

// TestRecommendMixedDiversityCap verifies the per-kind cap applies to
// mixed-kind requests only.
func TestRecommendMixedDiversityCap(t *testing.T) {
	t.Parallel()

	items := []recommend.CatalogItem{
		baseItem("a1", recommend.KindActivity, "A1", 1),
		baseItem("a2", recommend.KindActivity, "A2", 2),
		baseItem("a3", recommend.KindActivity, "A3", 3),
		baseItem("a4", recommend.KindActivity, "A4", 4),
		baseItem("d1", recommend.KindDining, "D1", 1),
		baseItem("d2", recommend.KindDining, "D2", 2),
		baseItem("e1", recommend.KindEvent, "E1", 1),
	}
	// Boost the activities so the cap, not the ranking, limits them.
	for i := range items {
		if items[i].Kind == recommend.KindActivity {
			items[i].RelevanceTier = recommend.TierMustSee
		}
	}

	catalog := &fakeCatalog{items: items}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, nil)

	req := winterRequest()
	req.Limit = 5
	resp, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(resp.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(resp.Items))
	}
	counts := make(map[recommend.ItemKind]int)
	for _, it := range resp.Items {
		counts[it.Item.Kind]++
	}
	if counts[recommend.KindActivity] > 2 {
		t.Errorf("mixed list holds %d activities, cap is 2", counts[recommend.KindActivity])
	}

	// A single-kind request ignores the cap.
	req = winterRequest()
	req.Kinds = []recommend.ItemKind{recommend.KindActivity}
	req.Limit = 4
	resp, err = eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Items) != 4 {
		t.Errorf("single-kind request: expected 4 activities, got %d", len(resp.Items))
	}
}

// TestRecommendTieBreakDisplayOrder verifies equal-scoring items order by
// ascending display order.
func TestRecommendTieBreakDisplayOrder(t *testing.T) {
	t.Parallel()

	first := baseItem("first", recommend.KindDining, "Same Name", 1)
	second := baseItem("second", recommend.KindDining, "Same Name", 2)

	catalog := &fakeCatalog{items: []recommend.CatalogItem{second, first}}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, nil)

	resp, err := eng.Recommend(context.Background(), winterRequest())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].Score != resp.Items[1].Score {
		t.Fatalf("test setup broken: scores differ (%v vs %v)",
			resp.Items[0].Score, resp.Items[1].Score)
	}
	if resp.Items[0].Item.ID != "first" {
		t.Errorf("expected display order 1 first, got %s", resp.Items[0].Item.ID)
	}
}

// TestRecommendFamilySnowyEndToEnd runs the full pipeline for a family on a
// snowy afternoon: the indoor family activity must outrank the outdoor
// adventure item, and its reasons must include the indoor and interest
// explanations.
func TestRecommendFamilySnowyEndToEnd(t *testing.T) {
	t.Parallel()

	play := baseItem("play", recommend.KindActivity, "Family Play Barn", 1)
	play.Category = "family"
	play.Labels = []string{"kids", "indoor_play"}
	play.WeatherSuitability = []recommend.WeatherTag{recommend.TagIndoor}
	play.IndoorCapacity = intPtr(80)

	hike := baseItem("hike", recommend.KindActivity, "Summit Hike", 2)
	hike.Category = "adventure"
	hike.WeatherSuitability = []recommend.WeatherTag{recommend.WeatherTag(recommend.ConditionSunny)}

	dinner := baseItem("dinner", recommend.KindDining, "Fondue Stube", 1)
	dinner.Category = "family"
	dinner.WeatherSuitability = []recommend.WeatherTag{recommend.TagIndoor}

	catalog := &fakeCatalog{items: []recommend.CatalogItem{hike, dinner, play}}
	guests := &stubGuests{profile: &recommend.GuestProfile{
		GuestID:     "fam-1",
		ProfileType: recommend.ProfileFamily,
		Labels:      []string{"kids"},
		BudgetTier:  recommend.BudgetModerate,
		Adults:      2,
		Children:    2,
	}}
	eng := newTestEngine(t, deterministicConfig(), catalog, guests, nil)

	req := recommend.Request{
		PropertyID: "prop-1",
		GuestID:    "fam-1",
		Date:       time.Date(2026, time.January, 17, 14, 30, 0, 0, time.UTC),
		Weather: &recommend.WeatherOverride{
			Condition:    recommend.ConditionSnowy,
			TemperatureC: -4,
		},
	}

	resp, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if resp.Context.Guest.ProfileType != recommend.ProfileFamily {
		t.Errorf("resolved profile = %v, want family", resp.Context.Guest.ProfileType)
	}
	if resp.Context.Environment.Season != recommend.SeasonWinter {
		t.Errorf("resolved season = %v, want winter", resp.Context.Environment.Season)
	}
	if len(resp.Items) == 0 {
		t.Fatal("expected recommendations, got none")
	}
	if resp.Items[0].Item.ID != "play" {
		t.Errorf("top item = %s, want the indoor family activity", resp.Items[0].Item.ID)
	}

	var sawIndoor, sawInterests bool
	for _, r := range resp.Items[0].Reasons {
		switch r {
		case "🏠 Weather-independent indoor activity":
			sawIndoor = true
		case "💡 Matches your interests":
			sawInterests = true
		}
	}
	if !sawIndoor {
		t.Errorf("top item reasons missing indoor explanation: %v", resp.Items[0].Reasons)
	}
	if !sawInterests {
		t.Errorf("top item reasons missing interests explanation: %v", resp.Items[0].Reasons)
	}

	// The hiking item suits neither the snow nor a family profile; it must
	// rank below both indoor items.
	if last := resp.Items[len(resp.Items)-1]; last.Item.ID != "hike" {
		t.Errorf("last item = %s, want the outdoor adventure item", last.Item.ID)
	}
}

type stubGuests struct {
	profile *recommend.GuestProfile
	err     error
}

func (s *stubGuests) GetGuestProfile(_ context.Context, _ string) (*recommend.GuestProfile, error) {
	return s.profile, s.err
}

// TestRecommendInvalidRequest verifies request validation failures map to
// ErrInvalidRequest.
func TestRecommendInvalidRequest(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, deterministicConfig(), &fakeCatalog{}, nil, nil)

	tests := []struct {
		name string
		req  recommend.Request
	}{
		{"missing property id", recommend.Request{}},
		{"blank property id", recommend.Request{PropertyID: "   "}},
		{"unknown kind", recommend.Request{PropertyID: "p", Kinds: []recommend.ItemKind{"hotel"}}},
		{"unknown season", recommend.Request{PropertyID: "p", Season: "monsoon"}},
		{"negative limit", recommend.Request{PropertyID: "p", Limit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := eng.Recommend(context.Background(), tt.req)
			if !errors.Is(err, recommend.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

// TestRecommendCatalogUnavailable verifies catalog failures surface as
// ErrCatalogUnavailable.
func TestRecommendCatalogUnavailable(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{err: errors.New("database closed")}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, nil)

	_, err := eng.Recommend(context.Background(), winterRequest())
	if !errors.Is(err, recommend.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}

// TestRecommendWeatherFailureRecovered verifies a failing weather provider
// degrades to the neutral context instead of failing the request.
func TestRecommendWeatherFailureRecovered(t *testing.T) {
	t.Parallel()

	pool := baseItem("pool", recommend.KindActivity, "Indoor Pool", 1)
	pool.WeatherSuitability = []recommend.WeatherTag{recommend.TagIndoor}

	catalog := &fakeCatalog{items: []recommend.CatalogItem{pool}}
	weather := &stubWeather{err: errors.New("gateway timeout")}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, weather)

	resp, err := eng.Recommend(context.Background(), recommend.Request{PropertyID: "prop-1"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if !resp.Context.Environment.WeatherDegraded {
		t.Error("expected degraded weather context")
	}
	if resp.Context.Environment.Condition != recommend.ConditionUnknown {
		t.Errorf("condition = %v, want unknown", resp.Context.Environment.Condition)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
}

type stubWeather struct {
	obs *recommend.WeatherObservation
	err error
}

func (s *stubWeather) CurrentWeather(_ context.Context, _, _ *float64) (*recommend.WeatherObservation, error) {
	return s.obs, s.err
}

// TestRecommendCacheHit verifies caching kicks in when jitter is disabled.
func TestRecommendCacheHit(t *testing.T) {
	t.Parallel()

	cfg := deterministicConfig()
	cfg.Cache.Enabled = true

	catalog := &fakeCatalog{items: []recommend.CatalogItem{
		baseItem("a", recommend.KindActivity, "Indoor Pool", 1),
	}}
	eng := newTestEngine(t, cfg, catalog, nil, nil)

	first, err := eng.Recommend(context.Background(), winterRequest())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first call must not be a cache hit")
	}

	second, err := eng.Recommend(context.Background(), winterRequest())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second identical call should be served from cache")
	}
	if len(second.Items) != len(first.Items) {
		t.Errorf("cached result differs: %d vs %d items", len(second.Items), len(first.Items))
	}
}

// TestUpdateConfigInvalidatesCache verifies config updates flush cached
// responses.
func TestUpdateConfigInvalidatesCache(t *testing.T) {
	t.Parallel()

	cfg := deterministicConfig()
	cfg.Cache.Enabled = true

	catalog := &fakeCatalog{items: []recommend.CatalogItem{
		baseItem("a", recommend.KindActivity, "Indoor Pool", 1),
	}}
	eng := newTestEngine(t, cfg, catalog, nil, nil)

	if _, err := eng.Recommend(context.Background(), winterRequest()); err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	updated := eng.GetConfig()
	updated.Weights.Weather = 0.5
	if err := eng.UpdateConfig(updated); err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}

	resp, err := eng.Recommend(context.Background(), winterRequest())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("cache should have been invalidated by the config update")
	}
}

// TestUpdateConfigRejectsInvalid verifies bad configs are refused and the
// engine keeps its previous settings.
func TestUpdateConfigRejectsInvalid(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, deterministicConfig(), &fakeCatalog{}, nil, nil)

	bad := eng.GetConfig()
	bad.Diversity.PerKindCap = 0
	if err := eng.UpdateConfig(bad); err == nil {
		t.Fatal("expected rejection of invalid config")
	}
	if got := eng.GetConfig().Diversity.PerKindCap; got != 2 {
		t.Errorf("per kind cap = %d, want the previous value 2", got)
	}
}

// TestRecommendLimitDefaults verifies limit normalization.
func TestRecommendLimitDefaults(t *testing.T) {
	t.Parallel()

	items := make([]recommend.CatalogItem, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, baseItem(
			string(rune('a'+i%26))+string(rune('0'+i/26)),
			recommend.KindActivity,
			"Item", i+1,
		))
	}
	catalog := &fakeCatalog{items: items}
	eng := newTestEngine(t, deterministicConfig(), catalog, nil, nil)

	req := winterRequest()
	req.Kinds = []recommend.ItemKind{recommend.KindActivity}
	resp, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Items) != 10 {
		t.Errorf("zero limit should default to 10, got %d items", len(resp.Items))
	}
}
