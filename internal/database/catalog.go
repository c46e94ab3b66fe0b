// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/stayloop/concierge/internal/logging"
	"github.com/stayloop/concierge/internal/recommend"
)

const catalogColumns = `id, property_id, kind, title, description, category,
	weather_suitability, labels, season_rule_kind, season, start_month, end_month,
	weather_dependent, min_temp_c, max_temp_c, price_tier, relevance_tier, awards,
	walk_minutes, indoor_capacity, outdoor_capacity, display_order, active`

// GetCatalogItems returns active catalog items for a property, limited to
// the given kinds (all kinds when empty). Implements the engine's catalog
// provider interface.
func (db *DB) GetCatalogItems(ctx context.Context, propertyID string, kinds []recommend.ItemKind) ([]recommend.CatalogItem, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM catalog_items
		WHERE property_id = ? AND active = TRUE`, catalogColumns)
	args := []interface{}{propertyID}

	if len(kinds) > 0 {
		placeholders := make([]string, len(kinds))
		for i, k := range kinds {
			placeholders[i] = "?"
			args = append(args, string(k))
		}
		query += fmt.Sprintf(" AND kind IN (%s)", strings.Join(placeholders, ", "))
	}
	query += " ORDER BY display_order, title"

	stmt, err := db.prepare(ctx, query)
	if err != nil {
		observe("select", "catalog_items", start, err)
		return nil, fmt.Errorf("failed to prepare catalog query: %w", err)
	}
	rows, err := stmt.QueryContext(ctx, args...)
	observe("select", "catalog_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]recommend.CatalogItem, 0, 32)
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			// A single malformed row must not sink the whole catalog.
			logging.Warn().Err(err).Msg("Skipping malformed catalog row")
			continue
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog row iteration failed: %w", err)
	}

	return items, nil
}

// ListCatalogItems returns all items for a property including inactive
// ones, for the management API.
func (db *DB) ListCatalogItems(ctx context.Context, propertyID string) ([]recommend.CatalogItem, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM catalog_items
		WHERE property_id = ? ORDER BY kind, display_order, title`, catalogColumns)

	rows, err := db.conn.QueryContext(ctx, query, propertyID)
	observe("select", "catalog_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]recommend.CatalogItem, 0, 32)
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			logging.Warn().Err(err).Msg("Skipping malformed catalog row")
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertCatalogItem inserts or replaces a catalog item.
func (db *DB) UpsertCatalogItem(ctx context.Context, item *recommend.CatalogItem) error {
	start := time.Now()

	suitability, err := encodeStringList(weatherTagsToStrings(item.WeatherSuitability))
	if err != nil {
		return fmt.Errorf("failed to encode weather suitability: %w", err)
	}
	labels, err := encodeStringList(item.Labels)
	if err != nil {
		return fmt.Errorf("failed to encode labels: %w", err)
	}

	ruleKind, season, startMonth, endMonth := encodeSeasonRule(item.SeasonRule)

	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO catalog_items (
			id, property_id, kind, title, description, category,
			weather_suitability, labels, season_rule_kind, season,
			start_month, end_month, weather_dependent, min_temp_c, max_temp_c,
			price_tier, relevance_tier, awards, walk_minutes,
			indoor_capacity, outdoor_capacity, display_order, active, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		item.ID, item.PropertyID, string(item.Kind), item.Title, item.Description,
		item.Category, suitability, labels, ruleKind, season, startMonth, endMonth,
		item.WeatherDependent, item.MinTempC, item.MaxTempC,
		strconv.Itoa(item.PriceTier), string(item.RelevanceTier), item.Awards,
		item.WalkMinutes, item.IndoorCapacity, item.OutdoorCapacity,
		item.DisplayOrder, item.Active,
	)
	observe("upsert", "catalog_items", start, err)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog item: %w", err)
	}
	return nil
}

// scanCatalogItem maps one row onto a CatalogItem, normalizing stored
// representations (JSON lists, price strings, season rules) along the way.
func scanCatalogItem(rows *sql.Rows) (recommend.CatalogItem, error) {
	var (
		item        recommend.CatalogItem
		kind        string
		suitability string
		labels      string
		ruleKind    string
		season      sql.NullString
		startMonth  sql.NullInt32
		endMonth    sql.NullInt32
		minTemp     sql.NullFloat64
		maxTemp     sql.NullFloat64
		priceTier   string
		relevance   string
		walkMinutes sql.NullInt32
		indoorCap   sql.NullInt32
		outdoorCap  sql.NullInt32
	)

	err := rows.Scan(
		&item.ID, &item.PropertyID, &kind, &item.Title, &item.Description,
		&item.Category, &suitability, &labels, &ruleKind, &season,
		&startMonth, &endMonth, &item.WeatherDependent, &minTemp, &maxTemp,
		&priceTier, &relevance, &item.Awards, &walkMinutes, &indoorCap,
		&outdoorCap, &item.DisplayOrder, &item.Active,
	)
	if err != nil {
		return recommend.CatalogItem{}, fmt.Errorf("failed to scan catalog row: %w", err)
	}

	item.Kind = recommend.ItemKind(kind)
	if !item.Kind.Valid() {
		return recommend.CatalogItem{}, fmt.Errorf("unknown catalog kind %q for item %s", kind, item.ID)
	}

	tags, err := decodeStringList(suitability)
	if err != nil {
		return recommend.CatalogItem{}, fmt.Errorf("invalid weather suitability for item %s: %w", item.ID, err)
	}
	item.WeatherSuitability = stringsToWeatherTags(tags)

	if item.Labels, err = decodeStringList(labels); err != nil {
		return recommend.CatalogItem{}, fmt.Errorf("invalid labels for item %s: %w", item.ID, err)
	}

	item.SeasonRule = decodeSeasonRule(ruleKind, season, startMonth, endMonth)
	if minTemp.Valid {
		item.MinTempC = &minTemp.Float64
	}
	if maxTemp.Valid {
		item.MaxTempC = &maxTemp.Float64
	}
	item.PriceTier = NormalizePriceTier(priceTier)
	item.RelevanceTier = recommend.RelevanceTier(relevance)
	if walkMinutes.Valid {
		v := int(walkMinutes.Int32)
		item.WalkMinutes = &v
	}
	if indoorCap.Valid {
		v := int(indoorCap.Int32)
		item.IndoorCapacity = &v
	}
	if outdoorCap.Valid {
		v := int(outdoorCap.Int32)
		item.OutdoorCapacity = &v
	}

	return item, nil
}

// NormalizePriceTier maps stored price representations onto the 1-5 ordinal
// scale: plain digits, euro-sign runs ("€€€"), or named levels. Unknown
// values land on the midpoint.
func NormalizePriceTier(s string) int {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 3
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 1
		}
		if n > 5 {
			return 5
		}
		return n
	}

	if euros := strings.Count(s, "€"); euros > 0 && strings.Trim(s, "€") == "" {
		if euros > 5 {
			return 5
		}
		return euros
	}

	switch s {
	case "free", "included":
		return 1
	case "low", "budget":
		return 2
	case "medium", "moderate":
		return 3
	case "high", "premium":
		return 4
	case "luxury", "exclusive":
		return 5
	default:
		return 3
	}
}

// encodeSeasonRule flattens a season rule into its stored columns.
func encodeSeasonRule(rule recommend.SeasonRule) (kind string, season interface{}, start, end interface{}) {
	switch rule.Kind {
	case recommend.SeasonRuleNamed:
		return "named", string(rule.Season), nil, nil
	case recommend.SeasonRuleRange:
		return "range", nil, rule.StartMonth, rule.EndMonth
	default:
		return "all", nil, nil, nil
	}
}

// decodeSeasonRule rebuilds a season rule from its stored columns. Malformed
// combinations degrade to the year-round rule rather than erroring: an item
// with a broken rule should stay bookable, not vanish.
func decodeSeasonRule(kind string, season sql.NullString, start, end sql.NullInt32) recommend.SeasonRule {
	switch kind {
	case "named":
		s := recommend.Season(season.String)
		if !season.Valid || !s.Valid() {
			return recommend.AllSeasons()
		}
		return recommend.SeasonRule{Kind: recommend.SeasonRuleNamed, Season: s}
	case "range":
		if !start.Valid || !end.Valid {
			return recommend.AllSeasons()
		}
		sm, em := int(start.Int32), int(end.Int32)
		if sm < 1 || sm > 12 || em < 1 || em > 12 {
			return recommend.AllSeasons()
		}
		return recommend.SeasonRule{Kind: recommend.SeasonRuleRange, StartMonth: sm, EndMonth: em}
	default:
		return recommend.AllSeasons()
	}
}

// decodeStringList parses a stored JSON array of strings. Empty and NULL
// columns decode to an empty list.
func decodeStringList(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// encodeStringList renders a string list as a JSON array.
func encodeStringList(list []string) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func weatherTagsToStrings(tags []recommend.WeatherTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func stringsToWeatherTags(list []string) []recommend.WeatherTag {
	out := make([]recommend.WeatherTag, len(list))
	for i, s := range list {
		out[i] = recommend.WeatherTag(s)
	}
	return out
}
