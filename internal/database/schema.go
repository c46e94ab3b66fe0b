// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the core tables. List-valued columns (labels,
// weather suitability, dietary) are stored as JSON text and decoded on
// read; DuckDB handles them fine without the json extension.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id          VARCHAR PRIMARY KEY,
		name        VARCHAR NOT NULL,
		timezone    VARCHAR NOT NULL DEFAULT 'UTC',
		latitude    DOUBLE NOT NULL DEFAULT 0,
		longitude   DOUBLE NOT NULL DEFAULT 0,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS guests (
		id            VARCHAR PRIMARY KEY,
		property_id   VARCHAR NOT NULL,
		full_name     VARCHAR NOT NULL DEFAULT '',
		profile_type  VARCHAR NOT NULL DEFAULT 'unknown',
		labels        VARCHAR NOT NULL DEFAULT '[]',
		dietary       VARCHAR NOT NULL DEFAULT '[]',
		accessibility VARCHAR NOT NULL DEFAULT '[]',
		budget_tier   VARCHAR NOT NULL DEFAULT 'moderate',
		adults        INTEGER NOT NULL DEFAULT 1,
		children      INTEGER NOT NULL DEFAULT 0,
		check_in      DATE,
		check_out     DATE,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_items (
		id                  VARCHAR PRIMARY KEY,
		property_id         VARCHAR NOT NULL,
		kind                VARCHAR NOT NULL,
		title               VARCHAR NOT NULL,
		description         VARCHAR NOT NULL DEFAULT '',
		category            VARCHAR NOT NULL DEFAULT '',
		weather_suitability VARCHAR NOT NULL DEFAULT '[]',
		labels              VARCHAR NOT NULL DEFAULT '[]',
		season_rule_kind    VARCHAR NOT NULL DEFAULT 'all',
		season              VARCHAR,
		start_month         INTEGER,
		end_month           INTEGER,
		weather_dependent   BOOLEAN NOT NULL DEFAULT FALSE,
		min_temp_c          DOUBLE,
		max_temp_c          DOUBLE,
		price_tier          VARCHAR NOT NULL DEFAULT '3',
		relevance_tier      VARCHAR NOT NULL DEFAULT 'none',
		awards              VARCHAR NOT NULL DEFAULT '',
		walk_minutes        INTEGER,
		indoor_capacity     INTEGER,
		outdoor_capacity    INTEGER,
		display_order       INTEGER NOT NULL DEFAULT 0,
		active              BOOLEAN NOT NULL DEFAULT TRUE,
		created_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_catalog_property_kind
		ON catalog_items (property_id, kind)`,

	`CREATE INDEX IF NOT EXISTS idx_guests_property
		ON guests (property_id)`,
}

// initSchema creates the tables and indexes if they do not exist.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
