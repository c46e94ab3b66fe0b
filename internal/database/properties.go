// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stayloop/concierge/internal/models"
)

// GetProperty returns one property by id.
func (db *DB) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	start := time.Now()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, timezone, latitude, longitude, created_at, updated_at
		FROM properties WHERE id = ?`, propertyID)

	var p models.Property
	err := row.Scan(&p.ID, &p.Name, &p.Timezone, &p.Latitude, &p.Longitude,
		&p.CreatedAt, &p.UpdatedAt)
	observe("select", "properties", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query property %s: %w", propertyID, err)
	}
	return &p, nil
}

// ListProperties returns all properties.
func (db *DB) ListProperties(ctx context.Context) ([]models.Property, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, timezone, latitude, longitude, created_at, updated_at
		FROM properties ORDER BY name`)
	observe("select", "properties", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	props := make([]models.Property, 0, 8)
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Timezone, &p.Latitude,
			&p.Longitude, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		props = append(props, p)
	}
	return props, rows.Err()
}

// UpsertProperty inserts or replaces a property.
func (db *DB) UpsertProperty(ctx context.Context, p *models.Property) error {
	start := time.Now()

	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO properties (id, name, timezone, latitude, longitude, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		p.ID, p.Name, p.Timezone, p.Latitude, p.Longitude,
	)
	observe("upsert", "properties", start, err)
	if err != nil {
		return fmt.Errorf("failed to upsert property: %w", err)
	}
	return nil
}
