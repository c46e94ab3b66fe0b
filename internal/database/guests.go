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
	"github.com/stayloop/concierge/internal/recommend"
)

// GetGuestProfile returns the scoring-relevant slice of a stored guest
// record. Implements the engine's guest provider interface: unknown guests
// yield recommend.ErrGuestNotFound so the resolver can degrade gracefully.
func (db *DB) GetGuestProfile(ctx context.Context, guestID string) (*recommend.GuestProfile, error) {
	start := time.Now()

	stmt, err := db.prepare(ctx, `
		SELECT id, profile_type, labels, dietary, accessibility,
			budget_tier, adults, children
		FROM guests WHERE id = ?`)
	if err != nil {
		observe("select", "guests", start, err)
		return nil, fmt.Errorf("failed to prepare guest query: %w", err)
	}
	row := stmt.QueryRowContext(ctx, guestID)

	var (
		profile       recommend.GuestProfile
		profileType   string
		labels        string
		dietary       string
		accessibility string
		budgetTier    string
	)
	err = row.Scan(&profile.GuestID, &profileType, &labels, &dietary,
		&accessibility, &budgetTier, &profile.Adults, &profile.Children)
	observe("select", "guests", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, recommend.ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query guest %s: %w", guestID, err)
	}

	profile.ProfileType = recommend.ProfileType(profileType)
	if !profile.ProfileType.Valid() {
		profile.ProfileType = recommend.ProfileUnknown
	}
	profile.BudgetTier = recommend.NormalizeBudgetTier(budgetTier)
	if profile.Labels, err = decodeStringList(labels); err != nil {
		return nil, fmt.Errorf("invalid labels for guest %s: %w", guestID, err)
	}
	if profile.Dietary, err = decodeStringList(dietary); err != nil {
		return nil, fmt.Errorf("invalid dietary list for guest %s: %w", guestID, err)
	}
	if profile.Accessibility, err = decodeStringList(accessibility); err != nil {
		return nil, fmt.Errorf("invalid accessibility list for guest %s: %w", guestID, err)
	}

	return &profile, nil
}

// GetGuest returns the full guest record for the management API.
func (db *DB) GetGuest(ctx context.Context, guestID string) (*models.Guest, error) {
	start := time.Now()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, property_id, full_name, profile_type, labels, dietary,
			accessibility, budget_tier, adults, children, check_in, check_out,
			created_at, updated_at
		FROM guests WHERE id = ?`, guestID)

	guest, err := scanGuest(row)
	observe("select", "guests", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query guest %s: %w", guestID, err)
	}
	return guest, nil
}

// ListGuests returns all guests registered to a property.
func (db *DB) ListGuests(ctx context.Context, propertyID string) ([]models.Guest, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, property_id, full_name, profile_type, labels, dietary,
			accessibility, budget_tier, adults, children, check_in, check_out,
			created_at, updated_at
		FROM guests WHERE property_id = ? ORDER BY full_name`, propertyID)
	observe("select", "guests", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	guests := make([]models.Guest, 0, 16)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest row: %w", err)
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

// UpsertGuest inserts or replaces a guest record.
func (db *DB) UpsertGuest(ctx context.Context, guest *models.Guest) error {
	start := time.Now()

	labels, err := encodeStringList(guest.Labels)
	if err != nil {
		return fmt.Errorf("failed to encode guest labels: %w", err)
	}
	dietary, err := encodeStringList(guest.Dietary)
	if err != nil {
		return fmt.Errorf("failed to encode dietary list: %w", err)
	}
	accessibility, err := encodeStringList(guest.Accessibility)
	if err != nil {
		return fmt.Errorf("failed to encode accessibility list: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO guests (
			id, property_id, full_name, profile_type, labels, dietary,
			accessibility, budget_tier, adults, children, check_in, check_out,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		guest.ID, guest.PropertyID, guest.FullName, guest.ProfileType,
		labels, dietary, accessibility, guest.BudgetTier,
		guest.Adults, guest.Children, guest.CheckIn, guest.CheckOut,
	)
	observe("upsert", "guests", start, err)
	if err != nil {
		return fmt.Errorf("failed to upsert guest: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGuest(row rowScanner) (*models.Guest, error) {
	var (
		guest         models.Guest
		labels        string
		dietary       string
		accessibility string
		checkIn       sql.NullTime
		checkOut      sql.NullTime
	)
	err := row.Scan(&guest.ID, &guest.PropertyID, &guest.FullName,
		&guest.ProfileType, &labels, &dietary, &accessibility,
		&guest.BudgetTier, &guest.Adults, &guest.Children,
		&checkIn, &checkOut, &guest.CreatedAt, &guest.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if guest.Labels, err = decodeStringList(labels); err != nil {
		return nil, err
	}
	if guest.Dietary, err = decodeStringList(dietary); err != nil {
		return nil, err
	}
	if guest.Accessibility, err = decodeStringList(accessibility); err != nil {
		return nil, err
	}
	if checkIn.Valid {
		guest.CheckIn = &checkIn.Time
	}
	if checkOut.Valid {
		guest.CheckOut = &checkOut.Time
	}
	return &guest, nil
}
