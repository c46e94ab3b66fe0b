// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package models

import "time"

// Property is a hospitality property (hotel, resort, aparthotel) whose
// catalog the engine recommends from.
type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Guest is a stored guest record with stay dates and preference data.
type Guest struct {
	ID            string     `json:"id"`
	PropertyID    string     `json:"property_id"`
	FullName      string     `json:"full_name"`
	ProfileType   string     `json:"profile_type"`
	Labels        []string   `json:"labels"`
	Dietary       []string   `json:"dietary,omitempty"`
	Accessibility []string   `json:"accessibility,omitempty"`
	BudgetTier    string     `json:"budget_tier"`
	Adults        int        `json:"adults"`
	Children      int        `json:"children"`
	CheckIn       *time.Time `json:"check_in,omitempty"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
