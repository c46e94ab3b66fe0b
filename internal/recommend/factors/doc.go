// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

// Package factors implements the independent factor scorers of the
// recommendation engine.
//
// Each scorer is a pure function of (item, guest context, environment
// context) returning a bounded point contribution, zero or more reason
// tags, and an optional hard exclusion. Hard exclusions mirror catalog
// availability (out of season, temperature outside an item's operating
// range) and remove an item before scoring; soft contributions only bias
// ranking.
//
// Contributions are expressed in score points on the engine's 0-100 scale
// and later multiplied by the per-factor weights in recommend.Config.
// Scorers never perform I/O and hold no mutable state, so the engine can
// evaluate items concurrently without coordination.
package factors
