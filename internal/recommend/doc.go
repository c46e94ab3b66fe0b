// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

// Package recommend implements the context-aware recommendation engine.
//
// The engine scores property catalog items (activities, dining venues,
// events) against the resolved guest and environment context. Each
// registered factor contributes a bounded number of points on top of a
// fixed base score; the total is clamped to [0, 100]. Items are ranked
// deterministically (score, then display order, then title), mixed-kind
// lists are diversified with a per-kind cap, and reason tags are rendered
// into guest-facing explanation strings.
//
// The package has no storage, transport or notification dependencies.
// Catalog, guest and weather data arrive through the CatalogProvider,
// GuestProvider and WeatherProvider interfaces; failures of the latter two
// degrade to a neutral context instead of failing the request.
package recommend
