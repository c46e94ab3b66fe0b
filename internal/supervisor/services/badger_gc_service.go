// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GCRunner is one garbage-collection round. Implemented by the auth
// service over its Badger revocation store.
type GCRunner interface {
	RunStoreGC() error
}

// BadgerGCService periodically compacts the session store's value log.
// Badger does not garbage-collect on its own; without this loop a
// long-running process slowly accumulates dead revocation entries on
// disk. Only useful for disk-backed stores; do not schedule it for
// in-memory ones.
type BadgerGCService struct {
	runner   GCRunner
	interval time.Duration
	logger   zerolog.Logger
}

// NewBadgerGCService creates the GC loop. interval defaults to 10 minutes.
func NewBadgerGCService(runner GCRunner, interval time.Duration, logger zerolog.Logger) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &BadgerGCService{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Serve implements suture.Service.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.runner.RunStoreGC(); err != nil {
				s.logger.Warn().Err(err).Msg("Session store GC round failed")
				continue
			}
			s.logger.Debug().Msg("Session store GC round complete")
		}
	}
}

// String identifies the service in suture log events.
func (s *BadgerGCService) String() string {
	return "session-store-gc"
}
