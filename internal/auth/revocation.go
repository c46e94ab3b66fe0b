// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/stayloop/concierge/internal/logging"
)

const revokedKeyPrefix = "revoked:"

// RevocationStore records revoked token IDs until their natural expiry.
// Entries carry a Badger TTL matching the token lifetime, so the store
// cleans itself up and never grows beyond the active session window.
type RevocationStore struct {
	db *badger.DB
}

// NewRevocationStore opens a Badger store at the given path. An empty path
// selects an in-memory store, which loses revocations on restart but needs
// no disk; fine for development, not recommended in production.
func NewRevocationStore(path string) (*RevocationStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open revocation store: %w", err)
	}

	logging.Debug().Str("path", path).Msg("Opened token revocation store")
	return &RevocationStore{db: db}, nil
}

// Close releases the underlying store.
func (s *RevocationStore) Close() error {
	return s.db.Close()
}

// Revoke marks a token ID as revoked for the remainder of its lifetime.
func (s *RevocationStore) Revoke(claims *Claims) error {
	if claims.ID == "" {
		return fmt.Errorf("token has no id to revoke")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(revokedKeyPrefix+claims.ID), []byte{1})
		if claims.ExpiresAt != nil {
			if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
				entry = entry.WithTTL(ttl)
			}
		}
		return txn.SetEntry(entry)
	})
}

// RunGC runs one round of Badger value-log garbage collection. Badger
// returns ErrNoRewrite when there was nothing to reclaim; that is not an
// error for the caller.
func (s *RevocationStore) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// IsRevoked reports whether a token ID has been revoked.
func (s *RevocationStore) IsRevoked(jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(revokedKeyPrefix + jti))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return true, nil
}
