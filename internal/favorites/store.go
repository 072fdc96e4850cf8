// Package favorites keeps each visitor's favorite-vehicle list: a JSON-encoded
// array of vehicle ids under a fixed per-visitor key. The list is a pure
// client preference, so every toggle replaces the whole list and a missing or
// malformed value degrades to an empty list instead of an error.
package favorites

import (
	"context"
	"encoding/json"
)

const keyPrefix = "favorites:"

// KV is the minimal key/value contract the store needs. Implemented by the
// Redis adapter in production and by an in-memory map in tests.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func key(visitorID string) string {
	return keyPrefix + visitorID
}

// List returns the visitor's favorite vehicle ids. Absent, unreadable or
// malformed values yield an empty list.
func (s *Store) List(ctx context.Context, visitorID string) []string {
	raw, ok, err := s.kv.Get(ctx, key(visitorID))
	if err != nil || !ok {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil || ids == nil {
		return []string{}
	}
	return ids
}

// Contains reports whether the vehicle is in the visitor's favorites.
func (s *Store) Contains(ctx context.Context, visitorID, vehicleID string) bool {
	for _, id := range s.List(ctx, visitorID) {
		if id == vehicleID {
			return true
		}
	}
	return false
}

// Toggle adds the vehicle to the favorites if absent and removes it if
// present, rewriting the whole list. It reports whether the vehicle is a
// favorite after the call.
func (s *Store) Toggle(ctx context.Context, visitorID, vehicleID string) (bool, error) {
	current := s.List(ctx, visitorID)

	next := make([]string, 0, len(current)+1)
	added := true
	for _, id := range current {
		if id == vehicleID {
			added = false
			continue
		}
		next = append(next, id)
	}
	if added {
		next = append(next, vehicleID)
	}

	if err := s.write(ctx, visitorID, next); err != nil {
		return false, err
	}
	return added, nil
}

// Add puts the vehicle into the favorites if it is not there yet.
func (s *Store) Add(ctx context.Context, visitorID, vehicleID string) error {
	if s.Contains(ctx, visitorID, vehicleID) {
		return nil
	}
	return s.write(ctx, visitorID, append(s.List(ctx, visitorID), vehicleID))
}

// Remove drops the vehicle from the favorites.
func (s *Store) Remove(ctx context.Context, visitorID, vehicleID string) error {
	current := s.List(ctx, visitorID)
	next := make([]string, 0, len(current))
	for _, id := range current {
		if id != vehicleID {
			next = append(next, id)
		}
	}
	return s.write(ctx, visitorID, next)
}

func (s *Store) write(ctx context.Context, visitorID string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key(visitorID), string(data))
}
