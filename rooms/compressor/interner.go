// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import "context"

// EventInterner is the short-id interner's event-id table: an
// injective mapping between event ids and their interned SEI. It is an
// external collaborator, referenced only by this interface so tests can
// substitute an in-memory fake (see compressortest).
type EventInterner interface {
	// InternEvent interns eventID, returning its SEI. Idempotent, never
	// returns 0.
	InternEvent(ctx context.Context, eventID []byte) (SEI, error)
	// ResolveEvent resolves sei back to the event id it was interned
	// from, or an *UnknownEventShortError.
	ResolveEvent(ctx context.Context, sei SEI) ([]byte, error)
}

// StateHashInterner is the short-id interner's state-hash table.
type StateHashInterner interface {
	// InternStateHash interns hash, returning its SSH and whether the
	// same hash had already been interned. Idempotent, never returns 0.
	InternStateHash(ctx context.Context, hash []byte) (ssh SSH, existed bool, err error)
}

// RoomIndex is the room-state index: a read-only (from the
// compressor's perspective) mapping from room id to that room's
// current short-state-hash.
type RoomIndex interface {
	// GetRoomShortStateHash returns the room's current SSH, or ok=false
	// if the room has no recorded state yet.
	GetRoomShortStateHash(ctx context.Context, roomID string) (ssh SSH, ok bool, err error)
}
