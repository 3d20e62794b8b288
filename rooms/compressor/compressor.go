// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import (
	"context"

	"github.com/0xSerhii/conduwuit/ethdb"
	"github.com/0xSerhii/conduwuit/log"
)

// diffToSiblingSeed is the initial diff_to_sibling value save_state
// hands the layer engine: "every state change is roughly 2 event
// changes on average" in the source system this was ported from.
const diffToSiblingSeed = 2

// Compressor is the room state compressor's public surface: C5 in the
// component table. It owns the diff store and cache and depends on the
// two external collaborators (the short-id interner and the room-state
// index) only through their narrow interfaces, so a server wires in its
// real implementations while tests substitute compressortest's fakes.
type Compressor struct {
	diffStore    *DiffStore
	materializer *materializer
	cache        *Cache
	events       EventInterner
	stateHashes  StateHashInterner
	rooms        RoomIndex
}

// New constructs a Compressor. cfg determines the materialized-stack
// cache's effective capacity; an invalid cfg is an initialization
// error (ErrCacheCapacity).
func New(db ethdb.KeyValueStore, events EventInterner, stateHashes StateHashInterner, rooms RoomIndex, cfg CacheConfig) (*Compressor, error) {
	capacity, err := cfg.EffectiveCapacity()
	if err != nil {
		return nil, err
	}
	cache, err := NewCache(capacity)
	if err != nil {
		return nil, err
	}
	store := NewDiffStore(db)
	return &Compressor{
		diffStore:    store,
		materializer: newMaterializer(store, cache),
		cache:        cache,
		events:       events,
		stateHashes:  stateHashes,
		rooms:        rooms,
	}, nil
}

// Compress interns eventID and packs it with ssk into a CSE.
func (c *Compressor) Compress(ctx context.Context, ssk SSK, eventID []byte) (CSE, error) {
	sei, err := c.events.InternEvent(ctx, eventID)
	if err != nil {
		return CSE{}, err
	}
	return ComposeCSE(ssk, sei), nil
}

// Parse splits a CSE back into its SSK and the event id its SEI half
// resolves to.
func (c *Compressor) Parse(ctx context.Context, compressed CSE) (SSK, []byte, error) {
	eventID, err := c.events.ResolveEvent(ctx, compressed.SEI())
	if err != nil {
		return 0, nil, err
	}
	return compressed.SSK(), eventID, nil
}

// LoadShortStateHashInfo is the Materializer's entry point: the
// root-first, tip-last stack of ShortStateInfo for ssh.
func (c *Compressor) LoadShortStateHashInfo(ctx context.Context, ssh SSH) (Stack, error) {
	return c.materializer.load(ssh)
}

// ClearCache empties the materialized-stack cache.
func (c *Compressor) ClearCache() { c.cache.Clear() }

// CacheLen reports the number of stacks currently cached, for a
// server's memory-usage diagnostics.
func (c *Compressor) CacheLen() int { return c.cache.Len() }

// SaveState computes and persists the diff chain entry for roomID's new
// full state set, following spec §4.5 step by step. Nothing is written
// when the set is the room's current state, or when its state hash was
// already interned (that SSH already has its record).
func (c *Compressor) SaveState(ctx context.Context, roomID string, newState StateSet) (SavedState, error) {
	previousSSH, hadPrevious, err := c.rooms.GetRoomShortStateHash(ctx, roomID)
	if err != nil {
		return SavedState{}, err
	}

	hash := stableHash(newState)
	newSSH, existed, err := c.stateHashes.InternStateHash(ctx, hash)
	if err != nil {
		return SavedState{}, err
	}

	if hadPrevious && newSSH == previousSSH {
		return SavedState{SSH: newSSH, Added: NewStateSet(), Removed: NewStateSet()}, nil
	}

	var parentStack Stack
	if hadPrevious {
		parentStack, err = c.materializer.load(previousSSH)
		if err != nil {
			// A missing or corrupt parent degrades to "no history": a
			// fresh-room semantic that must not block new writes (spec
			// §7 propagation policy, the one case where a library error
			// is swallowed rather than surfaced).
			log.Warn("save_state: failed to load previous state, treating as fresh history", "room", roomID, "previous_ssh", uint64(previousSSH), "err", err)
			parentStack = nil
		}
	}

	var added, removed StateSet
	if len(parentStack) > 0 {
		tip := parentStack[len(parentStack)-1]
		added = newState.Difference(tip.Full)
		removed = tip.Full.Difference(newState)
	} else {
		added = newState.Clone()
		removed = NewStateSet()
	}

	if !existed {
		if err := c.saveFromDiff(newSSH, added, removed, diffToSiblingSeed, parentStack); err != nil {
			return SavedState{}, err
		}
	}

	return SavedState{SSH: newSSH, Added: added, Removed: removed}, nil
}
