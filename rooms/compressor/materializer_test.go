// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import (
	"testing"

	"github.com/0xSerhii/conduwuit/ethdb/memorydb"
)

func mustCache(t *testing.T, capacity int) *Cache {
	t.Helper()
	c, err := NewCache(capacity)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return c
}

func TestMaterializerBaseLayer(t *testing.T) {
	store := NewDiffStore(memorydb.New())
	store.Put(1, StateDiff{Parent: 0, Added: NewStateSet(cse(1, 1), cse(2, 2)), Removed: NewStateSet()})

	m := newMaterializer(store, mustCache(t, 8))
	s, err := m.load(1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(s))
	}
	if s[0].Full.Cardinality() != 2 {
		t.Fatalf("expected full state of 2, got %d", s[0].Full.Cardinality())
	}
}

func TestMaterializerChain(t *testing.T) {
	store := NewDiffStore(memorydb.New())
	store.Put(1, StateDiff{Parent: 0, Added: NewStateSet(cse(1, 1)), Removed: NewStateSet()})
	store.Put(2, StateDiff{Parent: 1, Added: NewStateSet(cse(2, 2)), Removed: NewStateSet()})
	store.Put(3, StateDiff{Parent: 2, Added: NewStateSet(cse(2, 3)), Removed: NewStateSet(cse(2, 2))})

	m := newMaterializer(store, mustCache(t, 8))
	s, err := m.load(3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(s))
	}
	full := s[len(s)-1].Full
	if !full.Contains(cse(1, 1)) || !full.Contains(cse(2, 3)) || full.Contains(cse(2, 2)) {
		t.Fatalf("unexpected materialized state: %v", full.ToSlice())
	}
}

func TestMaterializerCacheTransparency(t *testing.T) {
	store := NewDiffStore(memorydb.New())
	store.Put(1, StateDiff{Parent: 0, Added: NewStateSet(cse(1, 1)), Removed: NewStateSet()})
	store.Put(2, StateDiff{Parent: 1, Added: NewStateSet(cse(2, 2)), Removed: NewStateSet()})

	cache := mustCache(t, 8)
	m := newMaterializer(store, cache)

	cold, err := m.load(2)
	if err != nil {
		t.Fatalf("cold load: %v", err)
	}
	warm, err := m.load(2)
	if err != nil {
		t.Fatalf("warm load: %v", err)
	}
	if len(cold) != len(warm) || !cold[len(cold)-1].Full.Equal(warm[len(warm)-1].Full) {
		t.Fatalf("cold and warm loads disagree")
	}
}

func TestMaterializerNotFound(t *testing.T) {
	store := NewDiffStore(memorydb.New())
	m := newMaterializer(store, mustCache(t, 8))
	if _, err := m.load(123); err == nil {
		t.Fatalf("expected an error for a missing ssh")
	}
}

func TestMaterializerDeepChainNoStackOverflow(t *testing.T) {
	store := NewDiffStore(memorydb.New())
	const depth = 5000
	store.Put(1, StateDiff{Parent: 0, Added: NewStateSet(cse(1, 1)), Removed: NewStateSet()})
	for i := SSH(2); i <= depth; i++ {
		store.Put(i, StateDiff{Parent: i - 1, Added: NewStateSet(cse(uint64(i), uint64(i))), Removed: NewStateSet()})
	}
	m := newMaterializer(store, mustCache(t, 0)) // cache disabled, forces a full walk
	s, err := m.load(depth)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s) != depth {
		t.Fatalf("expected %d layers, got %d", depth, len(s))
	}
	if s[len(s)-1].Full.Cardinality() != depth {
		t.Fatalf("expected %d entries in full state, got %d", depth, s[len(s)-1].Full.Cardinality())
	}
}
