// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Stack is the root-first, tip-last sequence of ShortStateInfo the
// Materializer produces for one short-state-hash.
type Stack []ShortStateInfo

// Cache is a bounded LRU of materialized stacks, keyed by the
// short-state-hash of the stack's tip. It is purely a performance aid:
// correctness never depends on a hit. Every critical section here is
// strictly get-and-clone, insert, clear, or len — no I/O runs while the
// underlying lock is held.
type Cache struct {
	lru *lru.Cache[SSH, Stack]
}

// NewCache builds a cache with the given capacity. A non-positive
// capacity disables caching: every load falls through to the
// Materializer.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return &Cache{}, nil
	}
	c, err := lru.New[SSH, Stack](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// get returns a clone of the cached stack for ssh, if present.
func (c *Cache) get(ssh SSH) (Stack, bool) {
	if c.lru == nil {
		return nil, false
	}
	s, ok := c.lru.Get(ssh)
	if !ok {
		return nil, false
	}
	return cloneStack(s), true
}

// insert stores a clone of s under its tip's SSH.
func (c *Cache) insert(s Stack) {
	if c.lru == nil || len(s) == 0 {
		return
	}
	c.lru.Add(s[len(s)-1].SSH, cloneStack(s))
}

// Clear empties the cache, e.g. in response to an operator's explicit
// "clear_cache" request.
func (c *Cache) Clear() {
	if c.lru != nil {
		c.lru.Purge()
	}
}

// Len returns the number of stacks currently cached.
func (c *Cache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// cloneStack makes a shallow copy of the stack slice. The ShortStateInfo
// entries' StateSets are immutable after creation and shared by
// reference (mapset.Set is already a pointer-backed handle), so cloning
// the slice is the only copy needed to hand callers an independent
// stack they can't corrupt by mutating the cached one.
func cloneStack(s Stack) Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
