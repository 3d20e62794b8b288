// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

// Package compressor implements the room state compressor: a layered
// diff chain over room state versions, trading O(delta) writes for the
// naive O(|state|) rewrite on every change, with an in-memory cache
// that makes full materialization cheap.
package compressor

import (
	"encoding/binary"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// SSH is a short-state-hash: an interned id of one immutable room-state
// version. Zero means "none" on the wire.
type SSH uint64

// SSK is a short-state-key: an interned id for an (event-type, state-key) pair.
type SSK uint64

// SEI is a short-event-id: an interned id for an event id.
type SEI uint64

const cseSize = 16

// CSE is a compressed state event: the big-endian concatenation of an
// SSK and an SEI. It is the atomic unit of room state.
type CSE [cseSize]byte

// ComposeCSE packs an SSK and SEI into their on-disk CSE representation.
func ComposeCSE(ssk SSK, sei SEI) CSE {
	var c CSE
	binary.BigEndian.PutUint64(c[0:8], uint64(ssk))
	binary.BigEndian.PutUint64(c[8:16], uint64(sei))
	return c
}

// SSK returns the short-state-key half of the CSE.
func (c CSE) SSK() SSK { return SSK(binary.BigEndian.Uint64(c[0:8])) }

// SEI returns the short-event-id half of the CSE.
func (c CSE) SEI() SEI { return SEI(binary.BigEndian.Uint64(c[8:16])) }

// isSentinel reports whether the first 8 bytes of the CSE are the
// all-zero separator the codec uses between the added and removed runs.
// A live SSK is allocated starting at 1, so this is only ever true for
// the sentinel itself, never for a real CSE (spec invariant: sentinel
// safety).
func (c CSE) isSentinel() bool {
	for _, b := range c[0:8] {
		if b != 0 {
			return false
		}
	}
	return true
}

// StateSet is an unordered set of CSEs. Membership tests and
// set-difference are the hot operations, so it is backed by a generic
// set rather than a bespoke map wrapper.
type StateSet = mapset.Set[CSE]

// NewStateSet returns a new, empty StateSet, optionally seeded with elems.
func NewStateSet(elems ...CSE) StateSet {
	return mapset.NewThreadUnsafeSet(elems...)
}

// sortedCSEs returns the elements of s in ascending lexicographic byte
// order, the canonical order stable hashing requires (spec §4.5 step 2)
// so that two sets with identical membership always hash the same
// regardless of insertion or iteration order. Full room states can run
// into the thousands of members, so this goes through sort.Slice rather
// than a quadratic hand-rolled sort.
func sortedCSEs(s StateSet) []CSE {
	out := s.ToSlice()
	sort.Slice(out, func(i, j int) bool { return lessCSE(out[i], out[j]) })
	return out
}

func lessCSE(a, b CSE) bool {
	for i := 0; i < cseSize; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// StateDiff is the sole persisted record type: one layer of a room
// state's diff chain.
type StateDiff struct {
	Parent  SSH // zero means "no parent" (a base layer)
	Added   StateSet
	Removed StateSet
}

// ShortStateInfo is one entry of a materialized stack: the full state
// at a given layer plus that single layer's own added/removed diff.
type ShortStateInfo struct {
	SSH     SSH
	Full    StateSet
	Added   StateSet
	Removed StateSet
}

// cost is the size of a layer's own diff (added plus removed); the layer
// engine's heuristic uses it as the tip layer's cost P.
func (s ShortStateInfo) cost() int {
	return s.Added.Cardinality() + s.Removed.Cardinality()
}

// SavedState is the result of a successful SaveState call: the new
// short-state-hash plus the diff against the room's previous state.
type SavedState struct {
	SSH     SSH
	Added   StateSet
	Removed StateSet
}
