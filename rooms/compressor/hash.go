// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// stableHash computes a deterministic digest of a StateSet's
// membership, independent of insertion order: the spec requires
// callers to feed CSEs in canonical (lexicographic) order into a fixed
// hash function so that two sets with identical membership always
// produce the same short-state-hash (spec §8 property 8, "stable
// hashing").
func stableHash(s StateSet) []byte {
	h := xxhash.New()
	for _, c := range sortedCSEs(s) {
		h.Write(c[:])
	}
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], h.Sum64())
	return out[:]
}
