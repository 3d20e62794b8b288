// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import (
	"encoding/binary"

	"github.com/0xSerhii/conduwuit/ethdb"
)

// shortStateHashStateDiffPrefix namespaces the compressor's records
// within a shared key-value store, the same "table" convention the
// teacher uses for its rawdb columns (e.g. headerPrefix, blockPrefix).
var shortStateHashStateDiffPrefix = []byte("ssd-")

// DiffStore is a thin, typed persistence layer over a KeyValueStore: the
// key is the 8-byte big-endian SSH behind shortStateHashStateDiffPrefix,
// the Codec-encoded StateDiff is the value. It performs no validation of its own; the Compressor API is
// responsible for never overwriting an existing SSH.
type DiffStore struct {
	db ethdb.KeyValueStore
}

// NewDiffStore wraps db as the shortstatehash_statediff column.
func NewDiffStore(db ethdb.KeyValueStore) *DiffStore {
	return &DiffStore{db: db}
}

func diffStoreKey(ssh SSH) []byte {
	key := make([]byte, len(shortStateHashStateDiffPrefix)+8)
	n := copy(key, shortStateHashStateDiffPrefix)
	binary.BigEndian.PutUint64(key[n:], uint64(ssh))
	return key
}

// Get returns the StateDiff stored for ssh, or a *NotFoundError /
// *CorruptRecordError.
func (s *DiffStore) Get(ssh SSH) (StateDiff, error) {
	raw, err := s.db.Get(diffStoreKey(ssh))
	if err != nil {
		return StateDiff{}, &NotFoundError{SSH: ssh}
	}
	return DecodeStateDiff(ssh, raw)
}

// Put persists diff under ssh. Overwriting an existing SSH is forbidden
// by the Compressor API's write-once contract, but this store does not
// enforce it itself.
func (s *DiffStore) Put(ssh SSH, diff StateDiff) error {
	return s.db.Put(diffStoreKey(ssh), EncodeStateDiff(diff))
}
