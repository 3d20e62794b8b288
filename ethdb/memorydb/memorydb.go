// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

// Package memorydb implements the ethdb.KeyValueStore capability
// in-memory, for tests and for exercising the compressor without a
// real embedded database.
package memorydb

import (
	"sync"

	"github.com/0xSerhii/conduwuit/ethdb"
)

// Database is an ephemeral, goroutine-safe key-value store.
type Database struct {
	lock sync.RWMutex
	data map[string][]byte
}

// New returns a new, empty in-memory database.
func New() *Database {
	return &Database{data: make(map[string][]byte)}
}

var _ ethdb.KeyValueStore = (*Database)(nil)

// Has implements ethdb.KeyValueReader.
func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	_, ok := db.data[string(key)]
	return ok, nil
}

// Get implements ethdb.KeyValueReader.
func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if v, ok := db.data[string(key)]; ok {
		cp := make([]byte, len(v))
		copy(cp, v)
		return cp, nil
	}
	return nil, ethdb.ErrNotFound
}

// Put implements ethdb.KeyValueWriter.
func (db *Database) Put(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	db.data[string(key)] = cp
	return nil
}

// Delete implements ethdb.KeyValueWriter.
func (db *Database) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.data, string(key))
	return nil
}

// Len returns the number of keys currently stored, handy in tests that
// assert on write counts without reaching into the lock.
func (db *Database) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()

	return len(db.data)
}
