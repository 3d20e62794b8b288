// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

// Package compressortest provides in-memory stand-ins for the
// compressor's external collaborators (the short-id interner and the
// room-state index), for use in tests and examples. They are not meant
// for production: none of them persist anything.
package compressortest

import (
	"context"
	"sync"

	"github.com/0xSerhii/conduwuit/rooms/compressor"
)

// EventInterner is a trivial in-memory compressor.EventInterner.
type EventInterner struct {
	mu      sync.Mutex
	byID    map[string]compressor.SEI
	byShort map[compressor.SEI]string
	next    compressor.SEI
}

// NewEventInterner returns an empty EventInterner.
func NewEventInterner() *EventInterner {
	return &EventInterner{
		byID:    make(map[string]compressor.SEI),
		byShort: make(map[compressor.SEI]string),
	}
}

func (e *EventInterner) InternEvent(_ context.Context, eventID []byte) (compressor.SEI, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := string(eventID)
	if sei, ok := e.byID[key]; ok {
		return sei, nil
	}
	e.next++
	sei := e.next
	e.byID[key] = sei
	e.byShort[sei] = key
	return sei, nil
}

func (e *EventInterner) ResolveEvent(_ context.Context, sei compressor.SEI) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.byShort[sei]
	if !ok {
		return nil, &compressor.UnknownEventShortError{SEI: sei}
	}
	return []byte(id), nil
}

// StateHashInterner is a trivial in-memory compressor.StateHashInterner.
type StateHashInterner struct {
	mu   sync.Mutex
	byID map[string]compressor.SSH
	next compressor.SSH
}

// NewStateHashInterner returns an empty StateHashInterner.
func NewStateHashInterner() *StateHashInterner {
	return &StateHashInterner{byID: make(map[string]compressor.SSH)}
}

func (s *StateHashInterner) InternStateHash(_ context.Context, hash []byte) (compressor.SSH, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := string(hash)
	if ssh, ok := s.byID[key]; ok {
		return ssh, true, nil
	}
	s.next++
	ssh := s.next
	s.byID[key] = ssh
	return ssh, false, nil
}

// RoomIndex is a trivial in-memory compressor.RoomIndex.
type RoomIndex struct {
	mu     sync.Mutex
	byRoom map[string]compressor.SSH
}

// NewRoomIndex returns an empty RoomIndex.
func NewRoomIndex() *RoomIndex {
	return &RoomIndex{byRoom: make(map[string]compressor.SSH)}
}

func (r *RoomIndex) GetRoomShortStateHash(_ context.Context, roomID string) (compressor.SSH, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ssh, ok := r.byRoom[roomID]
	return ssh, ok, nil
}

// Set records roomID's current short-state-hash, as a server would
// after a successful SaveState call.
func (r *RoomIndex) Set(roomID string, ssh compressor.SSH) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byRoom[roomID] = ssh
}
