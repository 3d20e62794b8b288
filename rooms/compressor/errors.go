// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import (
	"errors"
	"fmt"
)

// Sentinel errors; use errors.Is to test for these across the typed
// wrappers below.
var (
	ErrNotFound           = errors.New("compressor: no state diff for short-state-hash")
	ErrCorruptRecord      = errors.New("compressor: corrupt state diff record")
	ErrUnknownEventShort  = errors.New("compressor: unknown short-event-id")
	ErrArithmeticOverflow = errors.New("compressor: arithmetic overflow in layer engine")
	ErrCacheCapacity      = errors.New("compressor: invalid cache capacity configuration")
)

// NotFoundError reports that no StateDiff record exists for ssh.
type NotFoundError struct{ SSH SSH }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %d", ErrNotFound, uint64(e.SSH))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// CorruptRecordError reports a StateDiff record that failed to decode.
type CorruptRecordError struct {
	SSH    SSH
	Reason string
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("%v for %d: %s", ErrCorruptRecord, uint64(e.SSH), e.Reason)
}

func (e *CorruptRecordError) Unwrap() error { return ErrCorruptRecord }

// UnknownEventShortError reports that an SEI could not be resolved back
// to an event id.
type UnknownEventShortError struct{ SEI SEI }

func (e *UnknownEventShortError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnknownEventShort, uint64(e.SEI))
}

func (e *UnknownEventShortError) Unwrap() error { return ErrUnknownEventShort }
