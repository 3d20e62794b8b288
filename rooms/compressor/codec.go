// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import "encoding/binary"

// EncodeStateDiff packs a StateDiff into its on-disk representation:
//
//	[0..8)      parent SSH, 0 if none
//	[8..)       each CSE of Added, 16 bytes apiece, any order
//	optional    one all-zero 8-byte sentinel, present iff Removed is non-empty
//	            then each CSE of Removed, 16 bytes apiece, any order
//
// A live SSK is interned starting at 1, so the first 8 bytes of a real
// CSE are never all-zero; the sentinel is therefore unambiguous without
// a length prefix.
func EncodeStateDiff(d StateDiff) []byte {
	added := d.Added
	removed := d.Removed
	n := 8 + cseSize*added.Cardinality()
	if removed.Cardinality() > 0 {
		n += 8 + cseSize*removed.Cardinality()
	}
	out := make([]byte, n)
	binary.BigEndian.PutUint64(out[0:8], uint64(d.Parent))

	off := 8
	for _, c := range added.ToSlice() {
		copy(out[off:off+cseSize], c[:])
		off += cseSize
	}
	if removed.Cardinality() > 0 {
		off += 8 // sentinel is already zeroed by make([]byte, n)
		for _, c := range removed.ToSlice() {
			copy(out[off:off+cseSize], c[:])
			off += cseSize
		}
	}
	return out
}

// DecodeStateDiff parses the on-disk representation written by
// EncodeStateDiff. A truncated record, or one with a dangling partial
// CSE at the end, is reported as a CorruptRecordError.
func DecodeStateDiff(ssh SSH, raw []byte) (StateDiff, error) {
	if len(raw) < 8 {
		return StateDiff{}, &CorruptRecordError{SSH: ssh, Reason: "record shorter than the parent field"}
	}
	parent := SSH(binary.BigEndian.Uint64(raw[0:8]))
	body := raw[8:]
	// A body with no removals is a run of 16-byte CSEs (≡0 mod 16); one
	// with removals inserts an 8-byte sentinel before the removed run
	// (≡8 mod 16). Either way it's 8-byte aligned: check that much here
	// and let the mode-switching loop below, plus the final length
	// check, catch anything less structured than that.
	if len(body)%8 != 0 {
		return StateDiff{}, &CorruptRecordError{SSH: ssh, Reason: "trailing bytes not a multiple of 8"}
	}

	added := NewStateSet()
	removed := NewStateSet()
	addMode := true
	i := 0
	for i+cseSize <= len(body) {
		var head CSE
		copy(head[:], body[i:i+cseSize])
		if addMode && head.isSentinel() {
			addMode = false
			i += 8
			continue
		}
		if addMode {
			added.Add(head)
		} else {
			removed.Add(head)
		}
		i += cseSize
	}
	if i != len(body) {
		return StateDiff{}, &CorruptRecordError{SSH: ssh, Reason: "dangling partial CSE at end of record"}
	}
	return StateDiff{Parent: parent, Added: added, Removed: removed}, nil
}
