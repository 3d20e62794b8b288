// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import "testing"

func cse(ssk, sei uint64) CSE { return ComposeCSE(SSK(ssk), SEI(sei)) }

func setsEqual(a, b StateSet) bool {
	return a.Equal(b)
}

func TestCodecRoundTripBaseLayer(t *testing.T) {
	d := StateDiff{
		Parent:  0,
		Added:   NewStateSet(cse(1, 100), cse(2, 200)),
		Removed: NewStateSet(),
	}
	got, err := DecodeStateDiff(1, EncodeStateDiff(d))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Parent != d.Parent || !setsEqual(got.Added, d.Added) || !setsEqual(got.Removed, d.Removed) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
	}
}

func TestCodecRoundTripWithRemovals(t *testing.T) {
	d := StateDiff{
		Parent:  42,
		Added:   NewStateSet(cse(2, 0xC)),
		Removed: NewStateSet(cse(2, 0xB)),
	}
	got, err := DecodeStateDiff(2, EncodeStateDiff(d))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Parent != d.Parent || !setsEqual(got.Added, d.Added) || !setsEqual(got.Removed, d.Removed) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
	}
}

func TestCodecEmptyDiff(t *testing.T) {
	d := StateDiff{Parent: 7, Added: NewStateSet(), Removed: NewStateSet()}
	got, err := DecodeStateDiff(3, EncodeStateDiff(d))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Added.Cardinality() != 0 || got.Removed.Cardinality() != 0 {
		t.Fatalf("expected empty sets, got added=%d removed=%d", got.Added.Cardinality(), got.Removed.Cardinality())
	}
}

func TestCodecSentinelSafety(t *testing.T) {
	for ssk := uint64(1); ssk < 5; ssk++ {
		c := cse(ssk, 0)
		if c.isSentinel() {
			t.Fatalf("CSE from live ssk %d must never look like the sentinel", ssk)
		}
	}
}

func TestCodecTruncatedRecord(t *testing.T) {
	if _, err := DecodeStateDiff(9, []byte{0, 0, 0}); err == nil {
		t.Fatalf("expected CorruptRecordError for a too-short record")
	}
	raw := EncodeStateDiff(StateDiff{Added: NewStateSet(cse(1, 1)), Removed: NewStateSet()})
	if _, err := DecodeStateDiff(9, raw[:len(raw)-1]); err == nil {
		t.Fatalf("expected CorruptRecordError for a record with dangling trailing bytes")
	}
}
