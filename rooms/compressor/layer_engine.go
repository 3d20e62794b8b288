// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import "github.com/0xSerhii/conduwuit/log"

// maxLayerDepth bounds materialization cost at O(maxLayerDepth+1) disk
// reads per state load: once the parent stack holds more than
// maxLayerDepth layers, the engine folds the new change into the tip
// layer and places the combined diff one level lower rather than
// appending.
const maxLayerDepth = 3

// fold merges a new (added, removed) change into an ancestor layer's
// own (A, R), implementing the ⊕ operator from spec §4.6:
//
//	(A, R) ⊕ (a, r) = (A′, R′)
//	A′ = (A \ r) ∪ (a \ R)
//	R′ = (R \ a) ∪ (r \ A)
//
// Both passes below implement this in place on fresh copies of A and R,
// so the ancestor's own sets are never mutated (copy-on-write).
func fold(a, r StateSet, added, removed StateSet) (StateSet, StateSet) {
	newAdded := a.Clone()
	newRemoved := r.Clone()

	for _, x := range removed.ToSlice() {
		if !removeReports(newAdded, x) {
			// x was not added by the ancestor layer; it's a genuine removal.
			newRemoved.Add(x)
		}
		// Else the ancestor added x and we're removing it again: they cancel.
	}
	for _, x := range added.ToSlice() {
		if !removeReports(newRemoved, x) {
			// x was not touched by the ancestor layer; it's a genuine addition.
			newAdded.Add(x)
		}
		// Else the ancestor removed x and we're adding it again: they cancel.
	}
	return newAdded, newRemoved
}

// removeReports deletes x from s if present and reports whether it was
// present, the Go equivalent of Rust's HashSet::remove return value.
func removeReports(s StateSet, x CSE) bool {
	existed := s.Contains(x)
	if existed {
		s.Remove(x)
	}
	return existed
}

// checkedSquare returns d*d, or ErrArithmeticOverflow if the product
// would overflow a uint64. The layer engine's heuristic treats overflow
// as a hard error rather than silently folding, since it signals a
// pathologically large state that should not be silently compressed
// (spec §4.6 failure semantics).
func checkedSquare(d uint64) (uint64, error) {
	return checkedMul(d, d)
}

func checkedMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/a != b {
		return 0, ErrArithmeticOverflow
	}
	return p, nil
}

// saveFromDiff is the Layer Engine: it decides, possibly recursing,
// whether ssh's (added, removed) change should be appended as a new
// layer on top of parentStack's tip or folded into an ancestor, then
// persists exactly one StateDiff record for ssh.
//
// diffToSibling is the sibling baseline the heuristic compares the new
// diff's cost against; save_state always starts it at 2 ("every state
// change is roughly 2 event changes on average" in the source system).
func (c *Compressor) saveFromDiff(ssh SSH, added, removed StateSet, diffToSibling int, parentStack Stack) error {
	d := added.Cardinality() + removed.Cardinality()

	if len(parentStack) > maxLayerDepth {
		tip := parentStack[len(parentStack)-1]
		parentStack = parentStack[:len(parentStack)-1]

		newAdded, newRemoved := fold(tip.Added, tip.Removed, added, removed)
		log.Debug("layer engine: depth cap folds into ancestor", "ssh", uint64(ssh), "folded_into", uint64(tip.SSH))
		return c.saveFromDiff(ssh, newAdded, newRemoved, d, parentStack)
	}

	if len(parentStack) == 0 {
		log.Debug("layer engine: persisting base layer", "ssh", uint64(ssh))
		return c.diffStore.Put(ssh, StateDiff{Parent: 0, Added: added, Removed: removed})
	}

	tip := parentStack[len(parentStack)-1]
	tipCost := uint64(tip.cost())

	dSquared, err := checkedSquare(uint64(d))
	if err != nil {
		return err
	}
	threshold, err := checkedMul(2, uint64(diffToSibling))
	if err != nil {
		return err
	}
	threshold, err = checkedMul(threshold, tipCost)
	if err != nil {
		return err
	}

	if dSquared >= threshold {
		newAdded, newRemoved := fold(tip.Added, tip.Removed, added, removed)
		log.Debug("layer engine: heuristic folds into ancestor", "ssh", uint64(ssh), "folded_into", uint64(tip.SSH), "diff_cost", d, "tip_cost", tip.cost())
		return c.saveFromDiff(ssh, newAdded, newRemoved, d, parentStack[:len(parentStack)-1])
	}

	log.Debug("layer engine: persisting as child of tip", "ssh", uint64(ssh), "parent", uint64(tip.SSH), "diff_cost", d, "tip_cost", tip.cost())
	return c.diffStore.Put(ssh, StateDiff{Parent: tip.SSH, Added: added, Removed: removed})
}
