// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import "github.com/0xSerhii/conduwuit/log"

// materializer reconstructs the full state set for a short-state-hash
// by walking its parent chain. Chains may run thousands of layers deep,
// so the walk is iterative rather than recursive (spec §4.4: "avoid
// unbounded native stack growth").
type materializer struct {
	store *DiffStore
	cache *Cache
}

func newMaterializer(store *DiffStore, cache *Cache) *materializer {
	return &materializer{store: store, cache: cache}
}

// load returns the root-first, tip-last stack of ShortStateInfo for
// ssh, consulting the cache first and populating it on a miss.
func (m *materializer) load(ssh SSH) (Stack, error) {
	if s, ok := m.cache.get(ssh); ok {
		return s, nil
	}

	// Walk from ssh down to the nearest cached ancestor or a base layer,
	// collecting the diffs we'll need to replay forwards. chain is tip
	// (index 0) to root (last index).
	var chain []StateDiff
	var chainSSH []SSH

	cur := ssh
	var base Stack
	for {
		if s, ok := m.cache.get(cur); ok {
			base = s
			break
		}
		diff, err := m.store.Get(cur)
		if err != nil {
			return nil, err
		}
		chain = append(chain, diff)
		chainSSH = append(chainSSH, cur)
		if diff.Parent == 0 {
			break
		}
		cur = diff.Parent
	}

	// Replay the collected diffs forwards (root-first) onto base.
	result := cloneStack(base)
	for i := len(chain) - 1; i >= 0; i-- {
		diff := chain[i]
		layerSSH := chainSSH[i]

		var full StateSet
		if len(result) == 0 {
			// Base layer: added is the full state (invariant 1).
			full = diff.Added
		} else {
			full = result[len(result)-1].Full.Union(diff.Added)
			full = full.Difference(diff.Removed)
		}
		result = append(result, ShortStateInfo{
			SSH:     layerSSH,
			Full:    full,
			Added:   diff.Added,
			Removed: diff.Removed,
		})
	}

	log.Debug("materialized state stack", "ssh", uint64(ssh), "layers", len(result))
	m.cache.insert(result)
	return result, nil
}
