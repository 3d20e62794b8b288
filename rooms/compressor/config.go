// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

package compressor

import "math"

// CacheConfig carries the two knobs that determine the Cache's
// effective capacity.
type CacheConfig struct {
	// BaseCapacity is stateinfo_cache_capacity: the base LRU capacity.
	BaseCapacity int
	// Modifier is cache_capacity_modifier: a multiplier applied to the base.
	Modifier float64
}

// EffectiveCapacity computes floor(BaseCapacity * Modifier), returning
// ErrCacheCapacity if the configuration cannot be converted to a usable
// capacity (a negative base, a non-finite modifier, or a product that is
// negative or larger than math.MaxInt32).
func (c CacheConfig) EffectiveCapacity() (int, error) {
	if c.BaseCapacity < 0 {
		return 0, ErrCacheCapacity
	}
	if math.IsNaN(c.Modifier) || math.IsInf(c.Modifier, 0) {
		return 0, ErrCacheCapacity
	}
	product := math.Floor(float64(c.BaseCapacity) * c.Modifier)
	if product < 0 || product > math.MaxInt32 {
		return 0, ErrCacheCapacity
	}
	return int(product), nil
}
