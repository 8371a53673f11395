/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package source

import (
	"slices"
	"time"
)

// Resolve maps a query time onto the ascending timestamps, returning the
// timestamp whose unit governs it:
//
//   - an exact match resolves to itself
//   - a time before the first timestamp resolves to the first
//   - a time strictly between a and b resolves to a
//   - a time past the last timestamp resolves to the last
//
// stamps must be non-empty and strictly ascending.
func Resolve(stamps []time.Duration, at time.Duration) time.Duration {
	i, found := slices.BinarySearch(stamps, at)
	switch {
	case found:
		return stamps[i]
	case i == 0:
		return stamps[0]
	default:
		// i is the insertion point, so stamps[i-1] < at, and either
		// at < stamps[i] or at is past the end (clamp to last).
		return stamps[i-1]
	}
}
