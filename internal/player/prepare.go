/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package player

import "github.com/friendsincode/trecs/internal/unit"

// Prepare hands every unit its neighbours and the shared timer, in order.
// The sequence is padded with nil on both ends, so the first unit has no
// previous neighbour and the last has no next. It stops at the first failure.
func Prepare(units []unit.Unit, timer unit.Timer) error {
	for i, current := range units {
		state := unit.State{Timer: timer}
		if i > 0 {
			state.Previous = units[i-1]
		}
		if i+1 < len(units) {
			state.Next = units[i+1]
		}
		if err := current.Prepare(state); err != nil {
			return err
		}
	}
	return nil
}
