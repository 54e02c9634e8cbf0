/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package entropy

import internal "github.com/txrx-dev/paqcm/internal"

// StateMap is an adaptive map from a small integer context (typically a
// bit-history state byte, but sometimes a wider hash) to a 12-bit
// probability. It holds one 16-bit counter per context, each initialized to
// 0x7FFF (probability one half: "no information yet").
//
// The counter addressed by the *previous* call's context is the one moved
// by each Update: a StateMap always trails its own predictions by one call,
// which is what lets the context be recomputed (e.g. by advancing a hash
// table pointer) between the prediction and the observation of its bit.
type StateMap struct {
	counters []uint16
	ctx      uint32
	mask     uint32
}

// NewStateMap creates a StateMap with 'size' contexts. size must be a power
// of two; it is rounded up if not.
func NewStateMap(size uint32) *StateMap {
	n := uint32(1)

	for n < size {
		n <<= 1
	}

	sm := &StateMap{
		counters: make([]uint16, n),
		mask:     n - 1,
	}

	for i := range sm.counters {
		sm.counters[i] = 0x7FFF
	}

	return sm
}

// Update moves the counter at the context used by the previous call toward
// 'bit', then latches 'ctx' as the new current context and returns the
// stretched prediction for it.
func (sm *StateMap) Update(bit int, ctx uint32, rate uint) int {
	c := sm.counters[sm.ctx]

	if bit != 0 {
		c += uint16(^c) >> rate
	} else {
		c -= c >> rate
	}

	sm.counters[sm.ctx] = c
	sm.ctx = ctx & sm.mask
	return internal.Stretch(int(sm.counters[sm.ctx]) / 16)
}

// Raw returns the current 16-bit counter for the current context, without
// advancing it. Used by models that need the unstretched value.
func (sm *StateMap) Raw() uint16 {
	return sm.counters[sm.ctx]
}
