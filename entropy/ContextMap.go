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

// ContextMap bundles S*256 bit-history state bytes (one byte per (context,
// partial-byte) pair) with three StateMaps. Set(ctx) latches a new
// top-level context for the byte about to start; Predict(bit) advances the
// three tracked state bytes through state tables 0, 1 and 2 and returns
// their stretched predictions.
//
// Rate2 of 0 disables the third StateMap (some instances only need two
// outputs); in that case Predict's third return value is always 0.
type ContextMap struct {
	state0Bytes []uint8 // S*256 bit-history state bytes, table 0
	state1Bytes []uint8 // S*256 bit-history state bytes, table 1
	state2Bytes []uint8 // S*256 bit-history state bytes, table 2 (unused if rate2==0)
	mask        uint32  // (S*256)-1

	sm0, sm1, sm2       *StateMap
	rate0, rate1, rate2 uint

	ctxNew  uint32 // latched by Set(), applied at the next byte boundary
	lastPos uint32 // position of the 3 state bytes currently tracked

	state0 *PredictorState
}

// NewContextMap creates a ContextMap with S*256 state bytes per table (S
// rounded up to a power of two) and three StateMaps updated at
// rate0/rate1/rate2. Pass rate2=0 to disable the third StateMap.
func NewContextMap(s *PredictorState, size uint32, rate0, rate1, rate2 uint) *ContextMap {
	n := uint32(1)

	for n < size {
		n <<= 1
	}

	cm := &ContextMap{
		state0:      s,
		state0Bytes: make([]uint8, n*256),
		state1Bytes: make([]uint8, n*256),
		mask:        n*256 - 1,
		sm0:         NewStateMap(0x100),
		sm1:         NewStateMap(0x100),
		rate0:       rate0,
		rate1:       rate1,
	}

	if rate2 != 0 {
		cm.state2Bytes = make([]uint8, n*256)
		cm.sm2 = NewStateMap(0x100)
		cm.rate2 = rate2
	}

	return cm
}

// Set latches a new top-level context; it takes effect at the next byte
// boundary position computed inside Predict.
func (cm *ContextMap) Set(ctx uint32) {
	cm.ctxNew = ctx << 8
}

// Predict advances the three tracked state bytes through state tables 0, 1
// and 2 using the now-known bit, recomputes the tracked position from the
// latched context and c0/cx, updates the three StateMaps and returns their
// stretched predictions (the third is 0 when rate2 was 0 at construction).
func (cm *ContextMap) Predict(bit int) (int, int, int) {
	table := _stateTableBit0
	if bit != 0 {
		table = _stateTableBit1
	}

	p := cm.lastPos
	cm.state0Bytes[p] = table[0][cm.state0Bytes[p]]
	cm.state1Bytes[p] = table[1][cm.state1Bytes[p]]

	if cm.state2Bytes != nil {
		cm.state2Bytes[p] = table[2][cm.state2Bytes[p]]
	}

	var low uint32
	if cm.state0.AtByteBoundary() {
		low = uint32(cm.state0.Cx & 0xFF)
	} else {
		low = cm.state0.C0
	}

	cm.lastPos = (cm.ctxNew | low) & cm.mask
	np := cm.lastPos

	s0 := cm.sm0.Update(bit, uint32(cm.state0Bytes[np]), cm.rate0)
	s1 := cm.sm1.Update(bit, uint32(cm.state1Bytes[np]), cm.rate1)

	if cm.state2Bytes == nil {
		return s0, s1, 0
	}

	s2 := cm.sm2.Update(bit, uint32(cm.state2Bytes[np]), cm.rate2)
	return s0, s1, s2
}
