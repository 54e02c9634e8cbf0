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

// RunContextMap is a thin model built on a HashMap: for each context it
// remembers the most recently observed byte and a saturating count of how
// many times in a row that byte has reappeared in this context. Its
// prediction magnitude is proportional to log2(count), via the shared
// Ilog table.
type RunContextMap struct {
	hm    *HashMap
	cLine uint32 // current line (count index == value index)

	state0 *PredictorState
}

// NewRunContextMap creates a RunContextMap backed by a HashMap of 1<<sizeBits
// cache lines, mirroring the reference's RunContextMap_t(max_size) ctor
// (`_hashmap{UINT32_C(1) << max_size}`) - callers pass the bit exponent, not
// a literal line count.
func NewRunContextMap(s *PredictorState, sizeBits uint32) *RunContextMap {
	return &RunContextMap{
		hm:     NewHashMap(uint32(1) << sizeBits),
		state0: s,
	}
}

// Set repositions the model on a new context, updating the saturating
// count: incremented (capped at 255) if the low byte of cx still matches
// the value recorded for this context, reset to 1 on mismatch.
func (rc *RunContextMap) Set(ctx uint32) {
	line, _ := rc.hm.Get(ctx)
	rc.cLine = line

	expected := rc.hm.value[line]
	observed := uint8(rc.state0.Cx)

	if rc.hm.count[line] != 0 && expected == observed {
		if rc.hm.count[line] < 255 {
			rc.hm.count[line]++
		}
	} else {
		rc.hm.count[line] = 1
		rc.hm.value[line] = observed
	}
}

// Predict returns +/-Ilog[count] if the expected byte's next bit (given the
// current bcount/c0 partial byte) agrees with the observed partial byte so
// far, else 0 ("no opinion").
func (rc *RunContextMap) Predict() int {
	count := rc.hm.count[rc.cLine]

	if count == 0 {
		return 0
	}

	expected := uint32(rc.hm.value[rc.cLine])

	if (expected|0x100)>>(1+rc.state0.BCount) != rc.state0.C0 {
		return 0
	}

	expectedBit := (expected >> rc.state0.BCount) & 1
	mag := int(internal.Ilog[count-1])

	if expectedBit != 0 {
		return mag
	}

	return -mag
}
