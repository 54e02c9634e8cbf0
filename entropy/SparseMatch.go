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

const (
	sparseNBits  = 15
	sparseMinLen = 2
	sparseMaxLen = sparseMinLen + 63
)

// SparseMatchModel is structurally identical to LZP but hashes only a
// handful of bits straight from the rolling byte context (cx) instead of a
// full 9-byte prefix, catching periodic/sparse repetition that a full-width
// hash would miss. Its own 8-input Blend is written to mixer slot 8.
type SparseMatchModel struct {
	buf *[]byte

	ht []uint32 // indexed directly by the low sparseNBits bits of cx

	match       uint32
	matchLength uint32
	expected    byte

	cm0 *ContextMap // c0
	cm1 *ContextMap // x5|c0

	ltp *StateMap // length|expected_bit|c1
	sm1 *StateMap // expected_byte|bcount|buf(1)

	blend  *Blend
	lastPr int32

	state0 *PredictorState
}

// NewSparseMatchModel creates a SparseMatchModel.
func NewSparseMatchModel(s *PredictorState) *SparseMatchModel {
	return &SparseMatchModel{
		ht:     make([]uint32, (uint64(1)<<sparseNBits)+1),
		cm0:    NewContextMap(s, 0x001, 0xC, 0xA, 0xD),
		cm1:    NewContextMap(s, 0x100, 0xC, 0x6, 0),
		ltp:    NewStateMap(0x8000),
		sm1:    NewStateMap(0x80000),
		blend:  NewBlend(1<<19, 8),
		state0: s,
	}
}

// SetBuf points the model at the shared byte-history buffer; call once
// after construction, before the first Update.
func (m *SparseMatchModel) SetBuf(buf *[]byte) {
	m.buf = buf
}

func (m *SparseMatchModel) at(posFromEnd int) byte {
	i := len(*m.buf) - 1 - posFromEnd
	if i < 0 {
		return 0
	}

	return (*m.buf)[i]
}

func (m *SparseMatchModel) atAbs(pos int) byte {
	if pos < 0 || pos >= len(*m.buf) {
		return 0
	}

	return (*m.buf)[pos]
}

// Update advances or re-acquires the match using only the low bits of cx as
// the lookup key, then repositions the two auxiliary context maps.
func (m *SparseMatchModel) Update(pos uint32, cx uint64) {
	idx := uint32((uint64(1)<<sparseNBits)-1) & uint32(cx)

	if m.matchLength >= sparseMinLen {
		if m.matchLength < sparseMaxLen {
			m.matchLength++
		}

		m.match++
	} else {
		m.matchLength = 0
		m.match = m.ht[idx]

		if m.match != 0 {
			for m.matchLength < sparseMaxLen && m.at(int(m.matchLength)+1) == m.atAbs(int(m.match)-int(m.matchLength)-1) {
				m.matchLength++
			}
		}
	}

	m.ht[idx] = pos
	m.expected = m.atAbs(int(m.match))

	m.cm0.Set(0)
	m.cm1.Set(m.state0.X5)
}

// Predict writes this bit's blended prediction to mixer slot 8.
func (m *SparseMatchModel) Predict(bit int) int32 {
	pr := m.blend.Get()

	if m.matchLength >= sparseMinLen && (uint32(m.expected)|0x100)>>(1+m.state0.BCount) == m.state0.C0 {
		expectedBit := (uint32(m.expected) >> m.state0.BCount) & 1
		sign := int32(2*expectedBit) - 1
		pr[0] = int16(clampInt32(sign*int32(m.matchLength)*32, -2048, 2047))

		ctx0 := (m.matchLength << 9) | (expectedBit << 8) | m.state0.C1
		pr[1] = int16(m.ltp.Update(bit, ctx0, 5))

		ctx1 := (uint32(m.expected) << 11) | (m.state0.BCount << 8) | uint32(m.at(1))
		pr[2] = int16(m.sm1.Update(bit, ctx1, 8))
	} else {
		m.matchLength = 0
		pr[0] = 0
		pr[1] = int16(m.ltp.Update(bit, m.state0.C1, 5) / 4)
		pr[2] = int16(m.sm1.Update(bit, uint32(m.at(1)), 4) / 8)
	}

	p3, p4, p5 := m.cm0.Predict(bit)
	p6, p7, _ := m.cm1.Predict(bit)

	pr[3] = int16(clampInt32(int32(p3), -32768, 32767))
	pr[4] = int16(clampInt32(int32(p4), -32768, 32767))
	pr[5] = int16(clampInt32(int32(p5), -32768, 32767))
	pr[6] = int16(clampInt32(int32(p6), -32768, 32767))
	pr[7] = int16(clampInt32(int32(p7), -32768, 32767))

	squashedLast := int32(internal.Squash(int(m.lastPr)))
	err := ((int32(bit) << 12) - squashedLast) * 9
	ctx := (m.state0.W5 << 3) | m.state0.BCount

	px := m.blend.Predict(err, ctx)
	m.lastPr = px
	return px
}
