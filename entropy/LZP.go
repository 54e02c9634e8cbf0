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
	lzpMinLen = 7
	lzpMaxLen = lzpMinLen + 63
)

// lzpLengthToOrder maps a match length (in 4-length buckets) to a 4-bit
// "order" hint consumed by the caller to pick a context-map order: the two
// variants differ only in whether bcount is 7 (the first bit of a byte,
// which selects lzpLengthToOrderLast) or not.
const (
	lzpLengthToOrderLast  = uint64(0x9999988888776654)
	lzpLengthToOrderOther = uint64(0x9999998888776654)
)

// LZP is the match model: it remembers, per hash of the trailing window, the
// most recent position a given 9-byte context was seen, and predicts the
// byte that followed it last time, with confidence proportional to how long
// the current match has run. Its own 8-input Blend is written to mixer
// slot 0.
type LZP struct {
	buf *[]byte // pointer to the shared, growing decoded-history buffer

	ht       []uint32 // Finalise64(hash(last 9 bytes), hashbits) -> position
	hashbits uint

	match       uint32
	matchLength uint32
	expected    byte

	ltp0 *StateMap // match_length|c1 -> prediction
	ltp1 *StateMap // curved length -> prediction

	rc0 *RunContextMap // match_length|c1
	rc1 *RunContextMap // w5
	rc2 *RunContextMap // x5
	rc3 *RunContextMap // tt
	rc4 *RunContextMap // word hash

	blend  *Blend
	lastPr int32

	state0 *PredictorState
}

// NewLZP creates an LZP model over the given shared byte-history buffer
// (appended to by the caller as bytes are produced), with a hash table
// sized to hashbits bits.
func NewLZP(s *PredictorState, buf *[]byte, hashbits uint, level uint32) *LZP {
	return &LZP{
		buf:      buf,
		ht:       make([]uint32, (uint64(1)<<hashbits)+1),
		hashbits: hashbits,
		ltp0:     NewStateMap(0x8000),
		ltp1:     NewStateMap(0x4000),
		rc0:      NewRunContextMap(s, 14),
		rc1:      NewRunContextMap(s, 16+level),
		rc2:      NewRunContextMap(s, 16+level),
		rc3:      NewRunContextMap(s, 16+level),
		rc4:      NewRunContextMap(s, 16+level),
		blend:    NewBlend(1<<19, 8),
		state0:   s,
	}
}

func (m *LZP) at(posFromEnd int) byte {
	i := len(*m.buf) - 1 - posFromEnd
	if i < 0 {
		return 0
	}

	return (*m.buf)[i]
}

// Update repositions the match at a new byte boundary: it either extends
// the currently tracked match by one byte, or looks one up fresh from the
// hash table, then records the current position for future lookups.
func (m *LZP) Update(pos uint32) {
	h := uint64(1)

	for n := lzpMinLen + 2; n > 0; n-- {
		h = combine64(h, uint64(m.at(n-1)))
	}

	idx := finalise64(h, m.hashbits)

	if m.matchLength >= lzpMinLen {
		if m.matchLength < lzpMaxLen {
			m.matchLength++
		}

		m.match++
	} else {
		m.matchLength = 0
		m.match = m.ht[idx]

		if m.match != 0 {
			for m.matchLength < lzpMaxLen && m.at(int(m.matchLength)+1) == m.atAbs(int(m.match)-int(m.matchLength)-1) {
				m.matchLength++
			}
		}
	}

	m.ht[idx] = pos

	m.expected = m.atAbs(int(m.match))

	m.rc0.Set((m.matchLength << 8) | m.state0.C1)
	m.rc1.Set(m.state0.W5)
	m.rc2.Set(m.state0.X5)
	m.rc3.Set(m.state0.TT)
	m.rc4.Set(finalise64(m.state0.Word, 32))
}

func (m *LZP) atAbs(pos int) byte {
	if pos < 0 || pos >= len(*m.buf) {
		return 0
	}

	return (*m.buf)[pos]
}

// Predict returns the 4-bit order hint for this bit (consumed by the
// caller to select a context-map order elsewhere) while writing its own
// blended prediction to mixer slot 0.
func (m *LZP) Predict(bit int) uint32 {
	pr := m.blend.Get()

	var ctx0 uint32
	var order uint32

	if m.matchLength >= lzpMinLen && (uint32(m.expected)|0x100)>>(1+m.state0.BCount) == m.state0.C0 {
		expectedBit := (uint32(m.expected) >> m.state0.BCount) & 1
		sign := int32(2*expectedBit) - 1
		pr[0] = int16(clampInt32(sign*int32(m.matchLength)*32, -2048, 2047))

		length := m.matchLength - lzpMinLen

		if length > 0 {
			if length <= 16 {
				ctx0 = 2*(length-1) + expectedBit
			} else {
				ctx0 = 22 + 2*((length-1)/3) + expectedBit
			}
		}

		ctx1 := (length << 9) | (expectedBit << 8) | m.state0.C1
		pr[1] = int16(m.ltp0.Update(bit, ctx1, 8))

		l2o := lzpLengthToOrderOther
		if m.state0.BCount == 7 {
			l2o = lzpLengthToOrderLast
		}

		order = uint32(0xF & (l2o >> (4 * (length / 4))))
	} else {
		m.matchLength = 0
		pr[0] = 0
		pr[1] = int16(m.ltp0.Update(bit, m.state0.C0, 2) / 2)
		order = 0
	}

	py := m.ltp1.Update(bit, (ctx0<<8)|m.state0.C0, 4)

	if ctx0 != 0 {
		pr[2] = int16(py)
	} else {
		pr[2] = 0
	}

	pr[3] = int16(m.rc0.Predict())
	pr[4] = int16(m.rc1.Predict())
	pr[5] = int16(m.rc2.Predict())
	pr[6] = int16(m.rc3.Predict())
	pr[7] = int16(m.rc4.Predict())

	squashedLast := int32(internal.Squash(int(m.lastPr)))
	err := ((int32(bit) << 12) - squashedLast) * 11
	ctx := (m.state0.W5 << 3) | m.state0.BCount

	px := m.blend.Predict(err, ctx)
	m.lastPr = px

	return order
}

// Output returns the mixer-slot-0 value produced by the most recent
// Predict call.
func (m *LZP) Output() int32 {
	return m.lastPr
}
