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

// PredictorState is the process-wide bit-level state shared by every model
// in the predictor. The reference implementation keeps these as free
// globals; here they are fields of a single value that the Predictor owns
// and every model takes a pointer to. Nothing about the design requires
// globals, only that all models observe the same state in the same order.
type PredictorState struct {
	C0     uint32 // partial current byte, leading 1 bit, range 1..255
	BCount uint32 // bits still to go in the current byte, 7..0 cycling

	Cx   uint64 // last 8 whole bytes, packed little-endian
	C1   uint32 // last finished byte, raw value (no byte-class mapping)
	C2   uint32 // the byte before that, raw value (no byte-class mapping)
	Word uint64 // running checksum of the current alphanumeric word

	TT uint32 // rolling 2-bit-per-byte flags marking recent separator bytes
	W5 uint32 // rolling summary of recent word-class transitions
	X5 uint32 // rolling byte-level context, widest of the three

	Fails     uint32 // recent large-miss history, shifted in each bit
	Failz     uint32 // recent medium-miss history
	FailCount uint32 // saturating count of misses currently "in window"

	DpShift uint32 // current mixer output right-shift; grows over the stream
}

// NewPredictorState returns a freshly initialized shared state: c0=1 (one
// leading sentinel bit, no data bits yet), bcount=7 (eight bits to go),
// dpShift=14 (per spec §3, the initial shift before any ScaleUp).
func NewPredictorState() *PredictorState {
	return &PredictorState{
		C0:      1,
		BCount:  7,
		DpShift: 14,
	}
}

// PushBit folds the just-observed bit into c0/bcount. It does not perform
// byte-boundary bookkeeping (cx/word/tt/w5/x5 refresh): that is the
// Predictor's job once bcount wraps back to 7, because it also needs to
// touch every model's byte-boundary hook in a fixed order (see Predictor.go).
func (s *PredictorState) PushBit(bit int) {
	s.C0 = (s.C0 << 1) | uint32(bit&1)
	s.BCount = (s.BCount - 1) & 7
}

// AtByteBoundary reports whether the byte just completed (i.e. PushBit just
// wrapped BCount back to 7, meaning C0 now holds a full byte with its
// leading sentinel bit at position 8).
func (s *PredictorState) AtByteBoundary() bool {
	return s.BCount == 7
}

// FinishByte rotates the just-completed byte (low 8 bits of C0, sentinel
// bit stripped) into the cross-byte state, then resets C0 for the next
// byte. Called by the Predictor exactly once per byte, before any model's
// byte-boundary hook runs, so the hooks observe the updated state.
func (s *PredictorState) FinishByte() {
	b := uint32(s.C0 & 0xFF)

	s.C2 = s.C1
	s.C1 = b
	s.Cx = (s.Cx << 8) | uint64(b)

	if internal.IsWord[b] {
		s.Word = s.Word*0x100000001B3 + uint64(b) // FNV-prime style rolling update
		s.W5 = (s.W5 << 4) | 1
	} else {
		s.Word = 0
		s.W5 <<= 4
	}

	if internal.IsSeparator[b] {
		s.TT = (s.TT << 2) | 1
	} else {
		s.TT <<= 2
	}

	s.X5 = (s.X5 << 8) | b
	s.C0 = 1
}
