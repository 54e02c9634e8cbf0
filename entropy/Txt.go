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

// uint128 is a minimal 128-bit shift register: hi holds bits [127:64], lo
// holds bits [63:0]. Only the operations Txt needs (left shift by one,
// test the top bit) are implemented.
type uint128 struct {
	hi, lo uint64
}

func (u uint128) shiftLeft1() uint128 {
	carry := u.lo >> 63
	return uint128{hi: (u.hi << 1) | carry, lo: u.lo << 1}
}

func (u uint128) topBit() bool {
	return u.hi>>63 != 0
}

// maskEntry is one breakpoint in an extend_mask_* table: the mask applies
// once the dictionary word count supplied by the preprocessor is below
// 'words'.
type maskEntry struct {
	words uint32
	mask  uint32
}

// extendMaskLow/Mid/High are the breakpoint tables that decide how many
// additional high bits of a dictionary index become certain as the
// dictionary shrinks - the fewer distinct words the preprocessor's
// dictionary holds, the fewer bits are needed to index it, so more of an
// index's leading bits are predictable zeros.
var extendMaskLow = [10]maskEntry{
	{0x00042, 0b11111111111111100000000000000000},
	{0x00044, 0b11111111111111000000000000000000},
	{0x00048, 0b11111111111110000000000000000000},
	{0x00050, 0b11111111111100000000000000000000},
	{0x00060, 0b11111111111000000000000000000000},
	{0x00080, 0b11111111000000000000000000000000},
	{0x000C0, 0b11111110000000000000000000000000},
	{0x00140, 0b11111100000000000000000000000000},
	{0x00240, 0b11111000000000000000000000000000},
	{0x00440, 0b11110000000000000000000000000000},
}

var extendMaskMid = [13]maskEntry{
	{0x00842, 0b11111111111111111111110000000000},
	{0x00844, 0b11111111111111111111100000000000},
	{0x00848, 0b11111111111111111111000000000000},
	{0x00850, 0b11111111111111111110000000000000},
	{0x00860, 0b11111111111111111100000000000000},
	{0x00880, 0b11111111111111100000000000000000},
	{0x008C0, 0b11111111111111000000000000000000},
	{0x00940, 0b11111111111110000000000000000000},
	{0x00A40, 0b11111111111100000000000000000000},
	{0x00C40, 0b11111111111000000000000000000000},
	{0x01040, 0b11111110000000000000000000000000},
	{0x01840, 0b11111100000000000000000000000000},
	{0x02840, 0b11111000000000000000000000000000},
}

var extendMaskHigh = [16]maskEntry{
	{0x08842, 0b11111111111111111111111111111100},
	{0x08844, 0b11111111111111111111111111111000},
	{0x08848, 0b11111111111111111111111111110000},
	{0x08850, 0b11111111111111111111111111100000},
	{0x08860, 0b11111111111111111111111111000000},
	{0x08880, 0b11111111111111111111111000000000},
	{0x088C0, 0b11111111111111111111110000000000},
	{0x08940, 0b11111111111111111111100000000000},
	{0x08A40, 0b11111111111111111111000000000000},
	{0x08C40, 0b11111111111111111110000000000000},
	{0x09040, 0b11111111111111100000000000000000},
	{0x09840, 0b11111111111111000000000000000000},
	{0x0A840, 0b11111111111110000000000000000000},
	{0x0C840, 0b11111111111100000000000000000000},
	{0x10840, 0b11111110000000000000000000000000},
	{0x18840, 0b11111100000000000000000000000000},
}

func pickExtendMask(words uint32) (low, mid, high uint32) {
	for _, e := range extendMaskLow {
		if e.words > words {
			low = e.mask
			break
		}
	}

	for _, e := range extendMaskMid {
		if e.words > words {
			mid = e.mask
			break
		}
	}

	for _, e := range extendMaskHigh {
		if e.words > words {
			high = e.mask
			break
		}
	}

	return
}

// Txt is the text-forecast model: where a caller-supplied mask bit is set
// it predicts the bit with 100% certainty; elsewhere it has no opinion. It
// does not itself scan c0/cx for the text preprocessor's byte patterns:
// its only source of certain bits is SetAssertion, which nothing in this
// module calls. The 128-bit mask/predict pair is consumed one bit per call; a mismatch between an asserted certain bit and the
// actual coded bit resets the register pair so the mis-assertion is never
// propagated into the range coder.
type Txt struct {
	mask    uint128 // 1 bits mark positions with a certain prediction
	predict uint128 // predicted value at those positions

	skipBytes      uint32
	dicStartOffset uint32
	dicEndOffset   uint32

	extendMaskLow  uint32
	extendMaskMid  uint32
	extendMaskHigh uint32
	numberOfWords  uint32

	start bool
	pr    uint16 // last returned prediction, 0x7FF means "no opinion"
}

// NewTxt creates an inactive Txt model; SetStart(true) arms it once the
// preprocessor reports it recognised the input as text.
func NewTxt() *Txt {
	return &Txt{pr: 0x7FF}
}

// SetDataPos tells the model how many leading bytes of the stream to skip
// before any prediction can begin (header bytes preceding the dictionary).
func (t *Txt) SetDataPos(dataPos int64) {
	t.skipBytes = uint32(dataPos)
}

// SetStart arms or disarms the model; a disarmed model always returns
// "no opinion".
func (t *Txt) SetStart(state bool) {
	t.start = state
}

// SetDicStartOffset and SetDicEndOffset delimit the dictionary section of
// the stream, counted down byte-by-byte by Update.
func (t *Txt) SetDicStartOffset(offset int64) {
	t.dicStartOffset = uint32(offset)
}

func (t *Txt) SetDicEndOffset(offset int64) {
	t.dicEndOffset = uint32(offset)
}

// SetDicWords derives the three extend_mask fields from the dictionary's
// word count: fewer words means fewer bits are needed to index it. The
// fields are only stored; Predict does not read them.
func (t *Txt) SetDicWords(numberOfWords int64) {
	t.numberOfWords = uint32(numberOfWords)
	t.extendMaskLow, t.extendMaskMid, t.extendMaskHigh = pickExtendMask(t.numberOfWords)
}

// SetAssertion arms a certain prediction for the next bits: mask/predict
// are ORed into the live registers ahead of the bit they apply to.
func (t *Txt) SetAssertion(mask, predict uint128) {
	t.mask = uint128{hi: t.mask.hi | mask.hi, lo: t.mask.lo | mask.lo}
	t.predict = uint128{hi: t.predict.hi | predict.hi, lo: t.predict.lo | predict.lo}
}

// Update counts down the dictionary and header skip windows; call once per
// byte boundary.
func (t *Txt) Update() {
	if t.dicEndOffset > 0 {
		if t.dicStartOffset > 0 {
			t.dicStartOffset--
		} else {
			t.dicEndOffset--

			if t.dicEndOffset == 0 {
				t.predict = uint128{}
				t.mask = uint128{}
			}
		}
	}

	if t.skipBytes > 0 {
		t.skipBytes--
	}
}

// Predict shifts the mask/predict registers by one bit and returns a
// certain 0x000/0xFFF prediction when the shifted-out mask bit was set,
// else 0x7FF ("no opinion"). If the model is disarmed or still inside the
// skipped header it always reports no opinion without consuming the
// registers.
func (t *Txt) Predict(bit int) (ok bool, pr uint16) {
	validPrediction := t.pr == 0x7FF || (bit != 0 && t.pr == 0xFFF) || (bit == 0 && t.pr == 0x000)

	if !validPrediction {
		t.mask = uint128{}
		t.predict = uint128{}
	}

	if !t.start || t.skipBytes > 0 {
		t.pr = 0x7FF
		return false, t.pr
	}

	if t.mask == (uint128{}) {
		t.pr = 0x7FF
		return false, t.pr
	}

	hasValue := t.mask.topBit()
	predictedOne := t.predict.topBit()
	t.mask = t.mask.shiftLeft1()
	t.predict = t.predict.shiftLeft1()

	if !hasValue {
		t.pr = 0x7FF
		return false, t.pr
	}

	if predictedOne {
		t.pr = 0xFFF
	} else {
		t.pr = 0x000
	}

	return true, t.pr
}
