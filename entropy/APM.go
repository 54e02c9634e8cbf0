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

// apmBuckets is the number of counter records each context owns: the
// stretched-probability domain is split into apmBuckets-1 equal intervals,
// with a Refine call interpolating between the two records straddling its
// input.
const apmBuckets = 24

// apmDecayTable returns a table whose entry i is scale/(i+4): the divisor
// that turns a record's hit count into a learning-rate weight. Each APM
// instance builds its own copy, since scale varies per instance.
func apmDecayTable(scale uint32) [1024]int32 {
	var d [1024]int32

	for i := range d {
		d[i] = int32(scale / uint32(i+4))
	}

	return d
}

// APM (Adaptive Probability Map) refines a stretched log-odds prediction
// through a small per-context table of 24 interpolated buckets. Each record
// packs a 22-bit running prediction (domain 0..2^22-1, i.e. bit*2^22) in
// its high bits and a 10-bit saturating hit count in its low bits.
type APM struct {
	t     []uint32 // contexts * apmBuckets, packed {prediction:22, count:10}
	decay [1024]int32
	scale uint32

	idx uint32 // bucket used by the pending Update, set by Refine
	w   uint32 // interpolation weight for idx/idx+1, set by Refine
}

// NewAPM creates an APM with 'contexts' distinct context rows, each
// initialized to the identity mapping (Refine(pr, cx) ~= squash(pr)) and
// a starting hit count of 'start' so early updates adapt quickly.
func NewAPM(contexts uint32, scale uint32, start uint16) *APM {
	a := &APM{
		t:     make([]uint32, contexts*apmBuckets),
		decay: apmDecayTable(scale),
		scale: scale,
	}

	for c := uint32(0); c < contexts; c++ {
		for i := 0; i < apmBuckets; i++ {
			stretched := i*4096/(apmBuckets-1) - 2048
			pr := internal.Squash(stretched) // 0..4095
			prediction := uint32(pr) << 10   // scale 12-bit squash up into the 22-bit prediction domain
			a.t[c*apmBuckets+uint32(i)] = (prediction << 10) | uint32(start)
		}
	}

	return a
}

// Refine maps a stretched probability pr (domain [-2048, 2047]) through the
// table for context cx, returning a 12-bit (0..4095) refined probability
// linearly interpolated between the two buckets straddling pr.
func (a *APM) Refine(pr int, cx uint32) int {
	if pr < -2047 {
		pr = -2047
	} else if pr > 2047 {
		pr = 2047
	}

	shifted := uint32(pr+2048) * uint32(apmBuckets-1)
	bucket := shifted >> 12
	a.w = shifted & 4095

	a.idx = cx*apmBuckets + bucket

	lo := a.t[a.idx] >> 10
	hi := a.t[a.idx+1] >> 10

	blended := (uint64(lo)*uint64(4096-a.w) + uint64(hi)*uint64(a.w)) >> 12

	return int(blended >> 10)
}

// Update trains the bucket pair selected by the preceding Refine call
// towards the observed bit. Both buckets receive the same count-scaled
// nudge; Refine's interpolation weight is not used here.
func (a *APM) Update(bit int) {
	target := uint32(0)

	if bit != 0 {
		target = (1 << 22) - 1
	}

	for _, which := range [2]uint32{0, 1} {
		i := a.idx + which

		count := a.t[i] & 1023
		prediction := a.t[i] >> 10

		err := (int64(target) - int64(prediction)) / 8
		rate := int64(a.decay[count])
		prediction = uint32(int64(prediction) + (err*rate)/int64(a.scale))

		if count < 1023 {
			count++
		}

		a.t[i] = (prediction << 10) | count
	}
}
