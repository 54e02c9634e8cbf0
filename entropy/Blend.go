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

// Blend is a model-local sub-mixer: the same algebra as Mixer, but with a
// small int16 input count (4, 8 or 16 in practice) and int16 weights, used
// by DMC, the match model and the sparse match model to collapse their own
// several predictions into the single value they hand to the top-level
// Mixer.
//
// Inputs are double-buffered: Get returns the "new" slot for the caller to
// fill in with this bit's predictions, while Predict first trains on the
// *previous* call's inputs (the ones whose bit outcome is now known) before
// computing the sum-of-products over the new inputs and swapping the
// buffers. This breaks the data hazard of training and predicting on the
// same values in the same step.
type Blend struct {
	weights []int16 // contexts * nInputs
	nInputs int

	cur, prv []int16
	prvCtx   uint32
}

// NewBlend creates a Blend with 'contexts' distinct weight rows of
// 'nInputs' int16 weights each, all initialized to 0.
func NewBlend(contexts uint32, nInputs int) *Blend {
	return &Blend{
		weights: make([]int16, contexts*uint32(nInputs)),
		nInputs: nInputs,
		cur:     make([]int16, nInputs),
		prv:     make([]int16, nInputs),
	}
}

// Get returns the "new" input slot for the caller to populate this step.
func (b *Blend) Get() []int16 {
	return b.cur
}

// Predict trains on the previous inputs (if the error magnitude exceeds a
// small noise floor) using the context selected by the prior call, then
// computes the dot product of the new inputs against the weights for ctx,
// swaps the new/previous buffers, and returns the clamped, shifted result.
// ctx is reduced modulo the number of weight rows.
func (b *Blend) Predict(err int32, ctx uint32) int32 {
	ctx %= uint32(len(b.weights) / b.nInputs)

	if abs32(err) > 32 {
		row := b.weights[b.prvCtx*uint32(b.nInputs) : b.prvCtx*uint32(b.nInputs)+uint32(b.nInputs)]

		for i := 0; i < b.nInputs; i++ {
			delta := (((int32(b.prv[i])*err)>>16 + 1) >> 1)
			row[i] = saturatingAddInt16(row[i], int16(clampInt32(delta, -32768, 32767)))
		}
	}

	row := b.weights[ctx*uint32(b.nInputs) : ctx*uint32(b.nInputs)+uint32(b.nInputs)]
	var sum int64

	for i := 0; i < b.nInputs; i++ {
		sum += int64(b.cur[i]) * int64(row[i])
	}

	b.prv, b.cur = b.cur, b.prv
	b.prvCtx = ctx

	out := int32(sum >> 14)
	return clampInt32(out, -2048, 2047)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}

	return v
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func saturatingAddInt16(a, b int16) int16 {
	sum := int32(a) + int32(b)
	return int16(clampInt32(sum, -32768, 32767))
}
