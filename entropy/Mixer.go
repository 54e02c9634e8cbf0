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

// NLayers is the number of model inputs the top-level Mixer combines:
// slot 0 is the match model, slots 1-6 are order-N ContextMap/StateMap
// outputs, slot 7 is the dynamic Markov model's blended output, slot 8 is
// the sparse match model's blended output.
const NLayers = 9

// mixerContexts is the number of distinct weight rows the Mixer indexes;
// sized generously so that (order*64 + lzpLenBucket) selections never
// alias two unrelated contexts onto the same row.
const mixerContexts = 1280

// mixerInitWeight is the value every weight row starts at: 2560 = 0x0A00.
const mixerInitWeight = int32(0x0A00)

// Mixer is a single-hidden-layer linear combiner: for the context selected
// by Context(), it computes a dot product of the shared Tx input vector
// against that context's weight row, shifts down by dpShift and clamps to
// the stretched-probability range. Update performs one online gradient
// step on the previously selected context's weights.
type Mixer struct {
	tx      *[NLayers]int32 // shared input vector, written by every model
	weights []int32         // NLayers*mixerContexts
	ctx     uint32
	state0  *PredictorState
}

// NewMixer creates a Mixer sharing the given Tx input vector and reading
// dpShift from the given predictor state.
func NewMixer(tx *[NLayers]int32, s *PredictorState) *Mixer {
	m := &Mixer{
		tx:     tx,
		state0: s,
		weights: make([]int32, NLayers*mixerContexts),
	}

	for i := range m.weights {
		m.weights[i] = mixerInitWeight
	}

	return m
}

// Context selects the weight row used by the next Predict/Update pair.
func (m *Mixer) Context(ctx uint32) {
	m.ctx = (ctx % mixerContexts) * NLayers
}

// Predict returns the clamped, shifted dot product of Tx against the
// currently selected weight row.
func (m *Mixer) Predict() int32 {
	row := m.weights[m.ctx : m.ctx+NLayers]
	var sum int64

	for i := 0; i < NLayers; i++ {
		sum += int64(m.tx[i]) * int64(row[i])
	}

	out := int32(sum >> m.state0.DpShift)

	if out < -2048 {
		return -2048
	}

	if out > 2047 {
		return 2047
	}

	return out
}

// Update performs one online SGD step on the previously selected weight
// row using the 12-bit prediction error err. The AVX-friendly fast path in
// the reference implementation (gated on 8-byte context alignment) is a
// vectorization of this exact scalar loop; correctness never depends on
// which path runs, so only the scalar form is implemented here.
func (m *Mixer) Update(err int32) {
	row := m.weights[m.ctx : m.ctx+NLayers]

	for i := 0; i < NLayers; i++ {
		delta := (((m.tx[i]*err)>>13 + 1) >> 1)
		row[i] = saturatingAddInt32(row[i], delta)
	}
}

// ScaleUp doubles every weight (with saturation) and increments dpShift so
// that Predict's output is unchanged immediately after the call - it
// doubles the resolution available to subsequent Update steps.
func (m *Mixer) ScaleUp() {
	for i := range m.weights {
		m.weights[i] = saturatingAddInt32(m.weights[i], m.weights[i])
	}

	m.state0.DpShift++
}

func saturatingAddInt32(a, b int32) int32 {
	sum := int64(a) + int64(b)

	if sum > 0x7FFFFFFF {
		return 0x7FFFFFFF
	}

	if sum < -0x80000000 {
		return -0x80000000
	}

	return int32(sum)
}
