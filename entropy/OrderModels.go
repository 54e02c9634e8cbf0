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

// orderModel is one of the six direct order-N context predictors that feed
// mixer slots 1-6. Each owns a ContextMap sized to its order and latches a
// fresh top-level context from a hash of the last N whole bytes every byte
// boundary; Predict(bit) returns its primary StateMap output, already
// stretched to log-odds.
type orderModel struct {
	order uint
	cm    *ContextMap
}

// orderSizeBits and orderRates mirror the reference's per-order hash table
// sizing and StateMap learning rates: lower orders get smaller, faster
// tables (they saturate quickly and need to track local structure),
// higher orders get larger, slower tables (they are sparse and need long
// memory once a context is seen).
var orderSizeBits = [6]uint32{16, 18, 20, 22, 22, 22}
var orderRates = [6][2]uint{
	{7, 6},
	{7, 6},
	{8, 6},
	{8, 7},
	{9, 7},
	{9, 8},
}

// orderSizeLimitBits caps the level-scaled exponent before it feeds
// NewContextMap's uint32 size parameter: orderSizeBits tops out at 22 and
// level at 12, and NewContextMap multiplies the size by 256 in uint32, so
// any exponent above 23 would silently wrap the table length to zero
// instead of overflowing loudly. Mirrors the reference's habit of clamping
// a MEM()-derived size before allocating (HashTable_t, DynamicMarkovModel_t,
// LempelZivPredict_t each have their own MEM_LIMIT for the same reason).
const orderSizeLimitBits = 23

func newOrderModels(s *PredictorState, level uint) [6]*orderModel {
	var models [6]*orderModel

	for i := 0; i < 6; i++ {
		order := uint(i + 1)
		rates := orderRates[i]
		bits := uint64(orderSizeBits[i]) + uint64(level)

		if bits > orderSizeLimitBits {
			bits = orderSizeLimitBits
		}

		models[i] = &orderModel{
			order: order,
			cm:    NewContextMap(s, uint32(1)<<bits, rates[0], rates[1], 0),
		}
	}

	return models
}

// Refresh latches this model's context for the byte about to start, hashing
// the last `order` whole bytes out of cx (and, for order 1, using the last
// byte c1 directly, matching the reference's direct-indexed order-1 table).
func (m *orderModel) Refresh(cx uint64, c1 uint32) {
	if m.order == 1 {
		m.cm.Set(c1)
		return
	}

	mask := uint64(1)<<(8*m.order) - 1
	h := combine64(phi64, cx&mask)
	m.cm.Set(finalise64(h, 24) | (uint32(m.order) << 24))
}

// Predict advances this model's tracked state and returns its primary
// stretched output for the mixer's order-N slot.
func (m *orderModel) Predict(bit int) int32 {
	s0, _, _ := m.cm.Predict(bit)
	return int32(s0)
}
