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
	dmcInitCount      = 486
	dmcThreshold      = 1576
	dmcThresholdSpeed = 11
	dmcMaxThreshold    = 10 * dmcThreshold
	dmcMask28          = (uint32(1) << 28) - 1

	dmcTreeCount = 256
	dmcTreeSize  = 255
)

// dmcNode is one state in the cloneable binary-branching automaton: two
// 28-bit successor indices, an 8-bit bit-history state shared with the
// ContextMap/StateMap state tables, and two 16-bit decaying event counts.
type dmcNode struct {
	next0, next1 uint32 // 28 bits significant
	state        uint8
	count0       uint16
	count1       uint16
}

// DMC is the dynamic Markov model: a self-modifying finite automaton whose
// topology grows by cloning heavily-traversed edges. Its own 8-input Blend
// folds the raw graph prediction together with four auxiliary StateMap
// lookups and a 3-output ContextMap into the single value written to mixer
// slot 7.
type DMC struct {
	nodes         []dmcNode
	top           uint32
	maxNodes      uint32
	curr          uint32
	threshold     uint32
	thresholdFine uint32

	sm2 *StateMap // bit-history state
	sm3 *StateMap // tt
	sm4 *StateMap // word hash
	sm5 *StateMap // x5

	cm *ContextMap // keyed on tt|c0

	blend  *Blend
	lastPr int32 // mixer slot 7 as written by the previous Predict call

	state0 *PredictorState
}

// NewDMC creates a DMC with a node pool sized for maxNodes nodes, seeded
// with the standard 256-tree forest.
func NewDMC(s *PredictorState, maxNodes uint32) *DMC {
	d := &DMC{
		nodes:    make([]dmcNode, maxNodes+1),
		maxNodes: maxNodes,
		sm2:      NewStateMap(0x100),
		sm3:      NewStateMap(0x4000),
		sm4:      NewStateMap(0x10000),
		sm5:      NewStateMap(0x40000),
		cm:       NewContextMap(s, 0x4000, 0xE, 0xD, 0x7),
		blend:    NewBlend(1<<19, 8),
		state0:   s,
	}

	d.reset()
	return d
}

// reset rebuilds the initial 256-tree forest of 255 nodes each: node i of a
// tree branches to nodes 2i+1 and 2i+2 of the same tree, and in every tree
// the k-th of the 128 leaves (k = 0..127) links to the roots of trees 2k
// and 2k+1.
func (d *DMC) reset() {
	d.threshold = dmcThreshold
	d.thresholdFine = dmcThreshold << dmcThresholdSpeed
	d.top = 0
	d.curr = 0

	for i := range d.nodes {
		d.nodes[i] = dmcNode{}
	}

	for j := 0; j < dmcTreeCount; j++ {
		for i := 0; i < dmcTreeSize; i++ {
			n := &d.nodes[d.top]

			if i < 127 {
				n.next0 = dmcMask28 & (d.top + uint32(i) + 1)
				n.next1 = dmcMask28 & (d.top + uint32(i) + 2)
			} else {
				linkedRoot := uint32(i-127) * 2 * dmcTreeSize
				n.next0 = dmcMask28 & linkedRoot
				n.next1 = dmcMask28 & (linkedRoot + dmcTreeSize)
			}

			n.count0 = dmcInitCount
			n.count1 = dmcInitCount
			d.top++
		}
	}
}

// Update repositions the auxiliary ContextMap on the current tt context;
// call once per byte boundary before the first Predict of that byte.
func (d *DMC) Update(tt uint32) {
	d.cm.Set(tt)
}

func dmcAdaptivelyIncrement(count uint16) uint16 {
	c := uint32(count)
	return uint16(((c << 6) - c) >> 6)
}

// Predict advances the current node on the observed bit, grows and clones
// the graph as needed, and returns the blended prediction for mixer slot 7.
func (d *DMC) Predict(bit int) int32 {
	curr := &d.nodes[d.curr]

	var n uint32

	if bit != 0 {
		n = uint32(curr.count1)
		curr.count0 = dmcAdaptivelyIncrement(curr.count0)
		curr.count1 = dmcAdaptivelyIncrement(curr.count1) + 1024
		curr.state = _stateTableBit1[0][curr.state]
	} else {
		n = uint32(curr.count0)
		curr.count0 = dmcAdaptivelyIncrement(curr.count0) + 1024
		curr.count1 = dmcAdaptivelyIncrement(curr.count1)
		curr.state = _stateTableBit0[0][curr.state]
	}

	if n > d.threshold {
		d.tryClone(bit, n)
	}

	if bit != 0 {
		d.curr = d.nodes[d.curr].next1
	} else {
		d.curr = d.nodes[d.curr].next0
	}

	pr := d.blend.Get()
	pr[0] = int16(clampInt32(d.rawPredict(), -2048, 2047))
	pr[1] = int16(d.sm2.Update(bit, uint32(d.nodes[d.curr].state), 5))
	pr[2] = int16(d.sm3.Update(bit, (d.state0.TT<<8)|d.state0.C0, 1))
	pr[3] = int16(d.sm4.Update(bit, (finalise64(d.state0.Word, 32)<<8)|d.state0.C0, 1))
	pr[4] = int16(d.sm5.Update(bit, (d.state0.X5<<8)|d.state0.C0, 2))

	s5, s6, s7 := d.cm.Predict(bit)
	pr[5] = int16(clampInt32(int32(s5), -32768, 32767))
	pr[6] = int16(clampInt32(int32(s6), -32768, 32767))
	pr[7] = int16(clampInt32(int32(s7), -32768, 32767))

	squashedLast := int32(internal.Squash(int(d.lastPr)))
	err := ((int32(bit) << 12) - squashedLast) * 10
	ctx := (d.state0.W5 << 3) | d.state0.BCount

	px := d.blend.Predict(err, ctx)
	d.lastPr = px
	return px
}

func (d *DMC) rawPredict() int32 {
	n0 := uint32(d.nodes[d.curr].count0)
	n1 := uint32(d.nodes[d.curr].count1)

	if n0 == n1 {
		return 0
	}

	if n0 == 0 {
		return 0x7FF
	}

	if n1 == 0 {
		return -0x7FF - 1
	}

	pr := (0xFFF * n1) / (n0 + n1)
	return int32(internal.Stretch(int(pr)))
}

// tryClone implements the graph-growth step: when the traversed edge's
// count exceeds threshold and its successor's total count leaves enough
// slack, the successor is cloned, taking a share of its counts
// proportional to the traversed edge, and the current node's edge is
// redirected to the clone.
func (d *DMC) tryClone(bit int, n uint32) {
	curr := &d.nodes[d.curr]

	var next uint32
	if bit != 0 {
		next = curr.next1
	} else {
		next = curr.next0
	}

	n0 := uint32(d.nodes[next].count0)
	n1 := uint32(d.nodes[next].count1)
	nn := n0 + n1

	if nn <= n+d.threshold {
		return
	}

	if d.top >= d.maxNodes {
		d.reset()
		return
	}

	clone := &d.nodes[d.top]
	clone.next0 = d.nodes[next].next0
	clone.next1 = d.nodes[next].next1
	clone.state = d.nodes[next].state

	var cloneN0, cloneN1, remainN0, remainN1 uint32

	if n+n == nn {
		cloneN0, cloneN1 = n0/2, n1/2
		remainN0, remainN1 = cloneN0, cloneN1
	} else {
		if n0 != 0 {
			cloneN0 = (n0 * n) / nn
		}

		if n1 != 0 {
			cloneN1 = (n1 * n) / nn
		}

		remainN0, remainN1 = n0-cloneN0, n1-cloneN1
	}

	clone.count0 = uint16(cloneN0)
	clone.count1 = uint16(cloneN1)
	d.nodes[next].count0 = uint16(remainN0)
	d.nodes[next].count1 = uint16(remainN1)
	d.nodes[next].state = 0

	if bit != 0 {
		curr.next1 = dmcMask28 & d.top
	} else {
		curr.next0 = dmcMask28 & d.top
	}

	d.top++

	if d.threshold < dmcMaxThreshold {
		d.thresholdFine++
		d.threshold = d.thresholdFine >> dmcThresholdSpeed
	}
}
