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

// predictorBufCap is the capacity the shared byte-history buffer reserves
// up front, to keep the match models (LZP, SparseMatchModel) from forcing
// reallocation on every few bytes of small inputs. The buffer still grows
// past this via append for longer streams.
const predictorBufCap = 1 << 20

// mem returns 1<<(offset+level), the reference's MEM(offset) scaling rule:
// every level-scaled table grows by one power of two per memory level.
func mem(offset, level uint) uint64 {
	return uint64(1) << (offset + level)
}

// dmcMaxNodesLimit caps mem(22, level) before it narrows to DMC's uint32
// node-count parameter: node indices are packed into 28 bits throughout
// DMC.go (dmcMask28), so anything above 1<<28 is already structurally
// unaddressable, and level=12 would overflow uint32 outright (22+12=34).
// Mirrors the reference's own MEM_LIMIT/28-bit node-index assert on
// DynamicMarkovModel_t.
const dmcMaxNodesLimit = 1 << 28

func dmcNodeBudget(level uint) uint32 {
	n := mem(22, level)

	if n > dmcMaxNodesLimit {
		n = dmcMaxNodesLimit
	}

	return uint32(n)
}

// lzpHashBitsLimit caps 20+level before it sizes LZP's hash table: each
// slot is a uint32 position, so 1<<30 slots is already a 4 GiB table,
// matching the reference's own 4 GiB MEM_LIMIT on LempelZivPredict_t.
const lzpHashBitsLimit = 30

func lzpHashBits(level uint) uint {
	bits := 20 + level

	if bits > lzpHashBitsLimit {
		bits = lzpHashBitsLimit
	}

	return bits
}

// scaleUpMilestones are byte counts (in units of 256 KiB) at which the
// mixer's weight resolution is doubled via ScaleUp, per §4.3 step 8.
var scaleUpMilestones = [2]uint64{25 * 256 * 1024, 4 * 256 * 1024}

// Predictor is the top-level bit predictor: it owns the shared bit-level
// state and wires together every model (order-N context maps, LZP, DMC,
// SparseMatchModel, Txt) into the 9-input Mixer, the six-stage APM chain, a
// local Blend, and the final SSE stage. Get() returns the 16-bit
// probability computed by the previous Update call (or 0x8000 before any
// bit has been observed); Update(bit) trains every model on the
// now-revealed bit and computes the prediction for the bit after it -
// the same trailing-update convention every model in this package follows.
type Predictor struct {
	state *PredictorState
	buf   []byte
	pos   uint64

	orders [6]*orderModel
	lzp    *LZP
	dmc    *DMC
	smm    *SparseMatchModel
	txt    *Txt

	mixer      *Mixer
	tx         [NLayers]int32
	addToOrder uint32

	a1, a2, a3, a4, a5, a6 *APM
	blend                  *Blend

	sse *SSE

	pr           uint16 // cached prediction returned by Get()
	lastMxrErr   int32  // bit<<12 - mixer's raw prediction, from the previous call
	lastBlendOut int32

	bytesSinceScaleUp uint64
	scaleUpsDone      int
}

// NewPredictor creates a fully wired Predictor ready to encode or decode
// from the start of a stream. level in [0,12] scales every hashed model
// table's memory footprint, per the reference's MEM(offset)=1<<(offset+level)
// rule: mixer topology and model set are fixed at build time, but table
// sizes grow by one power of two per level.
func NewPredictor(level uint) *Predictor {
	s := NewPredictorState()

	p := &Predictor{
		state:  s,
		buf:    make([]byte, 0, predictorBufCap),
		orders: newOrderModels(s, level),
		dmc:    NewDMC(s, dmcNodeBudget(level)),
		smm:    NewSparseMatchModel(s),
		txt:    NewTxt(),
		a1:     NewAPM(0x100, 9238, 4), // fixed: context is a plain 8-bit byte
		a2:     NewAPM(uint32(mem(9, level)), 9238, 4),
		a3:     NewAPM(uint32(mem(12, level)), 9238, 4),
		a4:     NewAPM(uint32(mem(14, level)), 9238, 4),
		a5:     NewAPM(uint32(mem(12, level)), 9238, 4),
		a6:     NewAPM(uint32(mem(9, level)), 9238, 4),
		blend:  NewBlend(1<<19, 4),
		sse:    NewSSE(),
		pr:     0x8000,
	}

	p.lzp = NewLZP(s, &p.buf, lzpHashBits(level), uint32(level))
	p.smm.SetBuf(&p.buf)
	p.mixer = NewMixer(&p.tx, s)

	return p
}

// Get returns the 16-bit probability (of the next bit being 1) computed by
// the previous Update call.
func (p *Predictor) Get() int {
	return int(p.pr)
}

// Update trains every model on the now-observed bit, performs byte-boundary
// bookkeeping when a byte completes, and leaves a fresh 16-bit prediction
// cached for the next Get() call. This implements the eight orchestration
// steps of the top-level predictor: fail-history aging, ensemble
// prediction, the APM chain, the local blend, SSE, and the c0/bcount/byte
// bookkeeping.
func (p *Predictor) Update(bitByte byte) {
	bit := int(bitByte & 1)
	s := p.state

	// Step 1: age the fail history and bump the small/large miss counters.
	fail := p.lastMxrErr
	if fail < 0 {
		fail = -fail
	}

	s.Fails <<= 1
	s.Failz <<= 1

	smallMiss, largeMiss := calcfails(uint32(fail), s.BCount)

	if smallMiss {
		s.Failz |= 1
	}

	if largeMiss {
		s.Fails |= 1

		if s.FailCount < 0xFF {
			s.FailCount++
		}
	} else if s.FailCount > 0 {
		s.FailCount--
	}

	// Train the mixer on the error from the previous round's raw prediction,
	// then recompute every model's output for the bit that was just
	// observed - every model below follows the same trailing-update
	// convention (train on the revealed bit, return the prediction for the
	// context that will be current next time).
	p.mixer.Update(p.lastMxrErr)

	order := p.lzp.Predict(bit)
	p.tx[0] = p.lzp.Output()

	for i := 0; i < 6; i++ {
		p.tx[i+1] = p.orders[i].Predict(bit)
	}

	p.tx[7] = p.dmc.Predict(bit)
	p.tx[8] = p.smm.Predict(bit)

	p.addToOrder += NLayers
	mixerCtx := p.addToOrder + 64*order
	p.mixer.Context(mixerCtx)

	pr0 := p.mixer.Predict() // stretched log-odds, step 2
	p.lastMxrErr = (int32(bit) << 12) - int32(internal.Squash(int(pr0))) - int32(bit)

	// Step 3: APM a1 keyed on c0, blended 7/16 of the way from the ensemble
	// toward the APM output.
	p.a1.Update(bit)
	a1Out := p.a1.Refine(int(pr0), s.C0&0xFF)
	px := balance(7, int32(internal.Squash(int(pr0))), int32(a1Out))

	// Step 4: a2..a6 in a fixed chain, each refining the previous stage's
	// output (a2 refines px); a3..a6 also feed the local blend below.
	cz := bucketFails(s.Fails, s.FailCount)

	p.a2.Update(bit)
	p2 := p.a2.Refine(internal.Stretch(int(px)), hashCtx(uint64(s.C0), uint64(s.Failz&0x7FF), 9))

	p.a3.Update(bit)
	p3 := p.a3.Refine(internal.Stretch(int(p2)), hashCtx(uint64(s.C0)*32, uint64(s.X5&0x80FFFF), 12))

	p.a4.Update(bit)
	p4 := p.a4.Refine(internal.Stretch(int(p3)), hashCtx(s.Word, uint64(s.X5), 14))

	p.a5.Update(bit)
	p5 := p.a5.Refine(internal.Stretch(int(p4)), hashCtx(uint64(s.C0), uint64(s.W5), 12))

	p.a6.Update(bit)
	p6 := p.a6.Refine(internal.Stretch(int(p5)), hashCtx(uint64(cz), uint64(s.X5&0x80FF), 9))

	// Step 5: local 4-input blend of the last four APM outputs.
	blendCtx := (s.W5 << 1)
	if s.Fails != 0 {
		blendCtx |= 1
	}

	blendErr := ((int32(bit) << 12) - int32(internal.Squash(int(p.lastBlendOut)))) * 8
	row := p.blend.Get()
	row[0] = int16(clampInt32(int32(internal.Stretch(int(p3))), -2048, 2047))
	row[1] = int16(clampInt32(int32(internal.Stretch(int(p4))), -2048, 2047))
	row[2] = int16(clampInt32(int32(internal.Stretch(int(p5))), -2048, 2047))
	row[3] = int16(clampInt32(int32(internal.Stretch(int(p6))), -2048, 2047))

	pr12 := p.blend.Predict(blendErr, blendCtx)
	p.lastBlendOut = pr12

	// Step 6/7: SSE produces the final 16-bit probability, unless the text
	// forecast model asserts certainty (it never disagrees with the coder:
	// a mis-assertion just silently resets the model, per §4.11).
	pr16 := p.sse.Predict(pr12, bit)

	if ok, asserted := p.txt.Predict(bit); ok {
		pr16 = 0

		if asserted != 0 {
			pr16 = 0xFFFF
		}
	}

	p.pr = pr16

	// Step 8: shift the bit into c0/bcount; at the byte boundary, roll the
	// finished byte into cross-byte state and run every model's
	// byte-boundary hook.
	s.PushBit(bit)

	if s.AtByteBoundary() {
		p.finishByte()
	}
}

// finishByte runs once per completed byte: it rotates the byte into
// cross-byte state, advances every model's byte-boundary context, and
// applies the mixer's periodic ScaleUp.
func (p *Predictor) finishByte() {
	s := p.state
	finishedByte := byte(s.C0 & 0xFF)

	s.FinishByte()

	p.buf = append(p.buf, finishedByte)
	p.pos++

	for i := range p.orders {
		p.orders[i].Refresh(s.Cx, s.C1)
	}

	p.lzp.Update(uint32(p.pos))
	p.smm.Update(uint32(p.pos), s.Cx)
	p.dmc.Update(s.TT)
	p.txt.Update()

	p.bytesSinceScaleUp++

	if p.scaleUpsDone < len(scaleUpMilestones) && p.bytesSinceScaleUp >= scaleUpMilestones[p.scaleUpsDone] {
		p.mixer.ScaleUp()
		p.scaleUpsDone++
		p.bytesSinceScaleUp = 0
	}
}

// balance linearly interpolates w/16 of the way from a to b.
func balance(w int32, a, b int32) int32 {
	return ((16-w)*a + w*b) >> 4
}

// hashCtx combines two 64-bit values and keeps the top 'bits' bits, used to
// build APM context indices from the various pieces of cross-byte state.
func hashCtx(a, b uint64, bits uint) uint32 {
	return finalise64(combine64(combine64(phi64, a), b), bits)
}
