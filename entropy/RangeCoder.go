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

import (
	"errors"

	kanzi "github.com/txrx-dev/paqcm"
)

// RangeEncoder is a standard 32-bit binary range coder: low and high walk
// towards each other as Code narrows the interval to the side matching the
// observed bit, and whichever top byte the two bounds agree on is shifted
// out to the bitstream as soon as it settles.
type RangeEncoder struct {
	predictor kanzi.Predictor
	low       uint32
	high      uint32
	bitstream kanzi.OutputBitStream
	disposed  bool
}

// NewRangeEncoder creates a RangeEncoder writing to bs, driven by the
// probability estimates of predictor.
func NewRangeEncoder(bs kanzi.OutputBitStream, predictor kanzi.Predictor) (*RangeEncoder, error) {
	if bs == nil {
		return nil, errors.New("range coder: invalid null bitstream parameter")
	}

	if predictor == nil {
		return nil, errors.New("range coder: invalid null predictor parameter")
	}

	return &RangeEncoder{
		predictor: predictor,
		low:       0,
		high:      0xFFFFFFFF,
		bitstream: bs,
	}, nil
}

// EncodeByte encodes the given value bit by bit, most significant bit
// first.
func (e *RangeEncoder) EncodeByte(val byte) {
	e.EncodeBit((val>>7)&1, e.predictor.Get())
	e.EncodeBit((val>>6)&1, e.predictor.Get())
	e.EncodeBit((val>>5)&1, e.predictor.Get())
	e.EncodeBit((val>>4)&1, e.predictor.Get())
	e.EncodeBit((val>>3)&1, e.predictor.Get())
	e.EncodeBit((val>>2)&1, e.predictor.Get())
	e.EncodeBit((val>>1)&1, e.predictor.Get())
	e.EncodeBit(val&1, e.predictor.Get())
}

// EncodeBit encodes one bit given its 16-bit probability of being 1,
// updates the predictor with the observed outcome, and shifts out any
// settled leading bytes.
func (e *RangeEncoder) EncodeBit(bit byte, prob16 int) {
	mid := e.low + uint32((uint64(e.high-e.low)*uint64(prob16))>>16)

	if bit != 0 {
		e.high = mid
	} else {
		e.low = mid + 1
	}

	e.predictor.Update(bit)

	for (e.low^e.high)&0xFF000000 == 0 {
		e.bitstream.WriteBits(uint64(e.low>>24), 8)
		e.low <<= 8
		e.high = (e.high << 8) | 0xFF
	}
}

// Write encodes every byte of block and returns its length.
func (e *RangeEncoder) Write(block []byte) (int, error) {
	for _, b := range block {
		e.EncodeByte(b)
	}

	return len(block), nil
}

// BitStream returns the underlying output bitstream.
func (e *RangeEncoder) BitStream() kanzi.OutputBitStream {
	return e.bitstream
}

// Dispose flushes the top byte of low - the single byte needed to resolve
// the interval, matching the reference coder's Flush(); idempotent.
func (e *RangeEncoder) Dispose() {
	if e.disposed {
		return
	}

	e.disposed = true
	e.bitstream.WriteBits(uint64(e.low>>24), 8)
}

// RangeDecoder is the mirror image of RangeEncoder: it tracks the same
// (low, high) interval and a third value x initialized from, and refilled
// from, the coded bitstream.
type RangeDecoder struct {
	predictor kanzi.Predictor
	low       uint32
	high      uint32
	x         uint32
	bitstream kanzi.InputBitStream
	init      bool
}

// NewRangeDecoder creates a RangeDecoder reading from bs, driven by the
// probability estimates of predictor.
func NewRangeDecoder(bs kanzi.InputBitStream, predictor kanzi.Predictor) (*RangeDecoder, error) {
	if bs == nil {
		return nil, errors.New("range coder: invalid null bitstream parameter")
	}

	if predictor == nil {
		return nil, errors.New("range coder: invalid null predictor parameter")
	}

	return &RangeDecoder{
		predictor: predictor,
		low:       0,
		high:      0xFFFFFFFF,
		bitstream: bs,
	}, nil
}

// readByteOrPad reads one byte, substituting 0xFF once the bitstream is
// exhausted - the coder only ever flushes the single byte needed to
// resolve the final few bits, so the last renormalizations routinely run
// past the true end of the coded payload. This mirrors the reference
// decoder's own getc()-past-EOF tolerance.
func readByteOrPad(bs kanzi.InputBitStream) (b uint64) {
	defer func() {
		if recover() != nil {
			b = 0xFF
		}
	}()

	return bs.ReadBits(8)
}

func (d *RangeDecoder) ensureInit() {
	if d.init {
		return
	}

	d.init = true

	for i := 0; i < 4; i++ {
		d.x = (d.x << 8) | uint32(readByteOrPad(d.bitstream))
	}
}

// DecodeByte decodes one byte bit by bit, most significant bit first.
func (d *RangeDecoder) DecodeByte() byte {
	return (d.DecodeBit(d.predictor.Get()) << 7) |
		(d.DecodeBit(d.predictor.Get()) << 6) |
		(d.DecodeBit(d.predictor.Get()) << 5) |
		(d.DecodeBit(d.predictor.Get()) << 4) |
		(d.DecodeBit(d.predictor.Get()) << 3) |
		(d.DecodeBit(d.predictor.Get()) << 2) |
		(d.DecodeBit(d.predictor.Get()) << 1) |
		d.DecodeBit(d.predictor.Get())
}

// DecodeBit decodes one bit given its 16-bit probability of being 1.
func (d *RangeDecoder) DecodeBit(prob16 int) byte {
	d.ensureInit()

	mid := d.low + uint32((uint64(d.high-d.low)*uint64(prob16))>>16)

	var bit byte

	if d.x <= mid {
		bit = 1
		d.high = mid
	} else {
		bit = 0
		d.low = mid + 1
	}

	d.predictor.Update(bit)

	for (d.low^d.high)&0xFF000000 == 0 {
		d.low <<= 8
		d.high = (d.high << 8) | 0xFF
		d.x = (d.x << 8) | uint32(readByteOrPad(d.bitstream))
	}

	return bit
}

// Read decodes len(block) bytes into block and returns its length.
func (d *RangeDecoder) Read(block []byte) (int, error) {
	for i := range block {
		block[i] = d.DecodeByte()
	}

	return len(block), nil
}

// BitStream returns the underlying input bitstream.
func (d *RangeDecoder) BitStream() kanzi.InputBitStream {
	return d.bitstream
}

// Dispose is a no-op for the decoder; present to satisfy EntropyDecoder.
func (d *RangeDecoder) Dispose() {
}
