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
	kanzi "github.com/txrx-dev/paqcm"
)

// WriteVLI writes value to the bitstream as a VLI: 7-bit continuation,
// little-endian (the high bit of each coded byte marks "another byte
// follows"). Returns the number of bytes written. Used for the container
// header's length fields, which are not otherwise bounded to 32 bits.
func WriteVLI(bs kanzi.OutputBitStream, value uint64) int {
	res := 0

	for value >= 128 {
		bs.WriteBits(uint64(0x80|(value&0x7F)), 8)
		value >>= 7
		res++
	}

	bs.WriteBits(value, 8)
	return res + 1
}

// ReadVLI reads a VLI written by WriteVLI from the bitstream.
func ReadVLI(bs kanzi.InputBitStream) uint64 {
	var res uint64
	var shift uint

	for {
		b := bs.ReadBits(8)
		res |= (b & 0x7F) << shift

		if b < 128 {
			break
		}

		shift += 7
	}

	return res
}
