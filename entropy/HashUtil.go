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

// phi64 is the golden-ratio multiplicative hash constant used by every
// context-hashing model in the predictor.
const phi64 = uint64(0x9E3779B97F4A7C15)

// combine64 folds x into seed using a Fibonacci/multiplicative hash step.
func combine64(seed, x uint64) uint64 {
	return (seed + x) * phi64
}

// finalise64 keeps the top 'bits' bits of a 64-bit hash, used to index into
// a hash table sized 1<<bits.
func finalise64(hash uint64, bits uint) uint32 {
	return uint32(hash >> (64 - bits))
}

// hash2 combines two 32-bit values into a single 64-bit hash.
func hash2(x0, x1 uint32) uint64 {
	return combine64(combine64(phi64, uint64(x0)), uint64(x1))
}

// hash3 combines three 32-bit values into a single 64-bit hash.
func hash3(x0, x1, x2 uint32) uint64 {
	return combine64(combine64(combine64(phi64, uint64(x0)), uint64(x1)), uint64(x2))
}
