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

package main

const (
	_MAX_LEVEL = 12
)

// checksumByte folds a 64-bit value into the single coded checksum byte
// described by the stream layout: XOR-fold every byte of v together.
func checksumByte(v uint64) byte {
	var c byte

	for i := 0; i < 8; i++ {
		c ^= byte(v >> (8 * i))
	}

	return c
}
