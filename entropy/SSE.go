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

// sseContexts is the number of independent direct-indexed counter pairs the
// final SSE stage tracks; one per possible Squash output (0..4095).
const sseContexts = 4096

// sseOverflowShift: once n0|n1 for a context grows large enough that
// (n0|n1)>>sseOverflowShift is non-zero, both counters are halved to keep
// them tracking recent history rather than a lifetime average.
const sseOverflowShift = 21

// SSE (Secondary Symbol Estimation) is the last stage before the range
// coder: a direct-indexed pair of event counters per context, n0 (bit-0
// occurrences) and n1 (bit-1 occurrences), whose ratio gives a second,
// independent probability estimate of the final mixed output.
type SSE struct {
	n0, n1 [sseContexts]uint32
	ctx    uint32
}

// NewSSE creates an SSE stage with all counters at zero.
func NewSSE() *SSE {
	return &SSE{}
}

// Predict trains the bucket selected by the previous call with the now-known
// bit (halving both counters first if either risks overflow), then selects
// a new bucket from Squash(pr12) and returns the 16-bit probability read
// from its n0/n1 ratio: an even 0x8000 split when the bucket has no history,
// and a saturated extreme when only one outcome has ever been seen there.
func (s *SSE) Predict(pr12 int32, bit int) uint16 {
	n0 := &s.n0[s.ctx]
	n1 := &s.n1[s.ctx]

	if (*n0|*n1)>>sseOverflowShift != 0 {
		*n0 >>= 1
		*n1 >>= 1
	}

	if bit != 0 {
		*n1++
	} else {
		*n0++
	}

	s.ctx = uint32(internal.Squash(int(pr12))) & (sseContexts - 1)
	nn0 := s.n0[s.ctx]
	nn1 := s.n1[s.ctx]

	if nn0 == nn1 {
		return 0x8000
	}

	if nn0 == 0 {
		return 0xFFFF
	}

	if nn1 == 0 {
		return 0
	}

	return uint16((0xFFFF * uint64(nn1)) / uint64(nn0+nn1))
}
