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

// failLevels holds, per bcount (0..7), the {small, large} miss thresholds
// against which the absolute 12-bit prediction error is compared. Values
// are the reference's per-bcount breakpoints, each pre-scaled by 64 (the
// reference divides the error by 64 before comparing against an unscaled
// breakpoint; scaling the breakpoints up instead avoids a division here).
// The reference carries three textually different but numerically
// equivalent forms of this table (a switch on bcount, a packed-128-bit
// lookup, and this small-table form); this module implements the table
// form only.
var failLevels = [8][2]uint32{
	{24 * 64, 44 * 64},
	{25 * 64, 45 * 64},
	{25 * 64, 64 * 64},
	{2 * 64, 26 * 64},
	{22 * 64, 51 * 64},
	{0, 44 * 64},
	{0, 3 * 64},
	{25 * 64, 42 * 64},
}

// calcfails reports whether the absolute prediction error fail (in 12-bit
// probability units) crosses the small-miss and large-miss breakpoints
// for the given bcount.
func calcfails(fail uint32, bcount uint32) (smallMiss, largeMiss bool) {
	lvl := failLevels[bcount&7]
	return fail >= lvl[0], fail >= lvl[1]
}

// bucketFails folds the fails shift-register history plus failcount into a
// single bucket cz in [0,9], fed as an APM context. Reproduces the
// reference's nibble-extraction lookup: three 2-bit windows of fails
// (bits 5-6, 3-4, 1-2) are each mapped through a packed 4-bit nibble table,
// and bit 0 of fails contributes a base of 9 (vs 1).
func bucketFails(fails, failcount uint32) uint32 {
	cz := uint32(1)
	if fails&1 != 0 {
		cz = 9
	}

	cz += 0xF & (0x3340 >> (4 * (3 & (fails >> 5))))
	cz += 0xF & (0xC660 >> (4 * (3 & (fails >> 3))))
	cz += 0xF & (0xFC60 >> (4 * (3 & (fails >> 1))))

	cz = (failcount + cz) / 2
	if cz > 9 {
		cz = 9
	}

	return cz
}
