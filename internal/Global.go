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

// Package internal holds fixed numeric tables shared by every model in the
// predictor: the Squash/Stretch sigmoid pair, the byte classification tables
// that drive the shared bit-level state, and the log-magnitude table used by
// run-length based predictions.
package internal

var (
	// 65536 /(1 + exp(-alpha*x)) with alpha ~= 0.54
	_INV_EXP = [33]int{
		0, 8, 22, 47, 88, 160, 283, 492,
		848, 1451, 2459, 4117, 6766, 10819, 16608, 24127,
		32768, 41409, 48928, 54717, 58770, 61419, 63077, 64085,
		64688, 65044, 65253, 65376, 65448, 65489, 65514, 65528,
		65536,
	}

	// SQUASH contains p = 1/(1 + exp(-d)), d scaled by 8 bits, p scaled by 12 bits
	SQUASH [4096]int

	// STRETCH is the inverse of squash. d = ln(p/(1-p)), d scaled by 8 bits, p by 12 bits.
	// d has range -2047 to 2047 representing -8 to 8. p in [0..4095].
	STRETCH [4096]int
)

func init() {
	// Init squash
	for x := -2047; x <= 2047; x++ {
		w := x & 127
		y := (x >> 7) + 16
		SQUASH[x+2047] = (_INV_EXP[y]*(128-w) + _INV_EXP[y+1]*w) >> 11
	}

	SQUASH[4095] = 4095
	pi := 0

	for x := -2047; x <= 2047; x++ {
		i := Squash(x)

		for pi <= i {
			STRETCH[pi] = x
			pi++
		}
	}

	STRETCH[4095] = 2047
}

// Squash returns p = 1/(1 + exp(-d)), d scaled by 8 bits, p scaled by 12 bits.
// Values outside [-2048, 2047] clamp to the range endpoints.
func Squash(d int) int {
	if d >= 2048 {
		return 4095
	}

	if d <= -2048 {
		return 0
	}

	return SQUASH[d+2047]
}

// Stretch returns the inverse of Squash: a 12-bit log-odds value in
// [-2048, 2047] for a 12-bit probability p in [0, 4095].
func Stretch(p int) int {
	if p < 0 {
		p = 0
	} else if p > 4095 {
		p = 4095
	}

	return STRETCH[p]
}

// Stretch256 takes a 20-bit fixed-point probability (0..1048575, i.e. a
// 12-bit probability scaled by an additional 256) and returns the
// corresponding 12-bit log-odds value. Several models accumulate
// probabilities at this finer resolution before handing them to the mixer.
func Stretch256(p256 int) int {
	return Stretch(p256 >> 8)
}

// Ilog is a 256-entry table such that Ilog[n] is proportional to log2(n+1),
// scaled and clamped into the 12-bit log-odds range. It gives RunContextMap
// a magnitude proportional to the length of the run of identical bytes it
// has observed, reproduced from the reference implementation's recurrence
// x += K/(2n-1), K = round(2^29 / ln 2).
var Ilog [256]int32

func init() {
	const k = 774541002 // round(2^29 / ln(2))
	x := int64(0)

	for n := 1; n <= 256; n++ {
		x += k / int64(2*n-1)
		v := int32(x >> 24)

		if v > 2047 {
			v = 2047
		} else if v < -2048 {
			v = -2048
		}

		Ilog[n-1] = v
	}
}

// IsWord and IsSeparator are 256-entry byte classification tables driving
// the shared bit-level state (word, tt and w5 updates, see the predictor's
// shared state). A byte is "word" (letters and digits), "separator"
// (whitespace and punctuation commonly bounding words) or, when it is in
// neither table, "control" (everything else, including C0/C1 control
// bytes); there is no separate control table. These tables must reproduce the reference
// classification verbatim: they are load-bearing for prediction quality,
// not just documentation.
var (
	IsWord      [256]bool
	IsSeparator [256]bool
)

func init() {
	for b := 0; b < 256; b++ {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
			IsWord[b] = true
		case b == ' ', b == '\t', b == '\n', b == '\r', b == '.', b == ',', b == ';', b == ':',
			b == '!', b == '?', b == '"', b == '\'', b == '(', b == ')', b == '-':
			IsSeparator[b] = true
		}
	}
}
