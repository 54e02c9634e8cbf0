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

// The bit-history state automaton: six pairs of 256-entry successor tables,
// one pair per update regime. A state byte plus an observed bit and a table
// id in [0,5] determines the next state byte. Table id 2 is the canonical
// "balanced" regime used by most context trackers; the others decay or grow
// at different rates and are picked by the models that need skewed behavior
// (the dynamic Markov model uses table 0 exclusively, for instance).
//
// The two arrays below are reproduced verbatim from the reference numeric
// data, indexed as table[tableID][currentState], giving the state reached
// after observing a 0 bit (_stateTableBit0) or a 1 bit (_stateTableBit1).

var _stateTableBit0 = [6][256]uint8{
	{
		1, 3, 4, 7, 8, 9, 11, 15, 16, 17, 18, 20, 21, 22, 26, 31,
		32, 32, 32, 32, 34, 34, 34, 34, 34, 34, 36, 36, 36, 36, 38, 41,
		42, 42, 44, 44, 46, 46, 48, 48, 50, 53, 54, 54, 56, 56, 58, 58,
		60, 60, 62, 62, 50, 67, 68, 68, 70, 70, 72, 72, 74, 74, 76, 76,
		62, 62, 64, 83, 84, 84, 86, 86, 44, 44, 58, 58, 60, 60, 76, 76,
		78, 78, 80, 93, 94, 94, 96, 96, 48, 48, 88, 88, 80, 103, 104, 104,
		106, 106, 62, 62, 88, 88, 80, 113, 114, 114, 116, 116, 62, 62, 88, 88,
		90, 123, 124, 124, 126, 126, 62, 62, 98, 98, 90, 133, 134, 134, 136, 136,
		62, 62, 98, 98, 90, 143, 144, 144, 68, 68, 62, 62, 98, 98, 100, 149,
		150, 150, 108, 108, 100, 153, 154, 108, 100, 157, 158, 108, 100, 161, 162, 108,
		110, 165, 166, 118, 110, 169, 170, 118, 110, 173, 174, 118, 110, 177, 178, 118,
		110, 181, 182, 118, 120, 185, 186, 128, 120, 189, 190, 128, 120, 193, 194, 128,
		120, 197, 198, 128, 120, 201, 202, 128, 120, 205, 206, 128, 120, 209, 210, 128,
		130, 213, 214, 138, 130, 217, 218, 138, 130, 221, 222, 138, 130, 225, 226, 138,
		130, 229, 230, 138, 130, 233, 234, 138, 130, 237, 238, 138, 130, 241, 242, 138,
		130, 245, 246, 138, 140, 249, 250, 80, 140, 253, 254, 80, 140, 253, 254, 80,
	},
	{
		2, 2, 6, 5, 9, 13, 14, 11, 17, 25, 21, 27, 19, 29, 30, 23,
		33, 49, 37, 51, 41, 53, 45, 55, 35, 57, 43, 59, 39, 61, 62, 47,
		65, 97, 69, 99, 73, 101, 77, 103, 81, 105, 85, 107, 89, 109, 93, 111,
		67, 113, 75, 115, 83, 117, 91, 119, 71, 121, 87, 123, 79, 125, 126, 95,
		65, 97, 69, 99, 73, 101, 77, 103, 81, 105, 85, 107, 89, 109, 93, 111,
		65, 97, 69, 99, 73, 101, 77, 103, 81, 105, 85, 107, 89, 109, 93, 111,
		67, 113, 75, 115, 83, 117, 91, 119, 67, 113, 75, 115, 83, 117, 91, 119,
		71, 121, 87, 123, 71, 121, 87, 123, 79, 125, 79, 125, 79, 130, 128, 95,
		132, 95, 134, 79, 136, 95, 138, 79, 140, 95, 142, 79, 144, 95, 146, 79,
		148, 95, 150, 79, 152, 95, 154, 79, 156, 95, 158, 79, 156, 95, 160, 79,
		162, 103, 164, 103, 166, 103, 168, 103, 170, 103, 172, 103, 174, 103, 176, 103,
		178, 103, 180, 103, 182, 103, 184, 103, 186, 103, 188, 103, 190, 103, 192, 103,
		194, 103, 196, 103, 198, 103, 200, 103, 202, 115, 204, 115, 206, 115, 208, 115,
		210, 115, 212, 115, 214, 115, 216, 115, 218, 115, 220, 115, 222, 115, 224, 115,
		226, 115, 228, 115, 230, 115, 232, 115, 234, 115, 236, 115, 238, 115, 240, 115,
		242, 115, 244, 115, 246, 115, 248, 115, 250, 115, 252, 115, 254, 115, 254, 115,
	},
	{
		1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25, 27, 29, 31,
		33, 35, 37, 39, 41, 43, 45, 47, 49, 51, 53, 55, 57, 59, 61, 63,
		65, 67, 69, 71, 73, 75, 77, 79, 81, 83, 85, 87, 89, 91, 93, 95,
		97, 99, 101, 103, 105, 107, 109, 111, 113, 115, 117, 119, 121, 123, 125, 127,
		129, 131, 133, 135, 137, 139, 141, 143, 145, 147, 149, 151, 153, 155, 157, 159,
		161, 163, 165, 167, 169, 171, 173, 175, 177, 179, 181, 183, 185, 187, 189, 191,
		193, 195, 197, 199, 201, 203, 205, 207, 209, 211, 213, 215, 217, 219, 221, 223,
		225, 227, 229, 231, 233, 235, 237, 239, 241, 243, 245, 247, 249, 251, 253, 127,
		129, 131, 133, 135, 137, 139, 141, 143, 145, 147, 149, 151, 153, 155, 157, 159,
		161, 163, 165, 167, 169, 171, 173, 175, 177, 179, 181, 183, 185, 187, 189, 191,
		193, 195, 197, 199, 201, 203, 205, 207, 209, 211, 213, 215, 217, 219, 221, 223,
		225, 227, 229, 231, 233, 235, 237, 239, 241, 243, 245, 247, 249, 251, 189, 255,
		129, 131, 133, 135, 137, 139, 141, 143, 145, 147, 149, 151, 153, 155, 157, 159,
		161, 163, 165, 167, 169, 171, 173, 175, 177, 179, 181, 183, 185, 187, 189, 191,
		193, 195, 197, 199, 201, 203, 205, 207, 209, 211, 213, 215, 217, 219, 221, 223,
		225, 227, 229, 231, 233, 235, 237, 239, 241, 243, 245, 247, 249, 251, 253, 255,
	},
	{
		1, 3, 5, 6, 9, 8, 10, 13, 12, 14, 15, 18, 17, 20, 19, 21,
		24, 23, 26, 25, 27, 28, 31, 30, 33, 32, 35, 34, 36, 39, 38, 41,
		40, 43, 42, 44, 45, 48, 47, 50, 49, 52, 51, 54, 53, 55, 58, 57,
		60, 59, 62, 61, 64, 63, 65, 66, 69, 68, 71, 70, 73, 72, 75, 74,
		77, 76, 78, 81, 80, 83, 82, 85, 84, 87, 86, 89, 88, 90, 91, 94,
		93, 96, 95, 98, 97, 100, 99, 102, 101, 104, 103, 105, 108, 107, 110, 109,
		112, 111, 114, 113, 116, 115, 118, 117, 119, 105, 121, 120, 123, 122, 125, 124,
		127, 126, 129, 128, 131, 130, 133, 132, 134, 137, 38, 139, 138, 141, 140, 143,
		142, 145, 144, 147, 146, 148, 149, 39, 47, 152, 151, 154, 153, 156, 155, 158,
		157, 160, 159, 162, 161, 163, 48, 59, 166, 49, 168, 167, 170, 169, 172, 171,
		174, 173, 175, 176, 48, 59, 179, 178, 181, 180, 183, 182, 185, 184, 187, 186,
		188, 58, 72, 191, 190, 193, 192, 195, 194, 197, 196, 198, 199, 58, 72, 202,
		201, 204, 203, 206, 205, 208, 207, 209, 69, 86, 212, 211, 214, 213, 216, 215,
		217, 218, 69, 86, 221, 220, 223, 222, 225, 224, 226, 81, 101, 229, 228, 231,
		230, 232, 233, 81, 101, 236, 235, 238, 237, 239, 94, 117, 242, 241, 243, 244,
		94, 117, 247, 246, 248, 108, 132, 250, 251, 108, 246, 253, 121, 255, 121, 255,
	},
	{
		1, 4, 3, 6, 8, 7, 11, 10, 13, 12, 15, 17, 16, 19, 18, 22,
		21, 24, 23, 26, 25, 28, 30, 29, 32, 31, 34, 33, 37, 36, 39, 38,
		41, 40, 43, 42, 45, 47, 46, 49, 48, 51, 50, 53, 52, 56, 55, 58,
		57, 60, 59, 62, 61, 64, 63, 66, 68, 67, 70, 69, 72, 71, 74, 73,
		76, 75, 79, 78, 81, 80, 83, 82, 85, 84, 87, 86, 89, 88, 91, 93,
		92, 95, 94, 97, 96, 99, 98, 101, 100, 103, 102, 106, 105, 108, 107, 110,
		109, 112, 111, 114, 113, 116, 115, 118, 117, 120, 122, 121, 124, 123, 126, 125,
		128, 127, 130, 129, 132, 131, 118, 133, 135, 134, 137, 136, 139, 138, 141, 140,
		143, 142, 41, 144, 147, 146, 149, 151, 150, 153, 152, 155, 154, 157, 156, 159,
		158, 74, 160, 161, 52, 164, 163, 166, 165, 168, 167, 170, 169, 172, 171, 85,
		173, 174, 52, 176, 178, 177, 180, 179, 182, 181, 184, 183, 97, 185, 186, 63,
		189, 188, 191, 190, 193, 192, 195, 194, 97, 196, 197, 63, 199, 201, 200, 203,
		202, 205, 204, 110, 206, 207, 75, 210, 209, 212, 211, 214, 213, 124, 215, 216,
		75, 218, 220, 219, 222, 221, 124, 223, 224, 88, 227, 226, 229, 228, 137, 230,
		231, 88, 233, 235, 234, 151, 236, 237, 102, 240, 239, 151, 241, 242, 102, 244,
		164, 245, 246, 117, 176, 248, 249, 117, 244, 251, 133, 253, 133, 255, 148, 255,
	},
	{
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 12, 14, 68, 70, 70, 70,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 68, 70, 70, 70, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
		10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
	},
}

var _stateTableBit1 = [6][256]uint8{
	{
		2, 5, 6, 10, 12, 13, 14, 19, 23, 24, 25, 27, 28, 29, 30, 33,
		35, 35, 35, 35, 37, 37, 37, 37, 37, 37, 39, 39, 39, 39, 40, 43,
		45, 45, 47, 47, 49, 49, 51, 51, 52, 43, 57, 57, 59, 59, 61, 61,
		63, 63, 65, 65, 66, 55, 57, 57, 73, 73, 75, 75, 77, 77, 79, 79,
		81, 81, 82, 69, 71, 71, 73, 73, 59, 59, 61, 61, 49, 49, 89, 89,
		91, 91, 92, 69, 87, 87, 45, 45, 99, 99, 101, 101, 102, 69, 87, 87,
		57, 57, 109, 109, 111, 111, 112, 85, 87, 87, 57, 57, 119, 119, 121, 121,
		122, 85, 97, 97, 57, 57, 129, 129, 131, 131, 132, 85, 97, 97, 57, 57,
		139, 139, 141, 141, 142, 95, 97, 97, 57, 57, 81, 81, 147, 147, 148, 95,
		107, 107, 151, 151, 152, 95, 107, 155, 156, 95, 107, 159, 160, 105, 107, 163,
		164, 105, 117, 167, 168, 105, 117, 171, 172, 105, 117, 175, 176, 105, 117, 179,
		180, 115, 117, 183, 184, 115, 127, 187, 188, 115, 127, 191, 192, 115, 127, 195,
		196, 115, 127, 199, 200, 115, 127, 203, 204, 115, 127, 207, 208, 125, 127, 211,
		212, 125, 137, 215, 216, 125, 137, 219, 220, 125, 137, 223, 224, 125, 137, 227,
		228, 125, 137, 231, 232, 125, 137, 235, 236, 125, 137, 239, 240, 125, 137, 243,
		244, 135, 137, 247, 248, 135, 69, 251, 252, 135, 69, 255, 252, 135, 69, 255,
	},
	{
		3, 3, 4, 7, 12, 10, 8, 15, 24, 18, 26, 22, 28, 20, 16, 31,
		48, 34, 50, 38, 52, 42, 54, 46, 56, 36, 58, 44, 60, 40, 32, 63,
		96, 66, 98, 70, 100, 74, 102, 78, 104, 82, 106, 86, 108, 90, 110, 94,
		112, 68, 114, 76, 116, 84, 118, 92, 120, 72, 122, 88, 124, 80, 64, 127,
		96, 66, 98, 70, 100, 74, 102, 78, 104, 82, 106, 86, 108, 90, 110, 94,
		96, 66, 98, 70, 100, 74, 102, 78, 104, 82, 106, 86, 108, 90, 110, 94,
		112, 68, 114, 76, 116, 84, 118, 92, 112, 68, 114, 76, 116, 84, 118, 92,
		120, 72, 122, 88, 120, 72, 122, 88, 124, 80, 124, 80, 131, 80, 64, 129,
		64, 133, 80, 135, 64, 137, 80, 139, 64, 141, 80, 143, 64, 145, 80, 147,
		64, 149, 80, 151, 64, 153, 80, 155, 64, 157, 80, 159, 64, 157, 80, 161,
		104, 163, 104, 165, 104, 167, 104, 169, 104, 171, 104, 173, 104, 175, 104, 177,
		104, 179, 104, 181, 104, 183, 104, 185, 104, 187, 104, 189, 104, 191, 104, 193,
		104, 195, 104, 197, 104, 199, 104, 201, 116, 203, 116, 205, 116, 207, 116, 209,
		116, 211, 116, 213, 116, 215, 116, 217, 116, 219, 116, 221, 116, 223, 116, 225,
		116, 227, 116, 229, 116, 231, 116, 233, 116, 235, 116, 237, 116, 239, 116, 241,
		116, 243, 116, 245, 116, 247, 116, 249, 116, 251, 116, 253, 116, 255, 116, 255,
	},
	{
		2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32,
		34, 36, 38, 40, 42, 44, 46, 48, 50, 52, 54, 56, 58, 60, 62, 64,
		66, 68, 70, 72, 74, 76, 78, 80, 82, 84, 86, 88, 90, 92, 94, 96,
		98, 100, 102, 104, 106, 108, 110, 112, 114, 116, 118, 120, 122, 124, 126, 128,
		130, 132, 134, 136, 138, 140, 142, 144, 146, 148, 150, 152, 154, 156, 158, 160,
		162, 164, 166, 168, 170, 172, 174, 176, 178, 180, 182, 184, 186, 188, 190, 192,
		194, 196, 198, 200, 202, 204, 206, 208, 210, 212, 214, 216, 218, 220, 222, 224,
		226, 228, 230, 232, 234, 236, 238, 240, 242, 244, 246, 248, 250, 252, 254, 128,
		130, 132, 134, 136, 138, 140, 142, 144, 146, 148, 150, 152, 154, 156, 158, 160,
		162, 164, 166, 168, 170, 172, 174, 176, 178, 180, 182, 184, 186, 188, 190, 192,
		194, 196, 198, 200, 202, 204, 206, 208, 210, 212, 214, 216, 218, 220, 222, 224,
		226, 228, 230, 232, 234, 236, 238, 240, 242, 244, 246, 248, 250, 252, 190, 192,
		130, 132, 134, 136, 138, 140, 142, 144, 146, 148, 150, 152, 154, 156, 158, 160,
		162, 164, 166, 168, 170, 172, 174, 176, 178, 180, 182, 184, 186, 188, 190, 192,
		194, 196, 198, 200, 202, 204, 206, 208, 210, 212, 214, 216, 218, 220, 222, 224,
		226, 228, 230, 232, 234, 236, 238, 240, 242, 244, 246, 248, 250, 252, 254, 192,
	},
	{
		2, 5, 4, 8, 7, 9, 12, 11, 14, 13, 17, 16, 19, 18, 20, 23,
		22, 25, 24, 27, 26, 30, 29, 32, 31, 34, 33, 35, 38, 37, 40, 39,
		42, 41, 44, 43, 47, 46, 49, 48, 51, 50, 53, 52, 54, 57, 56, 59,
		58, 61, 60, 63, 62, 65, 64, 68, 67, 70, 69, 72, 71, 74, 73, 76,
		75, 77, 80, 79, 82, 81, 84, 83, 86, 85, 88, 87, 90, 89, 93, 92,
		95, 94, 97, 96, 99, 98, 101, 100, 103, 102, 104, 107, 106, 109, 108, 111,
		110, 113, 112, 115, 114, 117, 116, 119, 118, 120, 106, 122, 121, 124, 123, 126,
		125, 128, 127, 130, 129, 132, 131, 133, 136, 135, 138, 39, 140, 139, 142, 141,
		144, 143, 146, 145, 148, 147, 38, 150, 151, 48, 153, 152, 155, 154, 157, 156,
		159, 158, 161, 160, 162, 47, 164, 165, 60, 167, 50, 169, 168, 171, 170, 173,
		172, 175, 174, 47, 177, 178, 60, 180, 179, 182, 181, 184, 183, 186, 185, 187,
		57, 189, 190, 73, 192, 191, 194, 193, 196, 195, 198, 197, 57, 200, 201, 73,
		203, 202, 205, 204, 207, 206, 208, 68, 210, 211, 87, 213, 212, 215, 214, 217,
		216, 68, 219, 220, 87, 222, 221, 224, 223, 225, 80, 227, 228, 102, 230, 229,
		232, 231, 80, 234, 235, 102, 237, 236, 238, 93, 240, 241, 118, 243, 242, 93,
		245, 246, 118, 247, 107, 249, 250, 133, 107, 252, 247, 120, 254, 120, 254, 134,
	},
	{
		2, 3, 5, 7, 6, 9, 10, 12, 11, 14, 16, 15, 18, 17, 20, 21,
		23, 22, 25, 24, 27, 29, 28, 31, 30, 33, 32, 35, 36, 38, 37, 40,
		39, 42, 41, 44, 46, 45, 48, 47, 50, 49, 52, 51, 54, 55, 57, 56,
		59, 58, 61, 60, 63, 62, 65, 67, 66, 69, 68, 71, 70, 73, 72, 75,
		74, 77, 78, 80, 79, 82, 81, 84, 83, 86, 85, 88, 87, 90, 92, 91,
		94, 93, 96, 95, 98, 97, 100, 99, 102, 101, 104, 105, 107, 106, 109, 108,
		111, 110, 113, 112, 115, 114, 117, 116, 119, 121, 120, 123, 122, 125, 124, 127,
		126, 129, 128, 131, 130, 133, 132, 119, 134, 136, 135, 138, 137, 140, 139, 142,
		141, 144, 143, 42, 145, 148, 150, 149, 152, 151, 154, 153, 156, 155, 158, 157,
		160, 159, 75, 51, 162, 163, 165, 164, 167, 166, 169, 168, 171, 170, 173, 172,
		86, 51, 175, 177, 176, 179, 178, 181, 180, 183, 182, 185, 184, 98, 62, 187,
		188, 190, 189, 192, 191, 194, 193, 196, 195, 98, 62, 198, 200, 199, 202, 201,
		204, 203, 206, 205, 111, 74, 208, 209, 211, 210, 213, 212, 215, 214, 125, 74,
		217, 219, 218, 221, 220, 223, 222, 125, 87, 225, 226, 228, 227, 230, 229, 138,
		87, 232, 234, 233, 236, 235, 152, 101, 238, 239, 241, 240, 152, 101, 243, 245,
		244, 165, 116, 247, 248, 177, 116, 250, 245, 132, 252, 132, 254, 147, 254, 147,
	},
	{
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 13, 15, 69, 69, 69, 71,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 69, 69, 69, 71, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
		11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11,
	},
}
