/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrcodegen

// This file isolates the Reed-Solomon arithmetic over GF(2^8)/0x11D from the
// grid-building logic in qrcode.go, the way reedsolomon.go does in the
// ashokshau/qrcode reference implementation.

// reedSolomonMultiply returns the product of the two given field elements
// modulo GF(2^8)/0x11D, using Russian peasant multiplication.
func reedSolomonMultiply(x, y byte) byte {
	z := 0
	for i := 7; i >= 0; i-- {
		z = z<<1 ^ z>>7*0x11D
		z ^= int(y >> i & 1 * x)
	}

	return byte(z)
}

// reedSolomonComputeDivisor creates a Reed-Solomon error correction generator
// polynomial of the given degree.
func reedSolomonComputeDivisor(degree int) []byte {
	if degree < 1 || degree > 255 {
		panic("degree out of range")
	}

	// Coefficients are stored highest-to-lowest power, excluding the leading
	// term, which is always 1. For example, x^3 + 255*x^2 + 8x + 93 is
	// stored as [255, 8, 93].
	result := make([]byte, degree)
	result[degree-1] = 1 // Start off with the monomial x^0.

	// Compute (x - r^0) * (x - r^1) * ... * (x - r^(degree-1)) and drop the
	// leading x^degree term, which is always 1. r = 0x02 is a generator of
	// this field.
	root := byte(1)
	for i := 0; i < degree; i++ {
		for j := 0; j < len(result); j++ {
			result[j] = reedSolomonMultiply(result[j], root)
			if j+1 < len(result) {
				result[j] ^= result[j+1]
			}
		}
		root = reedSolomonMultiply(root, 0x02)
	}

	return result
}

// reedSolomonComputeRemainder returns the Reed-Solomon error correction
// codeword for the given data, using synthetic division by divisor.
func reedSolomonComputeRemainder(data, divisor []byte) []byte {
	result := make([]byte, len(divisor))
	for _, b := range data {
		factor := b ^ result[0]
		copy(result[0:], result[1:])
		result[len(result)-1] = 0
		for i := 0; i < len(result); i++ {
			result[i] ^= reedSolomonMultiply(divisor[i], factor)
		}
	}

	return result
}
