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

// maxBitBufferLen is the largest bit count that fits in a positive 31-bit
// integer, per the BitBuffer invariant in the data model.
const maxBitBufferLen = 1<<31 - 1

// bitBuffer is an appendable sequence of bits, one per slice element (0 or
// 1), readable at any bit index once appended.
type bitBuffer []byte

// newBitBuffer returns an empty bitBuffer with room for at least capHint
// bits.
func newBitBuffer(capHint int) bitBuffer {
	return make(bitBuffer, 0, capHint)
}

// copyBitBuffer returns a defensive copy of other, so a caller can keep
// mutating a builder buffer after handing its bits to a Segment.
func copyBitBuffer(other bitBuffer) bitBuffer {
	cp := make(bitBuffer, len(other))
	copy(cp, other)
	return cp
}

// appendBits appends the `length` most-significant-first bits of value.
// length must be in [0, 31] and value must fit in length bits.
func (bb *bitBuffer) appendBits(value int, length int8) error {
	if length < 0 || length > 31 || (length < 31 && value>>length != 0) {
		return newError(ErrValueOutOfRange, "value %d does not fit in %d bits", value, length)
	}
	if len(*bb)+int(length) > maxBitBufferLen {
		return newError(ErrCapacityExceeded, "appending %d bits would exceed capacity", length)
	}

	for i := length - 1; i >= 0; i-- { // Append data bit by bit.
		*bb = append(*bb, byte(value>>i&1))
	}
	return nil
}

// appendBuffer concatenates other onto bb.
func (bb *bitBuffer) appendBuffer(other bitBuffer) error {
	if len(*bb)+len(other) > maxBitBufferLen {
		return newError(ErrCapacityExceeded, "appending %d bits would exceed capacity", len(other))
	}
	*bb = append(*bb, other...)
	return nil
}

// getBit returns the bit at index i as 0 or 1.
func (bb bitBuffer) getBit(i int) (int, error) {
	if i < 0 || i >= len(bb) {
		return 0, newError(ErrIndexOutOfRange, "bit index %d out of range [0, %d)", i, len(bb))
	}
	return int(bb[i]), nil
}

// length returns the current number of bits in bb.
func (bb bitBuffer) length() int {
	return len(bb)
}
