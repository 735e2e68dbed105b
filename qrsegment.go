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

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// QRSegment represents a single segment in a QR code. A QR code may contain
// more than one segment (numeric, alphanumeric, byte, kanji, or ECI).
type QRSegment struct {
	Mode            // The mode of this segment (numeric, alphanumeric, byte, kanji, or ECI).
	NumChars int    // The length of this segment's unencoded data.
	Data     []byte // The encoded payload bits (one bit per byte), excluding the mode indicator and character count field.
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

var (
	alphanumericRegexp = regexp.MustCompile(`^[A-Z0-9 $%*+./:-]*$`)
	numericRegexp      = regexp.MustCompile(`^[0-9]*$`)
)

// getTotalBits returns the number of bits needed to encode segs at the given
// version, or -1 if any segment's character count overflows its count field,
// or if the sum would overflow a 31-bit counter.
func getTotalBits(segs []*QRSegment, version Version) int {
	result := int64(0)
	for _, seg := range segs {
		ccBits := seg.Mode.numCharCountBits(version)
		if ccBits < 31 && seg.NumChars >= 1<<ccBits {
			return -1 // The segment's length does not fit the field's bit width.
		}

		result += int64(4 + int(ccBits) + len(seg.Data))
		if result > math.MaxInt32 {
			return -1 // The sum will overflow an integer type.
		}
	}

	return int(result)
}

// MakeAlphanumeric creates an alphanumeric segment from the given text
// (uppercase letters, digits, some symbols).
func MakeAlphanumeric(text string) (*QRSegment, error) {
	if !alphanumericRegexp.MatchString(text) {
		return nil, newError(ErrInvalidCharacter, "text contains a character outside the alphanumeric set: %q", text)
	}

	bb := newBitBuffer(len(text)*5 + (len(text)+1)/2)
	var i int
	for i = 0; i <= len(text)-2; i += 2 { // Process groups of 2 characters.
		temp := strings.Index(alphanumericCharset, text[i:i+1]) * 45
		temp += strings.Index(alphanumericCharset, text[i+1:i+2])
		if err := bb.appendBits(temp, 11); err != nil {
			panic(err)
		}
	}

	if i < len(text) { // 1 character remaining.
		if err := bb.appendBits(strings.Index(alphanumericCharset, text[i:i+1]), 6); err != nil {
			panic(err)
		}
	}

	return &QRSegment{
		Mode:     Alphanumeric,
		NumChars: len(text),
		Data:     bb,
	}, nil
}

// MakeBytes encodes a byte slice into a QR segment of type Byte.
func MakeBytes(data []byte) *QRSegment {
	bb := newBitBuffer(len(data) * 8)
	for _, b := range data {
		if err := bb.appendBits(int(b), 8); err != nil {
			panic(err)
		}
	}

	return &QRSegment{
		Mode:     Byte,
		NumChars: len(data),
		Data:     bb,
	}
}

// MakeECI creates a segment representing an extended channel interpretation
// (ECI) designator with the specified value.
func MakeECI(assignValue int) (*QRSegment, error) {
	bb := newBitBuffer(24)
	switch {
	case assignValue < 0:
		return nil, newError(ErrValueOutOfRange, "ECI assignment value %d is out of range", assignValue)
	case assignValue < 1<<7:
		mustAppendBits(&bb, assignValue, 8)
	case assignValue < 1<<14:
		mustAppendBits(&bb, 2, 2)
		mustAppendBits(&bb, assignValue, 14)
	case assignValue < 1_000_000:
		mustAppendBits(&bb, 6, 3)
		mustAppendBits(&bb, assignValue, 21)
	default:
		return nil, newError(ErrValueOutOfRange, "ECI assignment value %d is out of range", assignValue)
	}

	return &QRSegment{
		Mode:     ECI,
		NumChars: 0,
		Data:     bb,
	}, nil
}

// MakeNumeric creates a numeric segment from the given digit string.
func MakeNumeric(digits string) (*QRSegment, error) {
	if !numericRegexp.MatchString(digits) {
		return nil, newError(ErrInvalidCharacter, "text contains a non-digit character: %q", digits)
	}

	bb := newBitBuffer(len(digits)*3 + (len(digits)+2)/3)
	for i := 0; i < len(digits); {
		n := min(len(digits)-i, 3)
		d, _ := strconv.Atoi(digits[i : i+n]) // Safe: the regexp above already confirmed digits-only.
		mustAppendBits(&bb, d, int8(n*3+1))
		i += n
	}

	return &QRSegment{
		Mode:     Numeric,
		NumChars: len(digits),
		Data:     bb,
	}, nil
}

// MakeKanji creates a segment from kanji character codes, each a 13-bit
// Shift JIS-derived value in [0, 0x1FFF]. This mode is representable but
// never chosen automatically by MakeSegments; callers that want kanji must
// build the segment themselves.
func MakeKanji(codes []int) (*QRSegment, error) {
	bb := newBitBuffer(len(codes) * 13)
	for _, c := range codes {
		if c < 0 || c > 0x1FFF {
			return nil, newError(ErrValueOutOfRange, "kanji code %d out of range", c)
		}
		mustAppendBits(&bb, c, 13)
	}

	return &QRSegment{
		Mode:     Kanji,
		NumChars: len(codes),
		Data:     bb,
	}, nil
}

// MakeSegments encodes text into QR segments, selecting the first applicable
// mode of Numeric, Alphanumeric, or Byte (UTF-8) for the whole string. No
// mode-switching optimizer is performed.
func MakeSegments(text string) []*QRSegment {
	if len(text) == 0 {
		return []*QRSegment{}
	}

	if numericRegexp.MatchString(text) {
		seg, err := MakeNumeric(text)
		if err != nil {
			panic(err)
		}
		return []*QRSegment{seg}
	}

	if alphanumericRegexp.MatchString(text) {
		seg, err := MakeAlphanumeric(text)
		if err != nil {
			panic(err)
		}
		return []*QRSegment{seg}
	}

	return []*QRSegment{MakeBytes([]byte(text))}
}

// mustAppendBits appends bits known by the caller to already satisfy
// appendBits' range invariant; a failure here means this package has a bug.
func mustAppendBits(bb *bitBuffer, value int, length int8) {
	if err := bb.appendBits(value, length); err != nil {
		panic(err)
	}
}
