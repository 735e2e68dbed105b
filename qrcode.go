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

import "math"

// QrCode represents an immutable QR code symbol, a square grid of dark and
// light modules conforming to ISO/IEC 18004. Once constructed it never
// changes; it is safe to share across goroutines.
type QrCode struct {
	version     Version
	size        int
	ecl         ECL
	mask        Mask
	modules     [][]bool
	moduleTypes [][]ModuleType
	isFunction  [][]bool // Construction-only; discarded before the QrCode is returned to callers.
}

// Penalty weights used by getPenaltyScore.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// EncodeText encodes text as a QR code symbol with the given error
// correction level, choosing the smallest version in [MinVersion,
// MaxVersion] that fits, and boosting the error correction level when room
// allows.
func EncodeText(text string, ecl ECL, opts ...func(*segmentEncoder)) (*QrCode, error) {
	return EncodeSegments(MakeSegments(text), ecl, opts...)
}

// EncodeBinary encodes a byte slice into a QR code symbol with the given
// error correction level.
func EncodeBinary(data []byte, ecl ECL, opts ...func(*segmentEncoder)) (*QrCode, error) {
	return EncodeSegments([]*QRSegment{MakeBytes(data)}, ecl, opts...)
}

// EncodeSegments builds a QR code symbol from one or more segments. By
// default it searches versions 1..40, boosts the error correction level,
// and chooses the mask with the lowest penalty score; options override any
// of those defaults.
func EncodeSegments(segs []*QRSegment, ecl ECL, opts ...func(*segmentEncoder)) (*QrCode, error) {
	s := defaultSegmentEncoder()
	for _, o := range opts {
		o(&s)
	}

	if s.minVersion < MinVersion || MaxVersion < s.maxVersion || s.maxVersion < s.minVersion {
		return nil, newError(ErrInvalidValue, "invalid version range [%d, %d]", s.minVersion, s.maxVersion)
	}
	if s.mask < AutoMask || s.mask > 7 {
		return nil, newError(ErrInvalidValue, "mask value %d out of range", s.mask)
	}

	// Find the minimal version that fits the segments.
	version := s.minVersion
	var dataUsedBits int
	for {
		dataCapacityBits := numDataCodewords[ecl][version] * 8
		dataUsedBits = getTotalBits(segs, version)
		if dataUsedBits != -1 && dataUsedBits <= dataCapacityBits {
			break
		}
		if version >= s.maxVersion {
			if dataUsedBits != -1 {
				return nil, newError(ErrDataTooLong, "data length = %d bits, max capacity = %d bits", dataUsedBits, dataCapacityBits)
			}
			return nil, newError(ErrDataTooLong, "segment character count exceeds the field width at every candidate version")
		}
		version++
	}
	if dataUsedBits < 0 {
		panic("incorrect data size calculation")
	}

	// Boost the ECC level while the data still fits the chosen version.
	for newECL := Medium; newECL <= High; newECL++ {
		if s.boostECL && dataUsedBits <= numDataCodewords[newECL][version]*8 {
			ecl = newECL
		}
	}

	// Concatenate all segments into the data bit string.
	bb := newBitBuffer(0)
	for _, seg := range segs {
		mustAppendBits(&bb, int(seg.modeBits), 4)
		mustAppendBits(&bb, seg.NumChars, seg.Mode.numCharCountBits(version))
		if err := bb.appendBuffer(bitBuffer(seg.Data)); err != nil {
			panic(err)
		}
	}
	if bb.length() != dataUsedBits {
		panic("incorrect data size calculation")
	}

	// Terminator and byte alignment.
	dataCapacityBits := numDataCodewords[ecl][version] * 8
	if bb.length() > dataCapacityBits {
		panic("incorrect data size calculation")
	}
	mustAppendBits(&bb, 0, int8(min(4, dataCapacityBits-bb.length())))
	mustAppendBits(&bb, 0, int8((8-bb.length()%8)%8))
	if bb.length()%8 != 0 {
		panic("incorrect data size calculation")
	}

	// Pad with alternating bytes until the version's capacity is reached.
	for padByte := 0xEC; bb.length() < dataCapacityBits; padByte ^= 0xEC ^ 0x11 {
		mustAppendBits(&bb, padByte, 8)
	}

	// Pack bits into bytes, big-endian within each byte.
	dataCodewords := make([]byte, bb.length()/8)
	for i := 0; i < bb.length(); i++ {
		bit, err := bb.getBit(i)
		if err != nil {
			panic(err)
		}
		dataCodewords[i>>3] |= byte(bit) << (7 - uint(i&7))
	}

	return buildQrCode(version, ecl, dataCodewords, s.mask), nil
}

// NewQrCode is the low-level constructor: it builds a QR code directly from
// a caller-supplied version, error correction level, and already-padded
// data codewords (len(dataCodewords) must equal the number of data
// codewords for that version and ECL), applying error correction, module
// placement, and masking.
func NewQrCode(version Version, ecl ECL, dataCodewords []byte, mask Mask) (*QrCode, error) {
	if version < MinVersion || version > MaxVersion {
		return nil, newError(ErrValueOutOfRange, "version %d out of range [%d, %d]", version, MinVersion, MaxVersion)
	}
	if mask < AutoMask || mask > 7 {
		return nil, newError(ErrValueOutOfRange, "mask value %d out of range", mask)
	}
	if want := numDataCodewords[ecl][version]; len(dataCodewords) != want {
		return nil, newError(ErrInvalidValue, "expected %d data codewords for version %d at this ECL, got %d", want, version, len(dataCodewords))
	}

	return buildQrCode(version, ecl, dataCodewords, mask), nil
}

func buildQrCode(version Version, ecl ECL, dataCodewords []byte, mask Mask) *QrCode {
	size := int(version)*4 + 17
	q := &QrCode{
		version:     version,
		size:        size,
		ecl:         ecl,
		modules:     make([][]bool, size),
		moduleTypes: make([][]ModuleType, size),
		isFunction:  make([][]bool, size),
	}
	for i := 0; i < size; i++ {
		q.modules[i] = make([]bool, size)
		q.moduleTypes[i] = make([]ModuleType, size)
		q.isFunction[i] = make([]bool, size)
	}

	q.drawFunctionPatterns()
	allCodewords := q.addECCAndInterleave(dataCodewords)
	q.drawCodewords(allCodewords)
	q.mask = q.handleConstructorMasking(mask)
	q.isFunction = nil

	return q
}

// Version returns this symbol's version number.
func (q *QrCode) Version() Version {
	return q.version
}

// Size returns the side length of the symbol in modules.
func (q *QrCode) Size() int {
	return q.size
}

// ErrorCorrectionLevel returns the error correction level actually used,
// which may be higher than requested if ECC boosting raised it.
func (q *QrCode) ErrorCorrectionLevel() ECL {
	return q.ecl
}

// Mask returns the mask pattern (0-7) actually used.
func (q *QrCode) Mask() Mask {
	return q.mask
}

// Module reports whether the module at (x, y) is dark.
func (q *QrCode) Module(x, y int) (bool, error) {
	if x < 0 || x >= q.size || y < 0 || y >= q.size {
		return false, newError(ErrIndexOutOfRange, "module (%d, %d) out of range [0, %d)", x, y, q.size)
	}
	return q.modules[y][x], nil
}

// ModuleType reports the classification of the module at (x, y).
func (q *QrCode) ModuleType(x, y int) (ModuleType, error) {
	if x < 0 || x >= q.size || y < 0 || y >= q.size {
		return Data, newError(ErrIndexOutOfRange, "module (%d, %d) out of range [0, %d)", x, y, q.size)
	}
	return q.moduleTypes[y][x], nil
}

// addECCAndInterleave splits data into error-correction blocks, appends each
// block's Reed-Solomon remainder, and interleaves the blocks into the final
// codeword sequence.
func (q *QrCode) addECCAndInterleave(data []byte) []byte {
	if len(data) != numDataCodewords[q.ecl][q.version] {
		panic("data is not correct length")
	}

	numBlocks := numErrorCorrectionBlocks[q.ecl][q.version]
	blockECCLen := eccCodeWordsPerBlock[q.ecl][q.version]
	rawCodewords := numRawDataModules[q.version] / 8
	numShortBlocks := numBlocks - rawCodewords%numBlocks
	shortBlockLen := rawCodewords / numBlocks

	blocks := make([][]byte, numBlocks)
	rsDiv := reedSolomonDivisors[blockECCLen]
	for i, k := 0, 0; i < numBlocks; i++ {
		dat := data[k : k+shortBlockLen-blockECCLen+bToI(i >= numShortBlocks)]
		k += len(dat)
		block := make([]byte, shortBlockLen+1)
		copy(block, dat)
		ecc := reedSolomonComputeRemainder(dat, rsDiv)
		copy(block[(len(block)-len(ecc)):], ecc)
		blocks[i] = block
	}

	result := make([]byte, rawCodewords)
	for i, k := 0, 0; i < len(blocks[0]); i++ {
		for j := 0; j < len(blocks); j++ {
			// Skip the padding byte that short blocks don't have.
			if i != shortBlockLen-blockECCLen || j >= numShortBlocks {
				result[k] = blocks[j][i]
				k++
			}
		}
	}

	return result
}

// applyMask XOR's the data modules (not function modules) of this QR code
// with the given mask pattern. Applying the same mask twice is a no-op.
func (q *QrCode) applyMask(mask Mask) {
	for y := 0; y < q.size; y++ {
		for x := 0; x < q.size; x++ {
			if q.isFunction[y][x] {
				continue
			}
			if maskPredicate(mask, x, y) {
				q.modules[y][x] = !q.modules[y][x]
			}
		}
	}
}

func maskPredicate(mask Mask, x, y int) bool {
	switch mask {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	default:
		panic("illegal mask value")
	}
}

// drawAlignmentPattern draws a 5x5 alignment pattern centered at (x, y).
func (q *QrCode) drawAlignmentPattern(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			q.setFunctionModule(x+dx, y+dy, max(abs(dx), abs(dy)) != 1, AlignmentPattern)
		}
	}
}

// drawCodewords draws the given sequence of data and error correction
// codewords onto the data area in the zig-zag scan order. Function modules
// must already be marked before calling this.
func (q *QrCode) drawCodewords(data []byte) {
	if len(data) != numRawDataModules[q.version]/8 {
		panic("incorrect data length")
	}

	i := 0 // Bit index into data.
	for right := q.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < q.size; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				upward := (right+1)&2 == 0

				var y int
				if upward {
					y = q.size - 1 - vert
				} else {
					y = vert
				}

				if !q.isFunction[y][x] && i < len(data)*8 {
					q.modules[y][x] = getBitAsBool(int(data[i>>3]), 7-(i&7))
					i++
				}
				// Any remainder bits (0-7) stay light, as set by construction.
			}
		}
	}

	if i != len(data)*8 {
		panic("incorrect length")
	}
}

// drawFinderPattern draws a 9x9 finder pattern, including its separator
// ring, centered at (x, y).
func (q *QrCode) drawFinderPattern(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			dist := max(abs(dx), abs(dy))
			xx := x + dx
			yy := y + dy
			if 0 <= xx && xx < q.size && 0 <= yy && yy < q.size {
				q.setFunctionModule(xx, yy, dist != 2 && dist != 4, FinderPattern)
			}
		}
	}
}

// drawFormatBits draws two copies of the format bits (BCH(15,5)) for the
// given mask and this symbol's error correction level.
func (q *QrCode) drawFormatBits(mask Mask) {
	data := q.ecl.formatBits()<<3 | int(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*0x537
	}
	bits := data<<10 | rem ^ 0x5412
	if bits>>15 != 0 {
		panic("incorrect format bits calculation")
	}

	for i := 0; i <= 5; i++ {
		q.setFunctionModule(8, i, getBitAsBool(bits, i), Format)
	}
	q.setFunctionModule(8, 7, getBitAsBool(bits, 6), Format)
	q.setFunctionModule(8, 8, getBitAsBool(bits, 7), Format)
	q.setFunctionModule(7, 8, getBitAsBool(bits, 8), Format)
	for i := 9; i < 15; i++ {
		q.setFunctionModule(14-i, 8, getBitAsBool(bits, i), Format)
	}

	for i := 0; i < 8; i++ {
		q.setFunctionModule(q.size-1-i, 8, getBitAsBool(bits, i), Format)
	}
	for i := 8; i < 15; i++ {
		q.setFunctionModule(8, q.size-15+i, getBitAsBool(bits, i), Format)
	}
	q.setFunctionModule(8, q.size-8, true, Format) // Always dark.
}

// drawFunctionPatterns draws every non-data module: timing, finders,
// alignment patterns, the format placeholder, and the version block.
func (q *QrCode) drawFunctionPatterns() {
	for i := 0; i < q.size; i++ {
		q.setFunctionModule(6, i, i%2 == 0, VerticalTiming)
		q.setFunctionModule(i, 6, i%2 == 0, HorizontalTiming)
	}

	q.drawFinderPattern(3, 3)
	q.drawFinderPattern(q.size-4, 3)
	q.drawFinderPattern(3, q.size-4)

	alignPatPos := alignmentPatternPositions[q.version]
	numAlign := len(alignPatPos)
	for i := 0; i < numAlign; i++ {
		for j := 0; j < numAlign; j++ {
			if !(i == 0 && j == 0 || i == 0 && j == numAlign-1 || i == numAlign-1 && j == 0) {
				q.drawAlignmentPattern(int(alignPatPos[i]), int(alignPatPos[j]))
			}
		}
	}

	q.drawFormatBits(0) // Placeholder, overwritten after mask selection.
	q.drawVersion()
}

// drawVersion draws two copies of the 18-bit BCH-encoded version block, iff
// version >= 7.
func (q *QrCode) drawVersion() {
	if q.version < 7 {
		return
	}

	rem := int(q.version)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*0x1F25
	}
	bits := int(q.version)<<12 | rem
	if bits>>18 != 0 {
		panic("incorrect version calculation")
	}

	for i := 0; i < 18; i++ {
		bit := getBitAsBool(bits, i)
		a := q.size - 11 + i%3
		b := i / 3
		q.setFunctionModule(a, b, bit, ModuleVersion)
		q.setFunctionModule(b, a, bit, ModuleVersion)
	}
}

// finderPenaltyAddHistory pushes currentRunLength to the front of
// runHistory, dropping the oldest entry.
func (q *QrCode) finderPenaltyAddHistory(currentRunLength int, runHistory *[7]int) {
	if runHistory[0] == 0 {
		currentRunLength += q.size // Synthetic light border on the initial run.
	}

	copy(runHistory[1:], runHistory[0:])
	runHistory[0] = currentRunLength
}

// finderPenaltyCountPatterns counts how many sides of a 1:1:3:1:1 core
// pattern in runHistory look like a finder pattern.
func (q *QrCode) finderPenaltyCountPatterns(runHistory *[7]int) int {
	n := runHistory[1]
	if n > q.size*3 {
		panic("bad run history")
	}
	core := n > 0 && runHistory[2] == n && runHistory[3] == n*3 && runHistory[4] == n && runHistory[5] == n
	return bToI(core && runHistory[0] >= n*4 && runHistory[6] >= n) + bToI(core && runHistory[6] >= n*4 && runHistory[0] >= n)
}

// finderPenaltyTerminateAndCount closes out the run at the end of a row or
// column and returns its finder-pattern penalty contribution.
func (q *QrCode) finderPenaltyTerminateAndCount(runIsDark bool, runLength int, runHistory *[7]int) int {
	if runIsDark {
		q.finderPenaltyAddHistory(runLength, runHistory)
		runLength = 0
	}
	runLength += q.size // Synthetic light border on the final run.
	q.finderPenaltyAddHistory(runLength, runHistory)
	return q.finderPenaltyCountPatterns(runHistory)
}

// getAlignmentPatternPositions returns the ascending list of alignment
// pattern center coordinates (used on both axes) for the given version.
func getAlignmentPatternPositions(version Version) []byte {
	if version == 1 {
		return []byte{}
	}

	numAlign := int(version)/7 + 2
	var step int
	if version == 32 { // Special snowflake per the standard.
		step = 26
	} else {
		step = (int(version)*4 + numAlign*2 + 1) / (numAlign*2 - 2) * 2
	}

	result := make([]byte, numAlign)
	result[0] = 6
	for i, pos := len(result)-1, int(version)*4+17-7; i >= 1; i-- {
		result[i] = byte(pos)
		pos -= step
	}

	return result
}

// getPenaltyScore computes this symbol's mask penalty score: N1*A + N2*B +
// N3*C + N4*D, per the four rules in ISO/IEC 18004 §8.8.2.
func (q *QrCode) getPenaltyScore() int {
	result := 0

	// Rule A and C: row runs.
	for y := 0; y < q.size; y++ {
		runIsDark := false
		runX := 0
		var runHistory [7]int
		for x := 0; x < q.size; x++ {
			if q.modules[y][x] == runIsDark {
				runX++
				if runX == 5 {
					result += penaltyN1
				} else if runX > 5 {
					result++
				}
			} else {
				q.finderPenaltyAddHistory(runX, &runHistory)
				if !runIsDark {
					result += q.finderPenaltyCountPatterns(&runHistory) * penaltyN3
				}
				runIsDark = q.modules[y][x]
				runX = 1
			}
		}
		result += q.finderPenaltyTerminateAndCount(runIsDark, runX, &runHistory) * penaltyN3
	}

	// Rule A and C: column runs.
	for x := 0; x < q.size; x++ {
		runIsDark := false
		runY := 0
		var runHistory [7]int
		for y := 0; y < q.size; y++ {
			if q.modules[y][x] == runIsDark {
				runY++
				if runY == 5 {
					result += penaltyN1
				} else if runY > 5 {
					result++
				}
			} else {
				q.finderPenaltyAddHistory(runY, &runHistory)
				if !runIsDark {
					result += q.finderPenaltyCountPatterns(&runHistory) * penaltyN3
				}
				runIsDark = q.modules[y][x]
				runY = 1
			}
		}
		result += q.finderPenaltyTerminateAndCount(runIsDark, runY, &runHistory) * penaltyN3
	}

	// Rule B: 2x2 blocks of a single color.
	for y := 0; y < q.size-1; y++ {
		for x := 0; x < q.size-1; x++ {
			color := q.modules[y][x]
			if color == q.modules[y][x+1] && color == q.modules[y+1][x] && color == q.modules[y+1][x+1] {
				result += penaltyN2
			}
		}
	}

	// Rule D: balance of dark vs. light modules.
	dark := 0
	for _, row := range q.modules {
		for _, isDark := range row {
			if isDark {
				dark++
			}
		}
	}
	total := q.size * q.size
	k := (abs(dark*20-total*10)+total-1)/total - 1
	result += k * penaltyN4

	return result
}

// handleConstructorMasking applies mask (or, if AutoMask, the mask with the
// lowest penalty score) and draws the final format bits. It returns the
// mask that was actually applied.
func (q *QrCode) handleConstructorMasking(mask Mask) Mask {
	if mask == AutoMask {
		minPenalty := math.MaxInt32
		for i := Mask(0); i < 8; i++ {
			q.applyMask(i)
			q.drawFormatBits(i)
			penalty := q.getPenaltyScore()
			if penalty < minPenalty {
				mask = i
				minPenalty = penalty
			}
			q.applyMask(i) // Undo, since XOR is its own inverse.
		}
	}

	if mask < 0 || mask > 7 {
		panic("illegal mask value")
	}

	q.applyMask(mask)
	q.drawFormatBits(mask)
	return mask
}

// setFunctionModule sets a function module's color and type, and marks it
// off-limits to masking and data placement.
func (q *QrCode) setFunctionModule(x, y int, isDark bool, mt ModuleType) {
	q.modules[y][x] = isDark
	q.moduleTypes[y][x] = mt
	q.isFunction[y][x] = true
}
