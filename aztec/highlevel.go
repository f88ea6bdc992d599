package aztec

import "github.com/glyphworks/symbology/bitutil"

// The five Aztec character modes.
const (
	modeUpper = iota
	modeLower
	modeMixed
	modeDigit
	modePunct
)

// modeBits is the code width in bits for each mode. DIGIT uses 4-bit codes,
// every other mode uses 5-bit codes.
var modeBits = [5]int{5, 5, 5, 4, 5}

// modeChars lists the characters each mode can encode, in code order
// starting at the given base code. Code 0 is FLG(n) in every mode; code 1
// is space in every mode except PUNCT, where it is carriage return.
var modeChars = [5]struct {
	base  int
	chars string
}{
	modeUpper: {2, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
	modeLower: {2, "abcdefghijklmnopqrstuvwxyz"},
	modeMixed: {2, "\x01\x02\x03\x04\x05\x06\x07\b\t\n\v\f\r\x1b\x1c\x1d\x1e\x1f@\\^_`|~\x7f"},
	modeDigit: {2, "0123456789,."},
	modePunct: {6, "!\"#$%&'()*+,-./:;<=>?[]{}"},
}

// charCode maps each byte to its code in each mode, or -1 when the mode
// cannot encode the byte.
var charCode [256][5]int8

func init() {
	for i := range charCode {
		for m := range charCode[i] {
			charCode[i][m] = -1
		}
	}
	for m, table := range modeChars {
		for i := 0; i < len(table.chars); i++ {
			charCode[table.chars[i]][m] = int8(table.base + i)
		}
	}
	for m := modeUpper; m <= modeDigit; m++ {
		charCode[' '][m] = 1
	}
	charCode['\r'][modePunct] = 1
}

// punctPairs maps the four two-character sequences with dedicated PUNCT
// codes.
var punctPairs = map[[2]byte]int{
	{'\r', '\n'}: 2,
	{'.', ' '}:   3,
	{',', ' '}:   4,
	{':', ' '}:   5,
}

// latch is one step of a mode latch sequence: a code emitted at the given
// bit width.
type latch struct {
	code, bits int
}

// latchTable[from][to] gives the latch codes to switch modes. Multi-step
// entries pass through an intermediate mode, whose code width applies to the
// following step.
var latchTable = [5][5][]latch{
	modeUpper: {
		modeLower: {{28, 5}},
		modeMixed: {{29, 5}},
		modeDigit: {{30, 5}},
		modePunct: {{29, 5}, {30, 5}},
	},
	modeLower: {
		modeUpper: {{29, 5}, {29, 5}},
		modeMixed: {{29, 5}},
		modeDigit: {{30, 5}},
		modePunct: {{29, 5}, {30, 5}},
	},
	modeMixed: {
		modeUpper: {{29, 5}},
		modeLower: {{28, 5}},
		modeDigit: {{29, 5}, {30, 5}},
		modePunct: {{30, 5}},
	},
	modeDigit: {
		modeUpper: {{14, 4}},
		modeLower: {{14, 4}, {28, 5}},
		modeMixed: {{14, 4}, {29, 5}},
		modePunct: {{14, 4}, {29, 5}, {30, 5}},
	},
	modePunct: {
		modeUpper: {{31, 5}},
		modeLower: {{31, 5}, {28, 5}},
		modeMixed: {{31, 5}, {29, 5}},
		modeDigit: {{31, 5}, {30, 5}},
	},
}

func appendLatch(bits *bitutil.BitArray, from, to int) {
	for _, step := range latchTable[from][to] {
		bits.AppendBits(uint32(step.code), step.bits)
	}
}

// encodeHighLevel converts data into an Aztec bit stream using a greedy
// strategy starting in UPPER mode. Every byte is encodable, via binary shift
// when no character mode covers it.
func encodeHighLevel(data []byte) *bitutil.BitArray {
	result := bitutil.NewBitArray(0)
	curMode := modeUpper

	i := 0
	for i < len(data) {
		if i+1 < len(data) {
			if code, ok := punctPairs[[2]byte{data[i], data[i+1]}]; ok {
				if curMode != modePunct {
					appendLatch(result, curMode, modePunct)
					curMode = modePunct
				}
				result.AppendBits(uint32(code), modeBits[modePunct])
				i += 2
				continue
			}
		}

		b := data[i]
		if code := charCode[b][curMode]; code != -1 {
			result.AppendBits(uint32(code), modeBits[curMode])
			i++
			continue
		}

		newMode := bestMode(b, curMode)
		if newMode == -1 {
			// Binary shift is reachable only from UPPER, LOWER, and
			// MIXED; latch to UPPER first from the other two.
			switch curMode {
			case modeDigit:
				result.AppendBits(14, modeBits[modeDigit])
				curMode = modeUpper
			case modePunct:
				result.AppendBits(31, modeBits[modePunct])
				curMode = modeUpper
			}
			i = appendBinaryShift(result, data, i, curMode)
			continue
		}

		if canShift(curMode, newMode) && shouldShift(data, i, curMode) {
			// AS leaves curMode unchanged for the next character.
			if curMode == modeLower {
				result.AppendBits(28, modeBits[modeLower])
			} else {
				result.AppendBits(15, modeBits[modeDigit])
			}
			result.AppendBits(uint32(charCode[b][newMode]), modeBits[newMode])
		} else {
			appendLatch(result, curMode, newMode)
			curMode = newMode
			result.AppendBits(uint32(charCode[b][curMode]), modeBits[curMode])
		}
		i++
	}

	return result
}

// modePreference orders the candidate modes to try when the current mode
// cannot encode a character, cheapest latch first.
var modePreference = [5][]int{
	modeUpper: {modeLower, modeMixed, modeDigit, modePunct},
	modeLower: {modeDigit, modeMixed, modeUpper, modePunct},
	modeMixed: {modeUpper, modePunct, modeLower, modeDigit},
	modeDigit: {modeUpper, modeLower, modeMixed, modePunct},
	modePunct: {modeUpper, modeLower, modeMixed, modeDigit},
}

// bestMode returns the mode to encode b from curMode, or -1 when no
// character mode covers it.
func bestMode(b byte, curMode int) int {
	if charCode[b][curMode] != -1 {
		return curMode
	}
	for _, m := range modePreference[curMode] {
		if charCode[b][m] != -1 {
			return m
		}
	}
	return -1
}

// canShift reports whether a single-character shift from curMode to newMode
// exists. Aztec only defines Alpha Shift: LOWER code 28 and DIGIT code 15,
// both shifting to UPPER.
func canShift(curMode, newMode int) bool {
	if newMode != modeUpper {
		return false
	}
	return curMode == modeLower || curMode == modeDigit
}

// shouldShift prefers a shift over a latch when the excursion is isolated:
// the following character (if any) is encodable in the current mode.
func shouldShift(data []byte, pos, curMode int) bool {
	if pos+1 >= len(data) {
		return true
	}
	return charCode[data[pos+1]][curMode] != -1
}

// appendBinaryShift emits a run of raw bytes using the Binary Shift
// mechanism and returns the index after the run. The BS code (31) is
// followed by a 5-bit length for runs of 1 to 31 bytes, or a zero 5-bit
// field plus an 11-bit (length - 31) for runs up to 2078 bytes.
func appendBinaryShift(bits *bitutil.BitArray, data []byte, pos, curMode int) int {
	start := pos
	for pos < len(data) && !inAnyMode(data[pos]) {
		pos++
	}
	if pos == start {
		pos = start + 1
	}
	count := pos - start
	if count > 2078 {
		count = 2078
		pos = start + count
	}

	bits.AppendBits(31, modeBits[curMode])
	if count <= 31 {
		bits.AppendBits(uint32(count), 5)
	} else {
		bits.AppendBits(0, 5)
		bits.AppendBits(uint32(count-31), 11)
	}
	for j := start; j < start+count; j++ {
		bits.AppendBits(uint32(data[j]), 8)
	}
	return pos
}

func inAnyMode(b byte) bool {
	for m := modeUpper; m <= modePunct; m++ {
		if charCode[b][m] != -1 {
			return true
		}
	}
	return false
}
