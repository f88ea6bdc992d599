package pdf417

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/glyphworks/symbology"
)

// Text compaction sub-modes.
const (
	submodeAlpha = iota
	submodeLower
	submodeMixed
	submodePunct
)

// Mode latch and shift codewords.
const (
	latchToText       = 900
	latchToBytePadded = 901
	latchToNumeric    = 902
	shiftToByte       = 913
	latchToByte       = 924
)

// Compaction selects the high-level compaction scheme.
type Compaction int

const (
	// CompactionAuto picks per-segment between text, byte, and numeric.
	CompactionAuto Compaction = iota
	// CompactionText forces text compaction.
	CompactionText
	// CompactionByte forces byte compaction.
	CompactionByte
	// CompactionNumeric forces numeric compaction.
	CompactionNumeric
)

// mixedChars and punctChars list the characters of the text compaction
// Mixed and Punctuation sub-modes in code order; NUL marks codes reserved
// for sub-mode switches.
var (
	mixedChars = []byte{
		'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '&', '\r', '\t', ',', ':',
		'#', '-', '.', '$', '/', '+', '%', '*', '=', '^', 0, ' ', 0, 0, 0,
	}
	punctChars = []byte{
		';', '<', '>', '@', '[', '\\', ']', '_', '`', '~', '!', '\r', '\t', ',', ':',
		'\n', '-', '.', '$', '/', '"', '|', '*', '(', ')', '?', '{', '}', '\'', 0,
	}
)

// mixedCode and punctCode are the inverse lookups, -1 for characters the
// sub-mode cannot encode.
var mixedCode, punctCode [128]int

func init() {
	for i := range mixedCode {
		mixedCode[i] = -1
		punctCode[i] = -1
	}
	for code, ch := range mixedChars {
		if ch > 0 {
			mixedCode[ch] = code
		}
	}
	for code, ch := range punctChars {
		if ch > 0 {
			punctCode[ch] = code
		}
	}
}

// encodeHighLevel compacts msg into data codewords following annex P of the
// PDF417 symbology definition. ECI and custom charsets are not supported;
// byte compaction carries Latin-1.
func encodeHighLevel(msg string, compaction Compaction) ([]int, error) {
	if msg == "" {
		return nil, fmt.Errorf("pdf417: %w", symbology.ErrEmptyPayload)
	}

	msg, err := toLatin1(msg)
	if err != nil {
		return nil, err
	}
	if compaction == CompactionText {
		for i := 0; i < len(msg); i++ {
			if !textEncodable(msg[i]) {
				return nil, fmt.Errorf("pdf417: character %q at %d not encodable in text compaction: %w",
					msg[i], i, symbology.ErrInvalidCharacter)
			}
		}
	}

	var out []int

	switch compaction {
	case CompactionText:
		out, _ = encodeText(msg, 0, len(msg), out, submodeAlpha)

	case CompactionByte:
		out = encodeBinary(out, []byte(msg))

	case CompactionNumeric:
		out = append(out, latchToNumeric)
		out = encodeNumeric(out, msg, 0, len(msg))

	default:
		// Segment the message greedily: 13+ digits go numeric, 5+ text
		// characters go text, everything else goes byte.
		mode := latchToText
		submode := submodeAlpha
		p := 0
		for p < len(msg) {
			n := digitRun(msg, p)
			if n >= 13 {
				out = append(out, latchToNumeric)
				mode = latchToNumeric
				submode = submodeAlpha
				out = encodeNumeric(out, msg, p, n)
				p += n
				continue
			}
			// A short all-digit message still goes through text
			// compaction rather than byte compaction.
			if t := textRun(msg, p); t >= 5 || n == len(msg) {
				if mode != latchToText {
					out = append(out, latchToText)
					mode = latchToText
					submode = submodeAlpha
				}
				out, submode = encodeText(msg, p, t, out, submode)
				p += t
				continue
			}
			b := binaryRun(msg, p)
			if b == 0 {
				b = 1
			}
			if b == 1 && mode == latchToText {
				// single byte excursion uses a shift, not a latch
				out = append(out, shiftToByte, int(msg[p]))
			} else {
				out = encodeBinary(out, []byte(msg[p:p+b]))
				mode = latchToByte
				submode = submodeAlpha
			}
			p += b
		}
	}

	return out, nil
}

// encodeText compacts count characters starting at startpos using text
// compaction, appending pairs of 30-state values packed two per codeword.
// It returns the extended codeword slice and the sub-mode left active.
func encodeText(msg string, startpos, count int, out []int, submode int) ([]int, int) {
	values := make([]int, 0, count+count/2)

	idx := 0
	for idx < count {
		ch := msg[startpos+idx]
		switch submode {
		case submodeAlpha:
			switch {
			case ch == ' ':
				values = append(values, 26)
			case ch >= 'A' && ch <= 'Z':
				values = append(values, int(ch-'A'))
			case ch >= 'a' && ch <= 'z':
				submode = submodeLower
				values = append(values, 27) // LL
				continue
			case mixedCode[ch] != -1:
				submode = submodeMixed
				values = append(values, 28) // ML
				continue
			default:
				values = append(values, 29, punctCode[ch]) // PS
			}

		case submodeLower:
			switch {
			case ch == ' ':
				values = append(values, 26)
			case ch >= 'a' && ch <= 'z':
				values = append(values, int(ch-'a'))
			case ch >= 'A' && ch <= 'Z':
				values = append(values, 27, int(ch-'A')) // AS
			case mixedCode[ch] != -1:
				submode = submodeMixed
				values = append(values, 28) // ML
				continue
			default:
				values = append(values, 29, punctCode[ch]) // PS
			}

		case submodeMixed:
			switch {
			case mixedCode[ch] != -1:
				values = append(values, mixedCode[ch])
			case ch >= 'A' && ch <= 'Z' || ch == ' ':
				submode = submodeAlpha
				values = append(values, 28) // AL
				continue
			case ch >= 'a' && ch <= 'z':
				submode = submodeLower
				values = append(values, 27) // LL
				continue
			default:
				if idx+1 < count && punctCode[msg[startpos+idx+1]] != -1 {
					submode = submodePunct
					values = append(values, 25) // PL
					continue
				}
				values = append(values, 29, punctCode[ch]) // PS
			}

		default: // submodePunct
			if punctCode[ch] != -1 {
				values = append(values, punctCode[ch])
			} else {
				submode = submodeAlpha
				values = append(values, 29) // AL
				continue
			}
		}
		idx++
	}

	for i := 0; i+1 < len(values); i += 2 {
		out = append(out, values[i]*30+values[i+1])
	}
	if len(values)%2 != 0 {
		out = append(out, values[len(values)-1]*30+29)
	}
	return out, submode
}

// encodeBinary compacts data using byte compaction: six bytes become five
// base-900 codewords, a non-multiple-of-six tail is carried verbatim.
func encodeBinary(out []int, data []byte) []int {
	if len(data)%6 == 0 {
		out = append(out, latchToByte)
	} else {
		out = append(out, latchToBytePadded)
	}

	idx := 0
	for len(data)-idx >= 6 {
		var t uint64
		for i := 0; i < 6; i++ {
			t = t<<8 | uint64(data[idx+i])
		}
		var chunk [5]int
		for i := 4; i >= 0; i-- {
			chunk[i] = int(t % 900)
			t /= 900
		}
		out = append(out, chunk[:]...)
		idx += 6
	}
	for ; idx < len(data); idx++ {
		out = append(out, int(data[idx]))
	}
	return out
}

// encodeNumeric compacts a digit run: groups of up to 44 digits are
// prefixed with a 1 and converted to base 900.
func encodeNumeric(out []int, msg string, startpos, count int) []int {
	num900 := big.NewInt(900)
	zero := big.NewInt(0)
	mod := new(big.Int)

	idx := 0
	for idx < count {
		length := 44
		if count-idx < 44 {
			length = count - idx
		}
		value := new(big.Int)
		value.SetString("1"+msg[startpos+idx:startpos+idx+length], 10)

		var chunk []int
		for {
			value.DivMod(value, num900, mod)
			chunk = append(chunk, int(mod.Int64()))
			if value.Cmp(zero) == 0 {
				break
			}
		}
		for i := len(chunk) - 1; i >= 0; i-- {
			out = append(out, chunk[i])
		}
		idx += length
	}
	return out
}

// toLatin1 transcodes msg to ISO 8859-1. A payload that is not valid UTF-8
// is taken as raw Latin-1 bytes already.
func toLatin1(msg string) (string, error) {
	if !utf8.ValidString(msg) {
		return msg, nil
	}
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(msg))
	if err != nil {
		return "", fmt.Errorf("pdf417: payload not representable in ISO 8859-1: %w",
			symbology.ErrInvalidCharacter)
	}
	return string(out), nil
}

// textEncodable reports whether some text compaction sub-mode can encode ch.
func textEncodable(ch byte) bool {
	if ch > 127 {
		return false
	}
	if ch == ' ' || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
		return true
	}
	return mixedCode[ch] != -1 || punctCode[ch] != -1
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isText(ch byte) bool {
	return ch == '\t' || ch == '\n' || ch == '\r' || (ch >= 32 && ch <= 126)
}

// digitRun returns the length of the digit run starting at startpos.
func digitRun(msg string, startpos int) int {
	idx := startpos
	for idx < len(msg) && isDigit(msg[idx]) {
		idx++
	}
	return idx - startpos
}

// textRun returns the length of the run starting at startpos that text
// compaction should claim. A digit run of 13 or more ends it, since numeric
// compaction takes over there.
func textRun(msg string, startpos int) int {
	idx := startpos
	for idx < len(msg) {
		digits := 0
		for digits < 13 && idx < len(msg) && isDigit(msg[idx]) {
			digits++
			idx++
		}
		if digits >= 13 {
			return idx - startpos - digits
		}
		if digits > 0 {
			continue
		}
		if !isText(msg[idx]) {
			break
		}
		idx++
	}
	return idx - startpos
}

// binaryRun returns the length of the run starting at startpos that byte
// compaction should claim, ending before any 13-digit numeric run.
func binaryRun(msg string, startpos int) int {
	idx := startpos
	for idx < len(msg) {
		digits := 0
		for digits < 13 && idx+digits < len(msg) && isDigit(msg[idx+digits]) {
			digits++
		}
		if digits >= 13 {
			break
		}
		idx++
	}
	return idx - startpos
}
