package linear

import (
	"fmt"
	"strings"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/checksum"
)

// Code93Alphabet is the 47-character Code 93 set in check value order,
// followed by the four shift characters and the asterisk.
const Code93Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%abcd*"

// code93CharacterEncodings holds the 9-module pattern for each alphabet
// character as a bit mask (1 = dark module).
var code93CharacterEncodings = [48]int{
	0x114, 0x148, 0x144, 0x142, 0x128, 0x124, 0x122, 0x150, 0x112, 0x10A, // 0-9
	0x1A8, 0x1A4, 0x1A2, 0x194, 0x192, 0x18A, 0x168, 0x164, 0x162, 0x134, // A-J
	0x11A, 0x158, 0x14C, 0x146, 0x12C, 0x116, 0x1B4, 0x1B2, 0x1AC, 0x1A6, // K-T
	0x196, 0x19A, 0x16C, 0x166, 0x136, 0x13A, // U-Z
	0x12E, 0x1D4, 0x1D2, 0x1CA, 0x16E, 0x176, 0x1AE, // - . space $ / + %
	0x126, 0x1DA, 0x1D6, 0x132, 0x15E, // a b c d *
}

var code93AsteriskEncoding = code93CharacterEncodings[47]

// Code93Encoder encodes Code 93 barcodes with the mandatory C and K check
// characters. Characters outside the base alphabet are escaped with shift
// sequences.
type Code93Encoder struct{}

// NewCode93Encoder creates a new Code 93 encoder.
func NewCode93Encoder() *Code93Encoder {
	return &Code93Encoder{}
}

// Encode encodes contents between asterisk start/stop characters.
func (e *Code93Encoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check(); err != nil {
		return nil, err
	}
	if err := checkNotEmpty(symbology.Code93, contents); err != nil {
		return nil, err
	}

	encodable, err := code93ConvertToExtended(contents)
	if err != nil {
		return nil, err
	}
	length := len(encodable)
	if length > 80 {
		return nil, fmt.Errorf("%s: payload is %d characters after extended conversion, at most 80 allowed: %w",
			symbology.Code93, length, symbology.ErrInvalidLength)
	}

	// data + 2 start/stop characters + 2 check characters, 9 modules each,
	// plus the termination bar
	codeWidth := (length+2+2)*9 + 1
	result := make([]bool, codeWidth)

	pos := code93AppendPattern(result, 0, code93AsteriskEncoding)

	for i := 0; i < length; i++ {
		idx := strings.IndexByte(Code93Alphabet, encodable[i])
		pos += code93AppendPattern(result, pos, code93CharacterEncodings[idx])
	}

	check1 := code93CheckIndex(encodable, 20)
	pos += code93AppendPattern(result, pos, code93CharacterEncodings[check1])

	encodable += string(Code93Alphabet[check1])

	check2 := code93CheckIndex(encodable, 15)
	pos += code93AppendPattern(result, pos, code93CharacterEncodings[check2])

	pos += code93AppendPattern(result, pos, code93AsteriskEncoding)

	// termination bar
	result[pos] = true

	return symbology.NewLinearSymbol(symbology.Code93, contents, result, quietZone), nil
}

func code93AppendPattern(target []bool, pos int, a int) int {
	for i := 0; i < 9; i++ {
		if a&(1<<uint(8-i)) != 0 {
			target[pos+i] = true
		}
	}
	return 9
}

func code93CheckIndex(contents string, maxWeight int) int {
	values := make([]int, len(contents))
	for i := 0; i < len(contents); i++ {
		values[i] = strings.IndexByte(Code93Alphabet, contents[i])
	}
	return checksum.WeightedMod(values, maxWeight, 47)
}

// code93ConvertToExtended escapes full-ASCII input into the base alphabet.
func code93ConvertToExtended(contents string) (string, error) {
	length := len(contents)
	var ext strings.Builder
	ext.Grow(length * 2)
	for i := 0; i < length; i++ {
		c := contents[i]
		switch {
		case c == 0:
			ext.WriteString("bU")
		case c <= 26:
			ext.WriteByte('a')
			ext.WriteByte('A' + c - 1)
		case c <= 31:
			ext.WriteByte('b')
			ext.WriteByte('A' + c - 27)
		case c == ' ' || c == '$' || c == '%' || c == '+':
			ext.WriteByte(c)
		case c <= ',':
			ext.WriteByte('c')
			ext.WriteByte('A' + c - '!')
		case c <= '9':
			ext.WriteByte(c)
		case c == ':':
			ext.WriteString("cZ")
		case c <= '?':
			ext.WriteByte('b')
			ext.WriteByte('F' + c - ';')
		case c == '@':
			ext.WriteString("bV")
		case c <= 'Z':
			ext.WriteByte(c)
		case c <= '_':
			ext.WriteByte('b')
			ext.WriteByte('K' + c - '[')
		case c == '`':
			ext.WriteString("bW")
		case c <= 'z':
			ext.WriteByte('d')
			ext.WriteByte('A' + c - 'a')
		case c <= 127:
			ext.WriteByte('b')
			ext.WriteByte('P' + c - '{')
		default:
			return "", fmt.Errorf("%s: character %q at position %d not encodable: %w",
				symbology.Code93, c, i, symbology.ErrInvalidCharacter)
		}
	}
	return ext.String(), nil
}
