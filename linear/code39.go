package linear

import (
	"fmt"
	"strings"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/checksum"
)

// Code39Alphabet is the 43-character Code 39 set, in check value order.
const Code39Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// code39CharacterEncodings holds the 9-element wide/narrow pattern for each
// alphabet character as a bit mask (1 = wide).
var code39CharacterEncodings = [43]int{
	0x034, 0x121, 0x061, 0x160, 0x031, 0x130, 0x070, 0x025, 0x124, 0x064, // 0-9
	0x109, 0x049, 0x148, 0x019, 0x118, 0x058, 0x00D, 0x10C, 0x04C, 0x01C, // A-J
	0x103, 0x043, 0x142, 0x013, 0x112, 0x052, 0x007, 0x106, 0x046, 0x016, // K-T
	0x181, 0x0C1, 0x1C0, 0x091, 0x190, 0x0D0, 0x085, 0x184, 0x0C4, 0x0A8, // U-$
	0x0A2, 0x08A, 0x02A, // /-%
}

const code39AsteriskEncoding = 0x094

// Code39Encoder encodes Code 39 barcodes. Characters outside the base
// alphabet are escaped with extended mode sequences. The "check_digit"
// option appends the optional modulo-43 check character.
type Code39Encoder struct{}

// NewCode39Encoder creates a new Code 39 encoder.
func NewCode39Encoder() *Code39Encoder {
	return &Code39Encoder{}
}

// Encode encodes contents between asterisk start/stop characters.
func (e *Code39Encoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check("check_digit"); err != nil {
		return nil, err
	}
	if err := checkNotEmpty(symbology.Code39, contents); err != nil {
		return nil, err
	}

	length := len(contents)
	if length > 80 {
		return nil, fmt.Errorf("%s: payload must be at most 80 characters, got %d: %w",
			symbology.Code39, length, symbology.ErrInvalidLength)
	}

	needsExtended := false
	for i := 0; i < length; i++ {
		if strings.IndexByte(Code39Alphabet, contents[i]) < 0 {
			needsExtended = true
			break
		}
	}

	encodable := contents
	if needsExtended {
		var err error
		encodable, err = code39ConvertToExtended(contents)
		if err != nil {
			return nil, err
		}
		if len(encodable) > 80 {
			return nil, fmt.Errorf("%s: payload is %d characters after extended conversion, at most 80 allowed: %w",
				symbology.Code39, len(encodable), symbology.ErrInvalidLength)
		}
	}

	content := contents
	if opts.Get("check_digit", "false") == "true" {
		values := make([]int, len(encodable))
		for i := 0; i < len(encodable); i++ {
			values[i] = strings.IndexByte(Code39Alphabet, encodable[i])
		}
		check := checksum.WeightedMod(values, 1, 43)
		encodable += string(Code39Alphabet[check])
		content += string(Code39Alphabet[check])
	}

	widths := make([]int, 9)
	codeWidth := 24 + 1 + (13 * len(encodable))
	result := make([]bool, codeWidth)
	code39ToIntArray(code39AsteriskEncoding, widths)
	pos := appendPattern(result, 0, widths, true)
	narrowWhite := []int{1}
	pos += appendPattern(result, pos, narrowWhite, false)

	for i := 0; i < len(encodable); i++ {
		idx := strings.IndexByte(Code39Alphabet, encodable[i])
		code39ToIntArray(code39CharacterEncodings[idx], widths)
		pos += appendPattern(result, pos, widths, true)
		pos += appendPattern(result, pos, narrowWhite, false)
	}
	code39ToIntArray(code39AsteriskEncoding, widths)
	appendPattern(result, pos, widths, true)

	return symbology.NewLinearSymbol(symbology.Code39, content, result, quietZone), nil
}

// code39ToIntArray expands a 9-bit wide/narrow mask to element widths.
func code39ToIntArray(a int, toReturn []int) {
	for i := 0; i < 9; i++ {
		if a&(1<<uint(8-i)) != 0 {
			toReturn[i] = 2
		} else {
			toReturn[i] = 1
		}
	}
}

// code39ConvertToExtended escapes full-ASCII input into the base alphabet.
func code39ConvertToExtended(contents string) (string, error) {
	var ext strings.Builder
	for i := 0; i < len(contents); i++ {
		c := contents[i]
		switch {
		case c == 0:
			ext.WriteString("%U")
		case c == ' ' || c == '-' || c == '.':
			ext.WriteByte(c)
		case c == '@':
			ext.WriteString("%V")
		case c == '`':
			ext.WriteString("%W")
		case c <= 26:
			ext.WriteByte('$')
			ext.WriteByte('A' + c - 1)
		case c < ' ':
			ext.WriteByte('%')
			ext.WriteByte('A' + c - 27)
		case c <= ',' || c == '/' || c == ':':
			ext.WriteByte('/')
			ext.WriteByte('A' + c - 33)
		case c <= '9':
			ext.WriteByte('0' + c - 48)
		case c <= '?':
			ext.WriteByte('%')
			ext.WriteByte('F' + c - 59)
		case c <= 'Z':
			ext.WriteByte('A' + c - 65)
		case c <= '_':
			ext.WriteByte('%')
			ext.WriteByte('K' + c - 91)
		case c <= 'z':
			ext.WriteByte('+')
			ext.WriteByte('A' + c - 97)
		case c <= 127:
			ext.WriteByte('%')
			ext.WriteByte('P' + c - 123)
		default:
			return "", fmt.Errorf("%s: character %q at position %d not encodable: %w",
				symbology.Code39, c, i, symbology.ErrInvalidCharacter)
		}
	}
	return ext.String(), nil
}
