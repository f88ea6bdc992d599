package linear

import (
	"fmt"
	"strings"

	"github.com/glyphworks/symbology"
)

// CodabarAlphabet is the Codabar character set: digits, six symbols, and
// the four start/stop guards.
const CodabarAlphabet = "0123456789-$:/.+ABCD"

// codabarCharacterEncodings holds the widths of the 7 elements (4 bars, 3
// spaces) of each character.
var codabarCharacterEncodings = [20][7]int{
	{1, 1, 1, 1, 1, 2, 2}, // 0
	{1, 1, 1, 1, 2, 2, 1}, // 1
	{1, 1, 1, 2, 1, 1, 2}, // 2
	{2, 2, 1, 1, 1, 1, 1}, // 3
	{1, 1, 2, 1, 1, 2, 1}, // 4
	{2, 1, 1, 1, 1, 2, 1}, // 5
	{1, 2, 1, 1, 1, 1, 2}, // 6
	{1, 2, 1, 1, 2, 1, 1}, // 7
	{1, 2, 2, 1, 1, 1, 1}, // 8
	{2, 1, 1, 2, 1, 1, 1}, // 9
	{1, 1, 1, 2, 2, 1, 1}, // -
	{1, 1, 2, 2, 1, 1, 1}, // $
	{2, 1, 1, 1, 2, 1, 2}, // :
	{2, 1, 2, 1, 1, 1, 2}, // /
	{2, 1, 2, 1, 2, 1, 1}, // .
	{1, 1, 2, 1, 2, 1, 2}, // +
	{1, 1, 2, 2, 1, 2, 1}, // A
	{1, 2, 1, 2, 1, 1, 2}, // B
	{1, 1, 1, 2, 1, 2, 2}, // C
	{1, 1, 1, 2, 2, 2, 1}, // D
}

// CodabarEncoder encodes Codabar barcodes. Payloads may carry their own
// A-D start/stop guards (or the alternate T/N/*/E forms); otherwise A
// guards are added.
type CodabarEncoder struct{}

// NewCodabarEncoder creates a new Codabar encoder.
func NewCodabarEncoder() *CodabarEncoder {
	return &CodabarEncoder{}
}

// Encode encodes contents between start/stop guard characters.
func (e *CodabarEncoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check(); err != nil {
		return nil, err
	}
	if err := checkNotEmpty(symbology.Codabar, contents); err != nil {
		return nil, err
	}

	guarded, err := codabarAddGuards(contents)
	if err != nil {
		return nil, err
	}

	// one narrow space between characters
	totalWidth := len(guarded) - 1
	for i := 0; i < len(guarded); i++ {
		idx := strings.IndexByte(CodabarAlphabet, guarded[i])
		if idx < 0 {
			return nil, fmt.Errorf("%s: character %q at position %d not encodable: %w",
				symbology.Codabar, guarded[i], i, symbology.ErrInvalidCharacter)
		}
		inner := i > 0 && i < len(guarded)-1
		if inner && idx >= 16 {
			return nil, fmt.Errorf("%s: guard character %q inside payload: %w",
				symbology.Codabar, guarded[i], symbology.ErrInvalidCharacter)
		}
		for _, w := range codabarCharacterEncodings[idx] {
			totalWidth += w
		}
	}

	result := make([]bool, totalWidth)
	pos := 0
	for i := 0; i < len(guarded); i++ {
		idx := strings.IndexByte(CodabarAlphabet, guarded[i])
		widths := codabarCharacterEncodings[idx]
		pos += appendPattern(result, pos, widths[:], true)
		if i < len(guarded)-1 {
			pos++ // inter-character space
		}
	}

	return symbology.NewLinearSymbol(symbology.Codabar, guarded, result, quietZone), nil
}

// codabarAddGuards normalizes the start/stop guards, adding default A
// guards when the payload carries none.
func codabarAddGuards(contents string) (string, error) {
	mapGuard := func(c byte) byte {
		switch c {
		case 'T', 't':
			return 'A'
		case 'N', 'n':
			return 'B'
		case '*':
			return 'C'
		case 'E', 'e':
			return 'D'
		case 'a', 'b', 'c', 'd':
			return c - 'a' + 'A'
		default:
			return c
		}
	}
	isGuard := func(c byte) bool {
		return c >= 'A' && c <= 'D'
	}

	if len(contents) < 2 {
		return "A" + contents + "A", nil
	}
	first := mapGuard(contents[0])
	last := mapGuard(contents[len(contents)-1])
	switch {
	case isGuard(first) && isGuard(last):
		return string(first) + contents[1:len(contents)-1] + string(last), nil
	case isGuard(first) != isGuard(last):
		return "", fmt.Errorf("%s: start and stop guards must both be present or both absent: %w",
			symbology.Codabar, symbology.ErrInvalidCharacter)
	default:
		return "A" + contents + "A", nil
	}
}
