package linear

import "github.com/glyphworks/symbology"

const ean13CodeWidth = 3 + (7 * 6) + 5 + (7 * 6) + 3 // = 95

// ean13FirstDigitEncodings selects the parity pattern for the six left-hand
// digits based on the first digit. Odd (L) = 0, even (G) = 1.
var ean13FirstDigitEncodings = [10]int{
	0x00, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A,
}

// EAN13Encoder encodes EAN-13 barcodes from 12 data digits.
type EAN13Encoder struct{}

// NewEAN13Encoder creates a new EAN-13 encoder.
func NewEAN13Encoder() *EAN13Encoder {
	return &EAN13Encoder{}
}

// Encode encodes 12 data digits, appending the modulo-10 check digit.
func (e *EAN13Encoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check(); err != nil {
		return nil, err
	}
	full, err := appendCheckDigit(symbology.EAN13, contents, 12)
	if err != nil {
		return nil, err
	}
	return symbology.NewLinearSymbol(symbology.EAN13, full, ean13Modules(full), quietZone), nil
}

// ean13Modules lays out a full 13-digit code as a 95-module pattern.
func ean13Modules(full string) []bool {
	firstDigit := int(full[0] - '0')
	parities := ean13FirstDigitEncodings[firstDigit]
	result := make([]bool, ean13CodeWidth)
	pos := 0

	pos += appendPattern(result, pos, upceanStartEndPattern, true)

	for i := 1; i <= 6; i++ {
		digit := int(full[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += appendPattern(result, pos, lAndGPatterns[digit], false)
	}

	pos += appendPattern(result, pos, upceanMiddlePattern, false)

	for i := 7; i <= 12; i++ {
		digit := int(full[i] - '0')
		pos += appendPattern(result, pos, lPatterns[digit], true)
	}

	appendPattern(result, pos, upceanStartEndPattern, true)
	return result
}
