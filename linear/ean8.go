package linear

import "github.com/glyphworks/symbology"

const ean8CodeWidth = 3 + (7 * 4) + 5 + (7 * 4) + 3 // = 67

// EAN8Encoder encodes EAN-8 barcodes from 7 data digits.
type EAN8Encoder struct{}

// NewEAN8Encoder creates a new EAN-8 encoder.
func NewEAN8Encoder() *EAN8Encoder {
	return &EAN8Encoder{}
}

// Encode encodes 7 data digits, appending the modulo-10 check digit.
func (e *EAN8Encoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check(); err != nil {
		return nil, err
	}
	full, err := appendCheckDigit(symbology.EAN8, contents, 7)
	if err != nil {
		return nil, err
	}

	result := make([]bool, ean8CodeWidth)
	pos := 0

	pos += appendPattern(result, pos, upceanStartEndPattern, true)

	for i := 0; i <= 3; i++ {
		digit := int(full[i] - '0')
		pos += appendPattern(result, pos, lPatterns[digit], false)
	}

	pos += appendPattern(result, pos, upceanMiddlePattern, false)

	for i := 4; i <= 7; i++ {
		digit := int(full[i] - '0')
		pos += appendPattern(result, pos, lPatterns[digit], true)
	}

	appendPattern(result, pos, upceanStartEndPattern, true)
	return symbology.NewLinearSymbol(symbology.EAN8, full, result, quietZone), nil
}
