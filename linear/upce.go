package linear

import (
	"fmt"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/checksum"
)

const upceCodeWidth = 3 + (7 * 6) + 6 // = 51

// upceNumSysAndCheckDigitPatterns selects the six-digit parity pattern from
// the number system digit and the check digit.
var upceNumSysAndCheckDigitPatterns = [2][10]int{
	{0x38, 0x34, 0x32, 0x31, 0x2C, 0x26, 0x23, 0x2A, 0x29, 0x25},
	{0x07, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A},
}

// UPCEEncoder encodes UPC-E barcodes from 7 data digits (number system plus
// six compressed digits). The check digit is computed over the expanded
// UPC-A form.
type UPCEEncoder struct{}

// NewUPCEEncoder creates a new UPC-E encoder.
func NewUPCEEncoder() *UPCEEncoder {
	return &UPCEEncoder{}
}

// Encode encodes 7 data digits, appending the modulo-10 check digit.
func (e *UPCEEncoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check(); err != nil {
		return nil, err
	}
	if err := checkNotEmpty(symbology.UPCE, contents); err != nil {
		return nil, err
	}
	if len(contents) != 7 {
		return nil, fmt.Errorf("%s: payload must be exactly 7 digits, got %d: %w",
			symbology.UPCE, len(contents), symbology.ErrInvalidLength)
	}
	if err := checkNumeric(symbology.UPCE, contents); err != nil {
		return nil, err
	}

	firstDigit := int(contents[0] - '0')
	if firstDigit != 0 && firstDigit != 1 {
		return nil, fmt.Errorf("%s: number system must be 0 or 1: %w",
			symbology.UPCE, symbology.ErrInvalidCharacter)
	}

	check, err := checksum.Mod10(ConvertUPCEtoUPCA(contents))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbology.UPCE, symbology.ErrInvalidCharacter)
	}
	full := contents + string(rune('0'+check))

	parities := upceNumSysAndCheckDigitPatterns[firstDigit][check]

	result := make([]bool, upceCodeWidth)
	pos := appendPattern(result, 0, upceanStartEndPattern, true)

	for i := 1; i <= 6; i++ {
		digit := int(full[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += appendPattern(result, pos, lAndGPatterns[digit], false)
	}

	appendPattern(result, pos, upceanEndPattern, false)
	return symbology.NewLinearSymbol(symbology.UPCE, full, result, quietZone), nil
}
