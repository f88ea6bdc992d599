package qr

import (
	"fmt"

	"github.com/glyphworks/symbology"
)

// ECLevel is one of the four QR code error correction levels.
type ECLevel int

const (
	ECLevelL ECLevel = iota // ~7% recovery
	ECLevelM                // ~15% recovery
	ECLevelQ                // ~25% recovery
	ECLevelH                // ~30% recovery
)

// Bits returns the 2-bit format information encoding of this level.
func (ecl ECLevel) Bits() int {
	switch ecl {
	case ECLevelL:
		return 0x01
	case ECLevelM:
		return 0x00
	case ECLevelQ:
		return 0x03
	case ECLevelH:
		return 0x02
	}
	return 0
}

// Ordinal returns the table index of this level (L=0, M=1, Q=2, H=3).
func (ecl ECLevel) Ordinal() int {
	return int(ecl)
}

// String returns the level name.
func (ecl ECLevel) String() string {
	switch ecl {
	case ECLevelL:
		return "L"
	case ECLevelM:
		return "M"
	case ECLevelQ:
		return "Q"
	case ECLevelH:
		return "H"
	}
	return "?"
}

// ParseECLevel resolves an error correction level name.
func ParseECLevel(name string) (ECLevel, error) {
	switch name {
	case "L", "l":
		return ECLevelL, nil
	case "M", "m":
		return ECLevelM, nil
	case "Q", "q":
		return ECLevelQ, nil
	case "H", "h":
		return ECLevelH, nil
	}
	return 0, fmt.Errorf("%s: ec_level must be L, M, Q, or H, got %q: %w",
		symbology.QR, name, symbology.ErrUnsupportedOption)
}
