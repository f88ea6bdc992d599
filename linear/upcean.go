package linear

import (
	"fmt"
	"strings"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/checksum"
)

// UPC/EAN guard patterns.
var (
	upceanStartEndPattern = []int{1, 1, 1}
	upceanMiddlePattern   = []int{1, 1, 1, 1, 1}
	upceanEndPattern      = []int{1, 1, 1, 1, 1, 1}
)

// lPatterns contains the "odd" or "L" patterns for UPC/EAN digits.
var lPatterns = [10][]int{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
}

// lAndGPatterns includes both the L and G patterns.
// Indices 0-9 are L patterns, 10-19 are G patterns (reversed L patterns).
var lAndGPatterns [20][]int

func init() {
	for i := 0; i < 10; i++ {
		lAndGPatterns[i] = lPatterns[i]
	}
	for i := 10; i < 20; i++ {
		widths := lPatterns[i-10]
		reversed := make([]int, len(widths))
		for j := 0; j < len(widths); j++ {
			reversed[j] = widths[len(widths)-j-1]
		}
		lAndGPatterns[i] = reversed
	}
}

// appendCheckDigit validates the digits and length of a UPC/EAN body and
// appends the modulo-10 check digit.
func appendCheckDigit(id symbology.SymbologyID, contents string, dataLength int) (string, error) {
	if err := checkNotEmpty(id, contents); err != nil {
		return "", err
	}
	if len(contents) != dataLength {
		return "", fmt.Errorf("%s: payload must be exactly %d digits, got %d: %w",
			id, dataLength, len(contents), symbology.ErrInvalidLength)
	}
	if err := checkNumeric(id, contents); err != nil {
		return "", err
	}
	check, err := checksum.Mod10(contents)
	if err != nil {
		return "", fmt.Errorf("%s: %w", id, symbology.ErrInvalidCharacter)
	}
	return contents + string(rune('0'+check)), nil
}

// ConvertUPCEtoUPCA expands a UPC-E value into its full UPC-A equivalent.
// The check digit applies to the expanded form.
func ConvertUPCEtoUPCA(upce string) string {
	if len(upce) < 7 {
		return upce
	}
	upceChars := upce[1:7]
	var result strings.Builder
	result.WriteByte(upce[0])

	lastChar := upceChars[5]
	switch lastChar {
	case '0', '1', '2':
		result.WriteString(upceChars[0:2])
		result.WriteByte(lastChar)
		result.WriteString("0000")
		result.WriteString(upceChars[2:5])
	case '3':
		result.WriteString(upceChars[0:3])
		result.WriteString("00000")
		result.WriteString(upceChars[3:5])
	case '4':
		result.WriteString(upceChars[0:4])
		result.WriteString("00000")
		result.WriteByte(upceChars[4])
	default:
		result.WriteString(upceChars[0:5])
		result.WriteString("0000")
		result.WriteByte(lastChar)
	}
	if len(upce) >= 8 {
		result.WriteByte(upce[7])
	}
	return result.String()
}
