// Package checksum implements the check character algorithms shared by the
// symbology encoders: the GS1 modulo-10 digit, weighted modular sums, and
// Reed-Solomon error correction over the fields the matrix symbologies use.
package checksum

import "fmt"

// Mod10 computes the GS1 modulo-10 check digit for a digit string, weighting
// positions 3, 1, 3, ... from the rightmost digit. EAN, UPC, and ITF all use
// this rule.
func Mod10(digits string) (int, error) {
	sum := 0
	for i := len(digits) - 1; i >= 0; i -= 2 {
		digit := int(digits[i] - '0')
		if digit < 0 || digit > 9 {
			return 0, fmt.Errorf("checksum: non-digit %q", digits[i])
		}
		sum += digit
	}
	sum *= 3
	for i := len(digits) - 2; i >= 0; i -= 2 {
		digit := int(digits[i] - '0')
		if digit < 0 || digit > 9 {
			return 0, fmt.Errorf("checksum: non-digit %q", digits[i])
		}
		sum += digit
	}
	return (10 - sum%10) % 10, nil
}

// WeightedMod computes a weighted modular check value over character values.
// Weights run 1, 2, ..., maxWeight and repeat, applied from the rightmost
// value. Code 39's modulo-43 check uses maxWeight 1; Code 93's C and K
// checks use 20 and 15 over modulus 47.
func WeightedMod(values []int, maxWeight, modulus int) int {
	sum := 0
	weight := 1
	for i := len(values) - 1; i >= 0; i-- {
		sum += values[i] * weight
		weight++
		if weight > maxWeight {
			weight = 1
		}
	}
	return sum % modulus
}
