package qr

import (
	"math"

	"github.com/glyphworks/symbology/bitutil"
)

const numMaskPatterns = 8

// dataMasks contains the 8 QR code data mask predicates, indexed by mask
// pattern reference. Arguments are (row, column).
var dataMasks = [numMaskPatterns]func(i, j int) bool{
	func(i, j int) bool { return (i+j)&0x01 == 0 },
	func(i, j int) bool { return i&0x01 == 0 },
	func(i, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return ((i/2)+(j/3))&0x01 == 0 },
	func(i, j int) bool { return (i*j)%6 == 0 },
	func(i, j int) bool { return ((i * j) % 6) < 3 },
	func(i, j int) bool { return ((i + j + ((i * j) % 3)) & 0x01) == 0 },
}

// chooseMaskPattern builds the matrix under each mask and picks the one
// with the lowest penalty score.
func chooseMaskPattern(bits *bitutil.BitArray, level ECLevel, ver *version, matrix *byteMatrix) int {
	minPenalty := math.MaxInt32
	bestPattern := 0
	for i := 0; i < numMaskPatterns; i++ {
		buildMatrix(bits, level, ver, i, matrix)
		penalty := calculateMaskPenalty(matrix)
		if penalty < minPenalty {
			minPenalty = penalty
			bestPattern = i
		}
	}
	return bestPattern
}

func calculateMaskPenalty(matrix *byteMatrix) int {
	return applyMaskPenaltyRule1(matrix) +
		applyMaskPenaltyRule2(matrix) +
		applyMaskPenaltyRule3(matrix) +
		applyMaskPenaltyRule4(matrix)
}

// Rule 1: runs of 5 or more same-colored modules in a row or column.
func applyMaskPenaltyRule1(matrix *byteMatrix) int {
	return applyMaskPenaltyRule1Internal(matrix, true) + applyMaskPenaltyRule1Internal(matrix, false)
}

func applyMaskPenaltyRule1Internal(matrix *byteMatrix, isHorizontal bool) int {
	penalty := 0
	iLimit := matrix.height
	jLimit := matrix.width
	if !isHorizontal {
		iLimit = matrix.width
		jLimit = matrix.height
	}
	for i := 0; i < iLimit; i++ {
		numSameBitCells := 0
		prevBit := byte(255)
		for j := 0; j < jLimit; j++ {
			var bit byte
			if isHorizontal {
				bit = matrix.get(j, i)
			} else {
				bit = matrix.get(i, j)
			}
			if bit == prevBit {
				numSameBitCells++
			} else {
				if numSameBitCells >= 5 {
					penalty += 3 + (numSameBitCells - 5)
				}
				numSameBitCells = 1
				prevBit = bit
			}
		}
		if numSameBitCells >= 5 {
			penalty += 3 + (numSameBitCells - 5)
		}
	}
	return penalty
}

// Rule 2: 2x2 blocks of same-colored modules.
func applyMaskPenaltyRule2(matrix *byteMatrix) int {
	penalty := 0
	for y := 0; y < matrix.height-1; y++ {
		for x := 0; x < matrix.width-1; x++ {
			value := matrix.get(x, y)
			if value == matrix.get(x+1, y) && value == matrix.get(x, y+1) && value == matrix.get(x+1, y+1) {
				penalty += 3
			}
		}
	}
	return penalty
}

// Rule 3: patterns that look like finder patterns, with 4 light modules on
// either side.
func applyMaskPenaltyRule3(matrix *byteMatrix) int {
	penalty := 0
	for y := 0; y < matrix.height; y++ {
		for x := 0; x < matrix.width; x++ {
			if x+6 < matrix.width {
				if matrix.get(x, y) == 1 && matrix.get(x+1, y) == 0 &&
					matrix.get(x+2, y) == 1 && matrix.get(x+3, y) == 1 &&
					matrix.get(x+4, y) == 1 && matrix.get(x+5, y) == 0 &&
					matrix.get(x+6, y) == 1 {
					leadingWhite := x+10 < matrix.width && matrix.get(x+7, y) == 0 && matrix.get(x+8, y) == 0 &&
						matrix.get(x+9, y) == 0 && matrix.get(x+10, y) == 0
					trailingWhite := x >= 4 && matrix.get(x-1, y) == 0 && matrix.get(x-2, y) == 0 &&
						matrix.get(x-3, y) == 0 && matrix.get(x-4, y) == 0
					if leadingWhite || trailingWhite {
						penalty += 40
					}
				}
			}
			if y+6 < matrix.height {
				if matrix.get(x, y) == 1 && matrix.get(x, y+1) == 0 &&
					matrix.get(x, y+2) == 1 && matrix.get(x, y+3) == 1 &&
					matrix.get(x, y+4) == 1 && matrix.get(x, y+5) == 0 &&
					matrix.get(x, y+6) == 1 {
					leadingWhite := y+10 < matrix.height && matrix.get(x, y+7) == 0 && matrix.get(x, y+8) == 0 &&
						matrix.get(x, y+9) == 0 && matrix.get(x, y+10) == 0
					trailingWhite := y >= 4 && matrix.get(x, y-1) == 0 && matrix.get(x, y-2) == 0 &&
						matrix.get(x, y-3) == 0 && matrix.get(x, y-4) == 0
					if leadingWhite || trailingWhite {
						penalty += 40
					}
				}
			}
		}
	}
	return penalty
}

// Rule 4: deviation of the dark module ratio from 50%.
func applyMaskPenaltyRule4(matrix *byteMatrix) int {
	numDarkCells := 0
	total := matrix.height * matrix.width
	for y := 0; y < matrix.height; y++ {
		for x := 0; x < matrix.width; x++ {
			if matrix.get(x, y) == 1 {
				numDarkCells++
			}
		}
	}
	fivePercentVariances := abs(numDarkCells*2-total) * 10 / total
	return fivePercentVariances * 10
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
