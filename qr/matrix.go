package qr

import (
	"strings"

	"github.com/glyphworks/symbology/bitutil"
)

// byteMatrix is a module grid under construction. 0xFF marks a cell not yet
// assigned.
type byteMatrix struct {
	data          [][]byte
	width, height int
}

func newByteMatrix(width, height int) *byteMatrix {
	data := make([][]byte, height)
	for i := range data {
		data[i] = make([]byte, width)
	}
	return &byteMatrix{data: data, width: width, height: height}
}

func (bm *byteMatrix) get(x, y int) byte { return bm.data[y][x] }

func (bm *byteMatrix) set(x, y int, value byte) { bm.data[y][x] = value }

func (bm *byteMatrix) clear(value byte) {
	for y := range bm.data {
		for x := range bm.data[y] {
			bm.data[y][x] = value
		}
	}
}

func (bm *byteMatrix) toBitMatrix() *bitutil.BitMatrix {
	out := bitutil.NewBitMatrixWithSize(bm.width, bm.height)
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.data[y][x] == 1 {
				out.Set(x, y)
			}
		}
	}
	return out
}

func (bm *byteMatrix) String() string {
	var sb strings.Builder
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.data[y][x] == 1 {
				sb.WriteString("##")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Finder pattern placed in three corners.
var positionDetectionPattern = [7][7]byte{
	{1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1},
}

// Alignment pattern placed at the version's center coordinates.
var positionAdjustmentPattern = [5][5]byte{
	{1, 1, 1, 1, 1},
	{1, 0, 0, 0, 1},
	{1, 0, 1, 0, 1},
	{1, 0, 0, 0, 1},
	{1, 1, 1, 1, 1},
}

const (
	typeInfoPoly        = 0x537
	typeInfoMaskPattern = 0x5412
	versionInfoPoly     = 0x1f25
)

// buildMatrix places the function patterns, format and version information,
// and masked data bits into the matrix.
func buildMatrix(dataBits *bitutil.BitArray, level ECLevel, ver *version, maskPattern int, matrix *byteMatrix) {
	matrix.clear(0xFF)

	embedBasicPatterns(ver, matrix)
	embedTypeInfo(level, maskPattern, matrix)
	maybeEmbedVersionInfo(ver, matrix)
	embedDataBits(dataBits, maskPattern, matrix)
}

func embedBasicPatterns(ver *version, matrix *byteMatrix) {
	embedPositionDetectionPattern(0, 0, matrix)
	embedPositionDetectionPattern(matrix.width-7, 0, matrix)
	embedPositionDetectionPattern(0, matrix.height-7, matrix)

	embedHorizontalSeparator(0, 7, matrix)
	embedHorizontalSeparator(matrix.width-8, 7, matrix)
	embedHorizontalSeparator(0, matrix.height-8, matrix)

	embedVerticalSeparator(7, 0, matrix)
	embedVerticalSeparator(matrix.width-8, 0, matrix)
	embedVerticalSeparator(7, matrix.height-7, matrix)

	if ver.Number >= 2 {
		embedPositionAdjustmentPatterns(ver, matrix)
	}

	embedTimingPatterns(matrix)

	// dark module
	matrix.set(8, matrix.height-8, 1)
}

func embedPositionDetectionPattern(xStart, yStart int, matrix *byteMatrix) {
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			matrix.set(xStart+x, yStart+y, positionDetectionPattern[y][x])
		}
	}
}

func embedHorizontalSeparator(xStart, yStart int, matrix *byteMatrix) {
	for x := 0; x < 8; x++ {
		if xStart+x < matrix.width {
			matrix.set(xStart+x, yStart, 0)
		}
	}
}

func embedVerticalSeparator(xStart, yStart int, matrix *byteMatrix) {
	for y := 0; y < 7; y++ {
		if yStart+y < matrix.height {
			matrix.set(xStart, yStart+y, 0)
		}
	}
}

func embedPositionAdjustmentPatterns(ver *version, matrix *byteMatrix) {
	centers := ver.AlignmentPatternCenters
	for _, cy := range centers {
		for _, cx := range centers {
			// skip centers that fall on a finder pattern
			if matrix.get(cx, cy) != 0xFF {
				continue
			}
			for y := 0; y < 5; y++ {
				for x := 0; x < 5; x++ {
					matrix.set(cx-2+x, cy-2+y, positionAdjustmentPattern[y][x])
				}
			}
		}
	}
}

func embedTimingPatterns(matrix *byteMatrix) {
	for i := 8; i < matrix.width-8; i++ {
		bit := byte((i + 1) % 2)
		if matrix.get(i, 6) == 0xFF {
			matrix.set(i, 6, bit)
		}
		if matrix.get(6, i) == 0xFF {
			matrix.set(6, i, bit)
		}
	}
}

func embedTypeInfo(level ECLevel, maskPattern int, matrix *byteMatrix) {
	typeInfo := (level.Bits() << 3) | maskPattern
	bchCode := calculateBCHCode(typeInfo, typeInfoPoly)
	typeInfoBits := (typeInfo << 10) | bchCode
	typeInfoBits ^= typeInfoMaskPattern

	typeInfoCoordinates := [15][2]int{
		{8, 0}, {8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 7}, {8, 8},
		{7, 8}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8}, {0, 8},
	}

	for i := 0; i < 15; i++ {
		bit := byte((typeInfoBits >> uint(i)) & 1)
		coord := typeInfoCoordinates[i]
		matrix.set(coord[0], coord[1], bit)

		// second copy along the right and bottom edges
		if i < 8 {
			matrix.set(matrix.width-1-i, 8, bit)
		} else {
			matrix.set(8, matrix.height-7+(i-8), bit)
		}
	}
}

func maybeEmbedVersionInfo(ver *version, matrix *byteMatrix) {
	if ver.Number < 7 {
		return
	}
	versionInfoBits := calculateBCHCode(ver.Number, versionInfoPoly)
	versionInfoBits = (ver.Number << 12) | versionInfoBits

	bitIndex := 0
	for i := 0; i < 6; i++ {
		for j := 0; j < 3; j++ {
			bit := byte((versionInfoBits >> uint(bitIndex)) & 1)
			bitIndex++
			matrix.set(i, matrix.height-11+j, bit)
			matrix.set(matrix.width-11+j, i, bit)
		}
	}
}

func embedDataBits(dataBits *bitutil.BitArray, maskPattern int, matrix *byteMatrix) {
	bitIndex := 0
	dimension := matrix.height

	for j := dimension - 1; j > 0; j -= 2 {
		if j == 6 {
			j-- // skip the timing column
		}
		for count := 0; count < dimension; count++ {
			upward := (((dimension - 1 - j) / 2) & 1) == 0
			i := count
			if upward {
				i = dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := j - col
				if matrix.get(x, i) != 0xFF {
					continue
				}
				var bit bool
				if bitIndex < dataBits.Size() {
					bit = dataBits.Get(bitIndex)
					bitIndex++
				}
				if dataMasks[maskPattern](i, x) {
					bit = !bit
				}
				if bit {
					matrix.set(x, i, 1)
				} else {
					matrix.set(x, i, 0)
				}
			}
		}
	}
}

func calculateBCHCode(value, poly int) int {
	msbSetInPoly := findMSBSet(poly)
	value <<= uint(msbSetInPoly - 1)
	for findMSBSet(value) >= msbSetInPoly {
		value ^= poly << uint(findMSBSet(value)-msbSetInPoly)
	}
	return value
}

func findMSBSet(value int) int {
	count := 0
	for value != 0 {
		value >>= 1
		count++
	}
	return count
}
