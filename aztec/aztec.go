// Package aztec implements Aztec code encoding, compact and full-range.
package aztec

import (
	"fmt"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/bitutil"
	"github.com/glyphworks/symbology/checksum"
)

// Aztec symbols carry their own finder pattern and need no quiet zone.
const quietZone = 0

// defaultECPercent is the error correction overhead applied when the
// ec_percent option is absent.
const defaultECPercent = 33

// wordSizes[layers] gives the codeword size in bits for that layer count.
// Index 0 is the 4-bit mode message word size.
var wordSizes = [33]int{
	4, 6, 6, 8, 8, 8, 8, 8, 8, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
	12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// fieldForWordSize returns the Galois field matching a codeword bit width.
func fieldForWordSize(wordSize int) *checksum.Field {
	switch wordSize {
	case 4:
		return checksum.AztecParam
	case 6:
		return checksum.AztecData6
	case 8:
		return checksum.AztecData8
	case 10:
		return checksum.AztecData10
	case 12:
		return checksum.AztecData12
	default:
		panic(fmt.Sprintf("aztec: no field for word size %d", wordSize))
	}
}

// Encoder encodes Aztec symbols. The "ec_percent" option sets the minimum
// error correction overhead (default 33); "layers" forces a layer count,
// with negative values selecting a compact symbol.
type Encoder struct{}

// NewEncoder creates a new Aztec encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func init() {
	symbology.Register(&symbology.Spec{
		ID:       symbology.Aztec,
		Kind:     symbology.KindMatrix,
		Charset:  symbology.CharsetByte,
		Checksum: "reed-solomon",
		New:      func() symbology.Encoder { return NewEncoder() },
	})
}

// Encode encodes contents into an Aztec symbol.
func (e *Encoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check("ec_percent", "layers"); err != nil {
		return nil, err
	}
	if contents == "" {
		return nil, fmt.Errorf("%s: %w", symbology.Aztec, symbology.ErrEmptyPayload)
	}

	ecPercent, err := opts.Int("ec_percent", defaultECPercent)
	if err != nil {
		return nil, err
	}
	if ecPercent < 0 || ecPercent > 100 {
		return nil, fmt.Errorf("%s: ec_percent must be 0 to 100: %w",
			symbology.Aztec, symbology.ErrUnsupportedOption)
	}
	layers, err := opts.Int("layers", 0)
	if err != nil {
		return nil, err
	}

	grid, err := encode([]byte(contents), ecPercent, layers)
	if err != nil {
		return nil, err
	}

	sym := symbology.NewMatrixSymbol(symbology.Aztec, contents, grid, quietZone)
	sym.ECLevel = fmt.Sprintf("%d%%", ecPercent)
	return sym, nil
}

// encode runs the full pipeline: high-level encoding, symbol size selection,
// bit stuffing, check words, mode message, and module placement.
// userLayers of 0 selects the smallest sufficient symbol; negative values
// force a compact symbol with that many layers.
func encode(data []byte, minECPercent, userLayers int) (*bitutil.BitMatrix, error) {
	bits := encodeHighLevel(data)

	ecBits := bits.Size()*minECPercent/100 + 11
	totalSizeBits := bits.Size() + ecBits

	var compact bool
	var layers, totalBitsInLayer, wordSize int
	var stuffedBits *bitutil.BitArray

	if userLayers != 0 {
		compact = userLayers < 0
		layers = userLayers
		if compact {
			layers = -layers
		}
		maxLayers := 32
		if compact {
			maxLayers = 4
		}
		if layers > maxLayers {
			return nil, fmt.Errorf("%s: layers must be within -4..%d: %w",
				symbology.Aztec, maxLayers, symbology.ErrUnsupportedOption)
		}
		totalBitsInLayer = layerBitCapacity(layers, compact)
		wordSize = wordSizes[layers]
		usableBits := totalBitsInLayer - totalBitsInLayer%wordSize
		stuffedBits = stuffBits(bits, wordSize)
		if stuffedBits.Size()+ecBits > usableBits {
			return nil, fmt.Errorf("%s: data does not fit in %d layers: %w",
				symbology.Aztec, layers, symbology.ErrCapacityExceeded)
		}
		if compact && stuffedBits.Size() > wordSize*64 {
			return nil, fmt.Errorf("%s: data does not fit in %d compact layers: %w",
				symbology.Aztec, layers, symbology.ErrCapacityExceeded)
		}
	} else {
		// Compact 1-4 first, then full-range 4-32. Full-range 1-3 are
		// skipped: the compact symbol of the next size up is the same
		// footprint with more capacity.
		found := false
		for i := 0; i <= 32; i++ {
			compact = i <= 3
			layers = i
			if compact {
				layers = i + 1
			}
			totalBitsInLayer = layerBitCapacity(layers, compact)
			if totalSizeBits > totalBitsInLayer {
				continue
			}
			if stuffedBits == nil || wordSize != wordSizes[layers] {
				wordSize = wordSizes[layers]
				stuffedBits = stuffBits(bits, wordSize)
			}
			usableBits := totalBitsInLayer - totalBitsInLayer%wordSize
			if compact && stuffedBits.Size() > wordSize*64 {
				continue
			}
			if stuffedBits.Size()+ecBits <= usableBits {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%s: data does not fit in any symbol: %w",
				symbology.Aztec, symbology.ErrCapacityExceeded)
		}
	}

	messageBits := generateCheckWords(stuffedBits, totalBitsInLayer, wordSize)
	messageSizeInWords := stuffedBits.Size() / wordSize
	modeMessage := generateModeMessage(compact, layers, messageSizeInWords)

	// The full-range grid interleaves a reference grid line every 16
	// modules; alignmentMap translates data coordinates past them.
	baseSize := layers*4 + 11
	if !compact {
		baseSize = layers*4 + 14
	}
	alignmentMap := make([]int, baseSize)
	var size int

	if compact {
		size = baseSize
		for i := range alignmentMap {
			alignmentMap[i] = i
		}
	} else {
		size = baseSize + 1 + 2*((baseSize/2-1)/15)
		origCenter := baseSize / 2
		center := size / 2
		for i := 0; i < origCenter; i++ {
			offset := i + i/15
			alignmentMap[origCenter-i-1] = center - offset - 1
			alignmentMap[origCenter+i] = center + offset + 1
		}
	}

	matrix := bitutil.NewBitMatrix(size)

	// Data bits spiral outward in four rotated quadrants per layer.
	rowOffset := 0
	for i := 0; i < layers; i++ {
		rowSize := (layers-i)*4 + 9
		if !compact {
			rowSize = (layers-i)*4 + 12
		}
		for j := 0; j < rowSize; j++ {
			columnOffset := j * 2
			for k := 0; k < 2; k++ {
				if messageBits.Get(rowOffset + columnOffset + k) {
					matrix.Set(alignmentMap[i*2+k], alignmentMap[i*2+j])
				}
				if messageBits.Get(rowOffset + rowSize*2 + columnOffset + k) {
					matrix.Set(alignmentMap[i*2+j], alignmentMap[baseSize-1-i*2-k])
				}
				if messageBits.Get(rowOffset + rowSize*4 + columnOffset + k) {
					matrix.Set(alignmentMap[baseSize-1-i*2-k], alignmentMap[baseSize-1-i*2-j])
				}
				if messageBits.Get(rowOffset + rowSize*6 + columnOffset + k) {
					matrix.Set(alignmentMap[baseSize-1-i*2-j], alignmentMap[i*2+k])
				}
			}
		}
		rowOffset += rowSize * 8
	}

	drawModeMessage(matrix, compact, size, modeMessage)

	if compact {
		drawBullseye(matrix, size/2, 5)
	} else {
		drawBullseye(matrix, size/2, 7)
		for i, j := 0, 0; i < baseSize/2-1; i, j = i+15, j+16 {
			for k := (size / 2) & 1; k < size; k += 2 {
				matrix.Set(size/2-j, k)
				matrix.Set(size/2+j, k)
				matrix.Set(k, size/2-j)
				matrix.Set(k, size/2+j)
			}
		}
	}

	return matrix, nil
}

// layerBitCapacity returns the number of data bits a symbol with the given
// layer count can hold.
func layerBitCapacity(layers int, compact bool) int {
	base := 112
	if compact {
		base = 88
	}
	return (base + 16*layers) * layers
}

// stuffBits splits the bit stream into wordSize-bit codewords, inserting a
// complementary stuff bit wherever the upper bits of a word would otherwise
// be all zero or all one.
func stuffBits(bits *bitutil.BitArray, wordSize int) *bitutil.BitArray {
	out := bitutil.NewBitArray(0)
	n := bits.Size()
	mask := (1 << uint(wordSize)) - 2

	for i := 0; i < n; i += wordSize {
		word := 0
		for j := 0; j < wordSize; j++ {
			if i+j >= n || bits.Get(i+j) {
				word |= 1 << uint(wordSize-1-j)
			}
		}
		switch word & mask {
		case mask:
			out.AppendBits(uint32(word&mask), wordSize)
			i--
		case 0:
			out.AppendBits(uint32(word|1), wordSize)
			i--
		default:
			out.AppendBits(uint32(word), wordSize)
		}
	}
	return out
}

// generateCheckWords Reed-Solomon encodes the stuffed bits and returns data
// plus check words as a bit stream of exactly totalBits, left-padded with
// zero bits when totalBits is not a multiple of wordSize.
func generateCheckWords(stuffedBits *bitutil.BitArray, totalBits, wordSize int) *bitutil.BitArray {
	messageSizeInWords := stuffedBits.Size() / wordSize
	totalWords := totalBits / wordSize

	words := bitsToWords(stuffedBits, wordSize, totalWords)
	checksum.NewRSEncoder(fieldForWordSize(wordSize)).Encode(words, totalWords-messageSizeInWords)

	out := bitutil.NewBitArray(0)
	out.AppendBits(0, totalBits%wordSize)
	for _, w := range words {
		out.AppendBits(uint32(w), wordSize)
	}
	return out
}

func bitsToWords(stuffedBits *bitutil.BitArray, wordSize, totalWords int) []int {
	words := make([]int, totalWords)
	n := stuffedBits.Size() / wordSize
	for i := 0; i < n; i++ {
		value := 0
		for j := 0; j < wordSize; j++ {
			if stuffedBits.Get(i*wordSize + j) {
				value |= 1 << uint(wordSize-1-j)
			}
		}
		words[i] = value
	}
	return words
}

// generateModeMessage builds the layer count and word count fields and
// protects them with 4-bit Reed-Solomon check words: 28 bits total for
// compact symbols, 40 for full-range.
func generateModeMessage(compact bool, layers, messageSizeInWords int) *bitutil.BitArray {
	modeMessage := bitutil.NewBitArray(0)
	if compact {
		modeMessage.AppendBits(uint32(layers-1), 2)
		modeMessage.AppendBits(uint32(messageSizeInWords-1), 6)
		return generateCheckWords(modeMessage, 28, 4)
	}
	modeMessage.AppendBits(uint32(layers-1), 5)
	modeMessage.AppendBits(uint32(messageSizeInWords-1), 11)
	return generateCheckWords(modeMessage, 40, 4)
}

// drawBullseye draws the concentric finder rings and orientation marks
// around the symbol center.
func drawBullseye(matrix *bitutil.BitMatrix, center, size int) {
	for i := 0; i < size; i += 2 {
		for j := center - i; j <= center+i; j++ {
			matrix.Set(j, center-i)
			matrix.Set(j, center+i)
			matrix.Set(center-i, j)
			matrix.Set(center+i, j)
		}
	}
	matrix.Set(center-size, center-size)
	matrix.Set(center-size+1, center-size)
	matrix.Set(center-size, center-size+1)
	matrix.Set(center+size, center-size)
	matrix.Set(center+size, center-size+1)
	matrix.Set(center+size, center+size-1)
}

// drawModeMessage places the mode message bits along the four sides of the
// bullseye.
func drawModeMessage(matrix *bitutil.BitMatrix, compact bool, size int, modeMessage *bitutil.BitArray) {
	center := size / 2
	if compact {
		for i := 0; i < 7; i++ {
			offset := center - 3 + i
			if modeMessage.Get(i) {
				matrix.Set(offset, center-5)
			}
			if modeMessage.Get(i + 7) {
				matrix.Set(center+5, offset)
			}
			if modeMessage.Get(20 - i) {
				matrix.Set(offset, center+5)
			}
			if modeMessage.Get(27 - i) {
				matrix.Set(center-5, offset)
			}
		}
		return
	}
	for i := 0; i < 10; i++ {
		offset := center - 5 + i + i/5
		if modeMessage.Get(i) {
			matrix.Set(offset, center-7)
		}
		if modeMessage.Get(i + 10) {
			matrix.Set(center+7, offset)
		}
		if modeMessage.Get(29 - i) {
			matrix.Set(offset, center+7)
		}
		if modeMessage.Get(39 - i) {
			matrix.Set(center-7, offset)
		}
	}
}
