// Package qr implements QR code encoding for versions 1-40 with numeric,
// alphanumeric, and byte modes. Byte mode payloads are transcoded to
// ISO 8859-1.
package qr

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/bitutil"
	"github.com/glyphworks/symbology/checksum"
)

// quietZone is the blank margin required on each edge, in modules.
const quietZone = 4

// mode is a QR code data encoding mode.
type mode int

const (
	modeNumeric      mode = 0x01
	modeAlphanumeric mode = 0x02
	modeByte         mode = 0x04
)

// characterCountBits holds the count field width for version ranges
// 1-9, 10-26, and 27-40.
var characterCountBits = map[mode][3]int{
	modeNumeric:      {10, 12, 14},
	modeAlphanumeric: {9, 11, 13},
	modeByte:         {8, 16, 16},
}

func (m mode) bits() int { return int(m) }

func (m mode) countBits(ver *version) int {
	var offset int
	switch {
	case ver.Number <= 9:
		offset = 0
	case ver.Number <= 26:
		offset = 1
	default:
		offset = 2
	}
	return characterCountBits[m][offset]
}

// alphanumericTable maps ASCII values to alphanumeric mode codes.
var alphanumericTable = [128]int{
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	36, -1, -1, -1, 37, 38, -1, -1, -1, -1, 39, 40, -1, 41, 42, 43,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 44, -1, -1, -1, -1, -1,
	-1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
}

func alphanumericCode(code int) int {
	if code < 128 {
		return alphanumericTable[code]
	}
	return -1
}

// chooseMode picks the densest mode that can carry all of data.
func chooseMode(data []byte) mode {
	hasNumeric := false
	hasAlphanumeric := false
	for _, c := range data {
		switch {
		case c >= '0' && c <= '9':
			hasNumeric = true
		case alphanumericCode(int(c)) != -1:
			hasAlphanumeric = true
		default:
			return modeByte
		}
	}
	if hasAlphanumeric {
		return modeAlphanumeric
	}
	if hasNumeric {
		return modeNumeric
	}
	return modeByte
}

// Encoder encodes QR codes. Options: "ec_level" (L, M, Q, or H, default M),
// "version" (1-40, default smallest that fits), and "mask" (0-7, default
// lowest penalty).
type Encoder struct{}

// NewEncoder creates a new QR code encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func init() {
	symbology.Register(&symbology.Spec{
		ID:       symbology.QR,
		Kind:     symbology.KindMatrix,
		Charset:  symbology.CharsetByte,
		Checksum: "reed-solomon",
		New:      func() symbology.Encoder { return NewEncoder() },
	})
}

// Encode encodes contents into a QR code symbol.
func (e *Encoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check("ec_level", "version", "mask"); err != nil {
		return nil, err
	}
	if contents == "" {
		return nil, fmt.Errorf("%s: %w", symbology.QR, symbology.ErrEmptyPayload)
	}

	level, err := ParseECLevel(opts.Get("ec_level", "M"))
	if err != nil {
		return nil, err
	}
	verNum, err := opts.Int("version", 0)
	if err != nil {
		return nil, err
	}
	if verNum != 0 && (verNum < 1 || verNum > 40) {
		return nil, fmt.Errorf("%s: version must be 1-40, got %d: %w",
			symbology.QR, verNum, symbology.ErrUnsupportedOption)
	}
	maskPattern, err := opts.Int("mask", -1)
	if err != nil {
		return nil, err
	}
	if maskPattern != -1 && (maskPattern < 0 || maskPattern >= numMaskPatterns) {
		return nil, fmt.Errorf("%s: mask must be 0-7, got %d: %w",
			symbology.QR, maskPattern, symbology.ErrUnsupportedOption)
	}

	data, err := toLatin1(contents)
	if err != nil {
		return nil, err
	}

	grid, levelUsed, err := encode(data, level, verNum, maskPattern)
	if err != nil {
		return nil, err
	}

	sym := symbology.NewMatrixSymbol(symbology.QR, contents, grid, quietZone)
	sym.ECLevel = levelUsed.String()
	return sym, nil
}

// toLatin1 transcodes contents to ISO 8859-1 bytes.
func toLatin1(contents string) ([]byte, error) {
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(contents))
	if err != nil {
		return nil, fmt.Errorf("%s: payload not representable in ISO 8859-1: %w",
			symbology.QR, symbology.ErrInvalidCharacter)
	}
	return out, nil
}

func encode(data []byte, level ECLevel, verNum, maskPattern int) (*bitutil.BitMatrix, ECLevel, error) {
	m := chooseMode(data)

	headerBits := bitutil.NewBitArray(0)
	headerBits.AppendBits(uint32(m.bits()), 4)

	dataBits := bitutil.NewBitArray(0)
	appendModeBytes(data, m, dataBits)

	var ver *version
	var err error
	if verNum > 0 {
		ver, err = getVersion(verNum)
		if err != nil {
			return nil, level, err
		}
	} else {
		ver, err = chooseVersion(m, headerBits, dataBits, level)
		if err != nil {
			return nil, level, err
		}
	}

	headerBits.AppendBits(uint32(len(data)), m.countBits(ver))
	headerBits.AppendBitArray(dataBits)

	blocks := ver.ECBlocksForLevel(level)
	totalBytes := ver.TotalCodewords
	numDataBytes := totalBytes - blocks.TotalECCodewords()

	if err := terminateBits(numDataBytes, headerBits); err != nil {
		return nil, level, err
	}

	finalBits, err := interleaveWithECBytes(headerBits, totalBytes, numDataBytes, blocks.NumBlocks())
	if err != nil {
		return nil, level, err
	}

	dimension := ver.Dimension()
	matrix := newByteMatrix(dimension, dimension)

	if maskPattern < 0 {
		maskPattern = chooseMaskPattern(finalBits, level, ver, matrix)
	}
	buildMatrix(finalBits, level, ver, maskPattern, matrix)

	return matrix.toBitMatrix(), level, nil
}

// chooseVersion finds the smallest version whose data capacity fits the
// payload at the requested level.
func chooseVersion(m mode, headerBits, dataBits *bitutil.BitArray, level ECLevel) (*version, error) {
	for versionNum := 1; versionNum <= 40; versionNum++ {
		ver, _ := getVersion(versionNum)
		totalBits := headerBits.Size() + m.countBits(ver) + dataBits.Size()
		blocks := ver.ECBlocksForLevel(level)
		numDataBytes := ver.TotalCodewords - blocks.TotalECCodewords()
		if totalBits <= numDataBytes*8 {
			return ver, nil
		}
	}
	return nil, fmt.Errorf("%s: payload does not fit any version at level %s: %w",
		symbology.QR, level, symbology.ErrCapacityExceeded)
}

// terminateBits appends the terminator, pads to a byte boundary, and fills
// the remaining data capacity with the alternating pad codewords.
func terminateBits(numDataBytes int, bits *bitutil.BitArray) error {
	capacity := numDataBytes * 8
	if bits.Size() > capacity {
		return fmt.Errorf("%s: %d data bits exceed capacity of %d: %w",
			symbology.QR, bits.Size(), capacity, symbology.ErrCapacityExceeded)
	}

	for i := 0; i < 4 && bits.Size() < capacity; i++ {
		bits.AppendBit(false)
	}

	numBitsInLastByte := bits.Size() & 0x07
	if numBitsInLastByte > 0 {
		for i := numBitsInLastByte; i < 8; i++ {
			bits.AppendBit(false)
		}
	}

	numPaddingBytes := numDataBytes - bits.SizeInBytes()
	for i := 0; i < numPaddingBytes; i++ {
		if i%2 == 0 {
			bits.AppendBits(0xEC, 8)
		} else {
			bits.AppendBits(0x11, 8)
		}
	}
	return nil
}

func appendModeBytes(data []byte, m mode, bits *bitutil.BitArray) {
	switch m {
	case modeNumeric:
		appendNumericBytes(data, bits)
	case modeAlphanumeric:
		appendAlphanumericBytes(data, bits)
	default:
		append8BitBytes(data, bits)
	}
}

func appendNumericBytes(data []byte, bits *bitutil.BitArray) {
	length := len(data)
	i := 0
	for i < length {
		num1 := int(data[i] - '0')
		switch {
		case i+2 < length:
			num2 := int(data[i+1] - '0')
			num3 := int(data[i+2] - '0')
			bits.AppendBits(uint32(num1*100+num2*10+num3), 10)
			i += 3
		case i+1 < length:
			num2 := int(data[i+1] - '0')
			bits.AppendBits(uint32(num1*10+num2), 7)
			i += 2
		default:
			bits.AppendBits(uint32(num1), 4)
			i++
		}
	}
}

func appendAlphanumericBytes(data []byte, bits *bitutil.BitArray) {
	length := len(data)
	i := 0
	for i < length {
		code1 := alphanumericCode(int(data[i]))
		if i+1 < length {
			code2 := alphanumericCode(int(data[i+1]))
			bits.AppendBits(uint32(code1*45+code2), 11)
			i += 2
		} else {
			bits.AppendBits(uint32(code1), 6)
			i++
		}
	}
}

func append8BitBytes(data []byte, bits *bitutil.BitArray) {
	for _, c := range data {
		bits.AppendBits(uint32(c), 8)
	}
}

// interleaveWithECBytes splits data codewords into RS blocks, computes each
// block's error correction codewords, and interleaves them per the symbol
// placement order.
func interleaveWithECBytes(bits *bitutil.BitArray, numTotalBytes, numDataBytes, numRSBlocks int) (*bitutil.BitArray, error) {
	if bits.SizeInBytes() != numDataBytes {
		return nil, fmt.Errorf("qr: %d data bytes written, expected %d", bits.SizeInBytes(), numDataBytes)
	}

	type blockPair struct {
		dataBytes []byte
		ecBytes   []byte
	}
	blocks := make([]blockPair, numRSBlocks)

	dataBytesOffset := 0
	maxNumDataBytes := 0
	maxNumEcBytes := 0

	for i := 0; i < numRSBlocks; i++ {
		numDataBytesInBlock, numEcBytesInBlock := blockSizes(numTotalBytes, numDataBytes, numRSBlocks, i)

		dataBytes := make([]byte, numDataBytesInBlock)
		bits.ToBytes(8*dataBytesOffset, dataBytes, 0, numDataBytesInBlock)
		ecBytes := generateECBytes(dataBytes, numEcBytesInBlock)
		blocks[i] = blockPair{dataBytes: dataBytes, ecBytes: ecBytes}

		if numDataBytesInBlock > maxNumDataBytes {
			maxNumDataBytes = numDataBytesInBlock
		}
		if numEcBytesInBlock > maxNumEcBytes {
			maxNumEcBytes = numEcBytesInBlock
		}
		dataBytesOffset += numDataBytesInBlock
	}

	result := bitutil.NewBitArray(0)
	for i := 0; i < maxNumDataBytes; i++ {
		for _, block := range blocks {
			if i < len(block.dataBytes) {
				result.AppendBits(uint32(block.dataBytes[i]), 8)
			}
		}
	}
	for i := 0; i < maxNumEcBytes; i++ {
		for _, block := range blocks {
			if i < len(block.ecBytes) {
				result.AppendBits(uint32(block.ecBytes[i]), 8)
			}
		}
	}

	if result.SizeInBytes() != numTotalBytes {
		return nil, fmt.Errorf("qr: interleaving produced %d bytes, expected %d", result.SizeInBytes(), numTotalBytes)
	}
	return result, nil
}

// blockSizes returns the data and EC codeword counts for one RS block.
// Blocks in the second group carry one extra data codeword.
func blockSizes(numTotalBytes, numDataBytes, numRSBlocks, blockID int) (int, int) {
	numRsBlocksInGroup2 := numTotalBytes % numRSBlocks
	numRsBlocksInGroup1 := numRSBlocks - numRsBlocksInGroup2
	numTotalBytesInGroup1 := numTotalBytes / numRSBlocks
	numTotalBytesInGroup2 := numTotalBytesInGroup1 + 1
	numDataBytesInGroup1 := numDataBytes / numRSBlocks
	numDataBytesInGroup2 := numDataBytesInGroup1 + 1
	numEcBytesInGroup1 := numTotalBytesInGroup1 - numDataBytesInGroup1
	numEcBytesInGroup2 := numTotalBytesInGroup2 - numDataBytesInGroup2

	if blockID < numRsBlocksInGroup1 {
		return numDataBytesInGroup1, numEcBytesInGroup1
	}
	return numDataBytesInGroup2, numEcBytesInGroup2
}

func generateECBytes(dataBytes []byte, numEcBytesInBlock int) []byte {
	numDataBytes := len(dataBytes)
	toEncode := make([]int, numDataBytes+numEcBytesInBlock)
	for i, c := range dataBytes {
		toEncode[i] = int(c) & 0xFF
	}
	checksum.NewRSEncoder(checksum.QRField).Encode(toEncode, numEcBytesInBlock)
	ecBytes := make([]byte, numEcBytesInBlock)
	for i := 0; i < numEcBytesInBlock; i++ {
		ecBytes[i] = byte(toEncode[numDataBytes+i])
	}
	return ecBytes
}
