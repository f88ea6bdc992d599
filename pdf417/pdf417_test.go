package pdf417

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/glyphworks/symbology"
)

func TestEncodeHighLevelText(t *testing.T) {
	tests := []struct {
		contents string
		want     []int
	}{
		// pairs of 30-state values, odd tails padded with PS
		{"ABCDE", []int{1, 63, 149}},
		// digits force the mixed sub-mode
		{"PDF417", []int{453, 178, 121, 239}},
	}
	for _, tc := range tests {
		t.Run(tc.contents, func(t *testing.T) {
			got, err := encodeHighLevel(tc.contents, CompactionText)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEncodeHighLevelNumeric(t *testing.T) {
	// 15 digits latch to numeric compaction: a leading 1 is prefixed and
	// the number is rewritten in base 900.
	got, err := encodeHighLevel("000213298174000", CompactionAuto)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{latchToNumeric, 1, 624, 434, 632, 282, 200}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncodeHighLevelBinary(t *testing.T) {
	data := "\xAB\xE4\xF6\xF7\xFC\xE9"
	got, err := encodeHighLevel(data, CompactionByte)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 6 || got[0] != latchToByte {
		t.Fatalf("six bytes: got %v", got)
	}
	// five base-900 codewords must reproduce the 48-bit value
	value := 0
	for _, cw := range got[1:] {
		value = value*900 + cw
	}
	if value != 0xABE4F6F7FCE9 {
		t.Errorf("sixpack value = %#x, want 0xABE4F6F7FCE9", value)
	}

	// a tail shorter than six bytes is carried verbatim after the padded
	// latch
	got, err = encodeHighLevel(data+"\x42", CompactionByte)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != latchToBytePadded || got[len(got)-1] != 0x42 {
		t.Errorf("seven bytes: got %v", got)
	}
}

func TestEncodeHighLevelAuto(t *testing.T) {
	// short text runs go through byte compaction
	got, err := encodeHighLevel("AB", CompactionAuto)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []int{latchToBytePadded, 65, 66}) {
		t.Errorf("short text: got %v", got)
	}

	// a single non-text byte after a text run uses the byte shift
	got, err = encodeHighLevel("HELLO WORLD\xF0", CompactionAuto)
	if err != nil {
		t.Fatal(err)
	}
	n := len(got)
	if n < 2 || got[n-2] != shiftToByte || got[n-1] != 0xF0 {
		t.Errorf("byte shift: got %v", got)
	}
}

func TestEncodeDimensionsAndIndicators(t *testing.T) {
	code, err := NewEncoder().Encode("HELLO", 2)
	if err != nil {
		t.Fatal(err)
	}
	if code.Columns != 2 || code.Rows != 6 {
		t.Fatalf("dimensions = %dx%d, want 2x6", code.Columns, code.Rows)
	}
	if code.ECLevel != 2 {
		t.Errorf("ECLevel = %d", code.ECLevel)
	}
	if len(code.Codewords) != 12 {
		t.Fatalf("codeword count = %d, want 12", len(code.Codewords))
	}
	if code.Codewords[0] != 4 {
		t.Errorf("length descriptor = %d, want 4", code.Codewords[0])
	}
	if !reflect.DeepEqual(code.Codewords[1:4], []int{214, 341, 449}) {
		t.Errorf("data codewords = %v", code.Codewords[1:4])
	}

	if len(code.Matrix) != 6 || len(code.Matrix[0]) != 4 {
		t.Fatalf("matrix shape %dx%d", len(code.Matrix), len(code.Matrix[0]))
	}
	// row indicators rotate row count, EC level, and column count through
	// the three clusters
	if l, r := code.Matrix[0][0], code.Matrix[0][3]; l != 1 || r != 1 {
		t.Errorf("row 0 indicators %d/%d, want 1/1", l, r)
	}
	if l, r := code.Matrix[1][0], code.Matrix[1][3]; l != 8 || r != 1 {
		t.Errorf("row 1 indicators %d/%d, want 8/1", l, r)
	}
	if l, r := code.Matrix[2][0], code.Matrix[2][3]; l != 1 || r != 8 {
		t.Errorf("row 2 indicators %d/%d, want 1/8", l, r)
	}
	if l, r := code.Matrix[3][0], code.Matrix[3][3]; l != 31 || r != 31 {
		t.Errorf("row 3 indicators %d/%d, want 31/31", l, r)
	}
}

func TestEncodeForcedDimensions(t *testing.T) {
	enc := NewEncoder()
	if err := enc.SetDimensions(5, 5, 3, 90); err != nil {
		t.Fatal(err)
	}
	code, err := enc.Encode("HELLO", 2)
	if err != nil {
		t.Fatal(err)
	}
	if code.Columns != 5 || code.Rows != 3 {
		t.Fatalf("dimensions = %dx%d, want 5x3", code.Columns, code.Rows)
	}
	// 15 positions for 3 data + 1 descriptor + 8 EC leaves 3 pads
	if code.Codewords[4] != padCodeword || code.Codewords[6] != padCodeword {
		t.Errorf("missing pad codewords: %v", code.Codewords)
	}
	if code.Codewords[0] != 7 {
		t.Errorf("length descriptor = %d, want 7", code.Codewords[0])
	}
}

func TestEncodeErrors(t *testing.T) {
	enc := NewEncoder()

	if _, err := enc.Encode("", 2); !errors.Is(err, symbology.ErrEmptyPayload) {
		t.Errorf("empty payload: got %v", err)
	}
	if _, err := enc.Encode("snowman ☃", 2); !errors.Is(err, symbology.ErrInvalidCharacter) {
		t.Errorf("non-Latin-1 payload: got %v", err)
	}
	if _, err := enc.Encode("DATA", 9); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("bad EC level: got %v", err)
	}
	// control bytes have no text sub-mode code and must not reach the
	// codeword stream under forced text compaction
	textEnc := NewEncoder()
	textEnc.SetCompaction(CompactionText)
	if _, err := textEnc.Encode("AB\x01CD", 2); !errors.Is(err, symbology.ErrInvalidCharacter) {
		t.Errorf("unencodable text byte: got %v", err)
	}
	if err := enc.SetDimensions(0, 31, 3, 90); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("bad dimensions: got %v", err)
	}
	// level 8 claims 512 codewords; 500 binary bytes cannot fit alongside
	if _, err := enc.Encode(strings.Repeat("\xAA\xBB", 250), 8); !errors.Is(err, symbology.ErrCapacityExceeded) {
		t.Errorf("overflow: got %v", err)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	first, err := NewEncoder().Encode("Deterministic PDF417 payload 123456", 3)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewEncoder().Encode("Deterministic PDF417 payload 123456", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated encodes differ")
	}
}
