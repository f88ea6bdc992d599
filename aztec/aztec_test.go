package aztec

import (
	"errors"
	"strings"
	"testing"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/bitutil"
)

func bitString(ba *bitutil.BitArray) string {
	var sb strings.Builder
	for i := 0; i < ba.Size(); i++ {
		if ba.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func TestHighLevelEncode(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{"upper", "A", "00010"},
		{"lower latch", "a", "11100" + "00010"},
		{"digit latch", "1", "11110" + "0011"},
		{"digit run", "2026", "11110" + "0100" + "0010" + "0100" + "1000"},
		{"punct pair", ". ", "11101" + "11110" + "00011"},
		{"punct latch run", "!?", "11101" + "11110" + "00110" + "11010"},
		{"alpha shift from lower", "aA", "11100" + "00010" + "11100" + "00010"},
		{"binary shift", "\xff", "11111" + "00001" + "11111111"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := bitString(encodeHighLevel([]byte(tc.contents)))
			if got != tc.want {
				t.Errorf("encodeHighLevel(%q) = %s, want %s", tc.contents, got, tc.want)
			}
		})
	}
}

func TestStuffBits(t *testing.T) {
	// A word whose upper bits are all zero gets its final bit forced to 1
	// and the stream backs up one position.
	in := bitutil.NewBitArray(0)
	in.AppendBits(0, 6)
	got := bitString(stuffBits(in, 6))
	if got != "000001"+"011111" {
		t.Errorf("all-zero word: got %s", got)
	}

	// A word whose upper bits are all one is emitted with its final bit
	// forced to 0; the displaced bit joins the padded tail word.
	in = bitutil.NewBitArray(0)
	in.AppendBits(0x3F, 6)
	got = bitString(stuffBits(in, 6))
	if got != "111110"+"111110" {
		t.Errorf("all-one word: got %s", got)
	}

	// Mixed words pass through, with trailing padding bits set.
	in = bitutil.NewBitArray(0)
	in.AppendBits(0x05, 6)
	if got := bitString(stuffBits(in, 6)); got != "000101" {
		t.Errorf("plain word: got %s", got)
	}
}

func TestEncodeCompactStructure(t *testing.T) {
	sym, err := NewEncoder().Encode("A", nil)
	if err != nil {
		t.Fatal(err)
	}
	if sym.Kind != symbology.KindMatrix || sym.QuietZone != 0 {
		t.Fatalf("unexpected symbol shape: kind=%v quiet=%d", sym.Kind, sym.QuietZone)
	}
	if sym.Grid.Width() != 15 || sym.Grid.Height() != 15 {
		t.Fatalf("grid = %dx%d, want 15x15", sym.Grid.Width(), sym.Grid.Height())
	}
	if sym.ECLevel != "33%" {
		t.Errorf("ECLevel = %q, want 33%%", sym.ECLevel)
	}

	// Bullseye: solid center, blank at distance 1, ring at distance 2,
	// orientation mark in the upper-left corner of the finder.
	if !sym.Grid.Get(7, 7) {
		t.Error("center module unset")
	}
	if sym.Grid.Get(7, 6) {
		t.Error("distance-1 module set")
	}
	if !sym.Grid.Get(7, 5) || !sym.Grid.Get(5, 7) {
		t.Error("distance-2 ring unset")
	}
	if !sym.Grid.Get(2, 2) || !sym.Grid.Get(3, 2) || !sym.Grid.Get(2, 3) {
		t.Error("orientation marks unset")
	}
}

func TestEncodeLayersOption(t *testing.T) {
	// Forcing one full-range layer gives a 19x19 grid: 18 base modules
	// plus the central reference grid line.
	sym, err := NewEncoder().Encode("A", symbology.Options{"layers": "1"})
	if err != nil {
		t.Fatal(err)
	}
	if sym.Grid.Width() != 19 {
		t.Errorf("full-range 1 layer: width %d, want 19", sym.Grid.Width())
	}

	// Negative layer counts force compact symbols.
	sym, err = NewEncoder().Encode("A", symbology.Options{"layers": "-2"})
	if err != nil {
		t.Fatal(err)
	}
	if sym.Grid.Width() != 19 {
		t.Errorf("compact 2 layers: width %d, want 19", sym.Grid.Width())
	}
}

func TestEncodeECPercentOption(t *testing.T) {
	small, err := NewEncoder().Encode("AZTEC SYMBOL", symbology.Options{"ec_percent": "10"})
	if err != nil {
		t.Fatal(err)
	}
	large, err := NewEncoder().Encode("AZTEC SYMBOL", symbology.Options{"ec_percent": "95"})
	if err != nil {
		t.Fatal(err)
	}
	if small.Grid.Width() > large.Grid.Width() {
		t.Errorf("ec 10%% grid %d wider than ec 95%% grid %d",
			small.Grid.Width(), large.Grid.Width())
	}
	if large.ECLevel != "95%" {
		t.Errorf("ECLevel = %q, want 95%%", large.ECLevel)
	}
}

func TestEncodeErrors(t *testing.T) {
	enc := NewEncoder()

	if _, err := enc.Encode("", nil); !errors.Is(err, symbology.ErrEmptyPayload) {
		t.Errorf("empty payload: got %v", err)
	}
	if _, err := enc.Encode("A", symbology.Options{"ec_percent": "abc"}); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("bad ec_percent: got %v", err)
	}
	if _, err := enc.Encode("A", symbology.Options{"ec_percent": "120"}); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("out-of-range ec_percent: got %v", err)
	}
	if _, err := enc.Encode("A", symbology.Options{"layers": "-5"}); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("compact layers out of range: got %v", err)
	}
	if _, err := enc.Encode("A", symbology.Options{"layers": "33"}); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("layers out of range: got %v", err)
	}
	if _, err := enc.Encode("A", symbology.Options{"size": "big"}); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("unknown option: got %v", err)
	}
	if _, err := enc.Encode(strings.Repeat("A", 30), symbology.Options{"layers": "-1"}); !errors.Is(err, symbology.ErrCapacityExceeded) {
		t.Errorf("forced layer overflow: got %v", err)
	}
	if _, err := enc.Encode(strings.Repeat("\xff", 3000), nil); !errors.Is(err, symbology.ErrCapacityExceeded) {
		t.Errorf("auto overflow: got %v", err)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	first, err := symbology.Encode(symbology.Aztec, "DETERMINISM CHECK 123", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := symbology.Encode(symbology.Aztec, "DETERMINISM CHECK 123", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Grid.Equals(second.Grid) {
		t.Error("repeated encodes differ")
	}
}
