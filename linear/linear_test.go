package linear

import (
	"errors"
	"strings"
	"testing"

	"github.com/glyphworks/symbology"
)

// moduleString renders a linear symbol's modules as a string of 1s and 0s,
// quiet zones excluded.
func moduleString(t *testing.T, sym *symbology.Symbol) string {
	t.Helper()
	var sb strings.Builder
	for _, m := range sym.Modules() {
		if m {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func encode(t *testing.T, enc symbology.Encoder, contents string, opts symbology.Options) *symbology.Symbol {
	t.Helper()
	sym, err := enc.Encode(contents, opts)
	if err != nil {
		t.Fatalf("encode error for %q: %v", contents, err)
	}
	return sym
}

// --- EAN-13 ---

func TestEAN13Encode(t *testing.T) {
	sym := encode(t, NewEAN13Encoder(), "590123412345", nil)

	if sym.Content != "5901234123457" {
		t.Errorf("content: got %q, want %q", sym.Content, "5901234123457")
	}
	want := "101" + // start guard
		"0001011" + "0100111" + "0110011" + "0010011" + "0111101" + "0011101" + // 901234, LGGLLG
		"01010" + // middle guard
		"1100110" + "1101100" + "1000010" + "1011100" + "1001110" + "1000100" + // 123457
		"101" // end guard
	if got := moduleString(t, sym); got != want {
		t.Errorf("modules:\ngot  %s\nwant %s", got, want)
	}
	if sym.QuietZone != 10 {
		t.Errorf("quiet zone: got %d, want 10", sym.QuietZone)
	}
}

func TestEAN13CheckDigit(t *testing.T) {
	tests := []struct {
		contents string
		want     string
	}{
		{"123456789012", "1234567890128"},
		{"590123412345", "5901234123457"},
		{"978014300723", "9780143007234"},
	}
	enc := NewEAN13Encoder()
	for _, tc := range tests {
		t.Run(tc.contents, func(t *testing.T) {
			sym := encode(t, enc, tc.contents, nil)
			if sym.Content != tc.want {
				t.Errorf("content: got %q, want %q", sym.Content, tc.want)
			}
		})
	}
}

func TestEAN13Errors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		opts     symbology.Options
		want     error
	}{
		{"empty", "", nil, symbology.ErrEmptyPayload},
		{"too short", "12345678901", nil, symbology.ErrInvalidLength},
		{"already has check digit", "1234567890128", nil, symbology.ErrInvalidLength},
		{"non-digit", "12345678901A", nil, symbology.ErrInvalidCharacter},
		{"unknown option", "123456789012", symbology.Options{"shape": "square"}, symbology.ErrUnsupportedOption},
	}
	enc := NewEAN13Encoder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enc.Encode(tc.contents, tc.opts)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

// --- EAN-8 ---

func TestEAN8Encode(t *testing.T) {
	sym := encode(t, NewEAN8Encoder(), "9638507", nil)

	if sym.Content != "96385074" {
		t.Errorf("content: got %q, want %q", sym.Content, "96385074")
	}
	want := "101" +
		"0001011" + "0101111" + "0111101" + "0110111" + // 9638
		"01010" +
		"1001110" + "1110010" + "1000100" + "1011100" + // 5074
		"101"
	if got := moduleString(t, sym); got != want {
		t.Errorf("modules:\ngot  %s\nwant %s", got, want)
	}
}

// --- UPC-A ---

func TestUPCAEncode(t *testing.T) {
	sym := encode(t, NewUPCAEncoder(), "03600029145", nil)
	if sym.Content != "036000291452" {
		t.Errorf("content: got %q, want %q", sym.Content, "036000291452")
	}
	if w := len(sym.Modules()); w != 95 {
		t.Errorf("width: got %d, want 95", w)
	}

	// UPC-A is EAN-13 with a leading zero, so the module patterns must
	// line up.
	ean := encode(t, NewEAN13Encoder(), "003600029145", nil)
	if got, want := moduleString(t, sym), moduleString(t, ean); got != want {
		t.Errorf("pattern differs from zero-prefixed EAN-13:\ngot  %s\nwant %s", got, want)
	}
}

// --- UPC-E ---

func TestConvertUPCEtoUPCA(t *testing.T) {
	tests := []struct {
		upce string
		upca string
	}{
		{"0123456", "01234500006"},
		{"1098762", "10920000876"},
		{"0912343", "09120000034"},
		{"0198764", "01987000006"},
	}
	for _, tc := range tests {
		t.Run(tc.upce, func(t *testing.T) {
			if got := ConvertUPCEtoUPCA(tc.upce); got != tc.upca {
				t.Errorf("got %q, want %q", got, tc.upca)
			}
		})
	}
}

func TestUPCEEncode(t *testing.T) {
	sym := encode(t, NewUPCEEncoder(), "0123456", nil)
	// Check digit is computed over the expanded UPC-A value 01234500006.
	if sym.Content != "01234565" {
		t.Errorf("content: got %q, want %q", sym.Content, "01234565")
	}
	if w := len(sym.Modules()); w != 51 {
		t.Errorf("width: got %d, want 51", w)
	}
}

func TestUPCEErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     error
	}{
		{"number system 2", "2123456", symbology.ErrInvalidCharacter},
		{"too long", "01234560", symbology.ErrInvalidLength},
		{"too short", "012345", symbology.ErrInvalidLength},
	}
	enc := NewUPCEEncoder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enc.Encode(tc.contents, nil)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

// --- Code 39 ---

func TestCode39Encode(t *testing.T) {
	sym := encode(t, NewCode39Encoder(), "1", nil)
	want := "100101101101" + "0" + "110100101011" + "0" + "100101101101"
	if got := moduleString(t, sym); got != want {
		t.Errorf("modules:\ngot  %s\nwant %s", got, want)
	}
}

func TestCode39Width(t *testing.T) {
	tests := []string{"1", "12345", "TEST-123", "A B.C"}
	enc := NewCode39Encoder()
	for _, tc := range tests {
		t.Run(tc, func(t *testing.T) {
			sym := encode(t, enc, tc, nil)
			// start and stop asterisks plus one gap each: 13n + 25
			if got, want := len(sym.Modules()), 13*len(tc)+25; got != want {
				t.Errorf("width: got %d, want %d", got, want)
			}
		})
	}
}

func TestCode39CheckDigit(t *testing.T) {
	sym := encode(t, NewCode39Encoder(), "AB", symbology.Options{"check_digit": "true"})
	// A=10, B=11, (10+11) mod 43 = 21 = L
	if sym.Content != "ABL" {
		t.Errorf("content: got %q, want %q", sym.Content, "ABL")
	}
}

func TestCode39Extended(t *testing.T) {
	// lowercase letters escape as +<letter>, doubling their width
	sym := encode(t, NewCode39Encoder(), "a", nil)
	if got, want := len(sym.Modules()), 13*2+25; got != want {
		t.Errorf("width: got %d, want %d", got, want)
	}

	if _, err := NewCode39Encoder().Encode("é", nil); !errors.Is(err, symbology.ErrInvalidCharacter) {
		t.Errorf("non-ASCII: got %v, want %v", err, symbology.ErrInvalidCharacter)
	}
}

// --- Code 93 ---

func TestCode93CheckCharacters(t *testing.T) {
	// TEST93 carries check characters + and 6
	if got := code93CheckIndex("TEST93", 20); got != 41 {
		t.Errorf("check C: got %d, want 41 (+)", got)
	}
	if got := code93CheckIndex("TEST93+", 15); got != 6 {
		t.Errorf("check K: got %d, want 6", got)
	}
}

func TestCode93Encode(t *testing.T) {
	sym := encode(t, NewCode93Encoder(), "TEST93", nil)
	// start + 6 data + 2 checks + stop, 9 modules each, plus termination bar
	if got, want := len(sym.Modules()), (6+4)*9+1; got != want {
		t.Errorf("width: got %d, want %d", got, want)
	}
	mods := sym.Modules()
	if !mods[0] || !mods[len(mods)-1] {
		t.Error("symbol must begin and end with a bar")
	}
}

// --- Code 128 ---

func TestCode128Encode(t *testing.T) {
	sym := encode(t, NewCode128Encoder(), "A", nil)
	// start B, A (33), check (104+33) mod 103 = 34, stop
	want := "11010010000" + "10100011000" + "10001011000" + "1100011101011"
	if got := moduleString(t, sym); got != want {
		t.Errorf("modules:\ngot  %s\nwant %s", got, want)
	}
}

func TestCode128Width(t *testing.T) {
	tests := []struct {
		contents string
		width    int
	}{
		{"HELLO", 7*11 + 13},    // start B + 5 chars + check + stop
		{"12345678", 6*11 + 13}, // start C + 4 pairs + check + stop
		{"\xf112345678", 7*11 + 13}, // FNC1 + start C + 4 pairs + check + stop
	}
	enc := NewCode128Encoder()
	for _, tc := range tests {
		t.Run(tc.contents, func(t *testing.T) {
			sym := encode(t, enc, tc.contents, nil)
			if got := len(sym.Modules()); got != tc.width {
				t.Errorf("width: got %d, want %d", got, tc.width)
			}
		})
	}
}

func TestCode128CodeSetOption(t *testing.T) {
	enc := NewCode128Encoder()

	sym := encode(t, enc, "1234", symbology.Options{"code_set": "C"})
	// start C + 2 pairs + check + stop
	if got, want := len(sym.Modules()), 4*11+13; got != want {
		t.Errorf("width: got %d, want %d", got, want)
	}

	if _, err := enc.Encode("123", symbology.Options{"code_set": "C"}); !errors.Is(err, symbology.ErrInvalidLength) {
		t.Errorf("odd digits in code set C: got %v, want %v", err, symbology.ErrInvalidLength)
	}
	if _, err := enc.Encode("abc", symbology.Options{"code_set": "A"}); !errors.Is(err, symbology.ErrInvalidCharacter) {
		t.Errorf("lowercase in code set A: got %v, want %v", err, symbology.ErrInvalidCharacter)
	}
	if _, err := enc.Encode("123", symbology.Options{"code_set": "X"}); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("bad code set: got %v, want %v", err, symbology.ErrUnsupportedOption)
	}
}

// --- ITF ---

func TestITFEncode(t *testing.T) {
	sym := encode(t, NewITFEncoder(), "05", nil)
	want := "1010" + "10010110011010" + "11101"
	if got := moduleString(t, sym); got != want {
		t.Errorf("modules:\ngot  %s\nwant %s", got, want)
	}
}

func TestITFCheckDigit(t *testing.T) {
	sym := encode(t, NewITFEncoder(), "4", symbology.Options{"check_digit": "true"})
	if sym.Content != "48" {
		t.Errorf("content: got %q, want %q", sym.Content, "48")
	}
}

func TestITFErrors(t *testing.T) {
	enc := NewITFEncoder()
	if _, err := enc.Encode("123", nil); !errors.Is(err, symbology.ErrInvalidLength) {
		t.Errorf("odd digits: got %v, want %v", err, symbology.ErrInvalidLength)
	}
	if _, err := enc.Encode("12AB", nil); !errors.Is(err, symbology.ErrInvalidCharacter) {
		t.Errorf("non-digit: got %v, want %v", err, symbology.ErrInvalidCharacter)
	}
}

// --- Codabar ---

func TestCodabarEncode(t *testing.T) {
	sym := encode(t, NewCodabarEncoder(), "123", nil)
	if sym.Content != "A123A" {
		t.Errorf("content: got %q, want %q", sym.Content, "A123A")
	}
	want := "1011001001" + "0" + "101011001" + "0" + "101001011" + "0" + "110010101" + "0" + "1011001001"
	if got := moduleString(t, sym); got != want {
		t.Errorf("modules:\ngot  %s\nwant %s", got, want)
	}
}

func TestCodabarGuards(t *testing.T) {
	tests := []struct {
		contents string
		want     string
	}{
		{"123", "A123A"},
		{"B123C", "B123C"},
		{"b123c", "B123C"},
		{"T123N", "A123B"},
		{"*123E", "C123D"},
	}
	enc := NewCodabarEncoder()
	for _, tc := range tests {
		t.Run(tc.contents, func(t *testing.T) {
			sym := encode(t, enc, tc.contents, nil)
			if sym.Content != tc.want {
				t.Errorf("content: got %q, want %q", sym.Content, tc.want)
			}
		})
	}
}

func TestCodabarErrors(t *testing.T) {
	enc := NewCodabarEncoder()
	if _, err := enc.Encode("A123", nil); !errors.Is(err, symbology.ErrInvalidCharacter) {
		t.Errorf("lone start guard: got %v, want %v", err, symbology.ErrInvalidCharacter)
	}
	if _, err := enc.Encode("A1B3A", nil); !errors.Is(err, symbology.ErrInvalidCharacter) {
		t.Errorf("guard inside payload: got %v, want %v", err, symbology.ErrInvalidCharacter)
	}
	if _, err := enc.Encode("12!34", nil); !errors.Is(err, symbology.ErrInvalidCharacter) {
		t.Errorf("bad character: got %v, want %v", err, symbology.ErrInvalidCharacter)
	}
}

// --- determinism across all linear encoders ---

func TestLinearEncodeDeterministic(t *testing.T) {
	tests := []struct {
		id       symbology.SymbologyID
		contents string
	}{
		{symbology.EAN13, "590123412345"},
		{symbology.EAN8, "9638507"},
		{symbology.UPCA, "03600029145"},
		{symbology.UPCE, "0123456"},
		{symbology.Code39, "HELLO"},
		{symbology.Code93, "WORLD"},
		{symbology.Code128, "Hello-123"},
		{symbology.ITF, "123456"},
		{symbology.Codabar, "A40156B"},
	}
	for _, tc := range tests {
		t.Run(tc.id.String(), func(t *testing.T) {
			first, err := symbology.Encode(tc.id, tc.contents, nil)
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}
			second, err := symbology.Encode(tc.id, tc.contents, nil)
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}
			if moduleString(t, first) != moduleString(t, second) {
				t.Error("same input produced different modules")
			}
			if first.Kind != symbology.KindLinear {
				t.Errorf("kind: got %v, want %v", first.Kind, symbology.KindLinear)
			}
		})
	}
}
