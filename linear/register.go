package linear

import "github.com/glyphworks/symbology"

func init() {
	symbology.Register(&symbology.Spec{
		ID:        symbology.EAN13,
		Kind:      symbology.KindLinear,
		Charset:   symbology.CharsetNumeric,
		MinLength: 12,
		MaxLength: 12,
		Checksum:  "mod10",
		New:       func() symbology.Encoder { return NewEAN13Encoder() },
	})
	symbology.Register(&symbology.Spec{
		ID:        symbology.EAN8,
		Kind:      symbology.KindLinear,
		Charset:   symbology.CharsetNumeric,
		MinLength: 7,
		MaxLength: 7,
		Checksum:  "mod10",
		New:       func() symbology.Encoder { return NewEAN8Encoder() },
	})
	symbology.Register(&symbology.Spec{
		ID:        symbology.UPCA,
		Kind:      symbology.KindLinear,
		Charset:   symbology.CharsetNumeric,
		MinLength: 11,
		MaxLength: 11,
		Checksum:  "mod10",
		New:       func() symbology.Encoder { return NewUPCAEncoder() },
	})
	symbology.Register(&symbology.Spec{
		ID:        symbology.UPCE,
		Kind:      symbology.KindLinear,
		Charset:   symbology.CharsetNumeric,
		MinLength: 7,
		MaxLength: 7,
		Checksum:  "mod10",
		New:       func() symbology.Encoder { return NewUPCEEncoder() },
	})
	symbology.Register(&symbology.Spec{
		ID:      symbology.Code39,
		Kind:    symbology.KindLinear,
		Charset: symbology.CharsetByte,
		New:     func() symbology.Encoder { return NewCode39Encoder() },
	})
	symbology.Register(&symbology.Spec{
		ID:      symbology.Code93,
		Kind:    symbology.KindLinear,
		Charset: symbology.CharsetByte,
		New:     func() symbology.Encoder { return NewCode93Encoder() },
	})
	symbology.Register(&symbology.Spec{
		ID:       symbology.Code128,
		Kind:     symbology.KindLinear,
		Charset:  symbology.CharsetByte,
		Checksum: "mod103",
		New:      func() symbology.Encoder { return NewCode128Encoder() },
	})
	symbology.Register(&symbology.Spec{
		ID:      symbology.ITF,
		Kind:    symbology.KindLinear,
		Charset: symbology.CharsetNumeric,
		New:     func() symbology.Encoder { return NewITFEncoder() },
	})
	symbology.Register(&symbology.Spec{
		ID:       symbology.Codabar,
		Kind:     symbology.KindLinear,
		Charset:  symbology.CharsetAlphabet,
		Alphabet: CodabarAlphabet + "abcdTN*Etne",
		New:      func() symbology.Encoder { return NewCodabarEncoder() },
	})
}
