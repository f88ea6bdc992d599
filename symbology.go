// Package symbology is a barcode and 2D code encoding engine.
//
// Each symbology family lives in its own package and registers itself with
// the root registry from init. Import the families you need (or the all
// package) and call Encode.
package symbology

import "strings"

// SymbologyID identifies a supported symbology.
type SymbologyID int

const (
	EAN13 SymbologyID = iota
	EAN8
	UPCA
	UPCE
	Code39
	Code93
	Code128
	ITF
	Codabar
	QR
	DataMatrix
	Aztec
)

// String returns the name of the symbology.
func (id SymbologyID) String() string {
	switch id {
	case EAN13:
		return "EAN_13"
	case EAN8:
		return "EAN_8"
	case UPCA:
		return "UPC_A"
	case UPCE:
		return "UPC_E"
	case Code39:
		return "CODE_39"
	case Code93:
		return "CODE_93"
	case Code128:
		return "CODE_128"
	case ITF:
		return "ITF"
	case Codabar:
		return "CODABAR"
	case QR:
		return "QR_CODE"
	case DataMatrix:
		return "DATA_MATRIX"
	case Aztec:
		return "AZTEC"
	default:
		return "UNKNOWN"
	}
}

// ParseID resolves a symbology name. Matching ignores case, hyphens,
// underscores, and spaces, so "EAN-13", "ean_13", and "ean13" are the same.
func ParseID(name string) (SymbologyID, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "ean13":
		return EAN13, nil
	case "ean8":
		return EAN8, nil
	case "upca":
		return UPCA, nil
	case "upce":
		return UPCE, nil
	case "code39":
		return Code39, nil
	case "code93":
		return Code93, nil
	case "code128":
		return Code128, nil
	case "itf", "interleaved2of5":
		return ITF, nil
	case "codabar":
		return Codabar, nil
	case "qr", "qrcode":
		return QR, nil
	case "datamatrix":
		return DataMatrix, nil
	case "aztec":
		return Aztec, nil
	}
	return 0, wrapUnknown(name)
}

// Kind distinguishes one-dimensional from matrix symbologies.
type Kind int

const (
	KindLinear Kind = iota
	KindMatrix
)

// String returns the name of the kind.
func (k Kind) String() string {
	if k == KindMatrix {
		return "MATRIX"
	}
	return "LINEAR"
}

// Charset classifies the payload characters a symbology accepts.
type Charset int

const (
	// CharsetNumeric accepts ASCII digits only.
	CharsetNumeric Charset = iota
	// CharsetAlphabet accepts the characters listed in Spec.Alphabet.
	CharsetAlphabet
	// CharsetByte accepts any byte sequence.
	CharsetByte
)

// Spec describes a registered symbology. Specs are immutable after
// registration.
type Spec struct {
	ID   SymbologyID
	Kind Kind

	// Charset and Alphabet define the accepted payload characters.
	// Alphabet is consulted only when Charset is CharsetAlphabet.
	Charset  Charset
	Alphabet string

	// MinLength and MaxLength bound the payload length in characters.
	// A MaxLength of zero means the length is bounded by symbol capacity
	// rather than a fixed count.
	MinLength int
	MaxLength int

	// Checksum names the check character rule applied by the encoder,
	// or is empty when the symbology carries none.
	Checksum string

	// New creates an encoder for this symbology.
	New func() Encoder
}

// Encoder encodes a validated payload into a symbol.
type Encoder interface {
	Encode(contents string, opts Options) (*Symbol, error)
}
