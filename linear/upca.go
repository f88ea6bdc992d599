package linear

import "github.com/glyphworks/symbology"

// UPCAEncoder encodes UPC-A barcodes from 11 data digits. UPC-A is EAN-13
// with a leading zero, so layout delegates to the EAN-13 tables.
type UPCAEncoder struct{}

// NewUPCAEncoder creates a new UPC-A encoder.
func NewUPCAEncoder() *UPCAEncoder {
	return &UPCAEncoder{}
}

// Encode encodes 11 data digits, appending the modulo-10 check digit.
func (e *UPCAEncoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check(); err != nil {
		return nil, err
	}
	full, err := appendCheckDigit(symbology.UPCA, contents, 11)
	if err != nil {
		return nil, err
	}
	return symbology.NewLinearSymbol(symbology.UPCA, full, ean13Modules("0"+full), quietZone), nil
}
