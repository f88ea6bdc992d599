package symbology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/bitutil"

	// Register all symbology encoders.
	_ "github.com/glyphworks/symbology/all"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name string
		want symbology.SymbologyID
	}{
		{"ean13", symbology.EAN13},
		{"EAN-13", symbology.EAN13},
		{"Ean_13", symbology.EAN13},
		{"upc a", symbology.UPCA},
		{"CODE128", symbology.Code128},
		{"interleaved2of5", symbology.ITF},
		{"qr", symbology.QR},
		{"QR_CODE", symbology.QR},
		{"DataMatrix", symbology.DataMatrix},
		{"aztec", symbology.Aztec},
	}
	for _, tc := range tests {
		id, err := symbology.ParseID(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, id, tc.name)
	}

	_, err := symbology.ParseID("maxicode")
	assert.ErrorIs(t, err, symbology.ErrUnknownSymbology)
}

func TestParseIDRoundTrip(t *testing.T) {
	for _, spec := range symbology.Symbologies() {
		id, err := symbology.ParseID(spec.ID.String())
		require.NoError(t, err, spec.ID)
		assert.Equal(t, spec.ID, id)
	}
}

func TestSymbologiesRegistered(t *testing.T) {
	specs := symbology.Symbologies()
	require.Len(t, specs, 12)
	for i := 1; i < len(specs); i++ {
		assert.Less(t, specs[i-1].ID, specs[i].ID, "registry order")
	}

	spec, err := symbology.Lookup(symbology.EAN13)
	require.NoError(t, err)
	assert.Equal(t, symbology.KindLinear, spec.Kind)
	assert.Equal(t, 12, spec.MinLength)
	assert.Equal(t, 12, spec.MaxLength)

	_, err = symbology.Lookup(symbology.SymbologyID(99))
	assert.ErrorIs(t, err, symbology.ErrUnknownSymbology)
}

func TestValidateLength(t *testing.T) {
	err := symbology.Validate(symbology.EAN13, "59012341234")
	assert.ErrorIs(t, err, symbology.ErrInvalidLength, "11 digits")

	err = symbology.Validate(symbology.EAN13, "5901234123457")
	assert.ErrorIs(t, err, symbology.ErrInvalidLength, "13 digits")

	err = symbology.Validate(symbology.EAN13, "")
	assert.ErrorIs(t, err, symbology.ErrEmptyPayload)

	assert.NoError(t, symbology.Validate(symbology.EAN13, "590123412345"))
}

func TestValidateCharsetAggregates(t *testing.T) {
	// every offending position is reported, not just the first
	err := symbology.Validate(symbology.EAN13, "59x123412z45")
	require.ErrorIs(t, err, symbology.ErrInvalidCharacter)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "position 2")
	assert.Contains(t, err.Error(), "position 9")
}

func TestEncode(t *testing.T) {
	sym, err := symbology.Encode(symbology.EAN13, "590123412345", nil)
	require.NoError(t, err)
	assert.Equal(t, "5901234123457", sym.Content, "check digit appended")
	assert.Equal(t, symbology.KindLinear, sym.Kind)
	assert.Equal(t, 95+2*10, sym.Width(), "95 modules plus quiet zones")

	_, err = symbology.Encode(symbology.SymbologyID(99), "data", nil)
	assert.ErrorIs(t, err, symbology.ErrUnknownSymbology)

	_, err = symbology.Encode(symbology.EAN13, "59012341234X", nil)
	assert.ErrorIs(t, err, symbology.ErrInvalidCharacter)
}

func TestOptions(t *testing.T) {
	opts := symbology.Options{"ec_level": "H", "version": "7"}

	assert.Equal(t, "H", opts.Get("ec_level", "M"))
	assert.Equal(t, "M", opts.Get("missing", "M"))

	n, err := opts.Int("version", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	n, err = opts.Int("missing", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = opts.Int("ec_level", 1)
	assert.ErrorIs(t, err, symbology.ErrUnsupportedOption)

	assert.NoError(t, opts.Check("ec_level", "version", "mask"))
	assert.ErrorIs(t, opts.Check("ec_level"), symbology.ErrUnsupportedOption)

	assert.Equal(t, []string{"ec_level", "version"}, opts.Keys())
}

func TestLinearSymbolRuns(t *testing.T) {
	modules := []bool{true, true, false, true, false, false, false, true}
	sym := symbology.NewLinearSymbol(symbology.Code39, "X", modules, 10)

	assert.Equal(t, []symbology.Run{
		{Width: 2, Filled: true},
		{Width: 1, Filled: false},
		{Width: 1, Filled: true},
		{Width: 3, Filled: false},
		{Width: 1, Filled: true},
	}, sym.Runs)
	assert.Equal(t, modules, sym.Modules())
	assert.Equal(t, len(modules)+20, sym.Width())
	assert.Equal(t, 1, sym.Height())
}

func TestMatrixSymbolGeometry(t *testing.T) {
	grid := bitutil.NewBitMatrix(21)
	sym := symbology.NewMatrixSymbol(symbology.QR, "X", grid, 4)

	assert.Equal(t, 29, sym.Width())
	assert.Equal(t, 29, sym.Height())
	assert.Nil(t, sym.Runs)
	assert.Nil(t, sym.Modules())
}
