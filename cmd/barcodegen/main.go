package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/render"

	// Register all symbology encoders.
	_ "github.com/glyphworks/symbology/all"
)

func main() {
	output := flag.String("o", "barcode", "output filename; the format extension is appended when missing")
	format := flag.String("format", "", "output format, png or svg (default png)")
	options := flag.String("options", "", "symbology options as key=value pairs, comma separated")
	config := flag.String("config", "", "YAML render config file")
	listTypes := flag.Bool("list-types", false, "list supported symbologies and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: barcodegen [flags] <data> <type>\n\n")
		fmt.Fprintf(os.Stderr, "Generate a barcode or 2D code image from data.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  barcodegen \"ABC123\" code128\n")
		fmt.Fprintf(os.Stderr, "  barcodegen \"https://example.com\" qr -o website -format svg\n")
		fmt.Fprintf(os.Stderr, "  barcodegen \"Document 12345\" aztec -options \"ec_percent=50\"\n")
	}
	flag.Parse()

	if *listTypes {
		printTypes()
		return
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Arg(1), *output, *format, *options, *config); err != nil {
		fmt.Fprintf(os.Stderr, "barcodegen: %v\n", err)
		os.Exit(1)
	}
}

func run(data, typeName, output, format, options, configPath string) error {
	id, err := symbology.ParseID(typeName)
	if err != nil {
		return err
	}

	renderOpts := render.DefaultOptions()
	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return err
		}
		renderOpts, err = render.ReadConfig(raw)
		if err != nil {
			return err
		}
	}
	if format != "" {
		renderOpts.Format = format
	}

	encodeOpts := symbology.Options{}
	for key, value := range renderOpts.SymbologyOptions {
		encodeOpts[key] = value
	}
	if options != "" {
		parsed, err := parseOptions(options)
		if err != nil {
			return err
		}
		for key, value := range parsed {
			encodeOpts[key] = value
		}
	}

	sym, err := symbology.Encode(id, data, encodeOpts)
	if err != nil {
		return err
	}

	out, err := render.Render(sym, renderOpts)
	if err != nil {
		return err
	}

	path := output
	if ext := "." + renderOpts.Format; !strings.HasSuffix(path, ext) {
		path += ext
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s symbol written to %s (%dx%d modules)\n", sym.ID, path, sym.Width(), sym.Height())
	return nil
}

// parseOptions splits "key=value,key=value" pairs; a bare key becomes
// "true".
func parseOptions(s string) (map[string]string, error) {
	opts := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid option %q", pair)
		}
		if !found {
			value = "true"
		}
		opts[key] = strings.TrimSpace(value)
	}
	return opts, nil
}

func printTypes() {
	fmt.Println("Supported symbologies:")
	for _, spec := range symbology.Symbologies() {
		constraint := ""
		switch {
		case spec.Charset == symbology.CharsetNumeric && spec.MinLength == spec.MaxLength && spec.MaxLength > 0:
			constraint = fmt.Sprintf(", %d digits", spec.MinLength)
		case spec.Charset == symbology.CharsetNumeric:
			constraint = ", digits only"
		case spec.Charset == symbology.CharsetAlphabet:
			constraint = ", restricted alphabet"
		}
		fmt.Printf("  %-12s %s%s\n", spec.ID, spec.Kind, constraint)
	}
}
