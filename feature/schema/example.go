package schema

import (
	_ "embed"
)

var (
	//go:embed example.xml
	exampleXML []byte
	//go:embed example.yaml
	exampleYAML []byte
)

// Example returns a sample document in the given format.
func Example(format Format) ([]byte, error) {
	switch format {
	case FormatXML:
		return exampleXML, nil
	case FormatYAML:
		return exampleYAML, nil
	default:
		f, err := ParseFormat(string(format))
		if err != nil {
			return nil, err
		}
		return Example(f)
	}
}
