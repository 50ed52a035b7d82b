package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// Marshal encodes m the way npm writes package.json: two-space indent,
// no HTML escaping, trailing newline.
func Marshal(m *PackageJSON) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes package.json bytes.
func Parse(data []byte) (*PackageJSON, error) {
	var m PackageJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	return &m, nil
}

// ParseFile reads and decodes the package.json at path.
func ParseFile(fsys afero.Fs, path string) (*PackageJSON, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func readFile(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
