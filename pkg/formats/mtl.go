// MTL (material library) key/value parser.
package formats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Well-known MTL keys consumed by the renderer.
const (
	MTLAmbient    = "Ka"
	MTLDiffuse    = "Kd"
	MTLSpecular   = "Ks"
	MTLShininess  = "Ns"
	MTLDiffuseMap = "map_Kd"
)

// MTLProperties maps a material key to the first value token on its line.
// Repeated keys keep the last value.
type MTLProperties map[string]string

// Float returns the coefficient stored under key, or def when absent or empty.
func (p MTLProperties) Float(key string, def float32) (float32, error) {
	v, err := CoerceFloat(p[key], def)
	if err != nil {
		return 0, fmt.Errorf("material key %s: %w", key, err)
	}
	return v, nil
}

// DiffuseMap returns the map_Kd texture path verbatim, or "".
func (p MTLProperties) DiffuseMap() string {
	return p[MTLDiffuseMap]
}

// CoerceFloat parses value as a float32, returning def for an empty string.
// A non-empty value that is not a number is an authoring error and is returned as such.
func CoerceFloat(value string, def float32) (float32, error) {
	if value == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// ParseMTL parses a material stream. The first token of each line is the key,
// the second the value; further tokens are ignored.
func ParseMTL(r io.Reader, source string) (MTLProperties, error) {
	s := newLineScanner(r, source, nil)
	props := make(MTLProperties)

	for {
		line, ok := s.next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		value := ""
		if len(fields) > 1 {
			value = fields[1]
		}
		props[fields[0]] = value
	}

	if err := s.err(); err != nil {
		return nil, err
	}
	return props, nil
}

// ParseMTLFile parses a material file from disk.
func ParseMTLFile(path string) (MTLProperties, error) {
	f, err := openAsset(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseMTL(f, path)
}
