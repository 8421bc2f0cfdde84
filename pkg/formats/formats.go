// Package formats provides parsers for the plain-text asset formats used by the viewer:
// a restricted Wavefront OBJ dialect, MTL key/value material files and
// comma-separated control-point lists.
package formats

import (
	"path/filepath"
	"strings"
)

// Note: OBJ is implemented in obj.go
// Note: MTL is implemented in mtl.go
// Note: control point lists are implemented in points.go

// Format identifies an asset file type.
type Format int

const (
	FormatUnknown Format = iota
	FormatOBJ
	FormatMTL
	FormatPoints
)

func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatMTL:
		return "mtl"
	case FormatPoints:
		return "points"
	}
	return "unknown"
}

// DetectFormat guesses a file's format from its extension.
// Control point lists have no fixed extension; .txt and .csv are recognized.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ
	case ".mtl":
		return FormatMTL
	case ".txt", ".csv":
		return FormatPoints
	}
	return FormatUnknown
}
