// OBJ (Wavefront) parser for the restricted triangle-only dialect.
package formats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJFloatsPerVertex is the interleaved stride: position(3) color(3) texcoord(2) normal(3).
const OBJFloatsPerVertex = 11

// Attribute offsets inside one interleaved vertex, in floats.
const (
	OBJPositionOffset = 0
	OBJColorOffset    = 3
	OBJTexCoordOffset = 6
	OBJNormalOffset   = 8
)

// DefaultVertexColor is the color written into every vertex unless overridden.
var DefaultVertexColor = [3]float32{0.1, 0.1, 0.1}

// OBJVertex is one fully resolved face corner.
type OBJVertex struct {
	Position [3]float32
	Color    [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// OBJFace is a triangle with its three corners resolved from the attribute tables.
type OBJFace struct {
	Corners [3]OBJVertex
}

// OBJ holds a parsed mesh. Positions, TexCoords and Normals are the
// deduplicated attribute tables; Faces hold per-corner copies.
type OBJ struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []OBJFace
}

// OBJOptions controls OBJ parsing.
type OBJOptions struct {
	// Source names the input in error messages.
	Source string
	// Color is written into every vertex.
	Color [3]float32
	// OnError handles recoverable record errors. Nil fails on the first one.
	OnError ErrorHandler
}

// DefaultOBJOptions returns fail-fast options with the default vertex color.
func DefaultOBJOptions() OBJOptions {
	return OBJOptions{Color: DefaultVertexColor}
}

// VertexCount returns the number of emitted vertices (3 per face).
func (o *OBJ) VertexCount() int {
	return len(o.Faces) * 3
}

// Interleave flattens every face corner, in face order, into one float buffer
// with OBJFloatsPerVertex floats per vertex.
func (o *OBJ) Interleave() []float32 {
	buf := make([]float32, 0, len(o.Faces)*3*OBJFloatsPerVertex)
	for i := range o.Faces {
		for _, c := range o.Faces[i].Corners {
			buf = append(buf,
				c.Position[0], c.Position[1], c.Position[2],
				c.Color[0], c.Color[1], c.Color[2],
				c.TexCoord[0], c.TexCoord[1],
				c.Normal[0], c.Normal[1], c.Normal[2],
			)
		}
	}
	return buf
}

// ParseOBJ parses an OBJ stream.
// Only v, vt, vn and triangular f records with v/vt/vn triples are understood;
// other record tags are ignored.
func ParseOBJ(r io.Reader, opts OBJOptions) (*OBJ, error) {
	s := newLineScanner(r, opts.Source, opts.OnError)
	obj := &OBJ{}

	for {
		line, ok := s.next()
		if !ok {
			break
		}
		fields := strings.Fields(line)

		var perr *ParseError
		switch fields[0] {
		case "v":
			var p [3]float32
			if perr = parseVec(fields, p[:], s.line); perr == nil {
				obj.Positions = append(obj.Positions, p)
			}
		case "vt":
			var t [2]float32
			if perr = parseVec(fields, t[:], s.line); perr == nil {
				obj.TexCoords = append(obj.TexCoords, t)
			}
		case "vn":
			var n [3]float32
			if perr = parseVec(fields, n[:], s.line); perr == nil {
				obj.Normals = append(obj.Normals, n)
			}
		case "f":
			var face OBJFace
			if face, perr = obj.resolveFace(fields, opts.Color, s.line); perr == nil {
				obj.Faces = append(obj.Faces, face)
			}
		}

		if perr != nil {
			if err := s.report(perr); err != nil {
				return nil, err
			}
		}
	}

	if err := s.err(); err != nil {
		return nil, err
	}
	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string, opts OBJOptions) (*OBJ, error) {
	f, err := openAsset(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if opts.Source == "" {
		opts.Source = path
	}
	return ParseOBJ(f, opts)
}

// parseVec fills dst from the numeric fields following the record tag.
// Extra trailing fields are ignored.
func parseVec(fields []string, dst []float32, line int) *ParseError {
	if len(fields)-1 < len(dst) {
		return malformed(line, "%q record needs %d values, got %d", fields[0], len(dst), len(fields)-1)
	}
	vals, err := parseFloats(fields[1 : 1+len(dst)])
	if err != nil {
		pe := malformed(line, "%q record", fields[0])
		pe.Err = err
		return pe
	}
	copy(dst, vals)
	return nil
}

// resolveFace parses a triangular face and looks up its corners.
func (o *OBJ) resolveFace(fields []string, color [3]float32, line int) (OBJFace, *ParseError) {
	var face OBJFace
	if len(fields) != 4 {
		return face, malformed(line, "face must have exactly 3 vertices, got %d", len(fields)-1)
	}

	for i, triple := range fields[1:] {
		vi, ti, ni, perr := parseTriple(triple, line)
		if perr != nil {
			return face, perr
		}

		pos, perr := lookup(o.Positions, vi, "position", line)
		if perr != nil {
			return face, perr
		}
		tex, perr := lookup(o.TexCoords, ti, "texcoord", line)
		if perr != nil {
			return face, perr
		}
		nrm, perr := lookup(o.Normals, ni, "normal", line)
		if perr != nil {
			return face, perr
		}

		face.Corners[i] = OBJVertex{
			Position: pos,
			Color:    color,
			TexCoord: tex,
			Normal:   nrm,
		}
	}
	return face, nil
}

// parseTriple splits "v/vt/vn" into three 1-based indices. All parts are required.
func parseTriple(s string, line int) (v, t, n int, perr *ParseError) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, malformed(line, "face corner %q is not v/vt/vn", s)
	}

	var idx [3]int
	for i, p := range parts {
		val, err := strconv.Atoi(p)
		if err != nil {
			pe := malformed(line, "face corner %q", s)
			pe.Err = err
			return 0, 0, 0, pe
		}
		idx[i] = val
	}
	return idx[0], idx[1], idx[2], nil
}

// lookup resolves a 1-based index into table with bounds checking.
func lookup[T any](table []T, index int, what string, line int) (T, *ParseError) {
	var zero T
	if index < 1 || index > len(table) {
		return zero, &ParseError{
			Kind: KindIndexOutOfRange,
			Line: line,
			Msg:  fmt.Sprintf("%s index %d (have %d)", what, index, len(table)),
		}
	}
	return table[index-1], nil
}
