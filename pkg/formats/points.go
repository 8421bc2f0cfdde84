// Control point list parser ("x,y,z" per line).
package formats

import (
	"io"
	"strings"
)

// ParseControlPoints parses one comma-separated x,y,z point per line.
// Blank lines are skipped. Fields beyond the third are ignored.
func ParseControlPoints(r io.Reader, source string, onError ErrorHandler) ([][3]float32, error) {
	s := newLineScanner(r, source, onError)
	var points [][3]float32

	for {
		line, ok := s.next()
		if !ok {
			break
		}

		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			if err := s.report(malformed(s.line, "control point needs x,y,z, got %q", line)); err != nil {
				return nil, err
			}
			continue
		}

		vals, err := parseFloats(fields[:3])
		if err != nil {
			pe := malformed(s.line, "control point %q", line)
			pe.Err = err
			if err := s.report(pe); err != nil {
				return nil, err
			}
			continue
		}
		points = append(points, [3]float32{vals[0], vals[1], vals[2]})
	}

	if err := s.err(); err != nil {
		return nil, err
	}
	return points, nil
}

// ParseControlPointsFile parses a control point file from disk.
func ParseControlPointsFile(path string, onError ErrorHandler) ([][3]float32, error) {
	f, err := openAsset(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseControlPoints(f, path, onError)
}
