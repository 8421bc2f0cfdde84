package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// maxLineLength bounds a single line of a text asset.
const maxLineLength = 1 << 20

// lineScanner walks a text asset line by line, tracking line numbers and
// routing recoverable errors through an ErrorHandler.
type lineScanner struct {
	sc      *bufio.Scanner
	source  string
	line    int
	onError ErrorHandler
}

func newLineScanner(r io.Reader, source string, onError ErrorHandler) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &lineScanner{sc: sc, source: source, onError: onError}
}

// next returns the next non-blank, non-comment line with surrounding space trimmed.
func (s *lineScanner) next() (string, bool) {
	for s.sc.Scan() {
		s.line++
		text := strings.TrimSpace(s.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return text, true
	}
	return "", false
}

func (s *lineScanner) err() error {
	if err := s.sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", s.sourceName(), err)
	}
	return nil
}

// report stamps location info onto pe and hands it to the error handler.
func (s *lineScanner) report(pe *ParseError) error {
	pe.Path = s.source
	if pe.Line == 0 {
		pe.Line = s.line
	}
	return s.onError.handle(pe)
}

func (s *lineScanner) sourceName() string {
	if s.source == "" {
		return "<input>"
	}
	return s.source
}

// parseFloats parses every string in fields as a float32.
func parseFloats(fields []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// openAsset opens path, mapping a missing file to a KindFileNotFound ParseError.
func openAsset(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ParseError{Kind: KindFileNotFound, Path: path, Err: err}
		}
		return nil, err
	}
	return f, nil
}
