// Package loader reads meshes, materials and control points for the viewer.
//
// It fronts the pure parsers in pkg/formats with asset lookup and an error
// policy: lenient loading logs and skips bad input, strict loading stops at the
// first problem.
package loader

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objcurve/internal/assets"
	"github.com/Faultbox/objcurve/pkg/formats"
)

// Policy selects how the loader reacts to missing files and bad records.
type Policy int

const (
	// PolicyLenient warns once per problem and carries on with what it has.
	PolicyLenient Policy = iota
	// PolicyStrict returns the first problem as a *formats.ParseError.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// Mesh is a flat, non-indexed vertex buffer ready for upload.
type Mesh struct {
	Path   string
	Buffer []float32
}

// FloatCount returns the number of floats in the buffer.
func (m Mesh) FloatCount() int {
	return len(m.Buffer)
}

// VertexCount returns the number of vertices in the buffer.
func (m Mesh) VertexCount() int {
	return len(m.Buffer) / formats.OBJFloatsPerVertex
}

// Loader loads text assets through an asset manager.
type Loader struct {
	assets *assets.Manager
	log    *zap.Logger
	policy Policy
}

// New creates a loader. A nil logger discards diagnostics.
func New(am *assets.Manager, log *zap.Logger, policy Policy) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if am == nil {
		am = assets.NewManager()
	}
	return &Loader{assets: am, log: log, policy: policy}
}

// Policy returns the loader's error policy.
func (l *Loader) Policy() Policy {
	return l.policy
}

// Logger returns the logger diagnostics are written to.
func (l *Loader) Logger() *zap.Logger {
	return l.log
}

// Assets returns the manager used for lookups.
func (l *Loader) Assets() *assets.Manager {
	return l.assets
}

// ParseMesh loads an OBJ file with the default vertex color.
func (l *Loader) ParseMesh(path string) (Mesh, error) {
	return l.ParseMeshColor(path, formats.DefaultVertexColor)
}

// ParseMeshColor loads an OBJ file, writing color into every vertex.
func (l *Loader) ParseMeshColor(path string, color [3]float32) (Mesh, error) {
	mesh := Mesh{Path: path}

	data, ok, err := l.read(path)
	if !ok {
		return mesh, err
	}

	obj, err := formats.ParseOBJ(bytes.NewReader(data), formats.OBJOptions{
		Source:  path,
		Color:   color,
		OnError: l.onError(),
	})
	if err != nil {
		return mesh, err
	}

	mesh.Buffer = obj.Interleave()
	l.log.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("faces", len(obj.Faces)),
		zap.Int("vertices", mesh.VertexCount()))
	return mesh, nil
}

// ParseMaterial loads an MTL file as raw key/value properties.
// A missing file yields empty properties under the lenient policy.
func (l *Loader) ParseMaterial(path string) (formats.MTLProperties, error) {
	data, ok, err := l.read(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return formats.MTLProperties{}, nil
	}

	props, err := formats.ParseMTL(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	l.log.Debug("material loaded", zap.String("path", path), zap.Int("keys", len(props)))
	return props, nil
}

// ParseControlPoints loads a comma-separated control point file.
func (l *Loader) ParseControlPoints(path string) ([]mgl32.Vec3, error) {
	data, ok, err := l.read(path)
	if !ok {
		return nil, err
	}

	raw, err := formats.ParseControlPoints(bytes.NewReader(data), path, l.onError())
	if err != nil {
		return nil, err
	}

	points := make([]mgl32.Vec3, len(raw))
	for i, p := range raw {
		points[i] = mgl32.Vec3(p)
	}
	l.log.Debug("control points loaded", zap.String("path", path), zap.Int("count", len(points)))
	return points, nil
}

// TexturePath locates the diffuse map named by a material. The map is looked
// up next to the MTL file first, then as given. It returns "" when the
// material names no map.
func (l *Loader) TexturePath(mtlPath string, props formats.MTLProperties) string {
	name := props.DiffuseMap()
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}

	sibling := filepath.Join(filepath.Dir(mtlPath), name)
	if _, err := l.assets.Resolve(sibling); err == nil {
		return sibling
	}
	return name
}

// read fetches path through the asset manager. ok is false when there is
// nothing to parse; under the lenient policy a missing file is logged once
// and reported with a nil error.
func (l *Loader) read(path string) (data []byte, ok bool, err error) {
	data, err = l.assets.Load(path)
	if err == nil {
		return data, true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		if l.policy == PolicyStrict {
			return nil, false, &formats.ParseError{Kind: formats.KindFileNotFound, Path: path, Err: err}
		}
		l.log.Warn("asset not found", zap.String("path", path))
		return nil, false, nil
	}
	return nil, false, err
}

// onError returns the record handler for the loader's policy.
func (l *Loader) onError() formats.ErrorHandler {
	if l.policy == PolicyStrict {
		return nil
	}
	return func(pe *formats.ParseError) error {
		l.log.Warn("skipping record",
			zap.String("path", pe.Path),
			zap.Int("line", pe.Line),
			zap.Stringer("kind", pe.Kind),
			zap.String("reason", pe.Msg))
		return nil
	}
}
