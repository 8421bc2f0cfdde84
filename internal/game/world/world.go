// Package world holds the objects being viewed and the path they follow.
package world

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objcurve/internal/config"
	"github.com/Faultbox/objcurve/internal/loader"
	"github.com/Faultbox/objcurve/pkg/curve"
)

// Transform is an object's placement in the world.
type Transform struct {
	Position mgl32.Vec3
	Scale    float32
	Degrees  float32
	Axis     mgl32.Vec3 // zero for no rotation
}

// Matrix returns T * S * R.
func (t Transform) Matrix() mgl32.Mat4 {
	return translate(t.Position).Mul4(uniformScale(t.Scale)).Mul4(rotate(mgl32.DegToRad(t.Degrees), t.Axis))
}

func translate(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v[0], v[1], v[2])
}

func uniformScale(s float32) mgl32.Mat4 {
	return mgl32.Scale3D(s, s, s)
}

// rotate returns the identity for a zero axis or angle.
func rotate(radians float32, axis mgl32.Vec3) mgl32.Mat4 {
	if radians == 0 || axis.Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(radians, axis.Normalize())
}

// Object is one mesh placed in the world.
type Object struct {
	Name        string
	MoveKey     int // curve binding digit, -1 for none
	Base        Transform
	Mesh        loader.Mesh
	Material    loader.Material
	TexturePath string // "" when untextured
}

// Pose is the interactive state applied on top of an object's base transform.
type Pose struct {
	Offset  mgl32.Vec3
	Scale   float32
	Spin    mgl32.Vec3 // axis spun around at one radian per second; zero for none
	Seconds float32
	OnPath  bool
}

// World is the set of objects and the sampled path.
type World struct {
	Objects []*Object

	path *curve.Bezier
	step int
}

// HasPath reports whether a generated path is available.
func (w *World) HasPath() bool {
	return w.path != nil && w.path.Generated() && w.path.NumCurvePoints() > 0
}

// Path returns the curve, or nil when none was loaded.
func (w *World) Path() *curve.Bezier {
	return w.path
}

// Step returns the current path sample index.
func (w *World) Step() int {
	return w.step
}

// PathPoint returns the sample at the current step, or the origin without a path.
func (w *World) PathPoint() mgl32.Vec3 {
	if !w.HasPath() {
		return mgl32.Vec3{}
	}
	return w.path.PointOnCurve(w.step)
}

// Advance moves to the next sample, wrapping to the start after the last one.
func (w *World) Advance() {
	if !w.HasPath() {
		return
	}
	w.step = (w.step + 1) % w.path.NumCurvePoints()
}

// ModelMatrix composes obj's model matrix for this frame:
// T(position+offset) * S(scale) * R(base) * T(path point) * R(spin).
func (w *World) ModelMatrix(obj *Object, p Pose) mgl32.Mat4 {
	scale := obj.Base.Scale * p.Scale
	m := translate(obj.Base.Position.Add(p.Offset)).
		Mul4(uniformScale(scale)).
		Mul4(rotate(mgl32.DegToRad(obj.Base.Degrees), obj.Base.Axis))

	if p.OnPath && w.HasPath() {
		m = m.Mul4(translate(w.PathPoint()))
	}
	return m.Mul4(rotate(p.Seconds, p.Spin))
}

// Build loads every object and the curve described by scene.
// Under the strict policy the first load failure is returned; otherwise
// broken pieces are logged and left out.
func Build(scene config.SceneConfig, ld *loader.Loader, log *zap.Logger) (*World, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{}

	for i, oc := range scene.Objects {
		obj, err := buildObject(oc, ld)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, oc.Name, err)
		}
		w.Objects = append(w.Objects, obj)
		log.Info("object loaded",
			zap.String("name", obj.Name),
			zap.Int("vertices", obj.Mesh.VertexCount()),
			zap.Int("move_key", obj.MoveKey),
			zap.String("texture", obj.TexturePath))
	}

	if scene.Curve.File == "" {
		return w, nil
	}

	path, err := buildPath(scene.Curve, ld)
	if err != nil {
		if ld.Policy() == loader.PolicyStrict {
			return nil, err
		}
		log.Warn("curve disabled", zap.String("path", scene.Curve.File), zap.Error(err))
		return w, nil
	}
	w.path = path
	log.Info("curve generated",
		zap.String("path", scene.Curve.File),
		zap.Int("segments", path.SegmentCount()),
		zap.Int("samples", path.NumCurvePoints()))
	return w, nil
}

func buildObject(oc config.ObjectConfig, ld *loader.Loader) (*Object, error) {
	obj := &Object{
		Name:    oc.Name,
		MoveKey: oc.MoveKey,
		Base: Transform{
			Position: mgl32.Vec3(oc.Position),
			Scale:    oc.Scale,
			Degrees:  oc.Rotate.Degrees,
			Axis:     mgl32.Vec3(oc.Rotate.Axis),
		},
	}
	if obj.Name == "" {
		obj.Name = strings.TrimSuffix(filepath.Base(oc.Mesh), filepath.Ext(oc.Mesh))
	}
	if obj.Base.Scale == 0 {
		obj.Base.Scale = 1
	}

	var err error
	if oc.Color != nil {
		obj.Mesh, err = ld.ParseMeshColor(oc.Mesh, *oc.Color)
	} else {
		obj.Mesh, err = ld.ParseMesh(oc.Mesh)
	}
	if err != nil {
		return nil, err
	}

	def := loader.Coefficients{Ka: oc.Defaults.Ka, Kd: oc.Defaults.Kd, Ks: oc.Defaults.Ks, Q: oc.Defaults.Ns}
	if obj.Material, err = ld.LoadMaterial(oc.Material, def); err != nil {
		return nil, err
	}

	obj.TexturePath = obj.Material.TexturePath
	if oc.Texture != "" {
		obj.TexturePath = oc.Texture
	}
	return obj, nil
}

// ErrNoPath is returned when the curve file yields no usable path.
var ErrNoPath = errors.New("no usable path")

func buildPath(cc config.CurveConfig, ld *loader.Loader) (*curve.Bezier, error) {
	points, err := ld.ParseControlPoints(cc.File)
	if err != nil {
		return nil, err
	}

	b := &curve.Bezier{}
	b.SetControlPoints(points)
	if err := b.Generate(cc.Resolution); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoPath, cc.File, err)
	}
	return b, nil
}
