package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/objcurve/internal/assets"
	"github.com/Faultbox/objcurve/internal/config"
	"github.com/Faultbox/objcurve/internal/loader"
	"github.com/Faultbox/objcurve/pkg/curve"
	"github.com/Faultbox/objcurve/pkg/formats"
)

// near compares component-wise with an absolute tolerance.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.ApproxFuncEqual(b, func(x, y float32) bool { return mgl32.Abs(x-y) <= eps })
}

const triangle = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`

const material = `newmtl Card
Ka 0.2 0.2 0.2
Kd 0.8
map_Kd card.png
`

// Four control points: one segment from the origin to (3,0,0).
const line = `0,0,0
1,0,0
2,0,0
3,0,0
`

func setup(t *testing.T, policy loader.Policy, files map[string]string) (*loader.Loader, *observer.ObservedLogs) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	core, logs := observer.New(zapcore.DebugLevel)
	return loader.New(assets.NewManager(dir), zap.New(core), policy), logs
}

func scene(objects ...config.ObjectConfig) config.SceneConfig {
	return config.SceneConfig{
		Curve:   config.CurveConfig{File: "curves.txt", Resolution: 4},
		Objects: objects,
	}
}

func TestBuild(t *testing.T) {
	ld, _ := setup(t, loader.PolicyLenient, map[string]string{
		"card/card.obj": triangle,
		"card/card.mtl": material,
		"card/card.png": "",
		"curves.txt":    line,
	})

	green := [3]float32{0, 1, 0}
	w, err := Build(scene(
		config.ObjectConfig{
			Mesh:     "card/card.obj",
			Material: "card/card.mtl",
			MoveKey:  2,
			Color:    &green,
			Defaults: config.DefaultMaterial(),
		},
		config.ObjectConfig{
			Name:     "plain",
			Mesh:     "card/card.obj",
			Texture:  "override.png",
			MoveKey:  -1,
			Scale:    2,
			Defaults: config.DefaultMaterial(),
		},
	), ld, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(w.Objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(w.Objects))
	}

	card := w.Objects[0]
	if card.Name != "card" {
		t.Errorf("name = %q, want name derived from mesh file", card.Name)
	}
	if card.Base.Scale != 1 {
		t.Errorf("unset scale = %v, want 1", card.Base.Scale)
	}
	if card.Mesh.VertexCount() != 3 {
		t.Errorf("vertices = %d, want 3", card.Mesh.VertexCount())
	}
	if c := card.Mesh.Buffer[formats.OBJColorOffset+1]; c != 1 {
		t.Errorf("vertex green = %v, want 1", c)
	}
	if want := (loader.Coefficients{Ka: 0.2, Kd: 0.8, Ks: 0, Q: 0}); card.Material.Coeffs != want {
		t.Errorf("coefficients = %+v, want %+v", card.Material.Coeffs, want)
	}
	if card.TexturePath != filepath.Join("card", "card.png") {
		t.Errorf("texture = %q", card.TexturePath)
	}

	plain := w.Objects[1]
	if plain.TexturePath != "override.png" {
		t.Errorf("texture override ignored: %q", plain.TexturePath)
	}
	if plain.Material.Coeffs.Kd != 1.5 {
		t.Errorf("default diffuse = %v, want 1.5", plain.Material.Coeffs.Kd)
	}

	if !w.HasPath() {
		t.Fatal("expected a path")
	}
	if w.Path().NumCurvePoints() != 4 {
		t.Errorf("samples = %d, want 4", w.Path().NumCurvePoints())
	}
}

func TestBuild_MissingCurve(t *testing.T) {
	files := map[string]string{"tri.obj": triangle}
	sc := scene(config.ObjectConfig{Mesh: "tri.obj", MoveKey: 1})

	t.Run("lenient", func(t *testing.T) {
		ld, logs := setup(t, loader.PolicyLenient, files)
		w, err := Build(sc, ld, ld.Logger())
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if w.HasPath() {
			t.Error("expected no path")
		}
		if logs.FilterMessage("curve disabled").Len() != 1 {
			t.Errorf("expected one curve disabled warning, got %v", logs.All())
		}
	})

	t.Run("strict", func(t *testing.T) {
		ld, _ := setup(t, loader.PolicyStrict, files)
		_, err := Build(sc, ld, nil)
		if !errors.Is(err, formats.ErrFileNotFound) {
			t.Errorf("expected ErrFileNotFound, got %v", err)
		}
	})

	t.Run("too few points", func(t *testing.T) {
		ld, _ := setup(t, loader.PolicyStrict, map[string]string{
			"tri.obj":    triangle,
			"curves.txt": "0,0,0\n1,1,1\n",
		})
		_, err := Build(sc, ld, nil)
		if !errors.Is(err, ErrNoPath) || !errors.Is(err, curve.ErrNotEnoughControlPoints) {
			t.Errorf("expected ErrNoPath wrapping ErrNotEnoughControlPoints, got %v", err)
		}
	})
}

func TestBuild_BadMesh(t *testing.T) {
	badFace := triangle + "f 1/1/1 2/2/1 9/3/1\n"
	sc := config.SceneConfig{Objects: []config.ObjectConfig{{Mesh: "bad.obj"}}}

	ld, _ := setup(t, loader.PolicyStrict, map[string]string{"bad.obj": badFace})
	if _, err := Build(sc, ld, nil); !errors.Is(err, formats.ErrIndexOutOfRange) {
		t.Errorf("strict: expected ErrIndexOutOfRange, got %v", err)
	}

	ld, _ = setup(t, loader.PolicyLenient, map[string]string{"bad.obj": badFace})
	w, err := Build(sc, ld, nil)
	if err != nil {
		t.Fatalf("lenient: %v", err)
	}
	if got := w.Objects[0].Mesh.VertexCount(); got != 3 {
		t.Errorf("lenient kept %d vertices, want 3", got)
	}
}

func pathWorld(t *testing.T, points ...mgl32.Vec3) *World {
	t.Helper()
	b := &curve.Bezier{}
	b.SetControlPoints(points)
	if err := b.Generate(4); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return &World{path: b}
}

func TestAdvance(t *testing.T) {
	w := pathWorld(t, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 0, 0})

	if w.PathPoint() != (mgl32.Vec3{}) {
		t.Errorf("first point = %v, want origin", w.PathPoint())
	}
	for i := 0; i < 3; i++ {
		w.Advance()
	}
	if !near(w.PathPoint(), mgl32.Vec3{3, 0, 0}, 1e-5) {
		t.Errorf("last point = %v, want 3,0,0", w.PathPoint())
	}
	w.Advance()
	if w.Step() != 0 {
		t.Errorf("step = %d, want wrap to 0", w.Step())
	}

	var empty World
	empty.Advance()
	if empty.HasPath() || empty.PathPoint() != (mgl32.Vec3{}) {
		t.Error("empty world should have no path")
	}
}

func TestModelMatrix(t *testing.T) {
	w := pathWorld(t, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 0, 0})
	w.Advance() // path point (1,0,0)

	obj := &Object{Base: Transform{Position: mgl32.Vec3{1, 2, 3}, Scale: 2}}
	origin := mgl32.Vec4{0, 0, 0, 1}

	tests := []struct {
		name  string
		pose  Pose
		local mgl32.Vec4
		want  mgl32.Vec3
	}{
		{"base", Pose{Scale: 1}, origin, mgl32.Vec3{1, 2, 3}},
		{"offset", Pose{Scale: 1, Offset: mgl32.Vec3{0.1, 0, 0}}, origin, mgl32.Vec3{1.1, 2, 3}},
		{"scaled", Pose{Scale: 0.5}, mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{2, 3, 4}},
		{"on path", Pose{Scale: 1, OnPath: true}, origin, mgl32.Vec3{3, 2, 3}},
		{"spin", Pose{Scale: 1, Spin: mgl32.Vec3{0, 0, 1}, Seconds: mgl32.DegToRad(90)}, mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec3{1, 4, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.ModelMatrix(obj, tt.pose).Mul4x1(tt.local).Vec3()
			if !near(got, tt.want, 1e-5) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{Position: mgl32.Vec3{4.5, -1, 0}, Scale: 1, Degrees: 90, Axis: mgl32.Vec3{0, 0, 2}}
	got := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if want := (mgl32.Vec3{4.5, 0, 0}); !near(got, want, 1e-5) {
		t.Errorf("got %v, want %v", got, want)
	}

	// A zero axis leaves the object unrotated.
	tr.Axis = mgl32.Vec3{}
	got = tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if want := (mgl32.Vec3{5.5, -1, 0}); !near(got, want, 1e-5) {
		t.Errorf("got %v, want %v", got, want)
	}
}
