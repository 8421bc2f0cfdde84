package loader

import (
	"fmt"

	"github.com/Faultbox/objcurve/pkg/formats"
)

// Coefficients are the Phong lighting terms fed to the shader.
type Coefficients struct {
	Ka float32 // ambient
	Kd float32 // diffuse
	Ks float32 // specular
	Q  float32 // specular exponent (Ns)
}

// DefaultCoefficients are used for terms a material does not set.
var DefaultCoefficients = Coefficients{Ka: 0, Kd: 1.5, Ks: 0, Q: 0}

// Material is a parsed MTL file with coefficients resolved.
type Material struct {
	Path        string
	Props       formats.MTLProperties
	Coeffs      Coefficients
	TexturePath string // "" when the material names no diffuse map
}

// ResolveCoefficients reads Ka, Kd, Ks and Ns from props, falling back to def for
// absent or empty keys. A present but non-numeric value is an error.
func ResolveCoefficients(props formats.MTLProperties, def Coefficients) (Coefficients, error) {
	var c Coefficients
	var err error

	if c.Ka, err = props.Float(formats.MTLAmbient, def.Ka); err != nil {
		return c, err
	}
	if c.Kd, err = props.Float(formats.MTLDiffuse, def.Kd); err != nil {
		return c, err
	}
	if c.Ks, err = props.Float(formats.MTLSpecular, def.Ks); err != nil {
		return c, err
	}
	if c.Q, err = props.Float(formats.MTLShininess, def.Q); err != nil {
		return c, err
	}
	return c, nil
}

// LoadMaterial parses an MTL file and resolves its coefficients and diffuse map.
// An empty path gives a material made only of def.
func (l *Loader) LoadMaterial(path string, def Coefficients) (Material, error) {
	m := Material{Path: path, Props: formats.MTLProperties{}, Coeffs: def}
	if path == "" {
		return m, nil
	}

	props, err := l.ParseMaterial(path)
	if err != nil {
		return m, err
	}
	m.Props = props

	if m.Coeffs, err = ResolveCoefficients(props, def); err != nil {
		return m, fmt.Errorf("material %s: %w", path, err)
	}
	m.TexturePath = l.TexturePath(path, props)
	return m, nil
}
