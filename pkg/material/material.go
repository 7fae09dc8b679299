package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material holds the Phong and global-illumination coefficients of a surface.
// Every coefficient is per channel in [0,1]. The zero value is fully opaque
// and absorptive.
type Material struct {
	KD        core.Vec3 // Diffuse reflectance
	KS        core.Vec3 // Specular reflectance
	KT        core.Vec3 // Transparency (refraction and shadow transmittance)
	KR        core.Vec3 // Mirror reflection
	Shininess int       // Specular exponent
}

// NewPhong creates an opaque material with uniform diffuse/specular coefficients
func NewPhong(kd, ks float64, shininess int) Material {
	return Material{
		KD:        core.Gray(kd),
		KS:        core.Gray(ks),
		Shininess: shininess,
	}
}

// NewMirror creates a purely reflective material
func NewMirror(kr float64) Material {
	return Material{KR: core.Gray(kr)}
}

// WithTransparency returns a copy of m with the given transparency
func (m Material) WithTransparency(kt core.Vec3) Material {
	m.KT = kt
	return m
}

// WithReflection returns a copy of m with the given mirror reflectance
func (m Material) WithReflection(kr core.Vec3) Material {
	m.KR = kr
	return m
}

// IsOpaque reports whether no light passes through the surface
func (m Material) IsOpaque() bool {
	return m.KT.IsZero()
}
