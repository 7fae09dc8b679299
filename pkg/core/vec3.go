package core

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by IsZero and AlignZero
const Epsilon = 1e-10

// IsZero reports whether x is within Epsilon of zero
func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// AlignZero snaps values within Epsilon of zero to exactly zero
func AlignZero(x float64) float64 {
	if IsZero(x) {
		return 0
	}
	return x
}

// Vec3 represents a 3D point, vector or RGB color
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 represents a 2D sample value
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// UnitVector normalizes a direction, rejecting vectors within Epsilon of zero
func UnitVector(v Vec3) (Vec3, error) {
	if v.IsNearZero() {
		return Vec3{}, fmt.Errorf("zero vector %v: %w", v, ErrInvalidGeometry)
	}
	return v.Normalize(), nil
}

// Gray returns a color with the same value in every channel
func Gray(value float64) Vec3 {
	return Vec3{value, value, value}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Distance returns the distance between two points
func (v Vec3) Distance(other Vec3) float64 {
	return v.Subtract(other).Length()
}

// DistanceSquared returns the squared distance between two points
func (v Vec3) DistanceSquared(other Vec3) float64 {
	return v.Subtract(other).LengthSquared()
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself; callers check IsZero.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// IsZero reports whether every component is exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsNearZero reports whether every component is within Epsilon of zero
func (v Vec3) IsNearZero() bool {
	return IsZero(v.X) && IsZero(v.Y) && IsZero(v.Z)
}

// LowerThan reports whether every component is below k.
// Used for attenuation cutoffs on per-channel coefficients.
func (v Vec3) LowerThan(k float64) bool {
	return v.X < k && v.Y < k && v.Z < k
}

// FindOrthogonal returns a unit vector perpendicular to v
func (v Vec3) FindOrthogonal() Vec3 {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)

	// Cross with the axis v is least aligned with
	var axis Vec3
	switch {
	case ax <= ay && ax <= az:
		axis = NewVec3(1, 0, 0)
	case ay <= az:
		axis = NewVec3(0, 1, 0)
	default:
		axis = NewVec3(0, 0, 1)
	}
	return v.Cross(axis).Normalize()
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// GammaCorrect applies gamma correction to color values
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	invGamma := 1.0 / gamma
	return Vec3{
		X: math.Pow(v.X, invGamma),
		Y: math.Pow(v.Y, invGamma),
		Z: math.Pow(v.Z, invGamma),
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
