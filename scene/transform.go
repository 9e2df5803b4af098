package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var axisZ = mgl64.Vec3{0, 0, 1}

// Transform is a translation, rotation and scale, applied scale first
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Matrix returns T * R * S
func (t Transform) Matrix() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

// RotationZ builds a rotation of degrees around the screen-perpendicular axis
func RotationZ(degrees float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), axisZ)
}

// EulerZ returns the Z euler angle of q in degrees, in [0, 360)
func EulerZ(q mgl64.Quat) float64 {
	w, x, y, z := q.W, q.V.X(), q.V.Y(), q.V.Z()
	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))

	return normalizeDegrees(mgl64.RadToDeg(yaw))
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 rolls over to 360 after the addition
	if deg >= 360 {
		deg = 0
	}

	return deg
}

// decompose splits an affine matrix whose upper 2x2 block is R(θ)·diag(sx, sy)
// back into a Transform. The Y axis carries the rotation, so a mirrored X axis
// comes out as a negative X scale. Shear cannot be represented and is dropped.
func decompose(m mgl64.Mat4) Transform {
	colX := m.Col(0).Vec3()
	colY := m.Col(1).Vec3()
	colZ := m.Col(2).Vec3()

	sy := math.Hypot(colY.X(), colY.Y())
	theta := math.Atan2(-colY.X(), colY.Y())
	sx := colX.X()*math.Cos(theta) + colX.Y()*math.Sin(theta)

	return Transform{
		Position: m.Col(3).Vec3(),
		Rotation: mgl64.QuatRotate(theta, axisZ),
		Scale:    mgl64.Vec3{sx, sy, colZ.Z()},
	}
}
