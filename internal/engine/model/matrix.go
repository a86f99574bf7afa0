package model

import (
	"github.com/Faultbox/driftline/pkg/math"
)

// Transform places an object in the world. Rotation is in degrees per axis.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    float32
}

// NewTransform returns a transform at pos with uniform scale.
func NewTransform(pos math.Vec3, scale float32) Transform {
	return Transform{Position: pos, Scale: scale}
}

// ModelMatrix returns T * Rx * Ry * Rz * S.
func (t Transform) ModelMatrix() math.Mat4 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return math.Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(math.RotateX(math.Radians(t.Rotation.X))).
		Mul(math.RotateY(math.Radians(t.Rotation.Y))).
		Mul(math.RotateZ(math.Radians(t.Rotation.Z))).
		Mul(math.Scale(scale, scale, scale))
}

// Rotate adds deg degrees about the vertical axis.
func (t *Transform) Rotate(deg float32) {
	t.Rotation.Y += deg
}
