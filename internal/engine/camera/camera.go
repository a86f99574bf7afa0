// Package camera provides the player-following camera rig.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/driftline/pkg/math"
)

// Mode selects how the rig follows its target.
type Mode int

const (
	ThirdPerson Mode = iota
	FirstPerson
)

func (m Mode) String() string {
	if m == FirstPerson {
		return "first-person"
	}
	return "third-person"
}

// Pose limits and defaults, in degrees and world units.
const (
	DefaultPitch = 25
	DefaultZoom  = 70

	MinZoom = 15
	MaxZoom = 100

	ThirdPersonMinPitch = 0
	FirstPersonMinPitch = -30
	MaxPitch            = 89

	// EyeHeight is how far above the water line the first-person eye sits.
	EyeHeight = 5
)

// Target is what the rig follows.
type Target interface {
	Position() math.Vec3
	Facing() math.Vec3
}

// Lens holds projection parameters.
type Lens struct {
	FOV  float32 // Vertical field of view in degrees
	Near float32
	Far  float32
}

// DefaultLens returns the standard projection.
func DefaultLens() Lens {
	return Lens{FOV: 45, Near: 0.1, Far: 11000}
}

// Rig is a two-mode camera. Its world position is always derived from the
// pose (angle, pitch, zoom) and the target; every pose change recomputes it.
type Rig struct {
	target Target
	lens   Lens
	aspect float32

	mode  Mode
	angle float32 // Orbit angle around the target, [0, 360)
	pitch float32
	zoom  float32

	position math.Vec3
	facing   math.Vec3 // First-person view direction
}

// NewRig creates a third-person rig following target.
func NewRig(target Target, lens Lens, width, height int) *Rig {
	r := &Rig{target: target, lens: lens, aspect: 1}
	r.Resize(width, height)
	r.Reset()
	return r
}

// Resize updates the projection aspect ratio.
func (r *Rig) Resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	r.aspect = float32(width) / float32(height)
}

// Mode returns the current follow mode.
func (r *Rig) Mode() Mode { return r.mode }

// IsThirdPerson reports whether the rig orbits behind the target.
func (r *Rig) IsThirdPerson() bool { return r.mode == ThirdPerson }

// Angle returns the orbit angle in degrees.
func (r *Rig) Angle() float32 { return r.angle }

// Pitch returns the pitch in degrees.
func (r *Rig) Pitch() float32 { return r.pitch }

// Distance returns the third-person orbit distance.
func (r *Rig) Distance() float32 { return r.zoom }

// Position returns the last computed world position.
func (r *Rig) Position() math.Vec3 { return r.position }

// Lens returns the projection parameters.
func (r *Rig) Lens() Lens { return r.lens }

// SetThirdPerson switches mode; switching resets the pose.
func (r *Rig) SetThirdPerson(on bool) {
	mode := FirstPerson
	if on {
		mode = ThirdPerson
	}
	if mode == r.mode {
		return
	}
	r.mode = mode
	r.Reset()
}

// Reset returns to the current mode's default pose.
func (r *Rig) Reset() {
	r.angle = 0
	if r.mode == ThirdPerson {
		r.pitch = DefaultPitch
		r.zoom = DefaultZoom
	} else {
		r.pitch = 0
	}
	r.CalculatePosition()
}

func (r *Rig) pitchRange() (lo, hi float32) {
	if r.mode == FirstPerson {
		return FirstPersonMinPitch, MaxPitch
	}
	return ThirdPersonMinPitch, MaxPitch
}

// ChangePitch adds delta degrees to the pitch, clamped to the mode's range.
func (r *Rig) ChangePitch(delta float32) {
	lo, hi := r.pitchRange()
	r.pitch = math.Clamp(r.pitch+delta, lo, hi)
	r.CalculatePosition()
}

// RotateAroundPlayer adds delta degrees to the orbit angle.
func (r *Rig) RotateAroundPlayer(delta float32) {
	r.angle = math.Wrap(r.angle+delta, 360)
	r.CalculatePosition()
}

// Zoom moves the third-person eye closer by delta. It has no effect in
// first-person mode.
func (r *Rig) Zoom(delta float32) {
	if r.mode == FirstPerson {
		return
	}
	r.zoom = math.Clamp(r.zoom-delta, MinZoom, MaxZoom)
	r.CalculatePosition()
}

// CalculatePosition recomputes the eye position from the pose and target.
func (r *Rig) CalculatePosition() {
	if r.target == nil {
		return
	}
	p := r.target.Position()
	heading := r.target.Facing()
	pitch := math.Radians(r.pitch)
	yaw := math.Radians(r.angle)

	if r.mode == ThirdPerson {
		back := heading.RotateAroundY(yaw).Normalize()
		r.position = math.Vec3{X: p.X, Z: p.Z}.
			Add(math.Vec3{Y: r.zoom * math32.Sin(pitch)}).
			Add(back.Scale(r.zoom * math32.Cos(pitch)))
		return
	}

	r.position = math.Vec3{X: p.X, Y: EyeHeight, Z: p.Z}
	r.facing = heading.Negate().RotateAroundY(yaw).Normalize().
		Add(math.Vec3{Y: math32.Sin(pitch)})
}

// InvertAroundWater mirrors the eye below the water plane for the
// reflection pass. Undo with RevertAroundWater.
func (r *Rig) InvertAroundWater() {
	r.pitch = -r.pitch
	r.CalculatePosition()
	if r.mode == FirstPerson {
		r.position.Y -= 2 * EyeHeight
	}
}

// RevertAroundWater undoes InvertAroundWater.
func (r *Rig) RevertAroundWater() {
	r.pitch = -r.pitch
	r.CalculatePosition()
}

// ViewMatrix returns the world-to-eye transform. The third-person eye looks
// at the target's horizontal position so the mirrored eye stays consistent.
func (r *Rig) ViewMatrix() math.Mat4 {
	up := math.Vec3{Y: 1}
	if r.mode == ThirdPerson {
		var look math.Vec3
		if r.target != nil {
			p := r.target.Position()
			look = math.Vec3{X: p.X, Z: p.Z}
		}
		return math.LookAt(r.position, look, up)
	}
	return math.LookAt(r.position, r.position.Add(r.facing), up)
}

// Projection returns the perspective projection.
func (r *Rig) Projection() math.Mat4 {
	return math.Perspective(math.Radians(r.lens.FOV), r.aspect, r.lens.Near, r.lens.Far)
}
