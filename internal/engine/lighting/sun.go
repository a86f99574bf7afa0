package lighting

import (
	"github.com/Faultbox/driftline/pkg/math"
)

// Sun is the scene's single directional light.
type Sun struct {
	Distance  float32   // How far from the origin the sun is placed
	Color     math.Vec3 // Light color
	Size      float32   // Billboard size
	direction math.Vec3
}

// NewSun creates a white sun at distance from the origin.
func NewSun(distance, size float32) *Sun {
	s := &Sun{
		Distance: distance,
		Color:    math.Vec3{X: 1, Y: 1, Z: 1},
		Size:     size,
	}
	s.Follow(NewDayCycle(0))
	return s
}

// Follow updates the sun direction from the day cycle. The sun rises until
// mid-cycle and sets afterwards while sweeping across the sky; at night the
// sweep runs the other way.
func (s *Sun) Follow(c *DayCycle) {
	s.direction = Direction(c.Time(), c.IsDay())
}

// Direction returns the unit vector towards the sun at time t in [0, 1].
func Direction(t float32, day bool) math.Vec3 {
	var d math.Vec3
	if t < 0.5 {
		d.Y = t*2.2 - 0.3
	} else {
		d.Y = (t-1)*-2.2 - 0.3
	}
	if day {
		d.X = t*3 - 1.5
	} else {
		d.X = (1-t)*3 - 1.5
	}
	d.Z = 1
	return d.Normalize()
}

// Direction returns the unit vector from the origin towards the sun.
func (s *Sun) Direction() math.Vec3 { return s.direction }

// Position returns the sun's world position.
func (s *Sun) Position() math.Vec3 {
	return s.direction.Scale(s.Distance)
}

// BillboardMatrix places the sun sprite relative to the eye so it never gets
// closer or farther, and turns it to face the camera.
func (s *Sun) BillboardMatrix(eye math.Vec3, view math.Mat4) math.Mat4 {
	p := eye.Add(s.Position())
	return math.Translate(p.X, p.Y, p.Z).
		Billboard(view).
		Mul(math.Scale(s.Size, s.Size, s.Size))
}
