// Package lighting provides the day/night cycle, the sun that follows it and
// the lens flare drawn when looking into the sun.
package lighting

// DayCycle drives the sky rotation. The sky turns about the vertical axis at
// a fixed rate; every full turn alternates between day and night, and the
// last quarter of each turn cross-fades towards the other sky.
type DayCycle struct {
	speed    float32 // Degrees per second
	rotation float32 // Sky rotation about Y, in (-360, 0]
	day      bool
}

// NewDayCycle starts at dawn of the first day.
func NewDayCycle(degreesPerSecond float32) *DayCycle {
	return &DayCycle{speed: degreesPerSecond, day: true}
}

// Advance turns the sky by dt seconds.
func (c *DayCycle) Advance(dt float32) {
	c.rotation -= c.speed * dt
	for c.rotation < -360 {
		c.rotation += 360
		c.day = !c.day
	}
}

// Speed returns the sky rotation rate in degrees per second.
func (c *DayCycle) Speed() float32 { return c.speed }

// SetSpeed changes the rotation rate. Negative rates stop the sky.
func (c *DayCycle) SetSpeed(degreesPerSecond float32) {
	c.speed = max(degreesPerSecond, 0)
}

// Reset returns to dawn of the first day.
func (c *DayCycle) Reset() {
	c.rotation = 0
	c.day = true
}

// IsDay reports whether the day sky is the current one.
func (c *DayCycle) IsDay() bool { return c.day }

// Rotation returns the sky rotation about Y in degrees.
func (c *DayCycle) Rotation() float32 { return c.rotation }

// Time returns how far through the current day or night the cycle is, in [0, 1].
func (c *DayCycle) Time() float32 {
	return c.rotation / -360
}

// BlendFactor returns the night sky weight: 0 shows only the day sky and 1
// only the night sky.
func (c *DayCycle) BlendFactor() float32 {
	if c.rotation < -270 {
		fade := (c.rotation + 360) / 90
		if c.day {
			return 1 - fade
		}
		return fade
	}
	if c.day {
		return 0
	}
	return 1
}
