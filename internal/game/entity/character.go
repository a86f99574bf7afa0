package entity

import (
	"time"

	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/internal/engine/model"
	"github.com/Faultbox/driftline/pkg/math"
)

// CharacterConfig holds boat movement tuning.
type CharacterConfig struct {
	Speed         float32       // Distance per forward step at full depth
	GlideDuration time.Duration // How long movement decays after the last forward step
	TurnStep      float32       // Degrees per turn step
	BeachDepth    float32       // At or above this elevation the boat cannot move
	ShoalDepth    float32       // At or below this elevation the boat moves freely
}

// DefaultCharacterConfig returns the standard boat handling.
func DefaultCharacterConfig() CharacterConfig {
	return CharacterConfig{
		Speed:         0.7,
		GlideDuration: 400 * time.Millisecond,
		TurnStep:      2,
		BeachDepth:    -3,
		ShoalDepth:    -7,
	}
}

// Character is the player's boat.
type Character struct {
	model.Body

	cfg     CharacterConfig
	spawn   math.Vec3
	facing  math.Vec3
	terrain Terrain
	now     Clock

	lastForward time.Time
}

// NewCharacter creates the boat at spawn. A nil clock uses time.Now.
func NewCharacter(boxes []collision.Box, spawn math.Vec3, scale float32, terrain Terrain, cfg CharacterConfig, now Clock) *Character {
	if now == nil {
		now = time.Now
	}
	return &Character{
		Body:    model.NewBody(boxes, spawn, scale),
		cfg:     cfg,
		spawn:   spawn,
		facing:  initialFacing,
		terrain: terrain,
		now:     now,
	}
}

// Position returns the world position.
func (c *Character) Position() math.Vec3 {
	return c.Transform.Position
}

// Facing returns the unit heading.
func (c *Character) Facing() math.Vec3 {
	return c.facing
}

// Reset returns the boat to its spawn pose and cancels any glide.
func (c *Character) Reset() {
	c.Transform.Position = c.spawn
	c.Transform.Rotation = math.Vec3{}
	c.facing = initialFacing
	c.lastForward = time.Time{}
}

// Forward moves one step against the facing direction, slowed in shallow
// water, and restarts the glide timer.
func (c *Character) Forward() {
	c.lastForward = c.now()
	c.advance(c.DepthDampeningFactor())
}

// Glide keeps the boat drifting after Forward stops being called. The drift
// decays linearly from a full step to zero over the glide duration.
func (c *Character) Glide() {
	if c.lastForward.IsZero() {
		return
	}
	elapsed := c.now().Sub(c.lastForward)
	if elapsed < 0 || elapsed >= c.cfg.GlideDuration {
		return
	}
	decay := float32(c.cfg.GlideDuration-elapsed) / float32(c.cfg.GlideDuration)
	c.advance(decay * c.DepthDampeningFactor())
}

func (c *Character) advance(factor float32) {
	c.Transform.Position = c.Transform.Position.Sub(c.facing.Scale(factor * c.cfg.Speed))
}

// TurnLeft rotates the heading counter-clockwise by one turn step.
func (c *Character) TurnLeft() {
	c.turn(c.cfg.TurnStep)
}

// TurnRight rotates the heading clockwise by one turn step.
func (c *Character) TurnRight() {
	c.turn(-c.cfg.TurnStep)
}

func (c *Character) turn(deg float32) {
	c.facing = c.facing.RotateAroundY(math.Radians(deg)).Normalize()
	c.Transform.Rotate(deg)
}

// DepthDampeningFactor samples the terrain under the hull extremities and
// scales movement by how shallow the shallower reading is.
func (c *Character) DepthDampeningFactor() float32 {
	if c.terrain == nil {
		return 1
	}
	ext := c.Extremities()
	if len(ext) == 0 {
		return 1
	}
	shallowest := c.terrain.HeightAt(ext[0].X, ext[0].Z)
	for _, p := range ext[1:] {
		shallowest = max(shallowest, c.terrain.HeightAt(p.X, p.Z))
	}
	return DampeningFactor(shallowest, c.cfg.BeachDepth, c.cfg.ShoalDepth)
}

// DampeningFactor maps an elevation to a movement scale: 0 at or above beach,
// 1 at or below shoal, linear in between.
func DampeningFactor(elevation, beach, shoal float32) float32 {
	switch {
	case elevation >= beach:
		return 0
	case elevation <= shoal:
		return 1
	default:
		return (beach - elevation) / (beach - shoal)
	}
}
