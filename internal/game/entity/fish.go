package entity

import (
	"math/rand/v2"

	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/internal/engine/model"
	"github.com/Faultbox/driftline/pkg/math"
)

// FishConfig holds fish behaviour tuning.
type FishConfig struct {
	TurnChance        float32 // Probability of a random heading change per tick
	MaxTurn           float32 // Random heading changes fall in [-MaxTurn, MaxTurn] degrees
	MinSpeed          float32
	MaxSpeed          float32
	ShallowLimit      float32 // Terrain above this elevation counts as a collision
	SpawnMin          math.Vec3
	SpawnMax          math.Vec3 // Y of SpawnMin is used as the swimming depth
	PlacementAttempts int
}

// DefaultFishConfig returns the standard school behaviour.
func DefaultFishConfig() FishConfig {
	return FishConfig{
		TurnChance:        0.02,
		MaxTurn:           30,
		MinSpeed:          0.2,
		MaxSpeed:          0.45,
		ShallowLimit:      -3.5,
		SpawnMin:          math.Vec3{X: -150, Y: -3, Z: 50},
		SpawnMax:          math.Vec3{X: -70, Y: -3, Z: 120},
		PlacementAttempts: 1000,
	}
}

// Fish is a single wandering fish.
type Fish struct {
	model.Body

	id     int
	state  State
	facing math.Vec3
	speed  float32
}

func newFish(id int, boxes []collision.Box, scale float32) *Fish {
	return &Fish{
		Body:   model.NewBody(boxes, math.Vec3{}, scale),
		id:     id,
		facing: initialFacing,
	}
}

// ID returns the fish's stable identifier.
func (f *Fish) ID() int { return f.id }

// State returns whether the fish is still swimming.
func (f *Fish) State() State { return f.state }

// Position returns the world position.
func (f *Fish) Position() math.Vec3 { return f.Transform.Position }

// Facing returns the unit heading.
func (f *Fish) Facing() math.Vec3 { return f.facing }

// Speed returns the distance covered per tick.
func (f *Fish) Speed() float32 { return f.speed }

func (f *Fish) turn(deg float32) {
	f.facing = f.facing.RotateAroundY(math.Radians(deg)).Normalize()
	f.Transform.Rotate(deg)
}

func (f *Fish) step() {
	f.Transform.Position = f.Transform.Position.Sub(f.facing.Scale(f.speed))
}

// scatter picks a random pose and speed inside the spawn region.
func (f *Fish) scatter(rng *rand.Rand, cfg FishConfig) {
	f.Transform.Position = math.Vec3{
		X: math.Lerp(cfg.SpawnMin.X, cfg.SpawnMax.X, rng.Float32()),
		Y: cfg.SpawnMin.Y,
		Z: math.Lerp(cfg.SpawnMin.Z, cfg.SpawnMax.Z, rng.Float32()),
	}
	heading := rng.Float32() * 360
	f.Transform.Rotation = math.Vec3{Y: heading}
	f.facing = initialFacing.RotateAroundY(math.Radians(heading)).Normalize()
	f.speed = math.Lerp(cfg.MinSpeed, cfg.MaxSpeed, rng.Float32())
}
