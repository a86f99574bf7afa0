// Package entity implements the moving agents of the lake: the player's boat
// and the fish it chases.
package entity

import (
	"errors"
	"time"

	"github.com/Faultbox/driftline/pkg/math"
)

// ErrPlacement is returned when a fish cannot be placed without overlapping.
var ErrPlacement = errors.New("entity: no free spawn position found")

// State represents the lifecycle state of an agent.
type State uint8

const (
	StateAlive State = iota
	StateCaught
)

func (s State) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateCaught:
		return "caught"
	default:
		return "unknown"
	}
}

// Terrain provides elevation lookups for agent movement.
type Terrain interface {
	// HeightAt returns the surface elevation under a world position.
	HeightAt(worldX, worldZ float32) float32
}

// Clock returns the current time. Tests substitute a manual clock.
type Clock func() time.Time

// initialFacing is the heading of every agent at spawn or reset.
var initialFacing = math.Vec3{X: 0, Y: 0, Z: -1}
