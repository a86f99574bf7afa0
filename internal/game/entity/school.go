package entity

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/Faultbox/driftline/internal/engine/collision"
)

// School owns every fish, split into those still swimming and those caught.
// Caught fish are kept so their resources live until the scene is torn down.
type School struct {
	cfg     FishConfig
	terrain Terrain
	rng     *rand.Rand

	live   []*Fish
	caught []*Fish
}

// NewSchool creates count fish sharing the same hull boxes. Fish are not
// placed until Reset is called.
func NewSchool(count int, boxes []collision.Box, scale float32, terrain Terrain, cfg FishConfig, rng *rand.Rand) *School {
	s := &School{
		cfg:     cfg,
		terrain: terrain,
		rng:     rng,
		live:    make([]*Fish, 0, count),
	}
	for id := 0; id < count; id++ {
		s.live = append(s.live, newFish(id, boxes, scale))
	}
	return s
}

// Live returns the fish still swimming. The slice must not be modified.
func (s *School) Live() []*Fish { return s.live }

// Caught returns the fish already caught. The slice must not be modified.
func (s *School) Caught() []*Fish { return s.caught }

// All returns every fish, live first.
func (s *School) All() []*Fish {
	all := make([]*Fish, 0, len(s.live)+len(s.caught))
	all = append(all, s.live...)
	return append(all, s.caught...)
}

// Reset returns caught fish to the water and re-places every fish so that
// none overlaps a previously placed fish or the shallows. Placement of each
// fish is attempted at most cfg.PlacementAttempts times; fish that could not
// be placed keep their last attempted pose and the first error is returned.
func (s *School) Reset() error {
	for _, f := range s.caught {
		f.state = StateAlive
	}
	s.live = append(s.live, s.caught...)
	s.caught = s.caught[:0]
	slices.SortFunc(s.live, func(a, b *Fish) int { return cmp.Compare(a.id, b.id) })

	var firstErr error
	for i, f := range s.live {
		if err := s.place(f, s.live[:i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *School) place(f *Fish, placed []*Fish) error {
	attempts := max(s.cfg.PlacementAttempts, 1)
	for range attempts {
		f.scatter(s.rng, s.cfg)
		if !s.blocked(f, placed) {
			return nil
		}
	}
	return fmt.Errorf("fish %d after %d attempts: %w", f.id, attempts, ErrPlacement)
}

// Swim advances every live fish one tick.
func (s *School) Swim() {
	for _, f := range s.live {
		if s.rng.Float32() < s.cfg.TurnChance {
			f.turn((s.rng.Float32()*2 - 1) * s.cfg.MaxTurn)
		}
		f.step()
		if s.blocked(f, s.live) {
			f.turn(180)
			f.step()
		}
	}
}

// blocked reports whether f overlaps any other fish in peers or swims over
// water that is too shallow.
func (s *School) blocked(f *Fish, peers []*Fish) bool {
	if s.terrain != nil {
		p := f.Position()
		if s.terrain.HeightAt(p.X, p.Z) > s.cfg.ShallowLimit {
			return true
		}
	}
	for _, other := range peers {
		if other.id != f.id && f.Collides(&other.Body) {
			return true
		}
	}
	return false
}

// Catch moves the fish with the given id to the caught set. It reports false
// if no live fish has that id, so a fish is only ever caught once.
func (s *School) Catch(id int) bool {
	for i, f := range s.live {
		if f.id == id {
			f.state = StateCaught
			s.live = append(s.live[:i], s.live[i+1:]...)
			s.caught = append(s.caught, f)
			return true
		}
	}
	return false
}
