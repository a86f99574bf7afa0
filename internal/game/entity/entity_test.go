package entity

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Faultbox/driftline/internal/engine/collision"
	"github.com/Faultbox/driftline/pkg/math"
)

// terrainFunc adapts a function to the Terrain interface.
type terrainFunc func(x, z float32) float32

func (f terrainFunc) HeightAt(x, z float32) float32 { return f(x, z) }

func flat(h float32) Terrain {
	return terrainFunc(func(float32, float32) float32 { return h })
}

// manualClock is a clock tests advance by hand.
type manualClock struct{ t time.Time }

func (c *manualClock) now() time.Time          { return c.t }
func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *manualClock {
	return &manualClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

var hull = []collision.Box{
	collision.NewBox(math.Vec3{X: -1, Y: 0, Z: -2}, math.Vec3{X: 1, Y: 1, Z: 2}),
}

func approxEq(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

func TestDampeningFactorBoundaries(t *testing.T) {
	const beach, shoal = -3, -7
	tests := []struct {
		elevation float32
		want      float32
	}{
		{10, 0},
		{-3, 0},
		{-5, 0.5},
		{-7, 1},
		{-50, 1},
	}
	for _, tt := range tests {
		if got := DampeningFactor(tt.elevation, beach, shoal); got != tt.want {
			t.Errorf("DampeningFactor(%v) = %v, want %v", tt.elevation, got, tt.want)
		}
	}

	prev := DampeningFactor(-3, beach, shoal)
	for e := float32(-3.1); e > -7; e -= 0.1 {
		got := DampeningFactor(e, beach, shoal)
		if got <= prev {
			t.Fatalf("DampeningFactor not strictly increasing with depth at %v: %v <= %v", e, got, prev)
		}
		if got <= 0 || got >= 1 {
			t.Fatalf("DampeningFactor(%v) = %v, want inside (0,1)", e, got)
		}
		prev = got
	}
}

func TestCharacterForward(t *testing.T) {
	tests := []struct {
		name    string
		terrain Terrain
		wantZ   float32
	}{
		{"deep water", flat(-20), 0.7},
		{"shoal edge", flat(-7), 0.7},
		{"half depth", flat(-5), 0.35},
		{"beached", flat(0), 0},
		{"no terrain", nil, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCharacter(hull, math.Vec3{}, 1, tt.terrain, DefaultCharacterConfig(), newClock().now)
			c.Forward()
			if got := c.Position(); !approxEq(got.Z, tt.wantZ) || got.X != 0 {
				t.Errorf("Position() = %v, want z=%v", got, tt.wantZ)
			}
		})
	}
}

func TestCharacterDampeningUsesShallowestExtremity(t *testing.T) {
	// Bow (z = +2) sits over the beach, stern over deep water.
	terrain := terrainFunc(func(x, z float32) float32 {
		if z > 1 {
			return 0
		}
		return -20
	})
	c := NewCharacter(hull, math.Vec3{}, 1, terrain, DefaultCharacterConfig(), nil)
	if got := c.DepthDampeningFactor(); got != 0 {
		t.Errorf("DepthDampeningFactor() = %v, want 0 with bow beached", got)
	}
}

func TestCharacterGlide(t *testing.T) {
	clock := newClock()
	c := NewCharacter(hull, math.Vec3{}, 1, flat(-20), DefaultCharacterConfig(), clock.now)

	c.Glide()
	if c.Position() != (math.Vec3{}) {
		t.Fatalf("Glide before any Forward moved the boat to %v", c.Position())
	}

	c.Forward()
	start := c.Position().Z

	clock.advance(100 * time.Millisecond)
	c.Glide()
	if got, want := c.Position().Z-start, float32(0.75*0.7); !approxEq(got, want) {
		t.Errorf("glide after 100ms moved %v, want %v", got, want)
	}

	clock.advance(200 * time.Millisecond)
	before := c.Position().Z
	c.Glide()
	if got, want := c.Position().Z-before, float32(0.25*0.7); !approxEq(got, want) {
		t.Errorf("glide after 300ms moved %v, want %v", got, want)
	}

	clock.advance(100 * time.Millisecond)
	before = c.Position().Z
	c.Glide()
	if got := c.Position().Z - before; got != 0 {
		t.Errorf("glide at full duration moved %v, want 0", got)
	}
}

func TestCharacterTurn(t *testing.T) {
	c := NewCharacter(hull, math.Vec3{}, 1, nil, DefaultCharacterConfig(), nil)
	for range 45 {
		c.TurnLeft()
	}
	if f := c.Facing(); !approxEq(f.X, -1) || !approxEq(f.Z, 0) {
		t.Errorf("after 90 degrees left facing = %v, want (-1,0,0)", f)
	}
	if c.Transform.Rotation.Y != 90 {
		t.Errorf("rotation = %v, want 90", c.Transform.Rotation.Y)
	}
	for range 45 {
		c.TurnRight()
	}
	if f := c.Facing(); !approxEq(f.X, 0) || !approxEq(f.Z, -1) {
		t.Errorf("turning back facing = %v, want (0,0,-1)", f)
	}
	if l := c.Facing().Length(); !approxEq(l, 1) {
		t.Errorf("facing length = %v", l)
	}
}

func TestCharacterReset(t *testing.T) {
	spawn := math.Vec3{Y: -1}
	clock := newClock()
	c := NewCharacter(hull, spawn, 1.3, flat(-20), DefaultCharacterConfig(), clock.now)
	c.TurnLeft()
	c.Forward()
	c.Reset()

	if c.Position() != spawn {
		t.Errorf("Position() = %v, want %v", c.Position(), spawn)
	}
	if c.Facing() != (math.Vec3{Z: -1}) {
		t.Errorf("Facing() = %v, want (0,0,-1)", c.Facing())
	}
	clock.advance(10 * time.Millisecond)
	c.Glide()
	if c.Position() != spawn {
		t.Error("glide continued after reset")
	}
}

func newTestSchool(t *testing.T, count int, terrain Terrain, cfg FishConfig) *School {
	t.Helper()
	fishHull := []collision.Box{collision.NewBox(math.Vec3{X: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})}
	return NewSchool(count, fishHull, 1, terrain, cfg, rand.New(rand.NewPCG(7, 11)))
}

func TestSchoolResetPlacesWithoutOverlap(t *testing.T) {
	cfg := DefaultFishConfig()
	s := newTestSchool(t, 10, flat(-20), cfg)
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	live := s.Live()
	if len(live) != 10 {
		t.Fatalf("live = %d, want 10", len(live))
	}
	for i, a := range live {
		p := a.Position()
		if p.X < cfg.SpawnMin.X || p.X > cfg.SpawnMax.X || p.Z < cfg.SpawnMin.Z || p.Z > cfg.SpawnMax.Z {
			t.Errorf("fish %d spawned outside region at %v", a.ID(), p)
		}
		if p.Y != cfg.SpawnMin.Y {
			t.Errorf("fish %d depth = %v, want %v", a.ID(), p.Y, cfg.SpawnMin.Y)
		}
		if a.Speed() < cfg.MinSpeed || a.Speed() > cfg.MaxSpeed {
			t.Errorf("fish %d speed = %v", a.ID(), a.Speed())
		}
		for _, b := range live[i+1:] {
			if a.Collides(&b.Body) {
				t.Errorf("fish %d and %d overlap after reset", a.ID(), b.ID())
			}
		}
	}
}

func TestSchoolResetBoundedFailure(t *testing.T) {
	cfg := DefaultFishConfig()
	cfg.PlacementAttempts = 5
	s := newTestSchool(t, 3, flat(0), cfg)

	err := s.Reset()
	if !errors.Is(err, ErrPlacement) {
		t.Fatalf("Reset() error = %v, want ErrPlacement", err)
	}
	if len(s.Live()) != 3 {
		t.Errorf("failed placement should keep fish live, got %d", len(s.Live()))
	}
}

func TestSchoolCatchOnce(t *testing.T) {
	s := newTestSchool(t, 4, flat(-20), DefaultFishConfig())
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}

	if !s.Catch(2) {
		t.Fatal("Catch(2) = false, want true")
	}
	if s.Catch(2) {
		t.Error("second Catch(2) = true, want false")
	}
	if s.Catch(99) {
		t.Error("Catch of unknown id = true")
	}
	if len(s.Live()) != 3 || len(s.Caught()) != 1 {
		t.Fatalf("live=%d caught=%d, want 3/1", len(s.Live()), len(s.Caught()))
	}
	if s.Caught()[0].State() != StateCaught {
		t.Errorf("caught fish state = %v", s.Caught()[0].State())
	}
	for _, f := range s.Live() {
		if f.ID() == 2 {
			t.Error("caught fish still listed as live")
		}
	}
	if len(s.All()) != 4 {
		t.Errorf("All() = %d, want 4", len(s.All()))
	}

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if len(s.Live()) != 4 || len(s.Caught()) != 0 {
		t.Fatalf("after reset live=%d caught=%d, want 4/0", len(s.Live()), len(s.Caught()))
	}
	for i, f := range s.Live() {
		if f.ID() != i || f.State() != StateAlive {
			t.Errorf("live[%d] = id %d state %v", i, f.ID(), f.State())
		}
	}
}

func TestSchoolSwimStaysOutOfShallows(t *testing.T) {
	cfg := DefaultFishConfig()
	cfg.TurnChance = 0.2
	// A sandbank covers everything east of x = -110.
	terrain := terrainFunc(func(x, z float32) float32 {
		if x > -110 {
			return 0
		}
		return -20
	})
	s := newTestSchool(t, 6, terrain, cfg)
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}

	for tick := 0; tick < 500; tick++ {
		s.Swim()
		for _, f := range s.Live() {
			p := f.Position()
			if terrain.HeightAt(p.X, p.Z) > cfg.ShallowLimit {
				t.Fatalf("tick %d: fish %d swam into shallows at %v", tick, f.ID(), p)
			}
		}
	}
}

func TestSchoolSwimMovesAtOwnSpeed(t *testing.T) {
	cfg := DefaultFishConfig()
	cfg.TurnChance = 0
	s := newTestSchool(t, 1, flat(-20), cfg)
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	f := s.Live()[0]
	before := f.Position()
	s.Swim()
	moved := f.Position().Sub(before)
	if !approxEq(moved.Length(), f.Speed()) {
		t.Errorf("moved %v, want %v", moved.Length(), f.Speed())
	}
	want := f.Facing().Scale(-f.Speed())
	if !approxEq(moved.X, want.X) || !approxEq(moved.Z, want.Z) {
		t.Errorf("moved %v, want %v (against facing)", moved, want)
	}
}

// headOn returns two fish 1.5 apart on the Z axis swimming towards each
// other. One 0.4 step brings their hulls into overlap.
func headOn() (a, b *Fish) {
	a = newFish(0, hull, 0.3)
	a.speed = 0.4
	// facing -Z, step moves +Z
	b = newFish(1, hull, 0.3)
	b.Transform.Position = math.Vec3{Z: 1.5}
	b.Transform.Rotation.Y = 180
	b.facing = math.Vec3{Z: 1}
	b.speed = 0.4
	return a, b
}

func TestSchoolSwimBouncesOffOtherFish(t *testing.T) {
	cfg := DefaultFishConfig()
	cfg.TurnChance = 0
	a, b := headOn()
	s := &School{cfg: cfg, terrain: flat(-20), rng: rand.New(rand.NewPCG(1, 2)), live: []*Fish{a, b}}

	tests := []struct {
		fish   *Fish
		pos    math.Vec3
		facing math.Vec3
	}{
		{a, a.Position(), a.Facing()},
		{b, b.Position(), b.Facing()},
	}
	s.Swim()

	for _, tt := range tests {
		p, f := tt.fish.Position(), tt.fish.Facing()
		if !approxEq(p.X, tt.pos.X) || !approxEq(p.Z, tt.pos.Z) {
			t.Errorf("fish %d at %v, want back at %v", tt.fish.ID(), p, tt.pos)
		}
		if !approxEq(f.X, -tt.facing.X) || !approxEq(f.Z, -tt.facing.Z) {
			t.Errorf("fish %d facing %v, want %v reversed", tt.fish.ID(), f, tt.facing)
		}
	}
}

func TestSchoolSwimIgnoresCaughtFish(t *testing.T) {
	cfg := DefaultFishConfig()
	cfg.TurnChance = 0
	a, b := headOn()
	s := &School{cfg: cfg, terrain: flat(-20), rng: rand.New(rand.NewPCG(1, 2)), live: []*Fish{a, b}}
	if !s.Catch(b.ID()) {
		t.Fatal("Catch failed")
	}
	before := b.Position()

	s.Swim()

	if got := a.Position(); !approxEq(got.Z, 0.4) {
		t.Errorf("live fish at z = %v, want 0.4 (no bounce off a caught fish)", got.Z)
	}
	if f := a.Facing(); !approxEq(f.Z, -1) {
		t.Errorf("live fish facing %v, want unchanged", f)
	}
	if b.Position() != before {
		t.Errorf("caught fish moved from %v to %v", before, b.Position())
	}
}
