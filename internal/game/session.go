package game

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/driftline/internal/engine/camera"
	"github.com/Faultbox/driftline/internal/game/entity"
)

// Session is the simulation state of one round: the boat, the school and
// the score.
type Session struct {
	character *entity.Character
	school    *entity.School
	camera    *camera.Rig
	log       *zap.Logger

	score int
}

// NewSession starts a round. Fish are placed immediately; a placement
// failure is logged and the round goes on with the fish where they landed.
func NewSession(character *entity.Character, school *entity.School, cam *camera.Rig, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		character: character,
		school:    school,
		camera:    cam,
		log:       log,
	}
	s.placeSchool()
	return s
}

// Character returns the player's boat.
func (s *Session) Character() *entity.Character { return s.character }

// School returns the fish.
func (s *Session) School() *entity.School { return s.school }

// Score returns the number of fish caught this round.
func (s *Session) Score() int { return s.score }

// Total returns the number of fish in the lake.
func (s *Session) Total() int { return len(s.school.All()) }

// Complete reports whether every fish has been caught.
func (s *Session) Complete() bool {
	return s.Total() > 0 && len(s.school.Live()) == 0
}

// Tick advances the simulation one frame: the boat glides, the fish swim,
// and any fish touching the boat is caught. It returns the fish caught
// during this tick.
func (s *Session) Tick() []*entity.Fish {
	s.character.Glide()
	s.school.Swim()

	// Collect first: catching mutates the live set.
	var hits []*entity.Fish
	for _, f := range s.school.Live() {
		if f.Collides(&s.character.Body) {
			hits = append(hits, f)
		}
	}

	caught := hits[:0]
	for _, f := range hits {
		if s.school.Catch(f.ID()) {
			s.score++
			caught = append(caught, f)
			s.log.Info("fish caught", zap.Int("fish", f.ID()), zap.Int("score", s.score))
		}
	}
	return caught
}

// Reset starts the round over: third-person camera in its default pose, the
// boat at its spawn, every fish back in the water and the score at zero.
func (s *Session) Reset() {
	if s.camera != nil {
		s.camera.SetThirdPerson(true)
		s.camera.Reset()
	}
	s.character.Reset()
	s.placeSchool()
	s.score = 0
	s.log.Info("round reset", zap.Int("fish", s.Total()))
}

func (s *Session) placeSchool() {
	if err := s.school.Reset(); err != nil {
		level := s.log.Warn
		if errors.Is(err, entity.ErrPlacement) {
			level = s.log.Error
		}
		level("fish placement incomplete", zap.Error(err))
	}
}
