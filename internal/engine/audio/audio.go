// Package audio plays the lake ambience and the game's sound effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate every sound is resampled to.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	// ErrNotInitialized is returned when playing before Init succeeded.
	ErrNotInitialized = errors.New("audio: not initialized")
	// ErrUnknownSound is returned when playing a name that was never loaded.
	ErrUnknownSound = errors.New("audio: unknown sound")
)

// Volumes holds the mixer levels, each in [0, 1].
type Volumes struct {
	Master  float64
	Music   float64
	Effects float64
	Muted   bool
}

// Sound is a decoded clip held in memory at the speaker sample rate.
type Sound struct {
	buf *beep.Buffer
}

// Decode reads WAV data and resamples it to rate.
func Decode(data []byte, rate beep.SampleRate) (*Sound, error) {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return &Sound{buf: buf}, nil
}

// Len returns the clip length in samples.
func (s *Sound) Len() int { return s.buf.Len() }

// Duration returns the clip length.
func (s *Sound) Duration() time.Duration {
	return s.buf.Format().SampleRate.D(s.buf.Len())
}

func (s *Sound) streamer() beep.StreamSeeker {
	return s.buf.Streamer(0, s.buf.Len())
}

// Player mixes one looping ambience track with any number of effects.
type Player struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volumes     Volumes
	sounds      map[string]*Sound

	mixer        *beep.Mixer
	ambience     string
	ambienceCtrl *beep.Ctrl
	ambienceVol  *effects.Volume
}

// New creates a player with the given levels. Nothing is audible until Init.
func New(v Volumes) *Player {
	return &Player{
		sampleRate: DefaultSampleRate,
		volumes:    clampVolumes(v),
		sounds:     make(map[string]*Sound),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the output device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ambienceCtrl = nil
	p.ambienceVol = nil
	p.ambience = ""
	p.initialized = false
}

// IsInitialized reports whether the output device is open.
func (p *Player) IsInitialized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.initialized
}

// Load decodes WAV data and registers it under name.
func (p *Player) Load(name string, data []byte) error {
	s, err := Decode(data, p.sampleRate)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	p.mu.Lock()
	p.sounds[name] = s
	p.mu.Unlock()
	return nil
}

// Has reports whether a sound is registered under name.
func (p *Player) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.sounds[name]
	return ok
}

// Play starts a one-shot effect. Effects overlap freely.
func (p *Player) Play(name string) error {
	p.mu.RLock()
	s, ok := p.sounds[name]
	initialized := p.initialized
	level := effectLevel(p.volumes)
	p.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownSound)
	}
	if !initialized {
		return ErrNotInitialized
	}

	vol := &effects.Volume{Streamer: s.streamer(), Base: 2}
	applyLevel(vol, level)
	speaker.Lock()
	p.mixer.Add(vol)
	speaker.Unlock()
	return nil
}

// Loop replaces the ambience track with name, repeated until StopLoop.
func (p *Player) Loop(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sounds[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownSound)
	}
	if !p.initialized {
		return ErrNotInitialized
	}
	p.stopLoop()

	p.ambienceCtrl = &beep.Ctrl{Streamer: &loopStreamer{sound: s, current: s.streamer()}}
	p.ambienceVol = &effects.Volume{Streamer: p.ambienceCtrl, Base: 2}
	applyLevel(p.ambienceVol, musicLevel(p.volumes))
	p.ambience = name

	speaker.Lock()
	p.mixer.Add(p.ambienceVol)
	speaker.Unlock()
	return nil
}

// StopLoop ends the ambience track.
func (p *Player) StopLoop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLoop()
}

func (p *Player) stopLoop() {
	if p.ambienceCtrl != nil {
		// A Ctrl without a streamer drains, and the mixer drops it.
		speaker.Lock()
		p.ambienceCtrl.Streamer = nil
		speaker.Unlock()
	}
	p.ambienceCtrl = nil
	p.ambienceVol = nil
	p.ambience = ""
}

// Ambience returns the name of the looping track, or "".
func (p *Player) Ambience() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ambience
}

// Volumes returns the current levels.
func (p *Player) Volumes() Volumes {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volumes
}

// SetVolumes changes every level. The ambience follows immediately; effects
// already playing keep their level.
func (p *Player) SetVolumes(v Volumes) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumes = clampVolumes(v)
	p.updateAmbience()
}

// ToggleMute flips the mute flag and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumes.Muted = !p.volumes.Muted
	p.updateAmbience()
	return p.volumes.Muted
}

func (p *Player) updateAmbience() {
	if p.ambienceVol == nil {
		return
	}
	speaker.Lock()
	applyLevel(p.ambienceVol, musicLevel(p.volumes))
	speaker.Unlock()
}

func musicLevel(v Volumes) float64 {
	if v.Muted {
		return 0
	}
	return v.Master * v.Music
}

func effectLevel(v Volumes) float64 {
	if v.Muted {
		return 0
	}
	return v.Master * v.Effects
}

// applyLevel sets a base-2 volume so that a linear level of 0.5 halves the
// amplitude.
func applyLevel(vol *effects.Volume, level float64) {
	vol.Silent = level <= 0
	vol.Volume = gainExponent(level)
}

// gainExponent converts a linear level in (0, 1] to a base-2 exponent.
func gainExponent(level float64) float64 {
	if level <= 0 {
		return -10
	}
	return math.Log2(level)
}

func clampVolumes(v Volumes) Volumes {
	v.Master = clamp(v.Master, 0, 1)
	v.Music = clamp(v.Music, 0, 1)
	v.Effects = clamp(v.Effects, 0, 1)
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loopStreamer replays a sound from the start each time it runs out.
type loopStreamer struct {
	sound   *Sound
	current beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	if l.sound.Len() == 0 {
		return 0, false
	}
	filled := 0
	for filled < len(samples) {
		n, ok := l.current.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			if err := l.current.Seek(0); err != nil {
				return filled, filled > 0
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.current.Err()
}
