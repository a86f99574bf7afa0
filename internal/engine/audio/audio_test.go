package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

// monoWAV builds a 16-bit PCM mono WAV at 44.1 kHz.
func monoWAV(samples ...int16) []byte {
	var buf bytes.Buffer
	dataLen := uint32(len(samples) * 2)
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // channels
	binary.Write(&buf, binary.LittleEndian, uint32(44100))
	binary.Write(&buf, binary.LittleEndian, uint32(44100*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	for _, s := range samples {
		binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func TestGainExponent(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-1, -10},
	}
	for _, tt := range tests {
		if got := gainExponent(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("gainExponent(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.lo, tt.hi)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestLevels(t *testing.T) {
	v := Volumes{Master: 0.5, Music: 0.5, Effects: 1}
	if got := musicLevel(v); got != 0.25 {
		t.Errorf("musicLevel = %v, want 0.25", got)
	}
	if got := effectLevel(v); got != 0.5 {
		t.Errorf("effectLevel = %v, want 0.5", got)
	}
	v.Muted = true
	if musicLevel(v) != 0 || effectLevel(v) != 0 {
		t.Error("muted levels should be 0")
	}
}

func TestNewClampsVolumes(t *testing.T) {
	p := New(Volumes{Master: 2, Music: -1, Effects: 0.8})
	got := p.Volumes()
	want := Volumes{Master: 1, Music: 0, Effects: 0.8}
	if got != want {
		t.Errorf("Volumes() = %+v, want %+v", got, want)
	}
	if p.IsInitialized() {
		t.Error("new player should not be initialized")
	}
}

func TestToggleMute(t *testing.T) {
	p := New(Volumes{Master: 1, Music: 1, Effects: 1})
	if !p.ToggleMute() {
		t.Error("first toggle should mute")
	}
	if p.ToggleMute() {
		t.Error("second toggle should unmute")
	}
	p.SetVolumes(Volumes{Master: 0.3, Muted: true})
	if got := p.Volumes(); got.Master != 0.3 || !got.Muted {
		t.Errorf("SetVolumes = %+v", got)
	}
}

func TestDecode(t *testing.T) {
	s, err := Decode(monoWAV(0, 8192, 16384, 24576), DefaultSampleRate)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}
	if d := s.Duration(); d <= 0 {
		t.Errorf("Duration = %v, want > 0", d)
	}

	if _, err := Decode([]byte("not a wav"), DefaultSampleRate); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestLoadAndPlayErrors(t *testing.T) {
	p := New(Volumes{Master: 1, Music: 1, Effects: 1})
	if err := p.Load("catch", monoWAV(1, 2, 3)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !p.Has("catch") || p.Has("splash") {
		t.Error("Has reports wrong registrations")
	}
	if err := p.Load("bad", []byte("junk")); err == nil {
		t.Error("Load of junk should fail")
	}

	if err := p.Play("splash"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("Play unknown err = %v, want ErrUnknownSound", err)
	}
	if err := p.Play("catch"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play before Init err = %v, want ErrNotInitialized", err)
	}
	if err := p.Loop("catch"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Loop before Init err = %v, want ErrNotInitialized", err)
	}
	if p.Ambience() != "" {
		t.Errorf("Ambience = %q, want empty", p.Ambience())
	}
	p.Close()
}

func TestLoopStreamerWraps(t *testing.T) {
	s, err := Decode(monoWAV(0, 8192, 16384, 24576), DefaultSampleRate)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	l := &loopStreamer{sound: s, current: s.streamer()}

	samples := make([][2]float64, 10)
	n, ok := l.Stream(samples)
	if n != 10 || !ok {
		t.Fatalf("Stream = %d, %v, want 10, true", n, ok)
	}
	want := []float64{0, 0.25, 0.5, 0.75, 0, 0.25, 0.5, 0.75, 0, 0.25}
	for i, w := range want {
		if math.Abs(samples[i][0]-w) > 1e-3 {
			t.Errorf("sample %d = %v, want %v", i, samples[i][0], w)
		}
	}
}
