package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFlipPixels(t *testing.T) {
	// 1x2 image: bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipPixels: %v", err)
	}
	if top := img.RGBAAt(0, 0); top.B != 255 || top.R != 0 {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom := img.RGBAAt(0, 1); bottom.R != 255 || bottom.B != 0 {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}

func TestFlipPixelsSizeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		n, w, h int
	}{
		{"short", 7, 1, 2},
		{"long", 12, 1, 2},
		{"zero width", 0, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlipPixels(make([]byte, tt.n), tt.w, tt.h); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScreenshotsFilename(t *testing.T) {
	s := NewScreenshots("shots", "driftline")
	s.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 10e6, time.UTC) }

	want := filepath.Join("shots", "driftline_2024-05-06_07-08-09.010.png")
	if got := s.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}

	s.dir = ""
	if got := s.Filename(); strings.ContainsRune(got, filepath.Separator) {
		t.Errorf("Filename() without dir = %q", got)
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewScreenshots(dir, "shot")

	name, err := s.SavePixels(make([]byte, 4*3*2), 3, 2)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}
	if filepath.Dir(name) != dir {
		t.Errorf("saved to %q, want inside %q", name, dir)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("size = %dx%d, want 3x2", b.Dx(), b.Dy())
	}
}
