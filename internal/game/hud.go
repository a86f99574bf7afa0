package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// Score HUD layout in normalized screen coordinates.
var (
	scorePos   = math.Vec2{X: 0.75, Y: 0.9}
	slashPos   = math.Vec2{X: 0.825, Y: 0.8}
	totalPos   = math.Vec2{X: 0.9, Y: 0.7}
	digitSize  = math.Vec2{X: 0.065, Y: 0.065}
	slashSize  = math.Vec2{X: 0.05, Y: 0.05}
	slashImage = "Numbers/Slash.png"
)

// NumberImage returns the asset path of the picture showing n.
func NumberImage(n int) string {
	return fmt.Sprintf("Numbers/%d.png", n)
}

// TextureSource hands out textures by asset path.
type TextureSource func(name string) (gfx.Texture, error)

// texturedImage is the part of a screen image the scoreboard swaps.
type texturedImage interface {
	SetTexture(tex gfx.Texture)
}

// Scoreboard keeps the current-score image in step with the session score.
type Scoreboard struct {
	image    texturedImage
	textures TextureSource
	log      *zap.Logger
	shown    int
}

// NewScoreboard starts at zero.
func NewScoreboard(image texturedImage, textures TextureSource, log *zap.Logger) *Scoreboard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scoreboard{image: image, textures: textures, log: log}
}

// Shown returns the score the HUD currently displays.
func (b *Scoreboard) Shown() int { return b.shown }

// Show switches the image to score. A missing picture keeps the old one.
func (b *Scoreboard) Show(score int) {
	if score == b.shown {
		return
	}
	name := NumberImage(score)
	tex, err := b.textures(name)
	if err != nil {
		b.log.Warn("score image unavailable", zap.String("path", name), zap.Int("score", score), zap.Error(err))
		return
	}
	b.image.SetTexture(tex)
	b.shown = score
}

// Reset shows zero again.
func (b *Scoreboard) Reset() {
	b.shown = -1
	b.Show(0)
}
