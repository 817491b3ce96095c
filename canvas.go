package mengine

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Image is a drawable resource. Only its size is needed by the engine.
// *ebiten.Image satisfies it.
type Image interface {
	Bounds() image.Rectangle
}

// Canvas is the single render primitive the engine depends on: copy the src
// rectangle of img into the dst rectangle of the target.
type Canvas interface {
	DrawRect(img Image, src, dst Rect)
}

// ImageCanvas draws onto an ebiten image. Images passed to DrawRect must be
// *ebiten.Image; anything else is ignored.
type ImageCanvas struct {
	Target *ebiten.Image

	// Offset translates every destination rectangle, e.g. to place the
	// logical screen inside a letterboxed window.
	OffsetX, OffsetY float64
	// Scale multiplies destination coordinates. Zero means 1.
	Scale float64

	op ebiten.DrawImageOptions
}

// NewImageCanvas wraps target with an identity transform.
func NewImageCanvas(target *ebiten.Image) *ImageCanvas {
	return &ImageCanvas{Target: target, Scale: 1}
}

// DrawRect implements Canvas.
func (c *ImageCanvas) DrawRect(img Image, src, dst Rect) {
	eimg, ok := img.(*ebiten.Image)
	if !ok || eimg == nil || c.Target == nil {
		return
	}
	if src.Empty() || dst.Empty() {
		return
	}
	sub := eimg.SubImage(image.Rect(
		int(src.X), int(src.Y),
		int(src.X+src.Width), int(src.Y+src.Height),
	)).(*ebiten.Image)

	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	c.op.GeoM.Reset()
	c.op.GeoM.Scale(dst.Width/src.Width, dst.Height/src.Height)
	c.op.GeoM.Translate(dst.X, dst.Y)
	c.op.GeoM.Scale(scale, scale)
	c.op.GeoM.Translate(c.OffsetX, c.OffsetY)
	c.Target.DrawImage(sub, &c.op)
}

func imageSize(img Image) (float64, float64) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func imageRect(img Image) Rect {
	b := img.Bounds()
	return Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
}
