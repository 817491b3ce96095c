package mengine

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is rebuilt.
const fpsRefresh = 0.5

// fpsOverlay prints the measured FPS and UPS in the bottom-left corner of the
// logical screen.
type fpsOverlay struct {
	text    string
	elapsed float64
}

// update accumulates dt seconds and refreshes the text every fpsRefresh.
func (o *fpsOverlay) update(dt float64) {
	o.elapsed += dt
	if o.text != "" && o.elapsed < fpsRefresh {
		return
	}
	o.elapsed = 0
	o.text = fmt.Sprintf("FPS: %.1f UPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (o *fpsOverlay) draw(screen *ebiten.Image, height int) {
	if o.text == "" {
		return
	}
	ebitenutil.DebugPrintAt(screen, o.text, 20, height-30)
}
