package mengine

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game is the host driven by Run. Each tick, the polled input events are
// delivered to Event before Update is called. Draw renders onto the logical
// screen, which Run then places into the window.
type Game interface {
	Event(ev Event)
	Update() error
	Draw(c Canvas)
}

// placement positions the logical screen inside the window.
type placement struct {
	scale  float64
	dx, dy float64
}

// letterbox computes where a w x h logical screen goes inside a winW x winH
// window. With autoScale the screen is fitted to the window height, or its
// width when the height fit would overflow. With center the leftover space is
// split evenly on both sides.
func letterbox(w, h, winW, winH float64, autoScale, center bool) placement {
	p := placement{scale: 1}
	newW, newH := w, h
	if autoScale && w > 0 && h > 0 {
		newH = winH
		newW = newH / h * w
		if newW > winW {
			newW = winW
			newH = newW / w * h
		}
		p.scale = newW / w
	}
	if center {
		p.dx = (winW - newW) / 2
		p.dy = (winH - newH) / 2
	}
	return p
}

// toLogical maps window pixel coordinates to logical coordinates.
func (p placement) toLogical(x, y int) (float64, float64) {
	return (float64(x) - p.dx) / p.scale, (float64(y) - p.dy) / p.scale
}

// runner adapts a Game to ebiten.Game.
type runner struct {
	game Game
	cfg  RunConfig

	logical *ebiten.Image
	canvas  *ImageCanvas
	place   placement
	winW    int
	winH    int

	input  inputState
	events []Event
	fps    fpsOverlay
	op     ebiten.DrawImageOptions

	script *Script
	shots  []string
}

func newRunner(game Game, cfg RunConfig) *runner {
	logical := ebiten.NewImage(cfg.Width, cfg.Height)
	return &runner{
		game:    game,
		cfg:     cfg,
		logical: logical,
		canvas:  NewImageCanvas(logical),
		place:   placement{scale: 1},
	}
}

func (r *runner) Update() error {
	if r.script != nil && r.script.Done() && r.cfg.QuitAfterScript && len(r.shots) == 0 {
		Logger().Info("script finished")
		return ebiten.Termination
	}
	r.events = r.input.poll(r.events[:0], r.place.toLogical)
	if r.script != nil {
		r.events = r.script.Step(r.events, r.queueShot)
	}
	for _, ev := range r.events {
		r.game.Event(ev)
	}
	if err := r.game.Update(); err != nil {
		return err
	}
	if r.cfg.ShowFPS {
		r.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (r *runner) Draw(screen *ebiten.Image) {
	screen.Fill(r.cfg.LetterboxColor.RGBA())
	r.logical.Fill(r.cfg.ClearColor.RGBA())
	r.game.Draw(r.canvas)
	if r.cfg.ShowFPS {
		r.fps.draw(r.logical, r.cfg.Height)
	}
	r.flushShots()

	r.op.GeoM.Reset()
	r.op.GeoM.Scale(r.place.scale, r.place.scale)
	r.op.GeoM.Translate(r.place.dx, r.place.dy)
	r.op.Filter = ebiten.FilterNearest
	screen.DrawImage(r.logical, &r.op)
}

func (r *runner) queueShot(label string) {
	r.shots = append(r.shots, label)
}

// flushShots writes one PNG of the logical screen per queued label.
func (r *runner) flushShots() {
	if len(r.shots) == 0 {
		return
	}
	img := capture(r.logical)
	now := time.Now()
	for _, label := range r.shots {
		path, err := writeScreenshot(img, r.cfg.ScreenshotDir, label, now)
		if err != nil {
			Logger().Error("screenshot failed", "label", label, "err", err)
			continue
		}
		Logger().Info("saved screenshot", "path", path)
	}
	r.shots = r.shots[:0]
}

func (r *runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != r.winW || outsideHeight != r.winH {
		r.winW, r.winH = outsideWidth, outsideHeight
		r.place = letterbox(float64(r.cfg.Width), float64(r.cfg.Height),
			float64(outsideWidth), float64(outsideHeight), r.cfg.AutoScale, r.cfg.DrawCenter)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window configured by cfg and drives game until the window is
// closed or Update returns an error. Returning ebiten.Termination from Update
// ends the loop without an error. When cfg.Script is set, its events are fed
// to the game after the real input of each tick.
func Run(game Game, cfg RunConfig) error {
	if game == nil {
		return errors.New("mengine: Run requires a game")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var script *Script
	if cfg.Script != "" {
		var err error
		if script, err = LoadScriptFile(cfg.Script); err != nil {
			return err
		}
	}

	winW, winH := cfg.WindowWidth, cfg.WindowHeight
	if winW <= 0 || winH <= 0 {
		winW, winH = cfg.Width, cfg.Height
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(winW, winH)
	ebiten.SetWindowSizeLimits(limit(cfg.MinWidth), limit(cfg.MinHeight), limit(cfg.MaxWidth), limit(cfg.MaxHeight))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if !cfg.ShowCursor {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	Logger().Info("starting game loop", "title", cfg.Title, "logical", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "tps", cfg.TPS)
	r := newRunner(game, cfg)
	r.script = script
	err := ebiten.RunGame(r)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// limit maps the "zero means unlimited" convention to ebiten's -1.
func limit(v int) int {
	if v <= 0 {
		return -1
	}
	return v
}
