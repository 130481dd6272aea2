//go:build cgo

package hal

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenWindow is the desktop window backend. Ebiten owns the main loop,
// so the Renderer drives it through RunLoop.
type EbitenWindow struct {
	state eventState
	scale int
	log   *slog.Logger

	logicalW, logicalH int

	img   *image.RGBA
	front *ebiten.Image

	stepErr   error
	destroyed bool
}

// NewEbitenWindow configures the desktop window. The native window appears
// when RunLoop starts.
func NewEbitenWindow(cfg WindowConfig) (*EbitenWindow, error) {
	cfg = cfg.withDefaults()
	w := &EbitenWindow{
		state:    newEventState(cfg.Width, cfg.Height),
		scale:    cfg.Scale,
		log:      cfg.Logger,
		logicalW: cfg.Width,
		logicalH: cfg.Height,
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if cfg.Hz > 0 {
		ebiten.SetTPS(cfg.Hz)
	} else {
		ebiten.SetTPS(60)
	}
	w.log.Debug("desktop window configured", "width", cfg.Width, "height", cfg.Height, "scale", cfg.Scale)
	return w, nil
}

func newDesktopWindow(cfg WindowConfig) (Window, error) {
	return NewEbitenWindow(cfg)
}

func (w *EbitenWindow) SetTitle(title string) {
	if w.destroyed {
		return
	}
	ebiten.SetWindowTitle(title)
}

func (w *EbitenWindow) Size() (int, int) { return w.logicalW, w.logicalH }

func (w *EbitenWindow) PollEvents() (Events, error) {
	if w.destroyed {
		return Events{}, fmt.Errorf("%w: desktop window destroyed", ErrPlatform)
	}
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.state.requestClose()
	}
	w.state.motion(ebiten.CursorPosition())
	w.state.resize(w.logicalW, w.logicalH)
	return w.state.take(), nil
}

func (w *EbitenWindow) Blit(f Frame) error {
	if w.destroyed {
		return fmt.Errorf("%w: desktop window destroyed", ErrPlatform)
	}
	w.img = f.ToRGBA(w.img)
	if w.front == nil || w.front.Bounds().Dx() != f.Width || w.front.Bounds().Dy() != f.Height {
		if w.front != nil {
			w.front.Deallocate()
		}
		w.front = ebiten.NewImage(f.Width, f.Height)
	}
	w.front.WritePixels(w.img.Pix)
	return nil
}

func (w *EbitenWindow) RunLoop(step func() (bool, error)) error {
	w.stepErr = nil
	err := ebiten.RunGame(&ebitenGame{w: w, step: step})
	if w.stepErr != nil {
		return w.stepErr
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("%w: ebiten: %v", ErrPlatform, err)
	}
	return nil
}

func (w *EbitenWindow) Destroy() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	if w.front != nil {
		w.front.Deallocate()
		w.front = nil
	}
	w.img = nil
	w.log.Debug("desktop window destroyed")
	return nil
}

type ebitenGame struct {
	w    *EbitenWindow
	step func() (bool, error)
}

func (g *ebitenGame) Update() error {
	done, err := g.step()
	if err != nil {
		g.w.stepErr = err
		return ebiten.Termination
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	if g.w.front != nil {
		screen.DrawImage(g.w.front, nil)
	}
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := g.w.scale
	if w := outsideWidth / scale; w > 0 {
		g.w.logicalW = w
	}
	if h := outsideHeight / scale; h > 0 {
		g.w.logicalH = h
	}
	return g.w.logicalW, g.w.logicalH
}
