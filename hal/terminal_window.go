package hal

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// upperHalf draws the foreground color over the top half of a cell.
const upperHalf = '▀'

// TerminalWindow renders into a terminal. Each cell carries two vertically
// stacked pixels, so a W x H cell grid is a W x 2H pixel window.
type TerminalWindow struct {
	screen tcell.Screen
	state  eventState
	log    *slog.Logger

	img    *image.RGBA
	scaled *image.RGBA

	destroyed bool
}

// NewTerminalWindow takes over the controlling terminal.
func NewTerminalWindow(cfg WindowConfig) (*TerminalWindow, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: terminal: %v", ErrPlatform, err)
	}
	return NewTerminalWindowWithScreen(screen, cfg)
}

// NewTerminalWindowWithScreen initializes the window on an existing screen.
// On failure the screen is left uninitialized.
func NewTerminalWindowWithScreen(screen tcell.Screen, cfg WindowConfig) (*TerminalWindow, error) {
	cfg = cfg.withDefaults()
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: terminal init: %v", ErrPlatform, err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.SetTitle(cfg.Title)

	cols, rows := screen.Size()
	w := &TerminalWindow{
		screen: screen,
		state:  newEventState(cols, rows*2),
		log:    cfg.Logger,
	}
	w.log.Debug("terminal window opened", "cols", cols, "rows", rows)
	return w, nil
}

func (w *TerminalWindow) SetTitle(title string) {
	if w.destroyed {
		return
	}
	w.screen.SetTitle(title)
}

func (w *TerminalWindow) Size() (int, int) { return w.state.width, w.state.height }

func (w *TerminalWindow) PollEvents() (Events, error) {
	if w.destroyed {
		return Events{}, fmt.Errorf("%w: terminal window destroyed", ErrPlatform)
	}
	for w.screen.HasPendingEvent() {
		switch ev := w.screen.PollEvent().(type) {
		case nil:
			// PollEvent returns nil once the screen is finalized.
			return Events{}, fmt.Errorf("%w: terminal screen finalized", ErrPlatform)
		case *tcell.EventMouse:
			col, row := ev.Position()
			w.state.motion(col, row*2)
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				w.state.requestClose()
			}
		case *tcell.EventResize:
			cols, rows := ev.Size()
			w.state.resize(cols, rows*2)
		}
	}
	return w.state.take(), nil
}

func (w *TerminalWindow) Blit(f Frame) error {
	if w.destroyed {
		return fmt.Errorf("%w: terminal window destroyed", ErrPlatform)
	}
	cols, rows := w.screen.Size()
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: terminal grid is %dx%d", ErrPlatform, cols, rows)
	}

	w.img = f.ToRGBA(w.img)
	src := w.img
	if f.Width != cols || f.Height != rows*2 {
		bounds := image.Rect(0, 0, cols, rows*2)
		if w.scaled == nil || w.scaled.Bounds() != bounds {
			w.scaled = image.NewRGBA(bounds)
		}
		draw.NearestNeighbor.Scale(w.scaled, bounds, src, src.Bounds(), draw.Src, nil)
		src = w.scaled
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := src.RGBAAt(col, row*2)
			bot := src.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			w.screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
	w.screen.Show()
	return nil
}

func (w *TerminalWindow) Destroy() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	w.screen.Fini()
	w.log.Debug("terminal window destroyed")
	return nil
}
