package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"

	"tangerine/hal"
	"tangerine/internal/buildinfo"
	"tangerine/renderer"
)

var (
	colorCross = color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff}
	colorText  = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

type cli struct {
	configPath string
	backend    string
	headless   bool
	title      string
	hz         int
	frames     uint64
	scale      int
	verbose    bool
	watch      bool
}

func newCLI(fs *flag.FlagSet) *cli {
	c := &cli{}
	fs.StringVar(&c.configPath, "config", "", "Load settings from a TOML file.")
	fs.StringVar(&c.backend, "backend", "", "Window backend: window, terminal or headless.")
	fs.BoolVar(&c.headless, "headless", false, "Run without a window (same as -backend headless).")
	fs.StringVar(&c.title, "title", "", "Window title.")
	fs.IntVar(&c.hz, "hz", 60, "Frame rate in headless mode.")
	fs.Uint64Var(&c.frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	fs.IntVar(&c.scale, "scale", 2, "Desktop window magnification.")
	fs.BoolVar(&c.verbose, "v", false, "Log lifecycle events.")
	fs.BoolVar(&c.watch, "watch", false, "Reload title and background when the -config file changes.")
	return c
}

// resolve layers flags over file values. Flags given on the command line
// win; flag defaults fill only what the file leaves zero.
func (c *cli) resolve(fs *flag.FlagSet, cfg renderer.Config) renderer.Config {
	if cfg.Scale == 0 {
		cfg.Scale = c.scale
	}
	if cfg.Hz == 0 {
		cfg.Hz = c.hz
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = c.backend
		case "title":
			cfg.Title = c.title
		case "scale":
			cfg.Scale = c.scale
		case "hz":
			cfg.Hz = c.hz
		case "frames":
			cfg.Frames = c.frames
		}
	})
	if c.headless {
		cfg.Backend = hal.BackendHeadless
	}
	if cfg.Title == "" {
		cfg.Title = "Tangerine (" + buildinfo.Short() + ")"
	}
	return cfg
}

func main() {
	c := newCLI(flag.CommandLine)
	flag.Parse()
	configPath, watch := c.configPath, c.watch

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var cfg renderer.Config
	if configPath != "" {
		var err error
		if cfg, err = renderer.LoadConfig(configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg = c.resolve(flag.CommandLine, cfg)

	if watch && configPath == "" {
		fmt.Fprintln(os.Stderr, "-watch requires -config")
		os.Exit(2)
	}
	watchPath := ""
	if watch {
		watchPath = configPath
	}

	if err := run(cfg, watchPath, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg renderer.Config, watchPath string, log *slog.Logger) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, renderer.WithLogger(log))

	if cfg.Backend == hal.BackendHeadless {
		w := hal.NewHeadlessWindow(hal.WindowConfig{Width: cfg.Width, Height: cfg.Height, Hz: cfg.Hz, Frames: cfg.Frames, Logger: log})
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		defer signal.Stop(stop)
		go func() {
			if _, ok := <-stop; ok {
				w.RequestClose()
			}
		}()
		opts = append(opts, renderer.WithWindow(w))
	}

	r, err := renderer.New(opts...)
	if err != nil {
		return err
	}
	defer r.Destroy()

	draw := quickstart
	if watchPath != "" {
		cw, err := renderer.WatchConfig(watchPath, log)
		if err != nil {
			return err
		}
		defer cw.Close()
		draw = func(r *renderer.Renderer, in renderer.Input) error {
			select {
			case c := <-cw.Updates():
				if err := r.Apply(c); err != nil {
					log.Warn("config not applied", "err", err)
				}
			default:
			}
			return quickstart(r, in)
		}
	}

	err = r.Run(draw)
	if errors.Is(err, renderer.ErrPlatform) {
		return fmt.Errorf("window failed: %w", err)
	}
	return err
}

// quickstart draws a crosshair under the pointer with its coordinates.
func quickstart(r *renderer.Renderer, in renderer.Input) error {
	w, h := r.Size()
	x, y := int(in.CursorPositionX), int(in.CursorPositionY)
	if err := r.FillRect(x, 0, 1, h, colorCross); err != nil {
		return err
	}
	if err := r.FillRect(0, y, w, 1, colorCross); err != nil {
		return err
	}
	label := fmt.Sprintf("%d,%d #%d", x, y, r.Frame())
	lx := x + 4
	if tw := renderer.TextWidth(label); lx+tw > w {
		lx = x - 4 - tw
	}
	return r.DrawText(lx, y-4, label, colorText)
}
