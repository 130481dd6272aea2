package renderer

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"tangerine/hal"
)

// Config is the file form of the renderer options.
//
//	title = "carrot"
//	background = "#1e1e2e"
//	width = 320
//	height = 240
//	backend = "terminal"
type Config struct {
	Title      string `toml:"title"`
	Background string `toml:"background"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Scale      int    `toml:"scale"`
	Backend    string `toml:"backend"`
	Format     string `toml:"format"`
	Hz         int    `toml:"hz"`
	Frames     uint64 `toml:"frames"`
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("renderer: read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("%w: config: %v", ErrInvalidArgument, err)
	}
	return c, nil
}

// ParseColor parses a "#rrggbb" hex color into its RGB bytes.
func ParseColor(s string) ([]byte, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: color %q: %v", ErrInvalidArgument, s, err)
	}
	r, g, b := c.RGB255()
	return []byte{r, g, b}, nil
}

// Options converts the non-zero fields of c into options.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	if c.Title != "" {
		opts = append(opts, WithTitle(c.Title))
	}
	if c.Background != "" {
		rgb, err := ParseColor(c.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithBackgroundColor(rgb[0], rgb[1], rgb[2]))
	}
	if c.Width != 0 || c.Height != 0 {
		opts = append(opts, WithSize(c.Width, c.Height))
	}
	if c.Scale != 0 {
		opts = append(opts, WithScale(c.Scale))
	}
	if c.Backend != "" {
		opts = append(opts, WithBackend(c.Backend))
	}
	if c.Format != "" {
		f, ok := hal.ParsePixelFormat(c.Format)
		if !ok {
			return nil, fmt.Errorf("%w: pixel format %q", ErrInvalidArgument, c.Format)
		}
		opts = append(opts, WithPixelFormat(f))
	}
	if c.Hz != 0 || c.Frames != 0 {
		opts = append(opts, WithPacing(c.Hz, c.Frames))
	}
	return opts, nil
}
