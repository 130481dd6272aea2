package renderer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangerine/hal"
)

func TestWatchConfigReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tangerine.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "one"`), 0o644))

	cw, err := WatchConfig(path, nil)
	require.NoError(t, err)
	defer cw.Close()

	require.NoError(t, os.WriteFile(path, []byte("title = \"two\"\nbackground = \"#010203\"\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-cw.Updates():
			if c.Title != "two" || c.Background == "" {
				continue
			}
			assert.Equal(t, "#010203", c.Background)
			return
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}

func TestApply(t *testing.T) {
	r, w := newHeadless(t, hal.WindowConfig{Width: 2, Height: 2})
	defer r.Destroy()

	require.NoError(t, r.Apply(Config{Title: "reloaded", Background: "#0a0b0c"}))
	assert.Equal(t, "reloaded", w.Title())
	red, green, blue := r.BackgroundColor()
	assert.Equal(t, [3]uint8{10, 11, 12}, [3]uint8{red, green, blue})

	assert.ErrorIs(t, r.Apply(Config{Background: "nope"}), ErrInvalidArgument)
	require.NoError(t, r.Apply(Config{}))
	assert.Equal(t, "reloaded", r.Title())
}
