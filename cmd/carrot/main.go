// Command carrot opens a window titled "carrot" with a caller supplied
// allocator and runs an empty frame loop until the window is closed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"tangerine/hal"
	"tangerine/renderer"
)

func main() {
	backend := flag.String("backend", hal.BackendWindow, "Window backend: window, terminal or headless.")
	frames := flag.Uint64("frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.Parse()

	var allocated, freed int
	alloc := hal.AllocFuncs{
		AllocFn: func(n int) []byte {
			allocated += n
			return make([]byte, n)
		},
		FreeFn: func(b []byte) { freed += len(b) },
	}

	r, err := renderer.New(
		renderer.WithBackend(*backend),
		renderer.WithAllocator(alloc),
		renderer.WithPacing(60, *frames),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := r.SetTitle("carrot"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	runErr := r.Run(func(*renderer.Renderer, renderer.Input) error { return nil })
	if err := r.Destroy(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	slog.Info("carrot done", "frames", r.Frame(), "allocated", allocated, "freed", freed)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}
