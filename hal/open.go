package hal

import "fmt"

// Backend names accepted by Open.
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// Open creates a window for the named backend. An empty name selects the
// desktop window.
func Open(backend string, cfg WindowConfig) (Window, error) {
	switch backend {
	case "", BackendWindow:
		return newDesktopWindow(cfg)
	case BackendTerminal:
		return NewTerminalWindow(cfg)
	case BackendHeadless:
		return NewHeadlessWindow(cfg), nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", ErrPlatform, backend)
}
