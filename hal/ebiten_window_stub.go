//go:build !cgo

package hal

import "fmt"

func newDesktopWindow(WindowConfig) (Window, error) {
	return nil, fmt.Errorf("%w: window mode requires cgo (build/run with CGO_ENABLED=1)", ErrPlatform)
}
