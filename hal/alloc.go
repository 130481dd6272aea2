package hal

import (
	"errors"
	"fmt"
)

var errAllocFailed = errors.New("allocation failed")

// Allocator is the allocation strategy used for backbuffer storage.
// Free must be called exactly once for every successful Alloc.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// AllocFuncs adapts a caller supplied allocate/release pair.
// Alloc may return nil to signal exhaustion.
type AllocFuncs struct {
	AllocFn func(n int) []byte
	FreeFn  func(b []byte)
}

func (a AllocFuncs) Alloc(n int) ([]byte, error) {
	if a.AllocFn == nil {
		return nil, errAllocFailed
	}
	b := a.AllocFn(n)
	if b == nil || len(b) < n {
		return nil, fmt.Errorf("%w: %d bytes", errAllocFailed, n)
	}
	return b[:n], nil
}

func (a AllocFuncs) Free(b []byte) {
	if a.FreeFn != nil {
		a.FreeFn(b)
	}
}

type heapAllocator struct{}

// HeapAllocator returns the default allocator backed by the Go heap.
func HeapAllocator() Allocator { return heapAllocator{} }

func (heapAllocator) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", errAllocFailed, n)
	}
	return make([]byte, n), nil
}

func (heapAllocator) Free([]byte) {}
