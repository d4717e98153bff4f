// Package monitoring reports unexpected failures to an error tracker.
package monitoring

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init sets the global monitor implementation. nil restores the no-op monitor.
func Init(m Monitor) {
	mu.Lock()
	defer mu.Unlock()
	if m == nil {
		m = NopMonitor{}
	}
	current = m
}

func monitor() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	monitor().CaptureException(err, tags)
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	monitor().Flush(d)
}

// ErrPanic wraps panics recovered by Guard.
var ErrPanic = errors.New("internal invariant violated")

// Guard runs fn and turns a panic into an error wrapping ErrPanic. The
// panic value and stack are reported to the monitor with tags.
func Guard(tags map[string]string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
			withStack := fmt.Errorf("%w\n%s", err, debug.Stack())
			CaptureException(withStack, tags)
		}
	}()
	return fn()
}
