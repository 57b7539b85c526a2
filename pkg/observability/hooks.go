// Package observability provides hooks for instrumenting layout and render
// passes.
//
// Libraries call the registered hooks; applications register their own
// implementations at startup. The defaults are no-ops, so nothing depends
// on a particular metrics or tracing backend.
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... run application
//	}
//
// Libraries emit events through the accessors:
//
//	observability.Layout().OnLayoutComplete(ctx, "toggle", nodes, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutHooks receives events from layout recomputation.
type LayoutHooks interface {
	// OnLayoutComplete records a finished layout pass. trigger names what
	// caused it ("init", "toggle", "resize", "set", "reload").
	OnLayoutComplete(ctx context.Context, trigger string, nodes int, duration time.Duration)
}

// RenderHooks receives events from the renderers. Formats render
// concurrently, so implementations must be safe for concurrent use.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, int, time.Duration) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks. A nil h is ignored.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetRenderHooks registers custom render hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores the no-op defaults. Mostly useful in tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	renderHooks = NoopRenderHooks{}
}
