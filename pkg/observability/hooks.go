// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about placement phases and whitespace spreading.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlacerHooks(&myPlacerHooks{})
//	    // ... run application
//	}
//
// The placer calls hooks to emit events:
//
//	observability.Placer().OnPhaseStart(ctx, "free-placement")
//	// ... bin nets ...
//	observability.Placer().OnPhaseComplete(ctx, "free-placement", cells, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Placer Hooks
// =============================================================================

// PlacerHooks receives events from the global placer.
type PlacerHooks interface {
	// Phase events
	OnPhaseStart(ctx context.Context, phase string)
	OnPhaseComplete(ctx context.Context, phase string, cells int, duration time.Duration, err error)

	// OnSpread records one bin's spreading result.
	OnSpread(ctx context.Context, x, y, moves int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlacerHooks is a no-op implementation of PlacerHooks.
type NoopPlacerHooks struct{}

func (NoopPlacerHooks) OnPhaseStart(context.Context, string)                                {}
func (NoopPlacerHooks) OnPhaseComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPlacerHooks) OnSpread(context.Context, int, int, int)                            {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	placerHooks PlacerHooks = NoopPlacerHooks{}
	hooksMu     sync.RWMutex
)

// SetPlacerHooks registers custom placer hooks.
// This should be called once at application startup before any placement.
func SetPlacerHooks(h PlacerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placerHooks = h
	}
}

// Placer returns the registered placer hooks.
func Placer() PlacerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	placerHooks = NoopPlacerHooks{}
}
