// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about engine runs and per-iteration
// progress.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// The engine calls hooks to emit events:
//
//	observability.Engine().OnResolveStart(ctx, diagramType, nodeCount)
//	// ... iterate ...
//	observability.Engine().OnResolveComplete(ctx, diagramType, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from collision-resolution runs.
//
// Implementations must be fast and must not block: hooks are invoked
// synchronously on the engine's goroutine at fixed points (run start, each
// iteration, run end) and carry no correctness guarantees for the layout.
type EngineHooks interface {
	// OnResolveStart records the beginning of a layout run.
	OnResolveStart(ctx context.Context, diagramType string, nodeCount int)

	// OnIteration records one detect→resolve→assess round.
	OnIteration(ctx context.Context, iteration, overlaps int, quality float64)

	// OnResolveComplete records the end of a layout run.
	OnResolveComplete(ctx context.Context, diagramType string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnResolveStart(context.Context, string, int)                     {}
func (NoopEngineHooks) OnIteration(context.Context, int, int, float64)                  {}
func (NoopEngineHooks) OnResolveComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any layout runs.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
}
