// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about simulation runs, interactive sessions, and frame
// rendering.
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
//	    observability.SetSimulationHooks(&mySimulationHooks{})
//	    observability.SetSessionHooks(&mySessionHooks{})
//	    // ... run application
//	}
//
// Callers emit events around the operations they drive:
//
//	observability.Simulation().OnSettleStart(ctx, nodeCount)
//	// ... run the simulation ...
//	observability.Simulation().OnSettleComplete(ctx, nodeCount, ticks, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Simulation Hooks
// =============================================================================

// SimulationHooks receives events from force simulation runs.
type SimulationHooks interface {
	// OnSettleStart records the start of a headless settle run.
	OnSettleStart(ctx context.Context, nodeCount int)

	// OnSettleComplete records a finished settle run with the tick count it
	// took to cool down.
	OnSettleComplete(ctx context.Context, nodeCount, ticks int, duration time.Duration)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from interactive websocket sessions.
type SessionHooks interface {
	// OnConnect records a new session.
	OnConnect(ctx context.Context, sessionID string)

	// OnEvent records a client event applied to a session's view.
	OnEvent(ctx context.Context, sessionID, eventType string, err error)

	// OnFrame records a frame pushed to the client.
	OnFrame(ctx context.Context, sessionID string, bytes int)

	// OnDisconnect records a closed session with its lifetime.
	OnDisconnect(ctx context.Context, sessionID string, duration time.Duration)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from static frame rendering.
type RenderHooks interface {
	// OnRender records a rendered artifact.
	OnRender(ctx context.Context, format string, bytes int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSimulationHooks is a no-op implementation of SimulationHooks.
type NoopSimulationHooks struct{}

func (NoopSimulationHooks) OnSettleStart(context.Context, int)                        {}
func (NoopSimulationHooks) OnSettleComplete(context.Context, int, int, time.Duration) {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnConnect(context.Context, string)                   {}
func (NoopSessionHooks) OnEvent(context.Context, string, string, error)      {}
func (NoopSessionHooks) OnFrame(context.Context, string, int)                {}
func (NoopSessionHooks) OnDisconnect(context.Context, string, time.Duration) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRender(context.Context, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	simulationHooks SimulationHooks = NoopSimulationHooks{}
	sessionHooks    SessionHooks    = NoopSessionHooks{}
	renderHooks     RenderHooks     = NoopRenderHooks{}
	hooksMu         sync.RWMutex
)

// SetSimulationHooks registers custom simulation hooks.
// This should be called once at application startup before any settle runs.
func SetSimulationHooks(h SimulationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		simulationHooks = h
	}
}

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup before serving.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Simulation returns the registered simulation hooks.
func Simulation() SimulationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return simulationHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	simulationHooks = NoopSimulationHooks{}
	sessionHooks = NoopSessionHooks{}
	renderHooks = NoopRenderHooks{}
}
