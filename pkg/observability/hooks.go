// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about input loading, envelope and transform construction,
// and brute-force verification.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the engine packages
// stay free of any observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetVerifyHooks(&myVerifyHooks{})
//	    // ... run application
//	}
//
// The pipeline runner emits events around each stage:
//
//	observability.Pipeline().OnBuildStart(ctx, "envelope", algorithm, len(lines))
//	// ... build ...
//	observability.Pipeline().OnBuildComplete(ctx, "envelope", algorithm, cells, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the envelope and transform pipeline.
// kind is "envelope" or "transform".
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, kind, source string)
	OnLoadComplete(ctx context.Context, kind, source string, count int, duration time.Duration, err error)

	// Build events
	OnBuildStart(ctx context.Context, kind, algorithm string, inputs int)
	OnBuildComplete(ctx context.Context, kind, algorithm string, cells int, duration time.Duration, err error)
}

// =============================================================================
// Verify Hooks
// =============================================================================

// VerifyHooks receives the outcome of brute-force cross-checks.
type VerifyHooks interface {
	// OnVerify records one comparison against the brute-force reference.
	OnVerify(ctx context.Context, kind, algorithm string, ok bool, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnBuildStart(context.Context, string, string, int) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopVerifyHooks is a no-op implementation of VerifyHooks.
type NoopVerifyHooks struct{}

func (NoopVerifyHooks) OnVerify(context.Context, string, string, bool, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	verifyHooks   VerifyHooks   = NoopVerifyHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetVerifyHooks registers custom verification hooks.
func SetVerifyHooks(h VerifyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		verifyHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Verify returns the registered verification hooks.
func Verify() VerifyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return verifyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	verifyHooks = NoopVerifyHooks{}
}
