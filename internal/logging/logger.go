// internal/logging/logger.go
// Package logging provides a thin global wrapper around zap.Logger so that
// every gateway package (resolver, dispatcher, connection manager, plugin
// bridge) can log without threading a logger through every call.
//
// The design is intentionally minimal: a single atomic pointer and helper
// accessors.  Tests may swap the logger (e.g., to zaptest.Buffer) without data
// races.  Production code sets the logger once during program start (see
// cmd/appgateway/main.go).
package logging

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var l atomic.Pointer[zap.Logger]

// nopLogger is the single shared no-op instance Logger() auto-installs and
// Initialised() compares against; two separate zap.NewNop() calls never
// share a pointer, so a fresh call on each side would make that comparison
// always false.
var nopLogger = zap.NewNop()

// Set installs the given zap.Logger as the global logger.
// Calling Set more than once overwrites the previous logger; this is useful in
// tests.  The function never panics on nil input – it silently downgrades to
// the shared nop logger.
func Set(logger *zap.Logger) {
    if logger == nil {
        logger = nopLogger
    }
    l.Store(logger)
}

// Logger returns the globally registered *zap.Logger.  If none has been set it
// returns the shared nop logger so that callers can safely continue.
func Logger() *zap.Logger {
    if logger := l.Load(); logger != nil {
        return logger
    }
    // fast path: install nop once to avoid repeated allocs
    l.Store(nopLogger)
    return nopLogger
}

// Sugar is shorthand for Logger().Sugar().
func Sugar() *zap.SugaredLogger { return Logger().Sugar() }

// Initialised reports whether a non-nop logger has been set.
func Initialised() bool {
    logger := l.Load()
    return logger != nil && logger != nopLogger
}
