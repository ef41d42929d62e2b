// internal/gateway/resolver.go
// Resolver is the Method Resolver (spec C2). Reconfiguration publishes a
// brand-new immutable snapshot behind an atomic.Pointer rather than locking
// around mutation -- the same technique internal/logging uses for its
// global *zap.Logger -- so that the many, fast, read-dominant lookups never
// contend with the rare reconfigure.
package gateway

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/atomic"

	"github.com/rdkcentral/appgateway/internal/logging"
)

// table is the immutable snapshot a Resolver points to. Keys are already
// lower-cased.
type table map[string]Resolution

// Resolver implements the public contract from spec §4.2.
type Resolver struct {
	snapshot atomic.Pointer[table]
}

// NewResolver returns an unconfigured Resolver (IsConfigured() == false).
func NewResolver() *Resolver {
	r := &Resolver{}
	empty := table{}
	r.snapshot.Store(&empty)
	return r
}

// Configure loads an ordered list of resolution file paths, merging them so
// that later paths override earlier ones wholesale per-method (spec §4.1
// step 2). It publishes a new snapshot atomically; in-flight reads keep
// using the prior snapshot until this call returns. Returns an error only
// when zero files loaded successfully.
func (r *Resolver) Configure(paths []string) error {
	merged := table{}
	loaded := 0
	for _, path := range paths {
		rows, err := loadResolutionFile(path)
		if err != nil {
			logging.Sugar().Warnw("resolver: skipping unreadable config", "path", path, "err", err)
			continue
		}
		for method, res := range rows {
			merged[strings.ToLower(method)] = res
		}
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("resolver: no resolution file loaded from %d candidate paths", len(paths))
	}
	r.snapshot.Store(&merged)
	logging.Sugar().Infow("resolver: configured", "methods", len(merged), "files", loaded)
	return nil
}

func loadResolutionFile(path string) (map[string]Resolution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc resolutionFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Resolutions, nil
}

// IsConfigured reports whether at least one resolution is loaded.
func (r *Resolver) IsConfigured() bool {
	return len(*r.snapshot.Load()) > 0
}

// ResolveAlias returns the downstream alias for method, case-insensitively,
// or "" when the method is unknown.
func (r *Resolver) ResolveAlias(method string) string {
	row, ok := r.lookup(method)
	if !ok {
		return ""
	}
	return row.Alias
}

// HasEvent reports whether method is an event-subscription hook (its row's
// Event field is non-empty).
func (r *Resolver) HasEvent(method string) bool {
	row, ok := r.lookup(method)
	return ok && row.Event != ""
}

// HasIncludeContext reports whether method's row requests context
// injection, returning the static additionalContext when present.
func (r *Resolver) HasIncludeContext(method string) (bool, json.RawMessage) {
	row, ok := r.lookup(method)
	if !ok || !row.IncludeContext {
		return false, nil
	}
	return true, row.AdditionalContext
}

// HasComRPCRequestSupport reports whether method dispatches through the
// typed capability bridge (Mode B) rather than the generic bridge (Mode A).
func (r *Resolver) HasComRPCRequestSupport(method string) bool {
	row, ok := r.lookup(method)
	return ok && row.UseComRPC
}

// HasPermissionGroup reports whether method requires an authorization check
// and, if so, the group name to check against.
func (r *Resolver) HasPermissionGroup(method string) (bool, string) {
	row, ok := r.lookup(method)
	if !ok || row.PermissionGroup == "" {
		return false, ""
	}
	return true, row.PermissionGroup
}

// Row exposes the full Resolution for method, for callers (Dispatcher,
// introspection) that need more than one field at once.
func (r *Resolver) Row(method string) (Resolution, bool) {
	return r.lookup(method)
}

func (r *Resolver) lookup(method string) (Resolution, bool) {
	snap := *r.snapshot.Load()
	row, ok := snap[strings.ToLower(method)]
	return row, ok
}

// Size returns the number of methods currently resolvable, used by the
// introspection snapshot (SPEC_FULL §4.11).
func (r *Resolver) Size() int {
	return len(*r.snapshot.Load())
}
