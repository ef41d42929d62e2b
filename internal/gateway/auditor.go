// internal/gateway/auditor.go
// AuditRecorder adapts the Dispatch Audit Trail (spec §4.10) to the
// Dispatcher: every terminal dispatch decision is recorded fire-and-forget,
// never on the blocking path and never consulted for correctness.
package gateway

import (
	"time"

	"github.com/rdkcentral/appgateway/internal/gateway/audit"
	"github.com/rdkcentral/appgateway/internal/logging"
	"github.com/rdkcentral/appgateway/internal/util"
)

// AuditRecorder wraps an audit.Store with the Dispatcher's recording call.
type AuditRecorder struct {
	store audit.Store
}

// NewAuditRecorder wraps store for use by a Dispatcher. A nil *Dispatcher
// audit field disables recording entirely; this type only exists to be
// optionally attached.
func NewAuditRecorder(store audit.Store) *AuditRecorder {
	return &AuditRecorder{store: store}
}

func (a *AuditRecorder) record(connectionID uint32, appID, method, alias, status string, start time.Time) {
	if a == nil || a.store == nil {
		return
	}
	rec := audit.Record{
		ID:           util.MustNew(),
		Timestamp:    time.Now(),
		ConnectionID: connectionID,
		AppID:        appID,
		Method:       method,
		Alias:        alias,
		Status:       status,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if err := a.store.Write(rec); err != nil {
		logging.Sugar().Debugw("audit: write failed", "err", err)
	}
}

// Snapshot returns the currently retained records, newest call site wins
// for the introspection service (§4.11).
func (a *AuditRecorder) Snapshot() []audit.Record {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.ReadAll()
}
