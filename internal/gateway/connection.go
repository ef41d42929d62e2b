// internal/gateway/connection.go
// Connection state and the AppId Registry (C8 core, spec §3/§4.8). The
// Connection Manager exclusively owns this state and the write side of
// each socket; this file holds the bookkeeping, listener.go holds the
// WebSocket transport that drives it.
package gateway

import (
	"sync"
	"sync/atomic"
)

const pendingQueueCapacity = 10

// unauthenticatedAppID is the sentinel AppID value before a connection's
// handshake has resolved a session.
const unauthenticatedAppID = ""

// pendingMessage is one JSON-RPC frame received before the connection's
// handshake authentication completed.
type pendingMessage struct {
	requestID uint32
	method    string
	raw       []byte
}

// Connection is one accepted WebSocket's gateway-local state.
type Connection struct {
	ID uint32

	mu      sync.Mutex
	appID   string
	pending []pendingMessage
}

func newConnection(id uint32) *Connection {
	return &Connection{ID: id, appID: unauthenticatedAppID}
}

// Authenticated reports whether this connection's handshake has resolved
// an appId yet.
func (c *Connection) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appID != unauthenticatedAppID
}

// AppID returns the connection's authenticated app id, or "" if none yet.
func (c *Connection) AppID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appID
}

// authenticate records appID and drains the pending queue in FIFO order,
// returning the drained messages for the caller to dispatch (spec §4.8
// "Message handling").
func (c *Connection) authenticate(appID string) []pendingMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appID = appID
	drained := c.pending
	c.pending = nil
	return drained
}

// enqueuePending appends msg to the bounded FIFO, dropping the oldest entry
// on overflow (spec §4.8, §9 "Pending-before-auth queue"). The dropped
// message, if any, is returned so the caller can synthesize its error
// response.
func (c *Connection) enqueuePending(msg pendingMessage) (dropped *pendingMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) >= pendingQueueCapacity {
		old := c.pending[0]
		c.pending = c.pending[1:]
		dropped = &old
	}
	c.pending = append(c.pending, msg)
	return dropped
}

// AppIDRegistry maps live connectionIds to their authenticated appId.
type AppIDRegistry struct {
	mu     sync.RWMutex
	byID   map[uint32]string
	nextID uint32
}

// NewAppIDRegistry returns an empty registry.
func NewAppIDRegistry() *AppIDRegistry {
	return &AppIDRegistry{byID: make(map[uint32]string)}
}

// NextConnectionID returns the next process-unique, monotonic connection
// id (spec §4.8 "Socket").
func (r *AppIDRegistry) NextConnectionID() uint32 {
	return uint32(atomic.AddUint32(&r.nextID, 1))
}

// Put records connectionId -> appId.
func (r *AppIDRegistry) Put(connectionID uint32, appID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[connectionID] = appID
}

// Remove deletes connectionId's entry, returning the appId it held (if
// any) for the disconnect notification (spec §4.8 "Disconnect").
func (r *AppIDRegistry) Remove(connectionID uint32) (appID string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appID, ok = r.byID[connectionID]
	delete(r.byID, connectionID)
	return appID, ok
}

// Get returns connectionId's appId, if registered.
func (r *AppIDRegistry) Get(connectionID uint32) (appID string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	appID, ok = r.byID[connectionID]
	return appID, ok
}

// Count returns the number of authenticated connections, for metrics.
func (r *AppIDRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
