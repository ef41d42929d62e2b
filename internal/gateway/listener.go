// internal/gateway/listener.go
// ConnectionManager is the Connection Manager (C8): a WebSocket server with
// per-connection identity, bounded pre-auth queuing, and disconnect cleanup
// (spec §4.8). Grounded on the teacher's listener.go (gorilla/websocket
// upgrade + per-connection writer loop), generalized from a single
// broadcast stream to per-connection JSON-RPC request/response framing, and
// implementing Responder so the Dispatcher/Fanout can write back through it
// without knowing it is a socket.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/atomic"

	"github.com/rdkcentral/appgateway/internal/logging"
	"github.com/rdkcentral/appgateway/internal/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// socket is one accepted WebSocket's transport half; connection.go's
// Connection holds the identity/queue half. Writes are serialized by
// writeMu because gorilla/websocket forbids concurrent writers on one
// connection.
type socket struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func (s *socket) writeJSON(frame []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.ws.WriteMessage(websocket.TextMessage, frame)
}

// ConnectionManager accepts WebSocket connections, authenticates their
// handshake session token, and feeds framed JSON-RPC requests to a
// Dispatcher. It also implements Responder for OriginGateway.
type ConnectionManager struct {
	addr string

	appIDs *AppIDRegistry
	auth   Authenticator

	dispatcher    *Dispatcher
	resolver      *Resolver
	registry      *SubscriptionRegistry
	upstream      *UpstreamManager
	notifications *notificationBus

	mu      sync.RWMutex
	sockets map[uint32]*socket
	conns   map[uint32]*Connection

	disconnects atomic.Uint64
}

// NewConnectionManager wires a ConnectionManager over its collaborators.
// addr is the loopback bind address (spec §6, default "127.0.0.1:3473").
func NewConnectionManager(addr string, appIDs *AppIDRegistry, auth Authenticator, dispatcher *Dispatcher, resolver *Resolver, registry *SubscriptionRegistry, upstream *UpstreamManager, notifications *notificationBus) *ConnectionManager {
	return &ConnectionManager{
		addr:          addr,
		appIDs:        appIDs,
		auth:          auth,
		dispatcher:    dispatcher,
		resolver:      resolver,
		registry:      registry,
		upstream:      upstream,
		notifications: notifications,
		sockets:       make(map[uint32]*socket),
		conns:         make(map[uint32]*Connection),
	}
}

// Addr returns the configured bind address.
func (m *ConnectionManager) Addr() string { return m.addr }

// Handler returns the http.HandlerFunc to mount at the gateway's WebSocket
// path.
func (m *ConnectionManager) Handler() http.HandlerFunc {
	return m.handleWebSocket
}

func (m *ConnectionManager) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionToken := r.URL.Query().Get("session")
	if sessionToken == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Sugar().Warnw("connection manager: ws upgrade failed", "err", err)
		return
	}

	connectionID := m.appIDs.NextConnectionID()
	conn := newConnection(connectionID)
	sock := &socket{ws: ws}

	m.mu.Lock()
	m.sockets[connectionID] = sock
	m.conns[connectionID] = conn
	m.mu.Unlock()
	metrics.ActiveConnections.Inc()

	logging.Sugar().Infow("connection manager: accepted", "connectionId", connectionID)

	// Handshake authentication runs on its own goroutine so the read loop
	// can start immediately; any frames that arrive first land in the
	// bounded pending queue (spec §4.8 "Message handling"). Not a worker
	// pool unit: draining the pending queue submits dispatches into the
	// pool, and a handshake occupying a pool slot while doing so could
	// starve the very workers it is waiting on.
	go m.authenticateConnection(r.Context(), connectionID, conn, sessionToken)

	m.readLoop(connectionID, conn, sock)
}

func (m *ConnectionManager) authenticateConnection(ctx context.Context, connectionID uint32, conn *Connection, sessionToken string) {
	if m.auth == nil {
		m.closeConnection(connectionID, websocket.CloseInternalServerErr, "auth not configured")
		return
	}
	appID, ok := m.auth.ResolveSession(ctx, sessionToken)
	if !ok {
		m.closeConnection(connectionID, websocket.ClosePolicyViolation, "session resolution failed")
		return
	}

	drained := conn.authenticate(appID)
	m.appIDs.Put(connectionID, appID)
	m.notifications.Broadcast(appID, connectionID, true)

	for _, msg := range drained {
		m.dispatch(connectionID, conn, msg.requestID, msg.method, msg.raw)
	}
}

func (m *ConnectionManager) readLoop(connectionID uint32, conn *Connection, sock *socket) {
	defer m.handleDisconnect(connectionID)

	for {
		_, raw, err := sock.ws.ReadMessage()
		if err != nil {
			return
		}

		var req rpcRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			logging.Sugar().Warnw("connection manager: malformed frame", "connectionId", connectionID, "err", err)
			continue
		}
		if req.ID == nil {
			logging.Sugar().Warnw("connection manager: frame missing id, dropped", "connectionId", connectionID)
			continue
		}
		if req.Method == nil || *req.Method == "" {
			if resp, err := buildErrorResponse(*req.ID, ErrBadRequest); err == nil {
				_ = sock.writeJSON(resp)
			}
			continue
		}

		if !conn.Authenticated() {
			dropped := conn.enqueuePending(pendingMessage{requestID: *req.ID, method: *req.Method, raw: req.Params})
			if dropped != nil {
				if resp, err := buildErrorResponse(dropped.requestID, ErrInternalError); err == nil {
					_ = sock.writeJSON(resp)
				}
			}
			continue
		}

		m.dispatch(connectionID, conn, *req.ID, *req.Method, req.Params)
	}
}

func (m *ConnectionManager) dispatch(connectionID uint32, conn *Connection, requestID uint32, method string, params json.RawMessage) {
	gwCtx := Context{RequestID: requestID, ConnectionID: connectionID, AppID: conn.AppID()}
	if params == nil {
		params = json.RawMessage("null")
	}
	m.dispatcher.Dispatch(context.Background(), gwCtx, OriginGateway, method, params)
}

func (m *ConnectionManager) handleDisconnect(connectionID uint32) {
	m.disconnects.Inc()
	appID, _ := m.appIDs.Remove(connectionID)

	m.mu.Lock()
	sock := m.sockets[connectionID]
	delete(m.sockets, connectionID)
	delete(m.conns, connectionID)
	m.mu.Unlock()
	metrics.ActiveConnections.Dec()

	if sock != nil {
		_ = sock.ws.Close()
	}

	if appID != "" {
		m.notifications.Broadcast(appID, connectionID, false)
	}

	// Registry keys are app-facing method names; each emptied event maps
	// back to its upstream (module, event) pair through the resolver's
	// alias. An event whose method has since been dropped from the resolver
	// table has no alias to unsubscribe by; the upstream manager retries on
	// the next edge transition (spec §7 "Propagation policy").
	emptied := m.registry.Cleanup(connectionID, OriginGateway)
	for _, eventKey := range emptied {
		alias := m.resolver.ResolveAlias(eventKey)
		if alias == "" {
			logging.Sugar().Warnw("connection manager: no resolution for emptied event", "event", eventKey)
			continue
		}
		module, event := parseAlias(alias)
		if err := m.upstream.Unsubscribe(context.Background(), module, event); err != nil {
			logging.Sugar().Warnw("connection manager: cleanup unsubscribe failed", "alias", alias, "err", err)
		}
	}
	metrics.ActiveSubscriptions.Set(float64(m.registry.Count()))
	metrics.UpstreamSubscriptionsActive.Set(float64(m.upstream.Count()))

	logging.Sugar().Infow("connection manager: disconnected", "connectionId", connectionID)
}

func (m *ConnectionManager) closeConnection(connectionID uint32, code int, reason string) {
	m.mu.RLock()
	sock := m.sockets[connectionID]
	m.mu.RUnlock()
	if sock == nil {
		return
	}
	deadline := time.Now().Add(time.Second)
	_ = sock.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	_ = sock.ws.Close()
}

// Count returns the number of currently-accepted connections, for metrics.
func (m *ConnectionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sockets)
}

// Disconnects returns the cumulative number of disconnects observed since
// process start, for the alert engine's SampleFunc (SPEC_FULL.md §4.12).
func (m *ConnectionManager) Disconnects() float64 {
	return float64(m.disconnects.Load())
}

// Responder implementation -------------------------------------------------

func (m *ConnectionManager) socketFor(connectionID uint32) *socket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sockets[connectionID]
}

// WriteResult implements Responder.
func (m *ConnectionManager) WriteResult(connectionID, requestID uint32, payload string) error {
	sock := m.socketFor(connectionID)
	if sock == nil {
		return errConnectionGone(connectionID)
	}
	frame, err := buildResponse(requestID, payload)
	if err != nil {
		return err
	}
	return sock.writeJSON(frame)
}

// WriteError implements Responder.
func (m *ConnectionManager) WriteError(connectionID, requestID uint32, rpcErr RPCError) error {
	sock := m.socketFor(connectionID)
	if sock == nil {
		return errConnectionGone(connectionID)
	}
	frame, err := buildErrorResponse(requestID, rpcErr)
	if err != nil {
		return err
	}
	return sock.writeJSON(frame)
}

// WriteNotification implements Responder.
func (m *ConnectionManager) WriteNotification(connectionID uint32, method, payload string) error {
	sock := m.socketFor(connectionID)
	if sock == nil {
		return errConnectionGone(connectionID)
	}
	frame, err := buildNotification(method, payload)
	if err != nil {
		return err
	}
	return sock.writeJSON(frame)
}

// WriteRequest implements Responder.
func (m *ConnectionManager) WriteRequest(connectionID, requestID uint32, method, params string) error {
	sock := m.socketFor(connectionID)
	if sock == nil {
		return errConnectionGone(connectionID)
	}
	frame, err := buildServerRequest(requestID, method, params)
	if err != nil {
		return err
	}
	return sock.writeJSON(frame)
}

func errConnectionGone(connectionID uint32) error {
	return &connectionGoneError{connectionID: connectionID}
}

type connectionGoneError struct {
	connectionID uint32
}

func (e *connectionGoneError) Error() string {
	return "connection manager: connection " + strconv.FormatUint(uint64(e.connectionID), 10) + " is gone"
}
