// internal/gateway/server.go
// Server wires every gateway collaborator (Resolver, Bridge, Subscription
// Registry, Upstream Subscription Manager, worker pool, Fanout,
// Connection Manager, Dispatcher, Authenticator, audit trail) into one
// ready-to-serve instance. Grounded on the teacher's New(cfg)/ListenAndServe
// shape, generalized from a single gRPC stream server to the WebSocket
// JSON-RPC front door the spec describes.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rdkcentral/appgateway/internal/gateway/alerts"
	"github.com/rdkcentral/appgateway/internal/gateway/alerts/sinks"
	"github.com/rdkcentral/appgateway/internal/gateway/audit"
	"github.com/rdkcentral/appgateway/internal/logging"
	"github.com/rdkcentral/appgateway/internal/metrics"
)

// Server is a fully wired gateway instance, ready to accept connections.
type Server struct {
	cfg Config

	resolver   *Resolver
	bridge     *Bridge
	registry   *SubscriptionRegistry
	upstream   *UpstreamManager
	pool       *WorkerPool
	ioPool     *WorkerPool
	originTbl  *originTable
	responder  *ResponseDispatcher
	fanout     *Fanout
	notifier   *notificationBus
	authn      *SessionAuthenticator
	auditor    *AuditRecorder
	dispatcher *Dispatcher
	conns      *ConnectionManager
	alertEng   *alerts.Engine
	introspect *IntrospectionServer
}

// New wires a Server from cfg. Construction never blocks or binds a port;
// connections are accepted once Connections().Handler() is mounted on an
// HTTP server, as Router.Start does.
func New(cfg Config) (*Server, error) {
	resolver := NewResolver()
	if len(cfg.Resolver.ResolvePaths()) > 0 {
		if err := resolver.Configure(cfg.Resolver.ResolvePaths()); err != nil {
			logging.Sugar().Warnw("gateway: resolver starting unconfigured", "err", err)
		}
	}

	pool := NewWorkerPool(cfg.WorkerPoolSize)
	// Socket writes run on their own small pool (spec §5: workers hand
	// completed responses to a dedicated I/O task) so a dispatch worker
	// handing off a reply never competes with, or waits on, other dispatch
	// work for a slot.
	ioPool := NewWorkerPool(cfg.WorkerPoolSize)
	registry := NewSubscriptionRegistry()
	upstream := NewUpstreamManager()
	bridge := NewBridge()

	originTbl := newOriginTable()
	responder := NewResponseDispatcher(originTbl, ioPool)
	fanout := NewFanout(registry, responder)
	SetGlobalFanout(fanout)

	notifier := newNotificationBus(ioPool)

	var authn *SessionAuthenticator
	if cfg.JWTSecret != "" {
		authn = NewSessionAuthenticator([]byte(cfg.JWTSecret), cfg.JWTIssuer)
	} else {
		logging.Sugar().Warnw("gateway: no JWT secret configured, all session resolution will fail")
		authn = NewSessionAuthenticator(nil, cfg.JWTIssuer)
	}

	auditStore, err := newAuditStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("gateway: audit store: %w", err)
	}
	auditor := NewAuditRecorder(auditStore)

	dispatcher := NewDispatcher(resolver, bridge, registry, upstream, responder, authn, pool, auditor)

	appIDs := NewAppIDRegistry()
	conns := NewConnectionManager(cfg.ListenAddr, appIDs, authn, dispatcher, resolver, registry, upstream, notifier)
	originTbl.register(OriginGateway, conns)
	originTbl.setFallback(conns)

	if cfg.MetricsEnabled {
		metrics.Register()
	}

	var alertEng *alerts.Engine
	if cfg.AlertsEnabled {
		alertEng = newAlertEngine(cfg, dispatcher, conns)
		alertEng.Start(context.Background())
	}

	var introspect *IntrospectionServer
	if cfg.Introspect {
		introspect = NewIntrospectionServer(resolver, registry, upstream, conns)
	}

	return &Server{
		cfg:        cfg,
		resolver:   resolver,
		bridge:     bridge,
		registry:   registry,
		upstream:   upstream,
		pool:       pool,
		ioPool:     ioPool,
		originTbl:  originTbl,
		responder:  responder,
		fanout:     fanout,
		notifier:   notifier,
		authn:      authn,
		auditor:    auditor,
		dispatcher: dispatcher,
		conns:      conns,
		alertEng:   alertEng,
		introspect: introspect,
	}, nil
}

// Introspection exposes the gRPC introspection service handler, nil unless
// cfg.Introspect was set at construction (SPEC_FULL.md §4.11).
func (s *Server) Introspection() *IntrospectionServer { return s.introspect }

// defaultAlertRules sets thresholds on SPEC_FULL.md §4.12's three named
// health signals, each a cumulative count since start: downstream invoke
// failures, permission denials, and disconnects.
func defaultAlertRules() []alerts.Rule {
	return []alerts.Rule{
		{
			Name:    "downstream-invoke-failures",
			Expr:    "downstream_invoke_failures > 50",
			Message: "downstream invoke failures exceeded threshold",
		},
		{
			Name:    "permission-denials",
			Expr:    "permission_denials > 50",
			Message: "permission denial rate exceeded threshold",
		},
		{
			Name:    "disconnect-storm",
			Expr:    "disconnects > 100",
			Message: "connection disconnect count exceeded threshold",
		},
	}
}

// newAlertEngine wires the alert engine over dispatcher/conns health
// signals with a log sink always on and webhook/Slack/Jira sinks added
// per configuration.
func newAlertEngine(cfg Config, dispatcher *Dispatcher, conns *ConnectionManager) *alerts.Engine {
	sink := []alerts.Sink{sinks.NewLogSink()}
	if cfg.AlertWebhookURL != "" {
		sink = append(sink, sinks.NewWebhookSink(cfg.AlertWebhookURL))
	}
	if cfg.AlertSlackWebhookURL != "" {
		sink = append(sink, sinks.NewSlackSink(cfg.AlertSlackWebhookURL))
	}
	if cfg.AlertJiraBaseURL != "" && cfg.AlertJiraProject != "" {
		sink = append(sink, sinks.NewJiraSink(cfg.AlertJiraBaseURL, cfg.AlertJiraProject, cfg.AlertJiraEmail, cfg.AlertJiraToken))
	}
	sample := func() map[string]float64 {
		m := dispatcher.HealthSignals()
		m["disconnects"] = conns.Disconnects()
		return m
	}
	return alerts.NewEngine(defaultAlertRules(), sample, cfg.AlertsInterval, sink...)
}

// newAuditStore selects the in-memory or Redis-backed audit backend per
// cfg; returns a nil Store (disabling the trail) when AuditEnabled is
// false, which AuditRecorder treats as a no-op.
func newAuditStore(cfg Config) (audit.Store, error) {
	if !cfg.AuditEnabled {
		return nil, nil
	}
	if cfg.AuditRedisAddr == "" {
		return audit.NewInMem(cfg.AuditRetention), nil
	}
	cli := redis.NewClient(&redis.Options{Addr: cfg.AuditRedisAddr})
	return audit.NewRedis(cli, cfg.AuditRetention, 20), nil
}

// Resolver exposes the Method Resolver for reconfiguration callers (e.g. a
// config-reload signal handler or the introspection service).
func (s *Server) Resolver() *Resolver { return s.resolver }

// Authenticator exposes the SessionAuthenticator so callers can grant/revoke
// permission groups out of band (e.g. from a provisioning RPC).
func (s *Server) Authenticator() *SessionAuthenticator { return s.authn }

// RegisterNotificationSink adds sink to the connection lifecycle broadcast
// list (spec §9 design note).
func (s *Server) RegisterNotificationSink(sink NotificationSink) {
	s.notifier.Register(sink)
}

// Connections exposes the Connection Manager for the HTTP mux the binary
// assembles (WebSocket upgrade endpoint) and for metrics/introspection.
func (s *Server) Connections() *ConnectionManager { return s.conns }

// Addr returns the configured WebSocket bind address.
func (s *Server) Addr() string { return s.conns.Addr() }

// Shutdown drains the worker pool and tears down every active upstream
// subscription (spec §4.5 "Teardown"). It does not close accepted sockets;
// callers typically stop the HTTP listener first.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.alertEng != nil {
		s.alertEng.Stop()
	}

	done := make(chan struct{})
	go func() {
		s.pool.Close()
		s.ioPool.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logging.Sugar().Warnw("gateway: shutdown timed out waiting for worker pools")
	}

	teardownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.upstream.Teardown(teardownCtx)
	return nil
}
