// internal/gateway/router.go
// Router bundles the WebSocket Connection Manager with the optional
// Prometheus metrics HTTP server so a single caller can start/stop the
// whole gateway process. Grounded on the teacher's gRPC+HTTP dual-listener
// Router, generalized from gRPC-gateway-plus-UI-stream to WebSocket-plus-
// metrics.
package gateway

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/rdkcentral/appgateway/internal/introspectpb"
	"github.com/rdkcentral/appgateway/internal/logging"
)

// Router owns the process-level HTTP listeners: the WebSocket upgrade
// endpoint and, if enabled, a separate /metrics server and the gRPC
// introspection service (SPEC_FULL.md §4.11).
type Router struct {
	srv *Server
	cfg Config

	wsSrv      *http.Server
	metricsSrv *http.Server
	grpcSrv    *grpc.Server
	grpcLis    net.Listener
	wg         sync.WaitGroup
}

// NewRouter wires the underlying Server and prepares the HTTP listeners
// described by cfg. The gateway's WebSocket endpoint always starts;
// cfg.MetricsEnabled additionally starts a metrics server on a distinct
// address so operator tooling never shares a port with app traffic.
func NewRouter(cfg Config) (*Router, error) {
	srv, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Router{srv: srv, cfg: cfg}, nil
}

// Server exposes the underlying wired Server, e.g. for introspection wiring
// or tests that need direct access to the Resolver/Authenticator.
func (r *Router) Server() *Server { return r.srv }

// Start launches every configured listener and blocks until ctx is
// cancelled, then shuts down the metrics, introspection and WebSocket
// servers, in that order, followed by the Server.
func (r *Router) Start(ctx context.Context) error {
	wsMux := http.NewServeMux()
	wsMux.Handle("/", r.srv.Connections().Handler())
	r.wsSrv = &http.Server{Addr: r.srv.Addr(), Handler: wsMux}

	r.wg.Add(1)
	var wsErr error
	go func() {
		defer r.wg.Done()
		logging.Sugar().Infow("gateway: websocket listening", "addr", r.wsSrv.Addr)
		if err := r.wsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			wsErr = err
		}
	}()

	if r.cfg.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		r.metricsSrv = &http.Server{Addr: r.cfg.MetricsAddr, Handler: metricsMux}

		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			logging.Sugar().Infow("gateway: metrics listening", "addr", r.metricsSrv.Addr)
			if err := r.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Sugar().Warnw("gateway: metrics server error", "err", err)
			}
		}()
	}

	if r.cfg.Introspect && r.srv.Introspection() != nil {
		lis, err := net.Listen("tcp", r.cfg.IntrospectAddr)
		if err != nil {
			logging.Sugar().Warnw("gateway: introspection listener failed, disabling", "addr", r.cfg.IntrospectAddr, "err", err)
		} else {
			r.grpcLis = lis
			r.grpcSrv = grpc.NewServer()
			introspectpb.RegisterIntrospectionServiceServer(r.grpcSrv, r.srv.Introspection())

			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				logging.Sugar().Infow("gateway: introspection listening", "addr", lis.Addr())
				if err := r.grpcSrv.Serve(lis); err != nil {
					logging.Sugar().Warnw("gateway: introspection server error", "err", err)
				}
			}()
		}
	}

	<-ctx.Done()

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if r.metricsSrv != nil {
		_ = r.metricsSrv.Shutdown(shutCtx)
	}
	if r.grpcSrv != nil {
		r.grpcSrv.GracefulStop()
	}
	_ = r.wsSrv.Shutdown(shutCtx)
	_ = r.srv.Shutdown(shutCtx)

	r.wg.Wait()
	return wsErr
}
