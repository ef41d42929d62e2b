// internal/gateway/introspect.go
// IntrospectionServer implements internal/introspectpb.IntrospectionService
// (SPEC_FULL.md §4.11): a read-only gRPC push of gateway runtime state to
// operator tooling. Grounded on the teacher's UIService.StreamFlamegraphs
// handler (server.go's ticker-driven push loop), re-themed from flamegraph
// frames to counts of connections/subscriptions/resolutions. Never consulted
// by the dispatch path -- purely diagnostic, like the audit trail (§4.10).
package gateway

import (
	"time"

	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/rdkcentral/appgateway/internal/introspectpb"
	"github.com/rdkcentral/appgateway/internal/logging"
)

const introspectPushInterval = 5 * time.Second

// IntrospectionServer adapts a Server's collaborators to the generated
// IntrospectionServiceServer interface.
type IntrospectionServer struct {
	introspectpb.UnimplementedIntrospectionServiceServer

	resolver *Resolver
	registry *SubscriptionRegistry
	upstream *UpstreamManager
	conns    *ConnectionManager
}

// NewIntrospectionServer wires an IntrospectionServer over a Server's
// already-constructed collaborators.
func NewIntrospectionServer(resolver *Resolver, registry *SubscriptionRegistry, upstream *UpstreamManager, conns *ConnectionManager) *IntrospectionServer {
	return &IntrospectionServer{resolver: resolver, registry: registry, upstream: upstream, conns: conns}
}

// StreamState pushes a snapshot every introspectPushInterval until the
// client disconnects or the stream errors.
func (s *IntrospectionServer) StreamState(_ *emptypb.Empty, stream introspectpb.IntrospectionService_StreamStateServer) error {
	ticker := time.NewTicker(introspectPushInterval)
	defer ticker.Stop()

	if err := stream.Send(s.snapshot()); err != nil {
		return err
	}
	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case <-ticker.C:
			if err := stream.Send(s.snapshot()); err != nil {
				logging.Sugar().Warnw("introspection: send failed", "err", err)
				return err
			}
		}
	}
}

func (s *IntrospectionServer) snapshot() *introspectpb.GatewayStateSnapshot {
	return &introspectpb.GatewayStateSnapshot{
		Connections:           int64(s.conns.Count()),
		Subscriptions:         int64(s.registry.Count()),
		UpstreamSubscriptions: int64(s.upstream.Count()),
		ResolverMethods:       int64(s.resolver.Size()),
		TakenAtUnixMs:         time.Now().UnixMilli(),
	}
}
