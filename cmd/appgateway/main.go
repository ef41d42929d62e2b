// cmd/appgateway/main.go
// Binary entrypoint for the app gateway: a loopback WebSocket JSON-RPC front
// door bridging browser/native apps to the in-process plugin framework.
// Configured via CLI flags, environment variables, and an optional config
// file, with sane defaults for local development.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rdkcentral/appgateway/internal/gateway"
	"github.com/rdkcentral/appgateway/internal/logging"

	// Capability plugins self-register from init(); the real plugin framework
	// would discover these over IPC, the local dev binary links them in.
	_ "github.com/rdkcentral/appgateway/internal/plugins/example/devicecaps"
)

func main() {
	configFile := flag.String("config", "", "path to a gateway config file (JSON, optional)")
	listen := flag.String("listen", "", "WebSocket listen address (host:port), overrides config/env")
	resolverPaths := flag.String("resolver-paths", "", "comma-separated resolution file paths, overrides config/env")
	flag.Parse()

	lg, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	logging.Set(lg)
	defer lg.Sync()

	cfg := gateway.DefaultConfig()
	gateway.LoadConfig(&cfg, *configFile, "APPGATEWAY")
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *resolverPaths != "" {
		cfg.Resolver.BasePaths = splitCommaList(*resolverPaths)
	}

	router, err := gateway.NewRouter(cfg)
	if err != nil {
		lg.Fatal("gateway init", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		lg.Info("signal received, shutting down")
		cancel()
	}()

	if err := router.Start(ctx); err != nil {
		lg.Fatal("serve", zap.Error(err))
	}

	lg.Info("goodbye")
}

func splitCommaList(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
