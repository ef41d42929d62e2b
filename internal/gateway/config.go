// internal/gateway/config.go
// Config is the gateway's process-level configuration (listen address, auth
// secret, worker pool size, audit trail backend, introspection toggle).
// Loaded via spf13/viper with flags > env > file > defaults precedence
// (cmd/appgateway applies its flags after LoadConfig) -- a deliberately
// distinct mechanism from the
// Method Resolver's own layered JSON config (C1, resolverconfig.go), which
// has its own last-file-wins/region-selection semantics viper does not
// model (see SPEC_FULL.md §2).
package gateway

import (
	"crypto/tls"
	"time"

	"github.com/spf13/viper"
)

// Config parameterizes a running gateway instance.
type Config struct {
	ListenAddr      string        // loopback WebSocket bind address, default "127.0.0.1:3473"
	TLSConfig       *tls.Config   // nil to serve over plaintext
	TLSCertPath     string        // path to TLS certificate (PEM)
	TLSKeyPath      string        // path to TLS key (PEM)
	JWTSecret       string        // HMAC secret validating the handshake session token
	JWTIssuer       string        // expected iss claim; empty accepts any issuer
	WorkerPoolSize  int           // size of each of the two worker pools (dispatch, and socket-write I/O)
	AuditEnabled    bool          // enable the dispatch audit trail (§4.10)
	AuditRedisAddr  string        // non-empty selects the redis audit backend over in-memory
	AuditRetention  time.Duration // how long an audit entry is kept
	Introspect      bool          // enable the gRPC introspection service (§4.11)
	IntrospectAddr  string        // bind address for the introspection service
	MetricsEnabled  bool          // expose a Prometheus /metrics endpoint
	MetricsAddr     string        // bind address for the metrics HTTP server
	Resolver        ResolverConfig

	AlertsEnabled        bool          // enable the alert engine (§4.12)
	AlertsInterval       time.Duration // how often the alert engine samples health signals
	AlertWebhookURL      string        // non-empty adds a webhook sink alongside the always-on log sink
	AlertSlackWebhookURL string        // non-empty adds a Slack sink
	AlertJiraBaseURL     string        // non-empty (with AlertJiraProject) adds a Jira sink
	AlertJiraProject     string        // Jira project key, e.g. "GW"
	AlertJiraEmail       string        // Jira basic-auth email
	AlertJiraToken       string        // Jira basic-auth API token
}

// DefaultConfig returns production-ready defaults suitable for local dev.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     "127.0.0.1:3473",
		WorkerPoolSize: 2,
		AuditEnabled:   false,
		AuditRetention: 15 * time.Minute,
		Introspect:     false,
		IntrospectAddr: "127.0.0.1:3474",
		MetricsEnabled: false,
		MetricsAddr:    "127.0.0.1:9473",
		AlertsEnabled:  false,
		AlertsInterval: 30 * time.Second,
	}
}

// LoadConfig merges file + env into cfg (caller typically passes
// DefaultConfig()). filePath may be empty. envPrefix e.g. "APPGATEWAY".
func LoadConfig(cfg *Config, filePath, envPrefix string) {
	if cfg == nil {
		tmp := DefaultConfig()
		cfg = &tmp
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if filePath != "" {
		v.SetConfigFile(filePath)
		_ = v.ReadInConfig() // missing file is non-fatal; defaults still apply
	}

	v.SetDefault("listenaddr", cfg.ListenAddr)
	v.SetDefault("workerpoolsize", cfg.WorkerPoolSize)
	v.SetDefault("auditenabled", cfg.AuditEnabled)
	v.SetDefault("introspect", cfg.Introspect)
	v.SetDefault("introspectaddr", cfg.IntrospectAddr)
	v.SetDefault("metricsenabled", cfg.MetricsEnabled)
	v.SetDefault("metricsaddr", cfg.MetricsAddr)

	cfg.ListenAddr = v.GetString("listenaddr")
	cfg.JWTSecret = v.GetString("jwtsecret")
	cfg.JWTIssuer = v.GetString("jwtissuer")
	cfg.WorkerPoolSize = v.GetInt("workerpoolsize")
	cfg.AuditEnabled = v.GetBool("auditenabled")
	cfg.AuditRedisAddr = v.GetString("auditredisaddr")
	cfg.Introspect = v.GetBool("introspect")
	cfg.IntrospectAddr = v.GetString("introspectaddr")
	cfg.MetricsEnabled = v.GetBool("metricsenabled")
	cfg.MetricsAddr = v.GetString("metricsaddr")
	cfg.AlertsEnabled = v.GetBool("alertsenabled")
	cfg.AlertWebhookURL = v.GetString("alertwebhookurl")
	cfg.AlertSlackWebhookURL = v.GetString("alertslackwebhookurl")
	cfg.AlertJiraBaseURL = v.GetString("alertjirabaseurl")
	cfg.AlertJiraProject = v.GetString("alertjiraproject")
	cfg.AlertJiraEmail = v.GetString("alertjiraemail")
	cfg.AlertJiraToken = v.GetString("alertjiratoken")
	if d := v.GetDuration("alertsinterval"); d > 0 {
		cfg.AlertsInterval = d
	}
	cfg.Resolver.RegionConfigPath = v.GetString("resolver.regionconfigpath")
	cfg.Resolver.VendorConfigPath = v.GetString("resolver.vendorconfigpath")
	cfg.Resolver.BuildConfigPath = v.GetString("resolver.buildconfigpath")
	if paths := v.GetStringSlice("resolver.basepaths"); len(paths) > 0 {
		cfg.Resolver.BasePaths = paths
	}

	certPath := v.GetString("tlscertpath")
	keyPath := v.GetString("tlskeypath")
	if certPath != "" && keyPath != "" {
		if cert, err := tls.LoadX509KeyPair(certPath, keyPath); err == nil {
			cfg.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
			cfg.TLSCertPath, cfg.TLSKeyPath = certPath, keyPath
		}
	}
}
