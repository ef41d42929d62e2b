package gateway

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ListenAddr == "" {
		t.Fatal("expected a non-empty default listen address")
	}
	if cfg.WorkerPoolSize <= 0 {
		t.Fatal("expected a positive default worker pool size")
	}
	if cfg.AuditEnabled || cfg.Introspect || cfg.MetricsEnabled || cfg.AlertsEnabled {
		t.Fatal("expected every optional subsystem disabled by default")
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "listenaddr: 0.0.0.0:9000\nworkerpoolsize: 7\nauditenabled: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := DefaultConfig()
	LoadConfig(&cfg, path, "APPGATEWAY_TEST_UNUSED")

	if cfg.ListenAddr != "0.0.0.0:9000" {
		t.Fatalf("expected file override of listenaddr, got %q", cfg.ListenAddr)
	}
	if cfg.WorkerPoolSize != 7 {
		t.Fatalf("expected file override of workerpoolsize, got %d", cfg.WorkerPoolSize)
	}
	if !cfg.AuditEnabled {
		t.Fatal("expected file override to enable audit")
	}
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	original := cfg.ListenAddr
	LoadConfig(&cfg, filepath.Join(t.TempDir(), "does-not-exist.yaml"), "APPGATEWAY_TEST_UNUSED")

	if cfg.ListenAddr != original {
		t.Fatalf("expected default to survive a missing config file, got %q", cfg.ListenAddr)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("jwtissuer: from-file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("APPGWTEST_JWTISSUER", "from-env")

	cfg := DefaultConfig()
	LoadConfig(&cfg, path, "APPGWTEST")

	if cfg.JWTIssuer != "from-env" {
		t.Fatalf("expected env to take precedence over the config file, got %q", cfg.JWTIssuer)
	}
}

func TestLoadConfigResolverPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "resolver:\n  regionconfigpath: /etc/gw/regions.json\n  vendorconfigpath: /etc/gw/vendor.json\n  basepaths:\n    - /etc/gw/a.json\n    - /etc/gw/b.json\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := DefaultConfig()
	LoadConfig(&cfg, path, "APPGATEWAY_TEST_UNUSED2")

	if cfg.Resolver.RegionConfigPath != "/etc/gw/regions.json" {
		t.Fatalf("unexpected RegionConfigPath: %q", cfg.Resolver.RegionConfigPath)
	}
	if cfg.Resolver.VendorConfigPath != "/etc/gw/vendor.json" {
		t.Fatalf("unexpected VendorConfigPath: %q", cfg.Resolver.VendorConfigPath)
	}
	if len(cfg.Resolver.BasePaths) != 2 {
		t.Fatalf("expected 2 base paths, got %v", cfg.Resolver.BasePaths)
	}
}
