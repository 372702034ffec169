package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Empty values read as unset, shielding the test from the ambient env.
	for _, key := range []string{
		"DB_PATH", "DISPATCH_WORKERS", "DISPATCH_TIMEOUT",
		"PORT", "KEEPALIVE_PORT", "KEEPALIVE_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBPath != "expenses.db" {
		t.Fatalf("unexpected default db path: %q", cfg.DBPath)
	}
	if cfg.DispatchWorkers != 4 {
		t.Fatalf("unexpected default workers: %d", cfg.DispatchWorkers)
	}
	if cfg.DispatchTimeout != 10*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.DispatchTimeout)
	}
	if cfg.KeepalivePort != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.KeepalivePort)
	}
	if cfg.KeepaliveInterval != 5*time.Minute {
		t.Fatalf("unexpected default interval: %v", cfg.KeepaliveInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/x/expenses.db")
	t.Setenv("DISPATCH_WORKERS", "8")
	t.Setenv("DISPATCH_TIMEOUT", "3s")
	t.Setenv("PORT", "9000")

	cfg := Load()
	if cfg.DBPath != "/tmp/x/expenses.db" || cfg.DispatchWorkers != 8 ||
		cfg.DispatchTimeout != 3*time.Second || cfg.KeepalivePort != 9000 {
		t.Fatalf("env not honored: %+v", cfg)
	}
}

func TestValidateOK(t *testing.T) {
	cfg := Load()
	cfg.DBPath = filepath.Join(t.TempDir(), "data", "expenses.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Load()
	cfg.DBPath = ""
	cfg.DispatchWorkers = 0
	cfg.DispatchTimeout = 0
	cfg.KeepalivePort = 0
	cfg.KeepaliveURL = "ftp://nope"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"database path",
		"dispatch workers",
		"dispatch timeout",
		"keepalive port",
		"keepalive URL scheme",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing %q in: %s", want, msg)
		}
	}
}

func TestKeepaliveAddr(t *testing.T) {
	cfg := &Config{KeepaliveHost: "127.0.0.1", KeepalivePort: 8081}
	if got := cfg.KeepaliveAddr(); got != "127.0.0.1:8081" {
		t.Fatalf("unexpected addr: %q", got)
	}
}
