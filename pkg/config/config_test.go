package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("port %d", c.Server.Port)
	}
	if c.Market.Timeout != 5*time.Second || c.Market.GoldTimeout != 8*time.Second {
		t.Fatalf("timeouts %v %v", c.Market.Timeout, c.Market.GoldTimeout)
	}
	if c.Store.Backend != "memory" || !c.Store.Seed {
		t.Fatalf("store %+v", c.Store)
	}
	if len(c.Server.CORSOrigins) != 1 || c.Server.CORSOrigins[0] != "*" {
		t.Fatalf("cors %v", c.Server.CORSOrigins)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("server:\n  port: 9090\nmarket:\n  cache_ttl: 0s\nstore:\n  seed: false\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Fatalf("port %d", c.Server.Port)
	}
	if c.Market.CacheTTL != 0 {
		t.Fatalf("cache ttl %v", c.Market.CacheTTL)
	}
	if c.Store.Seed {
		t.Fatalf("seed should be off")
	}
	if c.Market.StreamInterval != 30*time.Second {
		t.Fatalf("untouched default lost: %v", c.Market.StreamInterval)
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("PORT", "7000")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	c, err := LoadWithEnv("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Admin.Password != "s3cret" || c.Server.Port != 7000 {
		t.Fatalf("env not applied: %+v", c.Admin)
	}
	if len(c.Events.Brokers) != 2 {
		t.Fatalf("brokers %v", c.Events.Brokers)
	}
}

func TestValidateRejectsPostgresWithoutDSN(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	if _, err := LoadWithEnv(""); err == nil {
		t.Fatal("expected error")
	}
}
