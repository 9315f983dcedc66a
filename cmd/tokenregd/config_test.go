package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServiceConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
listen = "0.0.0.0:9000"
backend = "fs"
admin = "0xadadadadadadadadadadadadadadadadadadadad"
template_uri = "ipfs://meta/{id}"
predecessor_addr = "10.0.0.1:7788"
shared_proxies = [
  "0x1111111111111111111111111111111111111111",
  "0x2222222222222222222222222222222222222222",
]
`)

	cfg, err := loadServiceConfig(path, defaultServiceConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Listen != "0.0.0.0:9000" {
		t.Fatalf("unexpected listen: %q", cfg.Listen)
	}
	if cfg.Backend != "fs" {
		t.Fatalf("unexpected backend: %q", cfg.Backend)
	}
	if cfg.Admin.String() != "0xadadadadadadadadadadadadadadadadadadadad" {
		t.Fatalf("unexpected admin: %s", cfg.Admin)
	}
	if cfg.TemplateURI != "ipfs://meta/{id}" {
		t.Fatalf("unexpected template: %q", cfg.TemplateURI)
	}
	if cfg.PredecessorAddr != "10.0.0.1:7788" {
		t.Fatalf("unexpected predecessor: %q", cfg.PredecessorAddr)
	}
	if len(cfg.SharedProxies) != 2 {
		t.Fatalf("unexpected proxies: %+v", cfg.SharedProxies)
	}
}

func TestLoadServiceConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
template_uri = "ipfs://meta/{id}"
`)

	cfg, err := loadServiceConfig(path, defaultServiceConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Listen != "127.0.0.1:7788" {
		t.Fatalf("default listen lost: %q", cfg.Listen)
	}
	if cfg.Backend != "mem" {
		t.Fatalf("default backend lost: %q", cfg.Backend)
	}
	if !cfg.Admin.IsZero() {
		t.Fatalf("admin should stay unset: %s", cfg.Admin)
	}
}

func TestLoadServiceConfigBadAdmin(t *testing.T) {
	path := writeConfig(t, `
admin = "not-an-account"
`)
	if _, err := loadServiceConfig(path, defaultServiceConfig()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadServiceConfigBadProxy(t *testing.T) {
	path := writeConfig(t, `
shared_proxies = ["0x1234"]
`)
	if _, err := loadServiceConfig(path, defaultServiceConfig()); err == nil {
		t.Fatalf("expected parse error")
	}
}
