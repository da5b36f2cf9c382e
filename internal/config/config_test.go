package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
version: 1
server:
  addr: 127.0.0.1:9090
  grpc_addr: 127.0.0.1:9091
  db_path: /tmp/raincast.db
  static_allow:
    - css/*.css
auth:
  jwt_secret: s3cret-s3cret
  token_ttl: 12h
flash:
  ttl: 4s
  exit: 250ms
mdns:
  enable: false
model:
  version: v1.2.0
  rain_threshold: 55
  max_confidence: 90
`), "test-valid")
	if err != nil {
		t.Fatalf("parse valid config: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" || cfg.Server.GRPCAddr != "127.0.0.1:9091" {
		t.Fatalf("unexpected server section: %+v", cfg.Server)
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Fatalf("unexpected token ttl: %v", cfg.Auth.TokenTTL)
	}
	if cfg.Flash.TTL != 4*time.Second || cfg.Flash.Exit != 250*time.Millisecond {
		t.Fatalf("unexpected flash section: %+v", cfg.Flash)
	}
	if cfg.MDNS.Enable {
		t.Fatalf("expected mdns disabled")
	}
	if cfg.Model.RainThreshold != 55 || cfg.Model.MaxConfidence != 90 {
		t.Fatalf("unexpected model section: %+v", cfg.Model)
	}
}

func TestParseEmptyDocumentKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil, "empty")
	if err != nil {
		t.Fatalf("parse empty config: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr || cfg.Flash.TTL != DefaultFlashTTL {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	_, err := Parse([]byte("version: 2\n"), "test-version")
	if err == nil || !strings.Contains(err.Error(), "unsupported config version") {
		t.Fatalf("expected unsupported version error, got: %v", err)
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("version: 1\nserver:\n  listen: :1\n"), "test-unknown")
	if err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected parse YAML error, got: %v", err)
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("version: ["), "test-yaml")
	if err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected parse YAML error, got: %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Server.DBPath = " "
	cfg.Server.StaticAllow = []string{"css/[*.css"}
	cfg.Auth.JWTSecret = ""
	cfg.Flash.Exit = cfg.Flash.TTL
	cfg.Model.Version = "1.0"
	cfg.Model.MaxConfidence = 120

	errs := cfg.Validate()
	want := []string{
		"server.db_path is required",
		"server.static_allow[0] invalid pattern",
		"auth.jwt_secret is required",
		"flash.exit must be shorter than flash.ttl",
		"is not a valid semantic version",
		"model.max_confidence must be in (0, 100]",
	}
	joined := strings.Join(errs, "\n")
	for _, w := range want {
		if !strings.Contains(joined, w) {
			t.Fatalf("missing %q in validation errors:\n%s", w, joined)
		}
	}
}

func TestApplyEnvOverridesFileValues(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"RAINCAST_ADDR":        ":7000",
		"RAINCAST_DB":          "/var/lib/raincast/users.db",
		"RAINCAST_JWT_SECRET":  "from-env",
		"RAINCAST_MDNS_ENABLE": "false",
		"RAINCAST_GRPC_ADDR":   "   ",
	}
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Server.Addr != ":7000" || cfg.Server.DBPath != "/var/lib/raincast/users.db" {
		t.Fatalf("unexpected server section: %+v", cfg.Server)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("jwt secret not overridden")
	}
	if cfg.MDNS.Enable {
		t.Fatalf("mdns should be disabled by env")
	}
	if cfg.Server.GRPCAddr != "" {
		t.Fatalf("blank env value must not override, got %q", cfg.Server.GRPCAddr)
	}
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == "RAINCAST_MDNS_ENABLE" {
			return "maybe", true
		}
		return "", false
	})
	if err == nil || !strings.Contains(err.Error(), "RAINCAST_MDNS_ENABLE") {
		t.Fatalf("expected bool parse error, got %v", err)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raincast.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nserver:\n  addr: :8181\n  db_path: x.db\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RAINCAST_ADDR", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8181" || cfg.Server.DBPath != "x.db" {
		t.Fatalf("unexpected server section: %+v", cfg.Server)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("expected read error, got %v", err)
	}
}
