package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// go test -v --run TestLoadFromDefaults
func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.MetalPrice.Timeout != 5*time.Second {
		t.Errorf("expected 5s upstream timeout, got %v", cfg.MetalPrice.Timeout)
	}
	if cfg.MetalPrice.Currency != "XAU" || cfg.MetalPrice.Base != "USD" {
		t.Errorf("unexpected currency pair: %s/%s", cfg.MetalPrice.Currency, cfg.MetalPrice.Base)
	}
	if cfg.Log.Environment != "dev" {
		t.Errorf("expected log environment to follow top-level environment, got %q", cfg.Log.Environment)
	}
}

// go test -v --run TestLoadFromFileAndEnv
func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  addr: ":9090"
mail:
  user: "desk@example.com"
metalprice:
  timeout: 2s
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("METALPRICE_API_KEY", "from-env")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected file addr, got %q", cfg.Server.Addr)
	}
	if cfg.MetalPrice.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.MetalPrice.Timeout)
	}
	if cfg.MetalPrice.APIKey != "from-env" {
		t.Errorf("expected env override for api key, got %q", cfg.MetalPrice.APIKey)
	}
	if cfg.Mail.From != "desk@example.com" || cfg.Mail.To != "desk@example.com" {
		t.Errorf("expected mail from/to to default to user, got %q/%q", cfg.Mail.From, cfg.Mail.To)
	}
}

// go test -v --run TestResolveSecrets
func TestResolveSecrets(t *testing.T) {
	cfg := &Config{}
	cfg.MetalPrice.APIKey = "yaml-key"
	cfg.Relay.AccessKey = "yaml-relay"

	params := map[string]string{
		ParamMetalPriceAPIKey: "ssm-key",
		ParamMailUser:         "hr@example.com",
		ParamDBPassword:       "secret",
	}
	cfg.resolveSecrets(func(name string, _ bool) string { return params[name] })

	if cfg.MetalPrice.APIKey != "ssm-key" {
		t.Errorf("expected ssm api key, got %q", cfg.MetalPrice.APIKey)
	}
	if cfg.Relay.AccessKey != "yaml-relay" {
		t.Errorf("missing parameter should keep yaml value, got %q", cfg.Relay.AccessKey)
	}
	if cfg.Mail.From != "hr@example.com" || cfg.Mail.To != "hr@example.com" {
		t.Errorf("unexpected mail addresses: %q/%q", cfg.Mail.From, cfg.Mail.To)
	}
	if cfg.Postgres.Password != "secret" {
		t.Errorf("expected db password from ssm, got %q", cfg.Postgres.Password)
	}
}

// go test -v --run TestPostgresDSN
func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		DBName: "goldsite", SSLMode: "disable", TimeZone: "UTC",
	}

	want := "host=db port=5432 user=u password=p dbname=goldsite sslmode=disable TimeZone=UTC"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN mismatch\n got: %s\nwant: %s", got, want)
	}
	if got := cfg.ServerDSN(); got != "host=db port=5432 user=u password=p dbname=postgres sslmode=disable TimeZone=UTC" {
		t.Errorf("unexpected server DSN: %s", got)
	}
}
