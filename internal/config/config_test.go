package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_SECRET", "MAX_PAGE_SIZE", "ENFORCE_OWNERSHIP", "CORS_ALLOWED_ORIGINS", "TRUST_PROXY_HEADERS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.MaxPageSize != 100 || !cfg.EnforceOwnership || cfg.JWTExpireHours != 24 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TrustProxyHeaders {
		t.Error("proxy headers must not be trusted by default")
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_PAGE_SIZE", "25")
	t.Setenv("ENFORCE_OWNERSHIP", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,http://localhost:3000 ")

	cfg := Load()
	if cfg.Port != "9090" || cfg.MaxPageSize != 25 || cfg.EnforceOwnership {
		t.Errorf("unexpected config: %+v", cfg)
	}
	want := []string{"https://a.example.com", "http://localhost:3000"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Errorf("CORS origins: got %v, want %v", cfg.CORSAllowedOrigins, want)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("MAX_PAGE_SIZE", "-5")
	if cfg := Load(); cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize: got %d, want 100", cfg.MaxPageSize)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{Env: "prod", JWTSecret: defaultJWTSecret}).Validate(); err == nil {
		t.Error("expected error for default secret in prod")
	}
	if err := (Config{Env: "prod", JWTSecret: "long-random-secret"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Config{Env: "dev", TLSCertFile: "cert.pem"}).Validate(); err == nil {
		t.Error("expected error for cert without key")
	}
}
