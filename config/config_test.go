package ifsc_integration_config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("IFSC_BASE_URL", "")
	t.Setenv("IFSC_REQUEST_TIMEOUT", "")
	t.Setenv("MODE", "")

	cfg := New("./does-not-exist.env")

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected base url %s, got %s", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("expected transport default timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.Mode != "prod" {
		t.Errorf("expected prod mode, got %s", cfg.Mode)
	}
	if GetConfig() != cfg {
		t.Errorf("GetConfig should return the last loaded config")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("IFSC_BASE_URL", "http://localhost:9000")
	t.Setenv("IFSC_REQUEST_TIMEOUT", "7")
	t.Setenv("PROXY_ADDRESS", "http://proxy.local:3128")
	t.Setenv("APP_PORT", "not-a-number")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := New("./does-not-exist.env")

	if cfg.BaseURL != "http://localhost:9000" {
		t.Errorf("unexpected base url %s", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Errorf("unexpected timeout %v", cfg.RequestTimeout)
	}
	if cfg.ProxyAddress != "http://proxy.local:3128" {
		t.Errorf("unexpected proxy %s", cfg.ProxyAddress)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("invalid port should fall back to default, got %d", cfg.AppPort)
	}
	if !cfg.TracingConfig.Enabled {
		t.Errorf("expected tracing to be enabled")
	}
}
