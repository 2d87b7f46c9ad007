package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "INTAKE_RATE_LIMIT", "INTAKE_RATE_WINDOW",
		"INTAKE_WEBHOOK_URL", "EMAIL_PROVIDER", "CORS_ALLOWED_ORIGINS", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.IntakeRateLimit != 5 {
		t.Fatalf("expected default rate limit 5, got %d", cfg.IntakeRateLimit)
	}
	if cfg.IntakeRateWindow != time.Hour {
		t.Fatalf("expected default rate window 1h, got %s", cfg.IntakeRateWindow)
	}
	if cfg.IntakeWebhookURL != DefaultWebhookURL {
		t.Fatalf("expected default webhook url, got %s", cfg.IntakeWebhookURL)
	}
	if cfg.EmailProvider != "stub" {
		t.Fatalf("expected stub email provider, got %s", cfg.EmailProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.MetricsEnabled || !cfg.MCPEnabled {
		t.Fatalf("expected metrics and mcp enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("PUBLIC_BASE_URL", "https://webmcpsetup.ai/")
	t.Setenv("INTAKE_RATE_LIMIT", "10")
	t.Setenv("INTAKE_RATE_WINDOW", "30m")
	t.Setenv("INTAKE_WEBHOOK_URL", "https://hooks.example.com/lead")
	t.Setenv("INTAKE_WEBHOOK_TIMEOUT", "3s")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("METRICS_ENABLED", "false")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.PublicBaseURL != "https://webmcpsetup.ai" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.PublicBaseURL)
	}
	if cfg.IntakeRateLimit != 10 || cfg.IntakeRateWindow != 30*time.Minute {
		t.Fatalf("unexpected rate limit config: %d/%s", cfg.IntakeRateLimit, cfg.IntakeRateWindow)
	}
	if cfg.IntakeWebhookURL != "https://hooks.example.com/lead" || cfg.IntakeWebhookTimeout != 3*time.Second {
		t.Fatalf("unexpected webhook config: %s/%s", cfg.IntakeWebhookURL, cfg.IntakeWebhookTimeout)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected normalized email provider, got %q", cfg.EmailProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("expected metrics disabled")
	}
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("INTAKE_RATE_LIMIT", "lots")
	t.Setenv("INTAKE_RATE_WINDOW", "soon")
	cfg := Load()
	if cfg.IntakeRateLimit != 5 || cfg.IntakeRateWindow != time.Hour {
		t.Fatalf("expected defaults for unparseable values, got %d/%s", cfg.IntakeRateLimit, cfg.IntakeRateWindow)
	}
}
