package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RedisURL != "" {
		t.Errorf("expected empty REDIS_URL default (fallback mode), got %q", cfg.RedisURL)
	}
	if cfg.ReservationTTL != time.Hour {
		t.Errorf("expected 1h reservation TTL, got %v", cfg.ReservationTTL)
	}
	if cfg.BronzeDir != "./bronze" {
		t.Errorf("expected ./bronze capture dir, got %q", cfg.BronzeDir)
	}
	if cfg.WorkerPoolSize != 16 {
		t.Errorf("expected worker pool size 16, got %d", cfg.WorkerPoolSize)
	}
	if cfg.UnknownCurrencyPolicy != "passthrough" {
		t.Errorf("expected passthrough policy, got %q", cfg.UnknownCurrencyPolicy)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.HTTPPort)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("RESERVATION_TTL", "30m")
	t.Setenv("RESERVATION_FALLBACK_MAX", "500")
	t.Setenv("UNKNOWN_CURRENCY_POLICY", "reject")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("unexpected redis URL %q", cfg.RedisURL)
	}
	if cfg.ReservationTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.ReservationTTL)
	}
	if cfg.ReservationFallbackMax != 500 {
		t.Errorf("expected fallback cap 500, got %d", cfg.ReservationFallbackMax)
	}
	if cfg.UnknownCurrencyPolicy != "reject" {
		t.Errorf("expected reject policy, got %q", cfg.UnknownCurrencyPolicy)
	}
}
