package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ENVIRONMENT", "")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("Expected default port 5000, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("Expected default token TTL of 2h, got %v", cfg.TokenTTL)
	}
	if cfg.IsProduction() {
		t.Error("Expected development mode by default")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("Expected localhost dev origin default, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadParsesOriginList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://food-garden-bd.web.app, http://localhost:5173")

	cfg := Load()

	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("Expected 2 origins, got %d", len(cfg.AllowedOrigins))
	}
	if cfg.AllowedOrigins[1] != "http://localhost:5173" {
		t.Errorf("Expected whitespace-trimmed origin, got %q", cfg.AllowedOrigins[1])
	}
}

func TestLoadInvalidTTLFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := Load()

	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("Expected fallback TTL of 2h, got %v", cfg.TokenTTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when MONGODB_URI is missing")
	}

	cfg.MongoURI = "mongodb://localhost:27017/foodsdb"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when JWT_SECRET is missing")
	}

	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}
