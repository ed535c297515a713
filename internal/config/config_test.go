package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Expected default driver postgres, got %s", cfg.Database.Driver)
	}
	if cfg.Auth.AccessTokenTTL != time.Hour {
		t.Errorf("Expected default access token TTL 1h, got %v", cfg.Auth.AccessTokenTTL)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("Expected rate limiting enabled by default")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("DB_DRIVER", "sqlite")
	os.Setenv("ACCESS_TOKEN_TTL", "30m")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("ACCESS_TOKEN_TTL")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Expected driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Errorf("Expected access token TTL 30m, got %v", cfg.Auth.AccessTokenTTL)
	}
}

func TestLoadConfigInvalidDriver(t *testing.T) {
	os.Setenv("DB_DRIVER", "mongodb")
	defer os.Unsetenv("DB_DRIVER")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error for unsupported driver")
	}
}

func TestLoadConfigProductionGuards(t *testing.T) {
	os.Setenv("ENVIRONMENT", "production")
	os.Setenv("DB_PASSWORD", "secret")
	defer func() {
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("DB_PASSWORD")
	}()

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error for default JWT secret in production")
	}

	os.Setenv("JWT_SECRET", "real-secret")
	defer os.Unsetenv("JWT_SECRET")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("Expected production environment")
	}
}

func TestAddressHelpers(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GetServerAddr() != "localhost:8080" {
		t.Errorf("Unexpected server addr %s", cfg.GetServerAddr())
	}
	if cfg.GetRedisAddr() != "localhost:6379" {
		t.Errorf("Unexpected redis addr %s", cfg.GetRedisAddr())
	}
}
