package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:          "8080",
		DBPath:        "./data/vicoba.db",
		JWTSecret:     "test-secret-key-at-least-32-bytes!!",
		TokenDuration: 24 * time.Hour,
		AdminPhone:    "255123456789",
		AdminPIN:      "1234",
		AdminGroup:    "TEST_GROUP",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"seeding disabled", func(c *Config) { c.AdminPhone = "" }, ""},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"empty db path", func(c *Config) { c.DBPath = "" }, "DB_PATH"},
		{"short jwt secret", func(c *Config) { c.JWTSecret = "short" }, "JWT_SECRET"},
		{"zero token duration", func(c *Config) { c.TokenDuration = 0 }, "TOKEN_DURATION"},
		{"bad admin phone", func(c *Config) { c.AdminPhone = "0712345678" }, "ADMIN_PHONE"},
		{"bad admin pin", func(c *Config) { c.AdminPIN = "12" }, "ADMIN_PIN"},
		{"bad admin group", func(c *Config) { c.AdminGroup = "a" }, "ADMIN_GROUP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port: got %s, want 8080", cfg.Port)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("TokenDuration: got %v, want 24h", cfg.TokenDuration)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90m")
	if got := getEnvDuration("TEST_DURATION", time.Hour); got != 90*time.Minute {
		t.Errorf("got %v, want 90m", got)
	}

	t.Setenv("TEST_DURATION", "not-a-duration")
	if got := getEnvDuration("TEST_DURATION", time.Hour); got != time.Hour {
		t.Errorf("got %v, want fallback 1h", got)
	}
}
