package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort || cfg.Addr() != ":8080" {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != DefaultDatabaseURL || cfg.DatabaseType != "sqlite" {
		t.Errorf("unexpected database config %q %q", cfg.DatabaseURL, cfg.DatabaseType)
	}
	if cfg.TokenTTL != DefaultTokenTTL {
		t.Errorf("expected 24h TTL, got %v", cfg.TokenTTL)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected log config %q %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://skins@localhost/skins")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" || cfg.DatabaseURL != "postgres://skins@localhost/skins" {
		t.Errorf("unexpected database config %q %q", cfg.DatabaseURL, cfg.DatabaseType)
	}
	if cfg.TokenTTL != 2*time.Hour || cfg.LogFormat != "json" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load([]string{"-p", "8081", "-d", "file:test.db", "-token-ttl", "30m"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8081 {
		t.Errorf("CLI should override env: expected 8081, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" || cfg.TokenTTL != 30*time.Minute {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing secret", nil, nil},
		{"short secret", map[string]string{"JWT_SECRET": "short"}, nil},
		{"bad port env", map[string]string{"JWT_SECRET": testSecret, "PORT": "abc"}, nil},
		{"port out of range", map[string]string{"JWT_SECRET": testSecret}, []string{"-p", "70000"}},
		{"bad database type", map[string]string{"JWT_SECRET": testSecret, "DATABASE_TYPE": "mysql"}, nil},
		{"bad ttl", map[string]string{"JWT_SECRET": testSecret, "TOKEN_TTL": "soon"}, nil},
		{"negative ttl", map[string]string{"JWT_SECRET": testSecret}, []string{"-token-ttl", "-1h"}},
		{"unknown flag", map[string]string{"JWT_SECRET": testSecret}, []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LOG_LEVEL=debug\nJWT_SECRET="+testSecret+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv only fills keys that are not set at all
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("JWT_SECRET")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LOG_LEVEL from .env, got %q", cfg.LogLevel)
	}
}

func TestLoad_DatabaseTypeAliases(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"sqlite", "sqlite"},
		{"SQLite", "sqlite"},
		{"postgres", "postgres"},
		{"postgresql", "postgres"},
		{"PostgreSQL", "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv("DATABASE_TYPE", tt.value)

			cfg, err := Load(nil)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.DatabaseType != tt.want {
				t.Errorf("DatabaseType = %q, want %q", cfg.DatabaseType, tt.want)
			}
		})
	}
}
