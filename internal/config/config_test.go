package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TMDBTimeout != 10*time.Second {
		t.Errorf("TMDBTimeout = %v, want 10s", cfg.TMDBTimeout)
	}
	if cfg.RateLimitBackend != "memory" {
		t.Errorf("RateLimitBackend = %q, want memory", cfg.RateLimitBackend)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	yaml := "port: \"9000\"\nlog_level: debug\ntmdb_timeout: 3s\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("Port = %q, want env value 9100", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want file value debug", cfg.LogLevel)
	}
	if cfg.TMDBTimeout != 3*time.Second {
		t.Errorf("TMDBTimeout = %v, want 3s", cfg.TMDBTimeout)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, "")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TMDB_API_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TMDB_API_KEY") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TMDBAPIKey != "from-dotenv" {
		t.Errorf("TMDBAPIKey = %q, want from-dotenv", cfg.TMDBAPIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty database url", func(c *Config) { c.DatabaseURL = " " }, true},
		{"unknown rate limit backend", func(c *Config) { c.RateLimitBackend = "memcached" }, true},
		{"redis backend", func(c *Config) { c.RateLimitBackend = "redis" }, false},
		{"redis backend without url", func(c *Config) { c.RateLimitBackend = "redis"; c.RedisURL = "" }, true},
		{"zero catalog rate", func(c *Config) { c.TMDBRequestsPerSecond = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	if got := envTransformFunc("DATABASE_URL"); got != "database_url" {
		t.Errorf("DATABASE_URL -> %q", got)
	}
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("PATH -> %q, want dropped", got)
	}
}
