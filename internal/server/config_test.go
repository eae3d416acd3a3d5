package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/ifta-report/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Fatalf("expected default max upload size, got %d", cfg.UploadSizeBytes())
	}
	if cfg.RateLimit.AdvisoryPerMinute != constants.DefaultAdvisoryRequestsPerMinute {
		t.Fatalf("expected default advisory rate, got %d", cfg.RateLimit.AdvisoryPerMinute)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 {
		t.Fatalf("expected a default CORS origin, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.ConfigFile != "" {
		t.Fatalf("expected no report config by default, got %s", cfg.ConfigFile)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address == "" {
		t.Fatal("expected defaults for an empty path")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxUploadSize: 2M
configFile: config.yaml
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
cors:
  allowedOrigins:
    - " https://fleet.example.com "
    - ""
rateLimit:
  advisoryPerMinute: 12
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max upload override, got %d", cfg.UploadSizeBytes())
	}
	if cfg.ConfigFile != "config.yaml" {
		t.Fatalf("expected configFile override, got %s", cfg.ConfigFile)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://fleet.example.com" {
		t.Fatalf("expected trimmed origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.RateLimit.AdvisoryPerMinute != 12 {
		t.Fatalf("expected advisory rate override, got %d", cfg.RateLimit.AdvisoryPerMinute)
	}
	if cfg.RateLimit.AdvisoryBurst != constants.DefaultAdvisoryBurst {
		t.Fatalf("expected default burst, got %d", cfg.RateLimit.AdvisoryBurst)
	}
}

func TestLoadConfigInvalidSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("maxUploadSize: invalid"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid size but got nil")
	}
}

func TestSetUploadSizeBytes(t *testing.T) {
	cfg := defaultConfig()
	cfg.SetUploadSizeBytes(0)
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Fatalf("non-positive override should be ignored")
	}
	cfg.SetUploadSizeBytes(4096)
	if cfg.UploadSizeBytes() != 4096 || cfg.MaxUploadSize != "4096" {
		t.Fatalf("expected override to 4096, got %d (%s)", cfg.UploadSizeBytes(), cfg.MaxUploadSize)
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxUploadSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, input := range []string{"1G", "1TB", "abc", "MB"} {
		if _, err := ParseSize(input); err == nil {
			t.Fatalf("ParseSize(%q) expected error", input)
		}
	}
}
