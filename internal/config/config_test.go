package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{KeyBaseURL, KeyFile, KeyNamesFile, KeyExportDir, KeyTimeoutMS, KeyRetryMax, KeyLogLevel} {
		t.Setenv(k, "")
	}
}

func TestLoadReadsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	content := []byte("# comment\nORDERS_BASE_URL=http://localhost:8080/\nNAMES_FILE=names.yaml\nORDERS_TIMEOUT_MS=2500\nORDERS_RETRY_MAX=2\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" || cfg.NamesFile != "names.yaml" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Timeout != 2500*time.Millisecond || cfg.RetryMax != 2 {
		t.Fatalf("unexpected timeout/retry: %+v", cfg)
	}
	if cfg.ExportDir != "." {
		t.Fatalf("expected default export dir, got %q", cfg.ExportDir)
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.RetryMax != 0 {
		t.Fatalf("retries must be off by default, got %d", cfg.RetryMax)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	if err := os.WriteFile(path, []byte("ORDERS_BASE_URL=http://file\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv(KeyBaseURL, "http://env")
	t.Setenv(KeyFile, "orders.jsonc")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://env" {
		t.Fatalf("expected base url from env, got %q", cfg.BaseURL)
	}
	if cfg.OrdersFile != "orders.jsonc" {
		t.Fatalf("expected orders file from env, got %q", cfg.OrdersFile)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyTimeoutMS, "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
	t.Setenv(KeyTimeoutMS, "")
	t.Setenv(KeyRetryMax, "-1")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for negative retry max")
	}
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	cfg := Config{BaseURL: "https://example.com", ExportDir: "out", Timeout: 3 * time.Second}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	expected := "ORDERS_BASE_URL=https://example.com\nEXPORT_DIR=out\nORDERS_TIMEOUT_MS=3000\n"
	if string(data) != expected {
		t.Fatalf("file content = %q, want %q", string(data), expected)
	}
}

func TestLogLevel(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	if err := os.WriteFile(path, []byte("LOG_LEVEL=Warn\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}

	t.Setenv(KeyLogLevel, "loud")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cfg")
	want := Config{BaseURL: "https://example.com", ExportDir: "out", Timeout: 3 * time.Second, RetryMax: 2, LogLevel: "debug"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Load(Save(cfg)) = %+v, want %+v", got, want)
	}
}

func TestSaveRequiresValidURL(t *testing.T) {
	if err := Save("ignored", Config{}); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if err := Save("ignored", Config{BaseURL: "ftp://example.com"}); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestValidateAcceptsOfflineFile(t *testing.T) {
	if err := (Config{OrdersFile: "orders.json"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefaultPathUsesHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	want := filepath.Join(dir, ".orderdashrc")
	if got := DefaultPath(); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}
}
