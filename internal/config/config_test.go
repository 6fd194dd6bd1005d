package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"trims whitespace", "TEST_INT_2", " 8080 ", 10, 8080},
		{"uses default for empty", "TEST_INT_3", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_4", "abc", 10, 10},
		{"uses default for negative", "TEST_INT_5", "-1", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "OPENROUTER_API_KEY", "OPENROUTER_URL", "PUBLIC_DIR", "UPSTREAM_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != DefaultPort {
		t.Errorf("Expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.HasCredential() {
		t.Errorf("Expected no credential, got %q", cfg.APIKey)
	}
	if cfg.OpenRouterURL != DefaultOpenRouterURL {
		t.Errorf("Expected %q, got %q", DefaultOpenRouterURL, cfg.OpenRouterURL)
	}
	if cfg.PublicDir != "public" {
		t.Errorf("Expected public dir 'public', got %q", cfg.PublicDir)
	}
	if cfg.MaxBodyBytes != 10_000_000 {
		t.Errorf("Expected body cap 10000000, got %d", cfg.MaxBodyBytes)
	}
	if cfg.UpstreamTimeout != 120*time.Second {
		t.Errorf("Expected 120s upstream timeout, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoad_TrimsCredentialAndReadsPort(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "  sk-or-test \n")
	t.Setenv("PORT", "4321")

	cfg := Load()

	if cfg.APIKey != "sk-or-test" {
		t.Errorf("Expected trimmed key 'sk-or-test', got %q", cfg.APIKey)
	}
	if !cfg.HasCredential() {
		t.Error("Expected credential to be present")
	}
	if cfg.Port != 4321 {
		t.Errorf("Expected port 4321, got %d", cfg.Port)
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	return path
}

func TestLoadEnvFile_SetsUnsetVariables(t *testing.T) {
	t.Setenv("ENVFILE_KEY_A", "")
	t.Setenv("ENVFILE_KEY_B", "")

	path := writeEnvFile(t, "# comment line\n\nENVFILE_KEY_A=alpha\n   # indented comment\nENVFILE_KEY_B=with=equals\n")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := os.Getenv("ENVFILE_KEY_A"); got != "alpha" {
		t.Errorf("Expected 'alpha', got %q", got)
	}
	if got := os.Getenv("ENVFILE_KEY_B"); got != "with=equals" {
		t.Errorf("Expected 'with=equals', got %q", got)
	}
}

func TestLoadEnvFile_NeverOverridesEnvironment(t *testing.T) {
	t.Setenv("ENVFILE_KEY_C", "from-env")

	path := writeEnvFile(t, "ENVFILE_KEY_C=from-file\n")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := os.Getenv("ENVFILE_KEY_C"); got != "from-env" {
		t.Errorf("Expected 'from-env', got %q", got)
	}
}

func TestLoadEnvFile_FirstOccurrenceWins(t *testing.T) {
	t.Setenv("ENVFILE_KEY_D", "")

	path := writeEnvFile(t, "ENVFILE_KEY_D=first\nENVFILE_KEY_D=second\n")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := os.Getenv("ENVFILE_KEY_D"); got != "first" {
		t.Errorf("Expected 'first', got %q", got)
	}
}

func TestLoadEnvFile_SkipsLinesWithoutKey(t *testing.T) {
	t.Setenv("ENVFILE_KEY_E", "")

	path := writeEnvFile(t, "this line has no assignment\n=orphan value\nENVFILE_KEY_E=ok\r\n")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := os.Getenv("ENVFILE_KEY_E"); got != "ok" {
		t.Errorf("Expected 'ok', got %q", got)
	}
}

func TestLoadEnvFile_Values(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		key      string
		expected string
	}{
		{"inline hash kept", "ENVFILE_KEY_F=value # note", "ENVFILE_KEY_F", "value # note"},
		{"hash in key value", "ENVFILE_KEY_G=sk-or-v1#abc", "ENVFILE_KEY_G", "sk-or-v1#abc"},
		{"surrounding spaces trimmed", "  ENVFILE_KEY_H =  spaced  ", "ENVFILE_KEY_H", "spaced"},
		{"double quoted", `ENVFILE_KEY_I="quoted value"`, "ENVFILE_KEY_I", "quoted value"},
		{"single quoted", `ENVFILE_KEY_J='single # quoted'`, "ENVFILE_KEY_J", "single # quoted"},
		{"export prefix", "export ENVFILE_KEY_K=exported", "ENVFILE_KEY_K", "exported"},
		{"empty value", "ENVFILE_KEY_L=", "ENVFILE_KEY_L", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, "")

			if err := LoadEnvFile(writeEnvFile(t, tc.line+"\n")); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if got := os.Getenv(tc.key); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestLoadEnvFile_ReportsReadErrors(t *testing.T) {
	if err := LoadEnvFile(t.TempDir()); err == nil {
		t.Errorf("Expected error when the path is a directory")
	}
}

func TestLoadEnvFile_LongLines(t *testing.T) {
	t.Setenv("ENVFILE_KEY_M", "")
	t.Setenv("ENVFILE_KEY_N", "")

	long := strings.Repeat("x", 100*1024)
	path := writeEnvFile(t, "ENVFILE_KEY_M="+long+"\nENVFILE_KEY_N=after\n")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := os.Getenv("ENVFILE_KEY_M"); got != long {
		t.Errorf("Expected %d-byte value, got %d bytes", len(long), len(got))
	}
	if got := os.Getenv("ENVFILE_KEY_N"); got != "after" {
		t.Errorf("Expected 'after', got %q", got)
	}
}

func TestLoadEnvFile_OversizedLineIsReported(t *testing.T) {
	path := writeEnvFile(t, "ENVFILE_KEY_O="+strings.Repeat("x", maxEnvLineBytes+1)+"\n")

	if err := LoadEnvFile(path); err == nil {
		t.Errorf("Expected error for a line over the scanner limit")
	}
}

func TestLoadEnvFile_MissingFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Expected nil error for missing file, got %v", err)
	}
}
