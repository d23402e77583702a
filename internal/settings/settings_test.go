package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(t.TempDir())

	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if s.Host != DefaultHost {
		t.Errorf("Host = %s, want %s", s.Host, DefaultHost)
	}

	if s.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", s.Timeout, DefaultTimeout)
	}

	if s.RegistryFile != "" {
		t.Errorf("RegistryFile = %s, want empty", s.RegistryFile)
	}
}

func TestLoad_EmptyConfigDir(t *testing.T) {
	s, err := Load("")

	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if s.Host != DefaultHost {
		t.Errorf("Host = %s, want %s", s.Host, DefaultHost)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()

	content := "host: https://staging.neviweb.com/\ntimeout: 45s\nregistry:\n  file: /tmp/alt-entries.yaml\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	// Trailing slash should be stripped
	if s.Host != "https://staging.neviweb.com" {
		t.Errorf("Host = %s, want https://staging.neviweb.com", s.Host)
	}

	if s.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", s.Timeout)
	}

	if s.RegistryFile != "/tmp/alt-entries.yaml" {
		t.Errorf("RegistryFile = %s, want /tmp/alt-entries.yaml", s.RegistryFile)
	}
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	dir := t.TempDir()

	content := "host: https://from-file.example.com\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("NEVIWEB_HOST", "https://from-env.example.com")
	t.Setenv("NEVIWEB_TIMEOUT", "10s")

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	// Environment wins over the config file
	if s.Host != "https://from-env.example.com" {
		t.Errorf("Host = %s, want https://from-env.example.com", s.Host)
	}

	if s.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", s.Timeout)
	}
}

func TestLoad_RegistryFileFromEnv(t *testing.T) {
	t.Setenv("NEVIWEB_REGISTRY_FILE", "/var/lib/neviweb/entries.yaml")

	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if s.RegistryFile != "/var/lib/neviweb/entries.yaml" {
		t.Errorf("RegistryFile = %s, want /var/lib/neviweb/entries.yaml", s.RegistryFile)
	}
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("host: [unterminated"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Error("Load() should return error for malformed config file")
	}
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	dir := t.TempDir()

	content := "timeout: -5s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if s.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", s.Timeout, DefaultTimeout)
	}
}
