package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigUsesEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BRING_EMAIL", "mail@example.com")
	t.Setenv("BRING_PASSWORD", "secret")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Email != "mail@example.com" || cfg.Password != "secret" {
		t.Fatalf("cfg = %#v, want credentials from environment", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BRING_EMAIL", "")
	t.Setenv("BRING_PASSWORD", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
email = "  mail@example.com  "
password = "  secret  "
base_url = "  https://api.example.com/rest/  "
locale_dir = "  ~/.bringctl/locales  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Email != "mail@example.com" || cfg.Password != "secret" {
		t.Fatalf("cfg = %#v, want trimmed credentials", cfg)
	}
	if cfg.BaseURL != "https://api.example.com/rest/" {
		t.Fatalf("BaseURL = %q, want trimmed value", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.LocaleDir, home) {
		t.Fatalf("LocaleDir = %q, want it under HOME %q", cfg.LocaleDir, home)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BRING_EMAIL", "env@example.com")
	t.Setenv("BRING_PASSWORD", "env-secret")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
email = "file@example.com"
password = "file-secret"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Email != "env@example.com" || cfg.Password != "env-secret" {
		t.Fatalf("cfg = %#v, want environment to win", cfg)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`email = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "BRING_EMAIL") {
		t.Fatalf("Validate error = %v, want missing e-mail error", err)
	}
	cfg.Email = "mail@example.com"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "BRING_PASSWORD") {
		t.Fatalf("Validate error = %v, want missing password error", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestCacheLocaleDir_DefaultsWhenEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.CacheLocaleDir()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("CacheLocaleDir = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("bringctl/locales")) {
		t.Fatalf("CacheLocaleDir = %q, want the default locales dir", got)
	}
}
