package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields bringctl needs to construct a client.
type Config struct {
	Email      string
	Password   string
	BaseURL    string
	LocalesURL string
	LocaleDir  string
}

const (
	defaultConfigPath = "~/.config/bringctl/config.toml"
	defaultLocaleDir  = "~/.local/share/bringctl/locales"
)

// Load locates and parses the bringctl config. A missing file is not an
// error; credentials can still come from the environment. BRING_EMAIL and
// BRING_PASSWORD always win over file values so a config file can be shared
// without secrets in it.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Email      string `toml:"email"`
		Password   string `toml:"password"`
		BaseURL    string `toml:"base_url"`
		LocalesURL string `toml:"locales_url"`
		LocaleDir  string `toml:"locale_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Email = strings.TrimSpace(raw.Email)
	cfg.Password = strings.TrimSpace(raw.Password)
	cfg.BaseURL = strings.TrimSpace(raw.BaseURL)
	cfg.LocalesURL = strings.TrimSpace(raw.LocalesURL)
	cfg.LocaleDir = strings.TrimSpace(raw.LocaleDir)
	if cfg.LocaleDir != "" {
		cfg.LocaleDir = mustExpand(cfg.LocaleDir)
	}

	return applyEnv(cfg), nil
}

// Validate reports whether the config carries enough to log in.
func (c Config) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("no e-mail configured: set BRING_EMAIL or the email config field")
	}
	if c.Password == "" {
		return fmt.Errorf("no password configured: set BRING_PASSWORD or the password config field")
	}
	return nil
}

// CacheLocaleDir returns the directory for downloaded article dictionaries.
func (c Config) CacheLocaleDir() string {
	if strings.TrimSpace(c.LocaleDir) == "" {
		return mustExpand(defaultLocaleDir)
	}
	return c.LocaleDir
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("BRING_EMAIL")); v != "" {
		cfg.Email = v
	}
	if v := strings.TrimSpace(os.Getenv("BRING_PASSWORD")); v != "" {
		cfg.Password = v
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
