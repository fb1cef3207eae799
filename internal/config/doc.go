// Package config handles loading and parsing bringctl configuration files.
//
// # Overview
//
// This package reads bringctl's TOML configuration to discover account
// credentials and optional endpoint overrides. Everything the library itself
// needs at runtime it learns from the API after login; the config only
// bootstraps the client.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bringctl/config.toml (default)
//  3. If the config file doesn't exist, fall back to environment variables
//  4. BRING_EMAIL and BRING_PASSWORD override file values when set
//
// # Configuration Fields
//
// The Config struct contains:
//
//   - Email, Password: account credentials
//   - BaseURL: REST API endpoint override (for testing against a double)
//   - LocalesURL: article dictionary endpoint override
//   - LocaleDir: directory with locally cached article dictionaries
//
// # TOML Format
//
// Example config.toml:
//
//	email = "mail@example.com"
//	password = "secret"
//	locale_dir = "~/.local/share/bringctl/locales"
//
// All fields are optional. Tilde expansion is performed on paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which falls back to the environment), and TOML parsing
// errors. Missing config files are NOT an error - credentials may come from
// the environment or a .env file loaded by the caller.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct.
package config
