// Package config defines the driveql configuration: file locations for
// the credential cache and app secrets, search defaults, and logging.
// Configuration resolves through an override chain:
// defaults -> config file -> environment -> CLI flags.
package config

import (
	"fmt"
	"path/filepath"
)

// Default file names, resolved relative to the working directory so a
// project-local credential setup works without any configuration.
const (
	DefaultCredentialsFile = "token.json"
	DefaultSecretsFile     = "credentials.json"
)

// DefaultPageSize caps search result pages.
const DefaultPageSize = 5

// historyFileName is the search-history database file, kept in the data dir.
const historyFileName = "history.db"

// Config is the full configuration surface. Every field has a working
// default; a config file, environment variables, and flags only override.
type Config struct {
	CredentialsFile string `toml:"credentials_file"`
	SecretsFile     string `toml:"secrets_file"`
	PageSize        int    `toml:"page_size"`
	FolderID        string `toml:"folder_id"`
	Query           string `toml:"query"`
	HistoryFile     string `toml:"history_file"`
	LogLevel        string `toml:"log_level"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		CredentialsFile: DefaultCredentialsFile,
		SecretsFile:     DefaultSecretsFile,
		PageSize:        DefaultPageSize,
		HistoryFile:     filepath.Join(DefaultDataDir(), historyFileName),
		LogLevel:        "info",
	}
}

// validLogLevels are the accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks invariants on a resolved Config.
func Validate(cfg *Config) error {
	if cfg.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", cfg.PageSize)
	}

	if cfg.CredentialsFile == "" {
		return fmt.Errorf("credentials_file must not be empty")
	}

	if cfg.SecretsFile == "" {
		return fmt.Errorf("secrets_file must not be empty")
	}

	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}

	return nil
}
