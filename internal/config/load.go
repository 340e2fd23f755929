package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// EnvOverrides are configuration values read from the environment.
type EnvOverrides struct {
	ConfigPath string // DRIVEQL_CONFIG
	FolderID   string // DRIVEQL_FOLDER
}

// ReadEnvOverrides reads the supported environment variables.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv("DRIVEQL_CONFIG"),
		FolderID:   os.Getenv("DRIVEQL_FOLDER"),
	}
}

// CLIOverrides are configuration values set by command-line flags.
// Zero values mean "not specified".
type CLIOverrides struct {
	ConfigPath string
	FolderID   string
	PageSize   int
}

// Load reads and parses a TOML config file, validates it, and returns
// the resulting Config. A present-but-broken config file is an error,
// unlike a missing one — silently ignoring a malformed file leads to
// hard-to-debug behavior.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns
// a Config populated with all default values. This supports the
// zero-config first run: users can start without creating a config file.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve loads configuration and applies the override chain:
// defaults -> config file -> environment variables -> CLI flags.
// The precedence order ensures CLI flags always win, matching user
// expectations for one-off overrides without editing the config file.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Config, error) {
	// 1. Resolve config path: CLI > env > default.
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	// 2. Load config file (returns defaults if no file exists).
	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	// 3. Apply env overrides.
	if env.FolderID != "" {
		cfg.FolderID = env.FolderID
	}

	// 4. Apply CLI overrides.
	if cli.FolderID != "" {
		cfg.FolderID = cli.FolderID
	}

	if cli.PageSize > 0 {
		cfg.PageSize = cli.PageSize
	}

	// 5. Validate the final resolved config.
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}
