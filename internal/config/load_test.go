package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "token.json", cfg.CredentialsFile)
	assert.Equal(t, "credentials.json", cfg.SecretsFile)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.FolderID)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
credentials_file = "/tmp/tok.json"
secrets_file = "/tmp/sec.json"
page_size = 10
folder_id = "folder-abc"
query = "quarterly report"
log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tok.json", cfg.CredentialsFile)
	assert.Equal(t, "/tmp/sec.json", cfg.SecretsFile)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "folder-abc", cfg.FolderID)
	assert.Equal(t, "quarterly report", cfg.Query)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `folder_id = "folder-abc"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "folder-abc", cfg.FolderID)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultCredentialsFile, cfg.CredentialsFile)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `page_size = [broken`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `page_size = 0`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}

func TestLoad_BadLogLevel(t *testing.T) {
	path := writeConfig(t, `log_level = "loud"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `folder_id = "from-file"`)

	cfg, err := Resolve(
		EnvOverrides{ConfigPath: path, FolderID: "from-env"},
		CLIOverrides{},
	)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.FolderID)
}

func TestResolve_CLIOverridesEnv(t *testing.T) {
	path := writeConfig(t, `folder_id = "from-file"`)

	cfg, err := Resolve(
		EnvOverrides{ConfigPath: path, FolderID: "from-env"},
		CLIOverrides{FolderID: "from-cli", PageSize: 7},
	)
	require.NoError(t, err)
	assert.Equal(t, "from-cli", cfg.FolderID)
	assert.Equal(t, 7, cfg.PageSize)
}

func TestResolve_CLIConfigPathWins(t *testing.T) {
	envPath := writeConfig(t, `folder_id = "env-file"`)
	cliPath := writeConfig(t, `folder_id = "cli-file"`)

	cfg, err := Resolve(
		EnvOverrides{ConfigPath: envPath},
		CLIOverrides{ConfigPath: cliPath},
	)
	require.NoError(t, err)
	assert.Equal(t, "cli-file", cfg.FolderID)
}

func TestResolve_ZeroConfig(t *testing.T) {
	cfg, err := Resolve(
		EnvOverrides{ConfigPath: filepath.Join(t.TempDir(), "absent.toml")},
		CLIOverrides{},
	)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
}

func TestReadEnvOverrides(t *testing.T) {
	t.Setenv("DRIVEQL_CONFIG", "/tmp/cfg.toml")
	t.Setenv("DRIVEQL_FOLDER", "env-folder")

	env := ReadEnvOverrides()
	assert.Equal(t, "/tmp/cfg.toml", env.ConfigPath)
	assert.Equal(t, "env-folder", env.FolderID)
}

func TestDefaultConfigPath_UnderConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if DefaultConfigDir() == "" {
		t.Skip("no home directory")
	}

	assert.Equal(t, filepath.Join(DefaultConfigDir(), "config.toml"), DefaultConfigPath())
}
