package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_InstalledOnly(t *testing.T) {
	path := writeSecrets(t, `{
		"installed": {
			"client_id": "id-1",
			"client_secret": "sec-1",
			"auth_uri": "https://accounts.example.com/auth",
			"token_uri": "https://oauth2.example.com/token",
			"redirect_uris": ["http://localhost"]
		}
	}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, AppTypeInstalled, s.Type)
	assert.Equal(t, "id-1", s.ClientID)
	assert.Equal(t, "sec-1", s.ClientSecret)
	assert.Equal(t, "https://accounts.example.com/auth", s.AuthURI)
	assert.Equal(t, []string{"http://localhost"}, s.RedirectURIs)
}

func TestLoad_WebOnly(t *testing.T) {
	path := writeSecrets(t, `{
		"web": {
			"client_id": "id-2",
			"client_secret": "sec-2"
		}
	}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, AppTypeWeb, s.Type)
	assert.Equal(t, "id-2", s.ClientID)
	assert.Equal(t, "sec-2", s.ClientSecret)
}

func TestLoad_BothPresent_InstalledWins(t *testing.T) {
	path := writeSecrets(t, `{
		"installed": {"client_id": "id-i", "client_secret": "sec-i"},
		"web": {"client_id": "id-w", "client_secret": "sec-w"}
	}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, AppTypeInstalled, s.Type)
	assert.Equal(t, "id-i", s.ClientID)
}

func TestLoad_NeitherPresent(t *testing.T) {
	path := writeSecrets(t, `{"other": {"client_id": "x"}}`)

	s, err := Load(path)
	assert.Nil(t, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoClientRecord)
}

func TestLoad_FileNotFound(t *testing.T) {
	s, err := Load("/nonexistent/credentials.json")
	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeSecrets(t, `{broken`)

	s, err := Load(path)
	assert.Nil(t, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestLoad_MissingClientSecret(t *testing.T) {
	path := writeSecrets(t, `{"installed": {"client_id": "id-only"}}`)

	s, err := Load(path)
	assert.Nil(t, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing client_id or client_secret")
}

func TestOAuthConfig_EndpointOverrides(t *testing.T) {
	s := &AppSecrets{
		Type:         AppTypeInstalled,
		ClientID:     "id",
		ClientSecret: "sec",
		AuthURI:      "https://auth.example.com",
		TokenURI:     "https://token.example.com",
	}

	cfg := s.OAuthConfig([]string{"scope-a"})
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "sec", cfg.ClientSecret)
	assert.Equal(t, "https://auth.example.com", cfg.Endpoint.AuthURL)
	assert.Equal(t, "https://token.example.com", cfg.Endpoint.TokenURL)
	assert.Equal(t, []string{"scope-a"}, cfg.Scopes)
}

func TestOAuthConfig_DefaultEndpoint(t *testing.T) {
	s := &AppSecrets{Type: AppTypeWeb, ClientID: "id", ClientSecret: "sec"}

	cfg := s.OAuthConfig(nil)
	assert.NotEmpty(t, cfg.Endpoint.AuthURL)
	assert.NotEmpty(t, cfg.Endpoint.TokenURL)
}
