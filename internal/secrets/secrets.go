// Package secrets loads the registered application's client secrets file
// (the "credentials.json" provisioned from the API console). The file is
// read-only input: it holds the application's own identity, never any
// end-user credential.
package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// AppType discriminates the two client record shapes a secrets file can carry.
type AppType string

const (
	// AppTypeInstalled is a desktop / installed application client.
	AppTypeInstalled AppType = "installed"
	// AppTypeWeb is a web application client.
	AppTypeWeb AppType = "web"
)

// ErrNoClientRecord is returned when the secrets file contains neither an
// "installed" nor a "web" client record.
var ErrNoClientRecord = errors.New("secrets: no installed or web client record")

// AppSecrets is the resolved application identity. The installed-vs-web
// discrimination happens once at load time; callers never probe keys.
type AppSecrets struct {
	Type         AppType
	ClientID     string
	ClientSecret string
	AuthURI      string
	TokenURI     string
	RedirectURIs []string
}

// clientRecord mirrors one client sub-record of the secrets file JSON.
type clientRecord struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	AuthURI      string   `json:"auth_uri"`
	TokenURI     string   `json:"token_uri"`
	RedirectURIs []string `json:"redirect_uris"`
}

// secretsFile mirrors the secrets file JSON: exactly one of the two keys is
// expected. If both are present, "installed" wins (a CLI is an installed app).
type secretsFile struct {
	Installed *clientRecord `json:"installed"`
	Web       *clientRecord `json:"web"`
}

// Load reads and resolves the secrets file at path. Unlike the credential
// cache, every failure here is fatal: without an application identity no
// valid credential can be written or refreshed.
func Load(path string) (*AppSecrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("secrets: reading %s: %w", path, err)
	}

	var sf secretsFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("secrets: decoding %s: %w", path, err)
	}

	var (
		rec     *clientRecord
		appType AppType
	)

	switch {
	case sf.Installed != nil:
		rec, appType = sf.Installed, AppTypeInstalled
	case sf.Web != nil:
		rec, appType = sf.Web, AppTypeWeb
	default:
		return nil, fmt.Errorf("secrets: %s: %w", path, ErrNoClientRecord)
	}

	if rec.ClientID == "" || rec.ClientSecret == "" {
		return nil, fmt.Errorf("secrets: %s: %s record missing client_id or client_secret", path, appType)
	}

	return &AppSecrets{
		Type:         appType,
		ClientID:     rec.ClientID,
		ClientSecret: rec.ClientSecret,
		AuthURI:      rec.AuthURI,
		TokenURI:     rec.TokenURI,
		RedirectURIs: rec.RedirectURIs,
	}, nil
}

// OAuthConfig builds an oauth2.Config for the application with the given
// scopes. Endpoint URLs from the secrets file take precedence; absent ones
// fall back to the standard Google endpoint.
func (s *AppSecrets) OAuthConfig(scopes []string) *oauth2.Config {
	endpoint := google.Endpoint
	if s.AuthURI != "" {
		endpoint.AuthURL = s.AuthURI
	}

	if s.TokenURI != "" {
		endpoint.TokenURL = s.TokenURI
	}

	return &oauth2.Config{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
}
