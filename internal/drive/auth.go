package drive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/driveql/driveql/internal/credfile"
	"github.com/driveql/driveql/internal/secrets"
)

// ScopeDriveFull grants full access to the user's Drive.
const ScopeDriveFull = "https://www.googleapis.com/auth/drive"

// ErrAuthentication marks a failed or declined interactive consent flow.
var ErrAuthentication = errors.New("drive: interactive authentication failed")

// AuthOptions locates the credential cache and app secrets files and
// names the scopes to request on interactive consent.
type AuthOptions struct {
	CredentialsPath string // cached authorized-user credential (read/write)
	SecretsPath     string // application client secrets (read-only)
	Scopes          []string
}

// ConsentFunc is the interactive authentication collaborator: it performs
// a user-facing consent flow for the given oauth2 config and returns the
// resulting token. BrowserConsent provides the production implementation;
// tests substitute their own.
type ConsentFunc func(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)

// Session is an authorized credential ready for API use.
type Session struct {
	cfg    *oauth2.Config
	tok    *oauth2.Token
	logger *slog.Logger
}

// RefreshToken returns the session's refresh token.
func (s *Session) RefreshToken() string {
	return s.tok.RefreshToken
}

// TokenSource returns an auto-refreshing token source for the session.
// ctx must outlive the TokenSource — if ctx is canceled, silent token
// refresh will fail.
func (s *Session) TokenSource(ctx context.Context) TokenSource {
	return &tokenBridge{src: s.cfg.TokenSource(ctx, s.tok), logger: s.logger}
}

// Authorize produces an authorized session with the minimum of
// interaction:
//
//  1. A cached credential, if present and well-formed, is used directly —
//     no secrets read, no consent.
//  2. Otherwise the app secrets are loaded (fatal on failure) and the
//     consent collaborator runs. Consent failure surfaces as
//     ErrAuthentication with no cache write.
//  3. A freshly obtained token is cached only when it carries a refresh
//     token; a grant-less token is returned but never persisted.
func Authorize(ctx context.Context, opts AuthOptions, consent ConsentFunc, logger *slog.Logger) (*Session, error) {
	if cred := credfile.Load(opts.CredentialsPath, logger); cred != nil {
		logger.Info("using cached credential",
			slog.String("path", opts.CredentialsPath),
		)

		// The cache payload carries no endpoint URLs (see
		// credfile.Credential), so refresh always goes to Google's
		// standard token endpoint.
		cfg := &oauth2.Config{
			ClientID:     cred.ClientID,
			ClientSecret: cred.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       opts.Scopes,
		}

		// No access token in the cache: the first API call triggers a
		// silent refresh from the stored refresh token.
		return &Session{
			cfg:    cfg,
			tok:    &oauth2.Token{RefreshToken: cred.RefreshToken},
			logger: logger,
		}, nil
	}

	return Login(ctx, opts, consent, logger)
}

// Login always runs the interactive flow, bypassing any cached
// credential, and persists the result. Used directly by the login
// command and by Authorize on a cache miss.
func Login(ctx context.Context, opts AuthOptions, consent ConsentFunc, logger *slog.Logger) (*Session, error) {
	sec, err := secrets.Load(opts.SecretsPath)
	if err != nil {
		return nil, err
	}

	logger.Info("starting interactive consent",
		slog.String("client_type", string(sec.Type)),
	)

	cfg := sec.OAuthConfig(opts.Scopes)

	tok, err := consent(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	if tok.RefreshToken == "" {
		// A token without a refresh grant is usable for this run but
		// would poison the cache: the next run could not refresh it.
		logger.Warn("consent returned no refresh token, credential not cached")
	} else {
		err := credfile.Save(opts.CredentialsPath, &credfile.Credential{
			ClientID:     sec.ClientID,
			ClientSecret: sec.ClientSecret,
			RefreshToken: tok.RefreshToken,
		})
		if err != nil {
			return nil, fmt.Errorf("drive: caching credential: %w", err)
		}

		logger.Info("cached credential",
			slog.String("path", opts.CredentialsPath),
		)
	}

	return &Session{cfg: cfg, tok: tok, logger: logger}, nil
}

// Logout removes the cached credential file at the given path.
// Returns nil if the file does not exist (already logged out).
func Logout(path string, logger *slog.Logger) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("logout: no credential file to remove",
			slog.String("path", path),
		)

		return nil
	}

	if err != nil {
		return err
	}

	logger.Info("logout: removed credential file",
		slog.String("path", path),
	)

	return nil
}

// tokenBridge adapts oauth2.TokenSource to drive.TokenSource.
// Logs every token acquisition so refresh activity is visible.
type tokenBridge struct {
	src    oauth2.TokenSource
	logger *slog.Logger
}

func (b *tokenBridge) Token() (string, error) {
	t, err := b.src.Token()
	if err != nil {
		b.logger.Warn("token acquisition failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("drive: obtaining token: %w", err)
	}

	b.logger.Debug("token acquired",
		slog.Time("expiry", t.Expiry),
		slog.Bool("valid", t.Valid()),
	)

	return t.AccessToken, nil
}
