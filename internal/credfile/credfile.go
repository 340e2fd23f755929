// Package credfile handles reading and writing the cached authorized-user
// credential file. This is a leaf package imported by both config/ and drive/
// so neither needs to know the other's serialization details.
//
// Loading is deliberately fail-soft: a missing, unreadable, or corrupt cache
// file is reported as a cache miss, never as an error. The cache only ever
// saves the user an interactive consent round-trip; it must never block one.
package credfile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FilePerms restricts the credential file to owner-only read/write.
const FilePerms = 0o600

// DirPerms is used when creating the credential file's directory.
const DirPerms = 0o700

// PayloadType is the fixed discriminator written to every credential file.
const PayloadType = "authorized_user"

// Credential is the on-disk shape of a cached authorized-user credential.
// The three secret-bearing fields must round-trip through Save/Load without
// loss; Type is always PayloadType.
//
// The payload matches Google's canonical authorized_user format and carries
// no endpoint URLs: a loaded credential always refreshes against Google's
// standard token endpoint. Custom auth_uri/token_uri values in the app
// secrets apply only to the interactive consent flow that minted the grant.
type Credential struct {
	Type         string `json:"type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

// valid reports whether a decoded payload carries a usable grant.
func (c *Credential) valid() bool {
	return c.Type == PayloadType && c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Load reads the cached credential at path. Any failure — missing file,
// unreadable file, invalid JSON, wrong or missing fields — is a cache miss
// and returns nil. Misses are logged at debug level with the reason so a
// corrupt cache is diagnosable without ever being fatal.
func Load(path string, logger *slog.Logger) *Credential {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("credential cache miss",
			slog.String("path", path),
			slog.String("reason", err.Error()),
		)

		return nil
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		logger.Debug("credential cache miss: invalid JSON",
			slog.String("path", path),
			slog.String("reason", err.Error()),
		)

		return nil
	}

	if !cred.valid() {
		logger.Debug("credential cache miss: incomplete payload",
			slog.String("path", path),
			slog.String("type", cred.Type),
		)

		return nil
	}

	logger.Debug("loaded cached credential", slog.String("path", path))

	return &cred
}

// Save writes the credential to path atomically (write-to-temp + rename)
// with 0600 permissions, overwriting any existing file. The Type field is
// forced to PayloadType. Never logs credential values.
func Save(path string, cred *Credential) error {
	out := *cred
	out.Type = PayloadType

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("credfile: encoding: %w", err)
	}

	dir := filepath.Dir(path)
	if mkErr := os.MkdirAll(dir, DirPerms); mkErr != nil {
		return fmt.Errorf("credfile: creating directory %s: %w", dir, mkErr)
	}

	// Atomic write: temp file in the same directory, then rename.
	// Same directory guarantees same filesystem for rename(2).
	tmp, err := os.CreateTemp(dir, ".cred-*.tmp")
	if err != nil {
		return fmt.Errorf("credfile: creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := os.Chmod(tmpPath, FilePerms); err != nil {
		tmp.Close()
		return fmt.Errorf("credfile: setting permissions: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("credfile: writing: %w", err)
	}

	// Flush to stable storage before rename so a crash between close and
	// rename cannot leave an empty or partial file at the final path.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("credfile: syncing: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("credfile: closing: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("credfile: renaming: %w", err)
	}

	success = true

	return nil
}
