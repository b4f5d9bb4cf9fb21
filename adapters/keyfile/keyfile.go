// Package keyfile persists the session token in a single file under the
// user's config directory. The token is the only durable state the
// client keeps.
package keyfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mireles/vecino/core"
)

// Store is a core.CredentialStore backed by a JSON file.
type Store struct {
	path string
}

var _ core.CredentialStore = (*Store)(nil)

type credentialFile struct {
	Token string `json:"token"`
}

// New creates a store writing to path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the conventional credential location,
// e.g. ~/.config/vecino/credentials.json on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "vecino", "credentials.json"), nil
}

// Load returns the stored token, or core.ErrNoCredential when no usable
// credential exists.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", core.ErrNoCredential
		}
		return "", fmt.Errorf("read credential file: %w", err)
	}

	var cred credentialFile
	if err := json.Unmarshal(data, &cred); err != nil {
		// A corrupt file is treated the same as no credential.
		return "", core.ErrNoCredential
	}
	if cred.Token == "" {
		return "", core.ErrNoCredential
	}
	return cred.Token, nil
}

// Store writes the token, creating the parent directory when needed.
// File mode keeps the credential private to the user.
func (s *Store) Store(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	data, err := json.Marshal(credentialFile{Token: token})
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}

// Clear removes the stored credential. Missing files are not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
