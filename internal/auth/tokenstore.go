// Package auth persists worker credentials between runs, standing in
// for the mobile app's on-device token storage.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pream14/FinanceFrontend/internal/gateway"
)

// ErrNoCredentials indicates no login has been stored yet.
var ErrNoCredentials = errors.New("no stored credentials")

// TokenStore reads and writes the credentials file.
type TokenStore struct {
	path string
}

// NewTokenStore places the credentials file under the user config
// directory.
func NewTokenStore() (*TokenStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	return NewTokenStoreAt(filepath.Join(dir, "financefrontend", "credentials.json")), nil
}

// NewTokenStoreAt uses an explicit file path.
func NewTokenStoreAt(path string) *TokenStore {
	return &TokenStore{path: path}
}

func (t *TokenStore) Load() (gateway.Credentials, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return gateway.Credentials{}, ErrNoCredentials
		}

		return gateway.Credentials{}, fmt.Errorf("reading credentials: %w", err)
	}

	var creds gateway.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return gateway.Credentials{}, fmt.Errorf("decoding credentials: %w", err)
	}

	if creds.AccessToken == "" {
		return gateway.Credentials{}, ErrNoCredentials
	}

	return creds, nil
}

func (t *TokenStore) Save(creds gateway.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return fmt.Errorf("creating credentials dir: %w", err)
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(t.path, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}

// Clear removes the stored credentials. Missing file is not an error.
func (t *TokenStore) Clear() error {
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credentials: %w", err)
	}

	return nil
}
