// Package auth persists the Shikimori session token in the system keyring.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shikisync/shikisync/constant"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

const user = "shikimori-token"

// KeyringStore stores the token as JSON under a single keyring entry.
type KeyringStore struct {
	Service string
	User    string
}

// NewKeyringStore returns the store used by the CLI.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{Service: constant.App, User: user}
}

// Load returns nil, nil when no token has been saved.
func (s *KeyringStore) Load() (*oauth2.Token, error) {
	raw, err := keyring.Get(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, fmt.Errorf("stored token is corrupted, run `shikisync auth logout`: %w", err)
	}
	return &token, nil
}

// Save overwrites the stored token.
func (s *KeyringStore) Save(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return keyring.Set(s.Service, s.User, string(data))
}

// Delete removes the stored token. A missing entry is not an error.
func (s *KeyringStore) Delete() error {
	err := keyring.Delete(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
