package config

import (
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"
)

const (
	keyringService = "linear-board"
	keyringAPIKey  = "api-key"
)

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: keyringService,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(DefaultConfigDir(), "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("linear-board-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// GetAPIKey reads the stored Linear API key from the OS keyring.
func GetAPIKey() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(keyringAPIKey)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", keyringAPIKey, err)
	}
	return string(item.Data), nil
}

// SetAPIKey stores the Linear API key in the OS keyring.
func SetAPIKey(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{
		Key:   keyringAPIKey,
		Data:  []byte(key),
		Label: "Linear API key (linear-board)",
	}); err != nil {
		return fmt.Errorf("setting credential %q: %w", keyringAPIKey, err)
	}
	return nil
}

// DeleteAPIKey removes the stored key.
func DeleteAPIKey() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}
	if err := ring.Remove(keyringAPIKey); err != nil {
		return fmt.Errorf("deleting credential %q: %w", keyringAPIKey, err)
	}
	return nil
}
