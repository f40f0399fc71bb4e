package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"hallbook/internal/constants"
)

var (
	// ErrNoToken is returned when no API token is stored
	ErrNoToken = errors.New("no API token stored; run 'hallbook login'")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetToken returns the bearer token for the backend. The environment
// variable takes precedence over the keyring so headless environments can
// skip the keyring entirely.
func GetToken() (string, error) {
	if token := os.Getenv(constants.TokenEnvVar); token != "" {
		return token, nil
	}
	token, err := keyring.Get(constants.KeyringService, constants.KeyringTokenUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

// SetToken stores the bearer token in the OS keyring.
func SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(constants.KeyringService, constants.KeyringTokenUser, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the stored bearer token. Used by logout and by the
// forced-logout path when the backend reports a blocked account.
func DeleteToken() error {
	err := keyring.Delete(constants.KeyringService, constants.KeyringTokenUser)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

// TokenFromEnv reports whether the token comes from the environment rather
// than the keyring.
func TokenFromEnv() bool {
	return os.Getenv(constants.TokenEnvVar) != ""
}

// KeyringAvailable checks if the OS keyring works on this system.
func KeyringAvailable() bool {
	_, err := keyring.Get(constants.KeyringService, "availability-probe")
	return err == nil || err == keyring.ErrNotFound
}
