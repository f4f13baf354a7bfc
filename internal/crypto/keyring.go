package crypto

import (
	"errors"
	"fmt"
	"os"
)

// Keyring stores the history database key
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "countdown"
	KeyName     = "history-db-key"

	// EnvKey overrides the system keyring when set
	EnvKey = "COUNTDOWN_DB_KEY"
)

// NewKeyring returns the environment keyring when EnvKey is set, otherwise
// the best available platform implementation
func NewKeyring() Keyring {
	if os.Getenv(EnvKey) != "" {
		return &envKeyring{}
	}
	return newPlatformKeyring()
}

type envKeyring struct{}

// GetKey retrieves the encryption key from the COUNTDOWN_DB_KEY environment variable
func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", EnvKey)
	}
	return key, nil
}

// SetKey returns an error suggesting to set the environment variable
func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("keyring not available on this platform: export %s before running countdown", EnvKey)
}

// DeleteKey returns an error suggesting to unset the environment variable
func (k *envKeyring) DeleteKey() error {
	return fmt.Errorf("key comes from the environment: unset %s manually", EnvKey)
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
