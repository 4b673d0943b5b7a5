package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// Pepper returns the secret appended to every password before hashing.
// It is empty until SetPepper or LoadPepper runs.
func Pepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

func SetPepper(p string) {
	pepperMu.Lock()
	pepper = p
	pepperMu.Unlock()
}

// LoadPepper reads the pepper from path, creating it on first boot.
func LoadPepper(path string) error {
	b, err := LoadOrCreateSecret(path, func() ([]byte, error) {
		raw := make([]byte, keyLength)
		if _, err := rand.Read(raw); err != nil {
			return nil, err
		}
		return []byte(base64.RawURLEncoding.EncodeToString(raw)), nil
	})
	if err != nil {
		return fmt.Errorf("cryptox: pepper: %w", err)
	}
	SetPepper(string(b))
	return nil
}

// LoadOrGenerateEd25519Key reads a PKCS8 PEM key from path, generating and
// writing one if the file does not exist.
func LoadOrGenerateEd25519Key(path string) ([]byte, error) {
	b, err := LoadOrCreateSecret(path, GenerateEd25519Key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: signing key: %w", err)
	}
	return b, nil
}

// LoadOrCreateSecret returns the contents of path. A missing file is filled
// with create() and written with 0600 permissions, creating parent dirs.
func LoadOrCreateSecret(path string, create func() ([]byte, error)) ([]byte, error) {
	path = filepath.Clean(path)

	b, err := os.ReadFile(path)
	if err == nil {
		return b, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	b, err = create()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return nil, err
	}
	return b, nil
}
