package jwtx

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/whisper/pkg/cryptox"
)

// KeyManager owns the signing keys of one instance and the verifier that
// accepts tokens from any of them.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu      sync.RWMutex
	signers []Signer
}

type KeyManagerOptions struct {
	// Issuer is stamped into and required on every token.
	Issuer string

	// NumKeys applies to ephemeral managers only. Defaults to 3, capped at 10.
	NumKeys int
}

// NewKeyManager builds a manager from PKCS8 PEM encoded Ed25519 keys.
func NewKeyManager(opts KeyManagerOptions, pemKeys ...[]byte) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}
	if len(pemKeys) == 0 {
		return nil, errors.New("jwtx: at least one signing key is required")
	}

	keyset := NewKeySet()
	signers := make([]Signer, 0, len(pemKeys))
	for i, p := range pemKeys {
		s, err := NewSignerEdDSA("", p)
		if err != nil {
			return nil, fmt.Errorf("jwtx: signing key %d: %w", i+1, err)
		}
		if err := keyset.AddSigner(s); err != nil {
			return nil, fmt.Errorf("jwtx: signing key %d: %w", i+1, err)
		}
		signers = append(signers, s)
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// NewEphemeralKeyManager generates fresh keys that live only in memory.
// Sessions do not survive a restart.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	n := opts.NumKeys
	if n <= 0 {
		n = 3
	}
	n = min(n, 10)

	pems := make([][]byte, 0, n)
	for range n {
		p, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		pems = append(pems, p)
	}
	return NewKeyManager(opts, pems...)
}

// GetSigner picks one of the active keys at random.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}
