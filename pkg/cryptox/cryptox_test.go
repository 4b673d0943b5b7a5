package cryptox

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	SetPepper("test-pepper")
	t.Cleanup(func() { SetPepper("") })

	for _, pw := range []string{"hunter22", "P@ssw0rd!#$%", strings.Repeat("a", 100), "   spaces   ", "пароль🔒"} {
		hash, err := HashPassword(pw)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"), hash)
		require.NoError(t, VerifyPassword(pw, hash))
		require.ErrorIs(t, VerifyPassword(pw+"x", hash), ErrMismatch)
	}
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPassword("samepassword")
	require.NoError(t, err)
	b, err := HashPassword("samepassword")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestPepperChangesVerification(t *testing.T) {
	SetPepper("one")
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	SetPepper("two")
	require.ErrorIs(t, VerifyPassword("hunter22", hash), ErrMismatch)

	SetPepper("one")
	require.NoError(t, VerifyPassword("hunter22", hash))
	SetPepper("")
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, h := range []string{
		"",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456",
		"$argon2id$v=19$invalid$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	} {
		err := VerifyPassword("pw", h)
		require.Error(t, err, h)
		require.NotErrorIs(t, err, ErrMismatch, h)
	}
}

func TestLoadPepperPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets", "pepper")

	require.NoError(t, LoadPepper(path))
	first := Pepper()
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	SetPepper("")
	require.NoError(t, LoadPepper(path))
	require.Equal(t, first, Pepper())
	SetPepper("")
}

func TestLoadOrGenerateEd25519Key(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signing.pem")

	first, err := LoadOrGenerateEd25519Key(path)
	require.NoError(t, err)

	block, _ := pem.Decode(first)
	require.NotNil(t, block)
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)
	require.IsType(t, ed25519.PrivateKey{}, key)

	again, err := LoadOrGenerateEd25519Key(path)
	require.NoError(t, err)
	require.Equal(t, first, again)
}

func TestFingerprint(t *testing.T) {
	fp := FingerprintToken("123456")
	require.Len(t, fp, 43)
	require.True(t, MatchFingerprint("123456", fp))
	require.False(t, MatchFingerprint("123457", fp))
}
