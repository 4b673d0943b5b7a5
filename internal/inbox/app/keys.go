package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/whisper/pkg/cryptox"
	"github.com/aussiebroadwan/whisper/pkg/jwtx"
)

// InitSessionKeys builds the KeyManager that signs session tokens.
//
// With INBOX_SIGNING_KEY_FILE set, the key is read from (or generated into)
// that file and sessions survive restarts. Otherwise NumKeys keys are
// generated in memory and every restart signs everyone out.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	}

	if cfg.SigningKeyFile != "" {
		pem, err := cryptox.LoadOrGenerateEd25519Key(cfg.SigningKeyFile)
		if err != nil {
			return nil, err
		}

		km, err := jwtx.NewKeyManager(opts, pem)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize key manager: %w", err)
		}

		logger.Info("signing key loaded", "path", cfg.SigningKeyFile, "issuer", cfg.Issuer)
		return km, nil
	}

	km, err := jwtx.NewEphemeralKeyManager(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys", "num_keys", km.NumSigners(), "issuer", cfg.Issuer)
	logger.Warn("sessions will not survive a restart")

	return km, nil
}
