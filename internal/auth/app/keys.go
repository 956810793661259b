package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/signin/pkg/cryptox"
	"github.com/aussiebroadwan/signin/pkg/jwtx"
)

const pepperSize = 32

// InitSessionKeys loads the Ed25519 session signing key, creating it on first
// start. With an empty SessionKeyFile the key is ephemeral and every session
// ends when the process restarts.
func InitSessionKeys(cfg AuthConfig, logger *slog.Logger) (*jwtx.Signer, *jwtx.Verifier, error) {
	key, err := cryptox.LoadOrGenerateEd25519Key(cfg.SessionKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session key: %w", err)
	}

	signer, err := jwtx.NewSigner(key)
	if err != nil {
		return nil, nil, err
	}
	verifier := jwtx.NewVerifier(jwtx.NewKeyRing(signer.PublicKey()), cfg.Issuer)

	if cfg.SessionKeyFile == "" {
		logger.Warn("session key is ephemeral; sessions will not survive a restart", "kid", signer.KID())
	} else {
		logger.Info("session key loaded", "kid", signer.KID(), "path", cfg.SessionKeyFile)
	}
	return signer, verifier, nil
}

// InitPasswordHasher loads the pepper, creating it on first start.
func InitPasswordHasher(cfg AuthConfig) (*cryptox.PasswordHasher, error) {
	pepper, err := cryptox.LoadOrCreateSecret(cfg.PepperFile, pepperSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	return cryptox.NewPasswordHasher(pepper), nil
}
