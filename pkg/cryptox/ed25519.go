package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const pemPrivateKey = "PRIVATE KEY"

// LoadOrGenerateEd25519Key reads a PKCS#8 PEM Ed25519 key from path. When the
// file does not exist a new key is generated and written there. An empty path
// yields an ephemeral key that is not persisted.
func LoadOrGenerateEd25519Key(path string) (ed25519.PrivateKey, error) {
	if path == "" {
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("cryptox: generate ed25519 key: %w", err)
		}
		return key, nil
	}

	path = filepath.Clean(path)
	raw, err := os.ReadFile(path)
	if err == nil {
		return ParseEd25519PEM(raw)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cryptox: read signing key: %w", err)
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: generate ed25519 key: %w", err)
	}
	encoded, err := EncodeEd25519PEM(key)
	if err != nil {
		return nil, err
	}
	if err := writePrivateFile(path, encoded); err != nil {
		return nil, err
	}
	return key, nil
}

// EncodeEd25519PEM marshals key as a PKCS#8 "PRIVATE KEY" block.
func EncodeEd25519PEM(key ed25519.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: marshal ed25519 key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemPrivateKey, Bytes: der}), nil
}

// ParseEd25519PEM is the inverse of EncodeEd25519PEM.
func ParseEd25519PEM(data []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemPrivateKey {
		return nil, errors.New("cryptox: no PRIVATE KEY block found")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cryptox: parse PKCS8 key: %w", err)
	}
	key, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("cryptox: expected ed25519 key, got %T", parsed)
	}
	return key, nil
}
