package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreateSecret returns the base64url secret stored at path, creating
// the file with size fresh random bytes when it does not exist yet.
func LoadOrCreateSecret(path string, size int) (string, error) {
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret := strings.TrimSpace(string(raw))
		if secret == "" {
			return "", fmt.Errorf("cryptox: secret file %s is empty", path)
		}
		return secret, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("cryptox: read secret: %w", err)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: generate secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(buf)

	if err := writePrivateFile(path, []byte(secret)); err != nil {
		return "", err
	}
	return secret, nil
}

// writePrivateFile creates path (and its directory) readable by the owner only.
// An existing file is never overwritten.
func writePrivateFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("cryptox: create secret dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("cryptox: create secret file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("cryptox: write secret file: %w", err)
	}
	return f.Close()
}
