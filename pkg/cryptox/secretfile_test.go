package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/signin/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateSecret(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := cryptox.LoadOrCreateSecret(path, 32)
	require.NoError(t, err)
	require.Len(t, first, 43)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := cryptox.LoadOrCreateSecret(path, 32)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrCreateSecret_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := cryptox.LoadOrCreateSecret(path, 32)
	require.Error(t, err)
}

func TestLoadOrGenerateEd25519Key(t *testing.T) {
	t.Parallel()

	t.Run("persists and reloads", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "session.pem")

		key, err := cryptox.LoadOrGenerateEd25519Key(path)
		require.NoError(t, err)

		again, err := cryptox.LoadOrGenerateEd25519Key(path)
		require.NoError(t, err)
		require.True(t, key.Equal(again))
	})

	t.Run("ephemeral without path", func(t *testing.T) {
		t.Parallel()
		a, err := cryptox.LoadOrGenerateEd25519Key("")
		require.NoError(t, err)
		b, err := cryptox.LoadOrGenerateEd25519Key("")
		require.NoError(t, err)
		require.False(t, a.Equal(b))
	})

	t.Run("rejects foreign PEM", func(t *testing.T) {
		t.Parallel()
		_, err := cryptox.ParseEd25519PEM([]byte("-----BEGIN CERTIFICATE-----\nAAAA\n-----END CERTIFICATE-----\n"))
		require.Error(t, err)
	})
}
