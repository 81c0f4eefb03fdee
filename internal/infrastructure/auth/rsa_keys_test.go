package auth

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadOrGenerateKeyPair(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys")

	first, err := LoadOrGenerateKeyPair(dir, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.PublicKeyPEM(), "-----BEGIN PUBLIC KEY-----"))

	info, err := os.Stat(filepath.Join(dir, privateKeyFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrGenerateKeyPair(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, first.PublicKeyPEM(), second.PublicKeyPEM())
}

func TestLoadOrGenerateKeyPair_CorruptFilesRegenerate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, privateKeyFile), []byte("junk"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, publicKeyFile), []byte("junk"), 0o600))

	kp, err := LoadOrGenerateKeyPair(dir, zap.NewNop())
	require.NoError(t, err)

	stored, err := os.ReadFile(filepath.Join(dir, publicKeyFile))
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKeyPEM(), string(stored))
}

func TestKeyPair_DecryptPassword(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	t.Run("standard base64", func(t *testing.T) {
		enc, err := EncryptPassword(kp.PublicKey(), "s3cret-密码")
		require.NoError(t, err)
		plain, err := kp.DecryptPassword(enc)
		require.NoError(t, err)
		assert.Equal(t, "s3cret-密码", plain)
	})

	t.Run("unpadded base64url", func(t *testing.T) {
		enc, err := EncryptPassword(kp.PublicKey(), "pw")
		require.NoError(t, err)
		raw, err := base64.StdEncoding.DecodeString(enc)
		require.NoError(t, err)

		plain, err := kp.DecryptPassword(base64.RawURLEncoding.EncodeToString(raw))
		require.NoError(t, err)
		assert.Equal(t, "pw", plain)

		plain, err = kp.DecryptPassword(base64.URLEncoding.EncodeToString(raw))
		require.NoError(t, err)
		assert.Equal(t, "pw", plain)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kp.DecryptPassword("!!!")
		assert.ErrorIs(t, err, ErrDecryptPassword)

		_, err = kp.DecryptPassword(base64.StdEncoding.EncodeToString([]byte("not ciphertext")))
		assert.ErrorIs(t, err, ErrDecryptPassword)

		_, err = kp.DecryptPassword("")
		assert.ErrorIs(t, err, ErrDecryptPassword)
	})
}
