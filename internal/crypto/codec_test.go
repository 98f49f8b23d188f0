package crypto

import (
	"bytes"
	"testing"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewSecretCodec()
	vk := bytes.Repeat([]byte{9}, 32)
	ref := models.SecretRef{Kind: models.SecretAccountPassword, OwnerID: 42}

	enc, err := c.Encrypt(ref, []byte("hunter2"), vk)
	require.NoError(t, err)
	assert.Equal(t, models.FormatCurrent, enc.Format)
	assert.Equal(t, ref, enc.Ref)
	assert.NotContains(t, string(enc.Ciphertext), "hunter2")

	got, err := c.Decrypt(enc, vk)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), got)
}

func TestCodec_EmptyPlaintext(t *testing.T) {
	c := NewSecretCodec()
	vk := bytes.Repeat([]byte{9}, 32)
	ref := models.SecretRef{Kind: models.SecretCustomField, OwnerID: 1}

	enc, err := c.Encrypt(ref, nil, vk)
	require.NoError(t, err)

	got, err := c.Decrypt(enc, vk)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCodec_CiphertextBoundToOwner(t *testing.T) {
	c := NewSecretCodec()
	vk := bytes.Repeat([]byte{9}, 32)

	enc, err := c.Encrypt(models.SecretRef{Kind: models.SecretAccountPassword, OwnerID: 1}, []byte("x"), vk)
	require.NoError(t, err)

	moved := enc
	moved.Ref.OwnerID = 2
	_, err = c.Decrypt(moved, vk)
	assert.ErrorIs(t, err, ErrDecryptFailed)

	moved = enc
	moved.Ref.Kind = models.SecretCustomField
	_, err = c.Decrypt(moved, vk)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestCodec_WrongKey(t *testing.T) {
	c := NewSecretCodec()
	ref := models.SecretRef{Kind: models.SecretAccountPassword, OwnerID: 1}

	enc, err := c.Encrypt(ref, []byte("x"), bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)

	_, err = c.Decrypt(enc, bytes.Repeat([]byte{2}, 32))
	assert.ErrorIs(t, err, ErrDecryptFailed)

	_, err = c.Decrypt(enc, []byte("short"))
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestCodec_LegacyRoundTrip(t *testing.T) {
	c := NewSecretCodec()
	vk := bytes.Repeat([]byte{3}, 32)
	ref := models.SecretRef{Kind: models.SecretCustomField, OwnerID: 7}

	legacy, err := SealLegacySecret(ref, []byte("old secret"), vk, models.FormatLegacy72)
	require.NoError(t, err)
	assert.Equal(t, models.FormatLegacy72, legacy.Format)

	got, err := c.Decrypt(legacy, vk)
	require.NoError(t, err)
	assert.Equal(t, []byte("old secret"), got)

	legacy.Nonce = legacy.Nonce[:3]
	_, err = c.Decrypt(legacy, vk)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestCodec_UnknownFormat(t *testing.T) {
	_, err := NewSecretCodec().Decrypt(models.EncryptedSecret{Format: models.FormatUnknown}, bytes.Repeat([]byte{3}, 32))
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestCodec_EncryptRejectsBadKey(t *testing.T) {
	_, err := NewSecretCodec().Encrypt(models.SecretRef{}, []byte("x"), []byte("short"))
	assert.Error(t, err)
}
