package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSealer_RoundTrip(t *testing.T) {
	s := NewTokenSealer()

	sealed, nonce, err := s.Seal("token-a", []byte("master password"))
	require.NoError(t, err)
	assert.Len(t, nonce, 24)
	assert.NotContains(t, string(sealed), "master password")

	got, err := s.Open("token-a", sealed, nonce)
	require.NoError(t, err)
	assert.Equal(t, []byte("master password"), got)
}

func TestTokenSealer_FreshNoncePerSeal(t *testing.T) {
	s := NewTokenSealer()

	first, n1, err := s.Seal("token-a", []byte("pw"))
	require.NoError(t, err)
	second, n2, err := s.Seal("token-a", []byte("pw"))
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
	assert.NotEqual(t, first, second)
}

func TestTokenSealer_OpenFailures(t *testing.T) {
	s := NewTokenSealer()
	sealed, nonce, err := s.Seal("token-a", []byte("pw"))
	require.NoError(t, err)

	tampered := append([]byte(nil), sealed...)
	tampered[0] ^= 0xff

	tests := []struct {
		name   string
		token  string
		sealed []byte
		nonce  []byte
	}{
		{name: "wrong token", token: "token-b", sealed: sealed, nonce: nonce},
		{name: "tampered ciphertext", token: "token-a", sealed: tampered, nonce: nonce},
		{name: "short nonce", token: "token-a", sealed: sealed, nonce: nonce[:4]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Open(tt.token, tt.sealed, tt.nonce)
			require.ErrorIs(t, err, ErrDecryptFailed)
		})
	}
}
