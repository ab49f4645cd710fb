package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_IVLength(t *testing.T) {
	p := NewProvider()

	for _, alg := range Algorithms() {
		n, err := p.IVLength(alg)
		require.NoError(t, err, alg)
		assert.Equal(t, 16, n, alg)
		assert.True(t, p.Supports(alg))
	}

	_, err := p.IVLength("aes-256-gcm")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	assert.False(t, p.Supports("AES-256-CTR"))
}

func TestFit(t *testing.T) {
	assert.Equal(t, []byte{'a', 'b', 0, 0}, fit([]byte("ab"), 4))
	assert.Equal(t, []byte("abc"), fit([]byte("abcdef"), 3))
}

func TestPKCS7(t *testing.T) {
	padded := pkcs7Pad([]byte("0123456789abcdef"), 16)
	require.Len(t, padded, 32)
	assert.Equal(t, byte(16), padded[31])

	out, err := pkcs7Unpad(padded, 16)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", string(out))

	bad := append([]byte("0123456789abcde"), 3)
	_, err = pkcs7Unpad(bad, 16)
	assert.ErrorIs(t, err, errPadding)
}

func TestProvider_ChaCha20CounterOverflow(t *testing.T) {
	p := NewProvider()
	iv := []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	_, err := p.Encrypt("chacha20", []byte("key"), iv, make([]byte, 65))
	assert.ErrorIs(t, err, errCounter)
}
