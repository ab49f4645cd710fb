package security

import (
	"UnaxHelper/internal/core/ports"
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/chacha20"
)

type mode int

const (
	modeCTR mode = iota
	modeCBC
	modeChaCha20
)

type algorithmSpec struct {
	keyLen int
	ivLen  int
	mode   mode
}

// Names follow the OpenSSL cipher list so stored ciphertexts stay interchangeable.
var algorithms = map[string]algorithmSpec{
	"aes-128-ctr": {keyLen: 16, ivLen: aes.BlockSize, mode: modeCTR},
	"aes-192-ctr": {keyLen: 24, ivLen: aes.BlockSize, mode: modeCTR},
	"aes-256-ctr": {keyLen: 32, ivLen: aes.BlockSize, mode: modeCTR},
	"aes-128-cbc": {keyLen: 16, ivLen: aes.BlockSize, mode: modeCBC},
	"aes-192-cbc": {keyLen: 24, ivLen: aes.BlockSize, mode: modeCBC},
	"aes-256-cbc": {keyLen: 32, ivLen: aes.BlockSize, mode: modeCBC},
	// OpenSSL's chacha20 IV is a 4-byte little-endian counter followed by the 12-byte nonce.
	"chacha20": {keyLen: chacha20.KeySize, ivLen: 4 + chacha20.NonceSize, mode: modeChaCha20},
}

var (
	errBlockLength = errors.New("ciphertext is not a multiple of the block size")
	errPadding     = errors.New("invalid PKCS#7 padding")
	errCounter     = errors.New("chacha20 block counter would overflow")
)

// Algorithms returns the supported algorithm names, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// provider implements ports.CryptoProvider on crypto/aes and x/crypto/chacha20.
// Keys and IVs shorter than the algorithm needs are NUL-padded, longer ones truncated.
type provider struct{}

var _ ports.CryptoProvider = provider{}

// NewProvider returns the built-in algorithm table.
func NewProvider() ports.CryptoProvider {
	return provider{}
}

func (provider) Supports(algorithm string) bool {
	_, ok := algorithms[algorithm]
	return ok
}

func (provider) IVLength(algorithm string) (int, error) {
	spec, ok := algorithms[algorithm]
	if !ok {
		return 0, ErrUnsupportedAlgorithm
	}
	return spec.ivLen, nil
}

func (provider) Encrypt(algorithm string, key, iv, plaintext []byte) ([]byte, error) {
	spec, ok := algorithms[algorithm]
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	key, iv = fit(key, spec.keyLen), fit(iv, spec.ivLen)

	switch spec.mode {
	case modeCBC:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("could not create AES cipher: %w", err)
		}
		padded := pkcs7Pad(plaintext, block.BlockSize())
		out := make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
		return out, nil
	default:
		return xorStream(spec, key, iv, plaintext)
	}
}

func (provider) Decrypt(algorithm string, key, iv, ciphertext []byte) ([]byte, error) {
	spec, ok := algorithms[algorithm]
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	key, iv = fit(key, spec.keyLen), fit(iv, spec.ivLen)

	switch spec.mode {
	case modeCBC:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("could not create AES cipher: %w", err)
		}
		if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
			return nil, errBlockLength
		}
		out := make([]byte, len(ciphertext))
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
		return pkcs7Unpad(out, block.BlockSize())
	default:
		return xorStream(spec, key, iv, ciphertext)
	}
}

// xorStream runs the stream modes; encryption and decryption are the same operation.
func xorStream(spec algorithmSpec, key, iv, in []byte) ([]byte, error) {
	var stream cipher.Stream

	switch spec.mode {
	case modeCTR:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("could not create AES cipher: %w", err)
		}
		stream = cipher.NewCTR(block, iv)
	case modeChaCha20:
		counter := binary.LittleEndian.Uint32(iv[:4])
		blocks := (uint64(len(in)) + 63) / 64
		if uint64(counter)+blocks > 1<<32 {
			return nil, errCounter
		}
		c, err := chacha20.NewUnauthenticatedCipher(key, iv[4:])
		if err != nil {
			return nil, fmt.Errorf("could not create chacha20 cipher: %w", err)
		}
		c.SetCounter(counter)
		stream = c
	default:
		return nil, ErrUnsupportedAlgorithm
	}

	out := make([]byte, len(in))
	stream.XORKeyStream(out, in)
	return out, nil
}

// fit returns b NUL-padded or truncated to exactly n bytes.
func fit(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := len(data)
	if n == 0 {
		return nil, errPadding
	}
	padding := int(data[n-1])
	if padding == 0 || padding > blockSize || padding > n {
		return nil, errPadding
	}
	for _, b := range data[n-padding:] {
		if int(b) != padding {
			return nil, errPadding
		}
	}
	return data[:n-padding], nil
}
