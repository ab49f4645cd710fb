package ports

import "UnaxHelper/internal/core/domain"

// CipherPort encrypts and decrypts short strings (settings values, tokens)
// with the configured algorithm and passphrase.
type CipherPort interface {
	// Encrypt returns the base64-encoded ciphertext of plaintext.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt.
	Decrypt(ciphertext string) (string, error)
}

// CipherConfigSource is the secret store the cipher reads on every call.
type CipherConfigSource interface {
	CipherConfig() domain.CipherConfig
}

// CryptoProvider is the table of algorithms the cipher can use.
type CryptoProvider interface {
	// Supports reports whether the algorithm name is known.
	Supports(algorithm string) bool

	// IVLength returns the IV size mandated by algorithm.
	IVLength(algorithm string) (int, error)

	Encrypt(algorithm string, key, iv, plaintext []byte) ([]byte, error)
	Decrypt(algorithm string, key, iv, ciphertext []byte) ([]byte, error)
}
