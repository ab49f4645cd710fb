package security

import (
	"UnaxHelper/internal/core/ports"
	"encoding/base64"
	"errors"

	"github.com/rs/zerolog"
)

// symmetricCipher implements the CipherPort with a passphrase-keyed cipher
// chosen by name at call time.
//
// KNOWN WEAKNESS: the IV is the first N bytes of the passphrase, so it is the
// same for every message under one passphrase and algorithm. Equal plaintexts
// give equal ciphertexts, and with the stream modes two ciphertexts XOR to the
// XOR of their plaintexts. This matches values already stored by earlier
// releases and must not change silently; see TestSymmetricCipher_Deterministic.
type symmetricCipher struct {
	source   ports.CipherConfigSource
	provider ports.CryptoProvider
	log      zerolog.Logger
}

var _ ports.CipherPort = (*symmetricCipher)(nil)

// NewSymmetricCipher creates the cipher. Settings are read from source on every call.
func NewSymmetricCipher(source ports.CipherConfigSource, provider ports.CryptoProvider, baseLogger *zerolog.Logger) ports.CipherPort {
	log := baseLogger.With().Str("component", "symmetric_cipher").Logger()
	log.Debug().Str("algorithm", source.CipherConfig().Algorithm).Msg("Symmetric cipher initialized")

	return &symmetricCipher{source: source, provider: provider, log: log}
}

// Encrypt encrypts plaintext and returns it base64-encoded.
func (c *symmetricCipher) Encrypt(plaintext string) (string, error) {
	cfg := c.source.CipherConfig()
	if plaintext == "" {
		return "", newCipherError("encrypt", KindEmptyInput, cfg.Algorithm, nil)
	}

	iv, err := c.iv(cfg.Algorithm, cfg.Passphrase)
	if err != nil {
		return "", c.fail("encrypt", cfg.Algorithm, err)
	}

	out, err := c.provider.Encrypt(cfg.Algorithm, []byte(cfg.Passphrase), iv, []byte(plaintext))
	if err != nil {
		return "", c.fail("encrypt", cfg.Algorithm, err)
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt decodes and decrypts a value produced by Encrypt.
func (c *symmetricCipher) Decrypt(ciphertext string) (string, error) {
	cfg := c.source.CipherConfig()
	if ciphertext == "" {
		return "", newCipherError("decrypt", KindEmptyInput, cfg.Algorithm, nil)
	}

	iv, err := c.iv(cfg.Algorithm, cfg.Passphrase)
	if err != nil {
		return "", c.fail("decrypt", cfg.Algorithm, err)
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", c.fail("decrypt", cfg.Algorithm, &malformedError{err})
	}

	out, err := c.provider.Decrypt(cfg.Algorithm, []byte(cfg.Passphrase), iv, raw)
	if err != nil {
		return "", c.fail("decrypt", cfg.Algorithm, err)
	}
	return string(out), nil
}

// iv returns the passphrase prefix used as IV. The provider NUL-pads it when
// the passphrase is shorter than the IV.
func (c *symmetricCipher) iv(algorithm, passphrase string) ([]byte, error) {
	if !c.provider.Supports(algorithm) {
		return nil, ErrUnsupportedAlgorithm
	}
	n, err := c.provider.IVLength(algorithm)
	if err != nil {
		return nil, err
	}
	if len(passphrase) < n {
		n = len(passphrase)
	}
	return []byte(passphrase[:n]), nil
}

type malformedError struct{ err error }

func (e *malformedError) Error() string { return e.err.Error() }
func (e *malformedError) Unwrap() error { return e.err }

// fail classifies err, logs it and wraps it in a CipherError.
func (c *symmetricCipher) fail(op, algorithm string, err error) error {
	var malformed *malformedError
	kind := KindCipherFailure
	switch {
	case errors.Is(err, ErrUnsupportedAlgorithm):
		kind, err = KindUnsupportedAlgorithm, nil
	case errors.As(err, &malformed):
		kind, err = KindMalformedCiphertext, malformed.err
	case errors.Is(err, errBlockLength), errors.Is(err, errPadding):
		kind = KindMalformedCiphertext
	}

	if kind == KindMalformedCiphertext {
		// Expected for tampered or foreign input
		c.log.Warn().Str("op", op).Str("algorithm", algorithm).Err(err).Msg("Rejected malformed ciphertext")
	} else {
		c.log.Error().Str("op", op).Str("algorithm", algorithm).Str("kind", kind.String()).Err(err).Msg("Cipher operation failed")
	}
	return newCipherError(op, kind, algorithm, err)
}
