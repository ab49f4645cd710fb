package security

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an encrypt or decrypt call failed.
type ErrorKind int

const (
	// KindEmptyInput means the plaintext or ciphertext was empty.
	KindEmptyInput ErrorKind = iota + 1
	// KindUnsupportedAlgorithm means the configured algorithm is not in the provider table.
	KindUnsupportedAlgorithm
	// KindMalformedCiphertext means the ciphertext is not valid base64 or has a bad length or padding.
	KindMalformedCiphertext
	// KindCipherFailure means the underlying primitive could not be built.
	KindCipherFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty_input"
	case KindUnsupportedAlgorithm:
		return "unsupported_algorithm"
	case KindMalformedCiphertext:
		return "malformed_ciphertext"
	case KindCipherFailure:
		return "cipher_failure"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is() checks, one per ErrorKind.
var (
	// ErrEmptyInput is matched by a CipherError of KindEmptyInput.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnsupportedAlgorithm is matched by a CipherError of KindUnsupportedAlgorithm.
	ErrUnsupportedAlgorithm = errors.New("unsupported cipher algorithm")

	// ErrMalformedCiphertext is matched by a CipherError of KindMalformedCiphertext.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrCipherFailure is matched by a CipherError of KindCipherFailure.
	ErrCipherFailure = errors.New("cipher failure")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindEmptyInput:
		return ErrEmptyInput
	case KindUnsupportedAlgorithm:
		return ErrUnsupportedAlgorithm
	case KindMalformedCiphertext:
		return ErrMalformedCiphertext
	case KindCipherFailure:
		return ErrCipherFailure
	default:
		return nil
	}
}

// CipherError is returned by every failing Encrypt/Decrypt call.
type CipherError struct {
	Op        string // "encrypt" or "decrypt"
	Kind      ErrorKind
	Algorithm string
	Err       error // underlying cause, may be nil
}

func newCipherError(op string, kind ErrorKind, algorithm string, err error) *CipherError {
	return &CipherError{Op: op, Kind: kind, Algorithm: algorithm, Err: err}
}

func (e *CipherError) Error() string {
	msg := fmt.Sprintf("%s (%s): %v", e.Op, e.Algorithm, e.Kind.sentinel())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *CipherError) Unwrap() error { return e.Err }

// Is matches the sentinel error of the same kind.
func (e *CipherError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the ErrorKind of err, or 0 when err is not a CipherError.
func KindOf(err error) ErrorKind {
	var ce *CipherError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
