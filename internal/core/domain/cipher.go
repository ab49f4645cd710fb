package domain

// Default cipher settings used when nothing else is configured.
const (
	DefaultCipherAlgorithm  = "aes-256-ctr"
	DefaultCipherPassphrase = "passphrase"
)

// CipherConfig is the algorithm name and passphrase used by the symmetric cipher.
// Nothing here is validated; an unknown algorithm only surfaces on Encrypt/Decrypt.
type CipherConfig struct {
	Algorithm  string
	Passphrase string
}
