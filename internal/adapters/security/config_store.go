package security

import (
	"UnaxHelper/internal/core/domain"
	"UnaxHelper/internal/core/ports"
	"sync"
)

// ConfigStore holds the cipher algorithm and passphrase behind a read-mostly lock.
// Setters never validate; the cipher reads a fresh snapshot on every call.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg domain.CipherConfig
}

var _ ports.CipherConfigSource = (*ConfigStore)(nil)

// NewConfigStore creates a store seeded with cfg.
func NewConfigStore(cfg domain.CipherConfig) *ConfigStore {
	return &ConfigStore{cfg: cfg}
}

// CipherConfig returns a snapshot of the current settings.
func (s *ConfigStore) CipherConfig() domain.CipherConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *ConfigStore) Algorithm() string {
	return s.CipherConfig().Algorithm
}

func (s *ConfigStore) SetAlgorithm(algorithm string) {
	s.mu.Lock()
	s.cfg.Algorithm = algorithm
	s.mu.Unlock()
}

func (s *ConfigStore) Passphrase() string {
	return s.CipherConfig().Passphrase
}

func (s *ConfigStore) SetPassphrase(passphrase string) {
	s.mu.Lock()
	s.cfg.Passphrase = passphrase
	s.mu.Unlock()
}
