package storage

import (
	"fmt"
	"io"
)

// SealedStore encrypts every value before handing it to the wrapped store.
type SealedStore struct {
	inner      KeyValueStore
	passphrase string
	iterations int
}

func NewSealedStore(inner KeyValueStore, passphrase string) *SealedStore {
	return &SealedStore{inner: inner, passphrase: passphrase, iterations: iterations}
}

func (s *SealedStore) Get(key string) (string, bool, error) {
	value, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return "", ok, err
	}

	plaintext, err := unseal(value, s.passphrase, s.iterations)
	if err != nil {
		return "", false, fmt.Errorf("failed to decrypt %s: %w", key, err)
	}
	return string(plaintext), true, nil
}

func (s *SealedStore) Set(key, value string) error {
	sealed, err := seal([]byte(value), s.passphrase, s.iterations)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", key, err)
	}
	return s.inner.Set(key, sealed)
}

func (s *SealedStore) Delete(key string) error {
	return s.inner.Delete(key)
}

// Close closes the wrapped store when it holds resources.
func (s *SealedStore) Close() error {
	if closer, ok := s.inner.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
