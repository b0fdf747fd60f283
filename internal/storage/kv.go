package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the persisted collections.
const (
	KeyContacts        = "savedContacts"
	KeyHistory         = "history"
	KeyTemplates       = "quickTemplates"
	KeyDefaultTemplate = "quickTemplatesDefault"
)

// KeyValueStore is the durable layer every collection store reads and writes.
// Values are UTF-8 JSON text (or a bare string for the default template key).
// Get reports ok=false for absent keys.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// CorruptError describes a persisted value that could not be decoded. Stores
// recover from it by using their defaults.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt value for %q: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// TryParse decodes raw into a T. Empty input yields fallback with no error;
// unparseable input yields fallback and a *CorruptError.
func TryParse[T any](key, raw string, fallback T) (T, error) {
	if raw == "" {
		return fallback, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fallback, &CorruptError{Key: key, Err: err}
	}
	return value, nil
}

// ReadJSON loads key from kv and decodes it, falling back on absence, read
// failure or corruption. A read failure is returned as is; a value that does
// not decode is returned as a *CorruptError. Read-only callers may ignore both.
// Callers about to write the collection back must stop on anything but IsCorrupt.
func ReadJSON[T any](kv KeyValueStore, key string, fallback T) (T, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fallback, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return fallback, nil
	}
	return TryParse(key, raw, fallback)
}

// IsCorrupt reports whether err says the stored value itself is unreadable, as
// opposed to the store failing to return it.
func IsCorrupt(err error) bool {
	var corrupt *CorruptError
	return errors.As(err, &corrupt)
}

// WriteJSON encodes value and stores it under key as a whole.
func WriteJSON(kv KeyValueStore, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
