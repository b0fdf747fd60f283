package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const (
	appDir  = ".waterm"
	fileExt = ".json"
)

var safeKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStore keeps one file per key under a data directory.
type FileStore struct {
	dataDir string
}

// DefaultDataDir returns ~/.waterm.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, appDir), nil
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileStore{dataDir: dataDir}, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	filePath, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return string(data), true, nil
}

func (s *FileStore) Set(key, value string) error {
	filePath, err := s.path(key)
	if err != nil {
		return err
	}

	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(value), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}

	return nil
}

func (s *FileStore) Delete(key string) error {
	filePath, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) (string, error) {
	if !safeKeyRegex.MatchString(key) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.dataDir, key+fileExt), nil
}
