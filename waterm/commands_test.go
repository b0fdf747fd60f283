package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"rhystmorgan/waLink/internal/models"
	"rhystmorgan/waLink/internal/storage"
)

func TestExportThenImport(t *testing.T) {
	source := models.NewContactStore(storage.NewMemoryStore(), nil, nil)
	if err := source.Add("Amy", "919876543210"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := source.Add("Bob", "447911123456"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	dir := t.TempDir()
	var out bytes.Buffer
	if err := exportContacts(&out, source, dir, ""); err != nil {
		t.Fatalf("exportContacts() error = %v", err)
	}
	if !strings.Contains(out.String(), "Exported 2 contacts") {
		t.Errorf("output = %q", out.String())
	}

	files, err := filepath.Glob(filepath.Join(dir, "exports", "contacts_backup_*.json"))
	if err != nil || len(files) != 1 {
		t.Fatalf("export files = %v, err = %v", files, err)
	}

	target := models.NewContactStore(storage.NewMemoryStore(), nil, nil)
	if err := target.Add("Amy", "919876543210"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	out.Reset()
	if err := importContacts(&out, target, zap.NewNop(), files[0]); err != nil {
		t.Fatalf("importContacts() error = %v", err)
	}

	if got := len(target.List()); got != 2 {
		t.Errorf("target has %d contacts, want 2", got)
	}
	if !strings.Contains(out.String(), "Skipping Amy") || !strings.Contains(out.String(), "Imported 1 of 2 contacts") {
		t.Errorf("output = %q", out.String())
	}
}

func TestImportReportsInvalidRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	if err := os.WriteFile(path, []byte("name,number\nAmy,12\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	target := models.NewContactStore(storage.NewMemoryStore(), nil, nil)
	var out bytes.Buffer
	if err := importContacts(&out, target, zap.NewNop(), path); err != nil {
		t.Fatalf("importContacts() error = %v", err)
	}

	if len(target.List()) != 0 {
		t.Error("invalid row was saved")
	}
	if !strings.Contains(out.String(), "Line 2: number: Invalid phone number") {
		t.Errorf("output = %q", out.String())
	}
}

type unreadableStore struct {
	*storage.MemoryStore
}

func (unreadableStore) Get(string) (string, bool, error) {
	return "", false, errors.New("connection reset")
}

func TestImportStopsOnUnreadableStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	if err := os.WriteFile(path, []byte("name,number\nAmy,919876543210\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	inner := storage.NewMemoryStore()
	_ = inner.Set(storage.KeyContacts, `[{"name":"Bob","number":"447911123456"}]`)
	target := models.NewContactStore(unreadableStore{MemoryStore: inner}, nil, nil)

	var out bytes.Buffer
	if err := importContacts(&out, target, zap.NewNop(), path); err == nil {
		t.Fatal("importContacts() error = nil, want read failure")
	}

	raw, _, _ := inner.Get(storage.KeyContacts)
	if !strings.Contains(raw, "Bob") || strings.Contains(raw, "Amy") {
		t.Errorf("stored contacts = %s", raw)
	}
}
