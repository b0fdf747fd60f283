package storage

import (
	"errors"
	"testing"
)

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingStore) Set(string, string) error         { return errors.New("disk on fire") }
func (failingStore) Delete(string) error              { return errors.New("disk on fire") }

func TestTryParse(t *testing.T) {
	fallback := []string{"default"}

	got, err := TryParse("k", "", fallback)
	if err != nil || len(got) != 1 || got[0] != "default" {
		t.Errorf("Empty input should yield fallback without error, got %v, %v", got, err)
	}

	got, err = TryParse("k", `["a","b"]`, fallback)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 2 || got[1] != "b" {
		t.Errorf("Expected [a b], got %v", got)
	}

	got, err = TryParse("k", `{not json`, fallback)
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Expected CorruptError, got %v", err)
	}
	if corrupt.Key != "k" {
		t.Errorf("Expected key 'k', got %q", corrupt.Key)
	}
	if len(got) != 1 || got[0] != "default" {
		t.Errorf("Corrupt input should yield fallback, got %v", got)
	}

	_, err = TryParse("k", `{"a":1}`, fallback)
	if !errors.As(err, &corrupt) {
		t.Errorf("Object where array expected should be corrupt, got %v", err)
	}
}

func TestReadWriteJSON(t *testing.T) {
	kv := NewMemoryStore()

	got, err := ReadJSON(kv, "numbers", []int{})
	if err != nil || len(got) != 0 {
		t.Errorf("Absent key should yield fallback, got %v, %v", got, err)
	}

	if err := WriteJSON(kv, "numbers", []int{1, 2, 3}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	raw, ok, _ := kv.Get("numbers")
	if !ok || raw != "[1,2,3]" {
		t.Errorf("Expected raw [1,2,3], got %q", raw)
	}

	got, err = ReadJSON(kv, "numbers", []int{})
	if err != nil || len(got) != 3 {
		t.Errorf("Expected 3 numbers, got %v, %v", got, err)
	}
}

func TestReadJSONFailingStore(t *testing.T) {
	got, err := ReadJSON(failingStore{}, "numbers", []int{7})
	if err == nil {
		t.Error("Expected error from failing store")
	}
	if IsCorrupt(err) {
		t.Errorf("A failed read must not be reported as corruption: %v", err)
	}
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("Expected fallback, got %v", got)
	}

	if err := WriteJSON(failingStore{}, "numbers", []int{1}); err == nil {
		t.Error("Expected write error from failing store")
	}
}

func TestIsCorrupt(t *testing.T) {
	kv := NewMemoryStore()
	_ = kv.Set("numbers", "{oops")

	_, err := ReadJSON(kv, "numbers", []int{})
	if !IsCorrupt(err) {
		t.Errorf("Expected corrupt value error, got %v", err)
	}

	if IsCorrupt(nil) {
		t.Error("nil is not corrupt")
	}
}

func TestReadJSONSealedWrongPassphrase(t *testing.T) {
	inner := NewMemoryStore()
	right := NewSealedStore(inner, "correct horse")
	right.iterations = 1000
	if err := WriteJSON(right, KeyContacts, []string{"A"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	wrong := NewSealedStore(inner, "battery staple")
	wrong.iterations = 1000
	_, err := ReadJSON(wrong, KeyContacts, []string{})
	if err == nil || IsCorrupt(err) {
		t.Errorf("Expected a read failure for the wrong passphrase, got %v", err)
	}
}
