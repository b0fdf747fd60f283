package models

import (
	"testing"
	"time"

	"rhystmorgan/waLink/internal/storage"
)

func TestContactedOn(t *testing.T) {
	ts := time.Date(2026, time.October, 14, 9, 5, 3, 0, time.FixedZone("IST", 19800))
	expected := "Contacted on: Wed, 14 Oct 2026 03:35:03 GMT"
	if got := ContactedOn(ts); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestHistoryStoreRecordAndList(t *testing.T) {
	kv := storage.NewMemoryStore()
	store := NewHistoryStore(kv, nil, nil, 0)

	if got := store.List(); len(got) != 0 {
		t.Fatalf("Expected empty history, got %v", got)
	}

	_ = store.Record("919876543210", "t1")
	_ = store.Record("919876543211", "t2")
	_ = store.Record("919876543210", "t3")

	entries := store.List()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries (duplicates kept), got %d", len(entries))
	}
	if entries[0].Timestamp != "t1" || entries[2].Timestamp != "t3" {
		t.Errorf("Expected insertion order, got %v", entries)
	}

	raw, _, _ := kv.Get(storage.KeyHistory)
	if raw != `[{"number":"919876543210","timestamp":"t1"},{"number":"919876543211","timestamp":"t2"},{"number":"919876543210","timestamp":"t3"}]` {
		t.Errorf("Unexpected persisted history: %s", raw)
	}
}

func TestHistoryStoreLimit(t *testing.T) {
	store := NewHistoryStore(storage.NewMemoryStore(), nil, nil, 2)

	_ = store.Record("1", "t1")
	_ = store.Record("2", "t2")
	_ = store.Record("3", "t3")

	entries := store.List()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Number != "2" || entries[1].Number != "3" {
		t.Errorf("Expected the oldest entry to be dropped, got %v", entries)
	}
}

func TestHistoryStoreRemoveAndClear(t *testing.T) {
	store := NewHistoryStore(storage.NewMemoryStore(), nil, nil, 0)
	_ = store.Record("1", "t1")
	_ = store.Record("2", "t2")

	if err := store.RemoveAt(5); err == nil {
		t.Error("Expected out of range error")
	}

	if err := store.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	entries := store.List()
	if len(entries) != 1 || entries[0].Number != "2" {
		t.Errorf("Expected only entry 2, got %v", entries)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := store.List(); len(got) != 0 {
		t.Errorf("Expected empty history, got %v", got)
	}
}

func TestHistoryStoreCorrupt(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(storage.KeyHistory, "not json")

	store := NewHistoryStore(kv, nil, nil, 0)
	if got := store.List(); len(got) != 0 {
		t.Errorf("Expected empty history from corrupt storage, got %v", got)
	}

	if err := store.Record("1", "t1"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if got := store.List(); len(got) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(got))
	}
}

func TestHistoryStoreReadFailureKeepsData(t *testing.T) {
	kv := &unreadableStore{MemoryStore: storage.NewMemoryStore()}
	store := NewHistoryStore(kv, nil, nil, 0)

	for _, number := range []string{"1", "2", "3"} {
		if err := store.Record(number, "t"); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	before, _, _ := kv.MemoryStore.Get(storage.KeyHistory)

	kv.failGet = true
	if err := store.Record("4", "t"); err == nil {
		t.Error("Record should fail when history cannot be read")
	}
	if err := store.RemoveAt(0); err == nil {
		t.Error("RemoveAt should fail when history cannot be read")
	}

	kv.failGet = false
	after, _, _ := kv.MemoryStore.Get(storage.KeyHistory)
	if after != before {
		t.Errorf("Stored history changed during read failure: %s -> %s", before, after)
	}
	if got := store.List(); len(got) != 3 {
		t.Errorf("Expected 3 entries after recovery, got %d", len(got))
	}
}
