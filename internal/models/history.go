package models

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"rhystmorgan/waLink/internal/audit"
	"rhystmorgan/waLink/internal/storage"
)

// contactedLayout matches the UTC string browsers produce for Date.toUTCString.
const contactedLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// HistoryEntry records one activation of a chat link.
type HistoryEntry struct {
	Number    string `json:"number"`
	Timestamp string `json:"timestamp"`
}

// ContactedOn formats t as a history timestamp.
func ContactedOn(t time.Time) string {
	return "Contacted on: " + t.UTC().Format(contactedLayout)
}

// HistoryStore manages the append-only history collection. With maxEntries > 0
// the oldest entries are dropped once the log grows past it.
type HistoryStore struct {
	kv         storage.KeyValueStore
	logger     *zap.Logger
	auditor    *audit.Auditor
	maxEntries int
}

func NewHistoryStore(kv storage.KeyValueStore, logger *zap.Logger, auditor *audit.Auditor, maxEntries int) *HistoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &HistoryStore{
		kv:         kv,
		logger:     logger,
		auditor:    auditor,
		maxEntries: maxEntries,
	}
}

// Record appends an entry. Duplicates are kept.
func (s *HistoryStore) Record(number, timestamp string) error {
	entries, err := s.loadForUpdate()
	if err != nil {
		return err
	}
	entries = append(entries, HistoryEntry{Number: number, Timestamp: timestamp})

	if s.maxEntries > 0 && len(entries) > s.maxEntries {
		entries = entries[len(entries)-s.maxEntries:]
	}

	if err := storage.WriteJSON(s.kv, storage.KeyHistory, entries); err != nil {
		return err
	}

	s.auditor.Record(audit.AuditActionChatOpen, number)
	return nil
}

// List returns the entries in insertion order, most recent last.
func (s *HistoryStore) List() []HistoryEntry {
	return s.load()
}

// RemoveAt deletes the entry at index (insertion order).
func (s *HistoryStore) RemoveAt(index int) error {
	entries, err := s.loadForUpdate()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("history entry %d out of range", index)
	}

	removed := entries[index]
	entries = append(entries[:index], entries[index+1:]...)
	if err := storage.WriteJSON(s.kv, storage.KeyHistory, entries); err != nil {
		return err
	}

	s.auditor.Record(audit.AuditActionHistoryDelete, removed.Number)
	return nil
}

// Clear empties the history.
func (s *HistoryStore) Clear() error {
	if err := storage.WriteJSON(s.kv, storage.KeyHistory, []HistoryEntry{}); err != nil {
		return err
	}

	s.auditor.Record(audit.AuditActionHistoryClear, "")
	return nil
}

func (s *HistoryStore) load() []HistoryEntry {
	entries, err := storage.ReadJSON(s.kv, storage.KeyHistory, []HistoryEntry{})
	if err != nil {
		s.logger.Warn("using empty history", zap.Error(err))
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries
}

func (s *HistoryStore) loadForUpdate() ([]HistoryEntry, error) {
	entries, err := storage.ReadJSON(s.kv, storage.KeyHistory, []HistoryEntry{})
	if err != nil {
		if !storage.IsCorrupt(err) {
			return nil, err
		}
		s.logger.Warn("replacing corrupt history", zap.Error(err))
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}
