package models

import (
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"rhystmorgan/waLink/internal/audit"
	"rhystmorgan/waLink/internal/storage"
	"rhystmorgan/waLink/internal/validation"
)

// ErrDuplicate matches Add failures caused by a name or number collision.
var ErrDuplicate = validation.ErrDuplicate

// Contact is a saved chat target. Number is the full number including country code.
type Contact struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// ContactStore manages the savedContacts collection.
type ContactStore struct {
	kv      storage.KeyValueStore
	logger  *zap.Logger
	auditor *audit.Auditor
	lang    language.Tag
}

func NewContactStore(kv storage.KeyValueStore, logger *zap.Logger, auditor *audit.Auditor) *ContactStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactStore{
		kv:      kv,
		logger:  logger,
		auditor: auditor,
		lang:    language.Und,
	}
}

// SetLanguage changes the collation used by List.
func (s *ContactStore) SetLanguage(tag language.Tag) {
	s.lang = tag
}

// List returns all contacts sorted by name. The order is never persisted.
func (s *ContactStore) List() []Contact {
	contacts := s.load()

	collator := collate.New(s.lang)
	sort.SliceStable(contacts, func(i, j int) bool {
		return collator.CompareString(contacts[i].Name, contacts[j].Name) < 0
	})

	return contacts
}

// Add saves a new contact. It fails without writing when the name is blank, the
// number is malformed, either the name or the number is already saved, or the
// current list could not be read.
func (s *ContactStore) Add(name, fullNumber string) error {
	contacts, err := s.loadForUpdate()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(contacts))
	numbers := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		names = append(names, contact.Name)
		numbers = append(numbers, contact.Number)
	}

	if vErr := validation.ValidateContact(name, fullNumber, names, numbers); vErr != nil {
		return vErr
	}

	contacts = append(contacts, Contact{Name: name, Number: fullNumber})
	if err := storage.WriteJSON(s.kv, storage.KeyContacts, contacts); err != nil {
		return err
	}

	s.auditor.Record(audit.AuditActionContactCreate, name, zap.String("number", fullNumber))
	return nil
}

// Remove deletes every contact named exactly name. Unknown names are a no-op.
func (s *ContactStore) Remove(name string) error {
	contacts, err := s.loadForUpdate()
	if err != nil {
		return err
	}

	remaining := make([]Contact, 0, len(contacts))
	for _, contact := range contacts {
		if contact.Name != name {
			remaining = append(remaining, contact)
		}
	}

	if err := storage.WriteJSON(s.kv, storage.KeyContacts, remaining); err != nil {
		return err
	}

	if removed := len(contacts) - len(remaining); removed > 0 {
		s.auditor.Record(audit.AuditActionContactDelete, name, zap.Int("removed", removed))
	}
	return nil
}

// RemoveAll replaces the collection with an empty one.
func (s *ContactStore) RemoveAll() error {
	if err := storage.WriteJSON(s.kv, storage.KeyContacts, []Contact{}); err != nil {
		return err
	}

	s.auditor.Record(audit.AuditActionContactDeleteAll, "")
	return nil
}

// FindByNumber returns the saved contact for number, or nil.
func (s *ContactStore) FindByNumber(number string) *Contact {
	for _, contact := range s.load() {
		if contact.Number == number {
			found := contact
			return &found
		}
	}
	return nil
}

func (s *ContactStore) load() []Contact {
	contacts, err := storage.ReadJSON(s.kv, storage.KeyContacts, []Contact{})
	if err != nil {
		s.logger.Warn("using empty contact list", zap.Error(err))
	}
	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts
}

// loadForUpdate reads the list ahead of a write. Corrupt data is replaced, but a
// failed read is returned so the stored list is never overwritten blind.
func (s *ContactStore) loadForUpdate() ([]Contact, error) {
	contacts, err := storage.ReadJSON(s.kv, storage.KeyContacts, []Contact{})
	if err != nil {
		if !storage.IsCorrupt(err) {
			return nil, err
		}
		s.logger.Warn("replacing corrupt contact list", zap.Error(err))
	}
	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts, nil
}
