package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rhystmorgan/waLink/internal/audit"
	"rhystmorgan/waLink/internal/storage"
	"rhystmorgan/waLink/internal/validation"
)

const (
	MinTemplates = 3
	MaxTemplates = 15

	newTemplateLabel = "New"
)

// Template is a reusable quick message.
type Template struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// DefaultTemplates returns the built-in set used when nothing valid is stored.
func DefaultTemplates() []Template {
	return []Template{
		{Key: "realestate", Label: "Real Estate", Text: "Hi, I'm interested in the property at..."},
		{Key: "ecommerce", Label: "E-commerce", Text: "I have a question about my order..."},
		{Key: "booking", Label: "Booking", Text: "I would like to schedule an appointment."},
	}
}

// OrderedForSelection moves the template keyed defaultKey to the front. Every other
// template keeps its relative order. The input is not modified.
func OrderedForSelection(templates []Template, defaultKey string) []Template {
	ordered := make([]Template, len(templates))
	copy(ordered, templates)

	if defaultKey == "" {
		return ordered
	}

	for i, template := range ordered {
		if template.Key != defaultKey {
			continue
		}
		if i > 0 {
			copy(ordered[1:i+1], ordered[:i])
			ordered[0] = template
		}
		break
	}

	return ordered
}

// AddTemplate appends a blank template with a fresh key. At MaxTemplates the
// input is returned unchanged.
func AddTemplate(templates []Template) []Template {
	if len(templates) >= MaxTemplates {
		return templates
	}

	next := make([]Template, len(templates), len(templates)+1)
	copy(next, templates)
	return append(next, Template{Key: generateTemplateKey(templates), Label: newTemplateLabel})
}

// RemoveTemplate drops the template at index. At MinTemplates, or for an index out
// of range, nothing changes. Removing the default clears the returned default key.
func RemoveTemplate(templates []Template, index int, defaultKey string) ([]Template, string) {
	if len(templates) <= MinTemplates || index < 0 || index >= len(templates) {
		return templates, defaultKey
	}

	if templates[index].Key == defaultKey {
		defaultKey = ""
	}

	next := make([]Template, 0, len(templates)-1)
	next = append(next, templates[:index]...)
	next = append(next, templates[index+1:]...)
	return next, defaultKey
}

// EditTemplate replaces the label and text at index. An empty label keeps the old one.
func EditTemplate(templates []Template, index int, label, text string) []Template {
	if index < 0 || index >= len(templates) {
		return templates
	}

	next := make([]Template, len(templates))
	copy(next, templates)

	if label != "" {
		next[index].Label = label
	}
	next[index].Text = text
	return next
}

// RekeyTemplate changes the key at index. Uniqueness is checked on save.
func RekeyTemplate(templates []Template, index int, key string) []Template {
	if index < 0 || index >= len(templates) {
		return templates
	}

	next := make([]Template, len(templates))
	copy(next, templates)
	next[index].Key = key
	return next
}

// ValidateForSave checks the count bounds and key uniqueness.
func ValidateForSave(templates []Template) error {
	if len(templates) < MinTemplates {
		return validation.NewValidationError("templates", validation.ErrorTemplateCount,
			fmt.Sprintf("You must keep at least %d templates.", MinTemplates))
	}
	if len(templates) > MaxTemplates {
		return validation.NewValidationError("templates", validation.ErrorTemplateCount,
			fmt.Sprintf("You can have at most %d templates.", MaxTemplates))
	}

	keys := make(map[string]bool, len(templates))
	for _, template := range templates {
		if validation.IsBlank(template.Key) {
			return validation.NewValidationError("key", validation.ErrorEmptyKey, "Template keys cannot be empty.")
		}
	}
	for _, template := range templates {
		key := strings.TrimSpace(template.Key)
		if keys[key] {
			return validation.NewValidationError("key", validation.ErrorDuplicateKey,
				fmt.Sprintf("Template keys must be unique (%q is repeated).", key))
		}
		keys[key] = true
	}

	return nil
}

// FindTemplate returns the index of key, or -1.
func FindTemplate(templates []Template, key string) int {
	for i, template := range templates {
		if template.Key == key {
			return i
		}
	}
	return -1
}

func generateTemplateKey(existing []Template) string {
	for {
		key := "t" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		if FindTemplate(existing, key) < 0 {
			return key
		}
	}
}

// TemplateStore persists the quick template collection and its default key.
type TemplateStore struct {
	kv      storage.KeyValueStore
	logger  *zap.Logger
	auditor *audit.Auditor
}

func NewTemplateStore(kv storage.KeyValueStore, logger *zap.Logger, auditor *audit.Auditor) *TemplateStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateStore{kv: kv, logger: logger, auditor: auditor}
}

// Load returns the stored templates, or the built-in defaults when the stored
// value is absent, corrupt, or holds fewer than MinTemplates well-formed entries.
// Entries that are not objects with a non-empty string key are skipped.
func (s *TemplateStore) Load() []Template {
	raw, err := storage.ReadJSON(s.kv, storage.KeyTemplates, []json.RawMessage(nil))
	if err != nil {
		s.logger.Warn("using default templates", zap.Error(err))
		return DefaultTemplates()
	}

	templates := make([]Template, 0, len(raw))
	for _, item := range raw {
		var template Template
		if err := json.Unmarshal(item, &template); err != nil || validation.IsBlank(template.Key) {
			continue
		}
		templates = append(templates, template)
	}

	if len(templates) < MinTemplates {
		if raw != nil {
			s.logger.Warn("stored templates below minimum, using defaults", zap.Int("count", len(templates)))
		}
		return DefaultTemplates()
	}

	if len(templates) > MaxTemplates {
		templates = templates[:MaxTemplates]
	}
	return templates
}

// LoadDefaultKey returns the stored default template key, or "" when unset.
func (s *TemplateStore) LoadDefaultKey() string {
	value, ok, err := s.kv.Get(storage.KeyDefaultTemplate)
	if err != nil {
		s.logger.Warn("ignoring unreadable default template key", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return value
}

// Save validates and persists templates. A defaultKey that is empty or names no
// saved template removes the default record. On validation failure nothing is written.
func (s *TemplateStore) Save(templates []Template, defaultKey string) error {
	if err := ValidateForSave(templates); err != nil {
		return err
	}

	if len(templates) > MaxTemplates {
		templates = templates[:MaxTemplates]
	}

	if err := storage.WriteJSON(s.kv, storage.KeyTemplates, templates); err != nil {
		return err
	}

	if defaultKey != "" && FindTemplate(templates, defaultKey) >= 0 {
		if err := s.kv.Set(storage.KeyDefaultTemplate, defaultKey); err != nil {
			return fmt.Errorf("failed to write default template: %w", err)
		}
	} else {
		if err := s.kv.Delete(storage.KeyDefaultTemplate); err != nil {
			return fmt.Errorf("failed to clear default template: %w", err)
		}
		defaultKey = ""
	}

	s.auditor.Record(audit.AuditActionTemplatesSave, defaultKey, zap.Int("count", len(templates)))
	return nil
}
