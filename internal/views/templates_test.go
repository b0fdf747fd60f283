package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/waLink/internal/models"
	"rhystmorgan/waLink/internal/validation"
)

func pressTemplates(m *TemplatesModel, msgs ...tea.Msg) *TemplatesModel {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestTemplatesAddRemoveBounds(t *testing.T) {
	env := newTestEnv(t)
	m := NewTemplatesModel(env.deps)

	if len(m.templates) != models.MinTemplates {
		t.Fatalf("initial templates = %d, want %d", len(m.templates), models.MinTemplates)
	}

	m = pressTemplates(m, keyRunes("d"))
	if len(m.templates) != models.MinTemplates || !m.statusErr {
		t.Errorf("remove at minimum: %d templates, error %v", len(m.templates), m.statusErr)
	}

	for i := 0; i < models.MaxTemplates; i++ {
		m = pressTemplates(m, keyRunes("a"))
	}
	if len(m.templates) != models.MaxTemplates || !m.statusErr {
		t.Errorf("add past maximum: %d templates, error %v", len(m.templates), m.statusErr)
	}
	if m.cursor != models.MaxTemplates-1 {
		t.Errorf("cursor = %d, want last row", m.cursor)
	}

	m = pressTemplates(m, keyRunes("d"))
	if len(m.templates) != models.MaxTemplates-1 {
		t.Errorf("after remove: %d templates", len(m.templates))
	}
}

func TestTemplatesEditAndSave(t *testing.T) {
	env := newTestEnv(t)
	m := NewTemplatesModel(env.deps)

	m = pressTemplates(m, keyRunes("j"), keyRunes("e"))
	if !m.editing || m.field != fieldLabel {
		t.Fatalf("editing = %v, field = %v", m.editing, m.field)
	}

	m.keyInput.SetValue(" orders ")
	m.labelInput.SetValue("")
	m.textArea.SetValue("Where is order {{number}}?")
	m = pressTemplates(m, key(tea.KeyCtrlS))

	if m.editing {
		t.Fatal("expected editor closed after apply")
	}
	edited := m.templates[1]
	if edited.Key != "orders" || edited.Label != "E-commerce" || edited.Text != "Where is order {{number}}?" {
		t.Errorf("edited template = %+v", edited)
	}

	// Nothing persisted until save
	if got := env.deps.Templates.Load()[1].Key; got != "ecommerce" {
		t.Errorf("stored key before save = %q", got)
	}

	m = pressTemplates(m, keyRunes("f"), key(tea.KeyCtrlS))
	if m.statusErr {
		t.Fatalf("save failed: %s", m.status)
	}
	if got := env.deps.Templates.Load()[1].Key; got != "orders" {
		t.Errorf("stored key after save = %q", got)
	}
	if got := env.deps.Templates.LoadDefaultKey(); got != "orders" {
		t.Errorf("default key = %q, want %q", got, "orders")
	}
}

func TestTemplatesRekeyFollowsDefault(t *testing.T) {
	env := newTestEnv(t)
	if err := env.deps.Templates.Save(models.DefaultTemplates(), "booking"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	m := NewTemplatesModel(env.deps)

	m = pressTemplates(m, keyRunes("j"), keyRunes("j"), keyRunes("e"))
	m.keyInput.SetValue("appointments")
	m = pressTemplates(m, key(tea.KeyCtrlS))

	if m.defaultKey != "appointments" {
		t.Errorf("defaultKey = %q, want %q", m.defaultKey, "appointments")
	}
}

func TestTemplatesSaveRejectsDuplicateKeys(t *testing.T) {
	env := newTestEnv(t)
	m := NewTemplatesModel(env.deps)

	m = pressTemplates(m, keyRunes("e"))
	m.keyInput.SetValue("booking")
	m = pressTemplates(m, key(tea.KeyCtrlS), key(tea.KeyCtrlS))

	if !m.statusErr {
		t.Fatal("expected a validation error")
	}
	err := models.ValidateForSave(m.templates)
	if code, _ := validation.CodeOf(err); code != validation.ErrorDuplicateKey {
		t.Errorf("code = %v, want %v", code, validation.ErrorDuplicateKey)
	}
	if got := env.deps.Templates.Load()[0].Key; got != "realestate" {
		t.Errorf("stored templates changed on failed save, first key %q", got)
	}
}

func TestTemplatesEditCancel(t *testing.T) {
	env := newTestEnv(t)
	m := NewTemplatesModel(env.deps)

	m = pressTemplates(m, keyRunes("e"))
	m.labelInput.SetValue("Changed")
	m = pressTemplates(m, key(tea.KeyEsc))

	if m.editing || m.templates[0].Label != "Real Estate" {
		t.Errorf("cancel applied changes: editing %v, label %q", m.editing, m.templates[0].Label)
	}
}

func TestTemplatesToggleDefault(t *testing.T) {
	env := newTestEnv(t)
	m := NewTemplatesModel(env.deps)

	m = pressTemplates(m, keyRunes("f"))
	if m.defaultKey != "realestate" {
		t.Errorf("defaultKey = %q, want %q", m.defaultKey, "realestate")
	}
	m = pressTemplates(m, keyRunes("f"))
	if m.defaultKey != "" {
		t.Errorf("defaultKey = %q, want cleared", m.defaultKey)
	}
}

func TestTemplatesBack(t *testing.T) {
	env := newTestEnv(t)
	m := NewTemplatesModel(env.deps)

	_, cmd := m.Update(key(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if msg, ok := cmd().(NavigateMsg); !ok || msg.Route != RouteCompose {
		t.Errorf("cmd() = %#v, want NavigateMsg{%q}", msg, RouteCompose)
	}
}
