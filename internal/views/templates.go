package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/waLink/internal/models"
	"rhystmorgan/waLink/internal/utils"
	"rhystmorgan/waLink/internal/validation"
)

type templateField int

const (
	fieldKey templateField = iota
	fieldLabel
	fieldText
	fieldCount
)

// TemplatesModel is the "/templates" view. Changes are made to a working copy
// and only reach storage on save.
type TemplatesModel struct {
	store  *models.TemplateStore
	logger *zap.Logger

	templates  []models.Template
	defaultKey string
	cursor     int

	editing    bool
	field      templateField
	keyInput   textinput.Model
	labelInput textinput.Model
	textArea   textarea.Model

	status    string
	statusErr bool
	width     int
}

func NewTemplatesModel(deps Dependencies) *TemplatesModel {
	keyInput := textinput.New()
	keyInput.Placeholder = "key"
	keyInput.CharLimit = 32
	keyInput.PromptStyle = lipgloss.NewStyle().Foreground(colourBlue)

	labelInput := textinput.New()
	labelInput.Placeholder = "Label"
	labelInput.CharLimit = 40
	labelInput.PromptStyle = lipgloss.NewStyle().Foreground(colourBlue)

	textArea := textarea.New()
	textArea.Placeholder = "Template text"
	textArea.SetHeight(4)
	textArea.ShowLineNumbers = false

	m := &TemplatesModel{
		store:      deps.Templates,
		logger:     deps.Logger,
		keyInput:   keyInput,
		labelInput: labelInput,
		textArea:   textArea,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}

	m.Reload()
	return m
}

// Reload discards the working copy and reads the saved templates.
func (m *TemplatesModel) Reload() {
	m.templates = m.store.Load()
	m.defaultKey = m.store.LoadDefaultKey()
	m.cursor = clamp(m.cursor, 0, max(len(m.templates)-1, 0))
	m.editing = false
}

func (m *TemplatesModel) Update(msg tea.Msg) (*TemplatesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textArea.SetWidth(max(msg.Width-8, 20))
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *TemplatesModel) updateList(msg tea.KeyMsg) (*TemplatesModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.templates)-1 {
			m.cursor++
		}
	case "a":
		if len(m.templates) >= models.MaxTemplates {
			m.setError(fmt.Errorf("you can have at most %d templates", models.MaxTemplates))
			break
		}
		m.templates = models.AddTemplate(m.templates)
		m.cursor = len(m.templates) - 1
		m.setStatus("Added template")
	case "d":
		if len(m.templates) <= models.MinTemplates {
			m.setError(fmt.Errorf("you must keep at least %d templates", models.MinTemplates))
			break
		}
		m.templates, m.defaultKey = models.RemoveTemplate(m.templates, m.cursor, m.defaultKey)
		m.cursor = clamp(m.cursor, 0, len(m.templates)-1)
		m.setStatus("Removed template")
	case "f", " ":
		key := m.templates[m.cursor].Key
		if m.defaultKey == key {
			m.defaultKey = ""
		} else {
			m.defaultKey = key
		}
	case "e", "enter":
		return m, m.startEditing()
	case "ctrl+s":
		m.save()
	case "esc", "b":
		return m, NavigateTo(RouteCompose)
	}
	return m, nil
}

func (m *TemplatesModel) updateEditor(msg tea.KeyMsg) (*TemplatesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "ctrl+s":
		m.applyEdit()
		return m, nil
	case "tab":
		return m, m.focusField((m.field + 1) % fieldCount)
	case "shift+tab":
		return m, m.focusField((m.field + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldKey:
		m.keyInput, cmd = m.keyInput.Update(msg)
	case fieldLabel:
		m.labelInput, cmd = m.labelInput.Update(msg)
	case fieldText:
		m.textArea, cmd = m.textArea.Update(msg)
	}
	return m, cmd
}

func (m *TemplatesModel) startEditing() tea.Cmd {
	template := m.templates[m.cursor]
	m.keyInput.SetValue(template.Key)
	m.labelInput.SetValue(template.Label)
	m.textArea.SetValue(template.Text)
	m.editing = true
	return m.focusField(fieldLabel)
}

func (m *TemplatesModel) applyEdit() {
	oldKey := m.templates[m.cursor].Key
	newKey := strings.TrimSpace(m.keyInput.Value())

	m.templates = models.RekeyTemplate(m.templates, m.cursor, newKey)
	m.templates = models.EditTemplate(m.templates, m.cursor, strings.TrimSpace(m.labelInput.Value()), m.textArea.Value())
	if oldKey == m.defaultKey && oldKey != newKey {
		m.defaultKey = newKey
	}

	m.editing = false
	m.setStatus("Template updated. Press Ctrl+S to save.")
}

func (m *TemplatesModel) save() {
	if err := m.store.Save(m.templates, m.defaultKey); err != nil {
		m.setError(err)
		return
	}
	m.Reload()
	m.setStatus("Templates saved")
}

func (m *TemplatesModel) focusField(field templateField) tea.Cmd {
	m.field = field
	m.keyInput.Blur()
	m.labelInput.Blur()
	m.textArea.Blur()

	switch field {
	case fieldKey:
		return m.keyInput.Focus()
	case fieldLabel:
		return m.labelInput.Focus()
	default:
		return m.textArea.Focus()
	}
}

func (m *TemplatesModel) setStatus(status string) {
	m.status = status
	m.statusErr = false
}

func (m *TemplatesModel) setError(err error) {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		m.status = vErr.Message
	} else {
		m.status = err.Error()
	}
	m.statusErr = true
	m.logger.Warn("template action failed", zap.Error(err))
}

func (m *TemplatesModel) View() string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Quick Templates"))
	content.WriteString(" ")
	content.WriteString(mutedStyle.Render(utils.FormatCount(len(m.templates), models.MaxTemplates)))
	content.WriteString("\n\n")

	for i, template := range m.templates {
		row := fmt.Sprintf("%-16s %s", utils.TruncateString(template.Label, 16),
			mutedStyle.Render(utils.TruncateString(utils.SingleLine(template.Text), 48)))
		if template.Key == m.defaultKey {
			row += " " + defaultBadgeStyle.Render("(default)")
		}
		content.WriteString(renderRow(row, i == m.cursor))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	if m.editing {
		content.WriteString(m.renderEditor())
		content.WriteString("\n")
	}

	if m.status != "" {
		if m.statusErr {
			content.WriteString(errorStyle.Render(m.status))
		} else {
			content.WriteString(successStyle.Render(m.status))
		}
		content.WriteString("\n")
	}

	if m.editing {
		content.WriteString(helpStyle.Render("[Tab] Next field  [Ctrl+S] Apply  [Esc] Cancel"))
	} else {
		content.WriteString(helpStyle.Render(
			"[A] Add  [D] Remove  [E] Edit  [F] Toggle default  [Ctrl+S] Save  [Esc] Back"))
	}

	return content.String()
}

func (m *TemplatesModel) renderEditor() string {
	var form strings.Builder
	form.WriteString(sectionStyle.Render("Edit template"))
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("Key    ") + m.keyInput.View())
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("Label  ") + m.labelInput.View())
	form.WriteString("\n")
	form.WriteString(m.textArea.View())
	return panel(true).Render(form.String())
}
