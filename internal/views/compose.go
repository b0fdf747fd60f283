package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/waLink/internal/composer"
	"rhystmorgan/waLink/internal/link"
	"rhystmorgan/waLink/internal/models"
	"rhystmorgan/waLink/internal/utils"
	"rhystmorgan/waLink/internal/validation"
)

type composeFocus int

const (
	focusCountry composeFocus = iota
	focusNumber
	focusMessage
	focusName
	focusContacts
	focusHistory
	focusCount
)

const maxListRows = 8

type chatOpenedMsg struct {
	number string
	err    error
}

type copiedMsg struct {
	number string
	err    error
}

// ComposeModel is the "/" view: the number and message form, the template
// picker, and the contacts and history panes.
type ComposeModel struct {
	contacts  *models.ContactStore
	history   *models.HistoryStore
	templates *models.TemplateStore
	opener    link.Opener
	copyText  func(string) error
	now       func() time.Time
	logger    *zap.Logger

	countryInput textinput.Model
	numberInput  textinput.Model
	nameInput    textinput.Model
	editor       *MessageEditor

	templateList  []models.Template
	templateIndex int

	contactList   []models.Contact
	historyList   []models.HistoryEntry
	contactCursor int
	historyCursor int

	focus   composeFocus
	confirm ConfirmModel
	showQR  bool

	status    string
	statusErr bool

	width  int
	height int
}

func NewComposeModel(deps Dependencies) *ComposeModel {
	countryInput := newDigitsInput("Country Code", 4)
	countryInput.SetValue(deps.CountryCode)

	numberInput := newDigitsInput("Enter valid number (10 digits)", validation.LocalNumberLength)

	nameInput := textinput.New()
	nameInput.Placeholder = "Enter name to save contact"
	nameInput.CharLimit = 50
	nameInput.PromptStyle = lipgloss.NewStyle().Foreground(colourBlue)
	nameInput.TextStyle = textStyle

	m := &ComposeModel{
		contacts:      deps.Contacts,
		history:       deps.History,
		templates:     deps.Templates,
		opener:        deps.Opener,
		copyText:      deps.Clipboard,
		now:           deps.Now,
		logger:        deps.Logger,
		countryInput:  countryInput,
		numberInput:   numberInput,
		nameInput:     nameInput,
		editor:        NewMessageEditor(),
		templateIndex: -1,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}

	m.setFocus(focusNumber)
	m.Reload()
	return m
}

func newDigitsInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.PromptStyle = lipgloss.NewStyle().Foreground(colourBlue)
	input.TextStyle = textStyle
	return input
}

// Reload re-reads contacts, history and templates from storage.
func (m *ComposeModel) Reload() {
	m.contactList = m.contacts.List()
	m.historyList = m.history.List()
	m.templateList = models.OrderedForSelection(m.templates.Load(), m.templates.LoadDefaultKey())
	if m.templateIndex >= len(m.templateList) {
		m.templateIndex = -1
	}
	m.contactCursor = clamp(m.contactCursor, 0, max(len(m.contactList)-1, 0))
	m.historyCursor = clamp(m.historyCursor, 0, max(len(m.historyList)-1, 0))
}

// FullNumber is the country code followed by the local number, digits only.
func (m *ComposeModel) FullNumber() string {
	return validation.JoinFullNumber(m.countryInput.Value(), m.numberInput.Value())
}

func (m *ComposeModel) Update(msg tea.Msg) (*ComposeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case chatOpenedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("failed to open chat: %w", msg.err))
		} else {
			m.setStatus("Opened chat with " + utils.FormatPhoneNumber(msg.number))
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("failed to copy number: %w", msg.err))
		} else {
			m.setStatus("Copied " + msg.number + " to clipboard")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *ComposeModel) handleKey(msg tea.KeyMsg) (*ComposeModel, tea.Cmd) {
	if m.confirm.Active() {
		if done, status, err := m.confirm.Update(msg); done {
			if err != nil {
				m.setError(err)
			} else {
				m.setStatus(status)
			}
			m.Reload()
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "ctrl+o":
		return m, m.chat(m.FullNumber())
	case "ctrl+k":
		m.saveContact()
		return m, nil
	case "ctrl+b":
		m.editor.Wrap(composer.MarkerBold)
		return m, nil
	case "ctrl+t":
		m.editor.Wrap(composer.MarkerItalic)
		return m, nil
	case "ctrl+s":
		m.editor.Wrap(composer.MarkerStrikethrough)
		return m, nil
	case "ctrl+n":
		m.cycleTemplate(1)
		return m, nil
	case "ctrl+p":
		m.cycleTemplate(-1)
		return m, nil
	case "ctrl+r":
		m.showQR = !m.showQR
		return m, nil
	case "ctrl+g":
		return m, NavigateTo(RouteTemplates)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusCountry:
		m.countryInput, cmd = m.countryInput.Update(msg)
		keepDigits(&m.countryInput)
	case focusNumber:
		m.numberInput, cmd = m.numberInput.Update(msg)
		keepDigits(&m.numberInput)
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusMessage:
		m.editor.Update(msg)
	case focusContacts:
		cmd = m.updateContacts(msg)
	case focusHistory:
		cmd = m.updateHistory(msg)
	}
	return m, cmd
}

func (m *ComposeModel) updateContacts(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.contactCursor > 0 {
			m.contactCursor--
		}
	case "down", "j":
		if m.contactCursor < len(m.contactList)-1 {
			m.contactCursor++
		}
	case "q":
		return tea.Quit
	}

	if len(m.contactList) == 0 {
		return nil
	}
	contact := m.contactList[m.contactCursor]

	switch msg.String() {
	case "enter":
		return m.chat(contact.Number)
	case "c":
		return m.copyNumber(contact.Number)
	case "d":
		m.confirm.Ask(
			fmt.Sprintf("Are you sure that you want to delete %s?", contact.Name),
			"Contact Not deleted.",
			func() (string, error) {
				if err := m.contacts.Remove(contact.Name); err != nil {
					return "", err
				}
				return "Deleted Successfully!", nil
			},
		)
	case "D":
		m.confirm.Ask(
			"Are you sure that you want to delete all the contacts?",
			"Contacts Not deleted.",
			func() (string, error) {
				if err := m.contacts.RemoveAll(); err != nil {
					return "", err
				}
				return "Deleted all Contacts.", nil
			},
		)
	}
	return nil
}

func (m *ComposeModel) updateHistory(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
		}
	case "down", "j":
		if m.historyCursor < len(m.historyList)-1 {
			m.historyCursor++
		}
	case "q":
		return tea.Quit
	}

	if len(m.historyList) == 0 {
		return nil
	}

	switch msg.String() {
	case "enter":
		return m.chat(m.historyList[m.historyCursor].Number)
	case "d":
		if err := m.history.RemoveAt(m.historyCursor); err != nil {
			m.setError(err)
		} else {
			m.setStatus("History entry deleted")
		}
		m.Reload()
	case "D":
		m.confirm.Ask(
			"Are you sure that you want to clear the history?",
			"History Not cleared.",
			func() (string, error) {
				if err := m.history.Clear(); err != nil {
					return "", err
				}
				return "History cleared.", nil
			},
		)
	}
	return nil
}

// chat builds the link for number and the current message, records the
// activation and hands the link to the opener.
func (m *ComposeModel) chat(number string) tea.Cmd {
	message := m.fillMessage(number)

	uri, ok := link.Build(number, message)
	if !ok {
		m.setError(validation.NewValidationError("number", validation.ErrorInvalidPhone,
			fmt.Sprintf("Invalid phone number: %s", utils.FormatPhoneNumber(number))))
		return nil
	}

	if err := m.history.Record(number, models.ContactedOn(m.now())); err != nil {
		m.setError(err)
		return nil
	}
	m.Reload()
	m.logger.Debug("opening chat", zap.String("number", number), zap.Int("message_length", len(message)))

	opener := m.opener
	if opener == nil {
		opener = link.Open
	}
	return func() tea.Msg {
		return chatOpenedMsg{number: number, err: opener(uri)}
	}
}

// fillMessage substitutes contact placeholders. Unknown values are left as typed.
func (m *ComposeModel) fillMessage(number string) string {
	message := m.editor.Value()
	if len(composer.ExtractPlaceholders(message)) == 0 {
		return message
	}

	name := strings.TrimSpace(m.nameInput.Value())
	if contact := m.contacts.FindByNumber(number); contact != nil {
		name = contact.Name
	}

	filled, missing := composer.FillPlaceholders(message,
		composer.ContactPlaceholders(name, number, utils.FormatPhoneNumber(number)))
	if len(missing) > 0 {
		m.logger.Debug("placeholders left unfilled", zap.Strings("missing", missing))
	}
	return filled
}

func (m *ComposeModel) saveContact() {
	name := strings.TrimSpace(m.nameInput.Value())
	if err := m.contacts.Add(name, m.FullNumber()); err != nil {
		m.setError(err)
		return
	}
	m.nameInput.SetValue("")
	m.setStatus("Saved contact " + name)
	m.Reload()
}

func (m *ComposeModel) copyNumber(number string) tea.Cmd {
	copyText := m.copyText
	if copyText == nil {
		return nil
	}
	return func() tea.Msg {
		return copiedMsg{number: number, err: copyText(number)}
	}
}

// cycleTemplate moves through the picker and loads the chosen template.
func (m *ComposeModel) cycleTemplate(step int) {
	if len(m.templateList) == 0 {
		return
	}
	m.templateIndex = (m.templateIndex + step + len(m.templateList)) % len(m.templateList)
	m.editor.Apply(composer.ApplyTemplate(m.templateList[m.templateIndex].Text))
}

func (m *ComposeModel) setFocus(focus composeFocus) tea.Cmd {
	m.focus = focus
	m.countryInput.Blur()
	m.numberInput.Blur()
	m.nameInput.Blur()
	m.editor.Blur()

	switch focus {
	case focusCountry:
		return m.countryInput.Focus()
	case focusNumber:
		return m.numberInput.Focus()
	case focusName:
		return m.nameInput.Focus()
	case focusMessage:
		m.editor.Focus()
	}
	return nil
}

func (m *ComposeModel) setStatus(status string) {
	m.status = status
	m.statusErr = false
}

func (m *ComposeModel) setError(err error) {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		m.status = vErr.Message
	} else {
		m.status = err.Error()
	}
	m.statusErr = true
	m.logger.Warn("compose action failed", zap.Error(err))
}

func (m *ComposeModel) View() string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("WhatsApp Direct Chat"))
	content.WriteString("\n\n")

	content.WriteString(m.renderForm())
	content.WriteString("\n")

	lists := lipgloss.JoinHorizontal(lipgloss.Top, m.renderContacts(), " ", m.renderHistory())
	content.WriteString(lists)
	content.WriteString("\n")

	if m.showQR {
		content.WriteString(m.renderQR())
		content.WriteString("\n")
	}

	if m.confirm.Active() {
		content.WriteString(m.confirm.View())
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

	content.WriteString(helpStyle.Render(
		"[Tab] Next field  [Ctrl+O] Chat  [Ctrl+K] Save contact  [Ctrl+B/T/S] Bold/Italic/Strike\n" +
			"[Ctrl+N/P] Template  [Ctrl+R] QR  [Ctrl+G] Templates  [Ctrl+C] Quit"))

	return content.String()
}

func (m *ComposeModel) renderForm() string {
	var form strings.Builder

	validity := errorStyle.Render("✗")
	if validation.IsValidLocal(m.numberInput.Value()) {
		validity = successStyle.Render("✓")
	}

	form.WriteString(labelStyle.Render("Number  "))
	form.WriteString("+" + m.countryInput.View() + " " + m.numberInput.View() + " " + validity)
	if region, ok := validation.CountryRegion(m.countryInput.Value()); ok {
		form.WriteString(" " + mutedStyle.Render(region))
	}
	form.WriteString("\n\n")

	templateLabel := "none"
	if m.templateIndex >= 0 {
		templateLabel = m.templateList[m.templateIndex].Label
	}
	form.WriteString(labelStyle.Render("Template  ") + selectedStyle.Render(templateLabel))
	form.WriteString("\n")

	form.WriteString(panel(m.focus == focusMessage).Width(max(m.width-4, 40)).Render(m.editor.View()))
	form.WriteString("\n")

	form.WriteString(labelStyle.Render("Name  ") + m.nameInput.View())
	form.WriteString("\n")

	return form.String()
}

func (m *ComposeModel) renderContacts() string {
	var list strings.Builder
	list.WriteString(sectionStyle.Render(fmt.Sprintf("Contacts (%d)", len(m.contactList))))
	list.WriteString("\n")

	if len(m.contactList) == 0 {
		list.WriteString(mutedStyle.Render("No saved contacts"))
	}

	start, end := visibleRange(m.contactCursor, len(m.contactList))
	for i := start; i < end; i++ {
		contact := m.contactList[i]
		row := utils.FormatContactLabel(contact.Number, utils.TruncateString(contact.Name, 24))
		list.WriteString(renderRow(row, m.focus == focusContacts && i == m.contactCursor))
		list.WriteString("\n")
	}

	if m.focus == focusContacts {
		list.WriteString(mutedStyle.Render("[Enter] Chat [C] Copy [D] Delete [Shift+D] Delete all"))
	}

	return panel(m.focus == focusContacts).Render(list.String())
}

func (m *ComposeModel) renderHistory() string {
	var list strings.Builder
	list.WriteString(sectionStyle.Render(fmt.Sprintf("History (%d)", len(m.historyList))))
	list.WriteString("\n")

	if len(m.historyList) == 0 {
		list.WriteString(mutedStyle.Render("No chats yet"))
	}

	start, end := visibleRange(m.historyCursor, len(m.historyList))
	for i := start; i < end; i++ {
		entry := m.historyList[i]
		label := utils.FormatPhoneNumber(entry.Number)
		if contact := findContact(m.contactList, entry.Number); contact != nil {
			label = utils.FormatContactLabel(entry.Number, contact.Name)
		}
		row := label + "  " + mutedStyle.Render(entry.Timestamp)
		list.WriteString(renderRow(row, m.focus == focusHistory && i == m.historyCursor))
		list.WriteString("\n")
	}

	if m.focus == focusHistory {
		list.WriteString(mutedStyle.Render("[Enter] Chat again [D] Delete [Shift+D] Clear"))
	}

	return panel(m.focus == focusHistory).Render(list.String())
}

func (m *ComposeModel) renderQR() string {
	uri, ok := link.Build(m.FullNumber(), m.editor.Value())
	if !ok {
		return warningStyle.Render("Enter a valid number to show its QR code")
	}
	code, err := link.QRCode(uri)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	return code + "\n" + mutedStyle.Render(uri)
}

func keepDigits(input *textinput.Model) {
	if digits := validation.NormalizeDigits(input.Value()); digits != input.Value() {
		input.SetValue(digits)
	}
}

func renderRow(row string, selected bool) string {
	if selected {
		return selectedStyle.Render("▶ " + row)
	}
	return textStyle.Render("  " + row)
}

// visibleRange keeps the cursor inside a window of maxListRows rows.
func visibleRange(cursor, total int) (int, int) {
	start := 0
	if cursor >= maxListRows {
		start = cursor - maxListRows + 1
	}
	return start, min(start+maxListRows, total)
}

func findContact(contacts []models.Contact, number string) *models.Contact {
	for i := range contacts {
		if contacts[i].Number == number {
			return &contacts[i]
		}
	}
	return nil
}
