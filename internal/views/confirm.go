package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel holds one destructive action until the user answers it.
// Declining discards the action without running it.
type ConfirmModel struct {
	prompt   string
	declined string
	action   func() (string, error)
}

// Ask holds action until answered. declined is the status shown on a no.
func (c *ConfirmModel) Ask(prompt, declined string, action func() (string, error)) {
	c.prompt = prompt
	c.declined = declined
	c.action = action
}

func (c *ConfirmModel) Active() bool {
	return c.action != nil
}

// Update answers the pending question. done reports whether the question was
// answered; when the action ran, status and err carry its outcome.
func (c *ConfirmModel) Update(msg tea.KeyMsg) (done bool, status string, err error) {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		action := c.action
		c.reset()
		status, err = action()
		return true, status, err
	case "n", "esc":
		declined := c.declined
		c.reset()
		return true, declined, nil
	}
	return false, "", nil
}

func (c *ConfirmModel) View() string {
	if !c.Active() {
		return ""
	}
	return warningStyle.Render(c.prompt) + "\n" +
		textStyle.Render("This action cannot be undone.") + "\n" +
		helpStyle.Render("[Y] Yes  [N] Cancel  [Esc] Cancel")
}

func (c *ConfirmModel) reset() {
	c.prompt = ""
	c.declined = ""
	c.action = nil
}
