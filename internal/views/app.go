package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/waLink/internal/link"
	"rhystmorgan/waLink/internal/models"
)

const (
	RouteCompose   = "/"
	RouteTemplates = "/templates"
)

// Dependencies are the collaborators the views are built from.
type Dependencies struct {
	Contacts    *models.ContactStore
	History     *models.HistoryStore
	Templates   *models.TemplateStore
	CountryCode string
	Opener      link.Opener
	Clipboard   func(string) error
	Now         func() time.Time
	Logger      *zap.Logger
}

type AppModel struct {
	route  string
	width  int
	height int
	logger *zap.Logger

	compose   *ComposeModel
	templates *TemplatesModel

	err error
}

type NavigateMsg struct {
	Route string
}

func NewAppModel(deps Dependencies) *AppModel {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &AppModel{
		route:     RouteCompose,
		logger:    deps.Logger,
		compose:   NewComposeModel(deps),
		templates: NewTemplatesModel(deps),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.compose, _ = m.compose.Update(msg)
		m.templates, _ = m.templates.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil

	case NavigateMsg:
		return m.navigateTo(msg.Route)
	}

	switch m.route {
	case RouteCompose:
		m.compose, cmd = m.compose.Update(msg)
	case RouteTemplates:
		m.templates, cmd = m.templates.Update(msg)
	}

	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string

	switch m.route {
	case RouteCompose:
		content = m.compose.View()
	case RouteTemplates:
		content = m.templates.View()
	default:
		content = "Unknown view"
	}

	if m.err != nil {
		content += "\n" + errorStyle.Padding(1).Render(fmt.Sprintf("Error: %s", m.err.Error()))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(content)
}

// navigateTo switches route and reloads the target view from storage.
func (m AppModel) navigateTo(route string) (tea.Model, tea.Cmd) {
	switch route {
	case RouteCompose:
		m.compose.Reload()
	case RouteTemplates:
		m.templates.Reload()
	default:
		m.err = fmt.Errorf("unknown route: %s", route)
		return m, nil
	}

	m.route = route
	m.err = nil
	m.logger.Debug("navigate", zap.String("route", route))
	return m, nil
}

func (m AppModel) Route() string {
	return m.route
}

func NavigateTo(route string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: route}
	}
}
