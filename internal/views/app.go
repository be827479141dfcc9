package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/triaContacts/internal/app"
)

// AppModel is the root bubbletea model.
type AppModel struct {
	width  int
	height int

	contactsView *ContactsModel
}

func NewAppModel(ctx context.Context, a *app.App) *AppModel {
	return &AppModel{
		contactsView: NewContactsModel(ctx, a.Book, a.Themes, a.Logger),
	}
}

func (m *AppModel) Init() tea.Cmd {
	return m.contactsView.Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
	}

	_, cmd := m.contactsView.Update(msg)
	return m, cmd
}

func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Foreground(lipgloss.Color(m.contactsView.Colours().Text)).
		Render(m.contactsView.View())
}
