package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/triaContacts/internal/book"
	"rhystmorgan/triaContacts/internal/models"
	"rhystmorgan/triaContacts/internal/storage"
	"rhystmorgan/triaContacts/internal/utils"
)

type ContactView int

const (
	ContactViewList ContactView = iota
	ContactViewSearch
	ContactViewCreate
	ContactViewDeleteConfirm
)

// chromeHeight is the number of lines around the contact rows.
const chromeHeight = 12

type ContactsModel struct {
	ctx    context.Context
	book   *book.Book
	themes *storage.ThemeRepository
	logger *zap.Logger

	// Derived state, rebuilt after every change.
	view   book.View
	cursor int

	currentView ContactView
	searchInput textinput.Model
	form        *ContactFormModel
	feedback    *FeedbackMessage

	theme   storage.Theme
	colours utils.ColourScheme
	now     func() time.Time

	width  int
	height int
}

func NewContactsModel(ctx context.Context, b *book.Book, themes *storage.ThemeRepository, logger *zap.Logger) *ContactsModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	theme := storage.ThemeDark
	if themes != nil {
		theme = themes.Load(ctx)
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search name, email or phone..."
	searchInput.CharLimit = 50
	searchInput.Prompt = "/ "

	m := &ContactsModel{
		ctx:         ctx,
		book:        b,
		themes:      themes,
		logger:      logger.Named("tui"),
		currentView: ContactViewList,
		searchInput: searchInput,
		now:         time.Now,
	}
	m.setTheme(theme)
	m.refresh()
	return m
}

func (m *ContactsModel) Init() tea.Cmd {
	return nil
}

func (m *ContactsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case FeedbackTimeoutMsg:
		if m.feedback != nil && m.feedback.ShowTime.Equal(msg.ShowTime) {
			m.feedback = nil
		}
		return m, nil

	case ContactSubmittedMsg:
		contact := m.book.AddContact(msg.Draft)
		m.currentView = ContactViewList
		m.form = nil
		m.refresh()
		m.moveCursorTo(contact.ID)
		return m, m.showFeedback(FeedbackSuccess, fmt.Sprintf("Added %s", contact.Name))

	case ContactFormCancelledMsg:
		m.currentView = ContactViewList
		m.form = nil
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.currentView {
		case ContactViewList:
			return m.updateListView(msg)
		case ContactViewSearch:
			return m.updateSearchView(msg)
		case ContactViewCreate:
			return m.updateCreateView(msg)
		case ContactViewDeleteConfirm:
			return m.updateDeleteConfirmView(msg)
		}
	}

	if m.currentView == ContactViewCreate && m.form != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	if m.currentView == ContactViewSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ContactsModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.currentView = ContactViewSearch
		return m, m.searchInput.Focus()

	case "esc":
		if m.searchInput.Value() != "" {
			m.setSearch("")
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.view.Contacts)-1 {
			m.cursor++
		}

	case "tab":
		m.book.CycleSort()
		m.refresh()

	case "g":
		m.book.CycleTagFilter()
		m.cursor = 0
		m.refresh()

	case " ":
		if contact, ok := m.cursorContact(); ok {
			m.book.ToggleSelection(contact.ID, !m.view.IsSelected(contact.ID))
			m.refresh()
		}

	case "a":
		count := m.book.SelectAllVisible()
		m.refresh()
		return m, m.showFeedback(FeedbackInfo, fmt.Sprintf("Selected %s", utils.FormatCount(count, "contact")))

	case "c":
		m.book.ClearSelection()
		m.refresh()

	case "d":
		if len(m.view.Selected) == 0 {
			return m, m.showFeedback(FeedbackWarning, "No contacts selected")
		}
		m.currentView = ContactViewDeleteConfirm

	case "x":
		return m, m.exportSelected()

	case "n":
		m.form = NewContactFormModel(m.colours)
		m.currentView = ContactViewCreate
		return m, m.form.Init()

	case "t":
		m.setTheme(m.theme.Toggle())
		if m.themes != nil {
			m.themes.Save(m.ctx, m.theme)
		}
		m.logger.Debug("theme toggled", zap.String("theme", string(m.theme)))
	}

	return m, nil
}

func (m *ContactsModel) updateSearchView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchInput.Blur()
		m.currentView = ContactViewList
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.view.Query.Search {
		m.book.SetSearch(m.searchInput.Value())
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m *ContactsModel) updateCreateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.currentView = ContactViewList
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *ContactsModel) updateDeleteConfirmView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		removed := m.book.DeleteSelected()
		m.currentView = ContactViewList
		m.refresh()
		return m, m.showFeedback(FeedbackSuccess, fmt.Sprintf("Deleted %s", utils.FormatCount(removed, "contact")))

	case "n", "N", "esc":
		m.currentView = ContactViewList
	}

	return m, nil
}

func (m *ContactsModel) exportSelected() tea.Cmd {
	artifact, err := m.book.ExportSelected()
	if err != nil {
		return m.showFeedback(FeedbackError, fmt.Sprintf("Export failed: %v", err))
	}
	if artifact == nil {
		return m.showFeedback(FeedbackWarning, "No contacts selected")
	}
	return m.showFeedback(FeedbackSuccess,
		fmt.Sprintf("Exported %s to %s", utils.FormatCount(artifact.Count, "contact"), artifact.Path))
}

func (m *ContactsModel) setSearch(search string) {
	m.searchInput.SetValue(search)
	m.book.SetSearch(search)
	m.cursor = 0
	m.refresh()
}

func (m *ContactsModel) setTheme(theme storage.Theme) {
	m.theme = theme
	m.colours = utils.SchemeFor(string(theme))
	m.searchInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.colours.Blue))
	m.searchInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.colours.Text))
	if m.form != nil {
		m.form.SetColours(m.colours)
	}
}

func (m *ContactsModel) refresh() {
	m.view = m.book.View()
	if m.cursor >= len(m.view.Contacts) {
		m.cursor = len(m.view.Contacts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ContactsModel) moveCursorTo(id string) {
	for i, contact := range m.view.Contacts {
		if contact.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *ContactsModel) cursorContact() (models.Contact, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Contacts) {
		return models.Contact{}, false
	}
	return m.view.Contacts[m.cursor], true
}

func (m *ContactsModel) showFeedback(feedbackType FeedbackType, message string) tea.Cmd {
	var cmd tea.Cmd
	m.feedback, cmd = newFeedback(feedbackType, message)
	return cmd
}

func (m *ContactsModel) Theme() storage.Theme {
	return m.theme
}

func (m *ContactsModel) Colours() utils.ColourScheme {
	return m.colours
}

func (m *ContactsModel) View() string {
	switch m.currentView {
	case ContactViewCreate:
		if m.form != nil {
			return m.form.View()
		}
	case ContactViewDeleteConfirm:
		return m.renderDeleteConfirmView()
	}
	return m.renderListView()
}

func (m *ContactsModel) renderListView() string {
	c := m.colours
	var content strings.Builder

	title := fmt.Sprintf("Tria Contacts (%s)", utils.FormatCount(m.view.Total, "contact"))
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Text)).
		Background(lipgloss.Color(c.Surface0)).
		Padding(0, 1)
	if m.width > 0 {
		headerStyle = headerStyle.Width(m.width)
	}

	content.WriteString(headerStyle.Render(title))
	content.WriteString("\n")
	content.WriteString(m.renderSearchBar())
	content.WriteString("\n")
	content.WriteString(m.renderTagBar())
	content.WriteString("\n\n")

	switch m.view.Empty {
	case book.EmptyNoContacts:
		content.WriteString(m.renderEmpty("No contacts yet. Press n to add your first contact."))
	case book.EmptyNoMatch:
		content.WriteString(m.renderEmpty("No contacts match your search or tag filter."))
	default:
		content.WriteString(m.renderContactList())
	}

	content.WriteString("\n\n")
	content.WriteString(m.renderFooter())

	if m.feedback != nil {
		content.WriteString("\n")
		content.WriteString(renderFeedback(m.feedback, c))
	}

	return content.String()
}

func (m *ContactsModel) renderSearchBar() string {
	c := m.colours

	borderColour := c.Surface1
	if m.currentView == ContactViewSearch {
		borderColour = c.Blue
	}
	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColour)).
		Padding(0, 1).
		Width(40)

	sortStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Overlay1)).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		searchStyle.Render(m.searchInput.View()),
		" ",
		sortStyle.Render("Sort: "+m.view.Query.Sort.Label()),
	)
}

func (m *ContactsModel) renderTagBar() string {
	c := m.colours

	if len(m.view.Tags) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Overlay1)).
			Padding(0, 1).
			Render("No tags")
	}

	tags := make([]string, 0, len(m.view.Tags)+1)
	tags = append(tags, m.renderTag("all", m.view.Query.Tag == ""))
	for _, tag := range m.view.Tags {
		tags = append(tags, m.renderTag("#"+tag, tag == m.view.Query.Tag))
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(tags, " "))
}

func (m *ContactsModel) renderTag(label string, active bool) string {
	c := m.colours
	style := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return style.
			Background(lipgloss.Color(c.Mauve)).
			Foreground(lipgloss.Color(c.Base)).
			Bold(true).
			Render(label)
	}
	return style.
		Foreground(lipgloss.Color(c.Subtext0)).
		Render(label)
}

func (m *ContactsModel) renderEmpty(message string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colours.Overlay1)).
		Padding(1, 2).
		Render(message)
}

func (m *ContactsModel) renderContactList() string {
	start, end := 0, len(m.view.Contacts)
	if m.height > 0 {
		rows := max(m.height-chromeHeight, 3)
		if m.cursor >= rows {
			start = m.cursor - rows + 1
		}
		end = min(start+rows, end)
	}

	items := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		contact := m.view.Contacts[i]
		items = append(items, m.renderContactItem(contact, i == m.cursor, m.view.IsSelected(contact.ID)))
	}

	return strings.Join(items, "\n")
}

func (m *ContactsModel) renderContactItem(contact models.Contact, isCursor, isSelected bool) string {
	c := m.colours

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Text)).
		Padding(0, 1)
	if isCursor {
		style = style.
			Background(lipgloss.Color(c.Surface1)).
			Bold(true)
	}

	cursor := "  "
	if isCursor {
		cursor = "▶ "
	}

	checkbox := "[ ] "
	if isSelected {
		checkbox = lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Green)).
			Render("[x] ")
	}

	avatarColour := c.Lavender
	if contact.Avatar != nil {
		avatarColour = c.Peach
	}
	avatar := lipgloss.NewStyle().
		Foreground(lipgloss.Color(avatarColour)).
		Bold(true).
		Width(4).
		Render(contact.Initials())

	name := lipgloss.NewStyle().
		Width(22).
		Render(utils.TruncateString(contact.Name, 20))

	email := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Blue)).
		Width(28).
		Render(utils.TruncateString(contact.Email, 26))

	phone := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtext0)).
		Width(18).
		Render(contact.Phone)

	tags := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Teal)).
		Render(utils.FormatTags(contact.Tags))

	added := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Overlay1)).
		Render(utils.FormatTimeAgo(time.UnixMilli(contact.CreatedAtMillis()), m.now()))

	return style.Render(cursor + checkbox + avatar + name + email + phone + tags + " " + added)
}

func (m *ContactsModel) renderFooter() string {
	c := m.colours

	controls := "[/]Search [Tab]Sort [G]Tag [Space]Select [A]ll visible [C]lear [D]elete [X]Export [N]ew [T]heme [Q]uit"
	controlsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Overlay1)).
		Padding(0, 1)

	stats := fmt.Sprintf("%d of %d shown | %d selected", len(m.view.Contacts), m.view.Total, len(m.view.Selected))
	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtext0)).
		Padding(0, 1)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		controlsStyle.Render(controls),
		statsStyle.Render(stats),
	)
}

func (m *ContactsModel) renderDeleteConfirmView() string {
	c := m.colours
	var content strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Red)).
		Background(lipgloss.Color(c.Surface0)).
		Padding(0, 1)

	content.WriteString(headerStyle.Render("Delete Contacts"))
	content.WriteString("\n\n")

	var lines []string
	for _, id := range m.view.Selected {
		contact, ok := m.findContact(id)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s <%s>", contact.Name, contact.Email))
	}

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Text)).
		Padding(0, 2)
	content.WriteString(warningStyle.Render(utils.FormatConfirmationText(
		fmt.Sprintf("deletion of %s", utils.FormatCount(len(m.view.Selected), "contact")), lines)))
	content.WriteString("\n\n")

	controlsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Overlay1)).
		Padding(0, 1)
	content.WriteString(controlsStyle.Render("[Y] Yes, Delete [N] Cancel [Esc] Cancel"))

	return content.String()
}

// findContact looks in the full collection since selected contacts may be
// hidden by the current filter.
func (m *ContactsModel) findContact(id string) (models.Contact, bool) {
	for _, contact := range m.book.Contacts() {
		if contact.ID == id {
			return contact, true
		}
	}
	return models.Contact{}, false
}
