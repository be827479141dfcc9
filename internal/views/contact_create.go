package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/triaContacts/internal/models"
	"rhystmorgan/triaContacts/internal/utils"
	"rhystmorgan/triaContacts/internal/validation"
)

type ContactFormField int

const (
	FormFieldName ContactFormField = iota
	FormFieldEmail
	FormFieldPhone
	FormFieldTags
	FormFieldAvatar
	formFieldCount
)

var formFieldKeys = [formFieldCount]string{"name", "email", "phone", "tags", "avatar"}

type ContactFormModel struct {
	inputs       [formFieldCount]textinput.Model
	currentField ContactFormField
	errors       map[string]string
	warning      string
	colours      utils.ColourScheme
}

// ContactSubmittedMsg carries a draft that passed the form's checks.
type ContactSubmittedMsg struct {
	Draft models.ContactDraft
}

type ContactFormCancelledMsg struct{}

func NewContactFormModel(colours utils.ColourScheme) *ContactFormModel {
	m := &ContactFormModel{
		errors:  make(map[string]string),
		colours: colours,
	}

	placeholders := [formFieldCount]string{
		"Full name",
		"name@example.com",
		"+91 98765 43210",
		"family, work (comma-separated)",
		"Image URL or path (optional)",
	}
	limits := [formFieldCount]int{100, 254, 32, 200, 2048}

	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = limits[i]
		m.inputs[i] = input
	}
	m.SetColours(colours)
	m.inputs[FormFieldName].Focus()

	return m
}

func (m *ContactFormModel) SetColours(colours utils.ColourScheme) {
	m.colours = colours
	for i := range m.inputs {
		m.inputs[i].PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colours.Blue))
		m.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colours.Text))
	}
}

func (m *ContactFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ContactFormModel) Update(msg tea.Msg) (*ContactFormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return ContactFormCancelledMsg{} }

		case "tab", "down":
			return m, m.focusField((m.currentField + 1) % formFieldCount)

		case "shift+tab", "up":
			return m, m.focusField((m.currentField + formFieldCount - 1) % formFieldCount)

		case "ctrl+s":
			return m.submit()

		case "enter":
			if m.currentField == formFieldCount-1 {
				return m.submit()
			}
			return m, m.focusField(m.currentField + 1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.currentField], cmd = m.inputs[m.currentField].Update(msg)

	// Clear a field's error once the user edits it.
	if _, ok := msg.(tea.KeyMsg); ok {
		delete(m.errors, formFieldKeys[m.currentField])
	}

	return m, cmd
}

func (m *ContactFormModel) Draft() models.ContactDraft {
	return models.ContactDraft{
		Name:   strings.TrimSpace(m.inputs[FormFieldName].Value()),
		Email:  strings.TrimSpace(m.inputs[FormFieldEmail].Value()),
		Phone:  strings.TrimSpace(m.inputs[FormFieldPhone].Value()),
		Tags:   models.ParseTags(m.inputs[FormFieldTags].Value()),
		Avatar: strings.TrimSpace(m.inputs[FormFieldAvatar].Value()),
	}
}

func (m *ContactFormModel) Errors() map[string]string {
	return m.errors
}

func (m *ContactFormModel) submit() (*ContactFormModel, tea.Cmd) {
	draft := m.Draft()
	result := validation.ValidateDraft(draft)

	m.errors = make(map[string]string)
	for _, err := range result.Errors {
		if _, exists := m.errors[err.Field]; !exists {
			m.errors[err.Field] = err.Message
		}
	}
	m.warning = ""
	if len(result.Warnings) > 0 {
		m.warning = result.Warnings[0].Message
	}

	if !result.IsValid {
		for field, key := range formFieldKeys {
			if _, invalid := m.errors[key]; invalid {
				return m, m.focusField(ContactFormField(field))
			}
		}
	}

	return m, func() tea.Msg { return ContactSubmittedMsg{Draft: draft} }
}

func (m *ContactFormModel) focusField(field ContactFormField) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.currentField = field
	return m.inputs[field].Focus()
}

func (m *ContactFormModel) View() string {
	c := m.colours
	var content strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Green))

	content.WriteString(headerStyle.Render("Add Contact"))
	content.WriteString("\n\n")

	fieldStyle := lipgloss.NewStyle().Padding(0, 2)
	labels := [formFieldCount]string{
		"Name: *Required",
		"Email: *Required",
		"Phone: *Required",
		"Tags:",
		"Avatar:",
	}

	for i, label := range labels {
		field := ContactFormField(i)
		if field == m.currentField {
			label = lipgloss.NewStyle().
				Foreground(lipgloss.Color(c.Blue)).
				Bold(true).
				Render("▶ " + label)
		} else {
			label = lipgloss.NewStyle().
				Foreground(lipgloss.Color(c.Text)).
				Render("  " + label)
		}

		content.WriteString(fieldStyle.Render(label))
		content.WriteString("\n")
		content.WriteString(fieldStyle.Render(m.inputs[field].View()))

		if err, exists := m.errors[formFieldKeys[field]]; exists {
			errorStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(c.Red)).
				Padding(0, 2)
			content.WriteString("\n")
			content.WriteString(errorStyle.Render("✗ " + err))
		}
		content.WriteString("\n\n")
	}

	if m.warning != "" {
		warningStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Yellow)).
			Padding(0, 2)
		content.WriteString(warningStyle.Render("⚠ " + m.warning))
		content.WriteString("\n\n")
	}

	controlsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Overlay1)).
		Padding(0, 1)
	content.WriteString(controlsStyle.Render("[Tab] Next Field [Shift+Tab] Previous [Ctrl+S] Save [Esc] Cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Green)).
		Padding(1).
		Render(content.String())
}
