package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/triaContacts/internal/utils"
)

const feedbackDuration = 3 * time.Second

type FeedbackMessage struct {
	Type     FeedbackType
	Message  string
	Duration time.Duration
	ShowTime time.Time
}

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

// FeedbackTimeoutMsg clears the feedback shown at ShowTime. Older timeouts
// are ignored so a new message keeps its full duration.
type FeedbackTimeoutMsg struct {
	ShowTime time.Time
}

func newFeedback(feedbackType FeedbackType, message string) (*FeedbackMessage, tea.Cmd) {
	feedback := &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: feedbackDuration,
		ShowTime: time.Now(),
	}

	shownAt := feedback.ShowTime
	return feedback, tea.Tick(feedback.Duration, func(time.Time) tea.Msg {
		return FeedbackTimeoutMsg{ShowTime: shownAt}
	})
}

func renderFeedback(feedback *FeedbackMessage, colours utils.ColourScheme) string {
	if feedback == nil {
		return ""
	}

	var color, icon string
	switch feedback.Type {
	case FeedbackSuccess:
		color, icon = colours.Green, "✓ "
	case FeedbackError:
		color, icon = colours.Red, "✗ "
	case FeedbackWarning:
		color, icon = colours.Yellow, "⚠ "
	case FeedbackInfo:
		color, icon = colours.Blue, ""
	default:
		color = colours.Text
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Background(lipgloss.Color(colours.Surface0)).
		Padding(0, 1).
		Bold(true).
		Render(icon + feedback.Message)
}
