// Package tui renders the feedback form and its modal in the terminal
// with bubbletea. All state lives in a form.Store; this package only
// draws it and turns key presses and clicks into actions.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorPrimary = lipgloss.Color("#2196F3")
	colorSuccess = lipgloss.Color("#8BC34A")
	colorError   = lipgloss.Color("#E53935")
	colorMuted   = lipgloss.Color("#8A8F98")
	colorOverlay = lipgloss.Color("#3A3F47")
)

// Styles holds every style the form and modal use.
type Styles struct {
	Title        lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	FieldError   lipgloss.Style
	Button       lipgloss.Style
	ActiveButton lipgloss.Style
	Help         lipgloss.Style
	Panel        lipgloss.Style

	ModalBox     lipgloss.Style
	ModalSuccess lipgloss.Style
	ModalError   lipgloss.Style
	ModalInfo    lipgloss.Style
	ModalKey     lipgloss.Style
}

// DefaultStyles returns the styles used by NewModel.
func DefaultStyles() Styles {
	button := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder()).BorderForeground(colorMuted)

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Label:        lipgloss.NewStyle().Foreground(colorMuted),
		FocusedLabel: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		FieldError:   lipgloss.NewStyle().Foreground(colorError),
		Button:       button,
		ActiveButton: button.BorderForeground(colorPrimary).Bold(true),
		Help:         lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Panel:        lipgloss.NewStyle().Padding(1, 2),

		ModalBox:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		ModalSuccess: lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		ModalError:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
		ModalInfo:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		ModalKey:     lipgloss.NewStyle().Bold(true),
	}
}
