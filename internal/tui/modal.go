package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aanand-mishra/feedback/internal/form"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// closeModalMsg asks the parent to dispatch form.CloseModal.
type closeModalMsg struct{}

func closeModal() tea.Msg { return closeModalMsg{} }

// ModalModel draws a form.Modal and handles its dismissal. It never closes
// itself: esc, the OK button and a click on the overlay all emit
// closeModalMsg, and the parent reflects the new store state back via Set.
type ModalModel struct {
	modal     form.Modal
	okFocused bool
	table     table.Model
	styles    Styles
}

// NewModalModel returns a hidden modal.
func NewModalModel(styles Styles) ModalModel {
	return ModalModel{
		table: table.New(
			table.WithColumns([]table.Column{
				{Title: "ID", Width: 4},
				{Title: "Name", Width: 16},
				{Title: "Message", Width: 32},
				{Title: "Created At", Width: 24},
			}),
			table.WithHeight(8),
		),
		styles: styles,
	}
}

// Set replaces what the modal shows. Going from hidden to visible moves
// focus to the OK button.
func (m *ModalModel) Set(modal form.Modal) {
	opening := modal.Visible && !m.modal.Visible
	m.modal = modal

	if !modal.Visible {
		m.okFocused = false
		m.table.Blur()
		return
	}

	if opening {
		m.okFocused = true
	}

	if modal.Type == form.ModalInfo {
		rows := make([]table.Row, 0, len(modal.Records))
		for _, r := range modal.Records {
			rows = append(rows, table.Row{strconv.FormatInt(r.ID, 10), r.Name, r.Message, r.CreatedAt})
		}
		m.table.SetRows(rows)
		m.table.SetCursor(0)
		m.table.Focus()
	}
}

// Visible reports whether the modal is open.
func (m ModalModel) Visible() bool { return m.modal.Visible }

// OKFocused reports whether the dismiss control has input focus.
func (m ModalModel) OKFocused() bool { return m.okFocused }

// Update handles input while the modal is open. The modal is blocking:
// every key is consumed here.
func (m ModalModel) Update(msg tea.Msg, width, height int) (ModalModel, tea.Cmd) {
	if !m.modal.Visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, closeModal
		case "enter", " ":
			if m.okFocused {
				return m, closeModal
			}
		case "tab", "shift+tab":
			// OK is the only focusable control.
			m.okFocused = true
			return m, nil
		case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
			if m.modal.Type == form.ModalInfo && !m.modal.Empty() {
				var cmd tea.Cmd
				m.table, cmd = m.table.Update(msg)
				return m, cmd
			}
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if !m.contains(msg.X, msg.Y, width, height) {
				return m, closeModal
			}
		}
	}

	return m, nil
}

// contains reports whether screen cell (x, y) falls inside the dialog box
// when it is centred on a width x height screen.
func (m ModalModel) contains(x, y, width, height int) bool {
	box := m.box()
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)

	// lipgloss.Place centres by rounding half the gap.
	left := int(math.Round(float64(max(width-bw, 0)) * 0.5))
	top := int(math.Round(float64(max(height-bh, 0)) * 0.5))

	return x >= left && x < left+bw && y >= top && y < top+bh
}

// View renders the dialog centred on a width x height overlay.
func (m ModalModel) View(width, height int) string {
	if !m.modal.Visible {
		return ""
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.box(),
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(colorOverlay),
	)
}

func (m ModalModel) box() string {
	var b strings.Builder

	title := m.styles.ModalSuccess
	border := colorSuccess
	switch m.modal.Type {
	case form.ModalError:
		title, border = m.styles.ModalError, colorError
	case form.ModalInfo:
		title, border = m.styles.ModalInfo, colorPrimary
	}

	b.WriteString(title.Render(m.modal.Message))
	b.WriteString("\n\n")

	switch m.modal.Type {
	case form.ModalSuccess:
		if r := m.modal.Record; r != nil {
			fmt.Fprintf(&b, "%s %d\n", m.styles.ModalKey.Render("Id:"), r.ID)
			fmt.Fprintf(&b, "%s %s\n", m.styles.ModalKey.Render("Name:"), r.Name)
			fmt.Fprintf(&b, "%s %s\n\n", m.styles.ModalKey.Render("Message:"), r.Message)
		}
	case form.ModalInfo:
		if m.modal.Empty() {
			b.WriteString(form.MsgNoFeedbackFound)
			b.WriteString("\n\n")
		} else {
			b.WriteString(m.table.View())
			b.WriteString("\n\n")
		}
	}

	ok := m.styles.Button.Render("OK")
	if m.okFocused {
		ok = m.styles.ActiveButton.Render("OK")
	}
	b.WriteString(ok)

	return m.styles.ModalBox.BorderForeground(border).Render(b.String())
}
