package tui

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/aanand-mishra/feedback/internal/form"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Focus order: the three fields, then the two buttons.
const (
	focusName = iota
	focusEmail
	focusMessage
	focusSubmit
	focusShowAll
	focusCount
)

// actionDoneMsg reports that a controller call has dispatched its outcome.
type actionDoneMsg struct {
	action form.Action
}

// focusRequest is the form.Focuser handed to the controller. The
// controller runs on a command goroutine, so it only raises a flag; the
// next Update on the UI goroutine moves the focus.
type focusRequest struct {
	pending atomic.Bool
}

func (f *focusRequest) FocusFirstField() { f.pending.Store(true) }

func (f *focusRequest) take() bool { return f.pending.Swap(false) }

// Model is the bubbletea model of the feedback form.
type Model struct {
	store  *form.Store
	ctrl   *form.Controller
	focusR *focusRequest

	ctx    context.Context
	cancel context.CancelFunc

	name    textinput.Model
	email   textinput.Model
	message textarea.Model

	focus int
	modal ModalModel

	width, height int
	styles        Styles
}

// NewModel builds the form around store. api is what the controller
// calls; the controller itself is built here so its Focuser is this UI.
func NewModel(ctx context.Context, store *form.Store, api form.API, opts ...form.ControllerOption) Model {
	ctx, cancel := context.WithCancel(ctx)
	focusR := &focusRequest{}
	opts = append(opts, form.WithFocuser(focusR))

	styles := DefaultStyles()

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 100
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 255
	email.Width = 40

	message := textarea.New()
	message.Placeholder = "Tell us what you think..."
	message.ShowLineNumbers = false
	message.SetWidth(50)
	message.SetHeight(5)

	m := Model{
		store:   store,
		ctrl:    form.NewController(api, store, opts...),
		focusR:  focusR,
		ctx:     ctx,
		cancel:  cancel,
		name:    name,
		email:   email,
		message: message,
		modal:   NewModalModel(styles),
		width:   80,
		height:  24,
		styles:  styles,
	}
	m.setFocus(focusName)

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, textarea.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case actionDoneMsg:
		m.sync()
		return m, nil

	case closeModalMsg:
		m.store.Dispatch(form.CloseModal{})
		m.sync()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
	}

	if m.modal.Visible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg, m.width, m.height)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+q":
			return m, m.quit()
		case "tab", "down":
			if key.String() == "tab" || m.focus != focusMessage {
				m.setFocus((m.focus + 1) % focusCount)
				return m, nil
			}
		case "shift+tab", "up":
			if key.String() == "shift+tab" || m.focus != focusMessage {
				m.setFocus((m.focus + focusCount - 1) % focusCount)
				return m, nil
			}
		case "ctrl+s":
			return m, m.submit()
		case "ctrl+l":
			return m, m.fetchAll()
		case "enter":
			switch m.focus {
			case focusName, focusEmail:
				m.setFocus(m.focus + 1)
				return m, nil
			case focusSubmit:
				return m, m.submit()
			case focusShowAll:
				return m, m.fetchAll()
			}
		}
	}

	return m.updateField(msg)
}

// updateField forwards msg to the focused input and dispatches
// UpdateField if its value changed.
func (m Model) updateField(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var field form.Field
	var value string

	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
		field, value = form.FieldName, m.name.Value()
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
		field, value = form.FieldEmail, m.email.Value()
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
		field, value = form.FieldMessage, m.message.Value()
	default:
		return m, nil
	}

	if m.store.State().FormData.Get(field) != value {
		m.store.Dispatch(form.UpdateField{Field: field, Value: value})
	}

	return m, cmd
}

// submit runs the controller off the UI goroutine with a snapshot of the
// form. A second submit while one is in flight is not blocked.
func (m Model) submit() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	data := m.store.State().FormData
	return func() tea.Msg {
		return actionDoneMsg{action: ctrl.Submit(ctx, data)}
	}
}

func (m Model) fetchAll() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: ctrl.FetchAll(ctx)}
	}
}

// quit detaches the store and cancels in-flight requests, so nothing that
// completes afterwards touches state.
func (m Model) quit() tea.Cmd {
	m.store.Close()
	m.cancel()
	return tea.Quit
}

// sync pulls inputs and modal back in line with the store after a
// dispatch from outside the key path.
func (m *Model) sync() {
	st := m.store.State()

	if m.name.Value() != st.FormData.Name {
		m.name.SetValue(st.FormData.Name)
	}
	if m.email.Value() != st.FormData.Email {
		m.email.SetValue(st.FormData.Email)
	}
	if m.message.Value() != st.FormData.Message {
		m.message.SetValue(st.FormData.Message)
	}

	if m.focusR.take() {
		m.setFocus(focusName)
	}

	m.modal.Set(form.ModalFromState(st))
}

func (m *Model) setFocus(i int) {
	m.focus = i

	m.name.Blur()
	m.email.Blur()
	m.message.Blur()

	switch i {
	case focusName:
		m.name.Focus()
	case focusEmail:
		m.email.Focus()
	case focusMessage:
		m.message.Focus()
	}
}

// Focus returns the index of the focused control (tests).
func (m Model) Focus() int { return m.focus }

// View implements tea.Model.
func (m Model) View() string {
	if m.modal.Visible() {
		return m.modal.View(m.width, m.height)
	}

	st := m.store.State()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Feedback Form"))
	b.WriteString("\n")

	m.writeField(&b, "Name", form.FieldName, focusName, m.name.View(), st.Errors)
	m.writeField(&b, "Email", form.FieldEmail, focusEmail, m.email.View(), st.Errors)
	m.writeField(&b, "Message", form.FieldMessage, focusMessage, m.message.View(), st.Errors)

	submit := m.styles.Button.Render("Submit")
	if m.focus == focusSubmit {
		submit = m.styles.ActiveButton.Render("Submit")
	}
	showAll := m.styles.Button.Render("Show all")
	if m.focus == focusShowAll {
		showAll = m.styles.ActiveButton.Render("Show all")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, submit, " ", showAll))

	b.WriteString(m.styles.Help.Render("tab: next • ctrl+s: submit • ctrl+l: show all • ctrl+c: quit"))

	return m.styles.Panel.Render(b.String())
}

// writeField renders a label, the input, and the field's error right
// under it. The error line repeats the label so it reads as belonging to
// that input on its own.
func (m Model) writeField(b *strings.Builder, label string, field form.Field, idx int, input string, errs form.Errors) {
	ls := m.styles.Label
	if m.focus == idx {
		ls = m.styles.FocusedLabel
	}

	b.WriteString(ls.Render(label))
	b.WriteString("\n")
	b.WriteString(input)
	b.WriteString("\n")

	if msg, ok := errs[field]; ok {
		b.WriteString(m.styles.FieldError.Render("✖ " + label + ": " + msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
}
