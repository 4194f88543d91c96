package form

import (
	"maps"
	"slices"
)

// ModalType selects which variant of the modal renders.
type ModalType string

const (
	ModalSuccess ModalType = "success"
	ModalError   ModalType = "error"
	ModalInfo    ModalType = "info"
)

// Fixed user-facing messages.
const (
	MsgSubmitted       = "Feedback submitted successfully!"
	MsgAllFeedbacks    = "All Feedbacks"
	MsgFixErrors       = "Please fix the highlighted errors and try again."
	MsgSubmitFailed    = "Something went wrong. Please try again later."
	MsgFetchFailed     = "Failed to fetch feedbacks. Please try again later."
	MsgNoFeedbackFound = "No feedback found."
)

// Record is one stored feedback entry as the form shows it. CreatedAt is
// already normalized (see NormalizeTimestamp).
type Record struct {
	ID        int64
	Name      string
	Message   string
	CreatedAt string
}

// State is everything the form renders.
//
// ShowModal, ModalType and ModalMessage only ever change together, so a
// visible modal always has a type and a message.
type State struct {
	FormData     FormData
	ModalData    Record
	Errors       Errors
	ShowModal    bool
	ModalType    ModalType
	ModalMessage string
	AllFeedbacks []Record
}

// InitialState is an empty form with the modal hidden.
func InitialState() State {
	return State{
		Errors:       Errors{},
		ModalType:    ModalSuccess,
		AllFeedbacks: []Record{},
	}
}

// clone returns a State that shares no maps or slices with s.
func (s State) clone() State {
	s.Errors = maps.Clone(s.Errors)
	s.AllFeedbacks = slices.Clone(s.AllFeedbacks)
	return s
}

// Action is one of the types below. The set is closed.
type Action interface {
	action()
}

// UpdateField sets one form field.
type UpdateField struct {
	Field Field
	Value string
}

// SetErrors replaces the field errors without touching the modal.
type SetErrors struct {
	Errors Errors
}

// ValidationError records field errors and opens an error modal.
type ValidationError struct {
	Message string
	Errors  Errors
}

// SubmitSuccess clears the form and shows the stored record.
type SubmitSuccess struct {
	Payload Record
}

// SubmitError opens an error modal; form and errors are kept.
type SubmitError struct {
	Message string
}

// FetchAllSuccess replaces the record list and opens the info modal.
type FetchAllSuccess struct {
	Payload []Record
}

// CloseModal hides the modal and changes nothing else.
type CloseModal struct{}

func (UpdateField) action()     {}
func (SetErrors) action()       {}
func (ValidationError) action() {}
func (SubmitSuccess) action()   {}
func (SubmitError) action()     {}
func (FetchAllSuccess) action() {}
func (CloseModal) action()      {}

// Reduce returns the state that follows s after a. It never mutates s, and
// the result shares no maps or slices with s or a.
func Reduce(s State, a Action) State {
	next := s.clone()

	switch a := a.(type) {
	case UpdateField:
		next.FormData = next.FormData.With(a.Field, a.Value)

	case SetErrors:
		next.Errors = cloneErrors(a.Errors)

	case ValidationError:
		next.Errors = cloneErrors(a.Errors)
		next.ShowModal = true
		next.ModalType = ModalError
		next.ModalMessage = a.Message

	case SubmitSuccess:
		next.FormData = FormData{}
		next.ModalData = a.Payload
		next.Errors = Errors{}
		next.ShowModal = true
		next.ModalType = ModalSuccess
		next.ModalMessage = MsgSubmitted

	case SubmitError:
		next.ShowModal = true
		next.ModalType = ModalError
		next.ModalMessage = a.Message

	case FetchAllSuccess:
		next.AllFeedbacks = slices.Clone(a.Payload)
		if next.AllFeedbacks == nil {
			next.AllFeedbacks = []Record{}
		}
		next.ShowModal = true
		next.ModalType = ModalInfo
		next.ModalMessage = MsgAllFeedbacks

	case CloseModal:
		next.ShowModal = false
	}

	return next
}

func cloneErrors(e Errors) Errors {
	if e == nil {
		return Errors{}
	}
	return maps.Clone(e)
}
