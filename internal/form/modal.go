package form

import "slices"

// Modal is what the modal dialog shows. It has two states: hidden (the
// zero value) and visible with a type, a message and a type-specific
// body.
type Modal struct {
	Visible bool
	Type    ModalType
	Message string

	// Record is set for ModalSuccess: the entry just stored.
	Record *Record

	// Records is set for ModalInfo. An empty list renders MsgNoFeedbackFound
	// instead of a table.
	Records []Record
}

// ModalFromState derives the modal from s. Reduce is the only thing that
// opens or closes it.
func ModalFromState(s State) Modal {
	if !s.ShowModal {
		return Modal{}
	}

	m := Modal{Visible: true, Type: s.ModalType, Message: s.ModalMessage}

	switch s.ModalType {
	case ModalSuccess:
		rec := s.ModalData
		m.Record = &rec
	case ModalInfo:
		m.Records = slices.Clone(s.AllFeedbacks)
		if m.Records == nil {
			m.Records = []Record{}
		}
	}

	return m
}

// Empty reports whether an info modal has nothing to list.
func (m Modal) Empty() bool {
	return m.Type == ModalInfo && len(m.Records) == 0
}
