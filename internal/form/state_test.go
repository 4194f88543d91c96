package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var sampleRecord = Record{ID: 1, Name: "Ann", Message: "Nice", CreatedAt: "2025-03-14T09:26:53.589Z"}

func filledState() State {
	s := InitialState()
	s = Reduce(s, UpdateField{Field: FieldName, Value: "Ann"})
	s = Reduce(s, UpdateField{Field: FieldEmail, Value: "ann@example.com"})
	s = Reduce(s, UpdateField{Field: FieldMessage, Value: "Nice"})
	return s
}

func TestInitialState(t *testing.T) {
	want := State{
		Errors:       Errors{},
		ModalType:    ModalSuccess,
		AllFeedbacks: []Record{},
	}
	if diff := cmp.Diff(want, InitialState()); diff != "" {
		t.Errorf("InitialState() mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name   string
		start  State
		action Action
		want   func(State) State
	}{
		{
			name:   "update field",
			start:  InitialState(),
			action: UpdateField{Field: FieldEmail, Value: "a@b.co"},
			want: func(s State) State {
				s.FormData.Email = "a@b.co"
				return s
			},
		},
		{
			name:   "set errors leaves modal alone",
			start:  InitialState(),
			action: SetErrors{Errors: Errors{FieldName: "Name is required."}},
			want: func(s State) State {
				s.Errors = Errors{FieldName: "Name is required."}
				return s
			},
		},
		{
			name:   "validation error",
			start:  filledState(),
			action: ValidationError{Message: MsgFixErrors, Errors: Errors{FieldEmail: "Email is invalid."}},
			want: func(s State) State {
				s.Errors = Errors{FieldEmail: "Email is invalid."}
				s.ShowModal = true
				s.ModalType = ModalError
				s.ModalMessage = MsgFixErrors
				return s
			},
		},
		{
			name:   "submit success clears form and errors",
			start:  Reduce(filledState(), SetErrors{Errors: Errors{FieldName: "old"}}),
			action: SubmitSuccess{Payload: sampleRecord},
			want: func(s State) State {
				s.FormData = FormData{}
				s.Errors = Errors{}
				s.ModalData = sampleRecord
				s.ShowModal = true
				s.ModalType = ModalSuccess
				s.ModalMessage = MsgSubmitted
				return s
			},
		},
		{
			name:   "submit error keeps form and errors",
			start:  Reduce(filledState(), SetErrors{Errors: Errors{FieldName: "old"}}),
			action: SubmitError{Message: MsgSubmitFailed},
			want: func(s State) State {
				s.ShowModal = true
				s.ModalType = ModalError
				s.ModalMessage = MsgSubmitFailed
				return s
			},
		},
		{
			name:   "fetch all success",
			start:  filledState(),
			action: FetchAllSuccess{Payload: []Record{sampleRecord}},
			want: func(s State) State {
				s.AllFeedbacks = []Record{sampleRecord}
				s.ShowModal = true
				s.ModalType = ModalInfo
				s.ModalMessage = MsgAllFeedbacks
				return s
			},
		},
		{
			name:   "fetch all nil payload becomes empty list",
			start:  InitialState(),
			action: FetchAllSuccess{},
			want: func(s State) State {
				s.ShowModal = true
				s.ModalType = ModalInfo
				s.ModalMessage = MsgAllFeedbacks
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want(tt.start.clone())
			got := Reduce(tt.start, tt.action)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_CloseModalAfterEveryTrigger(t *testing.T) {
	triggers := []Action{
		ValidationError{Message: MsgFixErrors, Errors: Errors{FieldName: "Name is required."}},
		SubmitSuccess{Payload: sampleRecord},
		SubmitError{Message: MsgSubmitFailed},
		FetchAllSuccess{Payload: []Record{sampleRecord}},
	}

	for _, trigger := range triggers {
		t.Run(actionName(trigger), func(t *testing.T) {
			open := Reduce(filledState(), trigger)
			if !open.ShowModal || open.ModalMessage == "" || open.ModalType == "" {
				t.Fatalf("modal not fully opened: %+v", open)
			}

			closed := Reduce(open, CloseModal{})

			want := open.clone()
			want.ShowModal = false
			if diff := cmp.Diff(want, closed); diff != "" {
				t.Errorf("CloseModal changed more than visibility (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_DoesNotAlias(t *testing.T) {
	errs := Errors{FieldName: "Name is required."}
	s := Reduce(InitialState(), ValidationError{Message: MsgFixErrors, Errors: errs})

	errs[FieldName] = "changed"
	if s.Errors[FieldName] != "Name is required." {
		t.Errorf("state shares the action's map")
	}

	records := []Record{sampleRecord}
	s = Reduce(s, FetchAllSuccess{Payload: records})
	next := Reduce(s, CloseModal{})

	records[0].Name = "changed"
	next.AllFeedbacks[0].Message = "changed"
	if s.AllFeedbacks[0].Name != "Ann" || s.AllFeedbacks[0].Message != "Nice" {
		t.Errorf("state shares a slice: %+v", s.AllFeedbacks[0])
	}
}
