package main

import (
	"bytes"
	"testing"

	"github.com/aanand-mishra/feedback/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintOutcome(t *testing.T) {
	rec := form.Record{ID: 3, Name: "Ann", Message: "Nice", CreatedAt: "2025-01-01T00:00:00.000Z"}

	tests := []struct {
		name    string
		action  form.Action
		wantErr bool
		want    []string
	}{
		{
			name:    "validation",
			action:  form.ValidationError{Message: form.MsgFixErrors, Errors: form.Errors{form.FieldEmail: "Email is invalid."}},
			wantErr: true,
			want:    []string{form.MsgFixErrors, "email: Email is invalid."},
		},
		{
			name:   "submitted",
			action: form.SubmitSuccess{Payload: rec},
			want:   []string{form.MsgSubmitted, "Id: 3", "Created At: 2025-01-01T00:00:00.000Z"},
		},
		{
			name:   "empty list",
			action: form.FetchAllSuccess{},
			want:   []string{form.MsgAllFeedbacks, form.MsgNoFeedbackFound},
		},
		{
			name:   "list",
			action: form.FetchAllSuccess{Payload: []form.Record{rec}},
			want:   []string{"CREATED AT", "Ann"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := printOutcome(&buf, form.Reduce(form.InitialState(), tt.action))

			if tt.wantErr {
				require.ErrorIs(t, err, errFailed)
			} else {
				require.NoError(t, err)
			}
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRootCmd_LeavesErrorReportingToMain(t *testing.T) {
	root := newRootCmd()

	assert.True(t, root.SilenceErrors)
	assert.True(t, root.SilenceUsage)
}
