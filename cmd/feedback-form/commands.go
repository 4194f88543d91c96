package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aanand-mishra/feedback/internal/form"
	"github.com/spf13/cobra"
)

// errFailed makes the process exit non-zero after the outcome has already
// been printed.
var errFailed = errors.New("request failed")

func newSubmitCmd(opts *options) *cobra.Command {
	var data form.FormData

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one feedback entry without the interactive form",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			store := form.NewStore(e.log)
			ctrl := form.NewController(e.api, store, form.WithLogger(e.log))
			ctrl.Submit(cmd.Context(), data)

			return printOutcome(cmd.OutOrStdout(), store.State())
		},
	}

	cmd.Flags().StringVar(&data.Name, "name", "", "your name")
	cmd.Flags().StringVar(&data.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&data.Message, "message", "", "the feedback text")

	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored feedback entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			store := form.NewStore(e.log)
			ctrl := form.NewController(e.api, store, form.WithLogger(e.log))
			ctrl.FetchAll(cmd.Context())

			return printOutcome(cmd.OutOrStdout(), store.State())
		},
	}
}

// printOutcome writes the modal for st as plain text.
func printOutcome(w io.Writer, st form.State) error {
	m := form.ModalFromState(st)
	fmt.Fprintln(w, m.Message)

	switch m.Type {
	case form.ModalError:
		for _, f := range form.Fields {
			if msg, ok := st.Errors[f]; ok {
				fmt.Fprintf(w, "  %s: %s\n", f, msg)
			}
		}
		return errFailed

	case form.ModalSuccess:
		if r := m.Record; r != nil {
			fmt.Fprintf(w, "Id: %d\nName: %s\nMessage: %s\nCreated At: %s\n", r.ID, r.Name, r.Message, r.CreatedAt)
		}

	case form.ModalInfo:
		if m.Empty() {
			fmt.Fprintln(w, form.MsgNoFeedbackFound)
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tMESSAGE\tCREATED AT")
		for _, r := range m.Records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Message, r.CreatedAt)
		}
		return tw.Flush()
	}

	return nil
}
