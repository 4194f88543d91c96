package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aanand-mishra/feedback/internal/client"
	"github.com/aanand-mishra/feedback/internal/config"
	"github.com/aanand-mishra/feedback/internal/form"
	"github.com/aanand-mishra/feedback/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	apiURL     string
	logFile    string
}

// env is what every command needs once flags are parsed.
type env struct {
	api     *client.Client
	log     *slog.Logger
	closeFn func() error
}

func (e *env) close() {
	if e.closeFn != nil {
		e.closeFn()
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "feedback-form",
		Short:         "Send feedback from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			return runForm(cmd.Context(), e)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a form config YAML file")
	pf.StringVar(&opts.apiURL, "api-url", "", "feedback API base URL (overrides config)")
	pf.StringVar(&opts.logFile, "log-file", "", "append logs to this file (default: discard)")

	root.AddCommand(newSubmitCmd(opts), newListCmd(opts))

	return root
}

// setup loads config and builds the API client and logger.
func setup(opts *options) (*env, error) {
	cfg, err := config.LoadForm(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.apiURL != "" {
		cfg.APIBaseURL = opts.apiURL
	}

	e := &env{api: client.New(cfg.APIBaseURL, client.WithTimeout(cfg.Timeout))}

	// The terminal belongs to the UI, so logs never go to stdout.
	var w io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, e.closeFn = f, f.Close
	}
	e.log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e.log.Info("feedback-form starting", slog.String("api", cfg.APIBaseURL))

	return e, nil
}

func runForm(ctx context.Context, e *env) error {
	store := form.NewStore(e.log)
	defer store.Close()

	model := tui.NewModel(ctx, store, e.api, form.WithLogger(e.log))

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
