package form

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aanand-mishra/feedback/internal/types"
)

// API is the part of the feedback API the controller calls.
// *client.Client implements it.
type API interface {
	Submit(ctx context.Context, req types.FeedbackRequest) (types.FeedbackRecord, error)
	List(ctx context.Context) ([]types.FeedbackRecord, error)
}

// Dispatcher receives the controller's outcomes. *Store implements it.
type Dispatcher interface {
	Dispatch(Action)
}

// Focuser moves input focus to the first form field.
type Focuser interface {
	FocusFirstField()
}

// Controller runs validate → network call → dispatch.
//
// Calls are not serialized against each other: a Submit and a FetchAll in
// flight at the same time both dispatch, and whichever finishes last
// decides what the modal shows.
type Controller struct {
	api   API
	store Dispatcher
	focus Focuser
	log   *slog.Logger
}

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithFocuser sets who is asked to focus the first field after a
// successful submission.
func WithFocuser(f Focuser) ControllerOption {
	return func(c *Controller) { c.focus = f }
}

// WithLogger sets the controller's logger. The default is slog.Default().
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.log = l }
}

// NewController returns a Controller that calls api and dispatches to store.
func NewController(api API, store Dispatcher, opts ...ControllerOption) *Controller {
	c := &Controller{api: api, store: store, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates data and, if it is valid, posts it. The dispatched
// action is also returned.
//
// Invalid data never reaches the network. Any failure after that
// (transport, non-2xx status, undecodable body, unparseable timestamp)
// becomes the same generic SubmitError; the detail only goes to the log.
func (c *Controller) Submit(ctx context.Context, data FormData) Action {
	if errs := Validate(data); len(errs) > 0 {
		return c.dispatch(ValidationError{Message: MsgFixErrors, Errors: errs})
	}

	record, err := c.api.Submit(ctx, types.FeedbackRequest{
		Name:    data.Name,
		Email:   data.Email,
		Message: data.Message,
	})
	if err != nil {
		c.log.Error("submit feedback failed", slog.String("error", err.Error()))
		return c.dispatch(SubmitError{Message: MsgSubmitFailed})
	}

	payload, err := toRecord(record)
	if err != nil {
		c.log.Error("submit feedback: bad response", slog.String("error", err.Error()))
		return c.dispatch(SubmitError{Message: MsgSubmitFailed})
	}

	c.log.Info("feedback submitted", slog.Int64("id", payload.ID))
	action := c.dispatch(SubmitSuccess{Payload: payload})

	if c.focus != nil {
		c.focus.FocusFirstField()
	}

	return action
}

// FetchAll loads every stored record and dispatches FetchAllSuccess, or
// SubmitError with MsgFetchFailed.
func (c *Controller) FetchAll(ctx context.Context) Action {
	records, err := c.api.List(ctx)
	if err != nil {
		c.log.Error("fetch feedbacks failed", slog.String("error", err.Error()))
		return c.dispatch(SubmitError{Message: MsgFetchFailed})
	}

	payload := make([]Record, 0, len(records))
	for _, r := range records {
		rec, err := toRecord(r)
		if err != nil {
			c.log.Error("fetch feedbacks: bad response", slog.String("error", err.Error()))
			return c.dispatch(SubmitError{Message: MsgFetchFailed})
		}
		payload = append(payload, rec)
	}

	c.log.Info("feedbacks fetched", slog.Int("count", len(payload)))
	return c.dispatch(FetchAllSuccess{Payload: payload})
}

func (c *Controller) dispatch(a Action) Action {
	c.store.Dispatch(a)
	return a
}

func toRecord(r types.FeedbackRecord) (Record, error) {
	createdAt, err := NormalizeTimestamp(r.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("record %d: %w", r.ID, err)
	}
	return Record{ID: r.ID, Name: r.Name, Message: r.Message, CreatedAt: createdAt}, nil
}

// CanonicalTimestamp is the layout every CreatedAt is normalized to:
// UTC, millisecond precision, trailing Z.
const CanonicalTimestamp = "2006-01-02T15:04:05.000Z"

// NormalizeTimestamp parses a timestamp from the API and formats it with
// CanonicalTimestamp.
//
// RFC 3339 values keep their offset. A date-time without an offset is
// read as local time; a bare date is read as UTC midnight.
func NormalizeTimestamp(s string) (string, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(CanonicalTimestamp), nil
	}

	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UTC().Format(CanonicalTimestamp), nil
		}
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC().Format(CanonicalTimestamp), nil
	}

	return "", fmt.Errorf("invalid timestamp %q", s)
}
