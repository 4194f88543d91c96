package form

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Store owns the form State. It is the single writer: the only way to
// change state is Dispatch, which runs Reduce under a lock. Readers get
// copies.
//
// Network calls finish on their own goroutines and dispatch into the
// store directly, so Dispatch and State are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	state  State
	closed bool
	log    *slog.Logger
}

// NewStore returns a store holding InitialState. A nil logger means
// slog.Default().
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{state: InitialState(), log: log}
}

// Dispatch applies a. After Close it does nothing, which is how a response
// that arrives once the form is gone gets dropped.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Debug("dropping action on closed store", slog.String("action", actionName(a)))
		return
	}

	s.state = Reduce(s.state, a)
	s.log.Debug("dispatched",
		slog.String("action", actionName(a)),
		slog.Bool("show_modal", s.state.ShowModal),
		slog.String("modal_type", string(s.state.ModalType)))
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Close detaches the store from the UI. It is idempotent.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// actionName is the action's type name without the package, e.g.
// "SubmitSuccess". Field values stay out of the logs.
func actionName(a Action) string {
	name := fmt.Sprintf("%T", a)
	return name[strings.LastIndexByte(name, '.')+1:]
}
