// Package dialog holds the state of the alert and confirm modals shown by the ui.
//
// The Store is the single owner of that state. Views read it with State or Subscribe,
// handlers change it with ShowAlert / ShowConfirm and answer it with DismissAlert / Resolve.
// A process-wide instance is available from Default and lives for the lifetime of the application.
package dialog

import (
	"sync"

	"github.com/google/uuid"
)

// Kind selects the styling of a dialog
type Kind string

const (
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
)

// default labels
const (
	DefaultAlertTitle   = "Информация"
	DefaultAlertLabel   = "Ок"
	DefaultConfirmTitle = "Подтверждение"
	DefaultConfirmLabel = "Продолжить"
	DefaultCancelLabel  = "Отмена"
)

// ParseKind validates a kind received from a form or query string
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindError, KindWarning, KindInfo, KindSuccess:
		return k, true
	}
	return "", false
}

// Alert is a message with a single acknowledge button
type Alert struct {
	ID           string `json:"id"`
	Open         bool   `json:"open"`
	Kind         Kind   `json:"kind"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	ConfirmLabel string `json:"confirm_label"`
}

// Confirm is a question answered with confirm or cancel
type Confirm struct {
	ID           string `json:"id"`
	Open         bool   `json:"open"`
	Kind         Kind   `json:"kind"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	ConfirmLabel string `json:"confirm_label"`
	CancelLabel  string `json:"cancel_label"`
}

// State is a snapshot of both dialogs
type State struct {
	Alert   Alert   `json:"alert"`
	Confirm Confirm `json:"confirm"`
}

// Store owns the dialog state. The zero value is not usable, use NewStore.
type Store struct {
	mu          sync.Mutex
	state       State
	pending     chan bool // answer channel of the open confirm, nil when none is open
	subscribers map[int]func(State)
	nextSubID   int

	// changes waiting to be delivered, in the order they were applied
	queue      []State
	delivering bool
}

var defaultStore = NewStore()

// Default returns the process-wide store
func Default() *Store {
	return defaultStore
}

// NewStore returns a store with both dialogs closed
func NewStore() *Store {
	return &Store{
		state: State{
			Alert: Alert{
				Kind:         KindInfo,
				Title:        DefaultAlertTitle,
				ConfirmLabel: DefaultAlertLabel,
			},
			Confirm: Confirm{
				Kind:         KindWarning,
				Title:        DefaultConfirmTitle,
				ConfirmLabel: DefaultConfirmLabel,
				CancelLabel:  DefaultCancelLabel,
			},
		},
		subscribers: make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with a snapshot after every change.
// Snapshots arrive one at a time in the order the changes were made.
// fn is called without the store lock held and may call back into the store.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// ShowAlert opens the alert dialog, replacing any alert already open. It returns the id of the new alert.
func (s *Store) ShowAlert(kind Kind, title, message string) string {
	id := uuid.NewString()

	s.update(func(st *State) {
		st.Alert = Alert{
			ID:           id,
			Open:         true,
			Kind:         kind,
			Title:        title,
			Message:      message,
			ConfirmLabel: DefaultAlertLabel,
		}
	})
	return id
}

// DismissAlert closes the alert with the given id. It reports false if that alert is no longer open.
func (s *Store) DismissAlert(id string) bool {
	dismissed := false
	s.update(func(st *State) {
		if st.Alert.Open && st.Alert.ID == id {
			st.Alert.Open = false
			dismissed = true
		}
	})
	return dismissed
}

// ShowConfirm opens the confirm dialog and returns its id and a channel that receives exactly one answer:
// true when confirmed, false when cancelled or when another confirm replaces this one. The channel is closed after the answer.
//
// Empty labels fall back to DefaultConfirmLabel / DefaultCancelLabel.
func (s *Store) ShowConfirm(kind Kind, title, message, confirmLabel, cancelLabel string) (string, <-chan bool) {
	if confirmLabel == "" {
		confirmLabel = DefaultConfirmLabel
	}
	if cancelLabel == "" {
		cancelLabel = DefaultCancelLabel
	}

	id := uuid.NewString()
	answer := make(chan bool, 1)

	var replaced chan bool
	s.update(func(st *State) {
		replaced = s.pending
		s.pending = answer
		st.Confirm = Confirm{
			ID:           id,
			Open:         true,
			Kind:         kind,
			Title:        title,
			Message:      message,
			ConfirmLabel: confirmLabel,
			CancelLabel:  cancelLabel,
		}
	})

	if replaced != nil {
		replaced <- false
		close(replaced)
	}
	return id, answer
}

// Resolve answers the confirm with the given id and closes it.
// It reports false (and does nothing) when the id does not match the open confirm.
func (s *Store) Resolve(id string, confirmed bool) bool {
	var answer chan bool
	s.update(func(st *State) {
		if !st.Confirm.Open || st.Confirm.ID != id {
			return
		}
		answer = s.pending
		s.pending = nil
		st.Confirm.Open = false
	})

	if answer == nil {
		return false
	}
	answer <- confirmed
	close(answer)
	return true
}

// update applies fn under the lock and notifies subscribers if the state changed.
//
// Snapshots are delivered in the order the changes were applied. Only one goroutine delivers at a
// time: an update made while another is delivering (or from inside a callback) is queued and
// delivered by that goroutine.
func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	before := s.state
	fn(&s.state)
	if before == s.state {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, s.state)
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		subs := make([]func(State), 0, len(s.subscribers))
		for _, sub := range s.subscribers {
			subs = append(subs, sub)
		}
		s.mu.Unlock()

		for _, sub := range subs {
			sub(next)
		}

		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}

// ShowAlert opens an alert on the default store
func ShowAlert(kind Kind, title, message string) string {
	return defaultStore.ShowAlert(kind, title, message)
}

// ShowConfirm opens a confirm on the default store
func ShowConfirm(kind Kind, title, message, confirmLabel, cancelLabel string) (string, <-chan bool) {
	return defaultStore.ShowConfirm(kind, title, message, confirmLabel, cancelLabel)
}
