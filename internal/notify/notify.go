// Package notify holds the application-wide modal/notification state.
//
// The Service is a single-slot publisher: every Show call replaces the
// current state (last writer wins) and is broadcast to all subscribers.
// New subscribers receive the current state immediately.
package notify

import (
	"sort"
	"sync"
)

// Variant selects the visual treatment of a modal.
type Variant string

// Modal variants.
const (
	VariantDefault Variant = "default"
	VariantDanger  Variant = "danger"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
)

// ModalState describes what the renderer should show.
type ModalState struct {
	Open        bool
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	ShowCancel  bool
	Variant     Variant
	OnConfirm   func()
	OnCancel    func()
}

// DefaultState is the closed modal.
func DefaultState() ModalState {
	return ModalState{
		ConfirmText: "OK",
		CancelText:  "Cancel",
		Variant:     VariantDefault,
	}
}

// Listener receives every published state.
type Listener func(ModalState)

// Service publishes modal state to subscribers. It is safe for concurrent use.
type Service struct {
	mu        sync.Mutex
	state     ModalState
	listeners map[int]Listener
	nextID    int
}

// NewService returns a Service in the closed state.
func NewService() *Service {
	return &Service{
		state:     DefaultState(),
		listeners: make(map[int]Listener),
	}
}

// Current returns the latest published state.
func (s *Service) Current() ModalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn and immediately calls it with the current state.
// The returned function removes the subscription.
func (s *Service) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// publish stores state and notifies listeners in subscription order.
// Listeners run outside the lock so they may call back into the Service.
func (s *Service) publish(state ModalState) {
	s.mu.Lock()
	s.state = state
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, len(ids))
	for i, id := range ids {
		listeners[i] = s.listeners[id]
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func titleOr(title []string, fallback string) string {
	if len(title) > 0 && title[0] != "" {
		return title[0]
	}
	return fallback
}

// ShowAlert opens an informational modal. Title defaults to "Alert".
func (s *Service) ShowAlert(message string, title ...string) {
	st := DefaultState()
	st.Open = true
	st.Title = titleOr(title, "Alert")
	st.Message = message
	s.publish(st)
}

// ShowSuccess opens a success modal. Title defaults to "Success".
func (s *Service) ShowSuccess(message string, title ...string) {
	st := DefaultState()
	st.Open = true
	st.Title = titleOr(title, "Success")
	st.Message = message
	st.Variant = VariantSuccess
	s.publish(st)
}

// ShowError opens an error modal. Title defaults to "Error".
func (s *Service) ShowError(message string, title ...string) {
	st := DefaultState()
	st.Open = true
	st.Title = titleOr(title, "Error")
	st.Message = message
	st.Variant = VariantDanger
	s.publish(st)
}

// ShowWarning opens a warning modal. Title defaults to "Warning".
func (s *Service) ShowWarning(message string, title ...string) {
	st := DefaultState()
	st.Open = true
	st.Title = titleOr(title, "Warning")
	st.Message = message
	st.Variant = VariantWarning
	s.publish(st)
}

// ShowConfirm opens a confirm/cancel modal. An empty title becomes "Confirm".
func (s *Service) ShowConfirm(message, title string, onConfirm, onCancel func()) {
	st := DefaultState()
	st.Open = true
	st.Title = titleOr([]string{title}, "Confirm")
	st.Message = message
	st.ConfirmText = "Confirm"
	st.ShowCancel = true
	st.OnConfirm = onConfirm
	st.OnCancel = onCancel
	s.publish(st)
}

// ShowDangerConfirm opens a destructive confirm modal. An empty title becomes "Warning".
func (s *Service) ShowDangerConfirm(message, title string, onConfirm, onCancel func()) {
	st := DefaultState()
	st.Open = true
	st.Title = titleOr([]string{title}, "Warning")
	st.Message = message
	st.ConfirmText = "Delete"
	st.ShowCancel = true
	st.Variant = VariantDanger
	st.OnConfirm = onConfirm
	st.OnCancel = onCancel
	s.publish(st)
}

// Close resets to the closed state.
func (s *Service) Close() {
	s.publish(DefaultState())
}

// Confirm closes the modal, then runs its OnConfirm callback if any. The
// callback may open a new modal.
func (s *Service) Confirm() {
	cb := s.Current().OnConfirm
	s.Close()
	if cb != nil {
		cb()
	}
}

// Cancel closes the modal, then runs its OnCancel callback if any.
func (s *Service) Cancel() {
	cb := s.Current().OnCancel
	s.Close()
	if cb != nil {
		cb()
	}
}
